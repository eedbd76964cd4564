package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"

	"github.com/insuranceguard/insuranceguard/internal/config"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WebhookNotifier posts embed payloads to the chat platform's channel
// webhooks. Direct messages to customers go through the invoices webhook
// with a mention, since plain webhooks cannot open DM channels.
type WebhookNotifier struct {
	urls   map[Target]string
	client *retryablehttp.Client
	logger *logger.Logger
}

func NewWebhookNotifier(cfg config.WebhookConfig, log *logger.Logger) *WebhookNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.MaxRetries
	client.HTTPClient.Timeout = cfg.Timeout
	client.Logger = nil

	urls := map[Target]string{
		TargetInvoices: cfg.NotifyURL,
		TargetPayouts:  cfg.PayoutURL,
		TargetLog:      cfg.LogURL,
		TargetCustomer: cfg.NotifyURL,
	}

	return &WebhookNotifier{
		urls:   urls,
		client: client,
		logger: log,
	}
}

// webhookPayload is the wire shape the chat platform expects.
type webhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color,omitempty"`
	Fields      []Field        `json:"fields,omitempty"`
	Footer      *webhookFooter `json:"footer,omitempty"`
	Timestamp   string         `json:"timestamp"`
}

type webhookFooter struct {
	Text string `json:"text"`
}

func (w *WebhookNotifier) Notify(ctx context.Context, n *Notification) error {
	url := w.urls[n.Target]
	if url == "" {
		w.logger.Debugw("no webhook configured for target, dropping notification",
			"target", n.Target, "title", n.Title)
		return nil
	}

	payload := webhookPayload{
		Embeds: []webhookEmbed{{
			Title:       n.Title,
			Description: n.Description,
			Color:       n.Color,
			Fields:      n.Fields,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
	}
	if n.Footer != "" {
		payload.Embeds[0].Footer = &webhookFooter{Text: n.Footer}
	}
	if n.Recipient != "" {
		payload.Content = fmt.Sprintf("<@%s>", n.Recipient)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not encode notification payload").
			Mark(ierr.ErrNotification)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not build webhook request").
			Mark(ierr.ErrNotification)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Webhook delivery to %s target failed", n.Target).
			Mark(ierr.ErrNotification)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return ierr.NewError("webhook rejected notification").
			WithHintf("Webhook for %s target returned status %d", n.Target, resp.StatusCode).
			Mark(ierr.ErrNotification)
	}
	return nil
}
