package notifier

import "context"

// Target selects the channel a notification is delivered to.
type Target string

const (
	// TargetInvoices is the channel invoices and reminders are posted to
	TargetInvoices Target = "invoices"
	// TargetPayouts is the channel payout approvers watch
	TargetPayouts Target = "payouts"
	// TargetLog is the staff log channel
	TargetLog Target = "log"
	// TargetCustomer is a direct message to the customer's account
	TargetCustomer Target = "customer"
)

// Field is one label/value pair in a notification embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Notification is an embed-style alert. Delivery is always best-effort:
// a failed notification never rolls back the mutation that caused it.
type Notification struct {
	Target Target `json:"target"`
	// Recipient is the account to mention or message, when the target is a
	// person rather than a channel
	Recipient   string  `json:"recipient,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

// Notifier delivers notifications to the chat platform. Implementations
// report failure through the returned error; callers log and swallow it.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// Noop discards every notification. Used when no webhooks are configured
// and in tests that do not care about delivery.
type Noop struct{}

func (Noop) Notify(ctx context.Context, n *Notification) error {
	return nil
}

// Embed colors matching the community's established scheme.
const (
	ColorPrimary = 0x2C3E50
	ColorSuccess = 0x27AE60
	ColorWarning = 0xE67E22
	ColorError   = 0xC0392B
	ColorInfo    = 0x3498DB
)
