package store

import (
	"github.com/insuranceguard/insuranceguard/internal/domain/audit"
	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
)

// Dataset is the whole persisted state: every record the bot and dashboard
// operate on, loaded and saved as one snapshot.
type Dataset struct {
	Customers map[string]*customer.Customer     `json:"customers"`
	Invoices  map[string]*invoice.Invoice       `json:"invoices"`
	Payouts   map[string]*payout.PayoutRequest  `json:"auszahlungen"`
	Ledger    map[string][]*ledger.Entry        `json:"guthaben_history"`
	AuditLog  []*audit.Entry                    `json:"logs"`
}

// NewDataset returns an empty dataset with all maps initialized.
func NewDataset() *Dataset {
	return &Dataset{
		Customers: make(map[string]*customer.Customer),
		Invoices:  make(map[string]*invoice.Invoice),
		Payouts:   make(map[string]*payout.PayoutRequest),
		Ledger:    make(map[string][]*ledger.Entry),
		AuditLog:  make([]*audit.Entry, 0),
	}
}

// Normalize fills in nil maps after decoding an older snapshot.
func (d *Dataset) Normalize() {
	if d.Customers == nil {
		d.Customers = make(map[string]*customer.Customer)
	}
	if d.Invoices == nil {
		d.Invoices = make(map[string]*invoice.Invoice)
	}
	if d.Payouts == nil {
		d.Payouts = make(map[string]*payout.PayoutRequest)
	}
	if d.Ledger == nil {
		d.Ledger = make(map[string][]*ledger.Entry)
	}
	if d.AuditLog == nil {
		d.AuditLog = make([]*audit.Entry, 0)
	}
}

// Clone returns a deep copy of the dataset. Commits mutate a clone and swap
// it in only after a successful save, so a failed save never leaves partial
// in-memory state behind.
func (d *Dataset) Clone() *Dataset {
	clone := NewDataset()
	for id, c := range d.Customers {
		clone.Customers[id] = c.Clone()
	}
	for id, inv := range d.Invoices {
		clone.Invoices[id] = inv.Clone()
	}
	for id, p := range d.Payouts {
		clone.Payouts[id] = p.Clone()
	}
	for id, entries := range d.Ledger {
		cloned := make([]*ledger.Entry, len(entries))
		for i, e := range entries {
			cloned[i] = e.Clone()
		}
		clone.Ledger[id] = cloned
	}
	clone.AuditLog = make([]*audit.Entry, len(d.AuditLog))
	for i, e := range d.AuditLog {
		clone.AuditLog[i] = e.Clone()
	}
	return clone
}
