package types

// AuditAction names an entry in the flat audit log. The values mirror the
// action labels the community log channel has always shown.
type AuditAction string

const (
	AuditActionCustomerCreated  AuditAction = "AKTE_ERSTELLT"
	AuditActionCustomerArchived AuditAction = "AKTE_ARCHIVIERT"
	AuditActionInvoiceIssued    AuditAction = "RECHNUNG_ERSTELLT"
	AuditActionInvoicePaid      AuditAction = "RECHNUNG_BEZAHLT"
	AuditActionReminderFirst    AuditAction = "MAHNUNG_1"
	AuditActionReminderSecond   AuditAction = "MAHNUNG_2"
	AuditActionReminderThird    AuditAction = "MAHNUNG_3"
	AuditActionBalanceTopUp     AuditAction = "GUTHABEN_AUFGELADEN"
	AuditActionBalanceAdjusted  AuditAction = "GUTHABEN_ABGEZOGEN"
	AuditActionPayoutRequested  AuditAction = "AUSZAHLUNG_ERSTELLT"
	AuditActionPayoutApproved   AuditAction = "AUSZAHLUNG_GENEHMIGT"
	AuditActionPayoutRejected   AuditAction = "AUSZAHLUNG_ABGELEHNT"
)

// ReminderAuditAction returns the audit action for a reminder stage.
func ReminderAuditAction(stage ReminderStage) AuditAction {
	switch stage {
	case ReminderStageSecond:
		return AuditActionReminderSecond
	case ReminderStageThird:
		return AuditActionReminderThird
	default:
		return AuditActionReminderFirst
	}
}
