package model

import (
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID           = "id"
	FieldCode         = "code"
	FieldGuestFolioID = "guest_folio_id"
	FieldIsVoided     = "is_voided"
	FieldVoidReason   = "void_reason"
	FieldVoidedAt     = "voided_at"
)

// Invoice is a billing document over a closed folio's transactions. Voiding
// marks the document and releases its transactions for re-invoicing; the
// financial record itself is never deleted.
type Invoice struct {
	ID                  string     `db:"id"`
	Code                string     `db:"code"`
	GuestFolioID        string     `db:"guest_folio_id"`
	InvoiceToCustomerID string     `db:"invoice_to_customer_id"`
	TaxID               *string    `db:"tax_id"`
	TotalAmount         int64      `db:"total_amount"`
	IsVoided            bool       `db:"is_voided"`
	VoidReason          *string    `db:"void_reason"`
	VoidedAt            *time.Time `db:"voided_at"`
	model.Metadata
}
