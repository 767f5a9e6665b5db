package model

import (
	"time"
)

const (
	TableName  = "activities"
	EntityName = "activity"

	FieldID          = "id"
	FieldType        = "type"
	FieldActorID     = "actor_id"
	FieldActorRole   = "actor_role"
	FieldSubjectType = "subject_type"
	FieldSubjectID   = "subject_id"
	FieldCreatedAt   = "created_at"
)

// Activity types, one per state-changing operation of the stay and ledger
// lifecycle.
const (
	TypeBookingCreated     = "BOOKING_CREATED"
	TypeRoomReserved       = "ROOM_RESERVED"
	TypeCheckedIn          = "CHECKED_IN"
	TypeCheckoutRequested  = "CHECKOUT_REQUESTED"
	TypeCheckedOut         = "CHECKED_OUT"
	TypeInspectionCreated  = "INSPECTION_CREATED"
	TypeInspectionApproved = "INSPECTION_APPROVED"
	TypePromotionRedeemed  = "PROMOTION_REDEEMED"
	TypeTransactionCreated = "TRANSACTION_CREATED"
	TypeInvoiceCreated     = "INVOICE_CREATED"
	TypeInvoiceVoided      = "INVOICE_VOIDED"
	TypeServiceUsageAdded  = "SERVICE_USAGE_ADDED"
)

// Activity is an append-only audit entry. Rows are never updated or deleted.
type Activity struct {
	ID          string    `db:"id"`
	Type        string    `db:"type"`
	ActorID     string    `db:"actor_id"`
	ActorRole   string    `db:"actor_role"`
	SubjectType string    `db:"subject_type"`
	SubjectID   string    `db:"subject_id"`
	Detail      string    `db:"detail"`
	CreatedAt   time.Time `db:"created_at"`
}
