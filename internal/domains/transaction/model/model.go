package model

import (
	"hotelier/shared/model"
)

const (
	TableName  = "transactions"
	EntityName = "transaction"

	FolioTableName   = "guest_folios"
	FolioEntityName  = "guest_folio"
	DetailTableName  = "transaction_details"
	DetailEntityName = "transaction_detail"

	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldGuestFolioID   = "guest_folio_id"
	FieldInvoiceID      = "invoice_id"
	FieldTransactionID  = "transaction_id"
	FieldBookingRoomID  = "booking_room_id"
	FieldServiceUsageID = "service_usage_id"
	FieldStatus         = "status"
	FieldType           = "type"
)

// Transaction types.
const (
	TypeDeposit       = "DEPOSIT"
	TypeRoomCharge    = "ROOM_CHARGE"
	TypeServiceCharge = "SERVICE_CHARGE"
	TypeRefund        = "REFUND"
	TypeAdjustment    = "ADJUSTMENT"
)

// Payment methods.
const (
	MethodCash     = "CASH"
	MethodCard     = "CARD"
	MethodTransfer = "TRANSFER"
	MethodQRIS     = "QRIS"
)

const (
	FolioStatusOpen   = "OPEN"
	FolioStatusClosed = "CLOSED"
)

// SignedTypes may carry negative or explicitly signed amounts and never go
// through discount computation.
func SignedTypes() []string {
	return []string{TypeRefund, TypeAdjustment, TypeDeposit}
}

func IsSignedType(transactionType string) bool {
	for _, t := range SignedTypes() {
		if t == transactionType {
			return true
		}
	}

	return false
}

// GuestFolio is the running account of one stay. It opens at check-in and
// closes when the invoice is issued.
type GuestFolio struct {
	ID         string `db:"id"`
	BookingID  string `db:"booking_id"`
	CustomerID string `db:"customer_id"`
	Status     string `db:"status"`
	model.Metadata
}

// Transaction is an immutable monetary movement. Amounts are integer minor
// units. Amount = BaseAmount - DiscountAmount for charge types; signed types
// carry the amount as given.
type Transaction struct {
	ID             string  `db:"id"`
	GuestFolioID   *string `db:"guest_folio_id"`
	BookingID      *string `db:"booking_id"`
	InvoiceID      *string `db:"invoice_id"`
	PromotionID    *string `db:"promotion_id"`
	Type           string  `db:"type"`
	Method         string  `db:"method"`
	BaseAmount     int64   `db:"base_amount"`
	DiscountAmount int64   `db:"discount_amount"`
	Amount         int64   `db:"amount"`
	model.Metadata
}

// TransactionDetail is one line of a transaction, tied to either a booking
// room or a service usage. Detail amounts sum exactly to the parent amount.
type TransactionDetail struct {
	ID             string  `db:"id"`
	TransactionID  string  `db:"transaction_id"`
	BookingRoomID  *string `db:"booking_room_id"`
	ServiceUsageID *string `db:"service_usage_id"`
	BaseAmount     int64   `db:"base_amount"`
	DiscountAmount int64   `db:"discount_amount"`
	Amount         int64   `db:"amount"`
	model.Metadata
}
