package dto

import (
	"hotelier/internal/domains/transaction/model"
	"hotelier/shared"
)

// Payment scenarios, resolved from the shape of the create request.
const (
	ScenarioFullBooking       = "FULL_BOOKING"
	ScenarioSplitRooms        = "SPLIT_ROOMS"
	ScenarioBookingService    = "BOOKING_SERVICE"
	ScenarioStandaloneService = "STANDALONE_SERVICE"
)

type CreateTransactionRequest struct {
	BookingID      *string  `json:"booking_id"       validate:"omitempty,uuid"`
	BookingRoomIDs []string `json:"booking_room_ids" validate:"omitempty,min=1,dive,uuid"`
	ServiceUsageID *string  `json:"service_usage_id" validate:"omitempty,uuid"`
	Type           string   `json:"type"             validate:"required,oneof=DEPOSIT ROOM_CHARGE SERVICE_CHARGE REFUND ADJUSTMENT"`
	Method         string   `json:"method"           validate:"required,oneof=CASH CARD TRANSFER QRIS"`

	// Amount is only read for DEPOSIT, REFUND, and ADJUSTMENT, which carry an
	// explicit signed amount.
	Amount *int64 `json:"amount"`

	PromotionCode *string `json:"promotion_code" validate:"omitempty,max=50"`
	CustomerID    string  `json:"customer_id"    validate:"required"`
}

// Scenario resolves which of the four mutually exclusive payment shapes the
// request describes. An empty result means the shape is invalid.
func (c *CreateTransactionRequest) Scenario() string {
	hasBooking := c.BookingID != nil
	hasRooms := len(c.BookingRoomIDs) > 0
	hasUsage := c.ServiceUsageID != nil

	switch {
	case hasBooking && !hasRooms && !hasUsage:
		return ScenarioFullBooking
	case hasBooking && hasRooms && !hasUsage:
		return ScenarioSplitRooms
	case hasBooking && !hasRooms && hasUsage:
		return ScenarioBookingService
	case !hasBooking && !hasRooms && hasUsage:
		return ScenarioStandaloneService
	default:
		return ""
	}
}

type TransactionDetailResponse struct {
	ID             string  `json:"id"`
	BookingRoomID  *string `json:"booking_room_id,omitempty"`
	ServiceUsageID *string `json:"service_usage_id,omitempty"`
	BaseAmount     int64   `json:"base_amount"`
	DiscountAmount int64   `json:"discount_amount"`
	Amount         int64   `json:"amount"`
}

func (r *TransactionDetailResponse) FromModel(mod model.TransactionDetail) {
	r.ID = mod.ID
	r.BookingRoomID = mod.BookingRoomID
	r.ServiceUsageID = mod.ServiceUsageID
	r.BaseAmount = mod.BaseAmount
	r.DiscountAmount = mod.DiscountAmount
	r.Amount = mod.Amount
}

type TransactionResponse struct {
	ID             string                      `json:"id"`
	GuestFolioID   *string                     `json:"guest_folio_id,omitempty"`
	BookingID      *string                     `json:"booking_id,omitempty"`
	InvoiceID      *string                     `json:"invoice_id,omitempty"`
	PromotionID    *string                     `json:"promotion_id,omitempty"`
	Type           string                      `json:"type"`
	Method         string                      `json:"method"`
	BaseAmount     int64                       `json:"base_amount"`
	DiscountAmount int64                       `json:"discount_amount"`
	Amount         int64                       `json:"amount"`
	Details        []TransactionDetailResponse `json:"details,omitempty"`
}

func (r *TransactionResponse) FromModel(mod model.Transaction, details []model.TransactionDetail) {
	r.ID = mod.ID
	r.GuestFolioID = mod.GuestFolioID
	r.BookingID = mod.BookingID
	r.InvoiceID = mod.InvoiceID
	r.PromotionID = mod.PromotionID
	r.Type = mod.Type
	r.Method = mod.Method
	r.BaseAmount = mod.BaseAmount
	r.DiscountAmount = mod.DiscountAmount
	r.Amount = mod.Amount

	r.Details = make([]TransactionDetailResponse, len(details))
	for i, detail := range details {
		r.Details[i].FromModel(detail)
	}
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod, nil)
	}
}
