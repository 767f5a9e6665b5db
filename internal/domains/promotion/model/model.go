package model

import (
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	RedemptionTableName  = "promotion_redemptions"
	RedemptionEntityName = "promotion_redemption"

	FieldID           = "id"
	FieldCode         = "code"
	FieldRemainingQty = "remaining_qty"
	FieldEndDate      = "end_date"
	FieldDisabledAt   = "disabled_at"
	FieldPromotionID  = "promotion_id"
	FieldCustomerID   = "customer_id"
)

const (
	TypePercentage  = "PERCENTAGE"
	TypeFixedAmount = "FIXED_AMOUNT"
)

// Scopes name the charge category a promotion may discount.
const (
	ScopeAll     = "ALL"
	ScopeRoom    = "ROOM"
	ScopeService = "SERVICE"
)

type Promotion struct {
	ID               string     `db:"id"`
	Code             string     `db:"code"`
	Type             string     `db:"type"`
	Scope            string     `db:"scope"`
	Value            int64      `db:"value"`
	MaxDiscount      *int64     `db:"max_discount"`
	MinBookingAmount int64      `db:"min_booking_amount"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	TotalQty         *int       `db:"total_qty"`
	RemainingQty     *int       `db:"remaining_qty"`
	PerCustomerLimit *int       `db:"per_customer_limit"`
	DisabledAt       *time.Time `db:"disabled_at"`
	model.Metadata
}

// Unlimited reports whether the promotion has no bounded quota. Unlimited
// promotions skip the quota decrement but still honor the per-customer limit.
func (p *Promotion) Unlimited() bool {
	return p.TotalQty == nil
}

// ActiveAt reports whether the promotion can be redeemed at the given time.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return p.DisabledAt == nil && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// PromotionRedemption records one successful claim by one customer.
type PromotionRedemption struct {
	ID             string  `db:"id"`
	PromotionID    string  `db:"promotion_id"`
	CustomerID     string  `db:"customer_id"`
	TransactionID  *string `db:"transaction_id"`
	BaseAmount     int64   `db:"base_amount"`
	DiscountAmount int64   `db:"discount_amount"`
	model.Metadata
}
