package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/promotion/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreatePromotionRequest struct {
	Code             string `json:"code"                validate:"required,max=50"`
	Type             string `json:"type"                validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Scope            string `json:"scope"               validate:"required,oneof=ALL ROOM SERVICE"`
	Value            int64  `json:"value"               validate:"required,gt=0"`
	MaxDiscount      *int64 `json:"max_discount"        validate:"omitempty,gt=0"`
	MinBookingAmount int64  `json:"min_booking_amount"  validate:"gte=0"`
	StartDate        string `json:"start_date"          validate:"required"`
	EndDate          string `json:"end_date"            validate:"required"`
	TotalQty         *int   `json:"total_qty"           validate:"omitempty,gt=0"`
	PerCustomerLimit *int   `json:"per_customer_limit"  validate:"omitempty,gt=0"`
}

func (c *CreatePromotionRequest) ToModel(user string) (model.Promotion, error) {
	start, err := timezone.Parse(constant.DateOnlyFormat, c.StartDate)
	if err != nil {
		return model.Promotion{}, err
	}

	end, err := timezone.Parse(constant.DateOnlyFormat, c.EndDate)
	if err != nil {
		return model.Promotion{}, err
	}

	// A bounded promotion starts with its full quota remaining.
	var remaining *int
	if c.TotalQty != nil {
		qty := *c.TotalQty
		remaining = &qty
	}

	return model.Promotion{
		ID:               uuid.NewString(),
		Code:             c.Code,
		Type:             c.Type,
		Scope:            c.Scope,
		Value:            c.Value,
		MaxDiscount:      c.MaxDiscount,
		MinBookingAmount: c.MinBookingAmount,
		StartDate:        start,
		EndDate:          end,
		TotalQty:         c.TotalQty,
		RemainingQty:     remaining,
		PerCustomerLimit: c.PerCustomerLimit,
		Metadata:         gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

type UpdatePromotionRequest struct {
	Value            *int64 `json:"value"               db:"value"               validate:"omitempty,gt=0"`
	MaxDiscount      *int64 `json:"max_discount"        db:"max_discount"        validate:"omitempty,gt=0"`
	MinBookingAmount *int64 `json:"min_booking_amount"  db:"min_booking_amount"  validate:"omitempty,gte=0"`
	EndDate          *string `json:"end_date"           db:"end_date"`
}

type RedeemPromotionRequest struct {
	Code       string `json:"code"        validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	Scope      string `json:"scope"       validate:"required,oneof=ALL ROOM SERVICE"`
	BaseAmount int64  `json:"base_amount" validate:"required,gt=0"`
}

// RedemptionResult is the outcome of a successful claim.
type RedemptionResult struct {
	PromotionID    string `json:"promotion_id"`
	Code           string `json:"code"`
	BaseAmount     int64  `json:"base_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
}

type PromotionResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Type             string `json:"type"`
	Scope            string `json:"scope"`
	Value            int64  `json:"value"`
	MaxDiscount      *int64 `json:"max_discount,omitempty"`
	MinBookingAmount int64  `json:"min_booking_amount"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TotalQty         *int   `json:"total_qty,omitempty"`
	RemainingQty     *int   `json:"remaining_qty,omitempty"`
	PerCustomerLimit *int   `json:"per_customer_limit,omitempty"`
	Disabled         bool   `json:"disabled"`
}

func (r *PromotionResponse) FromModel(mod model.Promotion) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.Type = mod.Type
	r.Scope = mod.Scope
	r.Value = mod.Value
	r.MaxDiscount = mod.MaxDiscount
	r.MinBookingAmount = mod.MinBookingAmount
	r.StartDate = mod.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = mod.EndDate.Format(constant.DateOnlyFormat)
	r.TotalQty = mod.TotalQty
	r.RemainingQty = mod.RemainingQty
	r.PerCustomerLimit = mod.PerCustomerLimit
	r.Disabled = mod.DisabledAt != nil
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, mod := range models {
		r.Promotions[i].FromModel(mod)
	}
}
