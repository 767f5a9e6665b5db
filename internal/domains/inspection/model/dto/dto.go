package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/inspection/model"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateInspectionRequest struct {
	BookingRoomID string `json:"booking_room_id" validate:"required,uuid"`
	HasDamages    bool   `json:"has_damages"`
	DamageAmount  int64  `json:"damage_amount"   validate:"gte=0"`
	HasMissing    bool   `json:"has_missing_items"`
	MissingAmount int64  `json:"missing_amount"  validate:"gte=0"`
	HasViolations bool   `json:"has_violations"`
	PenaltyAmount int64  `json:"penalty_amount"  validate:"gte=0"`
	Notes         string `json:"notes"           validate:"max=1000"`
}

func (c *CreateInspectionRequest) ToModel(user string) model.Inspection {
	return model.Inspection{
		ID:            uuid.NewString(),
		BookingRoomID: c.BookingRoomID,
		HasDamages:    c.HasDamages,
		DamageAmount:  c.DamageAmount,
		HasMissing:    c.HasMissing,
		MissingAmount: c.MissingAmount,
		HasViolations: c.HasViolations,
		PenaltyAmount: c.PenaltyAmount,
		IsApproved:    false,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

type InspectionResponse struct {
	ID            string `json:"id"`
	BookingRoomID string `json:"booking_room_id"`
	HasDamages    bool   `json:"has_damages"`
	DamageAmount  int64  `json:"damage_amount"`
	HasMissing    bool   `json:"has_missing_items"`
	MissingAmount int64  `json:"missing_amount"`
	HasViolations bool   `json:"has_violations"`
	PenaltyAmount int64  `json:"penalty_amount"`
	IsApproved    bool   `json:"is_approved"`
	Notes         string `json:"notes,omitempty"`
}

func (r *InspectionResponse) FromModel(mod model.Inspection) {
	r.ID = mod.ID
	r.BookingRoomID = mod.BookingRoomID
	r.HasDamages = mod.HasDamages
	r.DamageAmount = mod.DamageAmount
	r.HasMissing = mod.HasMissing
	r.MissingAmount = mod.MissingAmount
	r.HasViolations = mod.HasViolations
	r.PenaltyAmount = mod.PenaltyAmount
	r.IsApproved = mod.IsApproved
	r.Notes = mod.Notes
}
