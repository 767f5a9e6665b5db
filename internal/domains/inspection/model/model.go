package model

import (
	"hotelier/shared/model"
)

const (
	TableName  = "inspections"
	EntityName = "inspection"

	FieldID            = "id"
	FieldBookingRoomID = "booking_room_id"
	FieldIsApproved    = "is_approved"
)

type Inspection struct {
	ID            string `db:"id"`
	BookingRoomID string `db:"booking_room_id"`
	HasDamages    bool   `db:"has_damages"`
	DamageAmount  int64  `db:"damage_amount"`
	HasMissing    bool   `db:"has_missing_items"`
	MissingAmount int64  `db:"missing_amount"`
	HasViolations bool   `db:"has_violations"`
	PenaltyAmount int64  `db:"penalty_amount"`
	IsApproved    bool   `db:"is_approved"`
	Notes         string `db:"notes"`
	model.Metadata
}

// PenaltyTotal is the sum of all charges the inspection found against the
// stay.
func (i *Inspection) PenaltyTotal() int64 {
	return i.DamageAmount + i.MissingAmount + i.PenaltyAmount
}

// CanCheckout gates checkout on employee approval. Approval is the override
// for any damage, missing-item, or violation flag.
func (i *Inspection) CanCheckout() bool {
	return i.IsApproved
}
