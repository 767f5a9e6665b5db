package model

import (
	"hotelier/shared/model"
)

const (
	TierTableName  = "customer_tiers"
	TierEntityName = "customer_tier"

	FieldID             = "id"
	FieldName           = "name"
	FieldPointsRequired = "points_required"
)

// CustomerTier is static loyalty reference data. Discount factors are
// percentages in [0, 100]; promotion to a tier happens in a separate process.
type CustomerTier struct {
	ID                    string `db:"id"`
	Name                  string `db:"name"`
	PointsRequired        int    `db:"points_required"`
	RoomDiscountFactor    int    `db:"room_discount_factor"`
	ServiceDiscountFactor int    `db:"service_discount_factor"`
	model.Metadata
}
