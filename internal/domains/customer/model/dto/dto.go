package dto

import (
	"hotelier/internal/domains/customer/model"
)

type TierResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	PointsRequired        int    `json:"points_required"`
	RoomDiscountFactor    int    `json:"room_discount_factor"`
	ServiceDiscountFactor int    `json:"service_discount_factor"`
}

func (r *TierResponse) FromModel(mod model.CustomerTier) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.PointsRequired = mod.PointsRequired
	r.RoomDiscountFactor = mod.RoomDiscountFactor
	r.ServiceDiscountFactor = mod.ServiceDiscountFactor
}

type GetTiersResponse struct {
	Tiers []TierResponse `json:"tiers"`
}

func (r *GetTiersResponse) FromModels(models []model.CustomerTier) {
	r.Tiers = make([]TierResponse, len(models))
	for i, mod := range models {
		r.Tiers[i].FromModel(mod)
	}
}
