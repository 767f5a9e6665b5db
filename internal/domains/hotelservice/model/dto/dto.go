package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/hotelservice/model"
	"hotelier/shared"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateServiceRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Price int64  `json:"price" validate:"gte=0"`
	Unit  string `json:"unit"  validate:"required,max=20"`
}

func (c *CreateServiceRequest) ToModel(user string) model.HotelService {
	return model.HotelService{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Price:    c.Price,
		Unit:     c.Unit,
		IsActive: true,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateServiceRequest struct {
	Name     *string `json:"name"      db:"name"      validate:"omitempty,max=100"`
	Price    *int64  `json:"price"     db:"price"     validate:"omitempty,gte=0"`
	Unit     *string `json:"unit"      db:"unit"      validate:"omitempty,max=20"`
	IsActive *bool   `json:"is_active" db:"is_active"`
}

type AddUsageRequest struct {
	ServiceID     string  `json:"service_id"      validate:"required,uuid"`
	BookingID     *string `json:"booking_id"      validate:"omitempty,uuid"`
	BookingRoomID *string `json:"booking_room_id" validate:"omitempty,uuid"`
	Quantity      int     `json:"quantity"        validate:"required,gt=0"`
}

type ServiceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Unit     string `json:"unit"`
	IsActive bool   `json:"is_active"`
}

func (r *ServiceResponse) FromModel(mod model.HotelService) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Price = mod.Price
	r.Unit = mod.Unit
	r.IsActive = mod.IsActive
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.HotelService, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type UsageResponse struct {
	ID            string  `json:"id"`
	ServiceID     string  `json:"service_id"`
	BookingID     *string `json:"booking_id,omitempty"`
	BookingRoomID *string `json:"booking_room_id,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     int64   `json:"unit_price"`
	Charge        int64   `json:"charge"`
	Status        string  `json:"status"`
}

func (r *UsageResponse) FromModel(mod model.ServiceUsage) {
	r.ID = mod.ID
	r.ServiceID = mod.ServiceID
	r.BookingID = mod.BookingID
	r.BookingRoomID = mod.BookingRoomID
	r.Quantity = mod.Quantity
	r.UnitPrice = mod.UnitPrice
	r.Charge = mod.Charge()
	r.Status = mod.Status
}

type GetUsagesResponse struct {
	Usages    []UsageResponse `json:"usages"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetUsagesResponse) FromModels(models []model.ServiceUsage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Usages = make([]UsageResponse, len(models))
	for i, mod := range models {
		r.Usages[i].FromModel(mod)
	}
}
