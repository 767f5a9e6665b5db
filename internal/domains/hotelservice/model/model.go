package model

import (
	"hotelier/shared/model"
)

const (
	TableName  = "hotel_services"
	EntityName = "hotel_service"

	UsageTableName  = "service_usages"
	UsageEntityName = "service_usage"

	FieldID            = "id"
	FieldName          = "name"
	FieldIsActive      = "is_active"
	FieldServiceID     = "service_id"
	FieldBookingID     = "booking_id"
	FieldBookingRoomID = "booking_room_id"
	FieldStatus        = "status"
)

// ServiceUsage statuses. A usage stays mutable until it is billed by a
// transaction.
const (
	UsageStatusUnbilled = "UNBILLED"
	UsageStatusBilled   = "BILLED"
)

type HotelService struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Price    int64  `db:"price"`
	Unit     string `db:"unit"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}

type ServiceUsage struct {
	ID            string  `db:"id"`
	ServiceID     string  `db:"service_id"`
	BookingID     *string `db:"booking_id"`
	BookingRoomID *string `db:"booking_room_id"`
	Quantity      int     `db:"quantity"`

	// Price snapshot taken when the usage is recorded.
	UnitPrice int64  `db:"unit_price"`
	Status    string `db:"status"`
	model.Metadata
}

// Charge is the amount this usage contributes to the ledger.
func (u *ServiceUsage) Charge() int64 {
	return u.UnitPrice * int64(u.Quantity)
}
