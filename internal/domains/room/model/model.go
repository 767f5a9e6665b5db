package model

import (
	"hotelier/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"

	FieldID            = "id"
	FieldNumber        = "number"
	FieldFloor         = "floor"
	FieldStatus        = "status"
	FieldRoomTypeID    = "room_type_id"
	FieldCapacity      = "capacity"
	FieldTotalBed      = "total_bed"
	FieldPricePerNight = "price_per_night"
)

// Room statuses. Transitions happen only through the stay lifecycle or an
// explicit admin update.
const (
	StatusAvailable   = "AVAILABLE"
	StatusOccupied    = "OCCUPIED"
	StatusMaintenance = "MAINTENANCE"
)

type RoomType struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Capacity      int    `db:"capacity"`
	TotalBed      int    `db:"total_bed"`
	PricePerNight int64  `db:"price_per_night"`
	model.Metadata
}

type Room struct {
	ID         string `db:"id"`
	Number     string `db:"number"`
	Floor      int    `db:"floor"`
	Status     string `db:"status"`
	RoomTypeID string `db:"room_type_id"`

	// Joined from room_types.
	Capacity      int    `db:"capacity"        table:"room_types"`
	TotalBed      int    `db:"total_bed"       table:"room_types"`
	PricePerNight int64  `db:"price_per_night" table:"room_types"`
	RoomTypeName  string `db:"room_type_name"  table:"room_types" column:"name"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "JOIN room_types ON rooms.room_type_id = room_types.id"
}
