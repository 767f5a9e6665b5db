package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

// SearchRoomsFilter is the typed query filter for the room search. Nil fields
// are not applied. Status is forced to AVAILABLE for customer callers before
// the filter reaches the repository.
type SearchRoomsFilter struct {
	Status     *string
	Floor      *int
	RoomTypeID *string
	MinCap     *int
	MaxCap     *int
	MinPrice   *int64
	MaxPrice   *int64
}

func (f *SearchRoomsFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if f.Status != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Status,
			Table:    model.TableName,
		})
	}

	if f.Floor != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldFloor,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Floor,
			Table:    model.TableName,
		})
	}

	if f.RoomTypeID != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRoomTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.RoomTypeID,
			Table:    model.TableName,
		})
	}

	if f.MinCap != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "min_capacity",
			Field:    model.FieldCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.MinCap,
			Table:    model.RoomTypeTableName,
		})
	}

	if f.MaxCap != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "max_capacity",
			Field:    model.FieldCapacity,
			Operator: gDto.FilterOperatorLessEq,
			Value:    *f.MaxCap,
			Table:    model.RoomTypeTableName,
		})
	}

	if f.MinPrice != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "min_price",
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.MinPrice,
			Table:    model.RoomTypeTableName,
		})
	}

	if f.MaxPrice != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "max_price",
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorLessEq,
			Value:    *f.MaxPrice,
			Table:    model.RoomTypeTableName,
		})
	}

	return group
}

type CreateRoomRequest struct {
	Number     string `json:"number"       validate:"required,max=10"`
	Floor      int    `json:"floor"        validate:"gte=0"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	Status     string `json:"status"       validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:         uuid.NewString(),
		Number:     c.Number,
		Floor:      c.Floor,
		Status:     status,
		RoomTypeID: c.RoomTypeID,
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateRoomRequest struct {
	Number string `db:"number" json:"number" validate:"omitempty,max=10"`
	Floor  *int   `db:"floor"  json:"floor"  validate:"omitempty,gte=0"`
	Status string `db:"status" json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

type RoomResponse struct {
	ID            string `json:"id"`
	Number        string `json:"number"`
	Floor         int    `json:"floor"`
	Status        string `json:"status"`
	RoomTypeID    string `json:"room_type_id"`
	RoomTypeName  string `json:"room_type_name"`
	Capacity      int    `json:"capacity"`
	TotalBed      int    `json:"total_bed"`
	PricePerNight int64  `json:"price_per_night"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.Number = mod.Number
	r.Floor = mod.Floor
	r.Status = mod.Status
	r.RoomTypeID = mod.RoomTypeID
	r.RoomTypeName = mod.RoomTypeName
	r.Capacity = mod.Capacity
	r.TotalBed = mod.TotalBed
	r.PricePerNight = mod.PricePerNight
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
