package dto

import (
	"github.com/google/uuid"

	"hotelier/internal/domains/booking/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type RequestedRoom struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	Count      int    `json:"count"        validate:"required,gte=1"`
}

type CreateBookingRequest struct {
	CustomerID   string          `json:"customer_id"    validate:"required"`
	CheckInDate  string          `json:"check_in_date"  validate:"required"`
	CheckOutDate string          `json:"check_out_date" validate:"required"`
	TotalGuests  int             `json:"total_guests"   validate:"required,gte=1"`
	Rooms        []RequestedRoom `json:"rooms"          validate:"required,min=1,dive"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:           uuid.NewString(),
		CustomerID:   c.CustomerID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		TotalGuests:  c.TotalGuests,
		Status:       model.StatusOpen,
		Metadata:     gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

type ReserveRoomRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
}

type GuestAssignment struct {
	CustomerID string `json:"customer_id" validate:"required"`
	IsPrimary  bool   `json:"is_primary"`
}

type CheckInRequest struct {
	BookingRoomID string            `json:"booking_room_id" validate:"required,uuid"`
	Guests        []GuestAssignment `json:"guests"          validate:"required,min=1,dive"`
}

// PrimaryCount reports how many guests are flagged primary. Check-in requires
// exactly one.
func (c *CheckInRequest) PrimaryCount() int {
	count := 0
	for _, g := range c.Guests {
		if g.IsPrimary {
			count++
		}
	}

	return count
}

type CheckoutRequestRequest struct {
	BookingRoomIDs []string `json:"booking_room_ids" validate:"required,min=1,dive,uuid"`
}

type CheckOutRequest struct {
	BookingRoomIDs []string `json:"booking_room_ids" validate:"required,min=1,dive,uuid"`
}

type BookingRoomResponse struct {
	ID            string `json:"id"`
	BookingID     string `json:"booking_id"`
	RoomID        string `json:"room_id"`
	State         string `json:"state"`
	PricePerNight int64  `json:"price_per_night"`
	Nights        int    `json:"nights"`
	IsPaid        bool   `json:"is_paid"`
}

func (r *BookingRoomResponse) FromModel(mod model.BookingRoom) {
	r.ID = mod.ID
	r.BookingID = mod.BookingID
	r.RoomID = mod.RoomID
	r.State = mod.State
	r.PricePerNight = mod.PricePerNight
	r.Nights = mod.Nights
	r.IsPaid = mod.IsPaid
}

type BookingResponse struct {
	ID           string                `json:"id"`
	CustomerID   string                `json:"customer_id"`
	CheckInDate  string                `json:"check_in_date"`
	CheckOutDate string                `json:"check_out_date"`
	TotalGuests  int                   `json:"total_guests"`
	Status       string                `json:"status"`
	Rooms        []BookingRoomResponse `json:"rooms"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking, rooms []model.BookingRoom) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.CheckInDate = mod.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = mod.CheckOutDate.Format(constant.DateOnlyFormat)
	r.TotalGuests = mod.TotalGuests
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)

	r.Rooms = make([]BookingRoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}

type StayRecordResponse struct {
	ID            string  `json:"id"`
	BookingRoomID string  `json:"booking_room_id"`
	CheckedInAt   string  `json:"checked_in_at"`
	CheckedOutAt  *string `json:"checked_out_at,omitempty"`
}

func (r *StayRecordResponse) FromModel(mod model.StayRecord) {
	r.ID = mod.ID
	r.BookingRoomID = mod.BookingRoomID
	r.CheckedInAt = timezone.Format(mod.CheckedInAt, constant.DateFormat)

	if mod.CheckedOutAt != nil {
		formatted := timezone.Format(*mod.CheckedOutAt, constant.DateFormat)
		r.CheckedOutAt = &formatted
	}
}

type CheckInResponse struct {
	BookingRoom BookingRoomResponse `json:"booking_room"`
	StayRecord  StayRecordResponse  `json:"stay_record"`
}

type CheckOutResponse struct {
	BookingRooms []BookingRoomResponse `json:"booking_rooms"`
	FreedRoomIDs []string              `json:"freed_room_ids"`
}
