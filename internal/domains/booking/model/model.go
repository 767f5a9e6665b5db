package model

import (
	"time"

	"hotelier/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	RoomTableName   = "booking_rooms"
	RoomEntityName  = "booking_room"
	GuestTableName  = "booking_guests"
	GuestEntityName = "booking_guest"
	StayTableName   = "stay_records"
	StayEntityName  = "stay_record"

	FieldID           = "id"
	FieldCustomerID   = "customer_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldTotalGuests  = "total_guests"
	FieldStatus       = "status"

	FieldBookingID     = "booking_id"
	FieldRoomID        = "room_id"
	FieldState         = "state"
	FieldIsPaid        = "is_paid"
	FieldBookingRoomID = "booking_room_id"
	FieldCheckedOutAt  = "checked_out_at"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// BookingRoom lifecycle states. CHECKED_IN flips to IN_STAY implicitly on the
// first service usage; both count as occupied for checkout purposes.
const (
	StateReserved          = "RESERVED"
	StateCheckedIn         = "CHECKED_IN"
	StateInStay            = "IN_STAY"
	StateInspectionPending = "INSPECTION_PENDING"
	StateInspected         = "INSPECTED"
	StateCheckedOut        = "CHECKED_OUT"
)

var transitions = map[string][]string{
	StateReserved:          {StateCheckedIn},
	StateCheckedIn:         {StateInStay, StateInspectionPending},
	StateInStay:            {StateInspectionPending},
	StateInspectionPending: {StateInspected},
	StateInspected:         {StateCheckedOut},
	StateCheckedOut:        {},
}

// CanTransition reports whether the lifecycle permits moving a BookingRoom
// from one state to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// ActiveStates are the BookingRoom states that keep a Room out of inventory.
func ActiveStates() []string {
	return []string{StateReserved, StateCheckedIn, StateInStay, StateInspectionPending, StateInspected}
}

// OccupiedStates are the states in which guests are physically in the room.
func OccupiedStates() []string {
	return []string{StateCheckedIn, StateInStay, StateInspectionPending, StateInspected}
}

type Booking struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	TotalGuests  int       `db:"total_guests"`
	Status       string    `db:"status"`
	model.Metadata
}

// Nights is the chargeable night count of the reservation window, never less
// than one.
func (b *Booking) Nights() int {
	nights := int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	return nights
}

type BookingRoom struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	RoomID    string `db:"room_id"`
	State     string `db:"state"`

	// Price snapshot taken at reservation time so later tariff changes never
	// reprice an existing stay.
	PricePerNight int64 `db:"price_per_night"`
	Nights        int   `db:"nights"`
	IsPaid        bool  `db:"is_paid"`
	model.Metadata
}

// RoomCharge is the unpaid room charge this BookingRoom contributes to the
// ledger.
func (br *BookingRoom) RoomCharge() int64 {
	return br.PricePerNight * int64(br.Nights)
}

type BookingGuest struct {
	ID            string `db:"id"`
	BookingRoomID string `db:"booking_room_id"`
	CustomerID    string `db:"customer_id"`
	IsPrimary     bool   `db:"is_primary"`
	model.Metadata
}

type StayRecord struct {
	ID            string     `db:"id"`
	BookingRoomID string     `db:"booking_room_id"`
	CheckedInAt   time.Time  `db:"checked_in_at"`
	CheckedOutAt  *time.Time `db:"checked_out_at"`
	model.Metadata
}
