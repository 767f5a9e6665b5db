package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"reserved to checked in", model.StateReserved, model.StateCheckedIn, true},
		{"checked in to in stay", model.StateCheckedIn, model.StateInStay, true},
		{"checked in straight to inspection pending", model.StateCheckedIn, model.StateInspectionPending, true},
		{"in stay to inspection pending", model.StateInStay, model.StateInspectionPending, true},
		{"inspection pending to inspected", model.StateInspectionPending, model.StateInspected, true},
		{"inspected to checked out", model.StateInspected, model.StateCheckedOut, true},
		{"reserved cannot skip to checked out", model.StateReserved, model.StateCheckedOut, false},
		{"reserved cannot go to inspection pending", model.StateReserved, model.StateInspectionPending, false},
		{"inspection pending cannot check out directly", model.StateInspectionPending, model.StateCheckedOut, false},
		{"checked out is terminal", model.StateCheckedOut, model.StateReserved, false},
		{"no self transition", model.StateCheckedIn, model.StateCheckedIn, false},
		{"unknown state", "UNKNOWN", model.StateCheckedIn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestBookingNights(t *testing.T) {
	base := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{"three nights", base, base.AddDate(0, 0, 3), 3},
		{"single night", base, base.AddDate(0, 0, 1), 1},
		{"same day counts as one night", base, base.Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Booking{CheckInDate: tt.checkIn, CheckOutDate: tt.checkOut}

			assert.Equal(t, tt.expected, b.Nights())
		})
	}
}

func TestBookingRoomCharge(t *testing.T) {
	br := model.BookingRoom{PricePerNight: 450000, Nights: 3}

	assert.Equal(t, int64(1350000), br.RoomCharge())
}
