package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	postgresMocks "hotelier/infras/postgres/mocks"
	activityMocks "hotelier/internal/domains/activity/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/booking/service"
	inspectionMocks "hotelier/internal/domains/inspection/mocks"
	inspectionModel "hotelier/internal/domains/inspection/model"
	roomMocks "hotelier/internal/domains/room/mocks"
	roomModel "hotelier/internal/domains/room/model"
	transactionMocks "hotelier/internal/domains/transaction/mocks"
	transactionModel "hotelier/internal/domains/transaction/model"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

type bookingMockSet struct {
	repo            *bookingMocks.MockBooking
	bookingRoomRepo *bookingMocks.MockBookingRoom
	guestRepo       *bookingMocks.MockBookingGuest
	stayRepo        *bookingMocks.MockStayRecord
	roomRepo        *roomMocks.MockRoom
	roomTypeRepo    *roomMocks.MockRoomType
	inspectionRepo  *inspectionMocks.MockInspection
	folioRepo       *transactionMocks.MockGuestFolio
	activity        *activityMocks.MockRecorderService
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	m := bookingMockSet{
		repo:            bookingMocks.NewMockBooking(ctrl),
		bookingRoomRepo: bookingMocks.NewMockBookingRoom(ctrl),
		guestRepo:       bookingMocks.NewMockBookingGuest(ctrl),
		stayRepo:        bookingMocks.NewMockStayRecord(ctrl),
		roomRepo:        roomMocks.NewMockRoom(ctrl),
		roomTypeRepo:    roomMocks.NewMockRoomType(ctrl),
		inspectionRepo:  inspectionMocks.NewMockInspection(ctrl),
		folioRepo:       transactionMocks.NewMockGuestFolio(ctrl),
		activity:        activityMocks.NewMockRecorderService(ctrl),
	}

	svc := service.New(
		m.repo, m.bookingRoomRepo, m.guestRepo, m.stayRepo,
		m.roomRepo, m.roomTypeRepo, m.inspectionRepo, m.folioRepo,
		m.activity, postgresMocks.NewTransactor(), otelMocks.NewOtel(),
	)

	return svc, m
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
}

func candidate(id string, price int64) repository.CandidateRoom {
	return repository.CandidateRoom{
		ID:            id,
		RoomTypeID:    "type-1",
		Status:        roomModel.StatusAvailable,
		PricePerNight: price,
	}
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		CustomerID:   "cust-1",
		CheckInDate:  "2026-09-10",
		CheckOutDate: "2026-09-12",
		TotalGuests:  2,
		Rooms:        []dto.RequestedRoom{{RoomTypeID: "type-1", Count: 2}},
	}

	t.Run("assigns the requested number of rooms", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			FindAvailableRoomsTx(gomock.Any(), gomock.Any(), "type-1", gomock.Any(), gomock.Any(), 2).
			Return([]repository.CandidateRoom{candidate("room-1", 500000), candidate("room-2", 500000)}, nil)
		m.bookingRoomRepo.EXPECT().
			OverlapExistsTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(2)

		var insertedRooms []model.BookingRoom

		m.bookingRoomRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, rooms []model.BookingRoom) error {
				insertedRooms = rooms

				return nil
			})
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Create(testContext(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusOpen, res.Status)
		assert.Len(t, insertedRooms, 2)
		assert.Equal(t, model.StateReserved, insertedRooms[0].State)
		assert.Equal(t, 2, insertedRooms[0].Nights)
		assert.Equal(t, int64(500000), insertedRooms[0].PricePerNight)
	})

	t.Run("candidate allocated concurrently conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			FindAvailableRoomsTx(gomock.Any(), gomock.Any(), "type-1", gomock.Any(), gomock.Any(), 2).
			Return([]repository.CandidateRoom{candidate("room-1", 500000), candidate("room-2", 500000)}, nil)

		// The candidate query saw both rooms free, but while this call waited
		// on the row locks another booking committed room-1 for the same
		// window. The post-lock re-check must abort the whole allocation.
		m.bookingRoomRepo.EXPECT().
			OverlapExistsTx(gomock.Any(), gomock.Any(), "room-1", gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Create(testContext(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("shortage of rooms conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			FindAvailableRoomsTx(gomock.Any(), gomock.Any(), "type-1", gomock.Any(), gomock.Any(), 2).
			Return([]repository.CandidateRoom{candidate("room-1", 500000)}, nil)

		_, err := svc.Create(testContext(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("check-in date must precede check-out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newBookingService(ctrl)

		req := validReq
		req.CheckInDate = "2026-09-12"
		req.CheckOutDate = "2026-09-10"

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_ReserveRoom(t *testing.T) {
	openBooking := model.Booking{
		ID:           "booking-1",
		CustomerID:   "cust-1",
		CheckInDate:  timezone.Now(),
		CheckOutDate: timezone.Now().AddDate(0, 0, 3),
		Status:       model.StatusOpen,
	}

	tests := []struct {
		name      string
		setupMock func(m bookingMockSet)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful reservation",
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openBooking, nil)
				m.bookingRoomRepo.EXPECT().
					LockRoomTx(gomock.Any(), gomock.Any(), "room-9").
					Return(candidate("room-9", 800000), true, nil)
				m.bookingRoomRepo.EXPECT().
					OverlapExistsTx(gomock.Any(), gomock.Any(), "room-9", gomock.Any(), gomock.Any()).
					Return(false, nil)
				m.bookingRoomRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				m.activity.EXPECT().
					RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "room held for overlapping dates",
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openBooking, nil)
				m.bookingRoomRepo.EXPECT().
					LockRoomTx(gomock.Any(), gomock.Any(), "room-9").
					Return(candidate("room-9", 800000), true, nil)
				m.bookingRoomRepo.EXPECT().
					OverlapExistsTx(gomock.Any(), gomock.Any(), "room-9", gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "room under maintenance",
			setupMock: func(m bookingMockSet) {
				maintenance := candidate("room-9", 800000)
				maintenance.Status = roomModel.StatusMaintenance

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openBooking, nil)
				m.bookingRoomRepo.EXPECT().
					LockRoomTx(gomock.Any(), gomock.Any(), "room-9").
					Return(maintenance, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "closed booking",
			setupMock: func(m bookingMockSet) {
				closed := openBooking
				closed.Status = model.StatusClosed

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(closed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "booking not found",
			setupMock: func(m bookingMockSet) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)

			res, err := svc.ReserveRoom(testContext(), "booking-1", dto.ReserveRoomRequest{RoomID: "room-9"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StateReserved, res.State)
			assert.Equal(t, int64(800000), res.PricePerNight)
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	reservedRoom := model.BookingRoom{
		ID:        "br-1",
		BookingID: "booking-1",
		RoomID:    "room-1",
		State:     model.StateReserved,
		Nights:    2,
	}

	guests := []dto.GuestAssignment{
		{CustomerID: "cust-1", IsPrimary: true},
		{CustomerID: "cust-2"},
	}

	t.Run("opens a stay and the folio on first check-in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(reservedRoom, true, nil)
		m.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", CustomerID: "cust-1", Status: model.StatusOpen}, true, nil)
		m.guestRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.stayRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.folioRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		var openedFolio transactionModel.GuestFolio

		m.folioRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, folio transactionModel.GuestFolio) error {
				openedFolio = folio

				return nil
			})
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.CheckIn(testContext(), dto.CheckInRequest{BookingRoomID: "br-1", Guests: guests})

		assert.NoError(t, err)
		assert.Equal(t, model.StateCheckedIn, res.BookingRoom.State)
		assert.Equal(t, "booking-1", openedFolio.BookingID)
		assert.Equal(t, transactionModel.FolioStatusOpen, openedFolio.Status)
	})

	t.Run("second check-in reuses the existing folio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(reservedRoom, true, nil)
		m.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: model.StatusOpen}, true, nil)
		m.guestRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.stayRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.folioRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.CheckIn(testContext(), dto.CheckInRequest{BookingRoomID: "br-1", Guests: guests})

		assert.NoError(t, err)
	})

	t.Run("requires exactly one primary guest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newBookingService(ctrl)

		_, err := svc.CheckIn(testContext(), dto.CheckInRequest{
			BookingRoomID: "br-1",
			Guests: []dto.GuestAssignment{
				{CustomerID: "cust-1", IsPrimary: true},
				{CustomerID: "cust-2", IsPrimary: true},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects check-in from an occupied state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		occupied := reservedRoom
		occupied.State = model.StateCheckedIn

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(occupied, true, nil)

		_, err := svc.CheckIn(testContext(), dto.CheckInRequest{BookingRoomID: "br-1", Guests: guests})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestBookingService_RequestCheckout(t *testing.T) {
	t.Run("moves occupied rooms to inspection pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.BookingRoom{ID: "br-1", BookingID: "booking-1", State: model.StateInStay}, true, nil)
		m.bookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.RequestCheckout(testContext(), dto.CheckoutRequestRequest{BookingRoomIDs: []string{"br-1"}})

		assert.NoError(t, err)
	})

	t.Run("reserved room cannot request checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.BookingRoom{ID: "br-1", State: model.StateReserved}, true, nil)

		err := svc.RequestCheckout(testContext(), dto.CheckoutRequestRequest{BookingRoomIDs: []string{"br-1"}})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	inspectedRoom := model.BookingRoom{
		ID:        "br-1",
		BookingID: "booking-1",
		RoomID:    "room-1",
		State:     model.StateInspected,
	}

	approvedInspection := inspectionModel.Inspection{
		ID:            "insp-1",
		BookingRoomID: "br-1",
		IsApproved:    true,
	}

	t.Run("frees the room and closes the booking on the last checkout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inspectedRoom, true, nil)
		m.inspectionRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(approvedInspection, nil)
		m.bookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.stayRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		// No remaining holder of the room, no remaining open room of the booking.
		m.bookingRoomRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRoom{}, nil).
			Times(2)
		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.CheckOut(testContext(), dto.CheckOutRequest{BookingRoomIDs: []string{"br-1"}})

		assert.NoError(t, err)
		assert.Len(t, res.BookingRooms, 1)
		assert.Equal(t, model.StateCheckedOut, res.BookingRooms[0].State)
		assert.Equal(t, []string{"room-1"}, res.FreedRoomIDs)
	})

	t.Run("booking stays open while sibling rooms remain", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inspectedRoom, true, nil)
		m.inspectionRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(approvedInspection, nil)
		m.bookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.stayRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRoom{}, nil)
		m.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.activity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookingRoomRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.BookingRoom{{ID: "br-2", State: model.StateCheckedIn}}, nil)

		_, err := svc.CheckOut(testContext(), dto.CheckOutRequest{BookingRoomIDs: []string{"br-1"}})

		assert.NoError(t, err)
	})

	t.Run("checkout blocked without an inspection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inspectedRoom, true, nil)
		m.inspectionRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inspectionModel.Inspection{}, nil)

		_, err := svc.CheckOut(testContext(), dto.CheckOutRequest{BookingRoomIDs: []string{"br-1"}})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("checkout blocked by an unapproved inspection", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		pending := approvedInspection
		pending.IsApproved = false

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inspectedRoom, true, nil)
		m.inspectionRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		_, err := svc.CheckOut(testContext(), dto.CheckOutRequest{BookingRoomIDs: []string{"br-1"}})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("checkout from a non-inspected state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		inStay := inspectedRoom
		inStay.State = model.StateInStay

		m.bookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inStay, true, nil)

		_, err := svc.CheckOut(testContext(), dto.CheckOutRequest{BookingRoomIDs: []string{"br-1"}})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})
}
