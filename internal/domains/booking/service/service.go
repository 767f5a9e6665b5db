package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	activityModel "hotelier/internal/domains/activity/model"
	activityDto "hotelier/internal/domains/activity/model/dto"
	activitySvc "hotelier/internal/domains/activity/service"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	inspectionModel "hotelier/internal/domains/inspection/model"
	inspectionRepo "hotelier/internal/domains/inspection/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	transactionModel "hotelier/internal/domains/transaction/model"
	transactionRepo "hotelier/internal/domains/transaction/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ReserveRoom(ctx context.Context, bookingID string, req dto.ReserveRoomRequest) (dto.BookingRoomResponse, error)
	CheckIn(ctx context.Context, req dto.CheckInRequest) (dto.CheckInResponse, error)
	RequestCheckout(ctx context.Context, req dto.CheckoutRequestRequest) error
	CheckOut(ctx context.Context, req dto.CheckOutRequest) (dto.CheckOutResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo            repository.Booking
	bookingRoomRepo repository.BookingRoom
	guestRepo       repository.BookingGuest
	stayRepo        repository.StayRecord
	roomRepo        roomRepo.Room
	roomTypeRepo    roomRepo.RoomType
	inspectionRepo  inspectionRepo.Inspection
	folioRepo       transactionRepo.GuestFolio
	activity        activitySvc.Recorder
	transactor      postgres.Transactor
	otel            otel.Otel
}

func New(
	repo repository.Booking,
	bookingRoomRepo repository.BookingRoom,
	guestRepo repository.BookingGuest,
	stayRepo repository.StayRecord,
	roomRepository roomRepo.Room,
	roomTypeRepository roomRepo.RoomType,
	inspectionRepository inspectionRepo.Inspection,
	folioRepo transactionRepo.GuestFolio,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:            repo,
		bookingRoomRepo: bookingRoomRepo,
		guestRepo:       guestRepo,
		stayRepo:        stayRepo,
		roomRepo:        roomRepository,
		roomTypeRepo:    roomTypeRepository,
		inspectionRepo:  inspectionRepository,
		folioRepo:       folioRepo,
		activity:        activity,
		transactor:      transactor,
		otel:            otel,
	}
}

// Create reserves rooms for the requested types and dates in one atomic unit.
// Candidate rooms are row-locked before assignment, so two concurrent
// bookings can never hold the same room for overlapping dates.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString("invalid booking dates") // nolint:wrapcheck
	}

	if !booking.CheckInDate.Before(booking.CheckOutDate) {
		return res, failure.BadRequestFromString("check-in date must be before check-out date") // nolint:wrapcheck
	}

	nights := booking.Nights()
	now := timezone.Now()

	var bookingRooms []model.BookingRoom

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		for _, requested := range req.Rooms {
			candidates, err := s.bookingRoomRepo.FindAvailableRoomsTx(ctx, tx,
				requested.RoomTypeID, booking.CheckInDate, booking.CheckOutDate, requested.Count)
			if err != nil {
				return fmt.Errorf("failed to find available rooms: %w", err)
			}

			if len(candidates) < requested.Count {
				return failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
					"room type %s has only %d room(s) available for the requested dates, %d requested",
					requested.RoomTypeID, len(candidates), requested.Count))
			}

			for _, candidate := range candidates {
				// The candidate query's snapshot can predate a concurrent
				// allocation that committed while we waited on its row locks,
				// so overlap is re-verified per room with the locks held.
				taken, err := s.bookingRoomRepo.OverlapExistsTx(ctx, tx,
					candidate.ID, booking.CheckInDate, booking.CheckOutDate)
				if err != nil {
					return fmt.Errorf("failed to re-check room availability: %w", err)
				}

				if taken {
					return failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
						"room %s was allocated concurrently for the requested dates", candidate.ID))
				}

				bookingRooms = append(bookingRooms, model.BookingRoom{
					ID:            uuid.NewString(),
					BookingID:     booking.ID,
					RoomID:        candidate.ID,
					State:         model.StateReserved,
					PricePerNight: candidate.PricePerNight,
					Nights:        nights,
					Metadata:      gModel.NewMetadata(now, user),
				})
			}
		}

		if err := s.bookingRoomRepo.InsertBulkTx(ctx, tx, bookingRooms); err != nil {
			return fmt.Errorf("failed to create booking rooms: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeBookingCreated,
			SubjectType: model.EntityName,
			SubjectID:   booking.ID,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("customerID", req.CustomerID).Msg("failed to create booking")

		return res, err
	}

	res.FromModel(booking, bookingRooms)

	return res, nil
}

// ReserveRoom adds one specific room to an existing open booking. The room
// row is locked before the overlap check, so the check-and-create is atomic;
// a losing concurrent caller gets a conflict and should pick another room.
func (s *serviceImpl) ReserveRoom(ctx context.Context, bookingID string, req dto.ReserveRoomRequest) (res dto.BookingRoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ReserveRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != model.StatusOpen {
		return res, failure.UnprocessableEntity(fmt.Sprintf("booking %s is closed", bookingID)) // nolint:wrapcheck
	}

	var bookingRoom model.BookingRoom

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		candidate, found, err := s.bookingRoomRepo.LockRoomTx(ctx, tx, req.RoomID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if !found {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if candidate.Status == roomModel.StatusMaintenance {
			return failure.Conflict(fmt.Sprintf("room %s is under maintenance", req.RoomID)) // nolint:wrapcheck
		}

		taken, err := s.bookingRoomRepo.OverlapExistsTx(ctx, tx, req.RoomID, booking.CheckInDate, booking.CheckOutDate)
		if err != nil {
			return fmt.Errorf("failed to check room availability: %w", err)
		}

		if taken {
			return failure.Conflict(fmt.Sprintf("room %s is unavailable for the requested dates", req.RoomID)) // nolint:wrapcheck
		}

		bookingRoom = model.BookingRoom{
			ID:            uuid.NewString(),
			BookingID:     booking.ID,
			RoomID:        candidate.ID,
			State:         model.StateReserved,
			PricePerNight: candidate.PricePerNight,
			Nights:        booking.Nights(),
			Metadata:      gModel.NewMetadata(timezone.Now(), user),
		}

		if err := s.bookingRoomRepo.InsertTx(ctx, tx, bookingRoom); err != nil {
			return fmt.Errorf("failed to create booking room: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeRoomReserved,
			SubjectType: model.RoomEntityName,
			SubjectID:   bookingRoom.ID,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Str("roomID", req.RoomID).Msg("failed to reserve room")

		return res, err
	}

	res.FromModel(bookingRoom)

	return res, nil
}

// CheckIn moves a reserved room into occupancy: guests are assigned (exactly
// one primary), a stay record opens, the room flips to OCCUPIED, and the
// booking's guest folio opens if it hasn't already.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.PrimaryCount() != 1 {
		return res, failure.BadRequestFromString("exactly one guest must be marked primary") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()

	var (
		bookingRoom model.BookingRoom
		stay        model.StayRecord
	)

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var found bool

		bookingRoom, found, err = s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(req.BookingRoomID, model.FieldID, model.RoomTableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking room: %w", err)
		}

		if !found {
			return failure.NotFound("booking room not found") // nolint:wrapcheck
		}

		if !model.CanTransition(bookingRoom.State, model.StateCheckedIn) {
			return failure.UnprocessableEntity(fmt.Sprintf( // nolint:wrapcheck
				"booking room %s cannot check in from state %s", bookingRoom.ID, bookingRoom.State))
		}

		// Lock the booking row to serialize folio creation across concurrent
		// check-ins of the same booking.
		booking, found, err := s.repo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(bookingRoom.BookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !found {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		guests := make([]model.BookingGuest, len(req.Guests))
		for i, g := range req.Guests {
			guests[i] = model.BookingGuest{
				ID:            uuid.NewString(),
				BookingRoomID: bookingRoom.ID,
				CustomerID:    g.CustomerID,
				IsPrimary:     g.IsPrimary,
				Metadata:      gModel.NewMetadata(now, user),
			}
		}

		if err := s.guestRepo.InsertBulkTx(ctx, tx, guests); err != nil {
			return fmt.Errorf("failed to assign guests: %w", err)
		}

		err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
			model.FieldState: model.StateCheckedIn,
			"modified_at":    now,
			"modified_by":    user,
		}, shared.FilterByID(bookingRoom.ID, model.FieldID, model.RoomTableName))
		if err != nil {
			return fmt.Errorf("failed to update booking room state: %w", err)
		}

		err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
			roomModel.FieldStatus: roomModel.StatusOccupied,
			"modified_at":         now,
			"modified_by":         user,
		}, shared.FilterByID(bookingRoom.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		stay = model.StayRecord{
			ID:            uuid.NewString(),
			BookingRoomID: bookingRoom.ID,
			CheckedInAt:   now,
			Metadata:      gModel.NewMetadata(now, user),
		}

		if err := s.stayRepo.InsertTx(ctx, tx, stay); err != nil {
			return fmt.Errorf("failed to create stay record: %w", err)
		}

		if err := s.openFolioTx(ctx, tx, booking, now, user); err != nil {
			return err
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeCheckedIn,
			SubjectType: model.RoomEntityName,
			SubjectID:   bookingRoom.ID,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("bookingRoomID", req.BookingRoomID).Msg("failed to check in")

		return res, err
	}

	bookingRoom.State = model.StateCheckedIn
	res.BookingRoom.FromModel(bookingRoom)
	res.StayRecord.FromModel(stay)

	return res, nil
}

// RequestCheckout moves occupied rooms to INSPECTION_PENDING. Checkout itself
// stays blocked until each room's inspection is approved.
func (s *serviceImpl) RequestCheckout(ctx context.Context, req dto.CheckoutRequestRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RequestCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, id := range req.BookingRoomIDs {
			bookingRoom, found, err := s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
				shared.FilterByID(id, model.FieldID, model.RoomTableName))
			if err != nil {
				return fmt.Errorf("failed to lock booking room: %w", err)
			}

			if !found {
				return failure.NotFound(fmt.Sprintf("booking room %s not found", id)) // nolint:wrapcheck
			}

			if !model.CanTransition(bookingRoom.State, model.StateInspectionPending) {
				return failure.UnprocessableEntity(fmt.Sprintf( // nolint:wrapcheck
					"booking room %s cannot request checkout from state %s", id, bookingRoom.State))
			}

			err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
				model.FieldState: model.StateInspectionPending,
				"modified_at":    now,
				"modified_by":    user,
			}, shared.FilterByID(id, model.FieldID, model.RoomTableName))
			if err != nil {
				return fmt.Errorf("failed to update booking room state: %w", err)
			}

			err = s.activity.RecordTx(ctx, tx, activityDto.Entry{
				Type:        activityModel.TypeCheckoutRequested,
				SubjectType: model.RoomEntityName,
				SubjectID:   id,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Strs("bookingRoomIDs", req.BookingRoomIDs).Msg("failed to request checkout")

		return err
	}

	return nil
}

// CheckOut completes the stay for the given rooms. Each room must hold an
// approved inspection; the gate is re-checked here even though the INSPECTED
// state implies it. Freed rooms return to AVAILABLE and the booking closes
// once its last room checks out.
func (s *serviceImpl) CheckOut(ctx context.Context, req dto.CheckOutRequest) (res dto.CheckOutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()

	var (
		checkedOut []model.BookingRoom
		freedRooms []string
	)

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		bookingIDs := map[string]struct{}{}

		for _, id := range req.BookingRoomIDs {
			bookingRoom, found, err := s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
				shared.FilterByID(id, model.FieldID, model.RoomTableName))
			if err != nil {
				return fmt.Errorf("failed to lock booking room: %w", err)
			}

			if !found {
				return failure.NotFound(fmt.Sprintf("booking room %s not found", id)) // nolint:wrapcheck
			}

			if !model.CanTransition(bookingRoom.State, model.StateCheckedOut) {
				return failure.UnprocessableEntity(fmt.Sprintf( // nolint:wrapcheck
					"booking room %s cannot check out from state %s", id, bookingRoom.State))
			}

			inspection, err := s.inspectionRepo.Get(ctx,
				shared.FilterByID(id, inspectionModel.FieldBookingRoomID, inspectionModel.TableName))
			if err != nil {
				return fmt.Errorf("failed to get inspection: %w", err)
			}

			if inspection.ID == "" {
				return failure.UnprocessableEntity(fmt.Sprintf("booking room %s has no inspection", id)) // nolint:wrapcheck
			}

			if !inspection.CanCheckout() {
				return failure.UnprocessableEntity(fmt.Sprintf( // nolint:wrapcheck
					"booking room %s inspection %s is not approved", id, inspection.ID))
			}

			err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
				model.FieldState: model.StateCheckedOut,
				"modified_at":    now,
				"modified_by":    user,
			}, shared.FilterByID(id, model.FieldID, model.RoomTableName))
			if err != nil {
				return fmt.Errorf("failed to update booking room state: %w", err)
			}

			err = s.stayRepo.UpdateTx(ctx, tx, map[string]any{
				model.FieldCheckedOutAt: now,
				"modified_at":           now,
				"modified_by":           user,
			}, shared.FilterByID(id, model.FieldBookingRoomID, model.StayTableName))
			if err != nil {
				return fmt.Errorf("failed to close stay record: %w", err)
			}

			freed, err := s.freeRoomTx(ctx, tx, bookingRoom.RoomID, now, user)
			if err != nil {
				return err
			}

			if freed {
				freedRooms = append(freedRooms, bookingRoom.RoomID)
			}

			bookingRoom.State = model.StateCheckedOut
			checkedOut = append(checkedOut, bookingRoom)
			bookingIDs[bookingRoom.BookingID] = struct{}{}

			err = s.activity.RecordTx(ctx, tx, activityDto.Entry{
				Type:        activityModel.TypeCheckedOut,
				SubjectType: model.RoomEntityName,
				SubjectID:   id,
			})
			if err != nil {
				return err
			}
		}

		for bookingID := range bookingIDs {
			if err := s.closeBookingIfDoneTx(ctx, tx, bookingID, now, user); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Strs("bookingRoomIDs", req.BookingRoomIDs).Msg("failed to check out")

		return res, err
	}

	res.BookingRooms = make([]dto.BookingRoomResponse, len(checkedOut))
	for i, br := range checkedOut {
		res.BookingRooms[i].FromModel(br)
	}

	res.FreedRoomIDs = freedRooms

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	rooms, err := s.bookingRoomRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByID(id, model.FieldBookingID, model.RoomTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking rooms")

		return res, fmt.Errorf("failed to get booking rooms: %w", err)
	}

	res.FromModel(booking, rooms)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// openFolioTx creates the booking's guest folio on first check-in. Caller
// must hold the booking row lock, which serializes folio creation per
// booking.
func (s *serviceImpl) openFolioTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, now time.Time, user string) error {
	exists, err := s.folioRepo.Exist(ctx, shared.FilterByID(booking.ID, transactionModel.FieldBookingID, transactionModel.FolioTableName))
	if err != nil {
		return fmt.Errorf("failed to check guest folio: %w", err)
	}

	if exists {
		return nil
	}

	folio := transactionModel.GuestFolio{
		ID:         uuid.NewString(),
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Status:     transactionModel.FolioStatusOpen,
		Metadata:   gModel.NewMetadata(now, user),
	}

	if err := s.folioRepo.InsertTx(ctx, tx, folio); err != nil {
		return fmt.Errorf("failed to open guest folio: %w", err)
	}

	return nil
}

// freeRoomTx returns the room to AVAILABLE when no active BookingRoom still
// references it. The just-checked-out row is already updated inside this
// transaction, so a clean checkout sees no remaining holders.
func (s *serviceImpl) freeRoomTx(ctx context.Context, tx *sqlx.Tx, roomID string, now time.Time, user string) (bool, error) {
	holders, err := s.bookingRoomRepo.GetAllTx(ctx, tx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomTableName,
			},
			gDto.Filter{
				Field:    model.FieldState,
				Value:    model.ActiveStates(),
				Operator: gDto.FilterOperatorIn,
				Table:    model.RoomTableName,
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check remaining room holders: %w", err)
	}

	if len(holders) > 0 {
		return false, nil
	}

	err = s.roomRepo.UpdateTx(ctx, tx, map[string]any{
		roomModel.FieldStatus: roomModel.StatusAvailable,
		"modified_at":         now,
		"modified_by":         user,
	}, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to free room: %w", err)
	}

	return true, nil
}

// closeBookingIfDoneTx closes the booking once every one of its rooms has
// reached CHECKED_OUT.
func (s *serviceImpl) closeBookingIfDoneTx(ctx context.Context, tx *sqlx.Tx, bookingID string, now time.Time, user string) error {
	remaining, err := s.bookingRoomRepo.GetAllTx(ctx, tx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.RoomTableName,
			},
			gDto.Filter{
				Field:    model.FieldState,
				Value:    model.StateCheckedOut,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.RoomTableName,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to check remaining booking rooms: %w", err)
	}

	if len(remaining) > 0 {
		return nil
	}

	err = s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus: model.StatusClosed,
		"modified_at":     now,
		"modified_by":     user,
	}, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to close booking: %w", err)
	}

	return nil
}
