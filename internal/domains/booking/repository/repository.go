package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, bool, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type BookingRoom interface {
	Insert(ctx context.Context, model model.BookingRoom) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BookingRoom) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.BookingRoom) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingRoom, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoom, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) ([]model.BookingRoom, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.BookingRoom, bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error

	// FindAvailableRoomsTx locks up to limit rooms of the given type that have
	// no overlapping active BookingRoom for the requested window. The row
	// locks serialize concurrent allocations of the same rooms, but the
	// overlap subquery runs against the statement's snapshot: after a lock
	// wait it may miss a concurrently committed allocation. Callers must
	// re-verify each candidate with OverlapExistsTx once the locks are held.
	FindAvailableRoomsTx(ctx context.Context, sqltx *sqlx.Tx, roomTypeID string, checkIn, checkOut time.Time, limit int) ([]CandidateRoom, error)

	// LockRoomTx locks one specific room row, returning its nightly price.
	LockRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) (CandidateRoom, bool, error)

	// OverlapExistsTx reports whether an active BookingRoom already holds the
	// room for a window overlapping [checkIn, checkOut). Must be called with
	// the room row lock held.
	OverlapExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (bool, error)
}

type BookingGuest interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.BookingGuest) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingGuest, error)
}

type StayRecord interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.StayRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StayRecord, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

// CandidateRoom is the slice of the rooms table the allocator needs while
// holding a room lock.
type CandidateRoom struct {
	ID            string `db:"id"`
	RoomTypeID    string `db:"room_type_id"`
	Status        string `db:"status"`
	PricePerNight int64  `db:"price_per_night"`
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type bookingRoomRepositoryImpl struct {
	gRepo.Repository[model.BookingRoom]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBookingRoom(db *postgres.Connection, otel otel.Otel) BookingRoom {
	return &bookingRoomRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingRoom](model.RoomEntityName, model.RoomTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const findAvailableRoomsQuery = `
SELECT r.id, r.room_type_id, r.status, rt.price_per_night
FROM rooms r
JOIN room_types rt ON r.room_type_id = rt.id
WHERE r.room_type_id = :room_type_id
  AND r.status <> :maintenance
  AND NOT EXISTS (
    SELECT 1
    FROM booking_rooms br
    JOIN bookings b ON br.booking_id = b.id
    WHERE br.room_id = r.id
      AND br.state <> :checked_out
      AND b.check_in_date < :check_out
      AND b.check_out_date > :check_in
  )
ORDER BY r.number
LIMIT :limit
FOR UPDATE OF r`

func (repo *bookingRoomRepositoryImpl) FindAvailableRoomsTx(ctx context.Context, sqltx *sqlx.Tx, roomTypeID string, checkIn, checkOut time.Time, limit int) ([]CandidateRoom, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_room.FindAvailableRoomsTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findAvailableRoomsQuery)

	var candidates []CandidateRoom

	prepare, err := sqltx.PrepareNamedContext(ctx, findAvailableRoomsQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (available rooms): %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &candidates, map[string]any{
		"room_type_id": roomTypeID,
		"maintenance":  "MAINTENANCE",
		"checked_out":  model.StateCheckedOut,
		"check_in":     checkIn,
		"check_out":    checkOut,
		"limit":        limit,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}

	return candidates, nil
}

const lockRoomQuery = `
SELECT r.id, r.room_type_id, r.status, rt.price_per_night
FROM rooms r
JOIN room_types rt ON r.room_type_id = rt.id
WHERE r.id = :room_id
FOR UPDATE OF r`

func (repo *bookingRoomRepositoryImpl) LockRoomTx(ctx context.Context, sqltx *sqlx.Tx, roomID string) (CandidateRoom, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_room.LockRoomTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, lockRoomQuery)

	var candidate CandidateRoom

	prepare, err := sqltx.PrepareNamedContext(ctx, lockRoomQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return candidate, false, fmt.Errorf("failed to prepare statement (lock room): %w", err)
	}
	defer prepare.Close()

	rows := []CandidateRoom{}

	err = prepare.SelectContext(ctx, &rows, map[string]any{"room_id": roomID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return candidate, false, fmt.Errorf("failed to lock room: %w", err)
	}

	if len(rows) == 0 {
		return candidate, false, nil
	}

	return rows[0], true, nil
}

const overlapExistsQuery = `
SELECT EXISTS (
  SELECT 1
  FROM booking_rooms br
  JOIN bookings b ON br.booking_id = b.id
  WHERE br.room_id = :room_id
    AND br.state <> :checked_out
    AND b.check_in_date < :check_out
    AND b.check_out_date > :check_in
)`

func (repo *bookingRoomRepositoryImpl) OverlapExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_room.OverlapExistsTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, overlapExistsQuery)

	exists := false

	prepare, err := sqltx.PrepareNamedContext(ctx, overlapExistsQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare statement (overlap check): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &exists, map[string]any{
		"room_id":     roomID,
		"checked_out": model.StateCheckedOut,
		"check_in":    checkIn,
		"check_out":   checkOut,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check room overlap: %w", err)
	}

	return exists, nil
}

type bookingGuestRepositoryImpl struct {
	gRepo.Repository[model.BookingGuest]
	db   *postgres.Connection
	otel otel.Otel
}

func NewBookingGuest(db *postgres.Connection, otel otel.Otel) BookingGuest {
	return &bookingGuestRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingGuest](model.GuestEntityName, model.GuestTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type stayRecordRepositoryImpl struct {
	gRepo.Repository[model.StayRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func NewStayRecord(db *postgres.Connection, otel otel.Otel) StayRecord {
	return &stayRecordRepositoryImpl{
		Repository: gRepo.NewRepository[model.StayRecord](model.StayEntityName, model.StayTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
