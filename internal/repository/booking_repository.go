package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-booking/internal/domain"
)

// ErrSlotOccupied is returned by Create when the requested interval collides
// with a PENDING or APPROVED booking inside the insert transaction.
var ErrSlotOccupied = errors.New("slot already occupied")

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListOccupied(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.TimeSlot, error)
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status domain.BookingStatus, remarks *string) (bool, error)
	ListAll(ctx context.Context, status *domain.BookingStatus, params domain.PaginationParams) ([]domain.Booking, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error)
	ListForLabInCharge(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error)
	ListForStaff(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error)
	StatsForUser(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.UserBookingStats, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts the booking inside one transaction. The resource row is
// locked first so that two concurrent requests for the same resource
// serialize; the overlap re-check then guarantees at most one of them lands.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var resourceID uuid.UUID
	lockQuery := `SELECT resource_id FROM resources WHERE resource_id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &resourceID, lockQuery, booking.ResourceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrResourceNotFound
		}
		return err
	}

	var occupied bool
	overlapQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE resource_id = $1 AND booking_date = $2
				AND status IN ($3, $4)
				AND start_time < $6 AND end_time > $5
		)`
	err = tx.GetContext(ctx, &occupied, overlapQuery,
		booking.ResourceID, booking.BookingDate,
		domain.BookingPending, domain.BookingApproved,
		booking.StartTime, booking.EndTime,
	)
	if err != nil {
		return err
	}
	if occupied {
		return ErrSlotOccupied
	}

	insertQuery := `
		INSERT INTO bookings (booking_id, user_id, resource_id, booking_date, start_time, end_time,
			booking_type, justification, remarks, priority_level, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, insertQuery,
		booking.ID, booking.UserID, booking.ResourceID, booking.BookingDate,
		booking.StartTime, booking.EndTime, booking.BookingType,
		booking.Justification, booking.Remarks, booking.PriorityLevel, booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	query := `SELECT * FROM bookings WHERE booking_id = $1`

	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListOccupied(ctx context.Context, resourceID uuid.UUID, date time.Time) ([]domain.TimeSlot, error) {
	var slots []domain.TimeSlot
	query := `
		SELECT start_time, end_time FROM bookings
		WHERE resource_id = $1 AND booking_date = $2 AND status IN ($3, $4)
		ORDER BY start_time`

	err := r.db.SelectContext(ctx, &slots, query,
		resourceID, date, domain.BookingPending, domain.BookingApproved)
	return slots, err
}

// UpdateStatusIfPending transitions a booking out of PENDING. The status guard
// in the WHERE clause makes concurrent approve/reject calls race safely: the
// loser matches zero rows and reports false.
func (r *bookingRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status domain.BookingStatus, remarks *string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, remarks = COALESCE($3, remarks), updated_at = NOW()
		WHERE booking_id = $1 AND status = $4`

	res, err := r.db.ExecContext(ctx, query, id, status, remarks, domain.BookingPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) ListAll(ctx context.Context, status *domain.BookingStatus, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	params.Validate()

	var total int64
	var bookings []domain.Booking

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM bookings WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM bookings
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &bookings, query, *status, params.PageSize, params.Offset())
		return bookings, total, err
	}

	countQuery := `SELECT COUNT(*) FROM bookings`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &bookings, query, params.PageSize, params.Offset())
	return bookings, total, err
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	query := `
		SELECT * FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &bookings, query, userID, params.PageSize, params.Offset())
	return bookings, total, err
}

// ListForLabInCharge returns bookings on labs the user manages plus the
// user's own bookings.
func (r *bookingRepository) ListForLabInCharge(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM bookings b
		JOIN resources r ON b.resource_id = r.resource_id
		WHERE r.lab_in_charge_id = $1 OR b.user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	query := `
		SELECT b.* FROM bookings b
		JOIN resources r ON b.resource_id = r.resource_id
		WHERE r.lab_in_charge_id = $1 OR b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &bookings, query, userID, params.PageSize, params.Offset())
	return bookings, total, err
}

// ListForStaff returns the user's own bookings plus meeting requests aimed at
// resources assigned to them.
func (r *bookingRepository) ListForStaff(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Booking, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM bookings b
		JOIN resources r ON b.resource_id = r.resource_id
		WHERE b.user_id = $1 OR (r.assigned_staff_id = $1 AND b.booking_type = $2)`
	if err := r.db.GetContext(ctx, &total, countQuery, userID, domain.BookingMeeting); err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	query := `
		SELECT b.* FROM bookings b
		JOIN resources r ON b.resource_id = r.resource_id
		WHERE b.user_id = $1 OR (r.assigned_staff_id = $1 AND b.booking_type = $2)
		ORDER BY b.created_at DESC
		LIMIT $3 OFFSET $4`
	err := r.db.SelectContext(ctx, &bookings, query, userID, domain.BookingMeeting, params.PageSize, params.Offset())
	return bookings, total, err
}

func (r *bookingRepository) StatsForUser(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.UserBookingStats, error) {
	var stats domain.UserBookingStats

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $2 AND booking_date >= $3) AS upcoming,
			COUNT(*) FILTER (WHERE status = $4) AS pending,
			COUNT(*) FILTER (WHERE status = $2 AND booking_date < $3) AS completed
		FROM bookings
		WHERE user_id = $1`

	err := r.db.QueryRowxContext(ctx, query,
		userID, domain.BookingApproved, today, domain.BookingPending,
	).Scan(&stats.Upcoming, &stats.Pending, &stats.Completed)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM bookings WHERE status = $1`
	err := r.db.GetContext(ctx, &count, query, status)
	return count, err
}
