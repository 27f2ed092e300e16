package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-booking/internal/domain"
)

type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.MeetingSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingSchedule, error)
	ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.MeetingSchedule, int64, error)
}

type meetingRepository struct {
	db *sqlx.DB
}

func NewMeetingRepository(db *sqlx.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.MeetingSchedule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO meeting_schedules (meeting_id, title, description, organizer_id, meeting_date, start_time, end_time, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err = tx.QueryRowxContext(ctx, query,
		meeting.ID, meeting.Title, meeting.Description, meeting.OrganizerID,
		meeting.MeetingDate, meeting.StartTime, meeting.EndTime, meeting.LocationID,
	).Scan(&meeting.CreatedAt)
	if err != nil {
		return err
	}

	for _, participantID := range meeting.Participants {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO meeting_participants (meeting_id, user_id) VALUES ($1, $2)`,
			meeting.ID, participantID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingSchedule, error) {
	var meeting domain.MeetingSchedule
	query := `SELECT * FROM meeting_schedules WHERE meeting_id = $1`

	err := r.db.GetContext(ctx, &meeting, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var participants []uuid.UUID
	err = r.db.SelectContext(ctx, &participants,
		`SELECT user_id FROM meeting_participants WHERE meeting_id = $1`, id)
	if err != nil {
		return nil, err
	}
	meeting.Participants = participants

	return &meeting, nil
}

func (r *meetingRepository) ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.MeetingSchedule, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(DISTINCT m.meeting_id) FROM meeting_schedules m
		LEFT JOIN meeting_participants p ON m.meeting_id = p.meeting_id
		WHERE m.organizer_id = $1 OR p.user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var meetings []domain.MeetingSchedule
	query := `
		SELECT DISTINCT m.* FROM meeting_schedules m
		LEFT JOIN meeting_participants p ON m.meeting_id = p.meeting_id
		WHERE m.organizer_id = $1 OR p.user_id = $1
		ORDER BY m.meeting_date DESC, m.start_time DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &meetings, query, userID, params.PageSize, params.Offset())
	return meetings, total, err
}
