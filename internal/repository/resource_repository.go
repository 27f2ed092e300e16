package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campus-booking/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Resource, int64, error)
	FirstByAssignedStaff(ctx context.Context, staffID uuid.UUID) (*domain.Resource, error)
	FirstByType(ctx context.Context, resourceType domain.ResourceType) (*domain.Resource, error)
	SetPhotoPath(ctx context.Context, id uuid.UUID, path string) error
	CountAll(ctx context.Context) (int64, error)
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (resource_id, name, type, capacity, status, lab_in_charge_id, assigned_staff_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		resource.ID, resource.Name, resource.Type, resource.Capacity,
		resource.Status, resource.LabInChargeID, resource.AssignedStaffID,
	).Scan(&resource.CreatedAt, &resource.UpdatedAt)
}

func (r *resourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var resource domain.Resource
	query := `SELECT * FROM resources WHERE resource_id = $1`

	err := r.db.GetContext(ctx, &resource, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET name = :name, capacity = :capacity, status = :status,
			lab_in_charge_id = :lab_in_charge_id, assigned_staff_id = :assigned_staff_id,
			updated_at = NOW()
		WHERE resource_id = :resource_id`

	_, err := r.db.NamedExecContext(ctx, query, resource)
	return err
}

func (r *resourceRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Resource, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM resources`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	var resources []domain.Resource
	query := `
		SELECT * FROM resources
		ORDER BY name
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &resources, query, params.PageSize, params.Offset())
	return resources, total, err
}

func (r *resourceRepository) FirstByAssignedStaff(ctx context.Context, staffID uuid.UUID) (*domain.Resource, error) {
	var resource domain.Resource
	query := `SELECT * FROM resources WHERE assigned_staff_id = $1 ORDER BY created_at LIMIT 1`

	err := r.db.GetContext(ctx, &resource, query, staffID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) FirstByType(ctx context.Context, resourceType domain.ResourceType) (*domain.Resource, error) {
	var resource domain.Resource
	query := `SELECT * FROM resources WHERE type = $1 ORDER BY created_at LIMIT 1`

	err := r.db.GetContext(ctx, &resource, query, resourceType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) SetPhotoPath(ctx context.Context, id uuid.UUID, path string) error {
	query := `UPDATE resources SET photo_path = $2, updated_at = NOW() WHERE resource_id = $1`

	res, err := r.db.ExecContext(ctx, query, id, path)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM resources`)
	return count, err
}
