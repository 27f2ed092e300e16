package audit

import (
	"context"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
)

// Service exposes the admin activity feed over the append-only audit trail.
type Service interface {
	List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{auditRepo: auditRepo}
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()

	logs, total, err := s.auditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(logs, params.Page, params.PageSize, total)
	return &resp, nil
}
