package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
)

var ErrEmailExists = errors.New("email already registered")

// Service covers admin account management: provisioning, listing and
// activation toggling. Self-service registration lives in the auth service.
type Service interface {
	Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.User], error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID, meta domain.RequestMeta) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	auditRepo   repository.AuditLogRepository
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, auditRepo repository.AuditLogRepository) Service {
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		auditRepo:   auditRepo,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Phone:        input.Phone,
		EmployeeID:   input.EmployeeID,
		Role:         role,
		Status:       domain.UserActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.User], error) {
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := domain.NewPaginatedResponse(users, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return s.userRepo.ListByRole(ctx, role)
}

// Deactivate disables the account and revokes its open sessions so the user
// cannot keep acting on a live refresh token.
func (s *service) Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID, meta domain.RequestMeta) error {
	if err := s.userRepo.SetStatus(ctx, id, domain.UserInactive); err != nil {
		return err
	}

	if err := s.sessionRepo.RevokeAllForUser(ctx, id); err != nil {
		log.Printf("session revocation failed for user %s: %v", id, err)
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:    actor.ID,
		Action:    domain.AuditUserDeactivated,
		Details:   fmt.Sprintf("Deactivated user %s", id),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		log.Printf("audit log write failed for user %s: %v", actor.ID, err)
	}
	return nil
}

func (s *service) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.SetStatus(ctx, id, domain.UserActive)
}
