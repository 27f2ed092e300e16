package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"campus-booking/internal/config"
	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
	"campus-booking/internal/service/auth"
	"campus-booking/tests/mocks"
)

type authFixture struct {
	userRepo    *mocks.UserRepository
	sessionRepo *mocks.SessionRepository
	auditRepo   *mocks.AuditLogRepository
	svc         auth.Service
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    new(mocks.UserRepository),
		sessionRepo: new(mocks.SessionRepository),
		auditRepo:   new(mocks.AuditLogRepository),
	}
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
	f.svc = auth.NewService(f.userRepo, f.sessionRepo, f.auditRepo, cfg)
	return f
}

func hashedUser(password string, role domain.Role, status domain.UserStatus) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "someone@campus.edu",
		PasswordHash: string(hash),
		FullName:     "Someone",
		Role:         role,
		Status:       status,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{}

	t.Run("Success issues a token pair", func(t *testing.T) {
		f := newAuthFixture()
		user := hashedUser("correct-horse", domain.RoleStudent, domain.UserActive)

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == domain.AuditLoginSuccess && log.UserID == user.ID
		})).Return(nil).Once()

		got, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"}, meta)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := f.svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.RoleStudent, claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newAuthFixture()
		user := hashedUser("correct-horse", domain.RoleStudent, domain.UserActive)

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"}, meta)

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		f := newAuthFixture()

		f.userRepo.On("GetByEmail", ctx, "ghost@campus.edu").Return(nil, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "ghost@campus.edu", Password: "x"}, meta)

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		f := newAuthFixture()
		user := hashedUser("correct-horse", domain.RoleStudent, domain.UserInactive)

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"}, meta)

		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	meta := domain.RequestMeta{}

	t.Run("Defaults to student role", func(t *testing.T) {
		f := newAuthFixture()

		f.userRepo.On("ExistsByEmail", ctx, "new@campus.edu").Return(false, nil).Once()
		f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleStudent && u.Status == domain.UserActive
		})).Return(nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := f.svc.Register(ctx, domain.CreateUserInput{
			Email:    "new@campus.edu",
			Password: "long-enough-pass",
			FullName: "New Student",
		}, meta)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, user.Role)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Admin role refused", func(t *testing.T) {
		f := newAuthFixture()

		_, _, err := f.svc.Register(ctx, domain.CreateUserInput{
			Email:    "sneaky@campus.edu",
			Password: "long-enough-pass",
			FullName: "Sneaky",
			Role:     domain.RoleAdmin,
		}, meta)

		assert.ErrorIs(t, err, auth.ErrRoleNotAllowed)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		f := newAuthFixture()

		f.userRepo.On("ExistsByEmail", ctx, "dup@campus.edu").Return(true, nil).Once()

		_, _, err := f.svc.Register(ctx, domain.CreateUserInput{
			Email:    "dup@campus.edu",
			Password: "long-enough-pass",
			FullName: "Dup",
		}, meta)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Rotates the session", func(t *testing.T) {
		f := newAuthFixture()
		user := hashedUser("pw", domain.RoleStaff, domain.UserActive)
		session := testSession(user.ID)

		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		f.sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		f.sessionRepo.AssertExpectations(t)
	})

	t.Run("Unknown token", func(t *testing.T) {
		f := newAuthFixture()

		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := f.svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Deactivated user cannot refresh", func(t *testing.T) {
		f := newAuthFixture()
		user := hashedUser("pw", domain.RoleStaff, domain.UserInactive)
		session := testSession(user.ID)

		f.sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		f.userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

		_, err := f.svc.RefreshToken(ctx, "raw-refresh-token")

		assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	})
}

func testSession(userID uuid.UUID) *repository.Session {
	return &repository.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
