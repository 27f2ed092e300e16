package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
)

const systemStatsTTL = 5 * time.Minute

type Service interface {
	UserStats(ctx context.Context, userID uuid.UUID) (*domain.UserBookingStats, error)
	SystemStats(ctx context.Context) (*domain.SystemStats, error)
}

type service struct {
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	resourceRepo repository.ResourceRepository
	redis        *redis.Client
}

func NewService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository, resourceRepo repository.ResourceRepository, redisClient *redis.Client) Service {
	return &service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		redis:        redisClient,
	}
}

func (s *service) UserStats(ctx context.Context, userID uuid.UUID) (*domain.UserBookingStats, error) {
	today := time.Now().Truncate(24 * time.Hour)
	return s.bookingRepo.StatsForUser(ctx, userID, today)
}

// SystemStats is the admin overview, cached briefly since the counts are
// expensive and the dashboard polls.
func (s *service) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	cacheKey := "dashboard:system"

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats domain.SystemStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	activeBookings, err := s.bookingRepo.CountByStatus(ctx, domain.BookingApproved)
	if err != nil {
		return nil, err
	}

	pendingApprovals, err := s.bookingRepo.CountByStatus(ctx, domain.BookingPending)
	if err != nil {
		return nil, err
	}

	totalResources, err := s.resourceRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.SystemStats{
		TotalUsers:       totalUsers,
		ActiveBookings:   activeBookings,
		PendingApprovals: pendingApprovals,
		TotalResources:   totalResources,
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, systemStatsTTL).Err()
		}
	}

	return stats, nil
}
