package resource

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"campus-booking/internal/config"
	"campus-booking/internal/domain"
	"campus-booking/internal/repository"
)

type Service interface {
	Create(ctx context.Context, input domain.CreateResourceInput) (*domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error)
	List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Resource], error)
	UploadPhoto(ctx context.Context, id uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Resource, error)
}

type service struct {
	resourceRepo repository.ResourceRepository
	minioClient  *minio.Client
	cfg          *config.Config
}

func NewService(resourceRepo repository.ResourceRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		resourceRepo: resourceRepo,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateResourceInput) (*domain.Resource, error) {
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("unknown resource type %q", input.Type)
	}

	resource := &domain.Resource{
		ID:              uuid.New(),
		Name:            input.Name,
		Type:            input.Type,
		Capacity:        input.Capacity,
		Status:          domain.ResourceActive,
		LabInChargeID:   input.LabInChargeID,
		AssignedStaffID: input.AssignedStaffID,
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}

	s.attachPhotoURL(resource)
	return resource, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}

	if input.Name != nil {
		resource.Name = *input.Name
	}
	if input.Capacity != nil {
		resource.Capacity = *input.Capacity
	}
	if input.Status != nil {
		resource.Status = *input.Status
	}
	if input.LabInChargeID != nil {
		resource.LabInChargeID = input.LabInChargeID
	}
	if input.AssignedStaffID != nil {
		resource.AssignedStaffID = input.AssignedStaffID
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}

	s.attachPhotoURL(resource)
	return resource, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Resource], error) {
	params.Validate()

	resources, total, err := s.resourceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	for i := range resources {
		s.attachPhotoURL(&resources[i])
	}

	resp := domain.NewPaginatedResponse(resources, params.Page, params.PageSize, total)
	return &resp, nil
}

func (s *service) UploadPhoto(ctx context.Context, id uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Resource, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrResourceNotFound
	}

	storagePath := fmt.Sprintf("resources/%s/%s", id, fileName)
	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.resourceRepo.SetPhotoPath(ctx, id, storagePath); err != nil {
		if removeErr := s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{}); removeErr != nil {
			log.Printf("orphaned photo cleanup failed for %s: %v", storagePath, removeErr)
		}
		return nil, err
	}

	if resource.PhotoPath != nil && *resource.PhotoPath != storagePath {
		if err := s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, *resource.PhotoPath, minio.RemoveObjectOptions{}); err != nil {
			log.Printf("stale photo cleanup failed for %s: %v", *resource.PhotoPath, err)
		}
	}

	resource.PhotoPath = &storagePath
	s.attachPhotoURL(resource)
	return resource, nil
}

func (s *service) attachPhotoURL(resource *domain.Resource) {
	if resource.PhotoPath == nil {
		return
	}
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	publicURL := fmt.Sprintf("%s://%s/%s/%s",
		scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(*resource.PhotoPath))
	resource.PhotoURL = &publicURL
}
