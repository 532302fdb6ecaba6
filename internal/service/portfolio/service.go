package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"welile-backend/internal/domain"
	"welile-backend/internal/repository"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Service serves the read side of an agent's book: tenants and the
// collections posted against them.
type Service interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	ListTenants(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Tenant], error)
	ListCollections(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Collection], error)
	ListTenantCollections(ctx context.Context, tenantID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Collection], error)
}

type service struct {
	tenantRepo     repository.TenantRepository
	collectionRepo repository.CollectionRepository
}

func NewService(tenantRepo repository.TenantRepository, collectionRepo repository.CollectionRepository) Service {
	return &service{
		tenantRepo:     tenantRepo,
		collectionRepo: collectionRepo,
	}
}

func (s *service) GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return tenant, nil
}

func (s *service) ListTenants(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Tenant], error) {
	tenants, total, err := s.tenantRepo.ListByAgent(ctx, agentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Tenant]{}, err
	}
	return domain.NewPaginatedResponse(tenants, params.Page, params.PageSize, total), nil
}

func (s *service) ListCollections(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Collection], error) {
	collections, total, err := s.collectionRepo.ListByAgent(ctx, agentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Collection]{}, err
	}
	return domain.NewPaginatedResponse(collections, params.Page, params.PageSize, total), nil
}

func (s *service) ListTenantCollections(ctx context.Context, tenantID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Collection], error) {
	collections, total, err := s.collectionRepo.ListByTenant(ctx, tenantID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Collection]{}, err
	}
	return domain.NewPaginatedResponse(collections, params.Page, params.PageSize, total), nil
}
