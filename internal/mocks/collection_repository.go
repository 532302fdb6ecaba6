package mocks

import (
	"context"

	"welile-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type CollectionRepository struct {
	mock.Mock
}

func (m *CollectionRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, collection *domain.Collection) error {
	args := m.Called(ctx, tx, collection)
	return args.Error(0)
}

func (m *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error) {
	args := m.Called(ctx, agentID, params)
	return args.Get(0).([]domain.Collection), args.Get(1).(int64), args.Error(2)
}

func (m *CollectionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error) {
	args := m.Called(ctx, tenantID, params)
	return args.Get(0).([]domain.Collection), args.Get(1).(int64), args.Error(2)
}
