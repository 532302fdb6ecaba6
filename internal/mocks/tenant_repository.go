package mocks

import (
	"context"

	"welile-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *TenantRepository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *TenantRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Tenant, int64, error) {
	args := m.Called(ctx, agentID, params)
	return args.Get(0).([]domain.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *TenantRepository) DecrementBalanceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, id, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
