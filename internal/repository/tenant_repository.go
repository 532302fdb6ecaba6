package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"welile-backend/internal/domain"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Tenant, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Tenant, int64, error)
	DecrementBalanceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	query := `SELECT * FROM tenants WHERE id = $1`
	err := r.db.GetContext(ctx, &tenant, query, id)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	query := `SELECT * FROM tenants WHERE id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &tenant, query, id)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Tenant, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM tenants WHERE agent_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, agentID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM tenants
		WHERE agent_id = $1
		ORDER BY full_name ASC
		LIMIT $2 OFFSET $3`

	var tenants []domain.Tenant
	err := r.db.SelectContext(ctx, &tenants, query, agentID, params.PageSize, params.Offset())
	return tenants, total, err
}

// DecrementBalanceTx subtracts the amount and returns the new balance. The
// balance is not clamped at zero; a negative value is tenant credit.
func (r *tenantRepository) DecrementBalanceTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	query := `
		UPDATE tenants
		SET outstanding_balance = outstanding_balance - $2, updated_at = NOW()
		WHERE id = $1
		RETURNING outstanding_balance`

	err := tx.QueryRowxContext(ctx, query, id, amount).Scan(&balance)
	return balance, err
}
