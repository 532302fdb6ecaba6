package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"welile-backend/internal/domain"
)

type CollectionRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error)
}

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, collection *domain.Collection) error {
	query := `
		INSERT INTO collections (id, tenant_id, agent_id, amount, commission, payment_method, collection_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return tx.QueryRowxContext(ctx, query,
		collection.ID, collection.TenantID, collection.AgentID, collection.Amount,
		collection.Commission, collection.PaymentMethod, collection.CollectionDate, collection.Status,
	).Scan(&collection.CreatedAt)
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	var collection domain.Collection
	query := `SELECT * FROM collections WHERE id = $1`
	err := r.db.GetContext(ctx, &collection, query, id)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM collections WHERE agent_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, agentID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM collections
		WHERE agent_id = $1
		ORDER BY collection_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	var collections []domain.Collection
	err := r.db.SelectContext(ctx, &collections, query, agentID, params.PageSize, params.Offset())
	return collections, total, err
}

func (r *collectionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, params domain.PaginationParams) ([]domain.Collection, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM collections WHERE tenant_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, tenantID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM collections
		WHERE tenant_id = $1
		ORDER BY collection_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`

	var collections []domain.Collection
	err := r.db.SelectContext(ctx, &collections, query, tenantID, params.PageSize, params.Offset())
	return collections, total, err
}
