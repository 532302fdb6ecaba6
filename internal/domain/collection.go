package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Collection struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	TenantID       uuid.UUID        `json:"tenant_id" db:"tenant_id"`
	AgentID        uuid.UUID        `json:"agent_id" db:"agent_id"`
	Amount         decimal.Decimal  `json:"amount" db:"amount"`
	Commission     decimal.Decimal  `json:"commission" db:"commission"`
	PaymentMethod  string           `json:"payment_method" db:"payment_method"`
	CollectionDate time.Time        `json:"collection_date" db:"collection_date"`
	Status         CollectionStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}

type CollectionStatus string

const (
	CollectionCompleted CollectionStatus = "completed"
	CollectionReversed  CollectionStatus = "reversed"
)
