package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Tenant struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	FullName           string          `json:"full_name" db:"full_name"`
	Phone              string          `json:"phone" db:"phone"`
	PropertyAddress    *string         `json:"property_address,omitempty" db:"property_address"`
	AgentID            uuid.UUID       `json:"agent_id" db:"agent_id"`
	MonthlyRent        decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance" db:"outstanding_balance"`
	Status             TenantStatus    `json:"status" db:"status"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// TenantStatus is a coarse lifecycle tag. This service reads it for display
// only; verification flows elsewhere own the transitions.
type TenantStatus string

const (
	TenantPending  TenantStatus = "pending"
	TenantVerified TenantStatus = "verified"
	TenantActive   TenantStatus = "active"
	TenantRejected TenantStatus = "rejected"
)
