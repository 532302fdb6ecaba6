package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the view model handed back after a payment application. It is
// assembled once from committed data and never mutated.
type Receipt struct {
	Number        string          `json:"number"`
	TenantName    string          `json:"tenant_name"`
	TenantPhone   string          `json:"tenant_phone,omitempty"`
	AgentName     string          `json:"agent_name"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`
	ShareText     string          `json:"share_text"`
}
