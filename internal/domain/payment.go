package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRate is the fixed agent commission applied when a payload does not
// carry a precomputed commission.
var CommissionRate = decimal.RequireFromString("0.05")

// PaymentPayload is embedded in a notification's payment_data column. Its
// Applied flag is the sole idempotency guard for payment application.
type PaymentPayload struct {
	TenantID      uuid.UUID        `json:"tenant_id"`
	TenantName    string           `json:"tenant_name"`
	Amount        decimal.Decimal  `json:"amount"`
	PaymentMethod string           `json:"payment_method"`
	PaymentDate   time.Time        `json:"payment_date"`
	Applied       bool             `json:"applied"`
	Commission    *decimal.Decimal `json:"commission,omitempty"`
	RecordedBy    string           `json:"recorded_by,omitempty"`
}

const (
	RecordedByAgent   = "agent"
	RecordedByManager = "manager"
)

// CommissionAmount returns the precomputed commission when present, else
// amount times the fixed rate.
func (p *PaymentPayload) CommissionAmount() decimal.Decimal {
	if p.Commission != nil {
		return *p.Commission
	}
	return p.Amount.Mul(CommissionRate)
}

// PaymentData is a nullable JSONB column wrapping an optional PaymentPayload.
type PaymentData struct {
	Payload *PaymentPayload
}

func (d PaymentData) Value() (driver.Value, error) {
	if d.Payload == nil {
		return nil, nil
	}
	return json.Marshal(d.Payload)
}

func (d *PaymentData) Scan(src interface{}) error {
	if src == nil {
		d.Payload = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payment_data type %T", src)
	}

	var payload PaymentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	d.Payload = &payload
	return nil
}

func (d PaymentData) MarshalJSON() ([]byte, error) {
	if d.Payload == nil {
		return []byte("null"), nil
	}
	return json.Marshal(d.Payload)
}

func (d *PaymentData) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Payload = nil
		return nil
	}
	var payload PaymentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	d.Payload = &payload
	return nil
}

type RecordPaymentInput struct {
	TenantID      uuid.UUID       `json:"tenant_id" validate:"required"`
	RecipientID   uuid.UUID       `json:"recipient_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=30"`
	PaymentDate   time.Time       `json:"payment_date" validate:"required"`
}
