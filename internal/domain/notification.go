package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	SenderID    uuid.UUID   `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID   `json:"recipient_id" db:"recipient_id"`
	Title       string      `json:"title" db:"title"`
	Message     string      `json:"message" db:"message"`
	Priority    Priority    `json:"priority" db:"priority"`
	IsRead      bool        `json:"is_read" db:"is_read"`
	ReadAt      *time.Time  `json:"read_at,omitempty" db:"read_at"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty" db:"parent_id"`
	PaymentData PaymentData `json:"payment_data,omitempty" db:"payment_data"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`

	// SenderName is joined in on feed reads for display and search; it is not
	// a column on the notifications table.
	SenderName string `json:"sender_name,omitempty" db:"sender_name"`

	// Seq is store-assigned and breaks created_at ties. Not user-visible.
	Seq int64 `json:"-" db:"seq"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsPayment reports whether the notification carries an embedded payment payload.
func (n *Notification) IsPayment() bool {
	return n.PaymentData.Payload != nil
}

// IsSystem reports whether this is a self-notification generated on the
// recipient's behalf.
func (n *Notification) IsSystem() bool {
	return n.SenderID == n.RecipientID
}

// IsMessage reports whether this is a plain root message: no payment payload
// and not a reply.
func (n *Notification) IsMessage() bool {
	return !n.IsPayment() && n.ParentID == nil
}

type CreateNotificationInput struct {
	RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Message     string    `json:"message" validate:"required,max=2000"`
	Priority    Priority  `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

type ReplyInput struct {
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	Message     string     `json:"message"`
}
