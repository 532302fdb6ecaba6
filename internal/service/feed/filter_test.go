package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"welile-backend/internal/domain"
)

func paymentNotif(tenantName string, createdAt time.Time) domain.Notification {
	return domain.Notification{
		ID:          uuid.New(),
		SenderID:    uuid.New(),
		RecipientID: uuid.New(),
		Title:       "Payment Collected",
		Message:     "Collected rent",
		PaymentData: domain.PaymentData{Payload: &domain.PaymentPayload{
			TenantName: tenantName,
			Amount:     decimal.NewFromInt(100000),
		}},
		CreatedAt: createdAt,
	}
}

func messageNotif(title, message string, createdAt time.Time) domain.Notification {
	return domain.Notification{
		ID:          uuid.New(),
		SenderID:    uuid.New(),
		RecipientID: uuid.New(),
		Title:       title,
		Message:     message,
		CreatedAt:   createdAt,
	}
}

func systemNotif(title string, createdAt time.Time) domain.Notification {
	id := uuid.New()
	return domain.Notification{
		ID:          uuid.New(),
		SenderID:    id,
		RecipientID: id,
		Title:       title,
		Message:     "system event",
		CreatedAt:   createdAt,
	}
}

func TestFilter_Apply(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	pay := paymentNotif("Sarah Nakato", now)
	msg := messageNotif("Question", "About plot 14", now.Add(-time.Hour))
	sys := systemNotif("Weekly summary", now.Add(-2*time.Hour))
	items := []domain.Notification{pay, msg, sys}

	t.Run("Zero filter passes everything through", func(t *testing.T) {
		out := Filter{}.Apply(items)
		assert.Len(t, out, 3)
	})

	t.Run("Type payment", func(t *testing.T) {
		out := Filter{Type: TypePayment}.Apply(items)
		assert.Len(t, out, 1)
		assert.Equal(t, pay.ID, out[0].ID)
	})

	t.Run("Type message excludes payments and system", func(t *testing.T) {
		out := Filter{Type: TypeMessage}.Apply(items)
		assert.Len(t, out, 1)
		assert.Equal(t, msg.ID, out[0].ID)
	})

	t.Run("Type system", func(t *testing.T) {
		out := Filter{Type: TypeSystem}.Apply(items)
		assert.Len(t, out, 1)
		assert.Equal(t, sys.ID, out[0].ID)
	})

	t.Run("Search is case-insensitive across title, message, sender and tenant name", func(t *testing.T) {
		out := Filter{Search: "sarah"}.Apply(items)
		assert.Len(t, out, 1)
		assert.Equal(t, pay.ID, out[0].ID)

		out = Filter{Search: "PLOT 14"}.Apply(items)
		assert.Len(t, out, 1)
		assert.Equal(t, msg.ID, out[0].ID)

		out = Filter{Search: "no such text"}.Apply(items)
		assert.Empty(t, out)
	})

	t.Run("Search matches the sender's display name", func(t *testing.T) {
		fromAgent := messageNotif("March summary", "All units settled", now)
		fromAgent.SenderName = "John Okello"

		out := Filter{Search: "okello"}.Apply([]domain.Notification{fromAgent, msg})
		assert.Len(t, out, 1)
		assert.Equal(t, fromAgent.ID, out[0].ID)
	})

	t.Run("Date range is inclusive on both ends", func(t *testing.T) {
		day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

		out := Filter{From: &day, To: &day}.Apply(items)
		// All three were created on the 14th.
		assert.Len(t, out, 3)

		before := day.AddDate(0, 0, -1)
		out = Filter{To: &before}.Apply(items)
		assert.Empty(t, out)
	})

	t.Run("Filters compose", func(t *testing.T) {
		out := Filter{Type: TypePayment, Search: "nakato"}.Apply(items)
		assert.Len(t, out, 1)

		out = Filter{Type: TypeSystem, Search: "nakato"}.Apply(items)
		assert.Empty(t, out)
	})
}

func TestSortForDisplay(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	oldPay := paymentNotif("A", now.Add(-3*time.Hour))
	newPay := paymentNotif("B", now.Add(-time.Hour))
	oldMsg := messageNotif("m1", "x", now.Add(-2*time.Hour))
	newMsg := messageNotif("m2", "y", now)

	t.Run("Payments first, newest first within each partition", func(t *testing.T) {
		out := SortForDisplay([]domain.Notification{newMsg, oldPay, oldMsg, newPay})

		assert.Equal(t, []uuid.UUID{newPay.ID, oldPay.ID, newMsg.ID, oldMsg.ID},
			[]uuid.UUID{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
	})

	t.Run("Stable for equal timestamps", func(t *testing.T) {
		a := messageNotif("a", "x", now)
		b := messageNotif("b", "x", now)

		out := SortForDisplay([]domain.Notification{a, b})
		assert.Equal(t, a.ID, out[0].ID)
		assert.Equal(t, b.ID, out[1].ID)
	})

	t.Run("Input slice is not mutated", func(t *testing.T) {
		in := []domain.Notification{newMsg, newPay}
		_ = SortForDisplay(in)
		assert.Equal(t, newMsg.ID, in[0].ID)
	})
}
