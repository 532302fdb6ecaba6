package feed

import (
	"sort"
	"strings"
	"time"

	"welile-backend/internal/domain"
)

type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypePayment TypeFilter = "payment"
	TypeMessage TypeFilter = "message"
	TypeSystem  TypeFilter = "system"
)

// Filter narrows a fetched page. Filtering happens after the fetch, never in
// the store query, so changing a filter does not refetch.
type Filter struct {
	Type   TypeFilter
	Search string
	From   *time.Time
	To     *time.Time
}

func (f Filter) IsZero() bool {
	return (f.Type == "" || f.Type == TypeAll) && f.Search == "" && f.From == nil && f.To == nil
}

// Apply returns the notifications matching the filter, preserving input order.
func (f Filter) Apply(items []domain.Notification) []domain.Notification {
	if f.IsZero() {
		return items
	}

	out := make([]domain.Notification, 0, len(items))
	for i := range items {
		if f.matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func (f Filter) matches(n *domain.Notification) bool {
	switch f.Type {
	case TypePayment:
		if !n.IsPayment() {
			return false
		}
	case TypeMessage:
		if !n.IsMessage() {
			return false
		}
	case TypeSystem:
		if !n.IsSystem() {
			return false
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Title), needle) &&
			!strings.Contains(strings.ToLower(n.Message), needle) &&
			!strings.Contains(strings.ToLower(n.SenderName), needle) &&
			!f.matchesTenantName(n, needle) {
			return false
		}
	}

	if f.From != nil && n.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && n.CreatedAt.After(endOfDay(*f.To)) {
		return false
	}

	return true
}

func (f Filter) matchesTenantName(n *domain.Notification, needle string) bool {
	return n.PaymentData.Payload != nil &&
		strings.Contains(strings.ToLower(n.PaymentData.Payload.TenantName), needle)
}

// The date range is inclusive on both ends.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// SortForDisplay orders payment notifications first, then newest-first within
// each partition. The sort is stable, so store order survives within groups.
func SortForDisplay(items []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].IsPayment(), out[j].IsPayment()
		if pi != pj {
			return pi
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
