package feed

import (
	"time"

	"welile-backend/internal/domain"
)

type Bucket string

const (
	BucketToday     Bucket = "today"
	BucketYesterday Bucket = "yesterday"
	BucketThisWeek  Bucket = "this_week"
	BucketOlder     Bucket = "older"
)

// Grouped partitions a feed into disjoint recency buckets whose union is the
// input. Bucket collapse state lives in the client, not here.
type Grouped struct {
	Today     []domain.Notification `json:"today"`
	Yesterday []domain.Notification `json:"yesterday"`
	ThisWeek  []domain.Notification `json:"this_week"`
	Older     []domain.Notification `json:"older"`
}

// GroupByRecency assigns each notification to exactly one bucket relative to
// now, preserving input order within buckets.
func GroupByRecency(items []domain.Notification, now time.Time) Grouped {
	var g Grouped
	for i := range items {
		switch BucketFor(items[i].CreatedAt, now) {
		case BucketToday:
			g.Today = append(g.Today, items[i])
		case BucketYesterday:
			g.Yesterday = append(g.Yesterday, items[i])
		case BucketThisWeek:
			g.ThisWeek = append(g.ThisWeek, items[i])
		default:
			g.Older = append(g.Older, items[i])
		}
	}
	return g
}

// BucketFor picks the recency bucket for a timestamp. "This week" is the ISO
// week containing now, Monday start, excluding today and yesterday.
func BucketFor(createdAt, now time.Time) Bucket {
	today := startOfDay(now)
	created := startOfDay(createdAt)

	switch {
	case !created.Before(today):
		return BucketToday
	case created.Equal(today.AddDate(0, 0, -1)):
		return BucketYesterday
	case !created.Before(startOfISOWeek(now)):
		return BucketThisWeek
	default:
		return BucketOlder
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfISOWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
