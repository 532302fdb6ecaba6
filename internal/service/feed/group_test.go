package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"welile-backend/internal/domain"
)

func TestBucketFor(t *testing.T) {
	// A Friday, mid-afternoon. ISO week starts Monday the 10th.
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		createdAt time.Time
		want      Bucket
	}{
		{"this morning", time.Date(2025, 3, 14, 0, 30, 0, 0, time.UTC), BucketToday},
		{"late yesterday", time.Date(2025, 3, 13, 23, 59, 0, 0, time.UTC), BucketYesterday},
		{"monday this week", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), BucketThisWeek},
		{"sunday last week", time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), BucketOlder},
		{"last month", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), BucketOlder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BucketFor(tc.createdAt, now))
		})
	}
}

func TestBucketFor_SundayNow(t *testing.T) {
	// Sunday closes the ISO week, so Monday the 10th is still "this week".
	now := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, BucketThisWeek, BucketFor(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), now))
	assert.Equal(t, BucketOlder, BucketFor(time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC), now))
}

func TestGroupByRecency(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	items := []domain.Notification{
		messageNotif("t1", "x", now.Add(-time.Hour)),
		messageNotif("y1", "x", now.AddDate(0, 0, -1)),
		messageNotif("w1", "x", time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)),
		messageNotif("o1", "x", time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)),
		messageNotif("t2", "x", now.Add(-2*time.Hour)),
	}

	g := GroupByRecency(items, now)

	t.Run("Every item lands in exactly one bucket", func(t *testing.T) {
		total := len(g.Today) + len(g.Yesterday) + len(g.ThisWeek) + len(g.Older)
		assert.Equal(t, len(items), total)
	})

	t.Run("Buckets preserve input order", func(t *testing.T) {
		assert.Len(t, g.Today, 2)
		assert.Equal(t, "t1", g.Today[0].Title)
		assert.Equal(t, "t2", g.Today[1].Title)
	})

	t.Run("Assignments are correct", func(t *testing.T) {
		assert.Len(t, g.Yesterday, 1)
		assert.Equal(t, "y1", g.Yesterday[0].Title)
		assert.Len(t, g.ThisWeek, 1)
		assert.Equal(t, "w1", g.ThisWeek[0].Title)
		assert.Len(t, g.Older, 1)
		assert.Equal(t, "o1", g.Older[0].Title)
	})
}
