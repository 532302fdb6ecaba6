package feed_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"welile-backend/internal/domain"
	"welile-backend/internal/mocks"
	"welile-backend/internal/service/feed"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestFeedService_FetchPage(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("Full page means more may follow", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		items := make([]domain.Notification, 20)
		for i := range items {
			items[i] = domain.Notification{ID: uuid.New(), RecipientID: recipientID}
		}

		params := domain.PaginationParams{Page: 1, PageSize: 20}
		notifRepo.On("ListByRecipient", ctx, recipientID, params).Return(items, int64(45), nil).Once()
		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(7), nil).Once()

		page, err := svc.FetchPage(ctx, recipientID, params)

		require.NoError(t, err)
		assert.Len(t, page.Items, 20)
		assert.True(t, page.HasMore)
		assert.Equal(t, int64(7), page.UnreadCount)
	})

	t.Run("Short page ends the feed", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		items := make([]domain.Notification, 5)
		for i := range items {
			items[i] = domain.Notification{ID: uuid.New(), RecipientID: recipientID}
		}

		params := domain.PaginationParams{Page: 3, PageSize: 20}
		notifRepo.On("ListByRecipient", ctx, recipientID, params).Return(items, int64(45), nil).Once()
		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(0), nil).Once()

		page, err := svc.FetchPage(ctx, recipientID, params)

		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.False(t, page.HasMore)
	})
}

func TestFeedService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("Counts across all pages, then serves from cache", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(33), nil).Once()

		count, err := svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)
		assert.Equal(t, int64(33), count)

		// Second call hits the cache; the store mock would fail on a second call.
		count, err = svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)
		assert.Equal(t, int64(33), count)

		notifRepo.AssertNumberOfCalls(t, "CountUnread", 1)
	})

	t.Run("MarkAsRead invalidates the cached count", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		notifID := uuid.New()

		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(5), nil).Once()
		_, err := svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)

		notifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()
		require.NoError(t, svc.MarkAsRead(ctx, notifID, recipientID))

		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(4), nil).Once()
		count, err := svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("Works without redis", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, nil)

		notifRepo.On("CountUnread", ctx, recipientID).Return(int64(2), nil).Twice()

		count, err := svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = svc.UnreadCount(ctx, recipientID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestFeedService_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()

	t.Run("Defaults priority to normal", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.SenderID == senderID &&
				n.RecipientID == recipientID &&
				n.Priority == domain.PriorityNormal
		})).Return(nil).Once()

		notif, err := svc.Send(ctx, senderID, domain.CreateNotificationInput{
			RecipientID: recipientID,
			Title:       "Reminder",
			Message:     "Rent due Friday",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PriorityNormal, notif.Priority)
		notifRepo.AssertExpectations(t)
	})

	t.Run("Keeps explicit priority", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := feed.NewService(notifRepo, newTestRedis(t))

		notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Priority == domain.PriorityUrgent
		})).Return(nil).Once()

		notif, err := svc.Send(ctx, senderID, domain.CreateNotificationInput{
			RecipientID: recipientID,
			Title:       "Eviction notice",
			Message:     "Immediate attention required",
			Priority:    domain.PriorityUrgent,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PriorityUrgent, notif.Priority)
	})
}
