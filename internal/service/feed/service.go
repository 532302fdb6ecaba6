package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"welile-backend/internal/domain"
	"welile-backend/internal/repository"
	"welile-backend/internal/service/realtime"
)

const unreadCacheTTL = time.Minute

// Page is one fetched slice of a recipient's feed, already in store order
// (newest first).
type Page struct {
	Items       []domain.Notification `json:"items"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	HasMore     bool                  `json:"has_more"`
	UnreadCount int64                 `json:"unread_count"`
}

type Service interface {
	FetchPage(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) (Page, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	Send(ctx context.Context, senderID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error)

	SetPublisher(p *realtime.Publisher)
}

type service struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
	publisher *realtime.Publisher
}

func NewService(notifRepo repository.NotificationRepository, redisClient *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		redis:     redisClient,
	}
}

func (s *service) SetPublisher(p *realtime.Publisher) { s.publisher = p }

func (s *service) FetchPage(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) (Page, error) {
	params.Validate()

	items, _, err := s.notifRepo.ListByRecipient(ctx, recipientID, params)
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch feed page: %w", err)
	}

	unread, err := s.UnreadCount(ctx, recipientID)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Items:       items,
		Page:        params.Page,
		PageSize:    params.PageSize,
		HasMore:     len(items) == params.PageSize,
		UnreadCount: unread,
	}, nil
}

// UnreadCount is a true global count across all pages, served from a short
// redis cache when available.
func (s *service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	key := unreadCacheKey(recipientID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread: %w", err)
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, key, count, unreadCacheTTL).Err()
	}
	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAsRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.invalidateUnread(ctx, recipientID)
	s.publisher.Publish(ctx, "notifications", realtime.OpUpdate)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, recipientID); err != nil {
		return fmt.Errorf("failed to mark all read: %w", err)
	}

	s.invalidateUnread(ctx, recipientID)
	s.publisher.Publish(ctx, "notifications", realtime.OpUpdate)
	return nil
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: input.RecipientID,
		Title:       input.Title,
		Message:     input.Message,
		Priority:    priority,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.invalidateUnread(ctx, input.RecipientID)
	s.publisher.Publish(ctx, "notifications", realtime.OpInsert)
	return notif, nil
}

func (s *service) invalidateUnread(ctx context.Context, recipientID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadCacheKey(recipientID)).Err()
	}
}

func unreadCacheKey(recipientID uuid.UUID) string {
	return "notif:unread:" + recipientID.String()
}
