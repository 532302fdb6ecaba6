package thread

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"welile-backend/internal/domain"
	"welile-backend/internal/repository"
	"welile-backend/internal/service/realtime"
)

var (
	ErrNotFound   = errors.New("notification not found")
	ErrValidation = errors.New("validation failed")
)

const (
	maxReplyLength = 1000
	titleTruncate  = 30
)

type Service interface {
	// GetThread returns the root plus every reply in conversation order,
	// oldest first. Any member of the thread may be passed as the id.
	GetThread(ctx context.Context, id uuid.UUID) ([]domain.Notification, error)

	// Reply appends to a thread. The recipient is explicit; a nil recipient
	// falls back to the other party in the thread.
	Reply(ctx context.Context, parentID, senderID uuid.UUID, input domain.ReplyInput) (*domain.Notification, error)

	SetPublisher(p *realtime.Publisher)
}

type service struct {
	notifRepo repository.NotificationRepository
	auditRepo repository.AuditLogRepository
	publisher *realtime.Publisher
}

func NewService(notifRepo repository.NotificationRepository, auditRepo repository.AuditLogRepository) Service {
	return &service{
		notifRepo: notifRepo,
		auditRepo: auditRepo,
	}
}

func (s *service) SetPublisher(p *realtime.Publisher) { s.publisher = p }

func (s *service) GetThread(ctx context.Context, id uuid.UUID) ([]domain.Notification, error) {
	root, err := s.resolveRoot(ctx, id)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifRepo.ListThread(ctx, root.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	return notifications, nil
}

func (s *service) Reply(ctx context.Context, parentID, senderID uuid.UUID, input domain.ReplyInput) (*domain.Notification, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(message) > maxReplyLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", ErrValidation, maxReplyLength)
	}

	root, err := s.resolveRoot(ctx, parentID)
	if err != nil {
		return nil, err
	}

	recipientID, err := s.resolveRecipient(ctx, root, senderID, input.RecipientID)
	if err != nil {
		return nil, err
	}

	rootID := root.ID
	notif := &domain.Notification{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Title:       deriveTitle(root.Title),
		Message:     message,
		Priority:    domain.PriorityNormal,
		ParentID:    &rootID,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	if err := repository.RecordAudit(ctx, s.auditRepo, senderID, domain.AuditReply, domain.EntityNotification, notif.ID, nil); err != nil {
		log.Printf("failed to audit reply %s: %v", notif.ID, err)
	}
	s.publisher.Publish(ctx, "notifications", realtime.OpInsert)

	return notif, nil
}

// resolveRoot walks parent references up to the thread root. Replies always
// attach to the root, but chains left by older writers are tolerated.
func (s *service) resolveRoot(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	for {
		notif, err := s.notifRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to load notification: %w", err)
		}
		if notif.ParentID == nil {
			return notif, nil
		}
		id = *notif.ParentID
	}
}

// resolveRecipient prefers the explicit recipient. The fallback addresses the
// other party at the thread root, which only works for two-party threads; that
// is why the explicit form exists.
func (s *service) resolveRecipient(ctx context.Context, root *domain.Notification, senderID uuid.UUID, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		if *explicit == uuid.Nil {
			return uuid.Nil, fmt.Errorf("%w: recipient must not be empty", ErrValidation)
		}
		return *explicit, nil
	}

	if root.SenderID != senderID {
		return root.SenderID, nil
	}
	if root.RecipientID != senderID {
		return root.RecipientID, nil
	}

	// Self-thread: scan replies for any other participant.
	replies, err := s.notifRepo.ListThread(ctx, root.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load thread participants: %w", err)
	}
	for i := range replies {
		if replies[i].SenderID != senderID {
			return replies[i].SenderID, nil
		}
		if replies[i].RecipientID != senderID {
			return replies[i].RecipientID, nil
		}
	}
	return root.RecipientID, nil
}

func deriveTitle(original string) string {
	original = strings.TrimPrefix(original, "Re: ")
	if runes := []rune(original); len(runes) > titleTruncate {
		original = string(runes[:titleTruncate])
	}
	return "Re: " + original + "..."
}
