package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"welile-backend/internal/domain"
	"welile-backend/internal/pkg/mention"
	"welile-backend/internal/repository"
	"welile-backend/internal/service/email"
	"welile-backend/internal/service/realtime"
	"welile-backend/internal/service/receipt"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrAlreadyApplied       = errors.New("payment already applied")
	ErrInvalidPayload       = errors.New("notification has no payment payload")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

type Service interface {
	// Apply posts a pending payment payload to the tenant's balance exactly
	// once, materializing a collection record, and returns the receipt.
	Apply(ctx context.Context, notificationID, actorID uuid.UUID) (*domain.Receipt, error)

	// RecordByAgent creates a pending payment notification addressed to a
	// manager. Nothing is posted until a manager applies it.
	RecordByAgent(ctx context.Context, agentID uuid.UUID, input domain.RecordPaymentInput) (*domain.Notification, error)

	// RecordByManager posts the payment immediately and notifies the agent
	// with an already-applied payload, so the agent only needs the receipt.
	RecordByManager(ctx context.Context, managerID uuid.UUID, input domain.RecordPaymentInput) (*domain.Receipt, error)

	SetEmailService(svc email.Service)
	SetArchiver(a *receipt.Archiver)
	SetPublisher(p *realtime.Publisher)
}

type service struct {
	db             *sqlx.DB
	notifRepo      repository.NotificationRepository
	tenantRepo     repository.TenantRepository
	collectionRepo repository.CollectionRepository
	userRepo       repository.UserRepository
	auditRepo      repository.AuditLogRepository
	receiptPrefix  string

	emailSvc  email.Service
	archiver  *receipt.Archiver
	publisher *realtime.Publisher
}

func NewService(
	db *sqlx.DB,
	notifRepo repository.NotificationRepository,
	tenantRepo repository.TenantRepository,
	collectionRepo repository.CollectionRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	receiptPrefix string,
) Service {
	return &service{
		db:             db,
		notifRepo:      notifRepo,
		tenantRepo:     tenantRepo,
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		receiptPrefix:  receiptPrefix,
	}
}

func (s *service) SetEmailService(svc email.Service)  { s.emailSvc = svc }
func (s *service) SetArchiver(a *receipt.Archiver)    { s.archiver = a }
func (s *service) SetPublisher(p *realtime.Publisher) { s.publisher = p }

func (s *service) Apply(ctx context.Context, notificationID, actorID uuid.UUID) (*domain.Receipt, error) {
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}

	payload := notif.PaymentData.Payload
	if payload == nil {
		return nil, ErrInvalidPayload
	}
	if payload.Applied {
		return nil, ErrAlreadyApplied
	}

	// The collection is attributed to the agent who recorded it, not to the
	// manager resolving it.
	agentID := notif.SenderID

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tenant, err := s.tenantRepo.GetForUpdateTx(ctx, tx, payload.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	commission := payload.CommissionAmount()
	collection := &domain.Collection{
		ID:             uuid.New(),
		TenantID:       tenant.ID,
		AgentID:        agentID,
		Amount:         payload.Amount,
		Commission:     commission,
		PaymentMethod:  payload.PaymentMethod,
		CollectionDate: payload.PaymentDate,
		Status:         domain.CollectionCompleted,
	}
	if err := s.collectionRepo.CreateTx(ctx, tx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	balanceAfter, err := s.tenantRepo.DecrementBalanceTx(ctx, tx, tenant.ID, payload.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	// The applied-flag flip is conditional in the store itself, so a racing
	// application observes zero affected rows here instead of double-posting.
	affected, err := s.notifRepo.MarkPaymentAppliedTx(ctx, tx, notif.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark payment applied: %w", err)
	}
	if affected == 0 {
		return nil, ErrAlreadyApplied
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment application: %w", err)
	}

	rcpt := receipt.Generate(
		receipt.Number(s.receiptPrefix, time.Now()),
		receipt.Amounts{
			Amount:        payload.Amount,
			Commission:    commission,
			BalanceBefore: tenant.OutstandingBalance,
			BalanceAfter:  balanceAfter,
			PaymentMethod: payload.PaymentMethod,
			PaymentDate:   payload.PaymentDate,
		},
		receipt.TenantSnapshot{Name: tenant.FullName, Phone: tenant.Phone},
		s.agentSnapshot(ctx, agentID),
	)

	s.afterPosting(ctx, actorID, domain.AuditApplyPayment, notif.ID, collection, rcpt, agentID)

	return &rcpt, nil
}

func (s *service) RecordByAgent(ctx context.Context, agentID uuid.UUID, input domain.RecordPaymentInput) (*domain.Notification, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tenant, err := s.tenantRepo.GetByID(ctx, input.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		SenderID:    agentID,
		RecipientID: input.RecipientID,
		Title:       "Payment Collected",
		Message: fmt.Sprintf("Collected UGX %s from %s via %s",
			input.Amount.StringFixed(2),
			mention.Tag("TENANT", tenant.ID.String(), tenant.FullName),
			input.PaymentMethod,
		),
		Priority: domain.PriorityHigh,
		PaymentData: domain.PaymentData{Payload: &domain.PaymentPayload{
			TenantID:      tenant.ID,
			TenantName:    tenant.FullName,
			Amount:        input.Amount,
			PaymentMethod: input.PaymentMethod,
			PaymentDate:   input.PaymentDate,
			Applied:       false,
			RecordedBy:    domain.RecordedByAgent,
		}},
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, fmt.Errorf("failed to create payment notification: %w", err)
	}

	if err := repository.RecordAudit(ctx, s.auditRepo, agentID, domain.AuditRecordPayment, domain.EntityNotification, notif.ID, notif.PaymentData); err != nil {
		log.Printf("failed to audit payment record %s: %v", notif.ID, err)
	}
	s.publisher.Publish(ctx, "notifications", realtime.OpInsert)

	if s.emailSvc != nil {
		if manager, err := s.userRepo.GetByID(ctx, input.RecipientID); err == nil && manager.Email != "" {
			agentName := s.agentSnapshot(ctx, agentID).Name
			go func(toEmail, managerName, agentName, tenantName string) {
				ctx := context.Background()
				_ = s.emailSvc.SendPaymentPendingEmail(ctx, toEmail, managerName, agentName, tenantName)
			}(manager.Email, manager.FullName, agentName, tenant.FullName)
		}
	}

	return notif, nil
}

func (s *service) RecordByManager(ctx context.Context, managerID uuid.UUID, input domain.RecordPaymentInput) (*domain.Receipt, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	// The recipient of the auto-notification is the tenant's agent, who gets
	// commission attribution as well.
	agentID := input.RecipientID

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tenant, err := s.tenantRepo.GetForUpdateTx(ctx, tx, input.TenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	commission := input.Amount.Mul(domain.CommissionRate)
	collection := &domain.Collection{
		ID:             uuid.New(),
		TenantID:       tenant.ID,
		AgentID:        agentID,
		Amount:         input.Amount,
		Commission:     commission,
		PaymentMethod:  input.PaymentMethod,
		CollectionDate: input.PaymentDate,
		Status:         domain.CollectionCompleted,
	}
	if err := s.collectionRepo.CreateTx(ctx, tx, collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	balanceAfter, err := s.tenantRepo.DecrementBalanceTx(ctx, tx, tenant.ID, input.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		SenderID:    managerID,
		RecipientID: agentID,
		Title:       "Payment Recorded",
		Message: fmt.Sprintf("A payment of UGX %s for %s was recorded and posted",
			input.Amount.StringFixed(2),
			mention.Tag("TENANT", tenant.ID.String(), tenant.FullName),
		),
		Priority: domain.PriorityNormal,
		PaymentData: domain.PaymentData{Payload: &domain.PaymentPayload{
			TenantID:      tenant.ID,
			TenantName:    tenant.FullName,
			Amount:        input.Amount,
			PaymentMethod: input.PaymentMethod,
			PaymentDate:   input.PaymentDate,
			Applied:       true,
			Commission:    &commission,
			RecordedBy:    domain.RecordedByManager,
		}},
	}
	if err := s.notifRepo.CreateTx(ctx, tx, notif); err != nil {
		return nil, fmt.Errorf("failed to create payment notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	rcpt := receipt.Generate(
		receipt.Number(s.receiptPrefix, time.Now()),
		receipt.Amounts{
			Amount:        input.Amount,
			Commission:    commission,
			BalanceBefore: tenant.OutstandingBalance,
			BalanceAfter:  balanceAfter,
			PaymentMethod: input.PaymentMethod,
			PaymentDate:   input.PaymentDate,
		},
		receipt.TenantSnapshot{Name: tenant.FullName, Phone: tenant.Phone},
		s.agentSnapshot(ctx, agentID),
	)

	s.afterPosting(ctx, managerID, domain.AuditRecordPayment, notif.ID, collection, rcpt, agentID)

	return &rcpt, nil
}

func (s *service) agentSnapshot(ctx context.Context, agentID uuid.UUID) receipt.AgentSnapshot {
	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		log.Printf("failed to load agent %s for receipt: %v", agentID, err)
		return receipt.AgentSnapshot{}
	}
	return receipt.AgentSnapshot{Name: agent.FullName}
}

// afterPosting runs the best-effort side channels once the transaction has
// committed. None of these may fail the operation.
func (s *service) afterPosting(ctx context.Context, actorID uuid.UUID, action string, notifID uuid.UUID, collection *domain.Collection, rcpt domain.Receipt, agentID uuid.UUID) {
	if err := repository.RecordAudit(ctx, s.auditRepo, actorID, action, domain.EntityCollection, collection.ID, rcpt); err != nil {
		log.Printf("failed to audit %s for collection %s: %v", action, collection.ID, err)
	}

	s.publisher.Publish(ctx, "collections", realtime.OpInsert)
	s.publisher.Publish(ctx, "tenants", realtime.OpUpdate)
	s.publisher.Publish(ctx, "notifications", realtime.OpUpdate)

	if s.emailSvc != nil {
		if agent, err := s.userRepo.GetByID(ctx, agentID); err == nil && agent.Email != "" {
			go func(toEmail, name string, r domain.Receipt) {
				ctx := context.Background()
				_ = s.emailSvc.SendReceiptEmail(ctx, toEmail, name, r)
			}(agent.Email, agent.FullName, rcpt)
		}
	}

	if s.archiver != nil {
		go func(r domain.Receipt) {
			ctx := context.Background()
			if err := s.archiver.Archive(ctx, r); err != nil {
				log.Printf("receipt archive failed: %v", err)
			}
		}(rcpt)
	}
}
