package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"welile-backend/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	CreateTx(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error)
	ListThread(ctx context.Context, rootID uuid.UUID) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkPaymentAppliedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const insertNotification = `
	INSERT INTO notifications (id, sender_id, recipient_id, title, message, priority, parent_id, payment_data)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, seq`

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	return r.db.QueryRowxContext(ctx, insertNotification,
		notif.ID, notif.SenderID, notif.RecipientID, notif.Title, notif.Message,
		notif.Priority, notif.ParentID, notif.PaymentData,
	).Scan(&notif.CreatedAt, &notif.Seq)
}

func (r *notificationRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error {
	return tx.QueryRowxContext(ctx, insertNotification,
		notif.ID, notif.SenderID, notif.RecipientID, notif.Title, notif.Message,
		notif.Priority, notif.ParentID, notif.PaymentData,
	).Scan(&notif.CreatedAt, &notif.Seq)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`
	err := r.db.GetContext(ctx, &notif, query, id)
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
		return nil, 0, err
	}

	// Newest first; seq breaks created_at ties deterministically.
	query := `
		SELECT
			n.*,
			COALESCE(u.full_name, '') AS sender_name
		FROM notifications n
		LEFT JOIN users u ON n.sender_id = u.id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC, n.seq DESC
		LIMIT $2 OFFSET $3`

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, recipientID, params.PageSize, params.Offset())
	return notifications, total, err
}

func (r *notificationRepository) ListThread(ctx context.Context, rootID uuid.UUID) ([]domain.Notification, error) {
	// Threads are one level deep in practice, but reply chains are tolerated
	// and flattened into conversation order.
	query := `
		WITH RECURSIVE thread AS (
			SELECT * FROM notifications WHERE id = $1
			UNION ALL
			SELECT n.* FROM notifications n
			JOIN thread t ON n.parent_id = t.id
		)
		SELECT * FROM thread
		ORDER BY created_at ASC, seq ASC`

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, rootID)
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	// read_at is written exactly once, on the false -> true transition.
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}

// MarkPaymentAppliedTx flips payment_data.applied in a single conditional
// round trip. Zero affected rows means the payload was absent or already
// applied by a concurrent caller.
func (r *notificationRepository) MarkPaymentAppliedTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET payment_data = jsonb_set(payment_data, '{applied}', 'true'::jsonb)
		WHERE id = $1
		  AND payment_data IS NOT NULL
		  AND COALESCE((payment_data->>'applied')::boolean, false) = false`

	res, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
