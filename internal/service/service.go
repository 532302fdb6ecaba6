package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"welile-backend/internal/config"
	"welile-backend/internal/repository"
	"welile-backend/internal/service/audit"
	"welile-backend/internal/service/auth"
	"welile-backend/internal/service/email"
	"welile-backend/internal/service/feed"
	"welile-backend/internal/service/payment"
	"welile-backend/internal/service/portfolio"
	"welile-backend/internal/service/realtime"
	"welile-backend/internal/service/receipt"
	"welile-backend/internal/service/thread"

	"github.com/jmoiron/sqlx"
)

type Services struct {
	Auth      auth.Service
	Feed      feed.Service
	Thread    thread.Service
	Payment   payment.Service
	Portfolio portfolio.Service
	Audit     audit.Service
	Email     email.Service
	Realtime  *realtime.Publisher
	Changes   *realtime.Subscriber
}

func NewServices(db *sqlx.DB, repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	publisher := realtime.NewPublisher(redisClient)

	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		emailService = email.NewService(cfg)
	}

	authService := auth.NewService(repos.User, cfg)
	auditService := audit.NewService(repos.AuditLog)

	feedService := feed.NewService(repos.Notification, redisClient)
	feedService.SetPublisher(publisher)

	threadService := thread.NewService(repos.Notification, repos.AuditLog)
	threadService.SetPublisher(publisher)

	paymentService := payment.NewService(db, repos.Notification, repos.Tenant, repos.Collection, repos.User, repos.AuditLog, cfg.ReceiptPrefix)
	paymentService.SetPublisher(publisher)
	if emailService != nil {
		paymentService.SetEmailService(emailService)
	}
	if minioClient != nil {
		paymentService.SetArchiver(receipt.NewArchiver(minioClient, cfg.MinIOBucket))
	}

	return &Services{
		Auth:      authService,
		Feed:      feedService,
		Thread:    threadService,
		Payment:   paymentService,
		Portfolio: portfolio.NewService(repos.Tenant, repos.Collection),
		Audit:     auditService,
		Email:     emailService,
		Realtime:  publisher,
		Changes:   realtime.NewSubscriber(redisClient),
	}
}
