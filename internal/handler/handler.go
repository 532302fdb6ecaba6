package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"welile-backend/internal/domain"
	"welile-backend/internal/service"
)

var validate = validator.New()

type Handlers struct {
	Auth         *AuthHandler
	Notification *NotificationHandler
	Thread       *ThreadHandler
	Payment      *PaymentHandler
	Portfolio    *PortfolioHandler
	Audit        *AuditHandler
	Changes      *ChangesHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Notification: NewNotificationHandler(services.Feed),
		Thread:       NewThreadHandler(services.Thread),
		Payment:      NewPaymentHandler(services.Payment),
		Portfolio:    NewPortfolioHandler(services.Portfolio),
		Audit:        NewAuditHandler(services.Audit),
		Changes:      NewChangesHandler(services.Changes),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 {
		params.PageSize = pageSize
	}
	params.Validate()
	return params
}
