package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"welile-backend/internal/domain"
	"welile-backend/internal/middleware"
	"welile-backend/internal/pkg/mention"
	"welile-backend/internal/service/feed"
)

type NotificationHandler struct {
	feedService feed.Service
}

func NewNotificationHandler(feedService feed.Service) *NotificationHandler {
	return &NotificationHandler{feedService: feedService}
}

// List fetches one store page, applies the client-side filter, sorts payments
// first, and groups the result into recency buckets.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	page, err := h.feedService.FetchPage(c.Context(), userID, params)
	if err != nil {
		return err
	}

	filter := parseFilter(c)
	items := feed.SortForDisplay(filter.Apply(page.Items))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"page":         page.Page,
		"page_size":    page.PageSize,
		"has_more":     page.HasMore,
		"unread_count": page.UnreadCount,
		"items":        items,
		"groups":       feed.GroupByRecency(items, time.Now()),
	})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.feedService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	userID := middleware.GetCurrentUserID(c)
	if err := h.feedService.MarkAsRead(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.feedService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var input domain.CreateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return middleware.UnprocessableEntity(err.Error())
	}

	senderID := middleware.GetCurrentUserID(c)
	notif, err := h.feedService.Send(c.Context(), senderID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

// ParseMessageTokens tokenizes a message body so clients render entity
// mentions without re-implementing the tag syntax.
func (h *NotificationHandler) ParseMessageTokens(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tokens": mention.Parse(body.Message),
	})
}

func parseFilter(c *fiber.Ctx) feed.Filter {
	filter := feed.Filter{
		Type:   feed.TypeFilter(c.Query("type", string(feed.TypeAll))),
		Search: c.Query("search"),
	}

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.To = &t
		}
	}
	return filter
}
