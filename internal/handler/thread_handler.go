package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"welile-backend/internal/domain"
	"welile-backend/internal/middleware"
	"welile-backend/internal/service/thread"
)

type ThreadHandler struct {
	threadService thread.Service
}

func NewThreadHandler(threadService thread.Service) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

func (h *ThreadHandler) GetThread(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	entries, err := h.threadService.GetThread(c.Context(), notifID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *ThreadHandler) Reply(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	var input domain.ReplyInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	senderID := middleware.GetCurrentUserID(c)
	reply, err := h.threadService.Reply(c.Context(), notifID, senderID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}
