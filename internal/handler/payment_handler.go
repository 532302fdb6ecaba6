package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"welile-backend/internal/domain"
	"welile-backend/internal/middleware"
	"welile-backend/internal/service/payment"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Apply posts the pending payment carried by a notification. Safe to retry:
// a second call returns 409 without touching the balance again.
func (h *PaymentHandler) Apply(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	actorID := middleware.GetCurrentUserID(c)
	rcpt, err := h.paymentService.Apply(c.Context(), notifID, actorID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"receipt": rcpt})
}

// RecordAsAgent creates a pending payment notification for a manager to apply.
func (h *PaymentHandler) RecordAsAgent(c *fiber.Ctx) error {
	var input domain.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return middleware.UnprocessableEntity(err.Error())
	}

	agentID := middleware.GetCurrentUserID(c)
	notif, err := h.paymentService.RecordByAgent(c.Context(), agentID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"notification": notif})
}

// RecordAsManager posts the payment immediately and notifies the agent.
func (h *PaymentHandler) RecordAsManager(c *fiber.Ctx) error {
	var input domain.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return middleware.UnprocessableEntity(err.Error())
	}

	managerID := middleware.GetCurrentUserID(c)
	rcpt, err := h.paymentService.RecordByManager(c.Context(), managerID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"receipt": rcpt})
}
