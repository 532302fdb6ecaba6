package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"welile-backend/internal/middleware"
	"welile-backend/internal/service/portfolio"
)

type PortfolioHandler struct {
	portfolioService portfolio.Service
}

func NewPortfolioHandler(portfolioService portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

func (h *PortfolioHandler) GetTenant(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid tenant ID")
	}

	tenant, err := h.portfolioService.GetTenant(c.Context(), tenantID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tenant)
}

func (h *PortfolioHandler) ListTenants(c *fiber.Ctx) error {
	agentID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	response, err := h.portfolioService.ListTenants(c.Context(), agentID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *PortfolioHandler) ListCollections(c *fiber.Ctx) error {
	agentID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	response, err := h.portfolioService.ListCollections(c.Context(), agentID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *PortfolioHandler) ListTenantCollections(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid tenant ID")
	}
	params := getPaginationParams(c)

	response, err := h.portfolioService.ListTenantCollections(c.Context(), tenantID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
