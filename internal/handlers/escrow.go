package handlers

import (
	"errors"
	"net/url"
	"strings"

	"challenz/internal/services/escrow"
	"challenz/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type EscrowHandler struct {
	escrowService escrow.Service
}

func NewEscrowHandler(escrowService escrow.Service) *EscrowHandler {
	return &EscrowHandler{
		escrowService: escrowService,
	}
}

// ListEscrow returns one row per merchant for the escrow payouts table
func (h *EscrowHandler) ListEscrow(c *fiber.Ctx) error {
	rows, err := h.escrowService.ListRows(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to load escrow data")
	}

	return c.JSON(fiber.Map{"rows": rows})
}

// GetMerchantEscrow returns the summary and ledger of a single merchant
func (h *EscrowHandler) GetMerchantEscrow(c *fiber.Ctx) error {
	merchantID, err := url.PathUnescape(c.Params("merchantId"))
	if err != nil || strings.TrimSpace(merchantID) == "" {
		return response.BadRequest(c, "merchantId is required")
	}

	detail, err := h.escrowService.GetMerchantDetail(c.Context(), merchantID)
	switch {
	case errors.Is(err, escrow.ErrMerchantIDRequired):
		return response.BadRequest(c, "merchantId is required")
	case errors.Is(err, escrow.ErrMerchantNotFound):
		return response.NotFound(c, "Merchant not found")
	case err != nil:
		return response.ServerError(c, "Failed to load merchant escrow")
	}

	return c.JSON(detail)
}
