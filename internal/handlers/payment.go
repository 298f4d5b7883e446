package handlers

import (
	"splitr/internal/models"
	"splitr/internal/services/split"
	"splitr/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	splitService split.Service
}

func NewPaymentHandler(splitService split.Service) *PaymentHandler {
	return &PaymentHandler{splitService: splitService}
}

// ProcessShopPayment splits a shop bill evenly across the group and
// returns the per-member UPI links and QR codes.
func (h *PaymentHandler) ProcessShopPayment(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input split.ShopPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.splitService.ProcessShopPayment(claims, input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, result)
}

// GenerateUPI builds a single standalone payment link.
func (h *PaymentHandler) GenerateUPI(c *fiber.Ctx) error {
	var input split.LinkInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.splitService.GenerateLink(input)
	if err != nil {
		return utils.Domain(c, err)
	}
	return utils.Success(c, result)
}
