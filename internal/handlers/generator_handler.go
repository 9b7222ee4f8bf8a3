package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
)

type GeneratorHandler struct {
	manager *closet.Manager
}

func NewGeneratorHandler(manager *closet.Manager) *GeneratorHandler {
	return &GeneratorHandler{manager: manager}
}

// Generate handles POST /closet/generator - composes a new outfit from the
// wardrobe and selects it as current. Only one generation can be in flight;
// a second request while busy gets a 409.
func (h *GeneratorHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateOutfitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	outfit, err := h.manager.GenerateOutfit(c.UserContext(), req.Hint)
	switch {
	case errors.Is(err, closet.ErrGenerationBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "An outfit is already being generated",
		})
	case errors.Is(err, closet.ErrGenerationCancelled), errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: "Generation was cancelled",
		})
	case errors.Is(err, closet.ErrSnapshot):
		warnSnapshot(c, err)
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate outfit",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(outfit)
}

// Status handles GET /closet/generator/status - busy flag plus the
// currently selected outfit.
func (h *GeneratorHandler) Status(c *fiber.Ctx) error {
	resp := dto.GeneratorStatusResponse{Busy: h.manager.GenerationBusy()}
	if current, ok := h.manager.CurrentOutfit(); ok {
		resp.CurrentOutfit = &current
	}
	return c.JSON(resp)
}

// Cancel handles POST /closet/generator/cancel. The in-flight result, if
// any, is discarded when it lands.
func (h *GeneratorHandler) Cancel(c *fiber.Ctx) error {
	cancelled := h.manager.CancelGeneration()
	return c.JSON(fiber.Map{"cancelled": cancelled})
}

// SetCurrent handles PUT /closet/generator/current - selects an existing
// outfit as current, or clears the selection with an empty outfit_id.
func (h *GeneratorHandler) SetCurrent(c *fiber.Ctx) error {
	var req dto.SetCurrentOutfitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.manager.SetCurrentOutfit(req.OutfitID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Current outfit updated"})
}
