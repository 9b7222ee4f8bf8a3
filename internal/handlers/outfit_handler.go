package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
)

type OutfitHandler struct {
	manager *closet.Manager
}

func NewOutfitHandler(manager *closet.Manager) *OutfitHandler {
	return &OutfitHandler{manager: manager}
}

// ListOutfits handles GET /closet/outfits.
func (h *OutfitHandler) ListOutfits(c *fiber.Ctx) error {
	outfits := h.manager.Outfits()
	return c.JSON(dto.OutfitListResponse{Outfits: outfits, Total: len(outfits)})
}

// ListLiked handles GET /closet/outfits/liked.
func (h *OutfitHandler) ListLiked(c *fiber.Ctx) error {
	liked := h.manager.LikedOutfits()
	return c.JSON(dto.OutfitListResponse{Outfits: liked, Total: len(liked)})
}

// LikeOutfit handles POST /closet/outfits/:id/like. Liking twice is fine.
func (h *OutfitHandler) LikeOutfit(c *fiber.Ctx) error {
	outfit, err := h.manager.LikeOutfit(c.UserContext(), c.Params("id"))
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(outfit)
}

// UnlikeOutfit handles DELETE /closet/outfits/:id/like.
func (h *OutfitHandler) UnlikeOutfit(c *fiber.Ctx) error {
	err := h.manager.UnlikeOutfit(c.UserContext(), c.Params("id"))
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit is not in your likes",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(fiber.Map{"message": "Outfit removed from likes"})
}

// RenameOutfit handles PUT /closet/outfits/:id/name. The new name is
// propagated to every collection holding a copy of the outfit.
func (h *OutfitHandler) RenameOutfit(c *fiber.Ctx) error {
	var req dto.RenameOutfitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Name is required",
		})
	}

	err := h.manager.RenameOutfit(c.UserContext(), c.Params("id"), req.Name)
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(fiber.Map{"message": "Outfit renamed"})
}
