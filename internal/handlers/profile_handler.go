package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
)

type ProfileHandler struct {
	manager *closet.Manager
}

func NewProfileHandler(manager *closet.Manager) *ProfileHandler {
	return &ProfileHandler{manager: manager}
}

// GetProfile handles GET /closet/profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(h.manager.Profile())
}

// UpdateProfile handles PUT /closet/profile - merges display name and
// picture reference. The derived statistics cannot be set from outside.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var upd closet.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.manager.UpdateProfile(c.UserContext(), upd)
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(profile)
}

// UpdateUsername handles PUT /closet/profile/name.
func (h *ProfileHandler) UpdateUsername(c *fiber.Ctx) error {
	var req dto.UpdateUsernameRequest
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

	profile, err := h.manager.UpdateUsername(c.UserContext(), req.Name)
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(profile)
}

// AddTopOutfit handles POST /closet/profile/top-outfits - promotes an
// outfit to the front of the top-three ring.
func (h *ProfileHandler) AddTopOutfit(c *fiber.Ctx) error {
	var req dto.AddTopOutfitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.manager.AddTopOutfit(c.UserContext(), req.OutfitID)
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(profile)
}

// RemoveTopOutfit handles DELETE /closet/profile/top-outfits/:id.
func (h *ProfileHandler) RemoveTopOutfit(c *fiber.Ctx) error {
	profile, err := h.manager.RemoveTopOutfit(c.UserContext(), c.Params("id"))
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Outfit is not in your top outfits",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(profile)
}

// CompleteOnboarding handles POST /closet/onboarding/complete.
func (h *ProfileHandler) CompleteOnboarding(c *fiber.Ctx) error {
	if err := h.manager.CompleteOnboarding(c.UserContext()); err != nil {
		warnSnapshot(c, err)
	}
	return c.JSON(fiber.Map{"onboarding_completed": true})
}
