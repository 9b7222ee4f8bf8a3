package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
)

type WardrobeHandler struct {
	manager *closet.Manager
	gen     *closet.Generator
}

func NewWardrobeHandler(manager *closet.Manager, gen *closet.Generator) *WardrobeHandler {
	return &WardrobeHandler{manager: manager, gen: gen}
}

// ListItems handles GET /closet/items.
func (h *WardrobeHandler) ListItems(c *fiber.Ctx) error {
	items := h.manager.ClothingItems()
	return c.JSON(dto.ItemListResponse{Items: items, Total: len(items)})
}

// CreateItem handles POST /closet/items. The item type must be one of the
// fixed slot categories; everything else is taken as-is (field validity is
// the client's job).
func (h *WardrobeHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	itemType := closet.ItemType(req.Type)
	if !itemType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item type: " + req.Type,
		})
	}

	item, err := h.manager.AddClothingItem(c.UserContext(), closet.ClothingItem{
		Name:   req.Name,
		Type:   itemType,
		Color:  req.Color,
		Brand:  req.Brand,
		Size:   req.Size,
		Style:  req.Style,
		Images: req.Images,
	})
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem handles PUT /closet/items/:id.
func (h *WardrobeHandler) UpdateItem(c *fiber.Ctx) error {
	var upd closet.ItemUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if upd.Type != nil && !upd.Type.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid item type: " + string(*upd.Type),
		})
	}

	item, err := h.manager.UpdateClothingItem(c.UserContext(), c.Params("id"), upd)
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Item not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(item)
}

// DeleteItem handles DELETE /closet/items/:id. Outfits referencing the
// item keep their embedded copies.
func (h *WardrobeHandler) DeleteItem(c *fiber.Ctx) error {
	err := h.manager.DeleteClothingItem(c.UserContext(), c.Params("id"))
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Item not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item removed"})
}

// DetectColor handles POST /closet/items/colors - picks a dominant color
// for an uploaded image reference.
func (h *WardrobeHandler) DetectColor(c *fiber.Ctx) error {
	var req dto.DetectColorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	color, err := h.gen.DetectColor(c.UserContext(), req.ImageRef)
	if err != nil {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Error: true, Message: "Color detection cancelled",
		})
	}

	return c.JSON(dto.DetectColorResponse{Color: color})
}
