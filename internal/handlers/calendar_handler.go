package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
)

type CalendarHandler struct {
	manager *closet.Manager
}

func NewCalendarHandler(manager *closet.Manager) *CalendarHandler {
	return &CalendarHandler{manager: manager}
}

// ListEvents handles GET /closet/events.
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	events := h.manager.Events()
	return c.JSON(dto.EventListResponse{Events: events, Total: len(events)})
}

// CreateEvent handles POST /closet/events. Dates are plain calendar days.
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Date must be formatted as YYYY-MM-DD",
		})
	}

	event, err := h.manager.AddEvent(c.UserContext(), closet.Event{
		Name:     req.Name,
		Location: req.Location,
		Date:     req.Date,
		Type:     req.Type,
	})
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent handles PUT /closet/events/:id.
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	var upd closet.EventUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if upd.Date != nil {
		if _, err := time.Parse("2006-01-02", *upd.Date); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Date must be formatted as YYYY-MM-DD",
			})
		}
	}

	event, err := h.manager.UpdateEvent(c.UserContext(), c.Params("id"), upd)
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Event not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(event)
}

// DeleteEvent handles DELETE /closet/events/:id.
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	err := h.manager.DeleteEvent(c.UserContext(), c.Params("id"))
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Event not found",
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(fiber.Map{"message": "Event removed"})
}

// AssignOutfit handles PUT /closet/events/:id/outfit - embeds a snapshot
// of the outfit into the event. Unknown outfit ids are a 404, and the
// event keeps its previous outfit fields.
func (h *CalendarHandler) AssignOutfit(c *fiber.Ctx) error {
	var req dto.AssignOutfitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	event, err := h.manager.AssignOutfitToEvent(c.UserContext(), c.Params("id"), req.OutfitID)
	if errors.Is(err, closet.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	if err != nil {
		warnSnapshot(c, err)
	}

	return c.JSON(event)
}
