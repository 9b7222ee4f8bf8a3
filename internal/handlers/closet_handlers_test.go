package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/what2wear/backend/internal/closet"
	"github.com/what2wear/backend/internal/dto"
	"github.com/what2wear/backend/internal/handlers"
	"github.com/what2wear/backend/internal/store"
)

// newTestApp wires the closet handlers onto a bare fiber app, without the
// auth middleware, so requests can hit the routes directly.
func newTestApp(t *testing.T) (*fiber.App, *closet.Manager) {
	t.Helper()

	manager, err := closet.NewManager(context.Background(), store.NewMemory(), closet.NewGenerator(0))
	require.NoError(t, err)
	gen := closet.NewGenerator(0)

	wardrobe := handlers.NewWardrobeHandler(manager, gen)
	outfits := handlers.NewOutfitHandler(manager)
	generator := handlers.NewGeneratorHandler(manager)
	calendar := handlers.NewCalendarHandler(manager)
	profile := handlers.NewProfileHandler(manager)

	app := fiber.New()
	app.Get("/closet/items", wardrobe.ListItems)
	app.Post("/closet/items", wardrobe.CreateItem)
	app.Post("/closet/items/colors", wardrobe.DetectColor)
	app.Put("/closet/items/:id", wardrobe.UpdateItem)
	app.Delete("/closet/items/:id", wardrobe.DeleteItem)
	app.Get("/closet/outfits", outfits.ListOutfits)
	app.Get("/closet/outfits/liked", outfits.ListLiked)
	app.Post("/closet/outfits/:id/like", outfits.LikeOutfit)
	app.Delete("/closet/outfits/:id/like", outfits.UnlikeOutfit)
	app.Put("/closet/outfits/:id/name", outfits.RenameOutfit)
	app.Post("/closet/generator", generator.Generate)
	app.Get("/closet/generator/status", generator.Status)
	app.Post("/closet/generator/cancel", generator.Cancel)
	app.Put("/closet/generator/current", generator.SetCurrent)
	app.Get("/closet/events", calendar.ListEvents)
	app.Post("/closet/events", calendar.CreateEvent)
	app.Put("/closet/events/:id", calendar.UpdateEvent)
	app.Delete("/closet/events/:id", calendar.DeleteEvent)
	app.Put("/closet/events/:id/outfit", calendar.AssignOutfit)
	app.Get("/closet/profile", profile.GetProfile)
	app.Put("/closet/profile/name", profile.UpdateUsername)
	app.Post("/closet/profile/top-outfits", profile.AddTopOutfit)

	return app, manager
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, payload
}

func TestCreateAndListItems(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/closet/items", dto.CreateItemRequest{
		Name: "Hoodie", Type: "top", Color: "Gray", Brand: "B", Images: []string{"/h.jpg"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var item closet.ClothingItem
	require.NoError(t, json.Unmarshal(body, &item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Hoodie", item.Name)

	resp, body = doJSON(t, app, fiber.MethodGet, "/closet/items", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list dto.ItemListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, item.ID, list.Items[0].ID)
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/closet/items", dto.CreateItemRequest{
		Name: "Hat", Type: "headwear",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateAndDeleteItemNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPut, "/closet/items/missing", fiber.Map{"name": "X"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/closet/items/missing", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDetectColorEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/closet/items/colors", dto.DetectColorRequest{
		ImageRef: "ref://upload/1.jpg",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.DetectColorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, closet.ColorPalette, out.Color)
}

func TestGenerateStatusAndLikeFlow(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/closet/generator", dto.GenerateOutfitRequest{Hint: "picnic"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var outfit closet.Outfit
	require.NoError(t, json.Unmarshal(body, &outfit))
	assert.Equal(t, "An outfit based on: picnic", outfit.Description)

	resp, body = doJSON(t, app, fiber.MethodGet, "/closet/generator/status", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var status dto.GeneratorStatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.False(t, status.Busy)
	require.NotNil(t, status.CurrentOutfit)
	assert.Equal(t, outfit.ID, status.CurrentOutfit.ID)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/closet/outfits/"+outfit.ID+"/like", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/closet/outfits/liked", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var liked dto.OutfitListResponse
	require.NoError(t, json.Unmarshal(body, &liked))
	assert.Equal(t, 1, liked.Total)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/closet/outfits/"+outfit.ID+"/like", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/closet/outfits/"+outfit.ID+"/like", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRenameOutfitValidation(t *testing.T) {
	app, manager := newTestApp(t)

	outfit, err := manager.GenerateOutfit(context.Background(), "x")
	require.NoError(t, err)

	resp, _ := doJSON(t, app, fiber.MethodPut, "/closet/outfits/"+outfit.ID+"/name", dto.RenameOutfitRequest{Name: ""})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/closet/outfits/"+outfit.ID+"/name", dto.RenameOutfitRequest{Name: "Date Night"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Date Night", manager.Outfits()[0].Name)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/closet/outfits/missing/name", dto.RenameOutfitRequest{Name: "X"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEventEndpoints(t *testing.T) {
	app, manager := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/closet/events", dto.CreateEventRequest{
		Name: "Gala", Location: "Hall", Date: "not-a-date",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, "/closet/events", dto.CreateEventRequest{
		Name: "Gala", Location: "Hall", Date: "2026-09-10", Type: "party",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var event closet.Event
	require.NoError(t, json.Unmarshal(body, &event))

	outfit, err := manager.GenerateOutfit(context.Background(), "gala")
	require.NoError(t, err)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/closet/events/"+event.ID+"/outfit", dto.AssignOutfitRequest{OutfitID: "missing"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodPut, "/closet/events/"+event.ID+"/outfit", dto.AssignOutfitRequest{OutfitID: outfit.ID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &event))
	assert.Equal(t, outfit.ID, event.OutfitID)
	require.NotNil(t, event.Outfit)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/closet/events/"+event.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, manager.Events())
}

func TestProfileEndpoints(t *testing.T) {
	app, manager := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPut, "/closet/profile/name", dto.UpdateUsernameRequest{Name: ""})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPut, "/closet/profile/name", dto.UpdateUsernameRequest{Name: "Anna"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var profile closet.UserProfile
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "Anna", profile.Name)

	outfit, err := manager.GenerateOutfit(context.Background(), "x")
	require.NoError(t, err)

	resp, body = doJSON(t, app, fiber.MethodPost, "/closet/profile/top-outfits", dto.AddTopOutfitRequest{OutfitID: outfit.ID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &profile))
	require.Len(t, profile.TopOutfits, 1)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/closet/profile/top-outfits", dto.AddTopOutfitRequest{OutfitID: "missing"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/closet/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, 1, profile.OutfitsCreated)
}

func TestSetCurrentOutfitEndpoint(t *testing.T) {
	app, manager := newTestApp(t)

	outfit, err := manager.GenerateOutfit(context.Background(), "x")
	require.NoError(t, err)

	resp, _ := doJSON(t, app, fiber.MethodPut, "/closet/generator/current", dto.SetCurrentOutfitRequest{OutfitID: "missing"})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/closet/generator/current", dto.SetCurrentOutfitRequest{OutfitID: ""})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, ok := manager.CurrentOutfit()
	require.False(t, ok)

	resp, _ = doJSON(t, app, fiber.MethodPut, "/closet/generator/current", dto.SetCurrentOutfitRequest{OutfitID: outfit.ID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	current, ok := manager.CurrentOutfit()
	require.True(t, ok)
	assert.Equal(t, outfit.ID, current.ID)
}
