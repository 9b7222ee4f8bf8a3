package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/what2wear/backend/internal/config"
	"github.com/what2wear/backend/internal/handlers"
	"github.com/what2wear/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	wardrobeHandler *handlers.WardrobeHandler,
	outfitHandler *handlers.OutfitHandler,
	generatorHandler *handlers.GeneratorHandler,
	calendarHandler *handlers.CalendarHandler,
	profileHandler *handlers.ProfileHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth routes are public but get a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Closet routes (JWT required)
	closet := api.Group("/closet", middleware.JWTProtected(cfg))

	// Wardrobe
	closet.Get("/items", wardrobeHandler.ListItems)
	closet.Post("/items", wardrobeHandler.CreateItem)
	closet.Post("/items/colors", wardrobeHandler.DetectColor)
	closet.Put("/items/:id", wardrobeHandler.UpdateItem)
	closet.Delete("/items/:id", wardrobeHandler.DeleteItem)

	// Outfits
	closet.Get("/outfits", outfitHandler.ListOutfits)
	closet.Get("/outfits/liked", outfitHandler.ListLiked)
	closet.Post("/outfits/:id/like", outfitHandler.LikeOutfit)
	closet.Delete("/outfits/:id/like", outfitHandler.UnlikeOutfit)
	closet.Put("/outfits/:id/name", outfitHandler.RenameOutfit)

	// Generator
	closet.Post("/generator", generatorHandler.Generate)
	closet.Get("/generator/status", generatorHandler.Status)
	closet.Post("/generator/cancel", generatorHandler.Cancel)
	closet.Put("/generator/current", generatorHandler.SetCurrent)

	// Calendar
	closet.Get("/events", calendarHandler.ListEvents)
	closet.Post("/events", calendarHandler.CreateEvent)
	closet.Put("/events/:id", calendarHandler.UpdateEvent)
	closet.Delete("/events/:id", calendarHandler.DeleteEvent)
	closet.Put("/events/:id/outfit", calendarHandler.AssignOutfit)

	// Profile
	closet.Get("/profile", profileHandler.GetProfile)
	closet.Put("/profile", profileHandler.UpdateProfile)
	closet.Put("/profile/name", profileHandler.UpdateUsername)
	closet.Post("/profile/top-outfits", profileHandler.AddTopOutfit)
	closet.Delete("/profile/top-outfits/:id", profileHandler.RemoveTopOutfit)
	closet.Post("/onboarding/complete", profileHandler.CompleteOnboarding)
}
