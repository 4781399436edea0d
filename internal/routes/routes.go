package routes

import (
	"github.com/bewithdhanu/medicine-tracker/internal/config"
	"github.com/bewithdhanu/medicine-tracker/internal/handlers"
	"github.com/bewithdhanu/medicine-tracker/internal/middleware"
	"github.com/bewithdhanu/medicine-tracker/internal/ratelimit"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	User     *handlers.UserHandler
	Medicine *handlers.MedicineHandler
	Reminder *handlers.ReminderHandler
	Insulin  *handlers.InsulinHandler
	Bookmark *handlers.BookmarkHandler
}

// Limiters are the named quotas: Info for the root and key-info pages,
// Health for /health and Default for everything else under /api.
type Limiters struct {
	Default *ratelimit.Limiter
	Info    *ratelimit.Limiter
	Health  *ratelimit.Limiter
}

func Setup(app *fiber.App, cfg *config.Config, authService *services.AuthService, h Handlers, l Limiters) {
	info := middleware.RateLimit(l.Info)
	limited := middleware.RateLimit(l.Default)
	protected := middleware.Authenticated(authService)

	// Public
	app.Get("/", info, h.Health.Root)
	app.Get("/health", middleware.RateLimit(l.Health), h.Health.Check)
	if !cfg.IsProduction() {
		app.Get("/docs", h.Health.Docs)
	}
	if cfg.UploadBackend == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/api-key-info", info, h.Auth.APIKeyInfo)
	auth.Post("/login", limited, h.Auth.Login)
	auth.Get("/me", limited, middleware.JWTProtected(authService), h.Auth.Me)

	// Protected: X-API-Key or bearer token
	users := api.Group("/users", limited, protected)
	users.Post("/", h.User.Create)
	users.Get("/", h.User.List)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)
	users.Post("/:id/upload-photo", h.User.UploadPhoto)

	medicines := api.Group("/medicines", limited, protected)
	medicines.Post("/", h.Medicine.Create)
	medicines.Get("/", h.Medicine.List)
	medicines.Get("/:id", h.Medicine.Get)
	medicines.Put("/:id", h.Medicine.Update)
	medicines.Delete("/:id", h.Medicine.Delete)
	medicines.Post("/:id/upload-image", h.Medicine.UploadImage)

	reminders := api.Group("/reminders", limited, protected)
	reminders.Post("/logs", h.Reminder.CreateLog)
	reminders.Get("/logs", h.Reminder.ListLogs)
	reminders.Get("/logs/missed", h.Reminder.Missed)
	reminders.Put("/logs/:id", h.Reminder.UpdateLog)
	reminders.Post("/", h.Reminder.Create)
	reminders.Get("/", h.Reminder.List)
	reminders.Delete("/:id", h.Reminder.Delete)

	insulin := api.Group("/insulin", limited, protected)
	insulin.Post("/", h.Insulin.Create)
	insulin.Get("/", h.Insulin.List)
	insulin.Get("/daily", h.Insulin.Daily)
	insulin.Get("/weekly", h.Insulin.Weekly)
	insulin.Get("/monthly", h.Insulin.Monthly)
	insulin.Get("/suggest-dosage", h.Insulin.SuggestDosage)

	bookmarks := api.Group("/bookmarks", limited, protected)
	bookmarks.Post("/", h.Bookmark.Create)
	bookmarks.Get("/", h.Bookmark.List)
	bookmarks.Get("/:id", h.Bookmark.Get)
	bookmarks.Put("/:id", h.Bookmark.Update)
	bookmarks.Delete("/:id", h.Bookmark.Delete)
}
