package handlers

import (
	"sort"
	"time"

	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

type HealthHandler struct {
	ping func() error
}

func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "Medicine Tracker API",
		Version: Version,
		Status:  "running",
	})
}

// Docs lists the registered routes. Only mounted outside production.
func (h *HealthHandler) Docs(c *fiber.Ctx) error {
	seen := make(map[string]bool)
	var routes []dto.RouteInfo
	for _, r := range c.App().GetRoutes(true) {
		if r.Method == fiber.MethodHead || r.Method == fiber.MethodOptions {
			continue
		}
		key := r.Method + " " + r.Path
		if seen[key] {
			continue
		}
		seen[key] = true
		routes = append(routes, dto.RouteInfo{Method: r.Method, Path: r.Path})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return c.JSON(fiber.Map{
		"title":   "Medicine Tracker API",
		"version": Version,
		"routes":  routes,
	})
}
