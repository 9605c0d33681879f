package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/kairohq/internexplore_backend/internal/api/http/handler"
)

func (r *Router) registerApplicationRoutes(
	api fiber.Router,
	h *handler.ApplicationHandler,
) {
	applications := api.Group("/applications")

	applications.Post("/", h.Apply)
	applications.Patch("/:id/interview", h.ScheduleInterview)
	applications.Patch("/:id/status", h.UpdateStatus)
}
