package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/kairohq/internexplore_backend/internal/api/http/handler"
)

func (r *Router) registerInternshipRoutes(
	api fiber.Router,
	h *handler.InternshipHandler,
	appH *handler.ApplicationHandler,
) {
	internships := api.Group("/internships")

	// --- Discovery (public) ---
	internships.Get("/", h.Search)
	internships.Get("/:slug", h.GetBySlug)

	// --- Recruiter side ---
	internships.Post("/", h.Create)
	internships.Patch("/:id/publish", h.Publish)
	internships.Get("/:id/applications", appH.ListByInternship)
}
