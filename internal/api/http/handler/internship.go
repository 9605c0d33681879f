package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/service/internship"
)

type InternshipHandler struct {
	svc internship.Service
}

func NewInternshipHandler(svc internship.Service) *InternshipHandler {
	return &InternshipHandler{svc: svc}
}

func mapInternshipError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, internship.ErrNoResults):
		return notFound(c, err.Error())
	case errors.Is(err, internship.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, internship.ErrSlugConflict):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /internships
func (h *InternshipHandler) Search(c fiber.Ctx) error {
	var q struct {
		Search     string `query:"search"`
		Location   string `query:"location"`
		MinStipend string `query:"minStipend"`
		MaxStipend string `query:"maxStipend"`
		Mode       string `query:"mode"`
		Type       string `query:"type"`
		Category   string `query:"category"`
		Skills     string `query:"skills"`
		Page       int    `query:"page"`
		PerPage    int    `query:"per_page"`
	}
	_ = c.Bind().Query(&q)

	req := internship.SearchRequest{
		Search:   q.Search,
		Location: q.Location,
		Mode:     q.Mode,
		Type:     q.Type,
		Category: q.Category,
		Skills:   q.Skills,
		Page:     q.Page,
		PerPage:  q.PerPage,
	}
	if q.MinStipend != "" {
		v, err := strconv.ParseInt(q.MinStipend, 10, 64)
		if err != nil {
			return badRequest(c, "invalid minStipend")
		}
		req.MinStipend = &v
	}
	if q.MaxStipend != "" {
		v, err := strconv.ParseInt(q.MaxStipend, 10, 64)
		if err != nil {
			return badRequest(c, "invalid maxStipend")
		}
		req.MaxStipend = &v
	}

	result, err := h.svc.Search(c.Context(), req)
	if err != nil {
		return mapInternshipError(c, err)
	}

	return ok(c, result)
}

// GET /internships/:slug
func (h *InternshipHandler) GetBySlug(c fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return badRequest(c, "missing slug")
	}

	in, err := h.svc.GetBySlug(c.Context(), slug)
	if err != nil {
		return mapInternshipError(c, err)
	}

	return ok(c, in)
}

// POST /internships
func (h *InternshipHandler) Create(c fiber.Ctx) error {
	var body struct {
		Title               string   `json:"title"`
		Description         string   `json:"description"`
		Location            string   `json:"location"`
		Mode                string   `json:"mode"`
		Type                string   `json:"type"`
		Category            string   `json:"category"`
		StipendAmount       *int64   `json:"stipend_amount"`
		StipendType         string   `json:"stipend_type"`
		RequiredSkills      []string `json:"required_skills"`
		Perks               []string `json:"perks"`
		ScreeningQuestions  []string `json:"screening_questions"`
		Eligibility         string   `json:"eligibility"`
		ApplicantUserType   string   `json:"applicant_user_type"`
		StartDate           *string  `json:"start_date"`
		ApplicationDeadline *string  `json:"application_deadline"`
		CompanyID           string   `json:"company_id"`
		RecruiterID         string   `json:"recruiter_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Title == "" {
		return badRequest(c, "title is required")
	}
	if body.CompanyID == "" || body.RecruiterID == "" {
		return badRequest(c, "company_id and recruiter_id are required")
	}

	companyID, err := uuid.Parse(body.CompanyID)
	if err != nil {
		return badRequest(c, "invalid company_id")
	}
	recruiterID, err := uuid.Parse(body.RecruiterID)
	if err != nil {
		return badRequest(c, "invalid recruiter_id")
	}

	req := internship.CreateRequest{
		Title:              body.Title,
		Description:        body.Description,
		Location:           body.Location,
		Mode:               domain.EmploymentMode(body.Mode),
		Type:               domain.WorkType(body.Type),
		Category:           body.Category,
		StipendAmount:      body.StipendAmount,
		StipendType:        body.StipendType,
		RequiredSkills:     body.RequiredSkills,
		Perks:              body.Perks,
		ScreeningQuestions: body.ScreeningQuestions,
		Eligibility:        body.Eligibility,
		ApplicantUserType:  body.ApplicantUserType,
		CompanyID:          companyID,
		RecruiterID:        recruiterID,
	}
	if body.StartDate != nil {
		t, err := time.Parse(time.RFC3339, *body.StartDate)
		if err != nil {
			return badRequest(c, "invalid start_date")
		}
		req.StartDate = &t
	}
	if body.ApplicationDeadline != nil {
		t, err := time.Parse(time.RFC3339, *body.ApplicationDeadline)
		if err != nil {
			return badRequest(c, "invalid application_deadline")
		}
		req.ApplicationDeadline = &t
	}

	in, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapInternshipError(c, err)
	}

	return created(c, in)
}

// PATCH /internships/:id/publish
func (h *InternshipHandler) Publish(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid internship id")
	}

	if err := h.svc.Publish(c.Context(), id); err != nil {
		return mapInternshipError(c, err)
	}

	return noContent(c)
}
