package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/service/application"
)

type ApplicationHandler struct {
	svc application.Service
}

func NewApplicationHandler(svc application.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func mapApplicationError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, application.ErrMissingFields):
		return badRequest(c, err.Error())
	case errors.Is(err, application.ErrNothingToUpdate):
		return badRequest(c, err.Error())
	case errors.Is(err, application.ErrLocationRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, application.ErrApplicantNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, application.ErrInternshipNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, application.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, application.ErrAlreadyApplied):
		return conflict(c, err.Error())
	case errors.Is(err, application.ErrInvalidTransition):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /applications
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var body struct {
		InternshipID string `json:"internshipId"`
		UserID       string `json:"userId"`
		CoverLetter  string `json:"coverLetter"`
		ResumeURL    string `json:"resumeUrl"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.InternshipID == "" || body.UserID == "" {
		return badRequest(c, "internshipId and userId are required")
	}

	internshipID, err := uuid.Parse(body.InternshipID)
	if err != nil {
		return badRequest(c, "invalid internshipId")
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return badRequest(c, "invalid userId")
	}

	result, err := h.svc.Apply(c.Context(), application.ApplyRequest{
		InternshipID: internshipID,
		ApplicantID:  userID,
		CoverLetter:  body.CoverLetter,
		ResumeURL:    body.ResumeURL,
	})
	if err != nil {
		return mapApplicationError(c, err)
	}

	return created(c, result)
}

// PATCH /applications/:id/interview
func (h *ApplicationHandler) ScheduleInterview(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid application id")
	}

	var body struct {
		Mode     string `json:"mode"`
		Location string `json:"location"`
		Date     string `json:"date"`
		Time     string `json:"time"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Mode != "" &&
		body.Mode != string(domain.InterviewOnline) &&
		body.Mode != string(domain.InterviewOffline) {
		return badRequest(c, "mode must be online or offline")
	}

	if err := h.svc.ScheduleInterview(c.Context(), id, application.ScheduleInterviewRequest{
		Mode:     domain.InterviewMode(body.Mode),
		Location: body.Location,
		Date:     body.Date,
		Time:     body.Time,
	}); err != nil {
		return mapApplicationError(c, err)
	}

	return noContent(c)
}

// PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid application id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Status == "" {
		return badRequest(c, "status is required")
	}

	if err := h.svc.UpdateStatus(c.Context(), id, domain.ApplicationStatus(body.Status)); err != nil {
		return mapApplicationError(c, err)
	}

	return noContent(c)
}

// GET /internships/:id/applications
func (h *ApplicationHandler) ListByInternship(c fiber.Ctx) error {
	internshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid internship id")
	}

	apps, err := h.svc.ListByInternship(c.Context(), internshipID)
	if err != nil {
		return mapApplicationError(c, err)
	}

	return ok(c, apps)
}
