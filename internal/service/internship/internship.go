package internship

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SearchRequest struct {
	Search     string
	Location   string
	MinStipend *int64
	MaxStipend *int64
	Mode       string
	Type       string
	Category   string
	Skills     string // comma-separated, raw from the query string
	Page       int
	PerPage    int
}

type CreateRequest struct {
	Title               string
	Description         string
	Location            string
	Mode                domain.EmploymentMode
	Type                domain.WorkType
	Category            string
	StipendAmount       *int64
	StipendType         string
	RequiredSkills      []string
	Perks               []string
	ScreeningQuestions  []string
	Eligibility         string
	ApplicantUserType   string
	StartDate           *time.Time
	ApplicationDeadline *time.Time
	CompanyID           uuid.UUID
	RecruiterID         uuid.UUID
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

// Store is the persistence surface this service needs.
type Store interface {
	SearchInternships(ctx context.Context, f domain.InternshipFilter) ([]domain.Internship, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateInternship(ctx context.Context, in *domain.Internship) error
	GetInternshipBySlug(ctx context.Context, slug string) (*domain.Internship, error)
	PublishInternship(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	Search(ctx context.Context, req SearchRequest) ([]domain.Internship, error)
	Create(ctx context.Context, req CreateRequest) (*domain.Internship, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Internship, error)
	Publish(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type internshipService struct {
	store    Store
	rdb      *redis.Client // nil disables the search cache
	cacheTTL time.Duration
}

func New(store Store, rdb *redis.Client, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &internshipService{store: store, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *internshipService) Search(ctx context.Context, req SearchRequest) ([]domain.Internship, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 || req.PerPage > 100 {
		req.PerPage = 20
	}

	f := domain.InternshipFilter{
		Search:     strings.TrimSpace(req.Search),
		Location:   strings.TrimSpace(req.Location),
		MinStipend: req.MinStipend,
		MaxStipend: req.MaxStipend,
		Mode:       req.Mode,
		Type:       req.Type,
		Category:   req.Category,
		Skills:     normalizeSkills(req.Skills),
		Page:       req.Page,
		PerPage:    req.PerPage,
	}

	if cached, ok := s.cacheGet(ctx, f); ok {
		return cached, nil
	}

	result, err := s.store.SearchInternships(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search internships: %w", err)
	}
	if len(result) == 0 {
		return nil, ErrNoResults
	}

	s.cacheSet(ctx, f, result)

	return result, nil
}

func (s *internshipService) Create(ctx context.Context, req CreateRequest) (*domain.Internship, error) {
	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	in := &domain.Internship{
		ID:                  uuid.New(),
		Title:               strings.TrimSpace(req.Title),
		Slug:                slug,
		Description:         req.Description,
		Location:            req.Location,
		Mode:                req.Mode,
		Type:                req.Type,
		Category:            req.Category,
		StipendAmount:       req.StipendAmount,
		StipendType:         req.StipendType,
		RequiredSkills:      req.RequiredSkills,
		Perks:               req.Perks,
		ScreeningQuestions:  req.ScreeningQuestions,
		Eligibility:         req.Eligibility,
		ApplicantUserType:   req.ApplicantUserType,
		StartDate:           req.StartDate,
		ApplicationDeadline: req.ApplicationDeadline,
		IsActive:            false,
		Status:              domain.InternshipDraft,
		CompanyID:           req.CompanyID,
		RecruiterID:         req.RecruiterID,
		CreatedAt:           time.Now(),
	}

	if err := s.store.CreateInternship(ctx, in); err != nil {
		// Lost a race on the slug between the existence check and the insert.
		if errors.Is(err, postgres.ErrDuplicate) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("create internship: %w", err)
	}

	return in, nil
}

func (s *internshipService) GetBySlug(ctx context.Context, slug string) (*domain.Internship, error) {
	in, err := s.store.GetInternshipBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get internship: %w", err)
	}
	return in, nil
}

func (s *internshipService) Publish(ctx context.Context, id uuid.UUID) error {
	if err := s.store.PublishInternship(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("publish internship: %w", err)
	}
	return nil
}

// uniqueSlug derives a slug from the title and appends a numeric suffix
// until it doesn't collide with an existing posting.
func (s *internshipService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	slug := base

	for i := 2; ; i++ {
		exists, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// normalizeSkills splits the comma-separated list, trims, lower-cases and
// drops empty entries.
func normalizeSkills(raw string) []string {
	if raw == "" {
		return nil
	}

	var skills []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	return skills
}

// ---------------------------------------------------------------------------
// Search cache
// ---------------------------------------------------------------------------

func (s *internshipService) cacheKey(f domain.InternshipFilter) string {
	raw, _ := json.Marshal(f)
	sum := sha256.Sum256(raw)
	return "internships:search:" + hex.EncodeToString(sum[:8])
}

func (s *internshipService) cacheGet(ctx context.Context, f domain.InternshipFilter) ([]domain.Internship, bool) {
	if s.rdb == nil {
		return nil, false
	}

	raw, err := s.rdb.Get(ctx, s.cacheKey(f)).Bytes()
	if err != nil {
		return nil, false
	}

	var result []domain.Internship
	if err := json.Unmarshal(raw, &result); err != nil || len(result) == 0 {
		return nil, false
	}
	return result, true
}

func (s *internshipService) cacheSet(ctx context.Context, f domain.InternshipFilter, result []domain.Internship) {
	if s.rdb == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(f), raw, s.cacheTTL).Err(); err != nil {
		slog.Debug("search cache write failed", "err", err)
	}
}
