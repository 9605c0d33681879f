package internship

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/kairohq/internexplore_backend/internal/domain"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
)

type fakeStore struct {
	searchResult []domain.Internship
	searchErr    error
	lastFilter   domain.InternshipFilter

	existingSlugs map[string]bool
	created       *domain.Internship
	createErr     error

	bySlug     *domain.Internship
	publishErr error
}

func (f *fakeStore) SearchInternships(ctx context.Context, filter domain.InternshipFilter) ([]domain.Internship, error) {
	f.lastFilter = filter
	return f.searchResult, f.searchErr
}

func (f *fakeStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.existingSlugs[slug], nil
}

func (f *fakeStore) CreateInternship(ctx context.Context, in *domain.Internship) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = in
	return nil
}

func (f *fakeStore) GetInternshipBySlug(ctx context.Context, slug string) (*domain.Internship, error) {
	if f.bySlug == nil {
		return nil, postgres.ErrNotFound
	}
	return f.bySlug, nil
}

func (f *fakeStore) PublishInternship(ctx context.Context, id uuid.UUID) error {
	return f.publishErr
}

func TestSearch_EmptyResultIsNotFound(t *testing.T) {
	svc := New(&fakeStore{}, nil, 0)

	_, err := svc.Search(context.Background(), SearchRequest{})
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearch_NormalizesSkillsAndPagination(t *testing.T) {
	store := &fakeStore{searchResult: []domain.Internship{{Title: "x"}}}
	svc := New(store, nil, 0)

	_, err := svc.Search(context.Background(), SearchRequest{
		Skills:  " Go, SQL ,, react ",
		Page:    -1,
		PerPage: 500,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	f := store.lastFilter
	want := []string{"go", "sql", "react"}
	if len(f.Skills) != len(want) {
		t.Fatalf("expected %d skills, got %v", len(want), f.Skills)
	}
	for i, s := range want {
		if f.Skills[i] != s {
			t.Errorf("skill %d: got %q, want %q", i, f.Skills[i], s)
		}
	}
	if f.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", f.Page)
	}
	if f.PerPage != 20 {
		t.Errorf("expected per-page clamped to default, got %d", f.PerPage)
	}
}

func TestSearch_StoreErrorPassesThrough(t *testing.T) {
	store := &fakeStore{searchErr: errors.New("connection refused")}
	svc := New(store, nil, 0)

	_, err := svc.Search(context.Background(), SearchRequest{})
	if err == nil || errors.Is(err, ErrNoResults) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestCreate_SlugFromTitle(t *testing.T) {
	store := &fakeStore{existingSlugs: map[string]bool{}}
	svc := New(store, nil, 0)

	in, err := svc.Create(context.Background(), CreateRequest{
		Title:       "Backend Developer Intern",
		CompanyID:   uuid.New(),
		RecruiterID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if in.Slug != "backend-developer-intern" {
		t.Errorf("unexpected slug %q", in.Slug)
	}
	if in.IsActive {
		t.Error("new posting should start inactive")
	}
	if in.Status != domain.InternshipDraft {
		t.Errorf("new posting should start as draft, got %q", in.Status)
	}
}

func TestCreate_SlugCollisionGetsSuffix(t *testing.T) {
	store := &fakeStore{existingSlugs: map[string]bool{
		"backend-intern":   true,
		"backend-intern-2": true,
	}}
	svc := New(store, nil, 0)

	in, err := svc.Create(context.Background(), CreateRequest{Title: "Backend Intern"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if in.Slug != "backend-intern-3" {
		t.Errorf("expected suffixed slug, got %q", in.Slug)
	}
}

func TestCreate_SlugRaceSurfacesConflict(t *testing.T) {
	store := &fakeStore{
		existingSlugs: map[string]bool{},
		createErr:     postgres.ErrDuplicate,
	}
	svc := New(store, nil, 0)

	_, err := svc.Create(context.Background(), CreateRequest{Title: "Backend Intern"})
	if !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := New(&fakeStore{}, nil, 0)

	_, err := svc.GetBySlug(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublish_NotFound(t *testing.T) {
	svc := New(&fakeStore{publishErr: postgres.ErrNotFound}, nil, 0)

	err := svc.Publish(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
