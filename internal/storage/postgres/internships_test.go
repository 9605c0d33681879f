package postgres

import (
	"strings"
	"testing"

	"github.com/kairohq/internexplore_backend/internal/domain"
)

func int64p(v int64) *int64 { return &v }

func TestBuildSearchQuery_DefaultFilter(t *testing.T) {
	query, args, err := buildSearchQuery(domain.InternshipFilter{}).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "is_active = $1") {
		t.Errorf("expected active-only filter, got: %s", query)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC") {
		t.Errorf("expected newest-first ordering, got: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d: %v", len(args), args)
	}
	if args[0] != true {
		t.Errorf("expected is_active arg true, got %v", args[0])
	}
}

func TestBuildSearchQuery_TitleAndLocation(t *testing.T) {
	f := domain.InternshipFilter{
		Search:   "developer",
		Location: "Bangalore",
	}

	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "title ILIKE") {
		t.Errorf("expected title ILIKE clause, got: %s", query)
	}
	if !strings.Contains(query, "location ILIKE") {
		t.Errorf("expected location ILIKE clause, got: %s", query)
	}

	// args: is_active, search pattern, location pattern
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d: %v", len(args), args)
	}
	if args[1] != "%developer%" {
		t.Errorf("expected substring pattern for title, got %v", args[1])
	}
	if args[2] != "%Bangalore%" {
		t.Errorf("expected substring pattern for location, got %v", args[2])
	}
}

func TestBuildSearchQuery_StipendBoundsInclusive(t *testing.T) {
	f := domain.InternshipFilter{
		MinStipend: int64p(10000),
		MaxStipend: int64p(20000),
	}

	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "stipend_amount >= $2") {
		t.Errorf("expected inclusive lower bound, got: %s", query)
	}
	if !strings.Contains(query, "stipend_amount <= $3") {
		t.Errorf("expected inclusive upper bound, got: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d: %v", len(args), args)
	}
	if args[1] != int64(10000) || args[2] != int64(20000) {
		t.Errorf("unexpected bound args: %v", args)
	}
}

func TestBuildSearchQuery_MinStipendOnly(t *testing.T) {
	f := domain.InternshipFilter{MinStipend: int64p(16000)}

	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if strings.Contains(query, "<=") {
		t.Errorf("did not expect upper bound, got: %s", query)
	}
	if !strings.Contains(query, "stipend_amount >= $2") {
		t.Errorf("expected lower bound only, got: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
}

func TestBuildSearchQuery_SkillsAnyMatch(t *testing.T) {
	f := domain.InternshipFilter{Skills: []string{"go", "sql"}}

	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "unnest(required_skills)") {
		t.Errorf("expected per-skill expansion, got: %s", query)
	}
	if !strings.Contains(query, "lower(skill) = ANY($2)") {
		t.Errorf("expected ANY match over supplied skills, got: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d: %v", len(args), args)
	}
}

func TestBuildSearchQuery_AllFiltersCombined(t *testing.T) {
	f := domain.InternshipFilter{
		Search:     "data",
		Location:   "remote",
		MinStipend: int64p(5000),
		MaxStipend: int64p(50000),
		Mode:       "remote",
		Type:       "full-time",
		Category:   "engineering",
		Skills:     []string{"python"},
	}

	query, args, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	// all clauses are ANDed
	if strings.Count(query, " AND ") < 7 {
		t.Errorf("expected all filters joined with AND, got: %s", query)
	}
	if len(args) != 9 {
		t.Fatalf("expected 9 args, got %d: %v", len(args), args)
	}
}

func TestBuildSearchQuery_Pagination(t *testing.T) {
	f := domain.InternshipFilter{Page: 3, PerPage: 20}

	query, _, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "LIMIT 20") {
		t.Errorf("expected page size limit, got: %s", query)
	}
	if !strings.Contains(query, "OFFSET 40") {
		t.Errorf("expected offset for page 3, got: %s", query)
	}
}

func TestBuildSearchQuery_PageZeroTreatedAsFirst(t *testing.T) {
	f := domain.InternshipFilter{Page: 0, PerPage: 10}

	query, _, err := buildSearchQuery(f).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	if !strings.Contains(query, "OFFSET 0") {
		t.Errorf("expected first page offset, got: %s", query)
	}
}
