package internship

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Backend Developer Intern", "backend-developer-intern"},
		{"  Data Science (Remote)  ", "data-science-remote"},
		{"C++ / Systems", "c-systems"},
		{"UI/UX Designer", "ui-ux-designer"},
		{"2024 Summer Internship", "2024-summer-internship"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
