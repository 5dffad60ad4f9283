package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })
}

func TestColored_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := []struct {
		in, want string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		withVersion(t, tt.in, "", "")
		if got := Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBanner(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	withVersion(t, "1.2.3", "abc123", "2024-01-15")
	got := Banner()
	for _, want := range []string{"pinec 1.2.3\n", "commit: abc123\n", "built:  2024-01-15\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("Banner() = %q, missing %q", got, want)
		}
	}

	withVersion(t, "1.2.3", "", "")
	if got := Banner(); got != "pinec 1.2.3\n" {
		t.Errorf("Banner() = %q", got)
	}
}
