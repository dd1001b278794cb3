package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	if got := Colored(false); got != "1.2.3-rc1" {
		t.Fatalf("Colored(false) = %q", got)
	}
}

func TestColoredPaintsParts(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("Colored(true) = %q", got)
	}
	for _, part := range []string{"1", "2", "3"} {
		if !strings.Contains(got, part) {
			t.Fatalf("missing %q in %q", part, got)
		}
	}
}

func TestColoredOddVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Fatalf("Colored(true) = %q", got)
	}
}
