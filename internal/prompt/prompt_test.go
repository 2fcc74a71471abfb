package prompt

import (
	"strings"
	"testing"
	"time"
)

func TestForDate(t *testing.T) {
	p := ForDate("May 23, 2025")
	if !strings.Contains(p, "May 23, 2025") {
		t.Fatalf("prompt does not mention the date: %q", p)
	}
	if !strings.Contains(p, "poem") {
		t.Fatalf("prompt does not ask for a poem: %q", p)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.May, 23, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "May 23, 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.May, 23, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-05-23", "May 23, 2025"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDate("23/05/2025"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}
