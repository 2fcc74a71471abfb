package usage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return &Tracker{Path: filepath.Join(t.TempDir(), "usage.json")}
}

func TestTracker_EmptySummary(t *testing.T) {
	tr := newTestTracker(t)
	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalRequests != 0 || s.TotalTokens != 0 {
		t.Fatalf("fresh store totals = %d/%d, want 0/0", s.TotalRequests, s.TotalTokens)
	}
	if len(s.RequestsByDate) != 0 {
		t.Fatalf("fresh store has %d date buckets", len(s.RequestsByDate))
	}
}

func TestTracker_SuccessAndFailure(t *testing.T) {
	tr := newTestTracker(t)
	tr.Track("gpt-x", 50, 100, true)
	tr.Track("gpt-x", 30, 0, false)

	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalRequests != 2 {
		t.Fatalf("total requests = %d, want 2", s.TotalRequests)
	}
	if s.TotalTokens != 180 {
		t.Fatalf("total tokens = %d, want 180", s.TotalTokens)
	}
	today := time.Now().Format("2006-01-02")
	day := s.RequestsByDate[today]
	if day == nil {
		t.Fatalf("missing bucket for %s", today)
	}
	if day.Requests != 2 || day.Tokens != 180 {
		t.Fatalf("day = %d requests / %d tokens, want 2/180", day.Requests, day.Tokens)
	}
	if day.SuccessfulRequests != 1 || day.FailedRequests != 1 {
		t.Fatalf("day success/failure = %d/%d, want 1/1", day.SuccessfulRequests, day.FailedRequests)
	}
	if day.SuccessfulRequests+day.FailedRequests != day.Requests {
		t.Fatal("success + failure must equal requests")
	}
	ms := day.Models["gpt-x"]
	if ms == nil || ms.Requests != 2 || ms.Tokens != 180 {
		t.Fatalf("model stats = %+v, want 2 requests / 180 tokens", ms)
	}
}

func TestTracker_PerModelSplit(t *testing.T) {
	tr := newTestTracker(t)
	tr.Track("gpt-3.5-turbo", 10, 20, true)
	tr.Track("gpt-4", 5, 5, true)
	tr.Track("gpt-4", 7, 3, true)

	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	day := s.RequestsByDate[time.Now().Format("2006-01-02")]
	if day == nil {
		t.Fatal("missing today's bucket")
	}
	var perModel int64
	for _, ms := range day.Models {
		perModel += ms.Requests
	}
	if perModel != day.Requests {
		t.Fatalf("per-model requests sum %d != day requests %d", perModel, day.Requests)
	}
	if got := day.Models["gpt-4"].Tokens; got != 20 {
		t.Fatalf("gpt-4 tokens = %d, want 20", got)
	}
}

func TestTracker_MultiDayBuckets(t *testing.T) {
	tr := newTestTracker(t)
	day1 := time.Date(2025, 5, 23, 12, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	tr.now = func() time.Time { return day1 }
	tr.Track("gpt-x", 10, 10, true)
	tr.now = func() time.Time { return day2 }
	tr.Track("gpt-x", 5, 5, true)
	tr.Track("gpt-x", 1, 1, false)

	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(s.RequestsByDate) != 2 {
		t.Fatalf("date buckets = %d, want 2", len(s.RequestsByDate))
	}
	if s.TotalRequests != 3 {
		t.Fatalf("total requests = %d, want 3", s.TotalRequests)
	}
	if got := s.RequestsByDate["2025-05-23"].Requests; got != 1 {
		t.Fatalf("day1 requests = %d, want 1", got)
	}
	if got := s.RequestsByDate["2025-05-24"].Requests; got != 2 {
		t.Fatalf("day2 requests = %d, want 2", got)
	}
	if !s.LastUpdated.Equal(day2) {
		t.Fatalf("last updated = %v, want %v", s.LastUpdated, day2)
	}
}

func TestTracker_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	(&Tracker{Path: path}).Track("gpt-x", 10, 10, true)
	(&Tracker{Path: path}).Track("gpt-x", 10, 10, true)

	s, err := (&Tracker{Path: path}).Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.TotalRequests != 2 || s.TotalTokens != 40 {
		t.Fatalf("totals = %d/%d, want 2/40", s.TotalRequests, s.TotalTokens)
	}
}

func TestTracker_PrettyPrintedFile(t *testing.T) {
	tr := newTestTracker(t)
	tr.Track("gpt-x", 1, 1, true)
	b, err := os.ReadFile(tr.Path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"total_requests\"") {
		t.Fatal("store file should be indented for manual inspection")
	}
}

func TestTracker_CorruptStore(t *testing.T) {
	tr := newTestTracker(t)
	if err := os.WriteFile(tr.Path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Summary(); err == nil {
		t.Fatal("corrupt store should surface as an error from Summary")
	}
	// Track must swallow the same failure.
	tr.Track("gpt-x", 1, 1, true)
}

func TestTracker_TrackNeverPanicsOnBadPath(t *testing.T) {
	tr := &Tracker{Path: filepath.Join(t.TempDir(), "missing", "\x00", "usage.json")}
	tr.Track("gpt-x", 1, 1, true)
}
