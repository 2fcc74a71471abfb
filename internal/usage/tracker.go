// Package usage persists aggregate API usage counters so cost can be
// monitored across runs. The store is a single pretty-printed JSON file
// bucketed by calendar date and by model.
package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Store is the persisted usage aggregate.
type Store struct {
	TotalRequests  int64                `json:"total_requests"`
	TotalTokens    int64                `json:"total_tokens"`
	RequestsByDate map[string]*DayStats `json:"requests_by_date"`
	LastUpdated    time.Time            `json:"last_updated"`
}

// DayStats aggregates one calendar date. SuccessfulRequests and
// FailedRequests always sum to Requests, and the per-model request counts sum
// to Requests as well.
type DayStats struct {
	Requests           int64                  `json:"requests"`
	Tokens             int64                  `json:"tokens"`
	SuccessfulRequests int64                  `json:"successful_requests"`
	FailedRequests     int64                  `json:"failed_requests"`
	Models             map[string]*ModelStats `json:"models"`
}

// ModelStats aggregates one model within a date bucket.
type ModelStats struct {
	Requests int64 `json:"requests"`
	Tokens   int64 `json:"tokens"`
}

// Tracker records request outcomes into the store at Path. Tracking is
// best-effort: storage failures are logged and swallowed so a broken usage
// file can never abort the generation flow being tracked.
type Tracker struct {
	Path string

	// now is replaceable in tests to pin date buckets.
	now func() time.Time
}

func (t *Tracker) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// Track records one request outcome: totals, today's date bucket and the
// per-model sub-record all advance in a single read-modify-write of the whole
// store. completionTokens is zero when the request produced no completion,
// such as a failed call.
func (t *Tracker) Track(model string, promptTokens, completionTokens int, success bool) {
	if err := t.track(model, promptTokens, completionTokens, success); err != nil {
		log.Error().Err(err).Str("model", model).Msg("usage tracking failed")
	}
}

func (t *Tracker) track(model string, promptTokens, completionTokens int, success bool) error {
	store, err := t.load()
	if err != nil {
		return err
	}

	tokens := int64(promptTokens) + int64(completionTokens)
	store.TotalRequests++
	store.TotalTokens += tokens

	today := t.clock().Format("2006-01-02")
	day := store.RequestsByDate[today]
	if day == nil {
		day = &DayStats{Models: map[string]*ModelStats{}}
		store.RequestsByDate[today] = day
	}
	if day.Models == nil {
		day.Models = map[string]*ModelStats{}
	}
	day.Requests++
	day.Tokens += tokens
	if success {
		day.SuccessfulRequests++
	} else {
		day.FailedRequests++
	}

	ms := day.Models[model]
	if ms == nil {
		ms = &ModelStats{}
		day.Models[model] = ms
	}
	ms.Requests++
	ms.Tokens += tokens

	store.LastUpdated = t.clock()

	if err := t.save(store); err != nil {
		return err
	}
	log.Debug().Str("model", model).Int64("tokens", tokens).Bool("success", success).Msg("tracked API request")
	return nil
}

// Summary returns the persisted usage aggregate. A store that has never been
// written yields zeroed totals and no date buckets; an unreadable or corrupt
// store returns an error the caller should treat as "no usage data
// available".
func (t *Tracker) Summary() (*Store, error) {
	return t.load()
}

func (t *Tracker) load() (*Store, error) {
	b, err := os.ReadFile(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Store{RequestsByDate: map[string]*DayStats{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read usage store: %w", err)
	}
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse usage store: %w", err)
	}
	if s.RequestsByDate == nil {
		s.RequestsByDate = map[string]*DayStats{}
	}
	return &s, nil
}

func (t *Tracker) save(s *Store) error {
	// Pretty-printed so the file stays inspectable by hand.
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(t.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// Temp file plus rename keeps concurrent readers from seeing a torn
	// store; last writer wins on racing CLI invocations.
	tmp := t.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, t.Path)
}
