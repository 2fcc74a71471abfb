package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL is the entry lifetime used when a cache is constructed without
// an explicit TTL.
const DefaultTTL = 24 * time.Hour

// Request identifies a generation request for caching purposes. Requests with
// identical field values always resolve to the same entry.
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// Entry is the on-disk record for one cached response. The request fields are
// retained alongside the response so entries can be inspected manually, even
// though only Timestamp and Response participate in lookups.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt"`
	UserPrompt   string    `json:"user_prompt"`
	Temperature  float32   `json:"temperature"`
	MaxTokens    int       `json:"max_tokens"`
	Response     string    `json:"response"`
}

// ResponseCache stores model responses on disk, one JSON file per request
// fingerprint. It is best-effort: read and write failures degrade to cache
// misses and never propagate to callers.
type ResponseCache struct {
	Dir string
	// TTL is the maximum entry age served by Get. Zero means DefaultTTL.
	TTL time.Duration
	// StrictPerms, when true, enforces 0700 on the cache directory and 0600
	// on entry files to provide at-rest protection via restricted permissions.
	StrictPerms bool

	// now is replaceable in tests to exercise expiry deterministically.
	now func() time.Time
}

func (c *ResponseCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *ResponseCache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultTTL
}

func (c *ResponseCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if c.StrictPerms {
		perm = 0o700
	}
	if err := os.MkdirAll(c.Dir, perm); err != nil {
		return err
	}
	// If directory already existed and StrictPerms is on, tighten perms
	if c.StrictPerms {
		if info, err := os.Stat(c.Dir); err == nil {
			if info.Mode()&0o777 != 0o700 {
				_ = os.Chmod(c.Dir, 0o700)
			}
		}
	}
	return nil
}

// Fingerprint returns the cache key for a request. Every field is
// length-prefixed before hashing so two distinct requests can never collapse
// into the same pre-image, and the temperature uses the shortest
// round-tripping float form so values that differ at all hash differently.
func Fingerprint(req Request) string {
	h := sha256.New()
	for _, field := range []string{
		req.Model,
		req.SystemPrompt,
		req.UserPrompt,
		strconv.FormatFloat(float64(req.Temperature), 'g', -1, 32),
		strconv.Itoa(req.MaxTokens),
	} {
		fmt.Fprintf(h, "%d:%s", len(field), field)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *ResponseCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns the cached response for req when an entry exists and is younger
// than the TTL. Expired entries are reported as misses but left on disk;
// Prune is the only operation that deletes them. Unreadable or corrupt
// entries count as misses.
func (c *ResponseCache) Get(_ context.Context, req Request) (string, bool) {
	if err := c.ensureDir(); err != nil {
		log.Warn().Err(err).Msg("response cache unavailable")
		return "", false
	}
	key := Fingerprint(req)
	b, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		log.Debug().Str("key", key).Msg("cache miss")
		return "", false
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("unreadable cache entry")
		return "", false
	}
	if c.clock().Sub(e.Timestamp) > c.ttl() {
		log.Debug().Str("key", key).Msg("cache expired")
		return "", false
	}
	log.Info().Str("key", key).Msg("cache hit")
	return e.Response, true
}

// Set records a response for req with the current timestamp, overwriting any
// previous entry for the same fingerprint. Set never fails from the caller's
// perspective; persistence errors are logged and dropped so a broken cache
// cannot abort the generation flow that produced the response.
func (c *ResponseCache) Set(_ context.Context, req Request, response string) {
	if err := c.ensureDir(); err != nil {
		log.Warn().Err(err).Msg("response cache unavailable")
		return
	}
	key := Fingerprint(req)
	e := Entry{
		Timestamp:    c.clock(),
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
		Response:     response,
	}
	if err := c.write(key, e); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		return
	}
	log.Debug().Str("key", key).Msg("cached response")
}

func (c *ResponseCache) write(key string, e Entry) error {
	b, err := json.MarshalIndent(&e, "", "  ")
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if c.StrictPerms {
		mode = 0o600
	}
	// Write to a temp file first so a concurrent reader never observes a
	// partially written entry.
	p := c.pathFor(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, mode); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}
