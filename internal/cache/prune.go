package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Prune removes every entry whose stored timestamp is older than maxAge and
// reports how many were removed. maxAge <= 0 falls back to the cache TTL.
// Unreadable or malformed files are skipped rather than treated as fatal, and
// pruning an empty cache is a no-op.
func (c *ResponseCache) Prune(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = c.ttl()
	}
	if err := c.ensureDir(); err != nil {
		return 0, err
	}
	now := c.clock()
	removed := 0
	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable
		}
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			return nil // skip malformed
		}
		if now.Sub(e.Timestamp) <= maxAge {
			return nil
		}
		removed++
		_ = os.Remove(path)
		return nil
	})
	log.Info().Int("removed", removed).Msg("pruned expired cache entries")
	return removed, err
}

// Clear removes the cache directory and all contents. It recreates the
// directory afterwards to leave a valid empty cache location.
func (c *ResponseCache) Clear() error {
	if c == nil || strings.TrimSpace(c.Dir) == "" {
		return errors.New("empty cache dir")
	}
	if err := os.RemoveAll(c.Dir); err != nil {
		return err
	}
	return c.ensureDir()
}
