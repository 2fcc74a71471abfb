package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/gopoem/internal/app"
	"github.com/hyperifyio/gopoem/internal/cache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cmd.AddCommand(newCachePruneCmd(), newCacheClearCmd())
	return cmd
}

func newCachePruneCmd() *cobra.Command {
	var (
		dir    string
		maxAge time.Duration
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cache entries older than the TTL",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &cache.ResponseCache{Dir: cacheDirOrDefault(dir)}
			removed, err := c.Prune(maxAge)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d expired cache entries.\n", removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Cache directory (default ~/.gopoem/cache)")
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Prune entries older than this (default the cache TTL, 24h)")
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &cache.ResponseCache{Dir: cacheDirOrDefault(dir)}
			if err := c.Clear(); err != nil {
				return err
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Cache directory (default ~/.gopoem/cache)")
	return cmd
}

func cacheDirOrDefault(dir string) string {
	if dir != "" {
		return dir
	}
	return app.DefaultCacheDir()
}
