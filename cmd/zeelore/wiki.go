package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zeelore/internal/config"
	"zeelore/internal/services"
)

const wikiCacheTTL = 24 * time.Hour

func wikiCmd(cfg *config.Config) *cobra.Command {
	var page, refresh bool
	cmd := &cobra.Command{
		Use:   "wiki [kind] [filter]",
		Short: "Render entities as wiki markup",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, filter := argsKindFilter(args)
			format := "wikitable"
			if page {
				format = "wikipage"
			}
			out, err := renderWiki(cmd.Context(), cfg, kind, filter, format, refresh)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&page, "page", false, "Render full articles instead of a table")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Drop any cached copy and re-render")
	return cmd
}

// renderWiki renders wiki output through the cache when one is configured.
// Cache keys carry the dump fingerprint, so a fresh export never serves
// stale markup; refresh drops the cached copy up front instead of reading it.
func renderWiki(ctx context.Context, cfg *config.Config, kind, filter, format string, refresh bool) (string, error) {
	cache := openCache(ctx, cfg)
	world, loader := buildWorld()

	var key string
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				slog.Warn("closing cache", "error", err)
			}
		}()
		key = fmt.Sprintf("wiki:%s:%s:%s:%s", kind, filter, format, loader.DataHash())
		if refresh {
			if err := cache.Del(ctx, key); err != nil {
				slog.Warn("dropping cached wiki output", "key", key, "error", err)
			}
		} else if cached, err := cache.Get(ctx, key); err == nil && cached != "" {
			slog.Debug("wiki cache hit", "key", key)
			return cached, nil
		}
	}

	out, err := renderKind(world, kind, filter, format)
	if err != nil {
		return "", err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, out, wikiCacheTTL); err != nil {
			slog.Warn("caching wiki output", "error", err)
		}
	}
	return out, nil
}

// openCache connects to Redis when configured. Any failure downgrades to
// uncached rendering.
func openCache(ctx context.Context, cfg *config.Config) services.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	cache := services.NewRedisService(cfg.RedisAddr, slog.Default())
	if err := cache.Ping(ctx); err != nil {
		slog.Warn("cache unreachable, rendering uncached", "error", err)
		if err := cache.Close(); err != nil {
			slog.Debug("closing unreachable cache", "error", err)
		}
		return nil
	}
	return cache
}
