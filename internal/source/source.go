// Package source resolves a username to a contribution calendar.
package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/cache"
	"github.com/san-kum/gravlens/internal/demo"
	"github.com/san-kum/gravlens/internal/github"
	"github.com/san-kum/gravlens/internal/grid"
)

// Source supplies the calendar of a user.
type Source interface {
	Days(ctx context.Context, user string) ([]grid.Day, error)
}

// Demo ignores the user and returns the seeded demo calendar.
type Demo struct {
	Seed uint32
}

func (d Demo) Days(context.Context, string) ([]grid.Day, error) {
	return demo.Generate(d.Seed), nil
}

// Fetcher reads through an optional cache to the GitHub API.
type Fetcher struct {
	client *github.Client
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewFetcher returns a Fetcher. c may be nil to disable caching.
func NewFetcher(client *github.Client, c *cache.Cache, ttl time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, cache: c, ttl: ttl, logger: logger}
}

func (f *Fetcher) Days(ctx context.Context, user string) ([]grid.Day, error) {
	if f.cache != nil {
		days, ok, err := f.cache.Get(ctx, user, f.ttl)
		switch {
		case err != nil:
			f.logger.Warn("cache read failed", zap.String("user", user), zap.Error(err))
		case ok:
			f.logger.Debug("cache hit", zap.String("user", user), zap.Int("days", len(days)))
			return days, nil
		}
	}

	days, err := f.client.FetchContributions(ctx, user)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, user, days); err != nil {
			f.logger.Warn("cache write failed", zap.String("user", user), zap.Error(err))
		}
	}
	return days, nil
}
