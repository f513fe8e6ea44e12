package cache

import (
	"context"
	"time"

	"github.com/etnz/nummi"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Fetcher supplies fresh currency rates, usually from a remote service.
type Fetcher interface {
	Fetch(ctx context.Context) ([]nummi.Currency, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]nummi.Currency, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]nummi.Currency, error) { return f(ctx) }

// loggingFetcher decorates a Fetcher with logging
type loggingFetcher struct {
	next   Fetcher
	logger log.Logger
}

// NewLoggingFetcher returns a Fetcher logging every call to next.
func NewLoggingFetcher(logger log.Logger, next Fetcher) Fetcher {
	return &loggingFetcher{
		next:   next,
		logger: logger,
	}
}

func (f *loggingFetcher) Fetch(ctx context.Context) (currencies []nummi.Currency, err error) {
	defer func(begin time.Time) {
		level.Debug(f.logger).Log(
			"method", "fetch",
			"currencies", len(currencies),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx)
}
