// Package retrying wraps a transcript source with bounded exponential backoff.
package retrying

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/forPelevin/ytsum/internal/ports"
	"github.com/forPelevin/ytsum/internal/types"
)

type Config struct {
	// Retries is the number of attempts after the first one.
	Retries         int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	// Permanent reports errors that must not be retried.
	Permanent func(error) bool
	Logf      func(format string, args ...any)
}

func DefaultConfig(retries int) Config {
	return Config{
		Retries:         retries,
		InitialInterval: 1 * time.Second,
		MaxInterval:     10 * time.Second,
		MaxElapsed:      60 * time.Second,
	}
}

type TranscriptSource struct {
	next ports.TranscriptSource
	cfg  Config
}

// Wrap returns next unchanged when no retries are configured.
func Wrap(next ports.TranscriptSource, cfg Config) ports.TranscriptSource {
	if cfg.Retries <= 0 {
		return next
	}
	return &TranscriptSource{next: next, cfg: cfg}
}

func (s *TranscriptSource) Fetch(ctx context.Context, videoID, language string) (types.Transcript, error) {
	logf := s.cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	attempt := 0
	op := func() (types.Transcript, error) {
		attempt++
		tr, err := s.next.Fetch(ctx, videoID, language)
		if err == nil {
			return tr, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return types.Transcript{}, backoff.Permanent(err)
		}
		if s.cfg.Permanent != nil && s.cfg.Permanent(err) {
			return types.Transcript{}, backoff.Permanent(err)
		}
		logf("transcript attempt %d failed: %v", attempt, err)
		return types.Transcript{}, err
	}

	bo := backoff.NewExponentialBackOff()
	if s.cfg.InitialInterval > 0 {
		bo.InitialInterval = s.cfg.InitialInterval
	}
	if s.cfg.MaxInterval > 0 {
		bo.MaxInterval = s.cfg.MaxInterval
	}
	opts := []backoff.RetryOption{
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(s.cfg.Retries + 1)),
	}
	if s.cfg.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(s.cfg.MaxElapsed))
	}
	return backoff.Retry(ctx, op, opts...)
}
