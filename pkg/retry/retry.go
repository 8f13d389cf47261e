package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultMaxDelay    = 5 * time.Second
	defaultMultiplier  = 2.0
)

// Config describes an exponential backoff policy. MaxAttempts counts the
// first call, so MaxAttempts=3 means at most two retries.
type Config struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	Multiplier     float64
	AttemptTimeout time.Duration
}

type Handler struct {
	cfg Config
}

func New(cfg Config) *Handler {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = defaultMultiplier
	}
	return &Handler{cfg: cfg}
}

// Do calls fn until it succeeds, returns a Permanent error, the parent
// context ends, or MaxAttempts is reached. It returns the number of
// attempts made and the last error with any Permanent wrapper removed.
func (r *Handler) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	delay := r.cfg.BaseDelay
	attempt := 0

	for {
		attempt++
		err := r.call(ctx, fn)
		if err == nil {
			return attempt, nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return attempt, p.err
		}
		if ctx.Err() != nil || attempt >= r.cfg.MaxAttempts {
			return attempt, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return attempt, err
		}

		delay = time.Duration(math.Min(
			float64(r.cfg.MaxDelay),
			float64(delay)*r.cfg.Multiplier,
		))
	}
}

func (r *Handler) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.cfg.AttemptTimeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string {
	return p.err.Error()
}

func (p *permanentError) Unwrap() error {
	return p.err
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
