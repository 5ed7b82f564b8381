package store

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Policy bounds every store call with a timeout and retries transient
// failures with linear backoff. ErrNotFound is never retried.
type Policy struct {
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Timeout: 3 * time.Second, Attempts: 3, Backoff: 100 * time.Millisecond}
}

type guarded struct {
	next   Store
	policy Policy
	log    *slog.Logger
}

// WithPolicy wraps s so that every call obeys p.
func WithPolicy(s Store, p Policy, log *slog.Logger) Store {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &guarded{next: s, policy: p, log: log}
}

func (g *guarded) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := g.do(ctx, "get", key, func(ctx context.Context) error {
		v, err := g.next.Get(ctx, key)
		out = v
		return err
	})
	return out, err
}

func (g *guarded) Set(ctx context.Context, key string, value []byte) error {
	return g.do(ctx, "set", key, func(ctx context.Context) error {
		return g.next.Set(ctx, key, value)
	})
}

func (g *guarded) GetByPrefix(ctx context.Context, prefix string) ([]Record, error) {
	var out []Record
	err := g.do(ctx, "getByPrefix", prefix, func(ctx context.Context) error {
		v, err := g.next.GetByPrefix(ctx, prefix)
		out = v
		return err
	})
	return out, err
}

func (g *guarded) Del(ctx context.Context, key string) error {
	return g.do(ctx, "del", key, func(ctx context.Context) error {
		return g.next.Del(ctx, key)
	})
}

func (g *guarded) Close(ctx context.Context) error {
	if c, ok := g.next.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}

func (g *guarded) do(ctx context.Context, op, key string, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= g.policy.Attempts; attempt++ {
		err = g.once(ctx, fn)
		if err == nil || errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return err
		}
		if attempt == g.policy.Attempts {
			break
		}
		g.log.Warn("store call failed, retrying",
			slog.String("op", op), slog.String("key", key),
			slog.Int("attempt", attempt), slog.Any("err", err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.policy.Backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (g *guarded) once(ctx context.Context, fn func(context.Context) error) error {
	if g.policy.Timeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, g.policy.Timeout)
	defer cancel()
	return fn(callCtx)
}
