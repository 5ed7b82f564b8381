package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Repository is a typed view over every record under one key prefix,
// e.g. "order:" or "product:".
type Repository[T any] struct {
	store  Store
	prefix string
}

func NewRepository[T any](s Store, prefix string) *Repository[T] {
	return &Repository[T]{store: s, prefix: prefix}
}

func (r *Repository[T]) Key(id string) string { return r.prefix + id }

func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	raw, err := r.store.Get(ctx, r.Key(id))
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", r.Key(id), err)
	}
	return v, nil
}

func (r *Repository[T]) Put(ctx context.Context, id string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.Key(id), err)
	}
	return r.store.Set(ctx, r.Key(id), raw)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.store.Del(ctx, r.Key(id))
}

// List returns every record under the prefix in key order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	recs, err := r.store.GetByPrefix(ctx, r.prefix)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := json.Unmarshal(rec.Value, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", rec.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Document is a typed singleton record such as "cms-content".
type Document[T any] struct {
	store Store
	key   string
}

func NewDocument[T any](s Store, key string) *Document[T] {
	return &Document[T]{store: s, key: key}
}

// Load reports found=false when the record has never been written.
func (d *Document[T]) Load(ctx context.Context) (v T, found bool, err error) {
	raw, err := d.store.Get(ctx, d.key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", d.key, err)
	}
	return v, true, nil
}

func (d *Document[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.key, err)
	}
	return d.store.Set(ctx, d.key, raw)
}
