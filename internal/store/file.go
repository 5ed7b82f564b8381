package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Memory store that writes a JSON snapshot to disk after
// every mutation and reloads it on open.
type File struct {
	mu      sync.Mutex
	path    string
	records map[string][]byte
}

func OpenFile(path string) (*File, error) {
	f := &File{path: path, records: make(map[string][]byte)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return f, nil
	}
	var snap map[string]json.RawMessage
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	for k, v := range snap {
		f.records[k] = []byte(v)
	}
	return f, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("set %s: value is not valid JSON", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.records[key]
	f.records[key] = clone(value)
	if err := f.flush(); err != nil {
		if had {
			f.records[key] = prev
		} else {
			delete(f.records, key)
		}
		return err
	}
	return nil
}

func (f *File) GetByPrefix(ctx context.Context, prefix string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return collect(f.records, prefix), nil
}

func (f *File) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.records[key]
	if !had {
		return nil
	}
	delete(f.records, key)
	if err := f.flush(); err != nil {
		f.records[key] = prev
		return err
	}
	return nil
}

func (f *File) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flush()
}

// flush must be called with f.mu held. The snapshot is written to a
// temp file and renamed so a crash never leaves a torn file.
func (f *File) flush() error {
	snap := make(map[string]json.RawMessage, len(f.records))
	for k, v := range f.records {
		snap[k] = json.RawMessage(v)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
