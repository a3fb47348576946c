package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore keeps objects in process memory. It backs local development
// when no bucket is configured, and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data        []byte
	contentType string
}

// NewMemoryStore returns an empty in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key, rangeHeader string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	total := int64(len(obj.data))
	if rangeHeader != "" {
		if r, parsed := ParseRange(rangeHeader); parsed {
			if start, end, satisfiable := r.Resolve(total); satisfiable {
				part := obj.data[start : end+1]
				return &Object{
					Body:         io.NopCloser(bytes.NewReader(part)),
					ContentType:  obj.contentType,
					Size:         int64(len(part)),
					ContentRange: fmt.Sprintf("bytes %d-%d/%d", start, end, total),
				}, nil
			}
		}
	}

	return &Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        total,
	}, nil
}
