package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/responder/responder/internal/question"
)

// MemoryStore keeps the document in process memory. It is used for unit
// tests and for STORAGE_BACKEND=memory.
type MemoryStore struct {
	mu  sync.RWMutex
	doc question.Document
}

// NewMemoryStore returns a store holding a copy of seed.
func NewMemoryStore(seed ...question.Question) *MemoryStore {
	return &MemoryStore{doc: question.Document(seed).Clone()}
}

func (m *MemoryStore) Location() string {
	return fmt.Sprintf("memory:%p", m)
}

func (m *MemoryStore) Load(ctx context.Context) (question.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageReadError{Location: m.Location(), Err: err}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, doc question.Document) error {
	if err := ctx.Err(); err != nil {
		return &StorageWriteError{Location: m.Location(), Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	return nil
}
