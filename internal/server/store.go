package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/datacharts-labs/datacharts/pkg/dataset"
)

// DatasetStore is an in-memory, uuid-keyed collection of uploaded tables.
// Safe for concurrent use.
type DatasetStore struct {
	mu     sync.RWMutex
	tables map[string]*dataset.Table
}

// NewDatasetStore creates an empty store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{tables: map[string]*dataset.Table{}}
}

// Put stores a table and returns its generated id.
func (s *DatasetStore) Put(t *dataset.Table) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.tables[id] = t
	s.mu.Unlock()
	return id
}

// Get returns the table for id.
func (s *DatasetStore) Get(id string) (*dataset.Table, bool) {
	s.mu.RLock()
	t, ok := s.tables[id]
	s.mu.RUnlock()
	return t, ok
}

// Delete removes the table for id.
func (s *DatasetStore) Delete(id string) {
	s.mu.Lock()
	delete(s.tables, id)
	s.mu.Unlock()
}

// Len returns the number of stored tables.
func (s *DatasetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}
