package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore is an in-process Store used by tests and by the memory driver.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
	ids         *IDGenerator
	logger      *zap.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]byte),
		ids:         NewIDGenerator(),
		logger:      zap.NewNop(),
	}
}

// WithLogger sets the logger used to report corrupt payloads.
func (s *MemoryStore) WithLogger(logger *zap.Logger) *MemoryStore {
	s.logger = logger
	return s
}

func (s *MemoryStore) GetAll(ctx context.Context, collection string, dest interface{}) error {
	s.mu.RLock()
	raw := s.collections[collection]
	s.mu.RUnlock()
	return decodeCollection(s.logger, collection, raw, dest)
}

func (s *MemoryStore) SaveAll(ctx context.Context, collection string, items interface{}) error {
	data, err := encodeCollection(collection, items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection string) error {
	s.mu.Lock()
	delete(s.collections, collection)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, collection string) (bool, error) {
	s.mu.RLock()
	_, ok := s.collections[collection]
	s.mu.RUnlock()
	return ok, nil
}

func (s *MemoryStore) NewID() string {
	return s.ids.NewID()
}

// SetRaw stores raw bytes for a collection without validation.
func (s *MemoryStore) SetRaw(collection string, raw []byte) {
	s.mu.Lock()
	s.collections[collection] = append([]byte(nil), raw...)
	s.mu.Unlock()
}

// Raw returns the stored bytes of a collection.
func (s *MemoryStore) Raw(collection string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.collections[collection]...)
}
