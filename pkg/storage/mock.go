package storage

import (
	"context"
	"sync"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

// MockStorage is an in-memory Storage for tests. It keeps the encoded
// document so loads go through the same decoding as the real adapters.
type MockStorage struct {
	mu        sync.RWMutex
	document  []byte
	saves     int
	pingError error
	loadError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage with nothing saved
func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetLoadError configures the mock to fail every load with the given error
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetSaveError configures the mock to fail every save with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetDocument replaces the stored document verbatim (for testing decode paths)
func (m *MockStorage) SetDocument(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = data
}

// Document returns the last saved document, nil if nothing was saved
func (m *MockStorage) Document() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.document
}

// Saves returns how many saves succeeded
func (m *MockStorage) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// LoadInvestigators decodes the stored document
func (m *MockStorage) LoadInvestigators(ctx context.Context) ([]*actor.Investigator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	if m.document == nil {
		return nil, ErrNotFound
	}
	investigators, err := actor.DecodeInvestigators(m.document)
	if err != nil {
		return nil, WrapMalformed(err)
	}
	return investigators, nil
}

// SaveInvestigators encodes and keeps the list
func (m *MockStorage) SaveInvestigators(ctx context.Context, investigators []*actor.Investigator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	data, err := actor.EncodeInvestigators(investigators)
	if err != nil {
		return err
	}
	m.document = data
	m.saves++
	return nil
}
