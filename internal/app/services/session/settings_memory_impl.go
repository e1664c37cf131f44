package session

import (
	"context"
	"sync"

	"ehrbridge-service/internal/pkg/dto/requests"
)

// memorySettingsStore is the fallback store used when no Redis address is
// configured, and the store tests exercise the manager with.
type memorySettingsStore struct {
	mu     sync.Mutex
	config *requests.EHRConnectionConfig
}

func NewMemorySettingsStore() SettingsStore {
	return &memorySettingsStore{}
}

func (s *memorySettingsStore) Save(_ context.Context, config *requests.EHRConnectionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *config
	s.config = &stored
	return nil
}

func (s *memorySettingsStore) Load(_ context.Context) (*requests.EHRConnectionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config == nil {
		return nil, nil
	}
	loaded := *s.config
	return &loaded, nil
}

func (s *memorySettingsStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = nil
	return nil
}
