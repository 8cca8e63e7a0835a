package storefake

import (
	"context"
	"sync"
)

// FakeTokenStore is an in-memory token slot that counts writes
type FakeTokenStore struct {
	mu     sync.Mutex
	token  string
	Saves  int
	Clears int

	// LoadErr, SaveErr and ClearErr are returned by the matching call when set
	LoadErr  error
	SaveErr  error
	ClearErr error
}

func NewFakeTokenStore(token string) *FakeTokenStore {
	return &FakeTokenStore{token: token}
}

func (s *FakeTokenStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return "", s.LoadErr
	}
	return s.token, nil
}

func (s *FakeTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.token = token
	return nil
}

func (s *FakeTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.Clears++
	s.token = ""
	return nil
}

// Token returns what is persisted right now
func (s *FakeTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
