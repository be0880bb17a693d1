package services

import (
	"context"
	"sync"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/storage"
)

// FileUserService is a local/dev UserStore keeping the users collection in
// a JSON file. It honors the same contract as the remote backends,
// including the no-I/O guarantee for fully-pruned updates.
type FileUserService struct {
	mu    sync.RWMutex
	store *storage.JSONStore
	users map[string]map[string]interface{} // id -> document
}

func NewFileUserService(dataDir string) (*FileUserService, error) {
	store, err := storage.NewJSONStore(dataDir, "users.json")
	if err != nil {
		return nil, err
	}

	s := &FileUserService{
		store: store,
		users: make(map[string]map[string]interface{}),
	}
	if err := store.Load(&s.users); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileUserService) Load(_ context.Context, id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.users[id]
	if !exists {
		return nil, ErrProfileNotFound
	}

	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out, nil
}

func (s *FileUserService) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user.Document()
	return s.store.Save(s.users)
}

func (s *FileUserService) Update(_ context.Context, id string, fields map[string]interface{}) error {
	pruned := pruneUpdate(fields)
	if len(pruned) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.users[id]
	if !exists {
		return ErrProfileNotFound
	}
	for k, v := range pruned {
		doc[k] = v
	}
	return s.store.Save(s.users)
}

func (s *FileUserService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return nil
	}
	delete(s.users, id)
	return s.store.Save(s.users)
}
