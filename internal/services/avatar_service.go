package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/storage"
)

var (
	ErrAvatarNotFound = errors.New("avatar not found")
	ErrUnauthorized   = errors.New("unauthorized")
)

// AvatarService stores uploaded profile pictures on disk and serves them
// under /uploads. The returned URL is an opaque reference the client hands
// back as profilePictureUrl; rendering is entirely the client's business.
type AvatarService struct {
	mu        sync.RWMutex
	uploadDir string
	records   *storage.JSONStore
	avatars   map[string]*avatarRecord // avatarID -> record
}

type avatarRecord struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	UserID   string `json:"user_id"`
}

func NewAvatarService(uploadDir, dataDir string) (*AvatarService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, err
	}

	records, err := storage.NewJSONStore(dataDir, "avatars.json")
	if err != nil {
		return nil, err
	}

	s := &AvatarService{
		uploadDir: uploadDir,
		records:   records,
		avatars:   make(map[string]*avatarRecord),
	}
	if err := records.Load(&s.avatars); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AvatarService) Upload(userID string, filename string, file io.Reader) (*models.AvatarUploadResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	avatarID := uuid.New().String()

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	newFilename := avatarID + ext
	filePath := filepath.Join(s.uploadDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	record := &avatarRecord{
		ID:       avatarID,
		Filename: newFilename,
		Path:     filePath,
		URL:      "/uploads/" + newFilename,
		UserID:   userID,
	}
	s.avatars[avatarID] = record
	if err := s.records.Save(s.avatars); err != nil {
		return nil, err
	}

	return &models.AvatarUploadResponse{
		ID:       avatarID,
		URL:      record.URL,
		Filename: newFilename,
	}, nil
}

func (s *AvatarService) Delete(userID, avatarID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.avatars[avatarID]
	if !exists {
		return ErrAvatarNotFound
	}

	// Only the owner may delete.
	if record.UserID != userID {
		return ErrUnauthorized
	}

	if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	delete(s.avatars, avatarID)
	return s.records.Save(s.avatars)
}

// DeleteAllForUser removes every avatar owned by the user and returns the
// URLs that were removed. File and record removal is best effort.
func (s *AvatarService) DeleteAllForUser(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	urls := make([]string, 0)
	for id, record := range s.avatars {
		if record.UserID != userID {
			continue
		}
		if err := os.Remove(record.Path); err != nil && !os.IsNotExist(err) {
			continue
		}
		urls = append(urls, record.URL)
		delete(s.avatars, id)
	}
	_ = s.records.Save(s.avatars)
	return urls
}
