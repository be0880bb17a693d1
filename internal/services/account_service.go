package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/storage"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// accountRecord is the persisted shape of a local account. models.Account
// never serializes its password hash, so the store uses this instead.
type accountRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountService is the local identity provider, used when Firebase Auth is
// not configured. It only mints sessions; profiles live in the UserStore.
type AccountService struct {
	mu       sync.RWMutex
	store    *storage.JSONStore
	accounts map[string]*accountRecord // accountID -> record
	byEmail  map[string]string         // email -> accountID
}

func NewAccountService(dataDir string) (*AccountService, error) {
	store, err := storage.NewJSONStore(dataDir, "accounts.json")
	if err != nil {
		return nil, err
	}

	s := &AccountService{
		store:    store,
		accounts: make(map[string]*accountRecord),
		byEmail:  make(map[string]string),
	}
	if err := store.Load(&s.accounts); err != nil {
		return nil, err
	}
	for id, rec := range s.accounts {
		s.byEmail[rec.Email] = id
	}
	return s, nil
}

func (s *AccountService) Register(req *models.RegisterRequest) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &accountRecord{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		CreatedAt:    time.Now(),
	}

	s.accounts[rec.ID] = rec
	s.byEmail[rec.Email] = rec.ID
	if err := s.store.Save(s.accounts); err != nil {
		return nil, err
	}

	return rec.account(), nil
}

func (s *AccountService) Login(req *models.LoginRequest) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountID, exists := s.byEmail[req.Email]
	if !exists {
		return nil, ErrAccountNotFound
	}

	rec := s.accounts[accountID]
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return rec.account(), nil
}

func (s *AccountService) GetByID(id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.accounts[id]
	if !exists {
		return nil, ErrAccountNotFound
	}

	return rec.account(), nil
}

func (r *accountRecord) account() *models.Account {
	return &models.Account{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		CreatedAt:    r.CreatedAt,
	}
}
