package services

import (
	"context"

	"github.com/profilehub/backend/internal/models"
)

// Session is the read-only view of the authenticated identity. The profile
// flows never mutate it; email in particular is always taken from here at
// save time, not from the form.
type Session struct {
	UserID string
	Email  string
}

// ProfileService carries the edit-form flows on top of a UserStore: load a
// profile into form values, rebuild a full document on submit, and apply
// named-field updates from the secondary edit surface.
type ProfileService struct {
	store   UserStore
	avatars *AvatarService
}

func NewProfileService(store UserStore, avatars *AvatarService) *ProfileService {
	return &ProfileService{store: store, avatars: avatars}
}

// LoadProfile fetches and decodes the profile, rendered the way the edit
// form consumes it. ErrProfileNotFound passes through untouched so callers
// can treat it as informational.
func (s *ProfileService) LoadProfile(ctx context.Context, id string) (*models.ProfileView, error) {
	data, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	user := models.UserFromMap(data)
	return &models.ProfileView{
		User:      user,
		Address:   models.JoinAddress(user.Address),
		Interests: models.JoinInterests(user.Interests),
		Age:       models.Age(user.DateOfBirth),
	}, nil
}

// Submit rebuilds the full profile document from the form and upserts it.
// The stored profile is fetched first so fields this form does not edit
// (name) or did not change this session (date of birth, picture) are not
// wiped by the whole-document write. This is last-write-wins, not a merge;
// a concurrent writer between the fetch and the save loses.
func (s *ProfileService) Submit(ctx context.Context, session Session, req *models.SubmitProfileRequest) (*models.User, error) {
	var stored *models.User
	data, err := s.store.Load(ctx, session.UserID)
	if err == nil {
		stored = models.UserFromMap(data)
	} else if err != ErrProfileNotFound {
		return nil, err
	}

	user := &models.User{
		ID:                session.UserID,
		Email:             session.Email,
		PhoneNumber:       req.PhoneNumber,
		DateOfBirth:       req.DateOfBirth,
		Address:           models.ParseAddress(req.Address),
		Interests:         models.ParseInterests(req.Interests),
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if stored != nil {
		user.Name = stored.Name
		if user.DateOfBirth == "" {
			user.DateOfBirth = stored.DateOfBirth
		}
		if user.ProfilePictureURL == "" {
			user.ProfilePictureURL = stored.ProfilePictureURL
		}
	}

	if err := s.store.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the secondary edit surface as a named-field merge write.
// Blank values are dropped by the store client, and a request that prunes
// to nothing issues no I/O.
func (s *ProfileService) Update(ctx context.Context, id string, req *models.UpdateProfileRequest) error {
	fields := map[string]interface{}{
		"name":        req.Name,
		"email":       req.Email,
		"phoneNumber": req.PhoneNumber,
		"address":     models.ParseAddress(req.Address),
		"interests":   models.ParseInterests(req.Interests),
	}
	return s.store.Update(ctx, id, fields)
}

// DeleteAccount removes the profile document and the user's stored avatars,
// reporting which avatar URLs were deleted.
func (s *ProfileService) DeleteAccount(ctx context.Context, id string) (*models.DeleteAccountResponse, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	var urls []string
	if s.avatars != nil {
		urls = s.avatars.DeleteAllForUser(id)
	}
	return &models.DeleteAccountResponse{AvatarURLs: urls}, nil
}
