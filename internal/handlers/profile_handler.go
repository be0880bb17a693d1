package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/profilehub/backend/internal/middleware"
	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile loads the caller's profile rendered as form values. A missing
// profile is informational, not a failure: the client shows defaults.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := h.profiles.LoadProfile(ctx, userID)
	if err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("No user data found"))
			return
		}
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user data: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(view))
}

// SubmitProfile is the full-edit save: it rebuilds the whole document
// (merging stored values for fields the form left unset) and upserts it.
func (h *ProfileHandler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	email := middleware.GetUserEmail(r.Context())

	var req models.SubmitProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.profiles.Submit(ctx, services.Session{UserID: userID, Email: email}, &req)
	if err != nil {
		log.Printf("[SubmitProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save data: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// UpdateProfile is the secondary edit surface: a named-field merge update.
// Blank fields are dropped, so nothing can be cleared through this path.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.profiles.Update(ctx, userID, &req); err != nil {
		if err == services.ErrProfileNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("No user data found"))
			return
		}
		log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update data: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]bool{"updated": true}))
}

// GetAge previews the derived age for a date of birth, so the client can
// show it as soon as a date is picked, before anything is saved.
func (h *ProfileHandler) GetAge(w http.ResponseWriter, r *http.Request) {
	dob := r.URL.Query().Get("dateOfBirth")
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]int{"age": models.Age(dob)}))
}

// DeleteAccount removes the caller's profile document and stored avatars.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	result, err := h.profiles.DeleteAccount(ctx, userID)
	if err != nil {
		log.Printf("[DeleteAccount] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}
