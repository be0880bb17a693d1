package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilehub/backend/internal/middleware"
	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/services"
)

func newTestHandler(t *testing.T) (*ProfileHandler, *services.FileUserService) {
	t.Helper()
	store, err := services.NewFileUserService(t.TempDir())
	require.NoError(t, err)
	return NewProfileHandler(services.NewProfileService(store, nil)), store
}

func authed(req *http.Request, userID, email string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.UserEmailKey, email)
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetProfileUnauthorized(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest("GET", "/api/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetProfileNotFoundIsInformational(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetProfile(rec, authed(httptest.NewRequest("GET", "/api/profile", nil), "uid-1", "alex@example.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "No user data found", resp.Error)
}

func TestSubmitThenGetProfile(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(models.SubmitProfileRequest{
		PhoneNumber: "555-0101",
		Address:     "Leeds, Main St, LS1 1AA",
		Interests:   "reading, running",
		DateOfBirth: "2000-5-15",
	})
	rec := httptest.NewRecorder()
	h.SubmitProfile(rec, authed(httptest.NewRequest("PUT", "/api/profile", bytes.NewReader(body)), "uid-1", "alex@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetProfile(rec, authed(httptest.NewRequest("GET", "/api/profile", nil), "uid-1", "alex@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	view := resp.Data.(map[string]interface{})
	assert.Equal(t, "Leeds, Main St, LS1 1AA", view["address"])
	assert.Equal(t, "reading, running", view["interests"])

	user := view["user"].(map[string]interface{})
	assert.Equal(t, "alex@example.com", user["email"])
	assert.Equal(t, "555-0101", user["phoneNumber"])
}

func TestSubmitInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.SubmitProfile(rec, authed(httptest.NewRequest("PUT", "/api/profile", bytes.NewReader([]byte("{not json"))), "uid-1", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfileReportsChanged(t *testing.T) {
	h, store := newTestHandler(t)
	require.NoError(t, store.Save(context.Background(), &models.User{
		ID:        "uid-1",
		Address:   map[string]string{},
		Interests: []string{},
	}))

	body, _ := json.Marshal(models.UpdateProfileRequest{PhoneNumber: "555-0202"})
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, authed(httptest.NewRequest("PATCH", "/api/profile", bytes.NewReader(body)), "uid-1", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"updated": true}, resp.Data)

	doc, err := store.Load(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "555-0202", models.UserFromMap(doc).PhoneNumber)
}

func TestUpdateProfileMissingDocument(t *testing.T) {
	h, _ := newTestHandler(t)

	body, _ := json.Marshal(models.UpdateProfileRequest{PhoneNumber: "555-0202"})
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, authed(httptest.NewRequest("PATCH", "/api/profile", bytes.NewReader(body)), "uid-1", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAgePreview(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetAge(rec, httptest.NewRequest("GET", "/api/profile/age?dateOfBirth=not-a-date", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, map[string]interface{}{"age": float64(0)}, resp.Data)
}

func TestDeleteAccount(t *testing.T) {
	h, store := newTestHandler(t)
	require.NoError(t, store.Save(context.Background(), &models.User{
		ID:        "uid-1",
		Address:   map[string]string{},
		Interests: []string{},
	}))

	rec := httptest.NewRecorder()
	h.DeleteAccount(rec, authed(httptest.NewRequest("DELETE", "/api/account", nil), "uid-1", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.Load(context.Background(), "uid-1")
	assert.ErrorIs(t, err, services.ErrProfileNotFound)
}
