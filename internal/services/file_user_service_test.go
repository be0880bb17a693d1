package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilehub/backend/internal/models"
)

func TestFileUserServiceLoadMissing(t *testing.T) {
	svc, err := NewFileUserService(t.TempDir())
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFileUserServiceSaveLoadDecode(t *testing.T) {
	dataDir := t.TempDir()
	svc, err := NewFileUserService(dataDir)
	require.NoError(t, err)

	name := "Alex"
	user := &models.User{
		ID:          "uid-1",
		Name:        &name,
		Email:       "alex@example.com",
		PhoneNumber: "555-0101",
		DateOfBirth: "2000-5-15",
		Address:     map[string]string{"city": "Leeds", "street": "Main St", "postcode": "LS1 1AA"},
		Interests:   []string{"reading"},
	}
	require.NoError(t, svc.Save(context.Background(), user))

	// Re-open from disk: documents survive both persistence and the JSON
	// type erasure (maps and lists come back untyped).
	reopened, err := NewFileUserService(dataDir)
	require.NoError(t, err)

	doc, err := reopened.Load(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, user, models.UserFromMap(doc))
}

func TestFileUserServiceUpdateMergesNamedFields(t *testing.T) {
	svc, err := NewFileUserService(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, svc.Save(context.Background(), &models.User{
		ID:          "uid-1",
		PhoneNumber: "555-0101",
		DateOfBirth: "2000-5-15",
		Address:     map[string]string{},
		Interests:   []string{},
	}))

	err = svc.Update(context.Background(), "uid-1", map[string]interface{}{
		"phoneNumber": "555-0202",
		"name":        "", // blank, must be dropped
	})
	require.NoError(t, err)

	doc, err := svc.Load(context.Background(), "uid-1")
	require.NoError(t, err)
	user := models.UserFromMap(doc)
	assert.Equal(t, "555-0202", user.PhoneNumber)
	assert.Nil(t, user.Name)
	// Untouched fields stay.
	assert.Equal(t, "2000-5-15", user.DateOfBirth)
}

func TestFileUserServiceUpdateMissingDocument(t *testing.T) {
	svc, err := NewFileUserService(t.TempDir())
	require.NoError(t, err)

	err = svc.Update(context.Background(), "missing", map[string]interface{}{"phoneNumber": "555"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFileUserServiceUpdateFullyPrunedIsNoOp(t *testing.T) {
	dataDir := t.TempDir()
	svc, err := NewFileUserService(dataDir)
	require.NoError(t, err)

	// Even against a missing document: everything prunes away, so no I/O
	// happens and no NotFound is reported.
	err = svc.Update(context.Background(), "missing", map[string]interface{}{
		"name":  nil,
		"email": "   ",
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dataDir, "users.json"))
	assert.True(t, os.IsNotExist(statErr), "no-op update must not touch the file")
}

func TestFileUserServiceDelete(t *testing.T) {
	svc, err := NewFileUserService(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, svc.Save(context.Background(), &models.User{
		ID:        "uid-1",
		Address:   map[string]string{},
		Interests: []string{},
	}))
	require.NoError(t, svc.Delete(context.Background(), "uid-1"))

	_, err = svc.Load(context.Background(), "uid-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// Deleting a missing document is not an error.
	assert.NoError(t, svc.Delete(context.Background(), "uid-1"))
}
