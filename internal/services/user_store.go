package services

import (
	"context"
	"errors"
	"strings"

	"github.com/profilehub/backend/internal/models"
)

// ErrProfileNotFound reports a missing profile document. It is
// informational, not a transport failure: a fresh account simply has no
// document until its first full save.
var ErrProfileNotFound = errors.New("profile not found")

// UserStore is the document-store boundary for the users collection.
// Documents are untyped string-keyed maps; decoding happens above this
// layer. No implementation retries: a failed call is terminal and the
// caller decides whether to surface or re-initiate it.
type UserStore interface {
	// Load returns the raw document at the given id, or ErrProfileNotFound.
	Load(ctx context.Context, id string) (map[string]interface{}, error)

	// Save atomically replaces (or creates) the whole document at user.ID.
	Save(ctx context.Context, user *models.User) error

	// Update merge-writes the named fields only, after dropping nil and
	// blank-string values. If nothing remains it performs no I/O at all.
	// Updating a document that does not exist is an error.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete removes the document. Deleting a missing document is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// pruneUpdate drops entries whose value is nil or a blank string, so a
// partial update can never persist an empty string field. Non-string values
// (address maps, interest slices) always pass through, even when empty.
func pruneUpdate(fields map[string]interface{}) map[string]interface{} {
	pruned := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		pruned[k] = v
	}
	return pruned
}
