package favorite

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository defines persistence operations for bookmarks.
type FavoriteRepository interface {
	// Save fails with a duplicate error if the (user, pet) pair already exists.
	Save(ctx context.Context, favorite *Favorite) error
	// Delete reports whether a bookmark was removed.
	Delete(ctx context.Context, userID, petID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error)
	// FindByUserID returns the user's bookmarks, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Favorite, error)
}
