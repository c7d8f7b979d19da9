package favorite

import (
	"time"

	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// Favorite pairs a user with a listing they bookmarked.
type Favorite struct {
	id        uuid.UUID
	userID    uuid.UUID
	petID     uuid.UUID
	createdAt time.Time
}

// NewFavorite creates a bookmark. Callers check ownership before creating it.
func NewFavorite(userID, petID uuid.UUID) (*Favorite, error) {
	if userID == uuid.Nil || petID == uuid.Nil {
		return nil, domain.NewValidationError("Se requiere el usuario y la mascota")
	}
	return &Favorite{
		id:        uuid.New(),
		userID:    userID,
		petID:     petID,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Favorite from persistence data (no validation).
func Reconstruct(id, userID, petID uuid.UUID, createdAt time.Time) *Favorite {
	return &Favorite{id: id, userID: userID, petID: petID, createdAt: createdAt}
}

func (f *Favorite) ID() uuid.UUID        { return f.id }
func (f *Favorite) UserID() uuid.UUID    { return f.userID }
func (f *Favorite) PetID() uuid.UUID     { return f.petID }
func (f *Favorite) CreatedAt() time.Time { return f.createdAt }
