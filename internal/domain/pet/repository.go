package pet

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows the public listing. Empty fields are ignored.
type ListFilter struct {
	Species Species
	City    string
	Urgent  *bool
}

// PetRepository defines persistence operations for adoption listings.
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Pet, error)
	FindAvailable(ctx context.Context, filter ListFilter) ([]*Pet, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Pet, error)
	FindPendingAdoptions(ctx context.Context) ([]*Pet, error)
	Save(ctx context.Context, pet *Pet) error
	// Update persists the pet only if the stored version still equals Version(),
	// then bumps the version.
	Update(ctx context.Context, pet *Pet) error
	// Delete removes the pet together with every favorite that references it.
	Delete(ctx context.Context, id uuid.UUID) error
}
