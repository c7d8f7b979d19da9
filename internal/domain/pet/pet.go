package pet

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// Comment is a note left on a listing. It has no lifecycle outside its Pet.
type Comment struct {
	ID        uuid.UUID    `json:"_id"`
	Text      string       `json:"texto"`
	Author    UserSnapshot `json:"usuario"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Pet is the aggregate root for an adoption listing.
type Pet struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	attrs     Attributes
	status    Status
	adopter   *UserSnapshot
	comments  []Comment
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewPet creates a new Disponible listing with validated attributes.
func NewPet(ownerID uuid.UUID, attrs Attributes) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("El propietario es obligatorio")
	}
	attrs.normalize()
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Pet{
		id:        uuid.New(),
		ownerID:   ownerID,
		attrs:     attrs,
		status:    StatusAvailable,
		comments:  []Comment{},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	attrs Attributes,
	status Status,
	adopter *UserSnapshot,
	comments []Comment,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	if comments == nil {
		comments = []Comment{}
	}
	if attrs.Images == nil {
		attrs.Images = []string{}
	}
	return &Pet{
		id:        id,
		ownerID:   ownerID,
		attrs:     attrs,
		status:    status,
		adopter:   adopter,
		comments:  comments,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID          { return p.id }
func (p *Pet) OwnerID() uuid.UUID     { return p.ownerID }
func (p *Pet) Attributes() Attributes { return p.attrs }
func (p *Pet) Status() Status         { return p.status }
func (p *Pet) Version() int64         { return p.version }
func (p *Pet) CreatedAt() time.Time   { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time   { return p.updatedAt }

// Adopter returns a copy of the pending adopter snapshot, or nil.
func (p *Pet) Adopter() *UserSnapshot {
	if p.adopter == nil {
		return nil
	}
	a := *p.adopter
	return &a
}

// Comments returns the comment thread, newest first.
func (p *Pet) Comments() []Comment {
	out := make([]Comment, len(p.comments))
	copy(out, p.comments)
	return out
}

// --- Behavior ---

// IsOwnedBy checks if the listing belongs to the given user.
func (p *Pet) IsOwnedBy(userID uuid.UUID) bool {
	return p.ownerID == userID
}

// Update merges the patch into the listing attributes.
func (p *Pet) Update(patch Patch) error {
	next := p.attrs.apply(patch)
	next.normalize()
	if err := next.validate(); err != nil {
		return err
	}
	p.attrs = next
	p.touch()
	return nil
}

// RequestAdoption moves a Disponible listing to En proceso with the requester as adopter.
// The owner is not excluded.
func (p *Pet) RequestAdoption(requester UserSnapshot) error {
	if !p.status.CanTransitionTo(StatusInProcess) {
		return domain.NewInvalidStateError(string(p.status), string(StatusInProcess))
	}
	p.status = StatusInProcess
	p.adopter = &requester
	p.touch()
	return nil
}

// RejectAdoption returns an En proceso listing to Disponible and clears the adopter.
// It reports whether anything changed; a listing that is already Disponible is left alone.
func (p *Pet) RejectAdoption() (bool, error) {
	if p.status == StatusAvailable && p.adopter == nil {
		return false, nil
	}
	if !p.status.CanTransitionTo(StatusAvailable) {
		return false, domain.NewInvalidStateError(string(p.status), string(StatusAvailable))
	}
	p.status = StatusAvailable
	p.adopter = nil
	p.touch()
	return true, nil
}

// AddComment prepends a comment authored by the given user.
func (p *Pet) AddComment(author UserSnapshot, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, domain.NewValidationError("El comentario no puede estar vacío")
	}
	c := Comment{
		ID:        uuid.New(),
		Text:      text,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	p.comments = append([]Comment{c}, p.comments...)
	p.touch()
	return c, nil
}

// RemoveComment deletes a comment. Only its author or an administrator may do so.
func (p *Pet) RemoveComment(commentID, callerID uuid.UUID, isAdmin bool) error {
	for i, c := range p.comments {
		if c.ID != commentID {
			continue
		}
		if c.Author.ID != callerID && !isAdmin {
			return domain.NewForbiddenError("No tienes permiso para eliminar este comentario")
		}
		p.comments = append(p.comments[:i:i], p.comments[i+1:]...)
		p.touch()
		return nil
	}
	return domain.NewNotFoundError("comentario", commentID.String())
}

// IncrementVersion bumps the version for optimistic locking. Called once per save.
func (p *Pet) IncrementVersion() {
	p.version++
}

func (p *Pet) touch() {
	p.updatedAt = time.Now().UTC()
}
