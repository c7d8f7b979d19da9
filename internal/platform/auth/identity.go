package auth

import "github.com/google/uuid"

// Identity is the resolved caller attached to every authenticated request.
// Services receive it as an explicit argument.
type Identity struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	IsAdmin bool
}

// Is reports whether the identity belongs to the given user.
func (i Identity) Is(userID uuid.UUID) bool {
	return i.UserID == userID
}
