package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// MinPasswordLength is the shortest accepted local password.
const MinPasswordLength = 6

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	username     string
	name         string
	lastName     string
	email        string
	passwordHash string
	externalID   string
	verified     bool
	isAdmin      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser creates a locally registered account. The password must already be hashed.
func NewUser(username, name, lastName, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	lastName = strings.TrimSpace(lastName)
	email = NormalizeEmail(email)

	switch {
	case username == "":
		return nil, domain.NewValidationError("El nombre de usuario es obligatorio")
	case name == "":
		return nil, domain.NewValidationError("El nombre es obligatorio")
	case lastName == "":
		return nil, domain.NewValidationError("El apellido es obligatorio")
	case email == "":
		return nil, domain.NewValidationError("El email es obligatorio")
	case passwordHash == "":
		return nil, domain.NewValidationError("La contraseña es obligatoria")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("El email no es válido")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		username:     username,
		name:         name,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewExternalUser creates an account backed by an external identity provider.
// Such accounts are verified on creation.
func NewExternalUser(username, name, lastName, email, passwordHash, externalID string) (*User, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, domain.NewValidationError("El identificador externo es obligatorio")
	}
	u, err := NewUser(username, name, lastName, email, passwordHash)
	if err != nil {
		return nil, err
	}
	u.externalID = externalID
	u.verified = true
	return u, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	username, name, lastName, email, passwordHash, externalID string,
	verified, isAdmin bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     username,
		name:         name,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		externalID:   externalID,
		verified:     verified,
		isAdmin:      isAdmin,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Name() string         { return u.name }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) ExternalID() string   { return u.externalID }
func (u *User) Verified() bool       { return u.verified }
func (u *User) IsAdmin() bool        { return u.isAdmin }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// HasExternalIdentity returns true if the account was created through an external provider.
func (u *User) HasExternalIdentity() bool {
	return u.externalID != ""
}

// MatchesExternalIdentity checks the provider subject against the stored one.
func (u *User) MatchesExternalIdentity(sub string) bool {
	return u.externalID != "" && u.externalID == sub
}
