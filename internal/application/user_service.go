package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userDomain "github.com/huellitas-app/service-adoption/internal/domain/user"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

const (
	defaultExternalName     = "Usuario"
	defaultExternalLastName = "Google"
	usernameSuffixLength    = 4
)

// RegisterRequest is the request DTO for local registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"nombre" binding:"required"`
	LastName string `json:"apellido" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the request DTO for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExternalRegisterRequest carries the identity-provider profile.
type ExternalRegisterRequest struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Subject    string `json:"sub"`
}

// ExternalLoginRequest carries the identity-provider subject.
type ExternalLoginRequest struct {
	Email   string `json:"email"`
	Subject string `json:"sub"`
}

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	Name      string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verificado"`
	IsAdmin   bool      `json:"isAdmin"`
	External  bool      `json:"externo"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult is returned by every register and login flow.
type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
	// Created is false when an external registration matched an existing account.
	Created bool `json:"-"`
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// UserService implements account use cases and resolves request identities.
type UserService struct {
	repo       userDomain.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, tokens TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// WithBcryptCost overrides the hashing cost.
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

// Register creates a local account and returns it with a token.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if len(req.Password) < userDomain.MinPasswordLength {
		return nil, domain.NewValidationError(fmt.Sprintf("La contraseña debe tener al menos %d caracteres", userDomain.MinPasswordLength))
	}

	email := userDomain.NormalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}
	taken, err := s.repo.ExistsByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, domain.NewDuplicateError("El nombre de usuario ya está en uso")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(
		sanitizeText(req.Username),
		sanitizeText(req.Name),
		sanitizeText(req.LastName),
		email,
		string(hash),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid user data: %w", err)
	}

	if err := s.repo.Save(ctx, u); err != nil {
		if domain.IsKind(err, domain.KindDuplicate) {
			return nil, err
		}
		s.logger.Error("failed to register user", zap.Error(err))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID().String()))
	return s.issue(u, true)
}

// Login checks the password and returns the account with a token.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("No existe una cuenta con este email")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("La contraseña es incorrecta")
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID().String()))
	return s.issue(u, false)
}

// RegisterExternal signs up (or signs in) a user coming from an external identity provider.
// An existing account with the same email is returned as is.
func (s *UserService) RegisterExternal(ctx context.Context, req ExternalRegisterRequest) (*AuthResult, error) {
	email := userDomain.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, domain.NewValidationError("Datos de Google incompletos")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return s.issue(existing, false)
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	username, err := s.generateUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	secret, err := randomHex(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := sanitizeText(req.GivenName)
	if name == "" {
		name = defaultExternalName
	}
	lastName := sanitizeText(req.FamilyName)
	if lastName == "" {
		lastName = defaultExternalLastName
	}

	u, err := userDomain.NewExternalUser(username, name, lastName, email, string(hash), req.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid user data: %w", err)
	}
	if err := s.repo.Save(ctx, u); err != nil {
		if domain.IsKind(err, domain.KindDuplicate) {
			return nil, err
		}
		s.logger.Error("failed to register external user", zap.Error(err))
		return nil, fmt.Errorf("failed to register external user: %w", err)
	}

	s.logger.Info("external user registered", zap.String("user_id", u.ID().String()))
	return s.issue(u, true)
}

// LoginExternal signs in an account that was created through the external provider.
func (s *UserService) LoginExternal(ctx context.Context, req ExternalLoginRequest) (*AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, domain.NewValidationError("Datos de Google incompletos")
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("No existe una cuenta con este email. Por favor, regístrate primero.")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !u.HasExternalIdentity() {
		return nil, domain.NewUnauthorizedError("Esta cuenta no está vinculada con Google. Por favor, inicia sesión con tu contraseña.")
	}
	if !u.MatchesExternalIdentity(req.Subject) {
		return nil, domain.NewUnauthorizedError("Credenciales de Google inválidas")
	}

	s.logger.Info("external user logged in", zap.String("user_id", u.ID().String()))
	return s.issue(u, false)
}

// Profile returns the caller's account.
func (s *UserService) Profile(ctx context.Context, caller auth.Identity) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ResolveIdentity loads the current name, email and admin flag for a token subject.
func (s *UserService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (auth.Identity, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{
		UserID:  u.ID(),
		Name:    u.Name(),
		Email:   u.Email(),
		IsAdmin: u.IsAdmin(),
	}, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return domain.NewDuplicateError("Ya existe una cuenta con este email")
	}
	if domain.IsKind(err, domain.KindNotFound) {
		return nil
	}
	return fmt.Errorf("failed to check email: %w", err)
}

// generateUsername derives "<local-part><random>" and retries on collision.
func (s *UserService) generateUsername(ctx context.Context, email string) (string, error) {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	for attempt := 0; attempt < 5; attempt++ {
		suffix, err := randomHex(usernameSuffixLength / 2)
		if err != nil {
			return "", fmt.Errorf("failed to generate username: %w", err)
		}
		candidate := local + suffix
		taken, err := s.repo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.NewConflictError("No se pudo generar un nombre de usuario único")
}

func (s *UserService) issue(u *userDomain.User, created bool) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(u.ID(), u.Email())
	if err != nil {
		s.logger.Error("failed to issue token", zap.String("user_id", u.ID().String()), zap.Error(err))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: toUserDTO(u), Token: token, Created: created}, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		Name:      u.Name(),
		LastName:  u.LastName(),
		Email:     u.Email(),
		Verified:  u.Verified(),
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt(),
		External:  u.HasExternalIdentity(),
	}
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
