package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	favoriteDomain "github.com/huellitas-app/service-adoption/internal/domain/favorite"
	petDomain "github.com/huellitas-app/service-adoption/internal/domain/pet"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// AddFavoriteRequest is the request DTO for bookmarking a listing.
type AddFavoriteRequest struct {
	PetID uuid.UUID `json:"mascotaId" binding:"required"`
}

// FavoriteDTO is the API representation of a bookmark.
type FavoriteDTO struct {
	ID     uuid.UUID `json:"_id"`
	UserID uuid.UUID `json:"usuario"`
	PetID  uuid.UUID `json:"mascota"`
}

// FavoriteService implements bookmark use cases.
type FavoriteService struct {
	favorites favoriteDomain.FavoriteRepository
	pets      *PetService
	logger    *zap.Logger
}

// NewFavoriteService creates a new FavoriteService. Listings are read and
// presented through the given PetService.
func NewFavoriteService(
	favorites favoriteDomain.FavoriteRepository,
	pets *PetService,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{favorites: favorites, pets: pets, logger: logger}
}

// AddFavorite bookmarks a listing that the caller does not own.
func (s *FavoriteService) AddFavorite(ctx context.Context, caller auth.Identity, petID uuid.UUID) (*FavoriteDTO, error) {
	pet, err := s.pets.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.IsOwnedBy(caller.UserID) {
		return nil, domain.NewSelfReferenceError("No puedes agregar tu propia mascota a favoritos")
	}

	exists, err := s.favorites.Exists(ctx, caller.UserID, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to check favorite: %w", err)
	}
	if exists {
		return nil, domain.NewDuplicateError("Esta mascota ya está en tus favoritos")
	}

	fav, err := favoriteDomain.NewFavorite(caller.UserID, petID)
	if err != nil {
		return nil, err
	}
	if err := s.favorites.Save(ctx, fav); err != nil {
		if domain.IsKind(err, domain.KindDuplicate) {
			return nil, err
		}
		s.logger.Error("failed to add favorite", zap.Error(err))
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	s.logger.Info("favorite added",
		zap.String("pet_id", petID.String()),
		zap.String("user_id", caller.UserID.String()),
	)
	return &FavoriteDTO{ID: fav.ID(), UserID: fav.UserID(), PetID: fav.PetID()}, nil
}

// RemoveFavorite deletes a bookmark.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, caller auth.Identity, petID uuid.UUID) error {
	removed, err := s.favorites.Delete(ctx, caller.UserID, petID)
	if err != nil {
		s.logger.Error("failed to remove favorite", zap.Error(err))
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return domain.NewNotFoundError("Favorito", petID.String())
	}

	s.logger.Info("favorite removed",
		zap.String("pet_id", petID.String()),
		zap.String("user_id", caller.UserID.String()),
	)
	return nil
}

// ListFavorites returns the bookmarked listings, newest bookmark first.
// Listings that no longer exist are skipped.
func (s *FavoriteService) ListFavorites(ctx context.Context, caller auth.Identity) ([]PetDTO, error) {
	favorites, err := s.favorites.FindByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	ids := make([]uuid.UUID, len(favorites))
	for i, f := range favorites {
		ids[i] = f.PetID()
	}
	pets, err := s.pets.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite pets: %w", err)
	}

	byID := make(map[uuid.UUID]*petDomain.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID()] = p
	}
	ordered := make([]*petDomain.Pet, 0, len(favorites))
	for _, f := range favorites {
		if p, ok := byID[f.PetID()]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.pets.present(ctx, ordered)
}

// IsFavorite reports whether the caller has bookmarked the listing.
func (s *FavoriteService) IsFavorite(ctx context.Context, caller auth.Identity, petID uuid.UUID) (bool, error) {
	exists, err := s.favorites.Exists(ctx, caller.UserID, petID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
