package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	favoriteDomain "github.com/huellitas-app/service-adoption/internal/domain/favorite"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// FavoriteModel is the GORM model for the favorites table.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_pet"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_pet;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Save(ctx context.Context, fav *favoriteDomain.Favorite) error {
	model := &FavoriteModel{
		ID:        fav.ID(),
		UserID:    fav.UserID(),
		PetID:     fav.PetID(),
		CreatedAt: fav.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewDuplicateError("Esta mascota ya está en tus favoritos")
		}
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) Delete(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (r *GormFavoriteRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*favoriteDomain.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	favorites := make([]*favoriteDomain.Favorite, len(models))
	for i, m := range models {
		favorites[i] = favoriteDomain.Reconstruct(m.ID, m.UserID, m.PetID, m.CreatedAt)
	}
	return favorites, nil
}
