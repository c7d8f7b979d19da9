package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	petDomain "github.com/huellitas-app/service-adoption/internal/domain/pet"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID           uuid.UUID                              `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID                              `gorm:"type:uuid;not null;index"`
	Name         string                                 `gorm:"type:varchar(100);not null"`
	Species      string                                 `gorm:"type:varchar(20);not null"`
	Breed        string                                 `gorm:"type:varchar(100);not null"`
	Age          float64                                `gorm:"not null;default:0"`
	Size         string                                 `gorm:"type:varchar(20);not null"`
	Sex          string                                 `gorm:"type:varchar(20);not null"`
	Description  string                                 `gorm:"type:text;not null"`
	Images       datatypes.JSONSlice[string]            `gorm:"not null"`
	City         string                                 `gorm:"type:varchar(100);not null"`
	Country      string                                 `gorm:"type:varchar(100);not null"`
	Status       string                                 `gorm:"type:varchar(20);not null;default:'Disponible';index"`
	Urgent       bool                                   `gorm:"not null;default:false"`
	Vaccinated   bool                                   `gorm:"not null;default:false"`
	Sterilized   bool                                   `gorm:"not null;default:false"`
	Comments     datatypes.JSONSlice[petDomain.Comment] `gorm:"not null"`
	AdopterID    *uuid.UUID                             `gorm:"type:uuid"`
	AdopterName  *string                                `gorm:"type:varchar(100)"`
	AdopterEmail *string                                `gorm:"type:varchar(255)"`
	Version      int64                                  `gorm:"not null;default:1"`
	CreatedAt    time.Time                              `gorm:"not null;index"`
	UpdatedAt    time.Time                              `gorm:"not null"`
}

func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements PetRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Mascota", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model)
}

func (r *GormPetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*petDomain.Pet, error) {
	if len(ids) == 0 {
		return []*petDomain.Pet{}, nil
	}
	var models []PetModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pets by IDs: %w", err)
	}
	return toPetDomains(models)
}

func (r *GormPetRepository) FindAvailable(ctx context.Context, filter petDomain.ListFilter) ([]*petDomain.Pet, error) {
	query := r.db.WithContext(ctx).Where("status = ?", string(petDomain.StatusAvailable))
	if filter.Species != "" {
		query = query.Where("species = ?", string(filter.Species))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Urgent != nil {
		query = query.Where("urgent = ?", *filter.Urgent)
	}

	var models []PetModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list available pets: %w", err)
	}
	return toPetDomains(models)
}

func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pets by owner: %w", err)
	}
	return toPetDomains(models)
}

func (r *GormPetRepository) FindPendingAdoptions(ctx context.Context) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND adopter_id IS NOT NULL", string(petDomain.StatusInProcess)).
		Order("updated_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list adoption requests: %w", err)
	}
	return toPetDomains(models)
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	expectedVersion := pet.Version()
	model := toPetModel(pet)
	model.Version = expectedVersion + 1

	// Select("*") so cleared adopter columns and false flags are written too.
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Select("*").
		Omit("id", "owner_id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("la mascota fue modificada por otra operación")
	}
	pet.IncrementVersion()
	return nil
}

func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&FavoriteModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites of pet: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&PetModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete pet: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Mascota", id.String())
		}
		return nil
	})
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	attrs := p.Attributes()
	model := &PetModel{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        attrs.Name,
		Species:     string(attrs.Species),
		Breed:       attrs.Breed,
		Age:         attrs.Age,
		Size:        string(attrs.Size),
		Sex:         string(attrs.Sex),
		Description: attrs.Description,
		Images:      datatypes.JSONSlice[string](attrs.Images),
		City:        attrs.Location.City,
		Country:     attrs.Location.Country,
		Status:      string(p.Status()),
		Urgent:      attrs.Urgent,
		Vaccinated:  attrs.Vaccinated,
		Sterilized:  attrs.Sterilized,
		Comments:    datatypes.JSONSlice[petDomain.Comment](p.Comments()),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	if a := p.Adopter(); a != nil {
		model.AdopterID = &a.ID
		model.AdopterName = &a.Name
		model.AdopterEmail = &a.Email
	}
	return model
}

func toPetDomain(m *PetModel) (*petDomain.Pet, error) {
	status, err := petDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("corrupt pet row %s: %w", m.ID, err)
	}

	var adopter *petDomain.UserSnapshot
	if m.AdopterID != nil {
		adopter = &petDomain.UserSnapshot{ID: *m.AdopterID}
		if m.AdopterName != nil {
			adopter.Name = *m.AdopterName
		}
		if m.AdopterEmail != nil {
			adopter.Email = *m.AdopterEmail
		}
	}

	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		petDomain.Attributes{
			Name:        m.Name,
			Species:     petDomain.Species(m.Species),
			Breed:       m.Breed,
			Age:         m.Age,
			Size:        petDomain.Size(m.Size),
			Sex:         petDomain.Sex(m.Sex),
			Description: m.Description,
			Images:      []string(m.Images),
			Location:    petDomain.Location{City: m.City, Country: m.Country},
			Urgent:      m.Urgent,
			Vaccinated:  m.Vaccinated,
			Sterilized:  m.Sterilized,
		},
		status,
		adopter,
		[]petDomain.Comment(m.Comments),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toPetDomains(models []PetModel) ([]*petDomain.Pet, error) {
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pet, err := toPetDomain(&models[i])
		if err != nil {
			return nil, err
		}
		pets[i] = pet
	}
	return pets, nil
}
