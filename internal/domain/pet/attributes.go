package pet

import (
	"strings"

	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/domain"
)

// Species of animal offered for adoption.
type Species string

const (
	SpeciesDog   Species = "Perro"
	SpeciesCat   Species = "Gato"
	SpeciesOther Species = "Otro"
)

// IsValid returns true if the species is recognized.
func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Size of the animal.
type Size string

const (
	SizeSmall  Size = "Pequeño"
	SizeMedium Size = "Mediano"
	SizeLarge  Size = "Grande"
)

// IsValid returns true if the size is recognized.
func (s Size) IsValid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Sex of the animal.
type Sex string

const (
	SexMale   Sex = "Macho"
	SexFemale Sex = "Hembra"
)

// IsValid returns true if the sex is recognized.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Location is where the animal can be picked up.
type Location struct {
	City    string `json:"ciudad"`
	Country string `json:"pais"`
}

// Attributes are the owner-editable fields of a listing.
type Attributes struct {
	Name        string
	Species     Species
	Breed       string
	Age         float64
	Size        Size
	Sex         Sex
	Description string
	Images      []string
	Location    Location
	Urgent      bool
	Vaccinated  bool
	Sterilized  bool
}

func (a *Attributes) normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Breed = strings.TrimSpace(a.Breed)
	a.Description = strings.TrimSpace(a.Description)
	a.Location.City = strings.TrimSpace(a.Location.City)
	a.Location.Country = strings.TrimSpace(a.Location.Country)
	if a.Images == nil {
		a.Images = []string{}
	}
}

func (a Attributes) validate() error {
	switch {
	case a.Name == "":
		return domain.NewValidationError("El nombre es obligatorio")
	case !a.Species.IsValid():
		return domain.NewValidationError("La especie debe ser Perro, Gato u Otro")
	case a.Breed == "":
		return domain.NewValidationError("La raza es obligatoria")
	case a.Age < 0:
		return domain.NewValidationError("La edad no puede ser negativa")
	case !a.Size.IsValid():
		return domain.NewValidationError("El tamaño debe ser Pequeño, Mediano o Grande")
	case !a.Sex.IsValid():
		return domain.NewValidationError("El sexo debe ser Macho o Hembra")
	case a.Description == "":
		return domain.NewValidationError("La descripción es obligatoria")
	case a.Location.City == "":
		return domain.NewValidationError("La ciudad es obligatoria")
	case a.Location.Country == "":
		return domain.NewValidationError("El país es obligatorio")
	}
	return nil
}

// Patch holds a partial update; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Species     *Species
	Breed       *string
	Age         *float64
	Size        *Size
	Sex         *Sex
	Description *string
	Images      *[]string
	City        *string
	Country     *string
	Urgent      *bool
	Vaccinated  *bool
	Sterilized  *bool
}

func (a Attributes) apply(p Patch) Attributes {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Species != nil {
		a.Species = *p.Species
	}
	if p.Breed != nil {
		a.Breed = *p.Breed
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	if p.Size != nil {
		a.Size = *p.Size
	}
	if p.Sex != nil {
		a.Sex = *p.Sex
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Images != nil {
		a.Images = append([]string(nil), (*p.Images)...)
	}
	if p.City != nil {
		a.Location.City = *p.City
	}
	if p.Country != nil {
		a.Location.Country = *p.Country
	}
	if p.Urgent != nil {
		a.Urgent = *p.Urgent
	}
	if p.Vaccinated != nil {
		a.Vaccinated = *p.Vaccinated
	}
	if p.Sterilized != nil {
		a.Sterilized = *p.Sterilized
	}
	return a
}

// UserSnapshot is a copy of a user's public fields taken at write time.
// It is not kept in sync if the user later changes name or email.
type UserSnapshot struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"nombre"`
	Email string    `json:"email"`
}
