package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/huellitas-app/service-adoption/internal/domain/pet"
	userDomain "github.com/huellitas-app/service-adoption/internal/domain/user"
	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/domain"
	"github.com/huellitas-app/service-adoption/internal/proto/events"
)

// LocationRequest is the ubicacion object of pet requests.
type LocationRequest struct {
	City    string `json:"ciudad" binding:"required"`
	Country string `json:"pais" binding:"required"`
}

// CreatePetRequest is the request DTO for creating a listing.
type CreatePetRequest struct {
	Name        string          `json:"nombre" binding:"required"`
	Species     string          `json:"especie" binding:"required,pet_species"`
	Breed       string          `json:"raza" binding:"required"`
	Age         *float64        `json:"edad" binding:"required,gte=0"`
	Size        string          `json:"tamanio" binding:"required,pet_size"`
	Sex         string          `json:"sexo" binding:"required,pet_sex"`
	Description string          `json:"descripcion" binding:"required"`
	Images      []string        `json:"imagenes" binding:"omitempty,dive,url"`
	Location    LocationRequest `json:"ubicacion" binding:"required"`
	Urgent      bool            `json:"urgente"`
	Vaccinated  bool            `json:"vacunado"`
	Sterilized  bool            `json:"esterilizado"`
}

// UpdateLocationRequest is the optional ubicacion object of a patch.
type UpdateLocationRequest struct {
	City    *string `json:"ciudad"`
	Country *string `json:"pais"`
}

// UpdatePetRequest is the request DTO for patching a listing. Absent fields are kept.
type UpdatePetRequest struct {
	Name        *string                `json:"nombre"`
	Species     *string                `json:"especie" binding:"omitempty,pet_species"`
	Breed       *string                `json:"raza"`
	Age         *float64               `json:"edad" binding:"omitempty,gte=0"`
	Size        *string                `json:"tamanio" binding:"omitempty,pet_size"`
	Sex         *string                `json:"sexo" binding:"omitempty,pet_sex"`
	Description *string                `json:"descripcion"`
	Images      *[]string              `json:"imagenes" binding:"omitempty,dive,url"`
	Location    *UpdateLocationRequest `json:"ubicacion"`
	Urgent      *bool                  `json:"urgente"`
	Vaccinated  *bool                  `json:"vacunado"`
	Sterilized  *bool                  `json:"esterilizado"`
}

// ListPetsQuery is the public listing filter.
type ListPetsQuery struct {
	Species string `form:"especie"`
	City    string `form:"ciudad"`
	Urgent  string `form:"urgente"`
}

// CommentRequest accepts the text under either texto or comentario.
type CommentRequest struct {
	Text    string `json:"texto"`
	Comment string `json:"comentario"`
}

func (r CommentRequest) text() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Comment
}

// OwnerSummaryDTO is the populated propietario of a listing.
type OwnerSummaryDTO struct {
	ID       uuid.UUID `json:"_id"`
	Name     string    `json:"nombre"`
	LastName string    `json:"apellido"`
	Email    string    `json:"email"`
}

// CommentDTO is the API representation of a comment.
type CommentDTO struct {
	ID        uuid.UUID              `json:"_id"`
	Text      string                 `json:"texto"`
	Author    petDomain.UserSnapshot `json:"usuario"`
	CreatedAt time.Time              `json:"createdAt"`
}

// PetDTO is the API representation of a listing.
type PetDTO struct {
	ID          uuid.UUID               `json:"_id"`
	Name        string                  `json:"nombre"`
	Species     string                  `json:"especie"`
	Breed       string                  `json:"raza"`
	Age         float64                 `json:"edad"`
	Size        string                  `json:"tamanio"`
	Sex         string                  `json:"sexo"`
	Description string                  `json:"descripcion"`
	Images      []string                `json:"imagenes"`
	Location    petDomain.Location      `json:"ubicacion"`
	Status      string                  `json:"estado"`
	Urgent      bool                    `json:"urgente"`
	Vaccinated  bool                    `json:"vacunado"`
	Sterilized  bool                    `json:"esterilizado"`
	Owner       *OwnerSummaryDTO        `json:"propietario"`
	Comments    []CommentDTO            `json:"comentarios"`
	Adopter     *petDomain.UserSnapshot `json:"adoptante"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// OwnerLookup resolves owner summaries in one batch.
type OwnerLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*userDomain.User, error)
}

// PetService implements the adoption listing use cases.
type PetService struct {
	repo      petDomain.PetRepository
	owners    OwnerLookup
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(
	repo petDomain.PetRepository,
	owners OwnerLookup,
	publisher EventPublisher,
	logger *zap.Logger,
) *PetService {
	return &PetService{
		repo:      repo,
		owners:    owners,
		publisher: publisher,
		logger:    logger,
	}
}

// CreatePet creates a Disponible listing owned by the caller.
func (s *PetService) CreatePet(ctx context.Context, caller auth.Identity, req CreatePetRequest) (*PetDTO, error) {
	var age float64
	if req.Age != nil {
		age = *req.Age
	}
	pet, err := petDomain.NewPet(caller.UserID, petDomain.Attributes{
		Name:        sanitizeText(req.Name),
		Species:     petDomain.Species(req.Species),
		Breed:       sanitizeText(req.Breed),
		Age:         age,
		Size:        petDomain.Size(req.Size),
		Sex:         petDomain.Sex(req.Sex),
		Description: sanitizeText(req.Description),
		Images:      req.Images,
		Location: petDomain.Location{
			City:    sanitizeText(req.Location.City),
			Country: sanitizeText(req.Location.Country),
		},
		Urgent:     req.Urgent,
		Vaccinated: req.Vaccinated,
		Sterilized: req.Sterilized,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid pet data: %w", err)
	}

	if err := s.repo.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet created",
		zap.String("pet_id", pet.ID().String()),
		zap.String("owner_id", caller.UserID.String()),
	)

	attrs := pet.Attributes()
	publishEvent(ctx, s.publisher, s.logger, events.TopicPetEvents, events.PetCreated, pet.ID().String(), events.PetCreatedEvent{
		PetID:      pet.ID(),
		OwnerID:    pet.OwnerID(),
		Name:       attrs.Name,
		Species:    string(attrs.Species),
		City:       attrs.Location.City,
		Urgent:     attrs.Urgent,
		OccurredAt: time.Now().UTC(),
	})

	return s.presentOne(ctx, pet)
}

// ListPets returns Disponible listings matching the filter, newest first.
func (s *PetService) ListPets(ctx context.Context, q ListPetsQuery) ([]PetDTO, error) {
	filter := petDomain.ListFilter{
		Species: petDomain.Species(q.Species),
		City:    q.City,
	}
	if q.Urgent != "" {
		urgent := q.Urgent == "true"
		filter.Urgent = &urgent
	}

	pets, err := s.repo.FindAvailable(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return s.present(ctx, pets)
}

// GetPet returns a single listing.
func (s *PetService) GetPet(ctx context.Context, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	return s.presentOne(ctx, pet)
}

// UpdatePet patches the listing attributes. Only the owner may do so.
func (s *PetService) UpdatePet(ctx context.Context, caller auth.Identity, petID uuid.UUID, req UpdatePetRequest) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("No tienes permiso para editar esta mascota")
	}

	if err := pet.Update(toPetPatch(req)); err != nil {
		return nil, fmt.Errorf("invalid pet data: %w", err)
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.logger.Info("pet updated", zap.String("pet_id", petID.String()))
	return s.presentOne(ctx, pet)
}

// DeletePet removes the listing and its favorites. Only the owner may do so.
func (s *PetService) DeletePet(ctx context.Context, caller auth.Identity, petID uuid.UUID) error {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if !pet.IsOwnedBy(caller.UserID) {
		return domain.NewForbiddenError("No tienes permiso para eliminar esta mascota")
	}

	if err := s.repo.Delete(ctx, petID); err != nil {
		s.logger.Error("failed to delete pet", zap.String("pet_id", petID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	s.logger.Info("pet deleted", zap.String("pet_id", petID.String()))
	publishEvent(ctx, s.publisher, s.logger, events.TopicPetEvents, events.PetDeleted, petID.String(), events.PetDeletedEvent{
		PetID:      petID,
		OwnerID:    pet.OwnerID(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListOwnerPets returns every listing of the caller regardless of status, newest first.
func (s *PetService) ListOwnerPets(ctx context.Context, caller auth.Identity) ([]PetDTO, error) {
	pets, err := s.repo.FindByOwnerID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner pets: %w", err)
	}
	return s.present(ctx, pets)
}

// AddComment prepends a comment signed with the caller's current name and email.
func (s *PetService) AddComment(ctx context.Context, caller auth.Identity, petID uuid.UUID, req CommentRequest) (*CommentDTO, error) {
	text := sanitizeText(req.text())
	if text == "" {
		return nil, domain.NewValidationError("El comentario no puede estar vacío")
	}

	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	comment, err := pet.AddComment(snapshotOf(caller), text)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to add comment", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info("comment added",
		zap.String("pet_id", petID.String()),
		zap.String("user_id", caller.UserID.String()),
	)
	result := toCommentDTO(comment)
	return &result, nil
}

// DeleteComment removes a comment. Only its author or an administrator may do so.
func (s *PetService) DeleteComment(ctx context.Context, caller auth.Identity, petID, commentID uuid.UUID) error {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return err
	}

	if err := pet.RemoveComment(commentID, caller.UserID, caller.IsAdmin); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to delete comment", zap.String("pet_id", petID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("comment deleted",
		zap.String("pet_id", petID.String()),
		zap.String("comment_id", commentID.String()),
		zap.Bool("by_admin", caller.IsAdmin && !pet.IsOwnedBy(caller.UserID)),
	)
	return nil
}

// AdoptPet records the caller as the pending adopter of a Disponible listing.
// The owner is not prevented from requesting their own pet.
func (s *PetService) AdoptPet(ctx context.Context, caller auth.Identity, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	if err := pet.RequestAdoption(snapshotOf(caller)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to request adoption", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to request adoption: %w", err)
	}

	selfRequested := pet.IsOwnedBy(caller.UserID)
	if selfRequested {
		s.logger.Warn("owner requested adoption of own pet",
			zap.String("pet_id", petID.String()),
			zap.String("user_id", caller.UserID.String()),
		)
	}
	s.logger.Info("adoption requested",
		zap.String("pet_id", petID.String()),
		zap.String("user_id", caller.UserID.String()),
	)

	publishEvent(ctx, s.publisher, s.logger, events.TopicPetEvents, events.PetAdoptionRequested, petID.String(), events.AdoptionRequestedEvent{
		PetID:         petID,
		OwnerID:       pet.OwnerID(),
		AdopterID:     caller.UserID,
		AdopterName:   caller.Name,
		AdopterEmail:  caller.Email,
		SelfRequested: selfRequested,
		OccurredAt:    time.Now().UTC(),
	})

	return s.presentOne(ctx, pet)
}

// ListAdoptionRequests returns every listing with a pending adoption, across all owners.
func (s *PetService) ListAdoptionRequests(ctx context.Context, caller auth.Identity) ([]PetDTO, error) {
	pets, err := s.repo.FindPendingAdoptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list adoption requests: %w", err)
	}
	s.logger.Debug("adoption requests listed",
		zap.String("user_id", caller.UserID.String()),
		zap.Int("count", len(pets)),
	)
	return s.present(ctx, pets)
}

// RejectAdoptionRequest returns the listing to Disponible. Only the owner may do so.
func (s *PetService) RejectAdoptionRequest(ctx context.Context, caller auth.Identity, petID uuid.UUID) (*PetDTO, error) {
	pet, err := s.repo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("No autorizado para rechazar esta solicitud")
	}

	previous := pet.Adopter()
	changed, err := pet.RejectAdoption()
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.presentOne(ctx, pet)
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("failed to reject adoption", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to reject adoption: %w", err)
	}

	s.logger.Info("adoption rejected", zap.String("pet_id", petID.String()))

	evt := events.AdoptionRejectedEvent{
		PetID:      petID,
		OwnerID:    pet.OwnerID(),
		OccurredAt: time.Now().UTC(),
	}
	if previous != nil {
		evt.AdopterID = previous.ID
	}
	publishEvent(ctx, s.publisher, s.logger, events.TopicPetEvents, events.PetAdoptionRejected, petID.String(), evt)

	return s.presentOne(ctx, pet)
}

// --- Presentation ---

func (s *PetService) presentOne(ctx context.Context, pet *petDomain.Pet) (*PetDTO, error) {
	dtos, err := s.present(ctx, []*petDomain.Pet{pet})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// present converts pets to DTOs with their owner summaries resolved in one lookup.
func (s *PetService) present(ctx context.Context, pets []*petDomain.Pet) ([]PetDTO, error) {
	dtos := make([]PetDTO, len(pets))
	if len(pets) == 0 {
		return dtos, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(pets))
	ownerIDs := make([]uuid.UUID, 0, len(pets))
	for _, p := range pets {
		if _, ok := seen[p.OwnerID()]; !ok {
			seen[p.OwnerID()] = struct{}{}
			ownerIDs = append(ownerIDs, p.OwnerID())
		}
	}

	owners, err := s.owners.FindByIDs(ctx, ownerIDs)
	if err != nil {
		s.logger.Error("failed to resolve pet owners", zap.Error(err))
		return nil, fmt.Errorf("failed to resolve pet owners: %w", err)
	}
	byID := make(map[uuid.UUID]*OwnerSummaryDTO, len(owners))
	for _, o := range owners {
		byID[o.ID()] = &OwnerSummaryDTO{
			ID:       o.ID(),
			Name:     o.Name(),
			LastName: o.LastName(),
			Email:    o.Email(),
		}
	}

	for i, p := range pets {
		dtos[i] = toPetDTO(p)
		dtos[i].Owner = byID[p.OwnerID()]
	}
	return dtos, nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	attrs := p.Attributes()
	comments := p.Comments()
	commentDTOs := make([]CommentDTO, len(comments))
	for i, c := range comments {
		commentDTOs[i] = toCommentDTO(c)
	}
	images := attrs.Images
	if images == nil {
		images = []string{}
	}
	return PetDTO{
		ID:          p.ID(),
		Name:        attrs.Name,
		Species:     string(attrs.Species),
		Breed:       attrs.Breed,
		Age:         attrs.Age,
		Size:        string(attrs.Size),
		Sex:         string(attrs.Sex),
		Description: attrs.Description,
		Images:      images,
		Location:    attrs.Location,
		Status:      string(p.Status()),
		Urgent:      attrs.Urgent,
		Vaccinated:  attrs.Vaccinated,
		Sterilized:  attrs.Sterilized,
		Comments:    commentDTOs,
		Adopter:     p.Adopter(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toCommentDTO(c petDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Text:      c.Text,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

func toPetPatch(req UpdatePetRequest) petDomain.Patch {
	patch := petDomain.Patch{
		Name:        sanitizeOptional(req.Name),
		Breed:       sanitizeOptional(req.Breed),
		Age:         req.Age,
		Description: sanitizeOptional(req.Description),
		Images:      req.Images,
		Urgent:      req.Urgent,
		Vaccinated:  req.Vaccinated,
		Sterilized:  req.Sterilized,
	}
	if req.Species != nil {
		v := petDomain.Species(*req.Species)
		patch.Species = &v
	}
	if req.Size != nil {
		v := petDomain.Size(*req.Size)
		patch.Size = &v
	}
	if req.Sex != nil {
		v := petDomain.Sex(*req.Sex)
		patch.Sex = &v
	}
	if req.Location != nil {
		patch.City = sanitizeOptional(req.Location.City)
		patch.Country = sanitizeOptional(req.Location.Country)
	}
	return patch
}

func snapshotOf(caller auth.Identity) petDomain.UserSnapshot {
	return petDomain.UserSnapshot{
		ID:    caller.UserID,
		Name:  caller.Name,
		Email: caller.Email,
	}
}
