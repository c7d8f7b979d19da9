package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

// PetHandler handles HTTP requests for adoption listings.
type PetHandler struct {
	service *application.PetService
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers all pet routes. Listing and detail are public.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	pets := r.Group("/pets")
	pets.GET("", h.ListPets)
	pets.GET("/:id", h.GetPet)

	protected := pets.Group("", authMW)
	{
		protected.POST("", h.CreatePet)
		protected.GET("/user/pets", h.ListOwnerPets)
		protected.GET("/adoption-requests", h.ListAdoptionRequests)
		protected.PUT("/:id", h.UpdatePet)
		protected.DELETE("/:id", h.DeletePet)
		protected.POST("/:id/comment", h.AddComment)
		protected.DELETE("/:id/comment/:commentId", h.DeleteComment)
		protected.POST("/:id/adopt", h.AdoptPet)
		protected.POST("/:id/reject", h.RejectAdoption)
	}
}

// ListPets returns the Disponible listings matching the query filters.
func (h *PetHandler) ListPets(c *gin.Context) {
	var q application.ListPetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.ListPets(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"pets": result})
}

// GetPet returns a single listing.
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetPet(c.Request.Context(), petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"pet": result})
}

// CreatePet creates a listing owned by the caller.
func (h *PetHandler) CreatePet(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req application.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"pet": result})
}

// UpdatePet patches a listing owned by the caller.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), caller, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"pet": result})
}

// DeletePet removes a listing owned by the caller.
func (h *PetHandler) DeletePet(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), caller, petID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"mensaje": "Mascota eliminada correctamente"})
}

// ListOwnerPets returns every listing of the caller.
func (h *PetHandler) ListOwnerPets(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwnerPets(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"pets": result})
}

// AddComment posts a comment on a listing.
func (h *PetHandler) AddComment(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req application.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), caller, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"comentario": result})
}

// DeleteComment removes a comment authored by the caller, or any comment for admins.
func (h *PetHandler) DeleteComment(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), caller, petID, commentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"mensaje": "Comentario eliminado correctamente"})
}

// AdoptPet registers the caller as the pending adopter.
func (h *PetHandler) AdoptPet(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.AdoptPet(c.Request.Context(), caller, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"mensaje": "Solicitud de adopción enviada correctamente",
		"mascota": result,
	})
}

// ListAdoptionRequests returns every listing with a pending adoption.
func (h *PetHandler) ListAdoptionRequests(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.ListAdoptionRequests(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"solicitudes": result})
}

// RejectAdoption returns a listing owned by the caller to Disponible.
func (h *PetHandler) RejectAdoption(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.RejectAdoptionRequest(c.Request.Context(), caller, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"mensaje": "Solicitud de adopción rechazada",
		"mascota": result,
	})
}
