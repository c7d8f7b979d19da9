package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/huellitas-app/service-adoption/internal/application"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

// FavoriteHandler handles bookmark requests.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers all favorite routes. Every route requires authentication.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	favorites := r.Group("/favorites", authMW)
	{
		favorites.POST("", h.AddFavorite)
		favorites.GET("", h.ListFavorites)
		favorites.DELETE("/:mascotaId", h.RemoveFavorite)
		favorites.GET("/check/:mascotaId", h.CheckFavorite)
	}
}

// AddFavorite bookmarks a listing.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req application.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindingMessage(err))
		return
	}

	result, err := h.service.AddFavorite(c.Request.Context(), caller, req.PetID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"favorito": result})
}

// ListFavorites returns the caller's bookmarked listings.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.ListFavorites(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"favoritos": result})
}

// RemoveFavorite deletes a bookmark.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "mascotaId")
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), caller, petID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"mensaje": "Mascota eliminada de favoritos"})
}

// CheckFavorite reports whether the caller bookmarked a listing.
func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		return
	}
	petID, ok := pathID(c, "mascotaId")
	if !ok {
		return
	}

	favorite, err := h.service.IsFavorite(c.Request.Context(), caller, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"isFavorite": favorite})
}
