package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/huellitas-app/service-adoption/internal/platform/auth"
	"github.com/huellitas-app/service-adoption/internal/platform/middleware"
	"github.com/huellitas-app/service-adoption/internal/platform/response"
)

// callerIdentity returns the authenticated identity or writes a 401.
func callerIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "no autorizado")
		return auth.Identity{}, false
	}
	return identity, true
}

// pathID parses a UUID path parameter or writes a 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Identificador inválido: "+name)
		return uuid.Nil, false
	}
	return id, true
}
