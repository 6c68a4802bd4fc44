package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/middleware"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var (
	ErrInvalidRequest = httperr.InvalidArgument("invalid_request", "Dados inválidos.")
	ErrInvalidID      = httperr.InvalidArgument("invalid_id", "Identificador inválido.")
)

// caller lê a identidade gravada pelo middleware de auth; responde 401
// quando a rota foi montada sem ele.
func caller(c *gin.Context) (tenancy.Caller, bool) {
	cl, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Respond(c, middleware.ErrMissingAuthorization)
		return tenancy.Caller{}, false
	}
	return cl, true
}

func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Respond(c, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Respond(c, ErrInvalidRequest)
		return false
	}
	return true
}

// queryInt ignora valores não numéricos; o use case aplica os limites.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
