package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
	"github.com/BruksfildServices01/edu-crm/internal/token"
)

const ContextCaller = "caller"

var (
	ErrMissingAuthorization = httperr.Unauthenticated("missing_authorization_header", "Cabeçalho Authorization ausente.")
	ErrInvalidAuthorization = httperr.Unauthenticated("invalid_authorization_header", "Cabeçalho Authorization inválido.")
)

// Auth decodes the bearer token and stores the caller identity for the
// handlers downstream.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Respond(c, ErrMissingAuthorization)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Respond(c, ErrInvalidAuthorization)
			return
		}

		caller, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		c.Set(ContextCaller, caller)
		c.Next()
	}
}

// CallerFrom returns the identity stored by Auth.
func CallerFrom(c *gin.Context) (tenancy.Caller, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return tenancy.Caller{}, false
	}
	caller, ok := v.(tenancy.Caller)
	return caller, ok
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole(tenancy.Caller.RequireAdmin)
}

func RequireMaster() gin.HandlerFunc {
	return requireRole(tenancy.Caller.RequireMaster)
}

func requireRole(check func(tenancy.Caller) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			httperr.Respond(c, ErrMissingAuthorization)
			return
		}
		if err := check(caller); err != nil {
			httperr.Respond(c, err)
			return
		}
		c.Next()
	}
}
