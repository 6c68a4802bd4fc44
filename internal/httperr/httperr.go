package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/logger"
)

type HTTPError struct {
	Kind    Kind   `json:"error_kind"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, kind Kind, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Kind:    kind,
		Code:    code,
		Message: message,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, KindInternal, code, message)
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind Kind) int {
	switch kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err using the taxonomy. Internal errors are logged and
// their details never reach the client.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, StatusFor(be.Kind), be.Kind, be.Code, msg)
		return
	}

	if IsUniqueViolation(err) {
		Write(c, http.StatusConflict, KindConflict, "already_exists", "Registro já existe.")
		return
	}

	logger.FromGin(c).Error("unhandled error", zap.Error(err))
	Internal(c, "internal_error", "Erro interno.")
}
