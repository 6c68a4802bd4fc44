// Package tenancy is the application-layer isolation boundary. Every
// list, read, update and delete resolves its tenant through Caller; the
// database is never trusted to filter rows on its own.
package tenancy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
)

var (
	ErrTenantMismatch = httperr.PermissionDenied("tenant_mismatch", "Acesso negado para este tenant.")
	ErrInvalidTenant  = httperr.InvalidArgument("invalid_tenant_id", "tenant_id inválido.")
	ErrAdminRequired  = httperr.PermissionDenied("admin_required", "Operação restrita a administradores.")
	ErrMasterRequired = httperr.PermissionDenied("master_required", "Operação restrita a usuários master.")
)

// Caller is the identity decoded from the bearer token.
type Caller struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	IsMaster bool
	IsAdmin  bool
}

// ResolveTenant returns the tenant a request operates on. An empty
// request means the caller's own tenant; only masters may name another.
func (c Caller) ResolveTenant(requested string) (uuid.UUID, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return c.TenantID, nil
	}

	id, err := uuid.Parse(requested)
	if err != nil {
		return uuid.Nil, ErrInvalidTenant
	}

	if err := c.Authorize(id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Authorize checks that a row owned by tenantID may be touched.
func (c Caller) Authorize(tenantID uuid.UUID) error {
	if c.IsMaster || (tenantID != uuid.Nil && tenantID == c.TenantID) {
		return nil
	}
	return ErrTenantMismatch
}

func (c Caller) RequireAdmin() error {
	if c.IsAdmin || c.IsMaster {
		return nil
	}
	return ErrAdminRequired
}

func (c Caller) RequireMaster() error {
	if c.IsMaster {
		return nil
	}
	return ErrMasterRequired
}

// UserRef is the caller's id as an optional audit reference.
func (c Caller) UserRef() *uuid.UUID {
	if c.UserID == uuid.Nil {
		return nil
	}
	id := c.UserID
	return &id
}
