package note

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	leaddomain "github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	domain "github.com/BruksfildServices01/edu-crm/internal/domain/note"
	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
	"github.com/BruksfildServices01/edu-crm/internal/tenancy"
)

var (
	ErrContentRequired = httperr.InvalidArgument("content_required", "Conteúdo da anotação é obrigatório.")
	ErrInvalidLeadID   = httperr.InvalidArgument("invalid_lead_id", "lead_id inválido.")
)

// ======================================================
// List
// ======================================================

type ListNotes struct {
	repo  domain.Repository
	leads leaddomain.Repository
}

func NewListNotes(repo domain.Repository, leads leaddomain.Repository) *ListNotes {
	return &ListNotes{repo: repo, leads: leads}
}

func (uc *ListNotes) Execute(
	ctx context.Context,
	caller tenancy.Caller,
	tenantRaw string,
	leadRaw string,
) ([]models.Note, error) {

	tenantID, err := caller.ResolveTenant(tenantRaw)
	if err != nil {
		return nil, err
	}

	var leadID *uuid.UUID
	if raw := strings.TrimSpace(leadRaw); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidLeadID
		}
		leadID = &id
	}

	return uc.repo.List(ctx, tenantID, leadID)
}

// ======================================================
// Create
// ======================================================

type CreateNoteInput struct {
	TenantID      string
	LeadID        *uuid.UUID
	AppointmentID *uuid.UUID
	EnrollmentID  *uuid.UUID
	Content       string
}

type CreateNote struct {
	repo  domain.Repository
	leads leaddomain.Repository
	audit *audit.Dispatcher
}

func NewCreateNote(repo domain.Repository, leads leaddomain.Repository, audit *audit.Dispatcher) *CreateNote {
	return &CreateNote{repo: repo, leads: leads, audit: audit}
}

func (uc *CreateNote) Execute(ctx context.Context, caller tenancy.Caller, in CreateNoteInput) (*models.Note, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, ErrContentRequired
	}

	tenantID, err := caller.ResolveTenant(in.TenantID)
	if err != nil {
		return nil, err
	}

	// a anotação herda o tenant do lead referenciado
	if in.LeadID != nil {
		l, err := uc.leads.FindByID(ctx, *in.LeadID)
		if err != nil {
			return nil, err
		}
		if err := caller.Authorize(l.TenantID); err != nil {
			return nil, err
		}
		tenantID = l.TenantID
	}

	n := &models.Note{
		TenantID:      tenantID,
		LeadID:        in.LeadID,
		AppointmentID: in.AppointmentID,
		EnrollmentID:  in.EnrollmentID,
		UserID:        caller.UserRef(),
		Content:       content,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: n.TenantID,
		UserID:   caller.UserRef(),
		Action:   "note_created",
		Entity:   "note",
		EntityID: &n.ID,
	})
	return n, nil
}

// ======================================================
// Delete
// ======================================================

type DeleteNote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteNote(repo domain.Repository, audit *audit.Dispatcher) *DeleteNote {
	return &DeleteNote{repo: repo, audit: audit}
}

func (uc *DeleteNote) Execute(ctx context.Context, caller tenancy.Caller, id uuid.UUID) error {
	n, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := caller.Authorize(n.TenantID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, n.TenantID, n.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: n.TenantID,
		UserID:   caller.UserRef(),
		Action:   "note_deleted",
		Entity:   "note",
		EntityID: &n.ID,
	})
	return nil
}
