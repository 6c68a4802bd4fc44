package appointment

import (
	"strings"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "agendado"
	StatusDone      Status = "realizado"
	StatusCancelled Status = "cancelado"
	StatusNoShow    Status = "faltou"
)

var (
	ErrInvalidStatus = httperr.InvalidArgument("invalid_appointment_status", "Status de agendamento inválido.")
	ErrInvalidState  = httperr.InvalidArgument("invalid_state", "Transição de status não permitida.")
)

// ===============================
// Validations
// ===============================

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusScheduled, StatusDone, StatusCancelled, StatusNoShow:
		return s, nil
	}
	return "", ErrInvalidStatus
}

// CanChange define se o agendamento ainda aceita mudança de status
func CanChange(current Status) error {
	if current != StatusScheduled {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
