package lead

import (
	"time"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

const (
	OriginWhatsApp = "WhatsApp"
	OriginWebForm  = "Formulario"
	OriginManual   = "Manual"
)

var (
	ErrAppointmentRequired = httperr.InvalidArgument("appointment_required", "Lead sem agendamento não pode ser marcado como presente.")
	ErrConvertedLocked     = httperr.InvalidArgument("converted_locked", "Lead matriculado permanece convertido.")
)

// ===============================
// Domain Actions
// ===============================

// ChangeStatus aplica a transição e informa se houve mudança.
func ChangeStatus(l *models.Lead, to Status) (bool, error) {
	from := Status(l.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	l.Status = string(to)
	return true, nil
}

// Enroll é o único caminho que liga converted.
func Enroll(l *models.Lead) error {
	if err := CanEnroll(Status(l.Status)); err != nil {
		return err
	}

	l.Status = string(StatusEnrolled)
	l.Converted = true
	return nil
}

func SetAttended(l *models.Lead, attended bool, hasAppointment bool) error {
	if attended && !l.Attended && !hasAppointment {
		return ErrAppointmentRequired
	}
	l.Attended = attended
	return nil
}

func SetConverted(l *models.Lead, converted bool) error {
	if converted == l.Converted {
		return nil
	}
	if converted {
		return ErrEnrollmentRequired
	}
	if Status(l.Status) == StatusEnrolled {
		return ErrConvertedLocked
	}

	l.Converted = false
	return nil
}

// Schedule registra a data e promove um lead novo para agendado.
func Schedule(l *models.Lead, at time.Time) error {
	if Status(l.Status).IsTerminal() {
		return ErrTerminalStatus
	}

	l.ScheduledDate = &at
	if Status(l.Status) == StatusNew {
		l.Status = string(StatusScheduled)
	}
	return nil
}
