package lead

import (
	"strings"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
)

// ===============================
// Lead Status
// ===============================

type Status string

const (
	StatusNew       Status = "novo_lead"
	StatusScheduled Status = "agendado"
	StatusFollowUp1 Status = "follow_up_1"
	StatusFollowUp2 Status = "follow_up_2"
	StatusFollowUp3 Status = "follow_up_3"
	StatusEnrolled  Status = "matriculado"
	StatusOnHold    Status = "em_espera"
)

// Pipeline é a ordem canônica das colunas do funil.
var Pipeline = []Status{
	StatusNew,
	StatusScheduled,
	StatusFollowUp1,
	StatusFollowUp2,
	StatusFollowUp3,
	StatusEnrolled,
	StatusOnHold,
}

var (
	ErrInvalidStatus      = httperr.InvalidArgument("invalid_status", "Status de lead inválido.")
	ErrTerminalStatus     = httperr.InvalidArgument("terminal_status", "Lead em status final não pode mudar de etapa.")
	ErrBackwardTransition = httperr.InvalidArgument("invalid_transition", "Transição de status não permitida.")
	ErrEnrollmentRequired = httperr.InvalidArgument("enrollment_required", "Matrícula é obrigatória para converter o lead.")
	ErrAlreadyEnrolled    = httperr.Conflict("already_enrolled", "Lead já matriculado.")
	ErrNotEnrollable      = httperr.InvalidArgument("not_enrollable", "Lead precisa estar agendado ou em follow-up para matricular.")
)

// ===============================
// Parsing
// ===============================

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func (s Status) Valid() bool {
	return rank(s) >= 0
}

func (s Status) IsTerminal() bool {
	return s == StatusEnrolled || s == StatusOnHold
}

// Rank é a posição no funil; valores desconhecidos ficam depois de todos.
func Rank(s Status) int {
	if r := rank(s); r >= 0 {
		return r
	}
	return len(Pipeline)
}

func rank(s Status) int {
	for i, p := range Pipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// ===============================
// Transitions
// ===============================

// CanTransition valida mudanças de etapa feitas pelo funil. Matrícula
// tem caminho próprio (CanEnroll).
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	if from.IsTerminal() {
		return ErrTerminalStatus
	}
	if to == StatusEnrolled {
		return ErrEnrollmentRequired
	}
	if to == StatusOnHold {
		return nil
	}

	// status legado fora do conjunto fechado
	if !from.Valid() {
		return nil
	}

	if rank(to) < rank(from) {
		return ErrBackwardTransition
	}
	return nil
}

func CanEnroll(from Status) error {
	switch from {
	case StatusScheduled, StatusFollowUp1, StatusFollowUp2, StatusFollowUp3:
		return nil
	case StatusEnrolled:
		return ErrAlreadyEnrolled
	default:
		return ErrNotEnrollable
	}
}
