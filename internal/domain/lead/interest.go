package lead

import (
	"strings"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
)

type InterestLevel string

const (
	InterestCold InterestLevel = "frio"
	InterestWarm InterestLevel = "morno"
	InterestHot  InterestLevel = "quente"
)

var ErrInvalidInterest = httperr.InvalidArgument("invalid_interest_level", "Nível de interesse inválido.")

func ParseInterest(raw string) (InterestLevel, error) {
	switch l := InterestLevel(strings.ToLower(strings.TrimSpace(raw))); l {
	case InterestCold, InterestWarm, InterestHot:
		return l, nil
	}
	return "", ErrInvalidInterest
}
