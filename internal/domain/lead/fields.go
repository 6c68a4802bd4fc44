package lead

import (
	"fmt"
	"unicode/utf8"

	"github.com/BruksfildServices01/edu-crm/internal/httperr"
	"github.com/BruksfildServices01/edu-crm/internal/models"
)

// Limites em caracteres das colunas de leads. A origem também é gravada
// como canal da interação, cujo limite é menor.
const (
	MaxNameLen        = 150
	MaxDisciplineLen  = 80
	MaxAgeGroupLen    = 40
	MaxWhoSearchedLen = 40
	MaxOriginLen      = 30
)

const CodeFieldTooLong = "field_too_long"

type boundedField struct {
	name  string
	value *string
	max   int
}

func boundedFields(l *models.Lead) []boundedField {
	return []boundedField{
		{"name", &l.Name, MaxNameLen},
		{"discipline", &l.Discipline, MaxDisciplineLen},
		{"age_group", &l.AgeGroup, MaxAgeGroupLen},
		{"who_searched", &l.WhoSearched, MaxWhoSearchedLen},
		{"origin_channel", &l.OriginChannel, MaxOriginLen},
	}
}

// CheckLengths falha no primeiro campo acima do limite da coluna.
func CheckLengths(l *models.Lead) error {
	for _, f := range boundedFields(l) {
		if utf8.RuneCountInString(*f.value) > f.max {
			return httperr.InvalidArgument(CodeFieldTooLong,
				fmt.Sprintf("Campo %s excede %d caracteres.", f.name, f.max))
		}
	}
	return nil
}

// TruncateFields corta os campos no limite, para dados extraídos que não
// devem ser rejeitados.
func TruncateFields(l *models.Lead) {
	for _, f := range boundedFields(l) {
		if utf8.RuneCountInString(*f.value) <= f.max {
			continue
		}
		runes := []rune(*f.value)
		*f.value = string(runes[:f.max])
	}
}
