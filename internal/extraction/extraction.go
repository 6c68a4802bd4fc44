// Package extraction deriva campos de lead de uma mensagem livre. É uma
// heurística de palavras-chave, não NLP: o resultado é consultivo e vem
// com um score de confiança.
package extraction

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type NameSource string

const (
	NameFromPattern     NameSource = "pattern"
	NameFromCapitalized NameSource = "capitalized"
	NameMissing         NameSource = "none"
)

const (
	WhoResponsible = "responsavel"
	WhoSelf        = "proprio"
)

type Result struct {
	Name             string            `json:"name"`
	NameSource       NameSource        `json:"name_source"`
	Discipline       string            `json:"discipline"`
	AgeGroup         string            `json:"age_group"`
	WhoSearched      string            `json:"who_searched"`
	InterestLevel    string            `json:"interest_level"`
	SchedulingIntent bool              `json:"scheduling_intent"`
	Confidence       float64           `json:"confidence"`
	Evidence         map[string]string `json:"evidence,omitempty"`
}

// Extractor é o ponto de troca da heurística. ok=false só quando a
// mensagem não traz nenhum candidato (vazia ou sem letras/dígitos).
type Extractor interface {
	Extract(text string) (Result, bool)
}

// fold remove acentos e passa para minúsculas.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func hasContent(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
