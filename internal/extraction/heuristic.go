package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	interestCold = "frio"
	interestWarm = "morno"
	interestHot  = "quente"
)

// pesos do score de confiança (soma 1.0)
const (
	weightNamePattern     = 0.35
	weightNameCapitalized = 0.15
	weightDiscipline      = 0.25
	weightAgeGroup        = 0.10
	weightWhoSearched     = 0.10
	weightInterest        = 0.10
	weightIntent          = 0.10
)

const maxNameWords = 4

type namePattern struct {
	re *regexp.Regexp
	// strict exige a primeira palavra capitalizada ("sou a mãe" não é nome)
	strict bool
}

var namePatterns = []namePattern{
	{regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:meu nome (?:é|e)|me chamo|pode me chamar de)\s+(\p{L}+(?:[ \t]+\p{L}+){0,4})`), false},
	{regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:aqui (?:é|e)|sou)(?:\s+(?:o|a))?\s+(\p{L}+(?:[ \t]+\p{L}+){0,4})`), true},
}

var wordRe = regexp.MustCompile(`\p{L}+`)

// Heuristic é o extrator padrão baseado em expressões regulares.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

var _ Extractor = (*Heuristic)(nil)

func (h *Heuristic) Extract(text string) (Result, bool) {
	text = strings.TrimSpace(text)
	if !hasContent(text) {
		return Result{}, false
	}

	folded := fold(text)
	res := Result{
		NameSource:    NameMissing,
		InterestLevel: interestCold,
		Evidence:      map[string]string{},
	}
	var score float64

	if name, src := extractName(text); name != "" {
		res.Name, res.NameSource = name, src
		if src == NameFromPattern {
			score += weightNamePattern
		} else {
			score += weightNameCapitalized
		}
	}

	if d, kw := firstRule(disciplines, folded); d != "" {
		res.Discipline = d
		res.Evidence["discipline"] = kw
		score += weightDiscipline
	}

	if g, kw := ageGroup(folded); g != "" {
		res.AgeGroup = g
		res.Evidence["age_group"] = kw
		score += weightAgeGroup
	}

	if kw := responsibleRe.FindString(folded); kw != "" {
		res.WhoSearched = WhoResponsible
		res.Evidence["who_searched"] = kw
		score += weightWhoSearched
	} else if kw := selfRe.FindString(folded); kw != "" {
		res.WhoSearched = WhoSelf
		res.Evidence["who_searched"] = kw
		score += weightWhoSearched
	}

	if kw := hotRe.FindString(folded); kw != "" {
		res.InterestLevel = interestHot
		res.Evidence["interest_level"] = kw
		score += weightInterest
	} else if kw := warmRe.FindString(folded); kw != "" {
		res.InterestLevel = interestWarm
		res.Evidence["interest_level"] = kw
		score += weightInterest
	}

	if kw := intentRe.FindString(folded); kw != "" {
		res.SchedulingIntent = true
		res.Evidence["scheduling_intent"] = kw
		score += weightIntent
	}

	res.Confidence = math.Round(score*100) / 100
	return res, true
}

// ===============================
// Name
// ===============================

func extractName(text string) (string, NameSource) {
	for _, p := range namePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			if name := nameFrom(strings.Fields(m[1]), p.strict); name != "" {
				return name, NameFromPattern
			}
		}
	}

	for _, w := range wordRe.FindAllString(text, -1) {
		if isCapitalized(w) && utf8.RuneCountInString(w) > 1 && !isStopword(fold(w)) {
			return titleCase(w), NameFromCapitalized
		}
	}
	return "", NameMissing
}

// nameFrom aceita a primeira palavra e segue enquanto as próximas
// forem capitalizadas ("Ana Paula", não "Carla quero").
func nameFrom(ws []string, strict bool) string {
	if len(ws) == 0 || isStopword(fold(ws[0])) {
		return ""
	}
	if strict && !isCapitalized(ws[0]) {
		return ""
	}

	parts := []string{ws[0]}
	for _, w := range ws[1:] {
		if len(parts) == maxNameWords || !isCapitalized(w) || isStopword(fold(w)) {
			break
		}
		parts = append(parts, w)
	}
	return titleCase(strings.Join(parts, " "))
}

func isCapitalized(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}

func titleCase(s string) string {
	return cases.Title(language.BrazilianPortuguese).String(s)
}

// ===============================
// Keyword rules
// ===============================

// firstRule devolve a regra cujo termo aparece primeiro no texto.
func firstRule(rules []rule, folded string) (string, string) {
	best, bestAt, kw := "", -1, ""
	for _, r := range rules {
		loc := r.re.FindStringIndex(folded)
		if loc == nil {
			continue
		}
		if bestAt < 0 || loc[0] < bestAt {
			best, bestAt, kw = r.value, loc[0], folded[loc[0]:loc[1]]
		}
	}
	return best, kw
}

func ageGroup(folded string) (string, string) {
	if m := ageYears.FindStringSubmatch(folded); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			return ageGroupFor(years), m[0]
		}
	}
	return firstRule(ageGroups, folded)
}

func ageGroupFor(years int) string {
	switch {
	case years < 4:
		return "bebe"
	case years < 13:
		return "infantil"
	case years < 18:
		return "adolescente"
	case years < 60:
		return "adulto"
	default:
		return "idoso"
	}
}
