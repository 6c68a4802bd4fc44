package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SchedulingMessage(t *testing.T) {
	res, ok := NewHeuristic().Extract("Meu nome é Carla, quero agendar natação hoje")
	require.True(t, ok)

	assert.Equal(t, "Carla", res.Name)
	assert.Equal(t, NameFromPattern, res.NameSource)
	assert.Equal(t, "natação", res.Discipline)
	assert.Equal(t, "quente", res.InterestLevel)
	assert.True(t, res.SchedulingIntent)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
	assert.Equal(t, "agendar", res.Evidence["scheduling_intent"])
}

func TestExtract_Names(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		source NameSource
	}{
		{"me chamo lowercase", "oi, me chamo ana paula e queria saber do inglês", "Ana", NameFromPattern},
		{"compound name", "Olá! Me chamo Ana Paula, tudo bem?", "Ana Paula", NameFromPattern},
		{"sou a", "Boa tarde, sou a Marina", "Marina", NameFromPattern},
		{"sou a lowercase is not a name", "sou a mãe do Pedro", "Pedro", NameFromCapitalized},
		{"capitalized fallback", "Boa noite, Roberto aqui. Quanto custa o judô?", "Roberto", NameFromCapitalized},
		{"discipline is not a name", "Quero Natação", "", NameMissing},
		{"no capitalized word", "quanto custa?", "", NameMissing},
	}

	h := NewHeuristic()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := h.Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Name)
			assert.Equal(t, tt.source, res.NameSource)
		})
	}
}

func TestExtract_Profile(t *testing.T) {
	res, ok := NewHeuristic().Extract("Vocês têm ballet para minha filha de 7 anos? Qual o valor?")
	require.True(t, ok)

	assert.Equal(t, "ballet", res.Discipline)
	assert.Equal(t, "infantil", res.AgeGroup)
	assert.Equal(t, WhoResponsible, res.WhoSearched)
	assert.Equal(t, "morno", res.InterestLevel)
	assert.False(t, res.SchedulingIntent)
}

func TestExtract_FirstDisciplineWins(t *testing.T) {
	res, ok := NewHeuristic().Extract("quero aprender violão, depois piano")
	require.True(t, ok)

	assert.Equal(t, "violão", res.Discipline)
	assert.Equal(t, WhoSelf, res.WhoSearched)
}

func TestExtract_ColdDefault(t *testing.T) {
	res, ok := NewHeuristic().Extract("ok")
	require.True(t, ok)

	assert.Equal(t, "frio", res.InterestLevel)
	assert.Empty(t, res.Discipline)
	assert.Zero(t, res.Confidence)
}

func TestExtract_TotalFailure(t *testing.T) {
	h := NewHeuristic()
	for _, text := range []string{"", "   ", "?!", "👍👍"} {
		_, ok := h.Extract(text)
		assert.False(t, ok, "%q", text)
	}
}

func TestAgeGroupFor(t *testing.T) {
	assert.Equal(t, "bebe", ageGroupFor(2))
	assert.Equal(t, "infantil", ageGroupFor(12))
	assert.Equal(t, "adolescente", ageGroupFor(15))
	assert.Equal(t, "adulto", ageGroupFor(35))
	assert.Equal(t, "idoso", ageGroupFor(70))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "natacao reforco", fold("Natação Reforço"))
}
