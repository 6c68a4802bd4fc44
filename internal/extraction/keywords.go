package extraction

import "regexp"

type rule struct {
	value string
	re    *regexp.Regexp
}

// As palavras-chave são comparadas com o texto já sem acentos.
func words(alts string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + alts + `)\b`)
}

var disciplines = []rule{
	{"natação", words(`natacao|nadar|piscina|hidroginastica`)},
	{"inglês", words(`ingles|english`)},
	{"espanhol", words(`espanhol`)},
	{"violão", words(`violao`)},
	{"guitarra", words(`guitarra`)},
	{"piano", words(`piano|teclado`)},
	{"canto", words(`canto|aula de voz`)},
	{"música", words(`musica|musicalizacao`)},
	{"ballet", words(`ballet|bale`)},
	{"dança", words(`danca|jazz|hip hop|zumba`)},
	{"judô", words(`judo`)},
	{"karatê", words(`karate|carate`)},
	{"jiu-jitsu", words(`jiu jitsu|jiu-jitsu|jiujitsu`)},
	{"futebol", words(`futebol|futsal`)},
	{"matemática", words(`matematica`)},
	{"reforço escolar", words(`reforco|reforco escolar`)},
	{"robótica", words(`robotica`)},
	{"programação", words(`programacao`)},
	{"teatro", words(`teatro`)},
}

var ageGroups = []rule{
	{"bebe", words(`bebe|bebezinho|bebes`)},
	{"infantil", words(`crianca|criancas|infantil|menino|menina`)},
	{"adolescente", words(`adolescente|adolescentes`)},
	{"idoso", words(`idoso|idosa|terceira idade|melhor idade`)},
	{"adulto", words(`adulto|adulta|adultos`)},
}

var ageYears = regexp.MustCompile(`\b(\d{1,2})\s*anos?\b`)

var (
	responsibleRe = words(`meu filho|minha filha|filho|filha|filhos|meu neto|minha neta|sobrinho|sobrinha|para ele|para ela|pra ele|pra ela`)
	selfRe        = words(`para mim|pra mim|eu quero aprender|quero aprender|me matricular|eu mesmo|eu mesma`)
)

var (
	hotRe  = words(`hoje|agora|urgente|amanha|essa semana|esta semana|o quanto antes|quanto antes|imediato|imediatamente`)
	warmRe = words(`valor|valores|preco|precos|quanto custa|mensalidade|informacao|informacoes|horario|horarios|como funciona`)
)

var intentRe = words(`agendar|agendamento|marcar|aula experimental|aula teste|aula gratis|aula gratuita|visitar|visita`)

// stopwords não são nomes mesmo quando capitalizadas.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"oi", "ola", "bom", "boa", "dia", "tarde", "noite", "tudo", "bem", "beleza",
		"gostaria", "quero", "queria", "preciso", "procuro", "estou", "tenho", "tem",
		"meu", "minha", "sou", "eu", "voces", "voce", "quanto", "qual", "quais", "como",
		"vi", "sim", "nao", "obrigado", "obrigada", "por", "favor", "hoje", "amanha",
		"aula", "aulas", "curso", "cursos", "escola", "whatsapp", "instagram", "ok",
		"pode", "podem", "seria", "sobre", "para", "pra", "com", "que", "de", "da", "do",
		"segunda", "terca", "quarta", "quinta", "sexta", "sabado", "domingo",
	} {
		stopwords[w] = struct{}{}
	}
}

func isStopword(folded string) bool {
	if _, ok := stopwords[folded]; ok {
		return true
	}
	for _, d := range disciplines {
		if d.re.MatchString(folded) {
			return true
		}
	}
	return false
}
