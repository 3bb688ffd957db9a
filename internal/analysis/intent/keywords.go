package intent

// Synonym tables for normalizing the names users actually type. Canonical
// forms are the keys; the upstream API is matched case-insensitively against
// the canonical form.

var teamSynonyms = map[string][]string{
	"barcelona":       {"barça", "barca", "fc barcelona", "blaugrana"},
	"real madrid":     {"real", "rm", "realmadrid", "madrid", "merengues"},
	"atletico madrid": {"atlético de madrid", "atletico", "atm", "atlético madrid", "atleti"},
	"bayern munich":   {"bayern", "bayern múnich"},
	"juventus":        {"juve", "la vecchia signora"},
	"psg":             {"paris saint germain", "paris sg"},
	"manchester city": {"man city", "mancity"},
	"liverpool":       {"liverpool fc", "the reds"},
	"river plate":     {"river", "riverplate"},
	"boca juniors":    {"boca", "bocajuniors", "xeneizes"},
	"lakers":          {"los angeles lakers", "la lakers"},
	"celtics":         {"boston celtics"},
}

var tournamentSynonyms = map[string][]string{
	"champions league":  {"uefa champions league", "champions", "ucl"},
	"premier league":    {"premier", "epl", "english premier league"},
	"la liga":           {"liga española", "primera división", "laliga"},
	"nba":               {"national basketball association"},
	"bundesliga":        {"liga alemana"},
	"serie a":           {"liga italiana"},
	"copa libertadores": {"libertadores"},
}

var betTypeSynonyms = map[string][]string{
	"moneyline":  {"ganador", "winner", "victoria", "vencedor"},
	"spread":     {"handicap", "hándicap", "handicap asiático", "ventaja"},
	"over/under": {"total goles", "total puntos", "ambos marcan", "gg"},
	"parlay":     {"combinada", "múltiple", "combinado"},
	"prop bet":   {"apuesta de propuesta", "propuesta", "jugador específico"},
}

// Vocabulary that marks a query as sports/betting related even when no
// specific team or tournament was named ("¿qué cuotas tiene el partido?").
var sportsKeywords = []string{
	"partido", "partidos", "cuota", "cuotas", "odds", "apuesta", "apuestas",
	"apostar", "fixture", "fixtures", "equipo", "equipos", "liga", "torneo",
	"marcador", "resultado", "juega", "juegan", "gana", "pronóstico", "gol",
	"goles", "fútbol", "futbol", "baloncesto", "basketball", "match", "bet",
}

// Vocabulary that marks a query as clearly outside the assistant's scope.
var nonSportsKeywords = []string{
	"tiempo", "clima", "noticias", "noticia", "política", "entretenimiento",
	"música", "película", "series", "tecnología", "ciencia", "historia",
}

var questionPatterns = map[QuestionType][]string{
	QuestionAnalysis: {"analiza", "recomienda", "recomendación", "predice", "pronóstico", "qué apuesta"},
	QuestionStats:    {"estadísticas", "estadisticas", "datos", "números", "récord", "record", "historial"},
	QuestionGeneral:  {"quién", "qué", "cuándo", "dónde", "cómo", "información"},
}

func findCanonical(table map[string][]string, query string) []string {
	var found []string
	for canonical, aliases := range table {
		if containsTerm(query, canonical) {
			found = append(found, canonical)
			continue
		}
		for _, alias := range aliases {
			if containsTerm(query, alias) {
				found = append(found, canonical)
				break
			}
		}
	}
	return found
}

func normalizeWith(table map[string][]string, name string) string {
	lowered := lower(name)
	for canonical, aliases := range table {
		if lowered == canonical {
			return canonical
		}
		for _, alias := range aliases {
			if lowered == alias {
				return canonical
			}
		}
	}
	return name
}

// NormalizeTeam maps a team alias to its canonical name.
func NormalizeTeam(name string) string { return normalizeWith(teamSynonyms, name) }

// NormalizeTournament maps a tournament alias to its canonical name.
func NormalizeTournament(name string) string { return normalizeWith(tournamentSynonyms, name) }

// NormalizeBetType maps a bet-type alias to its canonical name.
func NormalizeBetType(name string) string { return normalizeWith(betTypeSynonyms, name) }
