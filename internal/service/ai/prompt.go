package ai

import (
	"fmt"
	"strings"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/session"
)

const systemInstruction = `Eres un asistente de apuestas deportivas para ChatBet, una startup de IA que opera en WhatsApp y Telegram.
Tu objetivo es proporcionar respuestas instantáneas, precisas y útiles, utilizando los datos que te proporciono.
Tu tono debe ser experto, directo y amigable, enfocado en el valor.

Instrucciones clave:
1. Prioriza la concisión: ve al grano e inicia con la información más relevante de los datos disponibles.
2. Si hay datos, úsalos para responder directamente, con listas de viñetas (•) cuando ayuden.
3. Si no hay datos, dilo con transparencia, no inventes información, y sugiere una consulta alternativa.
4. Adapta el enfoque al tipo de pregunta (análisis y recomendación, estadísticas o información general).
5. Usa el contexto previo para mantener la continuidad de la conversación.
6. Finaliza con un recordatorio conciso de juego responsable.
Responde en español.`

// promptHistoryLimit bounds how many prior turns reach the model.
const promptHistoryLimit = 10

// BuildPrompt assembles the full prompt text. It performs no I/O and is
// deterministic for identical inputs; the sports-data section is omitted
// entirely when the lookup produced nothing usable.
func BuildPrompt(query string, entities intent.Entities, history []chat.Turn, memory session.Memory, data sports.QueryResult) string {
	var b strings.Builder
	b.WriteString(systemInstruction)

	b.WriteString("\n\n### Entidades identificadas\n")
	writeList(&b, "Equipos", entities.Teams)
	writeList(&b, "Torneos", entities.Tournaments)
	writeList(&b, "Fechas", entities.Dates)
	writeList(&b, "Tipos de apuesta", entities.BetTypes)
	fmt.Fprintf(&b, "Tipo de pregunta: %s\n", entities.QuestionType)

	if !data.Empty() {
		b.WriteString("\n### Datos disponibles\n")
		for _, fixture := range data.Fixtures {
			fmt.Fprintf(&b, "• Partido #%d: %s vs %s, %s %s (%s)\n",
				fixture.ID, fixture.TeamHome, fixture.TeamAway, fixture.Date, fixture.Time, fixture.Location)
		}
		for _, odds := range data.Odds {
			fmt.Fprintf(&b, "• Cuotas partido #%d [%s]: local %.2f, empate %.2f, visitante %.2f\n",
				odds.FixtureID, odds.Market, odds.HomeWin, odds.Draw, odds.AwayWin)
		}
	}

	if len(memory.Teams) > 0 || memory.LastTournament != "" || len(memory.BetTypes) > 0 {
		b.WriteString("\n### Contexto previo\n")
		writeList(&b, "Últimos equipos mencionados", memory.Teams)
		if memory.LastTournament != "" {
			fmt.Fprintf(&b, "Último torneo mencionado: %s\n", memory.LastTournament)
		}
		writeList(&b, "Tipos de apuesta preferidos", memory.BetTypes)
	}

	if len(history) > 0 {
		start := 0
		if len(history) > promptHistoryLimit {
			start = len(history) - promptHistoryLimit
		}
		b.WriteString("\n### Conversación reciente\n")
		for _, turn := range history[start:] {
			fmt.Fprintf(&b, "Usuario: %s\nAsistente: %s\n", turn.User, turn.Bot)
		}
	}

	b.WriteString("\n### Consulta del usuario\n")
	b.WriteString(query)

	return b.String()
}

func writeList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(values, ", "))
}
