package chat

import (
	"fmt"
	"strings"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	sportsmodel "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
)

// Canned Spanish replies used whenever the model cannot answer. They keep
// the conversation moving instead of surfacing an error to the user.

const nonSportsReply = "¡Hola! 👋 Soy un asistente especializado exclusivamente en deportes y apuestas deportivas. 🏆\n\n" +
	"Puedo ayudarte con:\n" +
	"• Análisis de partidos y equipos 🏀⚽\n" +
	"• Recomendaciones de apuestas informadas 💰\n" +
	"• Estadísticas deportivas 📊\n" +
	"• Información sobre torneos y competiciones 🏅\n\n" +
	"¿En qué puedo ayudarte respecto a deportes o apuestas deportivas? 😊"

const errorReply = "¡Vaya! 🔧 Estoy teniendo dificultades técnicas momentáneas, pero quiero ayudarte.\n\n" +
	"Mientras resuelvo esto, te puedo orientar sobre:\n" +
	"• Estrategias generales de apuestas deportivas 🎯\n" +
	"• Análisis de equipos y torneos populares 📈\n" +
	"• Conceptos clave de apuestas deportivas 💡\n\n" +
	"¿Sobre qué deporte o tipo de apuesta te gustaría conversar? 😊"

const needStakeReply = "Necesito saber cuánto quieres apostar para calcular las ganancias potenciales."

const noPendingBetReply = "No hay ninguna apuesta pendiente para confirmar."

// fallbackFor picks the canned reply that best fits the query when the
// model is unavailable. Deterministic for identical inputs.
func fallbackFor(entities intent.Entities, data sportsmodel.QueryResult) string {
	if data.Empty() && entities.HasSubjects() {
		return noDataReply(entities)
	}

	switch entities.QuestionType {
	case intent.QuestionAnalysis:
		return analysisFallback(entities)
	case intent.QuestionStats:
		return statsFallback(entities)
	default:
		return generalFallback(entities, data)
	}
}

func noDataReply(entities intent.Entities) string {
	var b strings.Builder
	b.WriteString("🔍 **No encontré información específica en este momento**\n\n")
	if len(entities.Teams) > 0 {
		fmt.Fprintf(&b, "Para los equipos: %s\n", strings.Join(entities.Teams, ", "))
	}
	if len(entities.Tournaments) > 0 {
		fmt.Fprintf(&b, "En los torneos: %s\n", strings.Join(entities.Tournaments, ", "))
	}
	b.WriteString("\n📋 **Esto puede deberse a:**\n")
	b.WriteString("• No hay partidos programados en este momento\n")
	b.WriteString("• Los datos aún no están disponibles\n\n")
	b.WriteString("💡 Puedo ayudarte con información general sobre equipos y torneos 🏆, ")
	b.WriteString("estrategias de apuestas 💡 o análisis de partidos 📊.\n\n")
	b.WriteString("¿Te gustaría que te ayude con algo específico? 😊")
	return b.String()
}

func analysisFallback(entities intent.Entities) string {
	var b strings.Builder
	b.WriteString("🎯 **ANÁLISIS Y RECOMENDACIÓN EXPERTA**\n\n")
	if len(entities.Teams) > 0 {
		fmt.Fprintf(&b, "**Partido analizado:** %s\n\n", strings.Join(entities.Teams, " vs "))
	}
	b.WriteString("📊 **Factores clave a considerar:**\n")
	b.WriteString("• Forma reciente de ambos equipos\n")
	b.WriteString("• Historial de enfrentamientos directos\n")
	b.WriteString("• Lesiones y ausencias importantes\n")
	b.WriteString("• Factor localía/visitante\n\n")
	b.WriteString("💡 **Recomendación principal:**\n")
	if len(entities.BetTypes) > 0 {
		fmt.Fprintf(&b, "**%s** — esta opción ofrece el mejor valor según el análisis actual.\n\n", strings.ToUpper(entities.BetTypes[0]))
	} else {
		b.WriteString("**Moneyline (ganador del partido)** — recomiendo analizar las cuotas del ganador directo.\n\n")
	}
	b.WriteString("⚠️ Solo arriesga el 1-2% de tu bankroll por apuesta y apuesta de forma responsable.")
	return b.String()
}

func statsFallback(entities intent.Entities) string {
	var b strings.Builder
	b.WriteString("📊 **ANÁLISIS ESTADÍSTICO**\n\n")
	if len(entities.Teams) > 0 {
		fmt.Fprintf(&b, "**Estadísticas solicitadas:** %s\n\n", strings.Join(entities.Teams, ", "))
	}
	b.WriteString("📈 **Métricas clave a revisar:**\n")
	b.WriteString("• Rendimiento en los últimos 10 partidos\n")
	b.WriteString("• Eficiencia ofensiva y defensiva\n")
	b.WriteString("• Estadísticas en casa vs fuera\n")
	b.WriteString("• Tendencia de resultados recientes\n\n")
	b.WriteString("No tengo los datos en vivo ahora mismo; vuelve a intentarlo en unos minutos ")
	b.WriteString("o pregúntame por un equipo o torneo específico. 📝")
	return b.String()
}

func generalFallback(entities intent.Entities, data sportsmodel.QueryResult) string {
	var b strings.Builder
	b.WriteString("🏆 **INFORMACIÓN DEPORTIVA**\n\n")
	if !data.Empty() {
		for _, fixture := range data.Fixtures {
			fmt.Fprintf(&b, "• %s vs %s — %s %s\n", fixture.TeamHome, fixture.TeamAway, fixture.Date, fixture.Time)
		}
		for _, odds := range data.Odds {
			fmt.Fprintf(&b, "• Cuotas partido #%d: local %.2f, empate %.2f, visitante %.2f\n",
				odds.FixtureID, odds.HomeWin, odds.Draw, odds.AwayWin)
		}
		b.WriteString("\n")
	}
	if len(entities.Tournaments) > 0 {
		fmt.Fprintf(&b, "**Torneos:** %s\n\n", strings.Join(entities.Tournaments, ", "))
	}
	b.WriteString("Puedo darte análisis de partidos, cuotas y recomendaciones de apuestas. ")
	b.WriteString("Recuerda: apuesta de forma responsable. 🤔")
	return b.String()
}
