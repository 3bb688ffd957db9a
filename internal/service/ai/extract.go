package ai

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
)

const extractionPrompt = `Eres un analista deportivo y de apuestas experto para ChatBet, una startup de apuestas impulsada por IA. Procesa la solicitud del usuario e identifica sus componentes clave:
- Equipos/Jugadores mencionados.
- Torneos (ligas, copas).
- Fechas o rangos de fechas, en formato YYYY-MM-DD.
- Tipos de apuesta ("moneyline", "spread", "over/under", etc.).
- question_type: "análisis y recomendación", "estadísticas", "información general", o "non_sports" si la consulta no trata de deportes.

Si un elemento no se menciona, su array queda vacío ([]).
Devuelve SOLO un objeto JSON con esta estructura, sin texto adicional:
{
    "teams": [],
    "tournaments": [],
    "dates": [],
    "bet_types": [],
    "question_type": ""
}`

// EntityDetector asks the model to extract entities, falling back to the
// keyword detector whenever the model is down or answers with junk.
type EntityDetector struct {
	svc      *Service
	fallback intent.Detector
	logger   *zap.SugaredLogger
}

// NewEntityDetector wires the model-backed detector. svc may be nil, in
// which case every call goes straight to the fallback.
func NewEntityDetector(svc *Service, fallback intent.Detector, logger *zap.SugaredLogger) *EntityDetector {
	return &EntityDetector{svc: svc, fallback: fallback, logger: logger}
}

// Detect implements intent.Detector.
func (d *EntityDetector) Detect(ctx context.Context, query string) intent.Entities {
	if d.svc == nil {
		return d.fallback.Detect(ctx, query)
	}

	raw, err := d.svc.Generate(ctx, extractionPrompt+"\n\nConsulta del usuario: "+query)
	if err != nil {
		d.logger.Warnw("entity extraction failed, using keyword fallback", "error", err)
		return d.fallback.Detect(ctx, query)
	}

	var entities intent.Entities
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &entities); err != nil {
		d.logger.Warnw("entity extraction returned invalid JSON, using keyword fallback", "error", err)
		return d.fallback.Detect(ctx, query)
	}

	return normalizeEntities(entities)
}

// stripCodeFence removes the ```json fences models like to wrap JSON in.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func normalizeEntities(entities intent.Entities) intent.Entities {
	for i, team := range entities.Teams {
		entities.Teams[i] = intent.NormalizeTeam(team)
	}
	for i, tournament := range entities.Tournaments {
		entities.Tournaments[i] = intent.NormalizeTournament(tournament)
	}
	for i, betType := range entities.BetTypes {
		entities.BetTypes[i] = intent.NormalizeBetType(betType)
	}
	if entities.QuestionType == "" {
		entities.QuestionType = intent.QuestionGeneral
	}
	return entities
}
