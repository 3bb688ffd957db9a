package chat

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
	sportsmodel "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/ai"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/session"
)

// defaultSessionID backs requests that arrive without a session id.
const defaultSessionID = "default"

// SportsProvider is the slice of the sports client the orchestrator needs.
type SportsProvider interface {
	Query(ctx context.Context, entities intent.Entities) sportsmodel.QueryResult
}

// Generator is the slice of the language-model client the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates one conversation turn: session context, entity
// extraction, sports lookup, prompt assembly, model call, context update.
// Handle never fails outward; every dependency failure degrades into a
// best-effort reply.
type Service struct {
	sessions *session.Store
	sports   SportsProvider
	detector intent.Detector
	model    Generator
	logger   *zap.SugaredLogger
}

// NewService wires the orchestrator. model may be nil when no Gemini key is
// configured; canned replies take over in that case.
func NewService(sessions *session.Store, sports SportsProvider, detector intent.Detector, model Generator, logger *zap.SugaredLogger) *Service {
	return &Service{
		sessions: sessions,
		sports:   sports,
		detector: detector,
		model:    model,
		logger:   logger,
	}
}

// Handle processes one chat request and always produces a reply.
func (s *Service) Handle(ctx context.Context, req chat.Request) (reply chat.Reply) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	reply = chat.Reply{SessionID: sessionID, Response: errorReply}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("panic while handling chat request", "session_id", sessionID, "panic", r)
			reply = chat.Reply{SessionID: sessionID, Response: errorReply}
		}
	}()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return reply
	}

	sess, err := s.sessions.GetOrCreate(sessionID)
	if err != nil {
		s.logger.Errorw("session lookup failed", "session_id", sessionID, "error", err)
		return reply
	}

	if isBetConfirmation(message) && sess.HasPendingBet() {
		response := s.confirmBet(sess)
		sess.AppendTurn(message, response)
		return chat.Reply{SessionID: sess.ID(), Response: response}
	}

	entities := s.detector.Detect(ctx, message)

	if entities.QuestionType == intent.QuestionNonSports {
		sess.AppendTurn(message, nonSportsReply)
		return chat.Reply{SessionID: sess.ID(), Response: nonSportsReply}
	}

	data := sportsmodel.QueryResult{Status: sportsmodel.StatusEmpty}
	if intent.IsSportsQuery(message, entities) {
		data = s.sports.Query(ctx, entities)
	}

	if stake, ok := extractStake(message); ok && len(data.Odds) > 0 {
		response := s.proposeBet(sess, entities, data, stake)
		s.remember(sess, entities)
		sess.AppendTurn(message, response)
		return chat.Reply{SessionID: sess.ID(), Response: response}
	}

	prompt := ai.BuildPrompt(message, entities, sess.History(), sess.Memory(), data)

	response := ""
	if s.model != nil {
		generated, err := s.model.Generate(ctx, prompt)
		if err == nil {
			response = generated
		} else {
			s.logger.Warnw("generation failed, using canned fallback", "session_id", sess.ID(), "error", err)
		}
	}
	if response == "" {
		response = fallbackFor(entities, data)
	}

	s.remember(sess, entities)
	sess.AppendTurn(message, response)

	return chat.Reply{SessionID: sess.ID(), Response: response}
}

func (s *Service) remember(sess *session.Session, entities intent.Entities) {
	tournament := ""
	if len(entities.Tournaments) > 0 {
		tournament = entities.Tournaments[0]
	}
	sess.Remember(entities.Teams, tournament, entities.BetTypes)
}

// proposeBet answers a "quiero apostar X" query with the quoted selection
// and parks the simulated bet on the session until the user confirms.
func (s *Service) proposeBet(sess *session.Session, entities intent.Entities, data sportsmodel.QueryResult, stake float64) string {
	quote := data.Odds[0]
	selection, price := determineSelection(entities, quote)
	if price <= 0 {
		return needStakeReply
	}

	match := fmt.Sprintf("partido #%d", quote.FixtureID)
	for _, fixture := range data.Fixtures {
		if fixture.ID == quote.FixtureID {
			match = fmt.Sprintf("%s vs %s", fixture.TeamHome, fixture.TeamAway)
			break
		}
	}

	potential := stake * price
	sess.SetPendingBet(&sportsmodel.PendingBet{
		FixtureID:         quote.FixtureID,
		Match:             match,
		Market:            quote.Market,
		Selection:         selection,
		Stake:             stake,
		PotentialWinnings: potential,
	})

	var b strings.Builder
	b.WriteString("📊 **Análisis de Apuesta**\n\n")
	fmt.Fprintf(&b, "• **Partido:** %s\n", match)
	fmt.Fprintf(&b, "• **Cuota para %s:** %.2f\n", selection, price)
	fmt.Fprintf(&b, "• **Apuesta:** $%.2f\n", stake)
	fmt.Fprintf(&b, "• **Ganancia potencial:** $%.2f\n\n", potential)
	b.WriteString("¿Te gustaría simular esta apuesta? (responde 'sí' para confirmar)")
	return b.String()
}

// confirmBet settles the pending simulated bet with a generated ticket id.
func (s *Service) confirmBet(sess *session.Session) string {
	bet := sess.TakePendingBet()
	if bet == nil {
		return noPendingBetReply
	}

	betID := "SIM-" + strings.ToUpper(uuid.NewString()[:8])
	s.logger.Infow("simulated bet confirmed", "session_id", sess.ID(), "bet_id", betID, "stake", bet.Stake)

	var b strings.Builder
	b.WriteString("✅ **Apuesta simulada confirmada**\n\n")
	fmt.Fprintf(&b, "• **ID de apuesta:** %s\n", betID)
	fmt.Fprintf(&b, "• **Partido:** %s\n", bet.Match)
	fmt.Fprintf(&b, "• **Monto apostado:** $%.2f\n", bet.Stake)
	fmt.Fprintf(&b, "• **Ganancia potencial:** $%.2f\n\n", bet.PotentialWinnings)
	b.WriteString("¡Buena suerte! 🍀")
	return b.String()
}

var confirmations = map[string]struct{}{
	"sí": {}, "si": {}, "confirmar": {}, "sí confirmar": {}, "si confirmar": {},
}

func isBetConfirmation(message string) bool {
	_, ok := confirmations[strings.ToLower(strings.TrimSpace(message))]
	return ok
}

var stakePattern = regexp.MustCompile(`[\$€£]?\s*(\d+(?:[.,]\d+)?)\s*(?:dólares|euros|libras|usd)?`)

// extractStake pulls the wagered amount out of a betting request. Only
// messages that actually talk about placing a bet qualify, so bare numbers
// in ordinary questions don't trigger the bet flow.
func extractStake(message string) (float64, bool) {
	lowered := strings.ToLower(message)
	if !strings.Contains(lowered, "apostar") && !strings.Contains(lowered, "apuesto") &&
		!strings.Contains(lowered, "quiero apostar") && !strings.Contains(lowered, "bet ") {
		return 0, false
	}

	match := stakePattern.FindStringSubmatch(lowered)
	if match == nil {
		return 0, false
	}

	stake, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil || stake <= 0 {
		return 0, false
	}
	return stake, true
}

func determineSelection(entities intent.Entities, quote sportsmodel.Odds) (string, float64) {
	betType := ""
	if len(entities.BetTypes) > 0 {
		betType = strings.ToLower(entities.BetTypes[0])
	}

	switch {
	case strings.Contains(betType, "draw") || strings.Contains(betType, "empate"):
		return "empate", quote.Draw
	case strings.Contains(betType, "away") || strings.Contains(betType, "visitante"):
		return "visitante", quote.AwayWin
	default:
		return "local", quote.HomeWin
	}
}
