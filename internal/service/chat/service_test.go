package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/model/chat"
	sportsmodel "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/service/session"
)

type stubSports struct {
	result sportsmodel.QueryResult
	calls  int
}

func (s *stubSports) Query(_ context.Context, _ intent.Entities) sportsmodel.QueryResult {
	s.calls++
	return s.result
}

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func testClock() time.Time {
	return time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)
}

func foundResult() sportsmodel.QueryResult {
	return sportsmodel.QueryResult{
		Status: sportsmodel.StatusFound,
		Fixtures: []sportsmodel.Fixture{
			{ID: 1, TeamHome: "Barcelona", TeamAway: "Real Madrid", Date: "2026-08-26", Time: "20:00", Location: "Stadium 1"},
		},
		Odds: []sportsmodel.Odds{
			{FixtureID: 1, Market: "match_result", HomeWin: 1.85, Draw: 3.20, AwayWin: 2.40},
		},
	}
}

func newTestService(sports *stubSports, generator Generator, historyLimit int) (*Service, *session.Store) {
	store := session.NewStore(config.SessionConfig{HistoryLimit: historyLimit, TTL: time.Hour}, zap.NewNop().Sugar())
	detector := intent.NewKeywordDetectorAt(testClock)
	var svc *Service
	if generator == nil {
		svc = NewService(store, sports, detector, nil, zap.NewNop().Sugar())
	} else {
		svc = NewService(store, sports, detector, generator, zap.NewNop().Sugar())
	}
	return svc, store
}

func TestHandleOddsQueryUsesSportsData(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	generator := &stubGenerator{reply: "Hoy juega Barcelona vs Real Madrid, cuota local 1.85. Recuerda: apuesta de forma responsable."}
	svc, store := newTestService(sports, generator, 8)

	reply := svc.Handle(context.Background(), chat.Request{
		Message:   "¿Qué cuotas tiene el partido de hoy?",
		SessionID: "s1",
	})

	if sports.calls != 1 {
		t.Fatalf("expected one sports lookup, got %d", sports.calls)
	}
	if !strings.Contains(generator.lastPrompt, "local 1.85, empate 3.20, visitante 2.40") {
		t.Fatal("prompt missing the odds line")
	}
	if reply.Response != generator.reply {
		t.Fatalf("expected generated text relayed, got %q", reply.Response)
	}
	if reply.SessionID != "s1" {
		t.Fatalf("unexpected session id %q", reply.SessionID)
	}

	sess, err := store.GetOrCreate("s1")
	if err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}
	if got := len(sess.History()); got != 1 {
		t.Fatalf("expected one stored turn, got %d", got)
	}
}

func TestHandleGreetingSkipsSports(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	generator := &stubGenerator{reply: "¡Hola! ¿Sobre qué partido quieres información?"}
	svc, _ := newTestService(sports, generator, 8)

	reply := svc.Handle(context.Background(), chat.Request{Message: "Hola", SessionID: "s2"})

	if sports.calls != 0 {
		t.Fatalf("greeting must not query the sports API, got %d calls", sports.calls)
	}
	if strings.Contains(generator.lastPrompt, "Datos disponibles") {
		t.Fatal("prompt must have no sports section for a greeting")
	}
	if reply.Response != generator.reply {
		t.Fatalf("unexpected reply %q", reply.Response)
	}
}

func TestHandleModelFailureReturnsFallback(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	generator := &stubGenerator{err: errors.New("deadline exceeded")}
	svc, _ := newTestService(sports, generator, 8)

	query := "¿Qué cuotas tiene el partido de hoy?"
	reply := svc.Handle(context.Background(), chat.Request{Message: query, SessionID: "s1"})

	detector := intent.NewKeywordDetectorAt(testClock)
	expected := fallbackFor(detector.Detect(context.Background(), query), foundResult())
	if reply.Response != expected {
		t.Fatalf("expected canned fallback, got %q", reply.Response)
	}
	if reply.Response == "" {
		t.Fatal("fallback reply must not be empty")
	}
}

func TestHandleWithoutModelStillReplies(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	svc, _ := newTestService(sports, nil, 8)

	reply := svc.Handle(context.Background(), chat.Request{Message: "¿Qué cuotas hay hoy?", SessionID: "s1"})

	if strings.TrimSpace(reply.Response) == "" {
		t.Fatal("expected non-empty reply without a model")
	}
}

func TestHandleNonSportsQuery(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	generator := &stubGenerator{reply: "no debería usarse"}
	svc, _ := newTestService(sports, generator, 8)

	reply := svc.Handle(context.Background(), chat.Request{Message: "¿Qué película me recomiendas?", SessionID: "s1"})

	if sports.calls != 0 {
		t.Fatal("non-sports query must not reach the sports API")
	}
	if reply.Response != nonSportsReply {
		t.Fatalf("expected the non-sports redirect, got %q", reply.Response)
	}
}

func TestHandleMissingSessionIDDefaults(t *testing.T) {
	sports := &stubSports{result: sportsmodel.QueryResult{Status: sportsmodel.StatusEmpty}}
	generator := &stubGenerator{reply: "claro"}
	svc, _ := newTestService(sports, generator, 8)

	reply := svc.Handle(context.Background(), chat.Request{Message: "Hola"})

	if reply.SessionID != defaultSessionID {
		t.Fatalf("expected default session id, got %q", reply.SessionID)
	}
}

func TestHandleHistoryCapDropsOldestFromPrompt(t *testing.T) {
	sports := &stubSports{result: sportsmodel.QueryResult{Status: sportsmodel.StatusEmpty}}
	generator := &stubGenerator{reply: "ok"}
	svc, _ := newTestService(sports, generator, 2)

	svc.Handle(context.Background(), chat.Request{Message: "primera pregunta sobre cuotas", SessionID: "s1"})
	svc.Handle(context.Background(), chat.Request{Message: "segunda pregunta sobre cuotas", SessionID: "s1"})
	svc.Handle(context.Background(), chat.Request{Message: "tercera pregunta sobre cuotas", SessionID: "s1"})
	svc.Handle(context.Background(), chat.Request{Message: "cuarta pregunta sobre cuotas", SessionID: "s1"})

	if strings.Contains(generator.lastPrompt, "primera pregunta") {
		t.Fatal("evicted turn leaked into the prompt")
	}
	if !strings.Contains(generator.lastPrompt, "tercera pregunta") {
		t.Fatal("recent turn missing from the prompt")
	}
}

func TestHandleBetProposalAndConfirmation(t *testing.T) {
	sports := &stubSports{result: foundResult()}
	generator := &stubGenerator{reply: "no debería usarse"}
	svc, store := newTestService(sports, generator, 8)

	proposal := svc.Handle(context.Background(), chat.Request{
		Message:   "quiero apostar 100 al barcelona",
		SessionID: "s1",
	})

	if !strings.Contains(proposal.Response, "Ganancia potencial") {
		t.Fatalf("expected bet analysis, got %q", proposal.Response)
	}
	if !strings.Contains(proposal.Response, "$185.00") {
		t.Fatalf("expected potential winnings 100 x 1.85, got %q", proposal.Response)
	}

	sess, err := store.GetOrCreate("s1")
	if err != nil {
		t.Fatalf("GetOrCreate err: %v", err)
	}
	if !sess.HasPendingBet() {
		t.Fatal("expected a pending bet on the session")
	}

	confirmation := svc.Handle(context.Background(), chat.Request{Message: "sí", SessionID: "s1"})
	if !strings.Contains(confirmation.Response, "Apuesta simulada confirmada") {
		t.Fatalf("expected confirmation, got %q", confirmation.Response)
	}
	if !strings.Contains(confirmation.Response, "SIM-") {
		t.Fatal("expected a simulated bet id")
	}
	if sess.HasPendingBet() {
		t.Fatal("pending bet should be cleared after confirmation")
	}
}

func TestHandleConfirmationWithoutPendingBet(t *testing.T) {
	sports := &stubSports{result: sportsmodel.QueryResult{Status: sportsmodel.StatusEmpty}}
	generator := &stubGenerator{reply: "claro que sí"}
	svc, _ := newTestService(sports, generator, 8)

	reply := svc.Handle(context.Background(), chat.Request{Message: "sí", SessionID: "s1"})

	// Without a parked bet, "sí" is just another message for the model.
	if reply.Response != generator.reply {
		t.Fatalf("expected normal flow, got %q", reply.Response)
	}
}
