package sports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
	model "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
)

func newTestClient(baseURL string) *Client {
	cfg := config.SportsConfig{
		BaseURL:      baseURL,
		Timeout:      2 * time.Second,
		ProbeTimeout: time.Second,
	}
	return NewClient(cfg, zap.NewNop().Sugar())
}

func newUpstream(t *testing.T, fixtures []model.Fixture, odds []model.Odds) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/sports", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]model.Sport{{ID: 1, Name: "Football"}})
	})
	mux.HandleFunc("/sports/fixtures", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(fixtures)
	})
	mux.HandleFunc("/sports/odds", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(odds)
	})
	return httptest.NewServer(mux)
}

func sampleFixtures() []model.Fixture {
	return []model.Fixture{
		{ID: 1, TeamHome: "Barcelona", TeamAway: "Real Madrid", Date: "2026-08-26", Time: "20:00"},
		{ID: 2, TeamHome: "Bayern Munich", TeamAway: "Juventus", Date: "2026-08-27", Time: "18:00"},
	}
}

func sampleOdds() []model.Odds {
	return []model.Odds{
		{FixtureID: 1, Market: "match_result", HomeWin: 1.85, Draw: 3.2, AwayWin: 2.4},
	}
}

func TestQueryReturnsFilteredFixtures(t *testing.T) {
	server := newUpstream(t, sampleFixtures(), sampleOdds())
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Query(context.Background(), intent.Entities{Teams: []string{"barcelona"}})

	require.Equal(t, model.StatusFound, result.Status)
	require.Len(t, result.Fixtures, 1)
	require.Equal(t, "Barcelona", result.Fixtures[0].TeamHome)
	require.Len(t, result.Odds, 1)
}

func TestQueryNoMatchingTeamFallsBackToOdds(t *testing.T) {
	server := newUpstream(t, sampleFixtures(), sampleOdds())
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Query(context.Background(), intent.Entities{Teams: []string{"river plate"}})

	// No fixture matches, but the odds feed still has data to surface.
	require.Equal(t, model.StatusFound, result.Status)
	require.Empty(t, result.Fixtures)
	require.Len(t, result.Odds, 1)
}

func TestQueryEmptyUpstream(t *testing.T) {
	server := newUpstream(t, nil, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Query(context.Background(), intent.Entities{})

	require.Equal(t, model.StatusEmpty, result.Status)
	require.True(t, result.Empty())
}

func TestQueryUpstreamDownBecomesFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Query(context.Background(), intent.Entities{Teams: []string{"barcelona"}})

	require.Equal(t, model.StatusFailed, result.Status)
	require.True(t, result.Empty())
}

func TestQueryUnreachableHostBecomesFailed(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	result := client.Query(context.Background(), intent.Entities{})

	require.Equal(t, model.StatusFailed, result.Status)
}

func TestIsConnected(t *testing.T) {
	server := newUpstream(t, nil, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	require.True(t, client.IsConnected(context.Background()))

	down := newTestClient("http://127.0.0.1:1")
	require.False(t, down.IsConnected(context.Background()))
}

func TestAPIKeyHeaderIsSent(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		json.NewEncoder(w).Encode([]model.Sport{})
	}))
	defer server.Close()

	cfg := config.SportsConfig{
		BaseURL:      server.URL,
		APIKey:       "secret",
		Timeout:      time.Second,
		ProbeTimeout: time.Second,
	}
	client := NewClient(cfg, zap.NewNop().Sugar())

	_, err := client.Sports(context.Background())
	require.NoError(t, err)
	require.Equal(t, "secret", gotKey)
}
