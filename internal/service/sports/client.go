package sports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/steven0413/ChatBetTechnicalAssessment/internal/analysis/intent"
	"github.com/steven0413/ChatBetTechnicalAssessment/internal/config"
	model "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
)

// Client reads from the external sports/odds API. Every public lookup that
// feeds a conversation absorbs failures: the caller gets a typed result,
// never an error it must handle mid-reply.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	probe   *http.Client
	logger  *zap.SugaredLogger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.SportsConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		probe:   &http.Client{Timeout: cfg.ProbeTimeout},
		logger:  logger,
	}
}

func (c *Client) get(ctx context.Context, client *http.Client, endpoint string, params url.Values, out any) error {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sports api %s: status %s", endpoint, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Sports lists the sports the upstream covers.
func (c *Client) Sports(ctx context.Context) ([]model.Sport, error) {
	var out []model.Sport
	if err := c.get(ctx, c.http, "/sports", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Tournaments lists tournaments, optionally scoped to one sport.
func (c *Client) Tournaments(ctx context.Context, sport string) ([]model.Tournament, error) {
	params := url.Values{}
	if sport != "" {
		params.Set("sport", sport)
	}
	var out []model.Tournament
	if err := c.get(ctx, c.http, "/sports/tournaments", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FixtureFilter narrows a fixtures lookup.
type FixtureFilter struct {
	Sport      string
	Tournament string
	Date       string
}

// Fixtures lists scheduled matches, optionally filtered.
func (c *Client) Fixtures(ctx context.Context, filter FixtureFilter) ([]model.Fixture, error) {
	params := url.Values{}
	if filter.Sport != "" {
		params.Set("sport", filter.Sport)
	}
	if filter.Tournament != "" {
		params.Set("tournament", filter.Tournament)
	}
	if filter.Date != "" {
		params.Set("date", filter.Date)
	}
	var out []model.Fixture
	if err := c.get(ctx, c.http, "/sports/fixtures", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OddsFilter narrows an odds lookup.
type OddsFilter struct {
	Sport      string
	Tournament string
	FixtureID  int
}

// Odds lists the 1-X-2 quotes, optionally filtered.
func (c *Client) Odds(ctx context.Context, filter OddsFilter) ([]model.Odds, error) {
	params := url.Values{}
	if filter.Sport != "" {
		params.Set("sport", filter.Sport)
	}
	if filter.Tournament != "" {
		params.Set("tournament", filter.Tournament)
	}
	if filter.FixtureID > 0 {
		params.Set("fixture_id", strconv.Itoa(filter.FixtureID))
	}
	var out []model.Odds
	if err := c.get(ctx, c.http, "/sports/odds", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IsConnected probes the upstream with a short timeout.
func (c *Client) IsConnected(ctx context.Context) bool {
	var out []model.Sport
	return c.get(ctx, c.probe, "/sports", nil, &out) == nil
}

// Query fetches the data relevant to the extracted entities: fixtures first,
// filtered down by the teams mentioned, then the odds for the best match.
// Upstream trouble is logged and collapses into StatusFailed so one degraded
// dependency never blocks the conversation.
func (c *Client) Query(ctx context.Context, entities intent.Entities) model.QueryResult {
	filter := FixtureFilter{}
	if len(entities.Tournaments) > 0 {
		filter.Tournament = entities.Tournaments[0]
	}
	if len(entities.Dates) > 0 {
		filter.Date = entities.Dates[0]
	}

	fixturesFailed := false
	fixtures, err := c.Fixtures(ctx, filter)
	if err != nil {
		fixturesFailed = true
		c.logger.Warnw("fixtures lookup failed", "error", err)
	}

	fixtures = filterFixturesByTeams(fixtures, entities.Teams)

	oddsFilter := OddsFilter{Tournament: filter.Tournament}
	if len(fixtures) > 0 {
		oddsFilter.FixtureID = fixtures[0].ID
	}

	oddsFailed := false
	odds, err := c.Odds(ctx, oddsFilter)
	if err != nil {
		oddsFailed = true
		c.logger.Warnw("odds lookup failed", "error", err)
	}

	if fixturesFailed && oddsFailed {
		return model.QueryResult{Status: model.StatusFailed}
	}
	if len(fixtures) == 0 && len(odds) == 0 {
		return model.QueryResult{Status: model.StatusEmpty}
	}

	return model.QueryResult{
		Status:   model.StatusFound,
		Fixtures: fixtures,
		Odds:     odds,
	}
}

func filterFixturesByTeams(fixtures []model.Fixture, teams []string) []model.Fixture {
	if len(teams) == 0 || len(fixtures) == 0 {
		return fixtures
	}

	var filtered []model.Fixture
	for _, fixture := range fixtures {
		home := strings.ToLower(fixture.TeamHome)
		away := strings.ToLower(fixture.TeamAway)
		for _, team := range teams {
			needle := strings.ToLower(team)
			if strings.Contains(home, needle) || strings.Contains(away, needle) {
				filtered = append(filtered, fixture)
				break
			}
		}
	}
	return filtered
}
