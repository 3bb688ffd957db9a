// Command mocksports serves a local stand-in for the external sports API,
// useful when developing the chatbot without upstream credentials.
package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	model "github.com/steven0413/ChatBetTechnicalAssessment/internal/model/sports"
	"github.com/steven0413/ChatBetTechnicalAssessment/pkg/utils"
)

var sportsData = []model.Sport{
	{ID: 1, Name: "Football", Icon: "⚽"},
	{ID: 2, Name: "Basketball", Icon: "🏀"},
}

var tournamentsData = []model.Tournament{
	{ID: 1, Name: "Champions League", SportID: 1},
	{ID: 2, Name: "La Liga", SportID: 1},
	{ID: 3, Name: "Premier League", SportID: 1},
}

var footballTeams = []string{"Barcelona", "Real Madrid", "Bayern Munich", "Juventus"}

func generateFixtures(rng *rand.Rand) []model.Fixture {
	fixtures := make([]model.Fixture, 0, 10)
	today := time.Now()

	for i := 0; i < 10; i++ {
		home := footballTeams[rng.Intn(len(footballTeams))]
		away := home
		for away == home {
			away = footballTeams[rng.Intn(len(footballTeams))]
		}

		matchDate := today.AddDate(0, 0, rng.Intn(8))
		fixtures = append(fixtures, model.Fixture{
			ID:           i + 1,
			SportID:      1,
			TournamentID: rng.Intn(3) + 1,
			TeamHome:     home,
			TeamAway:     away,
			Date:         matchDate.Format("2006-01-02"),
			Time:         strconv.Itoa(rng.Intn(11)+12) + ":00",
			Location:     "Stadium " + strconv.Itoa(rng.Intn(10)+1),
		})
	}
	return fixtures
}

func generateOdds(rng *rand.Rand, fixtures []model.Fixture) []model.Odds {
	odds := make([]model.Odds, 0, len(fixtures))
	for _, fixture := range fixtures {
		odds = append(odds, model.Odds{
			FixtureID:   fixture.ID,
			Market:      "match_result",
			HomeWin:     round2(1.5 + rng.Float64()*1.5),
			Draw:        round2(2.0 + rng.Float64()*2.0),
			AwayWin:     round2(1.5 + rng.Float64()*2.0),
			LastUpdated: time.Now().Format("2006-01-02 15:04:05"),
		})
	}
	return odds
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}

func main() {
	port := os.Getenv("MOCK_SPORTS_PORT")
	if port == "" {
		port = "8001"
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fixtures := generateFixtures(rng)
	odds := generateOdds(rng, fixtures)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Mock Sports API is running"})
	})

	r.Get("/sports", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, sportsData)
	})

	r.Get("/sports/tournaments", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, tournamentsData)
	})

	r.Get("/sports/fixtures", func(w http.ResponseWriter, req *http.Request) {
		result := fixtures
		if date := req.URL.Query().Get("date"); date != "" {
			filtered := make([]model.Fixture, 0, len(result))
			for _, fixture := range result {
				if fixture.Date == date {
					filtered = append(filtered, fixture)
				}
			}
			result = filtered
		}
		utils.RespondJSON(w, http.StatusOK, result)
	})

	r.Get("/sports/odds", func(w http.ResponseWriter, req *http.Request) {
		result := odds
		if raw := req.URL.Query().Get("fixture_id"); raw != "" {
			fixtureID, err := strconv.Atoi(raw)
			if err != nil {
				utils.RespondError(w, http.StatusBadRequest, "invalid fixture_id")
				return
			}
			filtered := make([]model.Odds, 0, 1)
			for _, entry := range result {
				if entry.FixtureID == fixtureID {
					filtered = append(filtered, entry)
				}
			}
			result = filtered
		}
		utils.RespondJSON(w, http.StatusOK, result)
	})

	log.Printf("mock sports API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
