package intent

// QuestionType classifies what the user is asking for.
type QuestionType string

const (
	QuestionAnalysis  QuestionType = "análisis y recomendación"
	QuestionStats     QuestionType = "estadísticas"
	QuestionGeneral   QuestionType = "información general"
	QuestionNonSports QuestionType = "non_sports"
)

// Entities are the structured components extracted from a user query.
// The JSON shape matches what the Gemini extraction prompt returns.
type Entities struct {
	Teams        []string     `json:"teams"`
	Tournaments  []string     `json:"tournaments"`
	Dates        []string     `json:"dates"`
	BetTypes     []string     `json:"bet_types"`
	QuestionType QuestionType `json:"question_type"`
}

// HasSubjects reports whether the query named anything concrete to look up.
func (e Entities) HasSubjects() bool {
	return len(e.Teams) > 0 || len(e.Tournaments) > 0 || len(e.BetTypes) > 0
}
