package intent

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Detector extracts betting entities from a raw user query. The extraction
// policy is deliberately pluggable: the keyword detector below is the
// baseline, and an LLM-backed detector can wrap it.
type Detector interface {
	Detect(ctx context.Context, query string) Entities
}

// KeywordDetector scans the query against the synonym tables. It needs no
// network access and is the fallback when the model is unavailable.
type KeywordDetector struct {
	now func() time.Time
}

// NewKeywordDetector returns a detector using the wall clock for relative dates.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{now: time.Now}
}

// NewKeywordDetectorAt pins the clock, so relative dates stay reproducible.
func NewKeywordDetectorAt(now func() time.Time) *KeywordDetector {
	return &KeywordDetector{now: now}
}

var numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

// Detect implements Detector.
func (d *KeywordDetector) Detect(_ context.Context, query string) Entities {
	lowered := lower(query)

	entities := Entities{
		Teams:        []string{},
		Tournaments:  []string{},
		Dates:        []string{},
		BetTypes:     []string{},
		QuestionType: QuestionGeneral,
	}

	for _, term := range nonSportsKeywords {
		if containsTerm(lowered, term) {
			entities.QuestionType = QuestionNonSports
			return entities
		}
	}

	entities.Teams = sorted(findCanonical(teamSynonyms, lowered))
	entities.Tournaments = sorted(findCanonical(tournamentSynonyms, lowered))
	entities.BetTypes = sorted(findCanonical(betTypeSynonyms, lowered))
	entities.Dates = d.extractDates(lowered)

	for _, qt := range []QuestionType{QuestionAnalysis, QuestionStats, QuestionGeneral} {
		if matchesAny(lowered, questionPatterns[qt]) {
			entities.QuestionType = qt
			break
		}
	}

	return entities
}

func (d *KeywordDetector) extractDates(lowered string) []string {
	seen := map[string]struct{}{}
	var dates []string
	add := func(day time.Time) {
		formatted := day.Format("2006-01-02")
		if _, ok := seen[formatted]; !ok {
			seen[formatted] = struct{}{}
			dates = append(dates, formatted)
		}
	}

	today := d.now()
	if containsTerm(lowered, "pasado mañana") {
		add(today.AddDate(0, 0, 2))
	} else if containsTerm(lowered, "mañana") {
		add(today.AddDate(0, 0, 1))
	}
	if containsTerm(lowered, "hoy") {
		add(today)
	}
	if containsTerm(lowered, "fin de semana") {
		daysUntilSaturday := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
		add(today.AddDate(0, 0, daysUntilSaturday))
	}

	for _, match := range numericDatePattern.FindAllStringSubmatch(lowered, -1) {
		if parsed, ok := parseNumericDate(match[1], match[2], match[3]); ok {
			add(parsed)
		}
	}

	return dates
}

func parseNumericDate(dayStr, monthStr, yearStr string) (time.Time, bool) {
	var day, month, year int
	if _, err := fmt.Sscanf(dayStr+" "+monthStr+" "+yearStr, "%d %d %d", &day, &month, &year); err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// IsSportsQuery decides whether live sports data should be fetched for the
// query. Named entities or generic betting vocabulary count; non-sports
// classifications never do.
func IsSportsQuery(query string, entities Entities) bool {
	if entities.QuestionType == QuestionNonSports {
		return false
	}
	if entities.HasSubjects() {
		return true
	}
	lowered := lower(query)
	return matchesAny(lowered, sportsKeywords)
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsTerm(haystack, term string) bool {
	return strings.Contains(haystack, term)
}

func matchesAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(haystack, term) {
			return true
		}
	}
	return false
}

func sorted(values []string) []string {
	if values == nil {
		return []string{}
	}
	sort.Strings(values)
	return values
}
