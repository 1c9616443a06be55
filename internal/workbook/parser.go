// Package workbook converts the semi-structured French↔Dutch workbook
// document into a categorized question bank. Parsing never fails: malformed
// lines are skipped, so bad input only yields a smaller (possibly empty) bank.
package workbook

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rocklingo/backend/internal/domain/questionbank"
)

// Translation pairs look like "- <french> → <dutch>"; the leading bullet is
// optional. Both sides are trimmed by the pattern itself.
var pairPattern = regexp.MustCompile(`^(?:[-•]\s*)?(.+?)\s*→\s*(.+)$`)

// A trailing gender marker on the French side: m, f, v, or a combined form.
var genderPattern = regexp.MustCompile(`\s+(m|f|v|m/v|mv)\s*$`)

// The fixed set of categories a workbook can resolve to. Seeded with the
// display metadata the app shows; order here is the output order.
var categorySeeds = []questionbank.Category{
	{ID: "grammar", Name: "Grammatica", Icon: "📝"},
	{ID: "daily", Name: "Dagelijkse Activiteiten", Icon: "🏠"},
	{ID: "places", Name: "Plaatsen", Icon: "📍"},
	{ID: "transport", Name: "Vervoer", Icon: "🚗"},
	{ID: "sports", Name: "Sport", Icon: "⚽"},
	{ID: "time", Name: "Tijd", Icon: "⏰"},
	{ID: "people", Name: "Mensen", Icon: "👥"},
	{ID: "feelings", Name: "Gevoelens", Icon: "❤️"},
}

// Heading keywords checked against up to 10 preceding lines, top rule wins.
var headingHints = []struct {
	category string
	keywords []string
}{
	{"grammar", []string{"grammar", "verb", "adjective"}},
	{"daily", []string{"daily", "activities", "dagen"}},
	{"places", []string{"place", "navigation", "ville"}},
	{"transport", []string{"transport", "voiture", "bus"}},
	{"sports", []string{"sport", "hobbies"}},
	{"time", []string{"time", "frequency", "tijd"}},
	{"people", []string{"people", "relationship"}},
	{"feelings", []string{"feeling", "state"}},
}

// Fallback keywords checked against the pair's own text when no heading hint
// is found nearby.
var contentHints = []struct {
	category string
	keywords []string
}{
	{"sports", []string{"voetbal", "zwem", "sport"}},
	{"transport", []string{"station", "auto", "bus", "vélo"}},
	{"places", []string{"ville", "stad", "gare"}},
	{"time", []string{"jour", "dag", "semaine"}},
	{"people", []string{"mensen", "gens", "habitant"}},
}

const defaultCategory = "grammar"

// Parse converts raw workbook text into a question bank. Output is fully
// deterministic for identical input.
func Parse(raw string) *questionbank.QuestionBank {
	lines := strings.Split(raw, "\n")

	byCategory := make(map[string][]questionbank.Question)
	questionID := 1

	for i, rawLine := range lines {
		line := strings.TrimSpace(rawLine)

		// Headings and emphasis lines carry category hints but never pairs.
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}

		match := pairPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		french := strings.TrimSpace(match[1])
		dutch := strings.TrimSpace(match[2])

		// Minimum-content filter against parser noise.
		if utf8.RuneCountInString(french) < 2 || utf8.RuneCountInString(dutch) < 2 {
			continue
		}

		categoryID := determineCategory(french, dutch, lines, i)
		french, gender := extractGender(french)
		difficulty := calculateDifficulty(french, dutch)

		byCategory[categoryID] = append(byCategory[categoryID], questionbank.Question{
			ID:         fmt.Sprintf("q%d", questionID),
			French:     french,
			Dutch:      dutch,
			Gender:     gender,
			Category:   categoryID,
			Difficulty: difficulty,
		})
		questionID++
	}

	bank := &questionbank.QuestionBank{Version: questionbank.FormatVersion}
	for _, seed := range categorySeeds {
		questions := byCategory[seed.ID]
		if len(questions) == 0 {
			continue
		}
		cat := seed
		cat.Questions = questions
		bank.Categories = append(bank.Categories, cat)
	}
	return bank
}

// determineCategory scans up to 10 preceding lines for heading hints, then
// falls back to keywords in the pair itself. Best-effort classification with
// a deterministic default.
func determineCategory(french, dutch string, lines []string, index int) string {
	lookback := index - 10
	if lookback < 0 {
		lookback = 0
	}
	for i := index - 1; i >= lookback; i-- {
		line := strings.ToLower(lines[i])
		for _, hint := range headingHints {
			for _, kw := range hint.keywords {
				if strings.Contains(line, kw) {
					return hint.category
				}
			}
		}
	}

	content := strings.ToLower(french + " " + dutch)
	for _, hint := range contentHints {
		for _, kw := range hint.keywords {
			if strings.Contains(content, kw) {
				return hint.category
			}
		}
	}

	return defaultCategory
}

// extractGender strips a trailing gender marker from the French side.
// Markers f and v mean feminine; combined markers (m/v, mv) normalize to
// feminine as well; a bare m is masculine.
func extractGender(french string) (string, questionbank.Gender) {
	match := genderPattern.FindStringSubmatch(french)
	if match == nil {
		return french, ""
	}

	word := strings.TrimSpace(genderPattern.ReplaceAllString(french, ""))
	if match[1] == "m" {
		return word, questionbank.GenderMasculine
	}
	return word, questionbank.GenderFeminine
}

// calculateDifficulty grades a pair by combined text length and word count:
// short single or double words are 1, short phrases 2, longer sentences 3.
func calculateDifficulty(french, dutch string) int {
	totalLength := utf8.RuneCountInString(french) + utf8.RuneCountInString(dutch)
	wordCount := len(strings.Fields(french)) + len(strings.Fields(dutch))

	if totalLength < 10 || wordCount <= 2 {
		return 1
	}
	if totalLength < 20 || wordCount <= 4 {
		return 2
	}
	return 3
}
