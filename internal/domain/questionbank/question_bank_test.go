package questionbank_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rocklingo/backend/internal/domain/questionbank"
)

func TestParseJSON_ValidDocument(t *testing.T) {
	raw := []byte(`{
		"version": "1.0",
		"categories": [
			{"id": "grammar", "name": "Grammatica", "icon": "📝", "questions": [
				{"id": "q1", "french": "bonjour", "dutch": "hallo", "category": "grammar", "difficulty": 1}
			]}
		]
	}`)

	bank, err := questionbank.ParseJSON(raw)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if bank.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", bank.Version)
	}
	if bank.TotalQuestions() != 1 {
		t.Errorf("expected 1 question, got %d", bank.TotalQuestions())
	}
}

func TestParseJSON_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"missing version", `{"categories": []}`, questionbank.ErrMissingVersion},
		{"missing categories", `{"version": "1.0"}`, questionbank.ErrMissingCategories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questionbank.ParseJSON([]byte(tt.raw))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	if _, err := questionbank.ParseJSON([]byte(`{broken`)); err == nil {
		t.Error("expected a decode error")
	}
}

func TestParseJSON_EmptyCategoriesListIsValid(t *testing.T) {
	bank, err := questionbank.ParseJSON([]byte(`{"version": "1.0", "categories": []}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if bank.TotalQuestions() != 0 {
		t.Errorf("expected empty bank, got %d questions", bank.TotalQuestions())
	}
}

func TestQuestionBank_CategoryLookup(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Version: questionbank.FormatVersion,
		Categories: []questionbank.Category{
			{ID: "grammar", Name: "Grammatica"},
			{ID: "sports", Name: "Sport"},
		},
	}

	if cat := bank.Category("sports"); cat == nil || cat.Name != "Sport" {
		t.Errorf("expected the sports category, got %+v", cat)
	}
	if cat := bank.Category("nope"); cat != nil {
		t.Errorf("expected nil for an unknown category, got %+v", cat)
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Version: questionbank.FormatVersion,
		Categories: []questionbank.Category{
			{ID: "grammar", Questions: []questionbank.Question{
				{ID: "q1", French: "bonjour", Dutch: "hallo", Difficulty: 1},
				{ID: "q2", French: "", Dutch: "hallo", Difficulty: 1},
				{ID: "q3", French: "merci", Dutch: "bedankt", Difficulty: 9},
				{ID: "q4", French: "le chat", Dutch: "de kat", Difficulty: 2, Gender: "x"},
			}},
		},
	}

	problems := bank.Validate()
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}

	joined := strings.Join(problems, "\n")
	for _, want := range []string{"q2 is missing a translation", "q3 has invalid difficulty", "q4 has invalid gender"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected problem %q in %v", want, problems)
		}
	}
}

func TestValidate_CleanBank(t *testing.T) {
	bank := &questionbank.QuestionBank{
		Version: questionbank.FormatVersion,
		Categories: []questionbank.Category{
			{ID: "grammar", Questions: []questionbank.Question{
				{ID: "q1", French: "bonjour", Dutch: "hallo", Difficulty: 1},
				{ID: "q2", French: "le chat", Dutch: "de kat", Difficulty: 2, Gender: questionbank.GenderMasculine},
			}},
		},
	}

	if problems := bank.Validate(); len(problems) != 0 {
		t.Errorf("expected no problems, got %v", problems)
	}
}
