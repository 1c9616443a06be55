package questionbank

import (
	"encoding/json"
	"errors"
)

// FormatVersion is the question bank JSON format produced by the workbook
// converter and accepted by custom uploads.
const FormatVersion = "1.0"

type Gender string

const (
	GenderMasculine Gender = "m"
	GenderFeminine  Gender = "f"
)

// Question is a single French↔Dutch translation pair. Immutable once parsed.
type Question struct {
	ID         string `json:"id"`
	French     string `json:"french"`
	Dutch      string `json:"dutch"`
	Gender     Gender `json:"gender,omitempty"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"` // 1, 2 or 3
}

// Category groups questions under a fixed id/name/icon triple.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Questions []Question `json:"questions"`
}

// QuestionBank is the root artifact of workbook parsing, consumed read-only.
type QuestionBank struct {
	Version    string     `json:"version"`
	Categories []Category `json:"categories"`
}

// Questions flattens all categories into a single slice, in category order.
func (qb *QuestionBank) Questions() []Question {
	var all []Question
	for _, cat := range qb.Categories {
		all = append(all, cat.Questions...)
	}
	return all
}

// TotalQuestions counts questions across all categories.
func (qb *QuestionBank) TotalQuestions() int {
	n := 0
	for _, cat := range qb.Categories {
		n += len(cat.Questions)
	}
	return n
}

// Category returns the category with the given id, or nil.
func (qb *QuestionBank) Category(id string) *Category {
	for i := range qb.Categories {
		if qb.Categories[i].ID == id {
			return &qb.Categories[i]
		}
	}
	return nil
}

var (
	ErrMissingVersion    = errors.New("question bank is missing a version")
	ErrMissingCategories = errors.New("question bank has no categories field")
)

// ParseJSON decodes and structurally validates a question bank document.
func ParseJSON(raw []byte) (*QuestionBank, error) {
	var probe struct {
		Version    string           `json:"version"`
		Categories *json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if probe.Version == "" {
		return nil, ErrMissingVersion
	}
	if probe.Categories == nil {
		return nil, ErrMissingCategories
	}

	var bank QuestionBank
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

// Validate checks every question for the constraints the converter promises:
// both translations present, difficulty in range, gender one of m/f.
// It returns one message per violation.
func (qb *QuestionBank) Validate() []string {
	var problems []string
	for _, cat := range qb.Categories {
		for _, q := range cat.Questions {
			if q.French == "" || q.Dutch == "" {
				problems = append(problems, "question "+q.ID+" is missing a translation")
			}
			if q.Difficulty < 1 || q.Difficulty > 3 {
				problems = append(problems, "question "+q.ID+" has invalid difficulty")
			}
			if q.Gender != "" && q.Gender != GenderMasculine && q.Gender != GenderFeminine {
				problems = append(problems, "question "+q.ID+" has invalid gender")
			}
		}
	}
	return problems
}
