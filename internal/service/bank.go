package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync"

	"github.com/rocklingo/backend/internal/domain/questionbank"
	"github.com/rocklingo/backend/internal/store"
)

// BankService supplies question records to session consumers. An uploaded
// custom bank overrides the default bank shipped with the app.
type BankService struct {
	store       *store.Store
	defaultPath string
	logger      *slog.Logger

	mu     sync.Mutex
	cached *questionbank.QuestionBank // lazily loaded default bank
}

func NewBankService(st *store.Store, defaultPath string, logger *slog.Logger) *BankService {
	return &BankService{
		store:       st,
		defaultPath: defaultPath,
		logger:      logger,
	}
}

// All returns the active question bank: the custom upload when present and
// non-empty, otherwise the default bank. A missing or unreadable default
// yields an empty bank, not an error.
func (b *BankService) All() (*questionbank.QuestionBank, error) {
	custom, err := b.store.CustomBank()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if custom != nil && len(custom.Categories) > 0 {
		return custom, nil
	}
	return b.defaultBank(), nil
}

func (b *BankService) defaultBank() *questionbank.QuestionBank {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cached != nil {
		return b.cached
	}

	raw, err := os.ReadFile(b.defaultPath)
	if err != nil {
		b.logger.Warn("default question bank unavailable", "path", b.defaultPath, "error", err)
		b.cached = &questionbank.QuestionBank{Version: questionbank.FormatVersion}
		return b.cached
	}

	bank, err := questionbank.ParseJSON(raw)
	if err != nil {
		b.logger.Warn("default question bank malformed", "path", b.defaultPath, "error", err)
		b.cached = &questionbank.QuestionBank{Version: questionbank.FormatVersion}
		return b.cached
	}

	b.cached = bank
	return b.cached
}

// Categories lists the active bank's categories.
func (b *BankService) Categories() ([]questionbank.Category, error) {
	bank, err := b.All()
	if err != nil {
		return nil, err
	}
	return bank.Categories, nil
}

// ByCategory returns the questions of one category, empty when unknown.
func (b *BankService) ByCategory(categoryID string) ([]questionbank.Question, error) {
	bank, err := b.All()
	if err != nil {
		return nil, err
	}
	cat := bank.Category(categoryID)
	if cat == nil {
		return nil, nil
	}
	return cat.Questions, nil
}

// Random draws up to count questions, shuffled, optionally restricted to the
// given categories.
func (b *BankService) Random(count int, categoryIDs []string) ([]questionbank.Question, error) {
	bank, err := b.All()
	if err != nil {
		return nil, err
	}

	var pool []questionbank.Question
	if len(categoryIDs) > 0 {
		wanted := make(map[string]bool, len(categoryIDs))
		for _, id := range categoryIDs {
			wanted[id] = true
		}
		for _, cat := range bank.Categories {
			if wanted[cat.ID] {
				pool = append(pool, cat.Questions...)
			}
		}
	} else {
		pool = bank.Questions()
	}

	shuffled := make([]questionbank.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > 0 && count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled, nil
}

// Distractors picks up to n wrong French answers from the same category for
// multiple-choice questions.
func (b *BankService) Distractors(correctFrench, categoryID string, n int) ([]string, error) {
	questions, err := b.ByCategory(categoryID)
	if err != nil {
		return nil, err
	}

	var others []string
	for _, q := range questions {
		if q.French != correctFrench {
			others = append(others, q.French)
		}
	}

	rand.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	if n > 0 && n < len(others) {
		others = others[:n]
	}
	return others, nil
}

// UploadCustom validates and stores a custom question bank document.
func (b *BankService) UploadCustom(raw []byte) error {
	bank, err := questionbank.ParseJSON(raw)
	if err != nil {
		return fmt.Errorf("invalid question bank: %w", err)
	}
	return b.store.SetCustomBank(bank)
}
