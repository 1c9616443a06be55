package service

import (
	"time"

	"github.com/rocklingo/backend/internal/store"
)

// A question counts as learned after three answers with at least 70%
// accuracy.
const (
	learnedMinAnswers = 3
	learnedAccuracy   = 0.7
)

// ProgressService maintains the per-question answer history.
type ProgressService struct {
	store *store.Store
	now   func() time.Time
}

func NewProgressService(st *store.Store) *ProgressService {
	return &ProgressService{store: st, now: time.Now}
}

// Record updates a question's counters after an answer. A question becomes
// mastered on a correct answer once it has been seen three times; mastery is
// never revoked.
func (p *ProgressService) Record(questionID string, correct bool) error {
	progress, err := p.store.Progress()
	if err != nil {
		return err
	}

	cur := progress[questionID]
	cur.Total++
	if correct {
		cur.Correct++
	}
	if correct && cur.Total >= learnedMinAnswers {
		cur.Mastered = true
	}
	cur.LastSeen = p.now().UnixMilli()

	progress[questionID] = cur
	return p.store.SetProgress(progress)
}

// All returns the full progress map, empty when nothing is stored.
func (p *ProgressService) All() (map[string]store.QuestionProgress, error) {
	return p.store.Progress()
}

// WordsLearned counts questions meeting the learned threshold.
func (p *ProgressService) WordsLearned() (int, error) {
	progress, err := p.store.Progress()
	if err != nil {
		return 0, err
	}
	return CountLearned(progress), nil
}

// CountLearned counts entries with enough answers and accuracy.
func CountLearned(progress map[string]store.QuestionProgress) int {
	n := 0
	for _, qp := range progress {
		if qp.Total >= learnedMinAnswers && float64(qp.Correct)/float64(qp.Total) >= learnedAccuracy {
			n++
		}
	}
	return n
}
