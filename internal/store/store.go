package store

import (
	"errors"
	"fmt"

	"github.com/rocklingo/backend/internal/domain/questionbank"
)

var (
	ErrNotFound = errors.New("not found")
)

// KV is the flat key-value store everything persists through. Values are
// JSON-serialized. Get returns ErrNotFound for absent keys; any other error
// means the backing store is unavailable and must surface to the caller.
type KV interface {
	Get(key string, v any) error
	Set(key string, v any) error
	Remove(key string) error
	Clear() error
}

// Storage keys. The session list is append-only; everything else is a single
// document overwritten in place.
const (
	keyUser            = "user"
	keySessions        = "sessions"
	keySettings        = "settings"
	keyCustomQuestions = "custom_questions"
	keyProgress        = "question_progress"
	keyAchievements    = "achievements"
)

// User is the aggregate incremented once per completed session.
type User struct {
	Name          string `json:"name"`
	CreatedAt     int64  `json:"createdAt"` // epoch milliseconds
	TotalSessions int    `json:"totalSessions"`
	TotalPoints   int    `json:"totalPoints"`
}

// PersistedSession is the storage projection of a completed session.
type PersistedSession struct {
	ID                string `json:"id"`
	Date              int64  `json:"date"` // epoch milliseconds of session start
	Duration          int    `json:"duration"` // actual duration in seconds
	Score             int    `json:"score"`
	QuestionsAnswered int    `json:"questionsAnswered"`
	CorrectAnswers    int    `json:"correctAnswers"`
}

type QuestionTypes struct {
	MultipleChoice bool `json:"multipleChoice"`
	Translation    bool `json:"translation"`
	Spelling       bool `json:"spelling"`
	Matching       bool `json:"matching"`
}

type Settings struct {
	SessionDuration int           `json:"sessionDuration"` // minutes
	QuestionTypes   QuestionTypes `json:"questionTypes"`
	Difficulty      string        `json:"difficulty"` // easy, medium or hard
}

// DefaultSettings mirrors what a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		SessionDuration: 15,
		QuestionTypes: QuestionTypes{
			MultipleChoice: true,
			Translation:    true,
			Spelling:       true,
			Matching:       true,
		},
		Difficulty: "medium",
	}
}

// QuestionProgress accumulates per-question answer history.
type QuestionProgress struct {
	Correct  int   `json:"correct"`
	Total    int   `json:"total"`
	Mastered bool  `json:"mastered"`
	LastSeen int64 `json:"lastSeen"` // epoch milliseconds
}

// Store wraps a KV with typed accessors for each storage key. Reads of
// absent keys recover locally with zero values; infrastructure errors
// propagate unchanged.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) User() (*User, error) {
	var u User
	if err := s.kv.Get(keyUser, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUser(u *User) error {
	return s.kv.Set(keyUser, u)
}

func (s *Store) Sessions() ([]PersistedSession, error) {
	var sessions []PersistedSession
	err := s.kv.Get(keySessions, &sessions)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// AppendSession adds a completed session to the append-only list.
func (s *Store) AppendSession(ps PersistedSession) error {
	sessions, err := s.Sessions()
	if err != nil {
		return fmt.Errorf("load session list: %w", err)
	}
	return s.kv.Set(keySessions, append(sessions, ps))
}

// ReplaceSessions overwrites the whole session list. Only data import does
// this; everything else appends.
func (s *Store) ReplaceSessions(sessions []PersistedSession) error {
	if sessions == nil {
		sessions = []PersistedSession{}
	}
	return s.kv.Set(keySessions, sessions)
}

func (s *Store) Settings() (Settings, error) {
	var settings Settings
	err := s.kv.Get(keySettings, &settings)
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *Store) SetSettings(settings Settings) error {
	return s.kv.Set(keySettings, settings)
}

// CustomBank returns the uploaded question bank override, or ErrNotFound.
func (s *Store) CustomBank() (*questionbank.QuestionBank, error) {
	var bank questionbank.QuestionBank
	if err := s.kv.Get(keyCustomQuestions, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (s *Store) SetCustomBank(bank *questionbank.QuestionBank) error {
	return s.kv.Set(keyCustomQuestions, bank)
}

func (s *Store) Progress() (map[string]QuestionProgress, error) {
	var progress map[string]QuestionProgress
	err := s.kv.Get(keyProgress, &progress)
	if errors.Is(err, ErrNotFound) {
		return map[string]QuestionProgress{}, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *Store) SetProgress(progress map[string]QuestionProgress) error {
	return s.kv.Set(keyProgress, progress)
}

func (s *Store) Achievements() ([]string, error) {
	var unlocked []string
	err := s.kv.Get(keyAchievements, &unlocked)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return unlocked, nil
}

func (s *Store) SetAchievements(unlocked []string) error {
	return s.kv.Set(keyAchievements, unlocked)
}

// Clear wipes every storage key.
func (s *Store) Clear() error {
	return s.kv.Clear()
}
