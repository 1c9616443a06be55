package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/rocklingo/backend/internal/domain/session"
	"github.com/rocklingo/backend/internal/id"
	"github.com/rocklingo/backend/internal/scoring"
	"github.com/rocklingo/backend/internal/store"
)

var ErrInvalidDuration = errors.New("planned duration must be positive")

// SessionManager owns the single active practice session. All methods are
// safe for concurrent use; the mutex serializes the read-then-write counter
// updates in RecordAttempt.
//
// Operations on a missing session are no-ops returning zero values. Storage
// failures are not recovered here and propagate to the caller.
type SessionManager struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time

	mu               sync.Mutex
	current          *session.Session
	questionStart    time.Time
	pauseStart       time.Time
	pausedInQuestion time.Duration
	pausedTotal      time.Duration
}

// SessionManagerOption configures a SessionManager.
type SessionManagerOption func(*SessionManager)

// WithClock replaces the wall clock, so tests can control elapsed time.
func WithClock(now func() time.Time) SessionManagerOption {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(st *store.Store, logger *slog.Logger, opts ...SessionManagerOption) *SessionManager {
	m := &SessionManager{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a fresh session and arms the per-question clock. A session
// that is still active at this point is discarded without being persisted.
func (m *SessionManager) Start(plannedDuration time.Duration, categoryIDs []string) (*session.Session, error) {
	if plannedDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.logger.Warn("discarding unfinished session", "session_id", m.current.ID)
	}

	now := m.now()
	m.current = &session.Session{
		ID:              id.GenerateSessionID(),
		StartTime:       now,
		PlannedDuration: plannedDuration,
		Attempts:        []session.Attempt{},
		Categories:      append([]string(nil), categoryIDs...),
	}
	m.questionStart = now
	m.pauseStart = time.Time{}
	m.pausedInQuestion = 0
	m.pausedTotal = 0

	return m.current.Clone(), nil
}

// Current returns a copy of the active session, or nil.
func (m *SessionManager) Current() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	return m.current.Clone()
}

// StartQuestion rearms the per-question clock. Call it before presenting
// each question; skipping it makes the next attempt's elapsed time run from
// the previous question's start.
func (m *SessionManager) StartQuestion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.questionStart = m.now()
	m.pausedInQuestion = 0
}

// RecordAttempt scores an answer and appends it to the attempt log. Time
// spent paused during the question does not count toward elapsed time.
// Returns the points awarded, 0 when no session is active.
func (m *SessionManager) RecordAttempt(questionID string, correct bool, attemptNumber, difficulty int, questionType scoring.Type) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0
	}

	elapsed := m.now().Sub(m.questionStart) - m.pausedInQuestion
	if m.current.IsPaused {
		elapsed -= m.now().Sub(m.pauseStart)
	}
	seconds := int(math.Round(elapsed.Seconds()))
	if seconds < 0 {
		seconds = 0
	}

	streakBefore := m.current.CurrentStreak()
	result := scoring.Score(correct, float64(seconds), attemptNumber, difficulty, streakBefore, questionType)

	m.current.Attempts = append(m.current.Attempts, session.Attempt{
		QuestionID:    questionID,
		Correct:       correct,
		SecondsSpent:  seconds,
		AttemptNumber: attemptNumber,
		Points:        result.TotalPoints,
	})
	m.current.QuestionsAnswered++
	if correct {
		m.current.CorrectAnswers++
	}
	m.current.Score += result.TotalPoints

	return result.TotalPoints
}

// CurrentStreak returns the trailing run of correct answers, 0 with no
// active session.
func (m *SessionManager) CurrentStreak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return 0
	}
	return m.current.CurrentStreak()
}

// Pause suspends the session clock. A second Pause without a Resume is a
// no-op.
func (m *SessionManager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.IsPaused {
		return
	}
	m.current.IsPaused = true
	m.pauseStart = m.now()
}

// Resume folds the paused interval into the session's accumulators.
func (m *SessionManager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || !m.current.IsPaused {
		return
	}
	m.foldPauseLocked()
}

func (m *SessionManager) foldPauseLocked() {
	paused := m.now().Sub(m.pauseStart)
	m.pausedInQuestion += paused
	m.pausedTotal += paused
	m.current.IsPaused = false
	m.current.PausedSeconds = int(math.Round(m.pausedTotal.Seconds()))
}

// End finalizes the active session: stamps the end time, persists the
// storage projection, bumps the user aggregate, and clears the active slot.
// Returns nil when no session is active; a storage failure leaves the
// session active so the caller may retry.
func (m *SessionManager) End() (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, nil
	}

	if m.current.IsPaused {
		m.foldPauseLocked()
	}
	m.current.EndTime = m.now()

	duration := int(math.Round(m.current.EndTime.Sub(m.current.StartTime).Seconds()))
	persisted := store.PersistedSession{
		ID:                m.current.ID,
		Date:              m.current.StartTime.UnixMilli(),
		Duration:          duration,
		Score:             m.current.Score,
		QuestionsAnswered: m.current.QuestionsAnswered,
		CorrectAnswers:    m.current.CorrectAnswers,
	}
	if err := m.store.AppendSession(persisted); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	if err := m.updateUserAggregate(m.current.Score); err != nil {
		return nil, err
	}

	finished := m.current
	m.current = nil
	return finished, nil
}

func (m *SessionManager) updateUserAggregate(points int) error {
	user, err := m.store.User()
	if errors.Is(err, store.ErrNotFound) {
		return nil // no user registered yet
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	user.TotalSessions++
	user.TotalPoints += points
	if err := m.store.SetUser(user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SessionStats aggregates all persisted sessions. Every field is zero when
// the store is empty.
type SessionStats struct {
	AverageScore          int `json:"averageScore"`
	BestScore             int `json:"bestScore"`
	TotalSessions         int `json:"totalSessions"`
	TotalTimeSpentMinutes int `json:"totalTimeSpent"`
}

// Stats reads back the stored session list and reduces it.
func (m *SessionManager) Stats() (SessionStats, error) {
	sessions, err := m.store.Sessions()
	if err != nil {
		return SessionStats{}, err
	}
	if len(sessions) == 0 {
		return SessionStats{}, nil
	}

	totalScore := 0
	bestScore := 0
	totalSeconds := 0
	for _, s := range sessions {
		totalScore += s.Score
		if s.Score > bestScore {
			bestScore = s.Score
		}
		totalSeconds += s.Duration
	}

	return SessionStats{
		AverageScore:          int(math.Round(float64(totalScore) / float64(len(sessions)))),
		BestScore:             bestScore,
		TotalSessions:         len(sessions),
		TotalTimeSpentMinutes: int(math.Round(float64(totalSeconds) / 60)),
	}, nil
}
