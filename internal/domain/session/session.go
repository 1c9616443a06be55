package session

import "time"

// Attempt records one answered (or skipped) question. Created exactly once,
// never mutated afterwards.
type Attempt struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	SecondsSpent  int    `json:"timeSpent"`
	AttemptNumber int    `json:"attemptCount"`
	Points        int    `json:"points"`
}

// Session is one timed practice run, tracked in memory until finalized.
type Session struct {
	ID                string        `json:"id"`
	StartTime         time.Time     `json:"startTime"`
	EndTime           time.Time     `json:"endTime,omitzero"`
	PlannedDuration   time.Duration `json:"plannedDuration"`
	Score             int           `json:"score"`
	QuestionsAnswered int           `json:"questionsAnswered"`
	CorrectAnswers    int           `json:"correctAnswers"`
	Attempts          []Attempt     `json:"attempts"`
	Categories        []string      `json:"categories"`
	IsPaused          bool          `json:"isPaused"`
	PausedSeconds     int           `json:"pausedSeconds"`
}

// CurrentStreak is the trailing run of correct answers: scan backwards from
// the most recent attempt until the first incorrect one.
func (s *Session) CurrentStreak() int {
	streak := 0
	for i := len(s.Attempts) - 1; i >= 0; i-- {
		if !s.Attempts[i].Correct {
			break
		}
		streak++
	}
	return streak
}

// Clone returns a deep copy safe to hand to callers while the manager keeps
// mutating the original.
func (s *Session) Clone() *Session {
	c := *s
	c.Attempts = make([]Attempt, len(s.Attempts))
	copy(c.Attempts, s.Attempts)
	c.Categories = make([]string, len(s.Categories))
	copy(c.Categories, s.Categories)
	return &c
}
