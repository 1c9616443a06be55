package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rocklingo/backend/internal/domain/session"
	"github.com/rocklingo/backend/internal/scoring"
	"github.com/rocklingo/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	DurationSeconds int      `json:"duration_seconds"`
	Categories      []string `json:"categories"`
}

type SessionResponse struct {
	ID                string            `json:"id"`
	StartTime         int64             `json:"startTime"`
	EndTime           *int64            `json:"endTime,omitempty"`
	DurationSeconds   int               `json:"durationSeconds"`
	Score             int               `json:"score"`
	QuestionsAnswered int               `json:"questionsAnswered"`
	CorrectAnswers    int               `json:"correctAnswers"`
	Attempts          []session.Attempt `json:"attempts"`
	Categories        []string          `json:"categories"`
	IsPaused          bool              `json:"isPaused"`
	PausedSeconds     int               `json:"pausedSeconds"`
}

type RecordAttemptRequest struct {
	QuestionID   string `json:"question_id"`
	Correct      bool   `json:"correct"`
	AttemptCount int    `json:"attempt_count"`
	Difficulty   int    `json:"difficulty"`
	QuestionType string `json:"question_type"`
}

type RecordAttemptResponse struct {
	Points int `json:"points"`
	Streak int `json:"streak"`
}

type StreakResponse struct {
	Streak int `json:"streak"`
}

func toSessionResponse(s *session.Session) SessionResponse {
	resp := SessionResponse{
		ID:                s.ID,
		StartTime:         s.StartTime.UnixMilli(),
		DurationSeconds:   int(s.PlannedDuration / time.Second),
		Score:             s.Score,
		QuestionsAnswered: s.QuestionsAnswered,
		CorrectAnswers:    s.CorrectAnswers,
		Attempts:          s.Attempts,
		Categories:        s.Categories,
		IsPaused:          s.IsPaused,
		PausedSeconds:     s.PausedSeconds,
	}
	if !s.EndTime.IsZero() {
		end := s.EndTime.UnixMilli()
		resp.EndTime = &end
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startSession begins a new practice session.
// @Summary      Start a session
// @Description  Creates a new timed practice session. An unfinished session is discarded.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      StartSessionRequest  true  "Planned duration and category filter"
// @Success      201      {object}  SessionResponse
// @Failure      400      {object}  map[string]string
// @Router       /sessions [post]
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.sessions.Start(time.Duration(req.DurationSeconds)*time.Second, req.Categories)
	if errors.Is(err, service.ErrInvalidDuration) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to start session", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(s))
}

// currentSession returns the active session.
// @Summary      Get the active session
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Failure      404  {object}  map[string]string
// @Router       /sessions/current [get]
func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current()
	if s == nil {
		respondError(w, http.StatusNotFound, "no active session")
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(s))
}

// startQuestion rearms the per-question timer.
// @Summary      Mark a question as presented
// @Description  Resets the per-question clock so the next attempt's elapsed time is measured from now.
// @Tags         Sessions
// @Success      204
// @Router       /sessions/current/question [post]
func (h *Handler) startQuestion(w http.ResponseWriter, r *http.Request) {
	h.sessions.StartQuestion()
	w.WriteHeader(http.StatusNoContent)
}

// recordAttempt scores an answer.
// @Summary      Record an answer
// @Description  Scores the answer, appends it to the session log and updates question progress. Awards 0 points when no session is active.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      RecordAttemptRequest  true  "Answer details"
// @Success      200      {object}  RecordAttemptResponse
// @Failure      400      {object}  map[string]string
// @Router       /sessions/current/attempts [post]
func (h *Handler) recordAttempt(w http.ResponseWriter, r *http.Request) {
	var req RecordAttemptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == "" {
		respondError(w, http.StatusBadRequest, "question_id is required")
		return
	}

	questionType := scoring.Type(req.QuestionType)
	if questionType == "" {
		questionType = scoring.TypeDefault
	}

	points := h.sessions.RecordAttempt(req.QuestionID, req.Correct, req.AttemptCount, req.Difficulty, questionType)

	if err := h.progress.Record(req.QuestionID, req.Correct); err != nil {
		h.logger.Error("failed to record progress", "question_id", req.QuestionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to record progress")
		return
	}

	respondJSON(w, http.StatusOK, RecordAttemptResponse{
		Points: points,
		Streak: h.sessions.CurrentStreak(),
	})
}

// pauseSession pauses the session clock.
// @Summary      Pause the session
// @Tags         Sessions
// @Success      204
// @Router       /sessions/current/pause [post]
func (h *Handler) pauseSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Pause()
	w.WriteHeader(http.StatusNoContent)
}

// resumeSession resumes a paused session.
// @Summary      Resume the session
// @Tags         Sessions
// @Success      204
// @Router       /sessions/current/resume [post]
func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Resume()
	w.WriteHeader(http.StatusNoContent)
}

// endSession finalizes and persists the active session.
// @Summary      End the session
// @Description  Stamps the end time, persists the result and updates the user totals.
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /sessions/current/end [post]
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.End()
	if err != nil {
		h.logger.Error("failed to end session", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}
	if s == nil {
		respondError(w, http.StatusNotFound, "no active session")
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(s))
}

// sessionStats aggregates all completed sessions.
// @Summary      Session statistics
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  service.SessionStats
// @Failure      500  {object}  map[string]string
// @Router       /sessions/stats [get]
func (h *Handler) sessionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sessions.Stats()
	if err != nil {
		h.logger.Error("failed to load session stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// currentStreak returns the trailing run of correct answers.
// @Summary      Current answer streak
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  StreakResponse
// @Router       /sessions/streak [get]
func (h *Handler) currentStreak(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StreakResponse{Streak: h.sessions.CurrentStreak()})
}
