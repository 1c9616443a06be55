package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux using Go 1.22 method
// patterns.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// User
	mux.HandleFunc("POST /user", h.createUser)
	mux.HandleFunc("GET /user", h.getUser)

	// Question bank
	mux.HandleFunc("GET /categories", h.listCategories)
	mux.HandleFunc("GET /categories/{categoryID}/questions", h.listCategoryQuestions)
	mux.HandleFunc("GET /categories/{categoryID}/distractors", h.listDistractors)
	mux.HandleFunc("GET /questions/random", h.randomQuestions)
	mux.HandleFunc("POST /questions/custom", h.uploadCustomBank)

	// Sessions
	mux.HandleFunc("POST /sessions", h.startSession)
	mux.HandleFunc("GET /sessions/current", h.currentSession)
	mux.HandleFunc("POST /sessions/current/question", h.startQuestion)
	mux.HandleFunc("POST /sessions/current/attempts", h.recordAttempt)
	mux.HandleFunc("POST /sessions/current/pause", h.pauseSession)
	mux.HandleFunc("POST /sessions/current/resume", h.resumeSession)
	mux.HandleFunc("POST /sessions/current/end", h.endSession)
	mux.HandleFunc("GET /sessions/stats", h.sessionStats)
	mux.HandleFunc("GET /sessions/streak", h.currentStreak)

	// Progress and achievements
	mux.HandleFunc("GET /progress", h.getProgress)
	mux.HandleFunc("GET /achievements", h.getAchievements)

	// Backup
	mux.HandleFunc("GET /export", h.exportData)
	mux.HandleFunc("POST /import", h.importData)
}
