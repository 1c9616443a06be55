package api

import (
	"net/http"

	"github.com/rocklingo/backend/internal/domain/achievements"
	"github.com/rocklingo/backend/internal/store"
)

// ── Response types ──────────────────────────────────────────────────────────

type ProgressResponse struct {
	Questions    map[string]store.QuestionProgress `json:"questions"`
	WordsLearned int                               `json:"words_learned"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getProgress returns the per-question answer history.
// @Summary      Question progress
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  ProgressResponse
// @Failure      500  {object}  map[string]string
// @Router       /progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progress.All()
	if err != nil {
		h.logger.Error("failed to load progress", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	learned, err := h.progress.WordsLearned()
	if err != nil {
		h.logger.Error("failed to count learned words", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, ProgressResponse{Questions: progress, WordsLearned: learned})
}

// getAchievements evaluates every achievement against stored history.
// @Summary      Achievements
// @Description  Evaluates all badges over stored sessions and progress. Newly unlocked ids are persisted for export.
// @Tags         Progress
// @Produce      json
// @Success      200  {array}   achievements.Status
// @Failure      500  {object}  map[string]string
// @Router       /achievements [get]
func (h *Handler) getAchievements(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions()
	if err != nil {
		h.logger.Error("failed to load sessions", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}
	progress, err := h.progress.All()
	if err != nil {
		h.logger.Error("failed to load progress", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load achievements")
		return
	}

	statuses := achievements.Evaluate(sessions, progress)

	var unlocked []string
	for _, st := range statuses {
		if st.Unlocked {
			unlocked = append(unlocked, st.ID)
		}
	}
	if err := h.store.SetAchievements(unlocked); err != nil {
		h.logger.Error("failed to persist unlocked achievements", "error", err)
	}

	respondJSON(w, http.StatusOK, statuses)
}
