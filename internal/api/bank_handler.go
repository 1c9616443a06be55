package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rocklingo/backend/internal/domain/questionbank"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	QuestionCount int    `json:"question_count"`
}

type UploadResponse struct {
	Categories int `json:"categories"`
	Questions  int `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listCategories lists the categories of the active question bank.
// @Summary      List categories
// @Tags         Questions
// @Produce      json
// @Success      200  {array}   CategoryResponse
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.bank.Categories()
	if err != nil {
		h.logger.Error("failed to load categories", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = CategoryResponse{
			ID:            cat.ID,
			Name:          cat.Name,
			Icon:          cat.Icon,
			QuestionCount: len(cat.Questions),
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// listCategoryQuestions returns all questions of one category.
// @Summary      List questions in a category
// @Tags         Questions
// @Produce      json
// @Param        categoryID  path      string  true  "Category ID"
// @Success      200         {array}   questionbank.Question
// @Failure      404         {object}  map[string]string
// @Router       /categories/{categoryID}/questions [get]
func (h *Handler) listCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")

	questions, err := h.bank.ByCategory(categoryID)
	if err != nil {
		h.logger.Error("failed to load questions", "category", categoryID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load questions")
		return
	}
	if questions == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// listDistractors returns wrong answers for a multiple-choice question.
// @Summary      Multiple-choice distractors
// @Description  Picks wrong French answers from the same category.
// @Tags         Questions
// @Produce      json
// @Param        categoryID  path      string  true   "Category ID"
// @Param        french      query     string  true   "The correct French answer to exclude"
// @Param        count       query     int     false  "Number of distractors (default 3)"
// @Success      200         {array}   string
// @Failure      400         {object}  map[string]string
// @Router       /categories/{categoryID}/distractors [get]
func (h *Handler) listDistractors(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	correct := r.URL.Query().Get("french")
	if correct == "" {
		respondError(w, http.StatusBadRequest, "french query parameter is required")
		return
	}

	count := 3
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "count must be a positive integer")
			return
		}
		count = n
	}

	distractors, err := h.bank.Distractors(correct, categoryID, count)
	if err != nil {
		h.logger.Error("failed to pick distractors", "category", categoryID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to pick distractors")
		return
	}
	if distractors == nil {
		distractors = []string{}
	}
	respondJSON(w, http.StatusOK, distractors)
}

// randomQuestions draws a randomized question subset.
// @Summary      Random questions
// @Tags         Questions
// @Produce      json
// @Param        count       query     int     false  "Maximum number of questions"
// @Param        categories  query     string  false  "Comma-separated category ids"
// @Success      200         {array}   questionbank.Question
// @Failure      400         {object}  map[string]string
// @Router       /questions/random [get]
func (h *Handler) randomQuestions(w http.ResponseWriter, r *http.Request) {
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "count must be a non-negative integer")
			return
		}
		count = n
	}

	var categoryIDs []string
	if v := r.URL.Query().Get("categories"); v != "" {
		categoryIDs = strings.Split(v, ",")
	}

	questions, err := h.bank.Random(count, categoryIDs)
	if err != nil {
		h.logger.Error("failed to draw questions", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to draw questions")
		return
	}
	if questions == nil {
		questions = []questionbank.Question{}
	}
	respondJSON(w, http.StatusOK, questions)
}

// uploadCustomBank stores a custom question bank that overrides the default.
// @Summary      Upload a custom question bank
// @Accept       json
// @Produce      json
// @Tags         Questions
// @Success      201  {object}  UploadResponse
// @Failure      400  {object}  map[string]string
// @Router       /questions/custom [post]
func (h *Handler) uploadCustomBank(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := h.bank.UploadCustom(raw); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bank, err := h.bank.All()
	if err != nil {
		h.logger.Error("failed to reload bank", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to reload bank")
		return
	}

	respondJSON(w, http.StatusCreated, UploadResponse{
		Categories: len(bank.Categories),
		Questions:  bank.TotalQuestions(),
	})
}
