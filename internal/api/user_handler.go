package api

import (
	"net/http"
	"time"

	"github.com/rocklingo/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateUserRequest struct {
	Name string `json:"name"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createUser registers the practicing user.
// @Summary      Create the user
// @Description  Registers the user profile that session results accumulate on.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request  body      CreateUserRequest  true  "User name"
// @Success      201      {object}  store.User
// @Failure      400      {object}  map[string]string
// @Router       /user [post]
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := &store.User{
		Name:      req.Name,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := h.store.SetUser(user); err != nil {
		h.logger.Error("failed to save user", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// getUser returns the registered user.
// @Summary      Get the user
// @Tags         User
// @Produce      json
// @Success      200  {object}  store.User
// @Failure      404  {object}  map[string]string
// @Router       /user [get]
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.User()
	if h.handleStoreError(w, err, "user") {
		return
	}
	respondJSON(w, http.StatusOK, user)
}
