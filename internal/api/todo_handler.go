package api

import (
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/service"
)

// TodoHandler handles the todo CRUD and statistics endpoints. All of
// them require authentication; the owner is always the authenticated
// user, so one account can never see or touch another's todos.
type TodoHandler struct {
	todos *service.TodoService
	users *service.UserService
}

// NewTodoHandler creates a new TodoHandler with the given dependencies.
func NewTodoHandler(todos *service.TodoService, users *service.UserService) *TodoHandler {
	return &TodoHandler{todos: todos, users: users}
}

// List handles GET /api/v1/todos/.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todos, err := h.todos.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTodoListResponse(todos, user.Email))
}

// Create handles POST /api/v1/todos/.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req TodoCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	progress := 0
	if req.Progress != nil {
		progress = *req.Progress
	}

	todo, err := h.todos.Create(r.Context(), userID, req.TodoTitle, domain.Priority(req.Priority), progress)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTodoResponse(todo, user.Email))
}

// Get handles GET /api/v1/todos/{id}/.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, todoID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todos.Get(r.Context(), userID, todoID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTodoResponse(todo, user.Email))
}

// Update handles PUT /api/v1/todos/{id}/ as a full update.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, todoID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req TodoCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	progress := 0
	if req.Progress != nil {
		progress = *req.Progress
	}

	todo, err := h.todos.Replace(r.Context(), userID, todoID, req.TodoTitle, domain.Priority(req.Priority), progress)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTodoResponse(todo, user.Email))
}

// Patch handles PATCH /api/v1/todos/{id}/ as a partial update.
func (h *TodoHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, todoID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req TodoPatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	patch := domain.TodoPatch{
		Title:    req.TodoTitle,
		Progress: req.Progress,
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		patch.Priority = &priority
	}

	todo, err := h.todos.Patch(r.Context(), userID, todoID, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTodoResponse(todo, user.Email))
}

// Delete handles DELETE /api/v1/todos/{id}/.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, todoID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), userID, todoID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/todos/stats/.
func (h *TodoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	stats, err := h.todos.PriorityStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if stats == nil {
		stats = []domain.PriorityStat{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ProgressStats handles GET /api/v1/todos/progress-stats/.
func (h *TodoHandler) ProgressStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication credentials were not provided.")
		return
	}

	stats, err := h.todos.ProgressStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
