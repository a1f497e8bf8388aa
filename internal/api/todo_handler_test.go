package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmsato/todoapi/internal/api"
	"github.com/rmsato/todoapi/internal/api/middleware"
	"github.com/rmsato/todoapi/internal/cache"
	"github.com/rmsato/todoapi/internal/domain"
	"github.com/rmsato/todoapi/internal/mocks"
	"github.com/rmsato/todoapi/internal/service"
)

type todoTestEnv struct {
	router    chi.Router
	userStore *mocks.MockUserStore
	todoStore *mocks.MockTodoStore
}

func newTodoTestEnv(t *testing.T) *todoTestEnv {
	t.Helper()

	env := &todoTestEnv{
		userStore: mocks.NewMockUserStore(),
		todoStore: mocks.NewMockTodoStore(),
	}

	users := service.NewUserService(env.userStore, &mocks.MockPasswordHasher{}, nil)
	todos := service.NewTodoService(env.todoStore, cache.NewMemory(), 15*time.Minute, nil)
	handler := api.NewTodoHandler(todos, users)
	authMiddleware := middleware.NewAuthMiddleware(mocks.NewMockJWTService())

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/api/v1/todos/", handler.List)
		r.Post("/api/v1/todos/", handler.Create)
		r.Get("/api/v1/todos/stats/", handler.Stats)
		r.Get("/api/v1/todos/progress-stats/", handler.ProgressStats)
		r.Get("/api/v1/todos/{id}/", handler.Get)
		r.Put("/api/v1/todos/{id}/", handler.Update)
		r.Patch("/api/v1/todos/{id}/", handler.Patch)
		r.Delete("/api/v1/todos/{id}/", handler.Delete)
	})
	env.router = router

	return env
}

// addUser seeds an account and returns it. Requests authenticate with
// the mock bearer token "access:<userID>".
func (env *todoTestEnv) addUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "password123", "Ada", "")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password123"
	user.Password = ""
	require.NoError(t, env.userStore.Create(context.Background(), user))
	return user
}

func (env *todoTestEnv) do(t *testing.T, userID uuid.UUID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer access:"+userID.String())

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func (env *todoTestEnv) createTodo(t *testing.T, userID uuid.UUID, title, priority string, progress int) api.TodoResponse {
	t.Helper()

	recorder := env.do(t, userID, http.MethodPost, "/api/v1/todos/", map[string]interface{}{
		"todo_title": title,
		"priority":   priority,
		"progress":   progress,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestTodoHandler_CreateAndGet(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")

	created := env.createTodo(t, user.ID, "Write tests", "HIGH", 25)
	assert.Equal(t, "Write tests", created.TodoTitle)
	assert.Equal(t, "ada@example.com", created.User)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
	assert.Equal(t, 25, created.Progress)

	recorder := env.do(t, user.ID, http.MethodGet, "/api/v1/todos/"+created.ID.String()+"/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestTodoHandler_CreateDefaults(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")

	recorder := env.do(t, user.ID, http.MethodPost, "/api/v1/todos/", map[string]interface{}{
		"todo_title": "Untagged",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, domain.PriorityMedium, resp.Priority)
	assert.Equal(t, 0, resp.Progress)
}

func TestTodoHandler_CreateValidation(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"priority": "LOW"}},
		{"invalid priority", map[string]interface{}{"todo_title": "Task", "priority": "URGENT"}},
		{"progress above range", map[string]interface{}{"todo_title": "Task", "progress": 101}},
		{"negative progress", map[string]interface{}{"todo_title": "Task", "progress": -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := env.do(t, user.ID, http.MethodPost, "/api/v1/todos/", tc.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestTodoHandler_OwnerIsolation(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	owner := env.addUser(t, "owner@example.com")
	stranger := env.addUser(t, "stranger@example.com")
	created := env.createTodo(t, owner.ID, "Private", "LOW", 0)

	path := "/api/v1/todos/" + created.ID.String() + "/"

	assert.Equal(t, http.StatusNotFound, env.do(t, stranger.ID, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, stranger.ID, http.MethodPut, path, map[string]interface{}{
		"todo_title": "Stolen",
	}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, stranger.ID, http.MethodPatch, path, map[string]interface{}{
		"progress": 1,
	}).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, stranger.ID, http.MethodDelete, path, nil).Code)

	// The owner's todo is untouched.
	recorder := env.do(t, owner.ID, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var got api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	assert.Equal(t, "Private", got.TodoTitle)
}

func TestTodoHandler_List(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")
	other := env.addUser(t, "other@example.com")
	env.createTodo(t, user.ID, "Mine", "LOW", 0)
	env.createTodo(t, other.ID, "Theirs", "LOW", 0)

	recorder := env.do(t, user.ID, http.MethodGet, "/api/v1/todos/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var todos []api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "Mine", todos[0].TodoTitle)
	assert.Equal(t, "ada@example.com", todos[0].User)
}

func TestTodoHandler_UpdateAndPatch(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")
	created := env.createTodo(t, user.ID, "Draft", "LOW", 10)
	path := "/api/v1/todos/" + created.ID.String() + "/"

	recorder := env.do(t, user.ID, http.MethodPut, path, map[string]interface{}{
		"todo_title": "Final",
		"priority":   "HIGH",
		"progress":   90,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, "Final", updated.TodoTitle)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, 90, updated.Progress)

	recorder = env.do(t, user.ID, http.MethodPatch, path, map[string]interface{}{
		"progress": 100,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var patched api.TodoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &patched))
	assert.Equal(t, "Final", patched.TodoTitle, "patch must not clear unset fields")
	assert.Equal(t, 100, patched.Progress)
}

func TestTodoHandler_Delete(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")
	created := env.createTodo(t, user.ID, "Done", "LOW", 100)
	path := "/api/v1/todos/" + created.ID.String() + "/"

	recorder := env.do(t, user.ID, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(t, user.ID, http.MethodGet, path, nil).Code)
}

func TestTodoHandler_InvalidID(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")

	recorder := env.do(t, user.ID, http.MethodGet, "/api/v1/todos/not-a-uuid/", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTodoHandler_Stats(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)
	user := env.addUser(t, "ada@example.com")
	env.createTodo(t, user.ID, "A", "HIGH", 5)
	env.createTodo(t, user.ID, "B", "HIGH", 45)
	env.createTodo(t, user.ID, "C", "LOW", 100)

	t.Run("priority stats", func(t *testing.T) {
		recorder := env.do(t, user.ID, http.MethodGet, "/api/v1/todos/stats/", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var stats []domain.PriorityStat
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
		assert.Equal(t, []domain.PriorityStat{
			{Priority: domain.PriorityHigh, Count: 2},
			{Priority: domain.PriorityLow, Count: 1},
		}, stats)
	})

	t.Run("progress stats", func(t *testing.T) {
		recorder := env.do(t, user.ID, http.MethodGet, "/api/v1/todos/progress-stats/", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var stats map[string]int
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
		assert.Equal(t, map[string]int{
			"range_0_20":   1,
			"range_21_40":  0,
			"range_41_60":  1,
			"range_61_80":  0,
			"range_81_100": 1,
		}, stats)
	})

	t.Run("empty stats for a fresh account", func(t *testing.T) {
		fresh := env.addUser(t, "fresh@example.com")

		recorder := env.do(t, fresh.ID, http.MethodGet, "/api/v1/todos/stats/", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", recorder.Body.String())
	})
}

func TestTodoHandler_RequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTodoTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos/", nil)
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
