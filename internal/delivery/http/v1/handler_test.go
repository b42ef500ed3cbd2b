package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-taskboard/internal/models"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/storage"
	"github.com/adanyl0v/go-taskboard/internal/views"
)

type testServer struct {
	router *gin.Engine
	store  services.TaskStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	slot := storage.NewMemorySlot()
	keys := storage.NewKeys("test")
	prefs := storage.NewPreferenceRepository(logger, slot, keys)

	store := services.NewTaskStore(logger, storage.NewTaskRepository(logger, slot, keys.Tasks))
	store.Load(context.Background())

	h := New(
		logger,
		store,
		services.NewThemeService(logger, prefs),
		services.NewNotificationService(logger, store, prefs),
	)

	router := gin.New()
	router.Use(h.HandleRequestLog)
	RegisterRoutes(router.Group("/api/v1"), h)

	return &testServer{router: router, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createTask(t *testing.T, body map[string]any) models.Task {
	t.Helper()
	w := s.do(t, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Task](t, w)
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestServer(t)

	task := s.createTask(t, map[string]any{
		"title":    "Book flights",
		"dueDate":  "2024-08-01",
		"priority": "high",
		"subtasks": []map[string]any{{"text": "compare prices"}},
	})
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, "2024-08-01", task.DueDate.String())
	require.Len(t, task.Subtasks, 1)

	w := s.do(t, http.MethodGet, "/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, task, decode[models.Task](t, w))

	w = s.do(t, http.MethodGet, "/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"priority": "low"}},
		{"blank title", map[string]any{"title": "   "}},
		{"bad priority", map[string]any{"title": "x", "priority": "urgent"}},
		{"bad date", map[string]any{"title": "x", "dueDate": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Empty(t, s.store.Tasks())
}

func TestGetTasksView(t *testing.T) {
	s := newTestServer(t)
	s.createTask(t, map[string]any{"title": "Write report", "dueDate": "2024-05-02"})
	s.createTask(t, map[string]any{"title": "Read report", "dueDate": "2024-05-01"})
	s.createTask(t, map[string]any{"title": "Groceries"})

	w := s.do(t, http.MethodGet, "/tasks?search=REPORT&sort=dueDate&dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decode[[]models.Task](t, w)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Read report", tasks[0].Title)
	assert.Equal(t, "Write report", tasks[1].Title)

	w = s.do(t, http.MethodGet, "/tasks?sort=colour", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	task := s.createTask(t, map[string]any{"title": "draft", "dueDate": "2024-01-01"})

	w := s.do(t, http.MethodPatch, "/tasks/"+task.ID, map[string]any{
		"title":   "final",
		"dueDate": "",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[models.Task](t, w)
	assert.Equal(t, "final", updated.Title)
	assert.Nil(t, updated.DueDate)

	w = s.do(t, http.MethodPatch, "/tasks/"+task.ID, map[string]any{"title": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/tasks/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleAndPriorityAndDelete(t *testing.T) {
	s := newTestServer(t)
	task := s.createTask(t, map[string]any{"title": "x"})

	w := s.do(t, http.MethodPost, "/tasks/"+task.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCompleted, decode[models.Task](t, w).Status)

	w = s.do(t, http.MethodPut, "/tasks/"+task.ID+"/priority", map[string]any{"priority": "low"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PriorityLow, decode[models.Task](t, w).Priority)

	w = s.do(t, http.MethodPut, "/tasks/"+task.ID+"/priority", map[string]any{"priority": "urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, s.store.Tasks())

	w = s.do(t, http.MethodDelete, "/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubtaskRoutes(t *testing.T) {
	s := newTestServer(t)
	task := s.createTask(t, map[string]any{"title": "parent"})

	w := s.do(t, http.MethodPost, "/tasks/"+task.ID+"/subtasks", map[string]any{"text": "child"})
	require.Equal(t, http.StatusCreated, w.Code)
	subtask := decode[models.Subtask](t, w)

	w = s.do(t, http.MethodPost, "/tasks/"+task.ID+"/subtasks/"+subtask.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.Task](t, w).Subtasks[0].Completed)

	w = s.do(t, http.MethodPost, "/tasks/"+task.ID+"/subtasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/tasks/"+task.ID+"/subtasks/"+subtask.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[models.Task](t, w).Subtasks)
}

func TestReorderAndSetTasks(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/tasks", []map[string]any{
		{"id": "A", "title": "A"},
		{"id": "B", "title": "B"},
		{"id": "C", "title": "C"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPut, "/tasks/order", map[string]any{"ids": []string{"C", "A"}})
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decode[[]models.Task](t, w)
	require.Len(t, tasks, 3)
	assert.Equal(t, "C", tasks[0].ID)
	assert.Equal(t, "A", tasks[1].ID)
	assert.Equal(t, "B", tasks[2].ID)

	w = s.do(t, http.MethodPut, "/tasks", []map[string]any{{"id": "X"}, {"id": "X"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionRoutes(t *testing.T) {
	s := newTestServer(t)
	a := s.createTask(t, map[string]any{"title": "a"})
	b := s.createTask(t, map[string]any{"title": "b"})

	w := s.do(t, http.MethodPost, "/selection/toggle/"+a.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{a.ID}, decode[selectionResponse](t, w).IDs)

	w = s.do(t, http.MethodPost, "/selection", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{a.ID, b.ID}, decode[selectionResponse](t, w).IDs)

	w = s.do(t, http.MethodPost, "/selection/priority", map[string]any{"priority": "high"})
	require.Equal(t, http.StatusOK, w.Code)
	for _, task := range decode[[]models.Task](t, w) {
		assert.Equal(t, models.PriorityHigh, task.Priority)
	}

	w = s.do(t, http.MethodGet, "/selection", nil)
	assert.Empty(t, decode[selectionResponse](t, w).IDs)

	s.do(t, http.MethodPost, "/selection", map[string]any{"ids": []string{b.ID}})
	w = s.do(t, http.MethodPost, "/selection/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode[[]models.Task](t, w)
	assert.Equal(t, models.StatusPending, tasks[0].Status)
	assert.Equal(t, models.StatusCompleted, tasks[1].Status)

	s.do(t, http.MethodPost, "/selection/toggle/"+a.ID, nil)
	w = s.do(t, http.MethodDelete, "/selection/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks = decode[[]models.Task](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	w = s.do(t, http.MethodPost, "/selection/toggle/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCountsAndNotifications(t *testing.T) {
	s := newTestServer(t)
	s.createTask(t, map[string]any{"title": "today", "dueDate": "2024-03-10"})
	s.createTask(t, map[string]any{"title": "soon", "dueDate": "2024-03-12"})
	s.createTask(t, map[string]any{"title": "late", "dueDate": "2024-03-01"})

	w := s.do(t, http.MethodGet, "/counts?today=2024-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, views.Counts{All: 3, Today: 1, Upcoming: 1, Overdue: 1}, decode[views.Counts](t, w))

	w = s.do(t, http.MethodGet, "/counts?today=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/notifications?today=2024-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]views.Notice](t, w), 2)

	w = s.do(t, http.MethodGet, "/notifications?today=2024-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]views.Notice](t, w))
}

func TestExportRoutes(t *testing.T) {
	s := newTestServer(t)
	s.createTask(t, map[string]any{"title": "a, b"})

	w := s.do(t, http.MethodGet, "/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "tasks.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,title,dueDate,priority,status,notes,subtasks,repeat\n"))
	assert.Contains(t, w.Body.String(), `"a, b"`)

	w = s.do(t, http.MethodGet, "/export.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tasks:")
	assert.Contains(t, w.Body.String(), "priority: medium")
}

func TestThemeRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/theme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ThemeDark, decode[themeResponse](t, w).Theme)

	w = s.do(t, http.MethodPost, "/theme/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ThemeLight, decode[themeResponse](t, w).Theme)

	w = s.do(t, http.MethodPut, "/theme", map[string]any{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ThemeDark, decode[themeResponse](t, w).Theme)

	w = s.do(t, http.MethodPut, "/theme", map[string]any{"theme": "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
