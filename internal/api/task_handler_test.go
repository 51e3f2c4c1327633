package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbook/taskbook-api/internal/api"
	"github.com/taskbook/taskbook-api/internal/domain"
	"github.com/taskbook/taskbook-api/internal/store"
)

// stubTaskService is a hand-rolled TaskService stub whose behavior each
// test configures through function fields.
type stubTaskService struct {
	createFn      func(ctx context.Context, title string, completed bool) (*domain.Task, error)
	listFn        func(ctx context.Context, query store.Query) ([]*domain.Task, error)
	updateTitleFn func(ctx context.Context, id int64, title string) (*domain.Task, error)
	deleteFn      func(ctx context.Context, id int64) error
}

func (s *stubTaskService) Create(
	ctx context.Context,
	title string,
	completed bool,
) (*domain.Task, error) {
	return s.createFn(ctx, title, completed)
}

func (s *stubTaskService) List(ctx context.Context, query store.Query) ([]*domain.Task, error) {
	return s.listFn(ctx, query)
}

func (s *stubTaskService) UpdateTitle(
	ctx context.Context,
	id int64,
	title string,
) (*domain.Task, error) {
	return s.updateTitleFn(ctx, id, title)
}

func (s *stubTaskService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

// newTestRouter mounts the handler on a chi router so URL parameters
// resolve the same way they do in production.
func newTestRouter(svc api.TaskService) http.Handler {
	h := api.NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks", h.ListTasks)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
	})
	return r
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	t.Run("creates a task and confirms the title used", func(t *testing.T) {
		svc := &stubTaskService{
			createFn: func(ctx context.Context, title string, completed bool) (*domain.Task, error) {
				return &domain.Task{ID: 7, Title: title, Completed: completed}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/tasks",
			strings.NewReader(`{"title": "Buy milk"}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Message string `json:"message"`
			ID      int64  `json:"id"`
			Title   string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "task created", resp.Message)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "Buy milk", resp.Title)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		svc := &stubTaskService{}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{not json`))
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an empty title before reaching the service", func(t *testing.T) {
		svc := &stubTaskService{
			createFn: func(ctx context.Context, title string, completed bool) (*domain.Task, error) {
				t.Fatal("service must not be called for an invalid request")
				return nil, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/tasks",
			strings.NewReader(`{"title": ""}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps a domain validation failure to 400", func(t *testing.T) {
		svc := &stubTaskService{
			createFn: func(ctx context.Context, title string, completed bool) (*domain.Task, error) {
				return nil, domain.ErrTaskTitleTooLong
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/tasks",
			strings.NewReader(`{"title": "fine here, rejected deeper"}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	t.Run("returns tasks keyed by id", func(t *testing.T) {
		svc := &stubTaskService{
			listFn: func(ctx context.Context, query store.Query) ([]*domain.Task, error) {
				return []*domain.Task{
					{ID: 1, Title: "Buy milk", Completed: false},
					{ID: 2, Title: "Write code", Completed: true},
				}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]struct {
			Title     string `json:"title"`
			Completed bool   `json:"completed"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Buy milk", resp["1"].Title)
		assert.False(t, resp["1"].Completed)
		assert.Equal(t, "Write code", resp["2"].Title)
		assert.True(t, resp["2"].Completed)
	})

	t.Run("forwards list parameters to the service", func(t *testing.T) {
		var captured store.Query
		svc := &stubTaskService{
			listFn: func(ctx context.Context, query store.Query) ([]*domain.Task, error) {
				captured = query
				return []*domain.Task{}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodGet,
			"/api/tasks?completed=true&order_by=title&desc=true&limit=5",
			nil,
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured.Filter.Completed)
		assert.True(t, *captured.Filter.Completed)
		assert.Equal(t, store.SortByTitle, captured.OrderBy)
		assert.True(t, captured.Desc)
		assert.Equal(t, 5, captured.Limit)
	})

	t.Run("rejects unparseable parameters", func(t *testing.T) {
		svc := &stubTaskService{
			listFn: func(ctx context.Context, query store.Query) ([]*domain.Task, error) {
				t.Fatal("service must not be called for an invalid query")
				return nil, nil
			},
		}

		for _, target := range []string{
			"/api/tasks?completed=sometimes",
			"/api/tasks?order_by=mood",
			"/api/tasks?limit=-3",
		} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, target, nil)
			newTestRouter(svc).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
		}
	})

	t.Run("empty store yields an empty object", func(t *testing.T) {
		svc := &stubTaskService{
			listFn: func(ctx context.Context, query store.Query) ([]*domain.Task, error) {
				return []*domain.Task{}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{}`, rec.Body.String())
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	t.Run("renames the task", func(t *testing.T) {
		svc := &stubTaskService{
			updateTitleFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
				assert.Equal(t, int64(3), id)
				return &domain.Task{ID: id, Title: title, Completed: true}, nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPut,
			"/api/tasks/3",
			strings.NewReader(`{"title": "Renamed"}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message string `json:"message"`
			ID      int64  `json:"id"`
			Title   string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "task updated", resp.Message)
		assert.Equal(t, "Renamed", resp.Title)
	})

	t.Run("signals not found for an unknown id", func(t *testing.T) {
		svc := &stubTaskService{
			updateTitleFn: func(ctx context.Context, id int64, title string) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPut,
			"/api/tasks/99",
			strings.NewReader(`{"title": "Renamed"}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		svc := &stubTaskService{}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(
			http.MethodPut,
			"/api/tasks/abc",
			strings.NewReader(`{"title": "Renamed"}`),
		)
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("deletes the task", func(t *testing.T) {
		var deletedID int64
		svc := &stubTaskService{
			deleteFn: func(ctx context.Context, id int64) error {
				deletedID = id
				return nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/12", nil)
		newTestRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(12), deletedID)
	})

	t.Run("signals not found for an unknown id", func(t *testing.T) {
		svc := &stubTaskService{
			deleteFn: func(ctx context.Context, id int64) error {
				return store.ErrTaskNotFound
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/99", nil)
		newTestRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found", resp.Error)
	})
}
