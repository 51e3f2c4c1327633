// Package api translates HTTP requests into service calls and serializes
// the results. Handlers contain no business logic.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskbook/taskbook-api/internal/api/shared"
	"github.com/taskbook/taskbook-api/internal/domain"
	"github.com/taskbook/taskbook-api/internal/store"
)

// TaskService is the surface of the service layer the handlers consume.
type TaskService interface {
	Create(ctx context.Context, title string, completed bool) (*domain.Task, error)
	List(ctx context.Context, query store.Query) ([]*domain.Task, error)
	UpdateTitle(ctx context.Context, id int64, title string) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// CreateTaskRequest represents the request body for creating a new task.
type CreateTaskRequest struct {
	Title     string `json:"title"     validate:"required,min=1,max=100"`
	Completed bool   `json:"completed"`
}

// UpdateTaskRequest represents the request body for renaming a task.
type UpdateTaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
}

// TaskResponse represents one task in list responses, keyed by id.
type TaskResponse struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ConfirmationResponse acknowledges a successful mutation.
type ConfirmationResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), req.Title, req.Completed)
	if err != nil {
		status, msg := statusForError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ConfirmationResponse{
		Message: "task created",
		ID:      task.ID,
		Title:   task.Title,
	})
}

// ListTasks handles GET /api/tasks requests.
// The response maps each task's id to its title and completion state.
// Optional query parameters: completed, order_by, desc, limit.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query, err := listQueryFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.List(r.Context(), query)
	if err != nil {
		status, msg := statusForError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	response := make(map[string]TaskResponse, len(tasks))
	for _, task := range tasks {
		response[strconv.FormatInt(task.ID, 10)] = TaskResponse{
			Title:     task.Title,
			Completed: task.Completed,
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromURL(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.UpdateTitle(r.Context(), id, req.Title)
	if err != nil {
		status, msg := statusForError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConfirmationResponse{
		Message: "task updated",
		ID:      task.ID,
		Title:   task.Title,
	})
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := taskIDFromURL(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		status, msg := statusForError(err)
		shared.RespondWithErrorAndLog(w, r, status, msg, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ConfirmationResponse{
		Message: "task deleted",
		ID:      id,
	})
}

// taskIDFromURL parses the {id} route parameter.
func taskIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// listQueryFromRequest builds a store query from the optional list
// parameters. Unknown values are rejected rather than silently ignored.
func listQueryFromRequest(r *http.Request) (store.Query, error) {
	var query store.Query
	params := r.URL.Query()

	if v := params.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return store.Query{}, &queryParamError{"completed", v}
		}
		query.Filter.Completed = &completed
	}

	if v := params.Get("order_by"); v != "" {
		field := store.SortField(v)
		if !field.Valid() {
			return store.Query{}, &queryParamError{"order_by", v}
		}
		query.OrderBy = field
	}

	if v := params.Get("desc"); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return store.Query{}, &queryParamError{"desc", v}
		}
		query.Desc = desc
	}

	if v := params.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return store.Query{}, &queryParamError{"limit", v}
		}
		query.Limit = limit
	}

	return query, nil
}

// queryParamError reports an unparseable list query parameter.
type queryParamError struct {
	param string
	value string
}

func (e *queryParamError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for query parameter " + strconv.Quote(e.param)
}
