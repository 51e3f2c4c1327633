// Package service implements the application's business operations on top
// of the store layer. Services own the transaction boundary: every mutating
// operation runs inside exactly one transaction, while reads go straight to
// the connection pool.
package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/taskbook/taskbook-api/internal/domain"
	"github.com/taskbook/taskbook-api/internal/store"
)

// TaskService coordinates task operations against the store, wrapping
// mutations in transactions so a failure retains none of their effects.
type TaskService struct {
	db        *sql.DB
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given database handle
// and store. If logger is nil, a default logger will be used.
func NewTaskService(db *sql.DB, taskStore store.TaskStore, log *slog.Logger) *TaskService {
	if db == nil {
		panic("db cannot be nil")
	}
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskService{
		db:        db,
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_service")),
	}
}

// Create persists a new task inside its own transaction boundary.
func (s *TaskService) Create(
	ctx context.Context,
	title string,
	completed bool,
) (*domain.Task, error) {
	var created *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		created, err = s.taskStore.WithTx(tx).Create(ctx, title, completed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateMultiple persists a batch of tasks atomically: the batch is
// validated up front and either every task is created or none are.
func (s *TaskService) CreateMultiple(
	ctx context.Context,
	params []store.CreateParams,
) ([]*domain.Task, error) {
	var created []*domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		created, err = s.taskStore.WithTx(tx).CreateMultiple(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get retrieves a task by id.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, id)
}

// List returns the tasks matching the given query.
func (s *TaskService) List(ctx context.Context, query store.Query) ([]*domain.Task, error) {
	return s.taskStore.FindAll(ctx, query)
}

// Count returns the number of tasks matching the filter.
func (s *TaskService) Count(ctx context.Context, filter store.Filter) (int64, error) {
	return s.taskStore.Count(ctx, filter)
}

// Exists reports whether any task matches the filter.
func (s *TaskService) Exists(ctx context.Context, filter store.Filter) (bool, error) {
	return s.taskStore.Exists(ctx, filter)
}

// UpdateTitle renames the task with the given id.
// Returns store.ErrTaskNotFound if the task does not exist and validation
// errors if the new title violates entity invariants.
func (s *TaskService) UpdateTitle(
	ctx context.Context,
	id int64,
	title string,
) (*domain.Task, error) {
	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		updated, err = s.taskStore.WithTx(tx).Update(ctx, id, store.UpdateParams{Title: &title})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetCompleted flips the completion state of every task matching the
// filter and returns how many were changed.
func (s *TaskService) SetCompleted(
	ctx context.Context,
	filter store.Filter,
	completed bool,
) (int64, error) {
	var count int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		count, err = s.taskStore.WithTx(tx).
			UpdateMany(ctx, filter, store.UpdateParams{Completed: &completed})
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the task with the given id.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
}

// DeleteMany removes every task matching the filter and returns how many
// were deleted.
func (s *TaskService) DeleteMany(ctx context.Context, filter store.Filter) (int64, error) {
	var count int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		count, err = s.taskStore.WithTx(tx).DeleteMany(ctx, filter)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
