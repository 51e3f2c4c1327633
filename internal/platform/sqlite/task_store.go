package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskbook/taskbook-api/internal/domain"
	"github.com/taskbook/taskbook-api/internal/platform/logger"
	"github.com/taskbook/taskbook-api/internal/store"
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, title, completed"

// SQLiteTaskStore implements the store.TaskStore interface
// using a SQLite database file as the storage backend.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new SQLite implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// WithTx returns a new store instance bound to the provided transaction.
// The transaction is created and managed by the caller (typically a service).
func (s *SQLiteTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &SQLiteTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It validates the title and inserts a new task, letting the database
// assign the next id in the primary-key sequence.
func (s *SQLiteTaskStore) Create(
	ctx context.Context,
	title string,
	completed bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, completed)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `INSERT INTO tasks (title, completed) VALUES (?, ?)`

	result, err := s.db.ExecContext(ctx, query, task.Title, task.Completed)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert failed", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Error("failed to read new task id",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "could not determine new id", err)
	}
	task.ID = id

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// CreateMultiple implements store.TaskStore.CreateMultiple
// Every entry is validated before any row is written, so a validation
// failure aborts the whole batch with nothing persisted. For atomicity
// against durability failures mid-batch, run it inside a transaction
// (see store.RunInTransaction).
func (s *SQLiteTaskStore) CreateMultiple(
	ctx context.Context,
	params []store.CreateParams,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate-then-apply: reject the batch before touching the database.
	tasks := make([]*domain.Task, 0, len(params))
	for i, p := range params {
		task, err := domain.NewTask(p.Title, p.Completed)
		if err != nil {
			log.Warn("task validation failed during bulk create",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}

	query := `INSERT INTO tasks (title, completed) VALUES (?, ?)`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		log.Error("failed to prepare bulk insert",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "bulk create", "prepare failed", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close statement", slog.String("error", err.Error()))
		}
	}()

	for i, task := range tasks {
		result, err := stmt.ExecContext(ctx, task.Title, task.Completed)
		if err != nil {
			log.Error("failed to insert task in bulk create",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "bulk create", "insert failed", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			log.Error("failed to read new task id in bulk create",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "bulk create", "could not determine new id", err)
		}
		task.ID = id
	}

	log.Info("tasks created successfully",
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.queryOne(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// FindByID implements store.TaskStore.FindByID
// Absence is a normal outcome: it returns (nil, nil) when no task has
// the given id.
func (s *SQLiteTaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if errors.Is(err, store.ErrTaskNotFound) {
		return nil, nil
	}
	return task, err
}

// FindFirst implements store.TaskStore.FindFirst
// It returns the first matching task in insertion (id) order, or
// (nil, nil) when nothing matches.
func (s *SQLiteTaskStore) FindFirst(
	ctx context.Context,
	filter store.Filter,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)
	query := "SELECT " + taskColumns + " FROM tasks" + where + " ORDER BY id ASC LIMIT 1"

	task, err := s.queryOne(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error("failed to find first task",
			slog.String("error", err.Error()))
		return nil, err
	}

	return task, nil
}

// FindAll implements store.TaskStore.FindAll
// The result reflects the store state at call time and is returned as an
// empty slice, not nil, when nothing matches.
func (s *SQLiteTaskStore) FindAll(
	ctx context.Context,
	query store.Query,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	orderBy, err := buildOrderBy(query)
	if err != nil {
		return nil, err
	}

	where, args := buildWhere(query.Filter)
	sqlQuery := "SELECT " + taskColumns + " FROM tasks" + where + orderBy
	if query.Limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Completed); err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found tasks",
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Count implements store.TaskStore.Count
func (s *SQLiteTaskStore) Count(ctx context.Context, filter store.Filter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()))
		return 0, err
	}

	return count, nil
}

// Exists implements store.TaskStore.Exists
// It checks for a match without materializing a row.
func (s *SQLiteTaskStore) Exists(ctx context.Context, filter store.Filter) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)

	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM tasks"+where+")",
		args...,
	).Scan(&exists)
	if err != nil {
		log.Error("failed to check task existence",
			slog.String("error", err.Error()))
		return false, err
	}

	return exists, nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns validation errors if the changes violate entity invariants;
// nothing is modified in that case.
func (s *SQLiteTaskStore) Update(
	ctx context.Context,
	id int64,
	params store.UpdateParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, args, err := buildSet(params)
	if err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}
	if set == "" {
		// Nothing to change; still surface absence of the target row.
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx, "UPDATE tasks SET "+set+" WHERE id = ?", args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}

	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", id))
	return task, nil
}

// UpdateMany implements store.TaskStore.UpdateMany
// The changes are validated once up front and applied to all matches or
// none. An empty match set returns 0 without error.
func (s *SQLiteTaskStore) UpdateMany(
	ctx context.Context,
	filter store.Filter,
	params store.UpdateParams,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, args, err := buildSet(params)
	if err != nil {
		log.Warn("task validation failed during bulk update",
			slog.String("error", err.Error()))
		return 0, err
	}
	if set == "" {
		return 0, nil
	}

	where, whereArgs := buildWhere(filter)
	args = append(args, whereArgs...)

	result, err := s.db.ExecContext(ctx, "UPDATE tasks SET "+set+where, args...)
	if err != nil {
		log.Error("failed to update tasks",
			slog.String("error", err.Error()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("tasks updated successfully",
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for delete",
			slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.Int64("task_id", id))
	return nil
}

// DeleteMany implements store.TaskStore.DeleteMany
// An empty match set returns 0 without error.
func (s *SQLiteTaskStore) DeleteMany(ctx context.Context, filter store.Filter) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(filter)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks"+where, args...)
	if err != nil {
		log.Error("failed to delete tasks",
			slog.String("error", err.Error()))
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()))
		return 0, err
	}

	log.Info("tasks deleted successfully",
		slog.Int64("count", rowsAffected))
	return rowsAffected, nil
}

// queryOne runs a query expected to return at most one task row.
// It passes sql.ErrNoRows through for the caller to interpret.
func (s *SQLiteTaskStore) queryOne(
	ctx context.Context,
	query string,
	args ...any,
) (*domain.Task, error) {
	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&task.ID, &task.Title, &task.Completed)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// buildWhere renders a filter as a WHERE clause with placeholder args.
// An unconstrained filter yields an empty clause.
func buildWhere(filter store.Filter) (string, []any) {
	var conds []string
	var args []any

	if filter.ID != nil {
		conds = append(conds, "id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		conds = append(conds, "title = ?")
		args = append(args, *filter.Title)
	}
	if filter.Completed != nil {
		conds = append(conds, "completed = ?")
		args = append(args, *filter.Completed)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildOrderBy renders a query's sort key as an ORDER BY clause.
// The sort field is checked against the known columns before it is
// interpolated, so no caller input reaches the SQL text.
func buildOrderBy(query store.Query) (string, error) {
	field := query.OrderBy
	if field == "" {
		field = store.SortByID
	}
	if !field.Valid() {
		return "", fmt.Errorf("unknown sort field %q", string(query.OrderBy))
	}

	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", string(field), direction), nil
}

// buildSet renders update params as a SET clause, validating a changed
// title against the entity invariants first. An empty clause means there
// is nothing to change.
func buildSet(params store.UpdateParams) (string, []any, error) {
	var sets []string
	var args []any

	if params.Title != nil {
		if err := domain.ValidateTitle(*params.Title); err != nil {
			return "", nil, err
		}
		sets = append(sets, "title = ?")
		args = append(args, *params.Title)
	}
	if params.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *params.Completed)
	}

	return strings.Join(sets, ", "), args, nil
}
