package store

import (
	"context"
	"database/sql"

	"github.com/taskbook/taskbook-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task with the given title and completion flag.
	// The store assigns the task ID; ids are monotonically increasing and
	// never reused. Returns validation errors from the domain Task if the
	// title is invalid; nothing is persisted in that case.
	Create(ctx context.Context, title string, completed bool) (*domain.Task, error)

	// CreateMultiple saves a batch of tasks in the order given and returns
	// the created tasks in the same order. Every entry is validated before
	// any row is written; a validation failure aborts the whole batch.
	CreateMultiple(ctx context.Context, params []CreateParams) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindByID retrieves a task by its unique ID, treating absence as a
	// normal outcome: it returns (nil, nil) when no task has the given id.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindFirst returns the first task matching the filter in insertion
	// (id) order, or (nil, nil) when nothing matches.
	FindFirst(ctx context.Context, filter Filter) (*domain.Task, error)

	// FindAll returns every task matching the query's filter, ordered by
	// the query's sort key (insertion order when unset) and capped by its
	// limit. The result reflects the store state at call time; it returns
	// an empty slice, not nil, when nothing matches.
	FindAll(ctx context.Context, query Query) ([]*domain.Task, error)

	// Count returns the number of tasks matching the filter.
	Count(ctx context.Context, filter Filter) (int64, error)

	// Exists reports whether at least one task matches the filter, without
	// materializing a row.
	Exists(ctx context.Context, filter Filter) (bool, error)

	// Update applies a partial set of field changes to the task with the
	// given id and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the changes violate entity invariants;
	// nothing is modified in that case.
	Update(ctx context.Context, id int64, params UpdateParams) (*domain.Task, error)

	// UpdateMany applies a partial set of field changes to every task
	// matching the filter and returns the number of tasks updated. The
	// changes are validated once up front and applied to all matches or
	// none. An empty match set returns 0 without error.
	UpdateMany(ctx context.Context, filter Filter, params UpdateParams) (int64, error)

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	// This operation is permanent and cannot be undone.
	Delete(ctx context.Context, id int64) error

	// DeleteMany removes every task matching the filter and returns the
	// number of tasks deleted. An empty match set returns 0 without error.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
