package store

// SortField identifies a Task column that results can be ordered by.
type SortField string

// Sortable task fields.
const (
	SortByID        SortField = "id"
	SortByTitle     SortField = "title"
	SortByCompleted SortField = "completed"
)

// Valid reports whether the sort field names a known task column.
func (f SortField) Valid() bool {
	switch f {
	case SortByID, SortByTitle, SortByCompleted:
		return true
	}
	return false
}

// Filter selects tasks by a conjunction of field-equality conditions.
// A nil field leaves that column unconstrained; the zero value matches
// every task.
type Filter struct {
	ID        *int64
	Title     *string
	Completed *bool
}

// Query describes a findAll-style read: an optional filter, an optional
// sort key with direction, and an optional result cap.
//
// The zero value returns every task in insertion (id) order. Limit <= 0
// means unlimited; a limit larger than the match count is not an error.
type Query struct {
	Filter  Filter
	OrderBy SortField
	Desc    bool
	Limit   int
}

// UpdateParams holds a partial set of field changes for update operations.
// A nil field leaves that column untouched.
type UpdateParams struct {
	Title     *string
	Completed *bool
}

// CreateParams holds the caller-supplied fields for one task creation.
type CreateParams struct {
	Title     string
	Completed bool
}

// FilterByID returns a filter matching a single task id.
func FilterByID(id int64) Filter {
	return Filter{ID: &id}
}

// FilterByTitle returns a filter matching tasks with the given title.
func FilterByTitle(title string) Filter {
	return Filter{Title: &title}
}

// FilterByCompleted returns a filter matching tasks with the given
// completion state.
func FilterByCompleted(completed bool) Filter {
	return Filter{Completed: &completed}
}
