package domain

import "fmt"

// MaxTitleLength is the maximum number of characters allowed in a task title.
const MaxTitleLength = 100

// Task-specific validation errors.
var (
	// ErrTaskTitleEmpty is returned when a task's title is missing or empty.
	ErrTaskTitleEmpty = fmt.Errorf("%w: task title cannot be empty", ErrValidation)

	// ErrTaskTitleTooLong is returned when a task's title exceeds MaxTitleLength.
	ErrTaskTitleTooLong = fmt.Errorf(
		"%w: task title cannot exceed %d characters",
		ErrValidation,
		MaxTitleLength,
	)
)

// Task represents a single tracked task.
// The ID is assigned by the store on creation and is immutable afterwards.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTask creates a new Task with the given title and completion flag.
// The ID is left as zero; the store assigns it on persistence.
// Returns an error if validation fails.
func NewTask(title string, completed bool) (*Task, error) {
	task := &Task{
		Title:     title,
		Completed: completed,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	return nil
}

// ValidateTitle checks a task title against the entity invariants:
// it must be non-empty and no longer than MaxTitleLength characters.
// Length is measured in runes so multibyte titles are not over-counted.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrTaskTitleEmpty
	}

	if len([]rune(title)) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}

	return nil
}
