package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid task creation
	task, err := NewTask("Buy milk", false)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", task.ID)
	}

	if task.Title != "Buy milk" {
		t.Errorf("Expected title %q, got %q", "Buy milk", task.Title)
	}

	if task.Completed {
		t.Error("Expected completed to be false")
	}

	// Test completed flag is carried through
	task, err = NewTask("Write code", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.Completed {
		t.Error("Expected completed to be true")
	}

	// Test empty title
	_, err = NewTask("", false)
	if !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test oversized title
	_, err = NewTask(strings.Repeat("x", MaxTitleLength+1), false)
	if !errors.Is(err, ErrTaskTitleTooLong) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validTask := Task{
		ID:        1,
		Title:     "Read book",
		Completed: false,
	}

	// Test valid task
	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test empty title
	invalidTask := validTask
	invalidTask.Title = ""
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	// Test title at the boundary is accepted
	boundaryTask := validTask
	boundaryTask.Title = strings.Repeat("a", MaxTitleLength)
	if err := boundaryTask.Validate(); err != nil {
		t.Errorf("Expected no error for %d-char title, got %v", MaxTitleLength, err)
	}

	// Test title one past the boundary is rejected
	invalidTask = validTask
	invalidTask.Title = strings.Repeat("a", MaxTitleLength+1)
	if err := invalidTask.Validate(); !errors.Is(err, ErrTaskTitleTooLong) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}
}

func TestValidateTitle(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"single character", "a", nil},
		{"normal title", "Buy milk", nil},
		{"exactly max length", strings.Repeat("b", MaxTitleLength), nil},
		{"multibyte at max length", strings.Repeat("ü", MaxTitleLength), nil},
		{"empty", "", ErrTaskTitleEmpty},
		{"one over max", strings.Repeat("b", MaxTitleLength+1), ErrTaskTitleTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTitle(tc.title)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
			// Every validation failure must also match the generic sentinel.
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}
