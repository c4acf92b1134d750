package domain

import (
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	DueDate  time.Time  `json:"dueDate"`
	Status   TaskStatus `json:"status"`
	Priority Priority   `json:"priority"`
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "task title is required"}
	}
	if !ValidTaskStatuses[t.Status] {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid task status %q", t.Status)}
	}
	if !ValidPriorities[t.Priority] {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority %q", t.Priority)}
	}
	return nil
}

// IsOpen reports whether the task still needs work.
func (t *Task) IsOpen() bool {
	return t.Status != TaskCompleted
}

// MarkCompleted transitions the task to completed. Completing an already
// completed task is a no-op.
func (t *Task) MarkCompleted() {
	t.Status = TaskCompleted
}

// NextTaskID returns an id of the form "t<n>" that is not used by any task
// in tasks.
func NextTaskID(tasks []Task) string {
	return NextID("t", ids(tasks, func(t Task) string { return t.ID }))
}
