package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
)

// DefaultTaskDueDays is the due-date offset used when NewTask.DueDate is nil.
const DefaultTaskDueDays = 7

// NewTask describes a task to append. Zero Priority means medium.
type NewTask struct {
	Title    string
	Priority domain.Priority
	DueDate  *time.Time
}

// AddTask returns a copy of p with a new pending task appended. p is not
// modified. A blank title fails with *domain.ValidationError.
func AddTask(ctx context.Context, sink EventSink, p domain.Person, nt NewTask, now time.Time) (domain.Person, domain.Task, error) {
	title := strings.TrimSpace(nt.Title)
	if title == "" {
		return p, domain.Task{}, &domain.ValidationError{Field: "title", Message: "task title is required"}
	}
	priority := nt.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriorities[priority] {
		return p, domain.Task{}, &domain.ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority %q", priority)}
	}
	due := addDays(now, DefaultTaskDueDays)
	if nt.DueDate != nil {
		due = *nt.DueDate
	}

	out := p.Clone()
	task := domain.Task{
		ID:       domain.NextTaskID(out.Tasks),
		Title:    title,
		DueDate:  due,
		Status:   domain.TaskPending,
		Priority: priority,
	}
	out.Tasks = append(out.Tasks, task)

	ev := newEvent(EventTaskAdded, now)
	ev.PersonID, ev.PersonName = p.ID, p.Name
	ev.TaskID, ev.TaskTitle = task.ID, task.Title
	ev.Title = "Task added"
	ev.Description = fmt.Sprintf("%q assigned to %s", task.Title, p.Name)
	publish(ctx, sink, ev)

	return out, task, nil
}

// CompleteTask returns a copy of p with taskID marked completed. An unknown
// id returns an unchanged copy and publishes nothing. Completing twice is
// harmless.
func CompleteTask(ctx context.Context, sink EventSink, p domain.Person, taskID string, now time.Time) domain.Person {
	out := p.Clone()
	i := out.TaskByID(taskID)
	if i < 0 {
		return out
	}
	out.Tasks[i].MarkCompleted()

	ev := newEvent(EventTaskCompleted, now)
	ev.PersonID, ev.PersonName = p.ID, p.Name
	ev.TaskID, ev.TaskTitle = taskID, out.Tasks[i].Title
	ev.Title = "Task completed"
	ev.Description = fmt.Sprintf("Task for %s marked as complete", p.Name)
	publish(ctx, sink, ev)

	return out
}

func publish(ctx context.Context, sink EventSink, ev Event) {
	if sink == nil {
		return
	}
	sink.Publish(ctx, ev)
}
