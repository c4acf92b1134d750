package assistant

import (
	"fmt"
	"math"
	"strconv"

	"github.com/elliotchance/pie/v2"

	"github.com/alexanderramin/rapport/internal/domain"
)

// Progress is the task breakdown behind a progress report.
type Progress struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
	Overdue    int
	Completion int // rounded percent
}

// OnTrack requires no overdue tasks and at least 40% completion.
func (p Progress) OnTrack() bool {
	return p.Overdue == 0 && p.Completion >= 40
}

// Sentiment is positive when on track, negative with more than one overdue
// task, neutral otherwise.
func (p Progress) Sentiment() domain.Sentiment {
	switch {
	case p.OnTrack():
		return domain.SentimentPositive
	case p.Overdue > 1:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func SummarizeProgress(tasks []domain.Task) Progress {
	count := func(s domain.TaskStatus) int {
		return len(pie.Filter(tasks, func(t domain.Task) bool { return t.Status == s }))
	}
	p := Progress{
		Total:      len(tasks),
		Completed:  count(domain.TaskCompleted),
		InProgress: count(domain.TaskInProgress),
		Pending:    count(domain.TaskPending),
		Overdue:    count(domain.TaskOverdue),
	}
	if p.Total > 0 {
		p.Completion = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

func (e *LocalEngine) reportProgress(req request) Response {
	person := req.person
	if len(person.Tasks) == 0 {
		return Response{
			Message:          fmt.Sprintf("No ongoing tasks found for %s. Would you like to create a project or assign some tasks to track progress?", person.Name),
			Sentiment:        domain.SentimentNeutral,
			Confidence:       80,
			SuggestedActions: []string{"Create new project", "Assign first task", "Import existing tasks"},
		}
	}

	p := SummarizeProgress(person.Tasks)
	status, note, eta, estimate := "Needs attention", "Some tasks may need your attention. Consider following up on overdue items.", "2 weeks behind schedule", "Immediate attention recommended"
	if p.OnTrack() {
		status, note, eta, estimate = "On track", "All tasks are progressing as expected. No immediate actions required.", "On schedule", "Next review in 2 weeks"
	}

	msg := fmt.Sprintf("Progress report for %s:\n\nOverall completion: %d%%\nStatus: %s\n\nTask breakdown:\n%s\n\n%s\n\nEstimated completion of all current tasks: %s",
		person.Name, p.Completion, status,
		bullets([]string{
			fmt.Sprintf("Completed: %d/%d", p.Completed, p.Total),
			fmt.Sprintf("In progress: %d", p.InProgress),
			fmt.Sprintf("Pending: %d", p.Pending),
			fmt.Sprintf("Overdue: %d", p.Overdue),
		}),
		note, eta)

	last := "Add new milestone"
	if p.Overdue > 0 {
		last = "Address overdue tasks"
	}

	return Response{
		Message:    msg,
		Sentiment:  p.Sentiment(),
		Confidence: 90,
		Entities: []Entity{
			{Name: strconv.Itoa(p.Completion) + "%", Type: EntityPercentage},
			{Name: strconv.Itoa(p.Overdue), Type: EntityCount},
		},
		TimeEstimate:     estimate,
		SuggestedActions: []string{"View detailed task list", fmt.Sprintf("Follow up with %s", person.Name), last},
	}
}
