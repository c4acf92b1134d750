package assistant

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

var randomPriorities = []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

// TaskTitleFromCommand extracts the task title: the text after the first
// standalone "to", or the whole command when there is none.
func TaskTitleFromCommand(command string) string {
	if title, ok := textAfterTo(command); ok {
		return title
	}
	return cleanTail(command)
}

// priorityFromCommand honors an explicit "high priority" or "low priority".
func (e *LocalEngine) priorityFromCommand(lower string) domain.Priority {
	switch {
	case strings.Contains(lower, "high priority"):
		return domain.PriorityHigh
	case strings.Contains(lower, "low priority"):
		return domain.PriorityLow
	default:
		return pick(e.rnd, randomPriorities)
	}
}

func (e *LocalEngine) assignTask(req request) Response {
	p := req.person
	title := TaskTitleFromCommand(req.command)
	priority := e.priorityFromCommand(req.lower)

	dueIn := between(e.rnd, 3, 17)
	altIn := between(e.rnd, 7, 14)
	effort := between(e.rnd, 2, 10)
	due := addDays(req.now, dueIn)
	alt := addDays(req.now, altIn)

	msg := fmt.Sprintf("I've created a new %s priority task for %s:\n\n%q\n\nDue date: %s\nEstimated effort: %s\nStatus: Pending\n\nI'll remind you 2 days before the deadline.",
		priority, p.Name, title, due.Format(longDateLayout), plural(effort, "hour"))

	return Response{
		Message:      msg,
		Sentiment:    domain.SentimentPositive,
		Confidence:   between(e.rnd, 85, 95),
		Entities:     []Entity{{Name: title, Type: EntityTask}, {Name: due.Format(domain.DateLayout), Type: EntityDate}},
		TimeEstimate: fmt.Sprintf("Due in %s", plural(dueIn, "day")),
		SuggestedActions: []string{
			fmt.Sprintf("Modify deadline to %s", alt.Format(slotDateLayout)),
			"Add more details to the task",
			fmt.Sprintf("Notify %s about this task", p.Name),
		},
	}
}
