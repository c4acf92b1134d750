package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
)

// followUpDays is the default gap per relationship status when the command
// gives no explicit time frame.
var followUpDays = map[domain.RelationshipStatus]int{
	domain.RelationshipNew:      3,
	domain.RelationshipActive:   7,
	domain.RelationshipInactive: 5,
	domain.RelationshipClose:    10,
}

var followUpConfidenceBoost = map[domain.RelationshipStatus]int{
	domain.RelationshipClose:  15,
	domain.RelationshipActive: 10,
	domain.RelationshipNew:    2,
}

var (
	followUpTimes        = []string{"9:00 AM", "11:30 AM", "2:00 PM", "4:30 PM"}
	followUpAlternatives = []string{"tomorrow", "next week", "on Friday", "in 3 days"}
)

// followUpDate resolves the reminder date. An explicit phrase wins, with
// "next month" taking precedence over "next week" over "tomorrow".
func (e *LocalEngine) followUpDate(lower string, status domain.RelationshipStatus, now time.Time) time.Time {
	switch {
	case strings.Contains(lower, "next month"):
		return now.AddDate(0, 1, 0)
	case strings.Contains(lower, "next week"):
		return addDays(now, 7)
	case strings.Contains(lower, "tomorrow"):
		return addDays(now, 1)
	}
	days, ok := followUpDays[status]
	if !ok {
		days = 7
	}
	days = max(1, days+between(e.rnd, -2, 2))
	return addDays(now, days)
}

func (e *LocalEngine) followUpConfidence(status domain.RelationshipStatus) int {
	boost, ok := followUpConfidenceBoost[status]
	if !ok {
		boost = 5
	}
	c := min(95, 80+boost+between(e.rnd, -5, 5))
	return clamp(c, 80, 95)
}

func (e *LocalEngine) followUp(req request) Response {
	p := req.person
	date := e.followUpDate(req.lower, p.RelationshipStatus, req.now)
	at := pick(e.rnd, followUpTimes)
	alt := pick(e.rnd, followUpAlternatives)
	confidence := e.followUpConfidence(p.RelationshipStatus)
	topic := textAfterAbout(req.command, "project status")
	when := date.Format(longDateLayout)

	msg := fmt.Sprintf("I've set a reminder for you to follow up with %s on %s at %s regarding %s.\n\nBased on your previous interactions, this is an optimal time for engagement (%d%% confidence). I'll send you a notification 1 hour before the scheduled follow-up.",
		p.Name, when, at, topic, confidence)

	return Response{
		Message:      msg,
		Sentiment:    domain.SentimentPositive,
		Confidence:   confidence,
		Entities:     []Entity{{Name: date.Format(domain.DateLayout), Type: EntityDate}, {Name: topic, Type: EntityTopic}},
		TimeEstimate: when,
		SuggestedActions: []string{
			fmt.Sprintf("Follow up %s", alt),
			fmt.Sprintf("Follow up about %s progress", domain.CoalesceStr(p.Role, "project")),
			"Send a check-in email now",
		},
	}
}
