package assistant

import (
	"fmt"

	"github.com/alexanderramin/rapport/internal/domain"
)

var meetingKeyPoints = []string{
	"Discussed project timeline and deliverables",
	"Reviewed recent performance metrics",
	"Agreed to follow up within two weeks",
	"Action items assigned to respective teams",
}

var meetingActionItems = []string{
	"Share meeting notes with the team",
	"Follow up on open questions",
	"Schedule next review session",
}

// summarizeMeeting reports on Meetings[0], which callers keep newest first.
// The meeting's own sentiment tag is reused as-is.
func (e *LocalEngine) summarizeMeeting(req request) Response {
	p := req.person
	if len(p.Meetings) == 0 {
		return noMeetings(p)
	}

	m := p.Meetings[0]
	msg := fmt.Sprintf("Summary of your last meeting %q with %s", m.Title, p.Name)
	if !m.Date.IsZero() {
		msg += fmt.Sprintf(" on %s", m.Date.Format(domain.DateLayout))
	}
	msg += fmt.Sprintf(":\n\n%s\n\nKey points discussed:\n%s\n\nAction items:\n%s",
		m.Summary, bullets(meetingKeyPoints), bullets(meetingActionItems))

	return Response{
		Message:      msg,
		Sentiment:    m.Sentiment,
		Confidence:   between(e.rnd, 75, 95),
		Entities:     []Entity{{Name: m.Title, Type: EntityEvent}, {Name: p.Company, Type: EntityOrg}},
		TimeEstimate: "Follow-up recommended within 2 weeks",
		SuggestedActions: []string{
			fmt.Sprintf("Schedule next meeting with %s", p.Name),
			"Share summary with team members",
			fmt.Sprintf("Create follow-up tasks for %s", p.Name),
		},
	}
}

func noMeetings(p domain.Person) Response {
	msg := fmt.Sprintf("I couldn't find any recorded meetings with %s. Would you like to schedule one?", p.Name)
	if p.Role != "" && p.Company != "" {
		msg += fmt.Sprintf(" Based on their role as %s at %s, I recommend discussing potential collaboration opportunities.", p.Role, p.Company)
	}
	return Response{
		Message:    msg,
		Sentiment:  domain.SentimentNeutral,
		Confidence: 70,
		Entities:   []Entity{{Name: p.Role, Type: EntityRole}, {Name: p.Company, Type: EntityOrg}},
		SuggestedActions: []string{
			fmt.Sprintf("Schedule initial meeting with %s", p.Name),
			fmt.Sprintf("Research more about %s", domain.CoalesceStr(p.Company, "their company")),
			"Prepare introduction materials",
		},
	}
}
