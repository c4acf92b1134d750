package assistant

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

// EmailDraft is a generated subject line and body.
type EmailDraft struct {
	Purpose string
	Subject string
	Body    string
}

// DraftEmail picks a template family from purpose and personalizes it with
// the recipient's first name.
func DraftEmail(p domain.Person, purpose string) EmailDraft {
	first := p.FirstName()
	lp := strings.ToLower(purpose)
	d := EmailDraft{Purpose: purpose}

	switch {
	case containsAny(lp, []string{"follow", "check"}):
		d.Subject = "Follow-up: Our recent discussion"
		d.Body = fmt.Sprintf("Hi %s,\n\nI hope you're doing well. I wanted to follow up on our previous conversation about the project status.\n\nHave you had a chance to review the materials I sent over? I'd be happy to discuss any questions or feedback you might have.\n\nLooking forward to hearing from you soon.", first)
	case containsAny(lp, []string{"proposal", "offer"}):
		d.Subject = "Proposal: New collaboration opportunity"
		d.Body = fmt.Sprintf("Hi %s,\n\nI hope this email finds you well. Based on our previous discussions, I've put together a proposal for a potential collaboration between our organizations.\n\nThe attached document outlines the scope, timeline, and expected outcomes. I believe this partnership would be beneficial for both of us.\n\nPlease let me know if you'd like to schedule a call to discuss this further.", first)
	default:
		d.Subject = fmt.Sprintf("Quick update: %s", purpose)
		d.Body = fmt.Sprintf("Hi %s,\n\nI hope things are going well on your end. I just wanted to touch base and provide a quick update on %s.\n\nWe've made significant progress on the key deliverables we discussed, and everything is on track for our target completion date.\n\nPlease let me know if you need any additional information or have any questions.", first, purpose)
	}
	return d
}

func (e *LocalEngine) draftEmail(req request) Response {
	p := req.person
	d := DraftEmail(p, textAfterAbout(req.command, "check-in"))

	msg := fmt.Sprintf("I've drafted an email to %s:\n\n**Subject:** %s\n\n**Content:**\n%s\n\nWould you like me to send this now, save it as a draft, or make additional edits?",
		p.Name, d.Subject, d.Body)

	return Response{
		Message:          msg,
		Sentiment:        domain.SentimentPositive,
		Confidence:       92,
		Entities:         []Entity{{Name: d.Subject, Type: EntitySubject}, {Name: d.Purpose, Type: EntityPurpose}},
		SuggestedActions: []string{"Send email now", "Save as draft", "Edit email content"},
	}
}
