package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

// Health grades a relationship by days since last contact.
type Health string

const (
	HealthStrong         Health = "strong"
	HealthNeedsAttention Health = "needs attention"
	HealthAtRisk         Health = "at risk"
)

// HealthFor classifies days since last contact: up to 30 is strong, up to
// 90 needs attention, anything longer is at risk.
func HealthFor(days int) Health {
	switch {
	case days > 90:
		return HealthAtRisk
	case days > 30:
		return HealthNeedsAttention
	default:
		return HealthStrong
	}
}

// Sentiment maps health onto the response sentiment scale.
func (h Health) Sentiment() domain.Sentiment {
	switch h {
	case HealthStrong:
		return domain.SentimentPositive
	case HealthAtRisk:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

var relationshipAdvice = map[domain.RelationshipStatus]string{
	domain.RelationshipNew:      "Since your relationship with %s is new, consider scheduling an introductory meeting to establish rapport. Ask about their professional background and goals.",
	domain.RelationshipActive:   "You have an active relationship with %s. To strengthen it, consider sharing relevant industry insights or scheduling a casual check-in meeting.",
	domain.RelationshipInactive: "Your relationship with %s has been inactive lately. Consider rekindling the connection with a friendly message or invitation to a professional event.",
	domain.RelationshipClose:    "You have a close relationship with %s. Maintain this by offering support for their initiatives and considering them for collaborative opportunities.",
}

func adviceFor(p domain.Person) string {
	tmpl, ok := relationshipAdvice[p.RelationshipStatus]
	if !ok {
		tmpl = "To build a stronger relationship with %s, maintain regular contact and find ways to provide value to their professional endeavors."
	}
	return fmt.Sprintf(tmpl, p.Name)
}

func contactCadence(status domain.RelationshipStatus) string {
	if status == domain.RelationshipClose {
		return "bi-weekly"
	}
	return "monthly"
}

func (e *LocalEngine) analyzeRelationship(req request) Response {
	p := req.person

	neverContacted := p.LastContacted.IsZero()
	days := 0
	if !neverContacted {
		days = max(0, domain.DaysSince(p.LastContacted, req.now))
	}
	health := HealthAtRisk
	if !neverContacted {
		health = HealthFor(days)
	}

	urgency := "within two weeks"
	if neverContacted || days > 30 {
		urgency = "immediately"
	}
	meetingType := "a video call"
	if neverContacted || days > 90 {
		meetingType = "an in-person meeting"
	}
	content := "a case study on recent successes"
	if strings.Contains(strings.ToLower(p.Role), "tech") {
		content = "the latest industry whitepaper"
	}
	frequency := "below optimal"
	if !neverContacted && days < 14 {
		frequency = "excellent"
	}
	importance := "valuable for your professional network"
	if p.RelationshipStatus == domain.RelationshipClose {
		importance = "important for long-term strategy"
	}
	lastContact := "never"
	if !neverContacted {
		lastContact = fmt.Sprintf("%s ago (%s)", contactGap(days), plural(days, "day"))
	}
	cadence := contactCadence(p.RelationshipStatus)

	msg := fmt.Sprintf("Relationship Analysis for %s\n\nCurrent status: %s\nRelationship health: %s\nLast contacted: %s\nEngagement level: %d/100\n\nInsights:\n%s\n\nRecommended actions:\n%s\n\n%s",
		p.Name, p.RelationshipStatus, health, lastContact, p.ReputationScore,
		bullets([]string{
			fmt.Sprintf("Communication frequency has been %s", frequency),
			fmt.Sprintf("Relationship is %s", importance),
			fmt.Sprintf("Recommended contact cadence is %s", cadence),
		}),
		bullets([]string{
			fmt.Sprintf("Reach out %s", urgency),
			fmt.Sprintf("Share %s", content),
			fmt.Sprintf("Schedule %s", meetingType),
		}),
		adviceFor(p))

	return Response{
		Message:    msg,
		Sentiment:  health.Sentiment(),
		Confidence: 87,
		Entities: []Entity{
			{Name: string(p.RelationshipStatus), Type: EntityRelationshipStatus},
			{Name: strconv.Itoa(p.ReputationScore), Type: EntityScore},
		},
		TimeEstimate: fmt.Sprintf("Recommend %s contact", cadence),
		SuggestedActions: []string{
			fmt.Sprintf("Schedule %s", meetingType),
			fmt.Sprintf("Share %s", content),
			"Update relationship notes",
		},
	}
}
