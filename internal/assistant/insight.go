package assistant

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

func engagementRating(score int) string {
	switch {
	case score > 85:
		return "excellent"
	case score > 70:
		return "good"
	default:
		return "could be improved"
	}
}

func (e *LocalEngine) generalInsight(req request) Response {
	p := req.person
	isClose := p.RelationshipStatus == domain.RelationshipClose

	months := between(e.rnd, 6, 29)
	if !p.LastContacted.IsZero() {
		months += max(0, monthsBetween(p.LastContacted, req.now))
	}

	attention := "could benefit from more frequent interaction"
	checkIn, cadence, estimate := "quarterly", "monthly", "1 month"
	if isClose {
		attention = "receives regular attention"
		checkIn, cadence, estimate = "monthly", "every 2-3 weeks", "2-3 weeks"
	}
	alignment := pick(e.rnd, []string{"your strategic networking goals", "potential business opportunities"})
	platform := "professional social media"
	if len(p.SocialProfiles) > 0 {
		platform = p.SocialProfiles[0].Platform
	}
	standing := "showing potential for growth"
	if p.ReputationScore > 80 {
		standing = "one of your stronger professional connections"
	}

	insights := []string{
		fmt.Sprintf("Your relationship with %s has been active for approximately %d months.", p.Name, months),
		fmt.Sprintf("Based on communication patterns, this is a %s relationship that %s.", strings.ToLower(string(p.RelationshipStatus)), attention),
		fmt.Sprintf("Engagement score is %d/100, which is %s.", p.ReputationScore, engagementRating(p.ReputationScore)),
	}
	if p.Role != "" && p.Company != "" {
		insights = append(insights, fmt.Sprintf("%s's role as %s at %s aligns with %s.", p.FirstName(), p.Role, p.Company, alignment))
	}
	recommendations := []string{
		fmt.Sprintf("Schedule a %s check-in to maintain the relationship.", checkIn),
		fmt.Sprintf("Share industry insights related to %s to provide value.", domain.CoalesceStr(p.Role, "their field")),
		fmt.Sprintf("Connect on %s to strengthen the professional connection.", platform),
	}

	msg := fmt.Sprintf("Relationship Insights for %s:\n\n%s\n\nRecommendations:\n%s\n\nThis relationship is %s. The optimal contact frequency appears to be %s.",
		p.Name, strings.Join(insights, "\n\n"), bullets(recommendations), standing, cadence)

	return Response{
		Message:      msg,
		Sentiment:    domain.SentimentPositive,
		Confidence:   88,
		Entities:     []Entity{{Name: p.Role, Type: EntityRole}, {Name: p.Company, Type: EntityOrg}},
		TimeEstimate: estimate,
		SuggestedActions: []string{
			fmt.Sprintf("Schedule check-in with %s", p.Name),
			"Update relationship notes",
			"View full relationship history",
		},
	}
}

// QuickInsight returns one short observation about p, chosen at random.
func (e *LocalEngine) QuickInsight(p domain.Person) string {
	tone := domain.SentimentNeutral
	if len(p.Meetings) > 0 {
		tone = p.Meetings[0].Sentiment
	}
	lines := []string{
		fmt.Sprintf("You typically connect with %s every 2-3 weeks. Consider scheduling your next check-in soon.", p.Name),
		fmt.Sprintf("You've had %s with %s so far.", plural(len(p.Meetings), "meeting"), p.Name),
		fmt.Sprintf("%s's reputation score of %d indicates they are %s.", p.Name, p.ReputationScore, reputationPhrase(p.ReputationScore)),
		fmt.Sprintf("Your conversations with %s tend to be more %s than average.", p.Name, tone),
		fmt.Sprintf("Consider deepening your professional relationship with %s by introducing them to relevant contacts in your network.", p.Name),
	}
	if p.Role != "" {
		lines = append(lines, fmt.Sprintf("Your relationship with %s is strongest when discussing %s-related topics.", p.Name, strings.ToLower(p.Role)))
	}
	if p.Company != "" {
		lines = append(lines, fmt.Sprintf("%s from %s has expertise that complements your recent projects.", p.Name, p.Company))
	}
	return pick(e.rnd, lines)
}

func reputationPhrase(score int) string {
	if score >= 70 {
		return "well-regarded in their field"
	}
	return "still building their reputation"
}
