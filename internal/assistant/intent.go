package assistant

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

// intentRule matches when every group has at least one keyword present.
type intentRule struct {
	intent IntentName
	groups [][]string
}

// intentRules is evaluated top to bottom and the first match wins.
// "meeting" appears in both the summary and scheduling rules, so the
// summary rule must stay ahead of scheduling.
var intentRules = []intentRule{
	{IntentSummarizeMeeting, [][]string{{"summarize"}, {"meeting", "conversation"}}},
	{IntentAssignTask, [][]string{{"assign", "create", "add", "set"}, {"task", "work", "project"}}},
	{IntentFollowUp, [][]string{{"remind", "follow up", "follow-up"}}},
	{IntentRelationshipAnalysis, [][]string{{"relationship", "connection", "network", "contact"}}},
	{IntentFinancial, [][]string{{"payment", "money", "owe", "pay", "financial", "invoice"}}},
	{IntentScheduleMeeting, [][]string{{"schedule", "calendar", "meeting", "appointment"}}},
	{IntentProgressReport, [][]string{{"progress", "status", "update", "track"}}},
	{IntentDraftEmail, [][]string{{"email", "send", "write", "message"}}},
}

// Classify maps free text to exactly one intent. It never fails: text that
// matches no rule is IntentUnclear.
func Classify(command string) IntentName {
	lower := strings.ToLower(command)
	for _, rule := range intentRules {
		if rule.matches(lower) {
			return rule.intent
		}
	}
	return IntentUnclear
}

func (r intentRule) matches(lower string) bool {
	return pie.All(r.groups, func(group []string) bool {
		return containsAny(lower, group)
	})
}

func containsAny(lower string, keywords []string) bool {
	return pie.Any(keywords, func(kw string) bool {
		return strings.Contains(lower, kw)
	})
}
