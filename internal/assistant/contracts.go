package assistant

import (
	"errors"

	"github.com/alexanderramin/rapport/internal/domain"
)

// IntentName enumerates every category the matcher can produce.
type IntentName string

const (
	IntentSummarizeMeeting     IntentName = "summarize_meeting"
	IntentAssignTask           IntentName = "assign_task"
	IntentFollowUp             IntentName = "follow_up"
	IntentRelationshipAnalysis IntentName = "relationship_analysis"
	IntentFinancial            IntentName = "financial"
	IntentProgressReport       IntentName = "progress_report"
	IntentScheduleMeeting      IntentName = "schedule_meeting"
	IntentDraftEmail           IntentName = "draft_email"
	IntentUnclear              IntentName = "unclear"

	// IntentGeneralInsight is only produced by Engine.Insight, never by Classify.
	IntentGeneralInsight IntentName = "general_insight"
)

// validIntents is the set of known intent names for validation.
var validIntents = map[IntentName]bool{
	IntentSummarizeMeeting: true, IntentAssignTask: true, IntentFollowUp: true,
	IntentRelationshipAnalysis: true, IntentFinancial: true, IntentProgressReport: true,
	IntentScheduleMeeting: true, IntentDraftEmail: true, IntentUnclear: true,
	IntentGeneralInsight: true,
}

// IsValidIntent returns true if the given name is a known intent.
func IsValidIntent(name IntentName) bool {
	return validIntents[name]
}

// EntityType tags an extracted mention.
type EntityType string

const (
	EntityPerson             EntityType = "PERSON"
	EntityDate               EntityType = "DATE"
	EntityMoney              EntityType = "MONEY"
	EntityOrg                EntityType = "ORG"
	EntityRole               EntityType = "ROLE"
	EntityEvent              EntityType = "EVENT"
	EntityTask               EntityType = "TASK"
	EntityTopic              EntityType = "TOPIC"
	EntitySubject            EntityType = "SUBJECT"
	EntityPurpose            EntityType = "PURPOSE"
	EntityAmount             EntityType = "AMOUNT"
	EntityPercentage         EntityType = "PERCENTAGE"
	EntityCount              EntityType = "COUNT"
	EntityDuration           EntityType = "DURATION"
	EntityRelationshipStatus EntityType = "RELATIONSHIP_STATUS"
	EntityScore              EntityType = "SCORE"
)

type Entity struct {
	Name string     `json:"name"`
	Type EntityType `json:"type"`
}

// Response is the payload every responder produces. Optional fields are
// left at their zero value when absent.
type Response struct {
	Intent           IntentName       `json:"intent"`
	Message          string           `json:"message"`
	Sentiment        domain.Sentiment `json:"sentiment,omitempty"`
	Confidence       int              `json:"confidenceScore,omitempty"`
	Entities         []Entity         `json:"entities,omitempty"`
	TimeEstimate     string           `json:"timeEstimate,omitempty"`
	SuggestedActions []string         `json:"suggestedActions,omitempty"`
	Guesses          []IntentGuess    `json:"guesses,omitempty"`
}

// IntentGuess is one ranked alternative offered for an unclear command.
type IntentGuess struct {
	Description     string `json:"description"`
	Confidence      int    `json:"confidence"`
	SuggestedAction string `json:"suggestedAction"`
}

// ErrEmptyCommand is returned when Respond is called with blank input.
var ErrEmptyCommand = errors.New("command text is empty")
