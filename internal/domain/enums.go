package domain

import "fmt"

type RelationshipStatus string

const (
	RelationshipNew      RelationshipStatus = "New"
	RelationshipActive   RelationshipStatus = "Active"
	RelationshipInactive RelationshipStatus = "Inactive"
	RelationshipClose    RelationshipStatus = "Close"
)

// ValidRelationshipStatuses is the canonical set of relationship classifications.
var ValidRelationshipStatuses = map[RelationshipStatus]bool{
	RelationshipNew: true, RelationshipActive: true,
	RelationshipInactive: true, RelationshipClose: true,
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ValidSentiments is the canonical set of sentiment labels.
var ValidSentiments = map[Sentiment]bool{
	SentimentPositive: true, SentimentNeutral: true, SentimentNegative: true,
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOverdue    TaskStatus = "overdue"
)

// ValidTaskStatuses is the canonical set of task statuses.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending: true, TaskInProgress: true, TaskCompleted: true, TaskOverdue: true,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of task priorities.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

type FinanceType string

const (
	FinanceOwed     FinanceType = "owed"
	FinancePaid     FinanceType = "paid"
	FinanceReceived FinanceType = "received"
)

// ValidFinanceTypes is the canonical set of finance record types.
var ValidFinanceTypes = map[FinanceType]bool{
	FinanceOwed: true, FinancePaid: true, FinanceReceived: true,
}

type TimelineType string

const (
	TimelineMeeting TimelineType = "meeting"
	TimelineTask    TimelineType = "task"
	TimelinePayment TimelineType = "payment"
	TimelineContact TimelineType = "contact"
)

// ValidTimelineTypes is the canonical set of timeline entry types.
var ValidTimelineTypes = map[TimelineType]bool{
	TimelineMeeting: true, TimelineTask: true, TimelinePayment: true, TimelineContact: true,
}

// ParsePriority accepts a priority name in any case. An empty string
// yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(lower(s))
	if !ValidPriorities[p] {
		return "", &ValidationError{Field: "priority", Message: fmt.Sprintf("invalid priority %q (use low, medium or high)", s)}
	}
	return p, nil
}

// ParseRelationshipStatus accepts a status name in any case. An empty
// string yields RelationshipNew.
func ParseRelationshipStatus(s string) (RelationshipStatus, error) {
	if s == "" {
		return RelationshipNew, nil
	}
	for status := range ValidRelationshipStatuses {
		if lower(string(status)) == lower(s) {
			return status, nil
		}
	}
	return "", &ValidationError{Field: "relationshipStatus", Message: fmt.Sprintf("invalid relationship status %q (use New, Active, Inactive or Close)", s)}
}
