package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func samplePerson() Person {
	return Person{
		ID:                 "p1",
		Name:               "Ada Lovelace",
		Role:               "CTO",
		Company:            "TechCorp",
		ReputationScore:    88,
		RelationshipStatus: RelationshipActive,
		LastContacted:      testNow.AddDate(0, 0, -10),
		Meetings:           []Meeting{{ID: "m1", Title: "Kickoff", Sentiment: SentimentPositive}},
		Tasks: []Task{
			{ID: "t1", Title: "Send deck", Status: TaskPending, Priority: PriorityHigh},
			{ID: "t2", Title: "Review contract", Status: TaskCompleted, Priority: PriorityLow},
		},
		Finances: []Finance{{ID: "f1", Amount: 120, Currency: "USD", Type: FinancePaid}},
		Timeline: []TimelineEntry{{ID: "tl_c1", Type: TimelineContact, Title: "Phone call"}},
	}
}

func TestFirstName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "Ada"},
		{"Plato", "Plato"},
		{"  Grace  Hopper ", "Grace"},
		{"", ""},
	}
	for _, tc := range cases {
		p := Person{Name: tc.name}
		assert.Equal(t, tc.want, p.FirstName(), "name=%q", tc.name)
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	orig := samplePerson()
	c := orig.Clone()

	c.Tasks[0].Status = TaskCompleted
	c.Meetings[0].Title = "changed"
	c.Timeline = append(c.Timeline, TimelineEntry{ID: "x"})

	assert.Equal(t, TaskPending, orig.Tasks[0].Status)
	assert.Equal(t, "Kickoff", orig.Meetings[0].Title)
	assert.Len(t, orig.Timeline, 1)
}

func TestClone_PreservesNilCollections(t *testing.T) {
	c := Person{Name: "X"}.Clone()
	assert.Nil(t, c.Tasks)
	assert.Nil(t, c.Meetings)
}

func TestValidate_Valid(t *testing.T) {
	p := samplePerson()
	require.NoError(t, p.Validate())
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Person)
		field  string
	}{
		{"blank name", func(p *Person) { p.Name = "  " }, "name"},
		{"score too high", func(p *Person) { p.ReputationScore = 101 }, "reputationScore"},
		{"bad status", func(p *Person) { p.RelationshipStatus = "Frenemy" }, "relationshipStatus"},
		{"duplicate task", func(p *Person) { p.Tasks[1].ID = "t1" }, "tasks"},
		{"duplicate meeting", func(p *Person) { p.Meetings = append(p.Meetings, Meeting{ID: "m1"}) }, "meetings"},
		{"bad priority", func(p *Person) { p.Tasks[0].Priority = "urgent" }, "priority"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := samplePerson()
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestTaskByID(t *testing.T) {
	p := samplePerson()
	assert.Equal(t, 1, p.TaskByID("t2"))
	assert.Equal(t, -1, p.TaskByID("missing"))
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 0, DaysSince(testNow, testNow))
	assert.Equal(t, 120, DaysSince(testNow.AddDate(0, 0, -120), testNow))
	// Time of day does not shift the count.
	late := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysSince(late, testNow))
}
