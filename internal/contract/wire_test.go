package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCommandRequest_Validate(t *testing.T) {
	var ve *domain.ValidationError

	err := ProcessCommandRequest{PersonID: "p1"}.Validate()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "command", ve.Field)

	err = ProcessCommandRequest{Command: "hi"}.Validate()
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "personId", ve.Field)

	assert.NoError(t, ProcessCommandRequest{Command: "hi", PersonID: "p1"}.Validate())
	ada := testutil.NewTestPerson("Ada")
	assert.NoError(t, ProcessCommandRequest{Command: "hi", Person: &ada}.Validate())
}

func TestInsightRequest_Validate(t *testing.T) {
	assert.Error(t, InsightRequest{}.Validate())
	assert.NoError(t, InsightRequest{PersonID: "p1"}.Validate())
}

func TestRequests_ValidateInlinePerson(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Person)
		field  string
	}{
		{"blank name", func(p *domain.Person) { p.Name = "  " }, "person.name"},
		{"score out of range", func(p *domain.Person) { p.ReputationScore = 101 }, "person.reputationScore"},
		{"unknown status", func(p *domain.Person) { p.RelationshipStatus = "Frenemy" }, "person.relationshipStatus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewTestPerson("Ada")
			tt.mutate(&p)

			var ve *domain.ValidationError
			err := ProcessCommandRequest{Command: "hi", Person: &p}.Validate()
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)

			err = InsightRequest{Person: &p}.Validate()
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	empty := domain.Person{}
	assert.Error(t, ProcessCommandRequest{Command: "hello", Person: &empty}.Validate())
}

func TestAddTaskRequest_ToNewTask(t *testing.T) {
	nt, err := AddTaskRequest{Title: "Send deck"}.ToNewTask()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, nt.Priority)
	assert.Nil(t, nt.DueDate)

	nt, err = AddTaskRequest{Title: "Send deck", Priority: "HIGH", DueDate: "2025-07-01"}.ToNewTask()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, nt.Priority)
	require.NotNil(t, nt.DueDate)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *nt.DueDate)

	_, err = AddTaskRequest{Title: "x", Priority: "urgent"}.ToNewTask()
	assert.Error(t, err)
	_, err = AddTaskRequest{Title: "x", DueDate: "next tuesday"}.ToNewTask()
	assert.Error(t, err)
}

func TestParseDate_RFC3339IsUTC(t *testing.T) {
	got, err := ParseDate("2025-07-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 10, got.Hour())
}
