package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrInt(i int) *int { return &i }

func validMinimalDataset() DatasetFile {
	return DatasetFile{
		{ID: "1", Name: "Ada Lovelace", Role: "CTO", Company: "TechCorp"},
	}
}

func validFullDataset() DatasetFile {
	return DatasetFile{
		{
			ID:                 "1",
			Name:               "Ada Lovelace",
			Role:               "CTO",
			Company:            "TechCorp",
			ReputationScore:    ptrInt(88),
			LastContactedDate:  "2025-06-01",
			RelationshipStatus: "Close",
			SocialMedia:        []SocialImport{{Platform: "GitHub", URL: "https://github.com/ada", Username: "ada"}},
			Meetings:           []MeetingImport{{ID: "m1", Date: "2025-05-20", Title: "Strategy Session", Sentiment: "positive"}},
			Tasks:              []TaskImport{{ID: "t1", Title: "Send deck", DueDate: "2025-06-20", Status: "pending", Priority: "high"}},
			Finances:           []FinanceImport{{ID: "f1", Amount: 1200, Date: "2025-05-01", Description: "Retainer", Type: "owed"}},
			Timeline: []TimelineImport{
				{ID: "tl_t1", Date: "2025-06-20", Type: "task", Title: "Send deck", Description: "Task due: Send deck"},
				{ID: "tl_m1", Date: "2025-05-20T09:30:00Z", Type: "meeting", Title: "Strategy Session"},
			},
		},
		{Name: "Grace Hopper"},
	}
}

func TestValidateDataset_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateDataset(validMinimalDataset()))
}

func TestValidateDataset_ValidFull(t *testing.T) {
	assert.Empty(t, ValidateDataset(validFullDataset()))
}

func TestValidateDataset_Empty(t *testing.T) {
	assert.Empty(t, ValidateDataset(nil))
}

func TestValidateDataset_PersonErrors(t *testing.T) {
	file := DatasetFile{
		{ID: "1", Name: " "},
		{ID: "1", Name: "Dup", ReputationScore: ptrInt(140), RelationshipStatus: "Frenemy", LastContactedDate: "06/01/2025"},
	}
	errs := ValidateDataset(file)
	assert.Len(t, errs, 5)
	assertHasErr(t, errs, "people[0].name is required")
	assertHasErr(t, errs, `people[1].id: duplicate id "1"`)
	assertHasErr(t, errs, "people[1].reputationScore")
	assertHasErr(t, errs, "people[1].relationshipStatus")
	assertHasErr(t, errs, "people[1].lastContactedDate")
}

func TestValidateDataset_CollectionErrors(t *testing.T) {
	file := DatasetFile{{
		Name:     "Ada",
		Meetings: []MeetingImport{{ID: "m1", Date: "2025-01-01", Sentiment: "ecstatic"}},
		Tasks: []TaskImport{
			{ID: "t1", Title: "A", DueDate: "2025-01-01", Status: "blocked"},
			{ID: "t1", Title: "B", DueDate: "2025-01-01", Priority: "urgent"},
			{Title: "", DueDate: ""},
		},
		Finances: []FinanceImport{{ID: "f1", Amount: 0, Date: "2025-01-01", Type: "gift"}},
		Timeline: []TimelineImport{{ID: "tl_x", Date: "2025-01-01", Type: "party"}},
	}}
	errs := ValidateDataset(file)

	assertHasErr(t, errs, "people[0].meetings[0].title is required")
	assertHasErr(t, errs, "people[0].meetings[0].sentiment")
	assertHasErr(t, errs, "people[0].tasks[0].status")
	assertHasErr(t, errs, `people[0].tasks[1].id: duplicate id "t1"`)
	assertHasErr(t, errs, "people[0].tasks[1].priority")
	assertHasErr(t, errs, "people[0].tasks[2].id is required")
	assertHasErr(t, errs, "people[0].tasks[2].title is required")
	assertHasErr(t, errs, "people[0].tasks[2].dueDate is required")
	assertHasErr(t, errs, "people[0].finances[0].amount must be positive")
	assertHasErr(t, errs, "people[0].finances[0].type")
	assertHasErr(t, errs, "people[0].timeline[0].type")
}

func assertHasErr(t *testing.T, errs []error, substr string) {
	t.Helper()
	for _, err := range errs {
		if strings.Contains(err.Error(), substr) {
			return
		}
	}
	t.Errorf("no error containing %q in %v", substr, errs)
}
