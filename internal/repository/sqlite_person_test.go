package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPerson(name string) domain.Person {
	return testutil.NewTestPerson(name,
		testutil.WithSocial(
			domain.SocialProfile{Platform: "LinkedIn", URL: "https://linkedin.com/in/x", Username: "x"},
			domain.SocialProfile{Platform: "GitHub", URL: "https://github.com/x", Username: "x"},
		),
		testutil.WithMeetings(
			testutil.NewTestMeeting("m2", "Review", domain.SentimentNegative),
			testutil.NewTestMeeting("m1", "Kickoff", domain.SentimentPositive),
		),
		testutil.WithTasks(
			testutil.NewTestTask("t1", "Send deck", domain.TaskPending),
			testutil.NewTestTask("t2", "Book venue", domain.TaskOverdue),
		),
		testutil.WithFinances(testutil.NewTestFinance("f1", 1250.5, domain.FinanceOwed)),
		testutil.WithTimeline(domain.TimelineEntry{
			ID: "tl1", Date: testutil.DaysAgo(3), Type: domain.TimelineMeeting,
			Title: "Meeting: Review", Description: "Quarterly review",
		}),
	)
}

func TestPersonRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := fullPerson("Ada Lovelace")
	require.NoError(t, repo.Create(ctx, &p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(p, *got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPersonRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersonRepo_EmptyCollectionsStayNil(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestPerson("Grace Hopper")
	require.NoError(t, repo.Create(ctx, &p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Meetings)
	assert.Nil(t, got.Tasks)
	assert.Nil(t, got.SocialProfiles)
}

func TestPersonRepo_List(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"zoe Park", "Ada Lovelace", "Marcus Chen"} {
		p := fullPerson(name)
		require.NoError(t, repo.Create(ctx, &p))
	}

	people, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Ada Lovelace", people[0].Name)
	assert.Equal(t, "Marcus Chen", people[1].Name)
	assert.Equal(t, "zoe Park", people[2].Name)
	assert.Len(t, people[2].Tasks, 2, "listed people are hydrated")
}

func TestPersonRepo_SearchByName(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Sarah Johnson", "Michael Chen", "Jessica_Williams", "Sarah Miller"} {
		p := testutil.NewTestPerson(name)
		require.NoError(t, repo.Create(ctx, &p))
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"sarah", []string{"Sarah Johnson", "Sarah Miller"}},
		{"CHEN", []string{"Michael Chen"}},
		{"  miller ", []string{"Sarah Miller"}},
		{"_", []string{"Jessica_Williams"}},
		{"%", nil},
		{"nobody", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			people, err := repo.SearchByName(ctx, tc.query)
			require.NoError(t, err)
			var names []string
			for _, p := range people {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestPersonRepo_Update(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := fullPerson("Ada Lovelace")
	require.NoError(t, repo.Create(ctx, &p))

	p.RelationshipStatus = domain.RelationshipClose
	p.ReputationScore = 91
	p.LastContacted = testutil.DaysAgo(1)
	p.UpdatedAt = testutil.Now.Add(1)
	require.NoError(t, repo.Update(ctx, &p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationshipClose, got.RelationshipStatus)
	assert.Equal(t, 91, got.ReputationScore)
	assert.WithinDuration(t, testutil.DaysAgo(1), got.LastContacted, 0)
	assert.WithinDuration(t, p.UpdatedAt, got.UpdatedAt, 0)
	assert.Len(t, got.Tasks, 2)
}

func TestPersonRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	p := testutil.NewTestPerson("Ghost")
	assert.ErrorIs(t, repo.Update(context.Background(), &p), ErrNotFound)
}

func TestPersonRepo_CreateDefaultsTimestamps(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := domain.Person{ID: "p1", Name: "Ada", RelationshipStatus: domain.RelationshipNew, ReputationScore: 50}
	require.NoError(t, repo.Create(ctx, &p))
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, got.LastContacted.IsZero())
}

func TestPersonRepo_CreateRejectsDuplicateID(t *testing.T) {
	repo := NewSQLitePersonRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestPerson("Ada", testutil.WithPersonID("dup"))
	require.NoError(t, repo.Create(ctx, &p))
	assert.Error(t, repo.Create(ctx, &p))
}
