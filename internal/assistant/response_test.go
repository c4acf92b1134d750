package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/rapport/internal/domain"
)

func TestNormalize(t *testing.T) {
	r := Normalize(Response{
		Message:          "  ",
		Sentiment:        "ecstatic",
		Confidence:       140,
		SuggestedActions: []string{"a", " ", "", "b"},
		Entities: []Entity{
			{Name: "Ada", Type: EntityPerson},
			{Name: "Ada", Type: EntityPerson},
			{Name: " ", Type: EntityOrg},
			{Name: "Ada", Type: EntityRole},
		},
		Guesses: []IntentGuess{{Confidence: -3}},
	})

	assert.Equal(t, fallbackMessage, r.Message)
	assert.Empty(t, r.Sentiment)
	assert.Equal(t, 100, r.Confidence)
	assert.Equal(t, []string{"a", "b"}, r.SuggestedActions)
	assert.Equal(t, []Entity{{Name: "Ada", Type: EntityPerson}, {Name: "Ada", Type: EntityRole}}, r.Entities)
	assert.Equal(t, 0, r.Guesses[0].Confidence)
	assert.NoError(t, r.Validate())
}

func TestNormalize_KeepsValidFields(t *testing.T) {
	in := Response{Message: "ok", Sentiment: domain.SentimentNegative, Confidence: 50, TimeEstimate: " soon "}
	r := Normalize(in)
	assert.Equal(t, "ok", r.Message)
	assert.Equal(t, domain.SentimentNegative, r.Sentiment)
	assert.Equal(t, 50, r.Confidence)
	assert.Equal(t, "soon", r.TimeEstimate)
	assert.Nil(t, r.SuggestedActions)
}

func TestAssemble_ExtractedEntitiesFirst(t *testing.T) {
	r := assemble(IntentFinancial,
		[]Entity{{Name: "Ada", Type: EntityPerson}, {Name: "$5", Type: EntityMoney}},
		Response{Message: "m", Entities: []Entity{{Name: "$5", Type: EntityMoney}, {Name: "$10", Type: EntityAmount}}},
	)
	assert.Equal(t, IntentFinancial, r.Intent)
	assert.Equal(t, []Entity{
		{Name: "Ada", Type: EntityPerson},
		{Name: "$5", Type: EntityMoney},
		{Name: "$10", Type: EntityAmount},
	}, r.Entities)
}

func TestResponse_Validate(t *testing.T) {
	assert.Error(t, Response{}.Validate())
	assert.Error(t, Response{Message: "m", Sentiment: "meh"}.Validate())
	assert.Error(t, Response{Message: "m", Confidence: 101}.Validate())
	assert.Error(t, Response{Message: "m", SuggestedActions: []string{" "}}.Validate())
	assert.NoError(t, Response{Message: "m"}.Validate())
}

func TestRandomizers(t *testing.T) {
	assert.Equal(t, 0, FixedRandom(0).Intn(5))
	assert.Equal(t, 4, FixedRandom(9).Intn(5))
	assert.Equal(t, 0, FixedRandom(-1).Intn(5))

	seq := &SeqRandom{Values: []int{1, 7, -3}}
	assert.Equal(t, []int{1, 2, 3, 1}, []int{seq.Intn(5), seq.Intn(5), seq.Intn(5), seq.Intn(5)})

	r := NewRandom(7)
	for range 100 {
		v := between(r, 3, 6)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 6)
	}
	assert.Equal(t, 4, between(r, 4, 4))
}

func TestNewRandom_Deterministic(t *testing.T) {
	a, b := NewRandom(11), NewRandom(11)
	for range 20 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "• a\n• b", bullets([]string{"a", "b"}))
	assert.Equal(t, "$1,234.5", money(1234.5))
	assert.Equal(t, "-$20", money(-20))
	assert.Equal(t, "1 hour", plural(1, "hour"))
	assert.Equal(t, "3 hours", plural(3, "hour"))
	assert.Equal(t, "fallback", textAfterAbout("no marker here", "fallback"))
	assert.Equal(t, "fallback", textAfterAbout("talk about", "fallback"))
	assert.Equal(t, "the Q3 plan", textAfterAbout("Email About the Q3 plan.", "fallback"))

	a := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, monthsBetween(a, b))
}

func TestDraftEmail_Personalized(t *testing.T) {
	d := DraftEmail(domain.Person{Name: "Grace Hopper"}, "the offer")
	assert.Equal(t, "Proposal: New collaboration opportunity", d.Subject)
	assert.Contains(t, d.Body, "Hi Grace,")
	assert.Equal(t, "the offer", d.Purpose)
}

func TestHealthFor(t *testing.T) {
	assert.Equal(t, HealthStrong, HealthFor(-2))
	assert.Equal(t, HealthNeedsAttention, HealthFor(45))
	assert.Equal(t, HealthAtRisk, HealthFor(91))
	assert.Equal(t, domain.SentimentNeutral, HealthNeedsAttention.Sentiment())
}
