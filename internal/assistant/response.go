package assistant

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

const fallbackMessage = "I processed your request but have nothing to report yet."

// Normalize enforces the payload shape: a non-empty message, a sentiment
// from the closed set or none, confidence within [0, 100], no blank
// suggested actions and no duplicate entities.
func Normalize(r Response) Response {
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		r.Message = fallbackMessage
	}
	if r.Sentiment != "" && !domain.ValidSentiments[r.Sentiment] {
		r.Sentiment = ""
	}
	r.Confidence = clamp(r.Confidence, 0, 100)
	r.TimeEstimate = strings.TrimSpace(r.TimeEstimate)

	var actions []string
	for _, a := range r.SuggestedActions {
		if a = strings.TrimSpace(a); a != "" {
			actions = append(actions, a)
		}
	}
	r.SuggestedActions = actions

	r.Entities = dedupeEntities(r.Entities)
	for i := range r.Guesses {
		r.Guesses[i].Confidence = clamp(r.Guesses[i].Confidence, 0, 100)
	}
	return r
}

// assemble merges the extracted entities ahead of responder-specific ones
// and normalizes the result.
func assemble(intent IntentName, extracted []Entity, r Response) Response {
	r.Intent = intent
	merged := make([]Entity, 0, len(extracted)+len(r.Entities))
	merged = append(merged, extracted...)
	merged = append(merged, r.Entities...)
	r.Entities = merged
	return Normalize(r)
}

func dedupeEntities(in []Entity) []Entity {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Entity]bool, len(in))
	out := make([]Entity, 0, len(in))
	for _, e := range in {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// Validate reports the first shape violation in r, if any.
func (r Response) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("response message is empty")
	}
	if r.Sentiment != "" && !domain.ValidSentiments[r.Sentiment] {
		return fmt.Errorf("invalid sentiment %q", r.Sentiment)
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("confidence %d outside [0, 100]", r.Confidence)
	}
	for i, a := range r.SuggestedActions {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("suggested action %d is blank", i)
		}
	}
	return nil
}
