package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

type guessPattern struct {
	keywords    []string
	description string
	action      string // format string taking the person's name
}

var guessPatterns = []guessPattern{
	{
		keywords:    []string{"relationship", "connection", "network", "contact", "interact"},
		description: "Get information about your relationship with this person",
		action:      "Analyze my relationship with %s",
	},
	{
		keywords:    []string{"schedule", "meeting", "call", "appointment", "calendar", "meet"},
		description: "Schedule a meeting or call",
		action:      "Schedule a meeting with %s",
	},
	{
		keywords:    []string{"task", "assign", "work", "project", "todo", "to-do", "complete"},
		description: "Assign or track tasks",
		action:      "Show task progress for %s",
	},
	{
		keywords:    []string{"follow up", "follow-up", "remind", "reminder", "check in", "check-in"},
		description: "Set a reminder to follow up",
		action:      "Remind me to follow up with %s",
	},
	{
		keywords:    []string{"payment", "invoice", "money", "pay", "financial", "transaction"},
		description: "Track payments or financial transactions",
		action:      "Check payment status with %s",
	},
}

const maxGuesses = 3

// GuessIntents ranks likely intents for a command no rule matched. At least
// two guesses are always returned, at most three.
func (e *LocalEngine) GuessIntents(command string, p domain.Person) []IntentGuess {
	lower := strings.ToLower(command)
	var guesses []IntentGuess
	for _, gp := range guessPatterns {
		matches := 0
		for _, kw := range gp.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		c := min(95, 30+matches*15) + between(e.rnd, -10, 10)
		guesses = append(guesses, IntentGuess{
			Description:     gp.description,
			Confidence:      clamp(c, 30, 95),
			SuggestedAction: fmt.Sprintf(gp.action, p.Name),
		})
	}

	if len(guesses) < 2 || allBelow(guesses, 40) {
		guesses = append(guesses,
			IntentGuess{
				Description:     "Get information about this person",
				Confidence:      between(e.rnd, 35, 45),
				SuggestedAction: fmt.Sprintf("Tell me about %s", p.Name),
			},
			IntentGuess{
				Description:     "Show recent activity",
				Confidence:      between(e.rnd, 30, 40),
				SuggestedAction: fmt.Sprintf("Show recent activity with %s", p.Name),
			},
		)
	}

	sort.SliceStable(guesses, func(i, j int) bool {
		return guesses[i].Confidence > guesses[j].Confidence
	})
	if len(guesses) > maxGuesses {
		guesses = guesses[:maxGuesses]
	}
	return guesses
}

func allBelow(guesses []IntentGuess, threshold int) bool {
	for _, g := range guesses {
		if g.Confidence >= threshold {
			return false
		}
	}
	return true
}

func (e *LocalEngine) guessIntent(req request) Response {
	guesses := e.GuessIntents(req.command, req.person)

	lines := make([]string, len(guesses))
	actions := make([]string, len(guesses))
	for i, g := range guesses {
		lines[i] = fmt.Sprintf("- %s (%d%% confidence)", g.Description, g.Confidence)
		actions[i] = g.SuggestedAction
	}

	msg := fmt.Sprintf("I'm not sure how to process your request about %s. Here's what I think you might be asking for:\n\n%s\n\nTry asking me to summarize meetings, assign tasks, set reminders, analyze the relationship, or review finances.",
		req.person.Name, strings.Join(lines, "\n"))

	return Response{
		Message:          msg,
		Sentiment:        domain.SentimentNeutral,
		Confidence:       45,
		SuggestedActions: actions,
		Guesses:          guesses,
	}
}
