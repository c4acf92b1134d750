package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

// resolvePerson finds a contact by exact id, unique id prefix or unique
// case-insensitive name match, in that order.
func resolvePerson(ctx context.Context, app *App, input string) (*domain.Person, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("contact ID or name is required")
	}

	people, err := app.Contacts.List(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Exact ID match
	for _, p := range people {
		if p.ID == input {
			return p, nil
		}
	}

	// 2. ID prefix match
	var matches []*domain.Person
	for _, p := range people {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("contact ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}

	// 3. Exact name, then name substring
	for _, p := range people {
		if strings.EqualFold(p.Name, input) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		lower := strings.ToLower(input)
		for _, p := range people {
			if strings.Contains(strings.ToLower(p.Name), lower) {
				matches = append(matches, p)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("contact not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, p := range matches {
			names = append(names, p.Name)
		}
		return nil, fmt.Errorf("%q matches %d contacts (%s); use the ID", input, len(matches), strings.Join(names, ", "))
	}
}
