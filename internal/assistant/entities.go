package assistant

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

// dateVocabulary is scanned in this order; the order is reflected in the
// extracted entity list.
var dateVocabulary = []string{
	"today", "tomorrow", "yesterday",
	"next week", "next month", "next year",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var datePatterns = compileDatePatterns()

var moneyPattern = regexp.MustCompile(`\$\d+|\d+ dollars|\d+\$`)

func compileDatePatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(dateVocabulary))
	for i, word := range dateVocabulary {
		out[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	}
	return out
}

// ExtractEntities returns the mentions found in command. The subject person
// is always first, followed by dates in vocabulary order, the first money
// amount, then the organization and role when the command names them.
func ExtractEntities(command string, p domain.Person) []Entity {
	entities := []Entity{{Name: p.Name, Type: EntityPerson}}

	for _, re := range datePatterns {
		if m := re.FindString(command); m != "" {
			entities = append(entities, Entity{Name: m, Type: EntityDate})
		}
	}

	if m := moneyPattern.FindString(command); m != "" {
		entities = append(entities, Entity{Name: m, Type: EntityMoney})
	}

	if p.Company != "" && strings.Contains(command, p.Company) {
		entities = append(entities, Entity{Name: p.Company, Type: EntityOrg})
	}
	if p.Role != "" && strings.Contains(command, p.Role) {
		entities = append(entities, Entity{Name: p.Role, Type: EntityRole})
	}
	return entities
}
