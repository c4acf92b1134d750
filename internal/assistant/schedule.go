package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/rapport/internal/domain"
)

var (
	slotOffsets    = []int{2, 3, 5}
	morningTimes   = []string{"9:00 AM", "10:30 AM", "11:30 AM"}
	afternoonTimes = []string{"1:00 PM", "2:30 PM", "4:00 PM"}
	allSlotTimes   = append(append([]string{}, morningTimes...), afternoonTimes...)
	defaultLengths = []int{45, 60, 90}

	shortHint = regexp.MustCompile(`\b(?:brief|quick)\b`)
	longHint  = regexp.MustCompile(`\b(?:long|extended|detailed)\b`)
)

// slotTimes narrows New and Inactive relationships to morning slots.
func slotTimes(status domain.RelationshipStatus) []string {
	if status == domain.RelationshipNew || status == domain.RelationshipInactive {
		return morningTimes
	}
	return allSlotTimes
}

// meetingMinutes picks a duration in the 45-120 minute band, honoring
// "brief"/"quick" and "long"/"extended"/"detailed" hints. Hints match whole
// words only, so "along" is not "long".
func (e *LocalEngine) meetingMinutes(lower string) int {
	switch {
	case shortHint.MatchString(lower):
		return 45
	case longHint.MatchString(lower):
		return 120
	default:
		return pick(e.rnd, defaultLengths)
	}
}

func formatMinutes(m int) string {
	if m%60 == 0 {
		return plural(m/60, "hour")
	}
	if m > 60 {
		return fmt.Sprintf("%d hour %d minutes", m/60, m%60)
	}
	return fmt.Sprintf("%d minutes", m)
}

func (e *LocalEngine) scheduleMeeting(req request) Response {
	p := req.person
	times := slotTimes(p.RelationshipStatus)

	slots := make([]string, len(slotOffsets))
	for i, off := range slotOffsets {
		slots[i] = fmt.Sprintf("%s at %s", addDays(req.now, off).Format(slotDateLayout), pick(e.rnd, times))
	}
	recommended := pick(e.rnd, slots)
	duration := formatMinutes(e.meetingMinutes(req.lower))

	var list strings.Builder
	for i, s := range slots {
		fmt.Fprintf(&list, "%d. %s\n", i+1, s)
	}

	msg := fmt.Sprintf("I've analyzed both calendars and found these meeting times with %s:\n\n%s\nBased on previous meeting patterns and %s's typical availability, I recommend %s.\n\nProposed agenda:\n%s\n\nEstimated duration: %s",
		p.Name, list.String(), p.FirstName(), recommended,
		bullets([]string{"Project updates", "Timeline review", "Next steps"}), duration)

	return Response{
		Message:      msg,
		Sentiment:    domain.SentimentPositive,
		Confidence:   87,
		Entities:     []Entity{{Name: recommended, Type: EntityDate}, {Name: duration, Type: EntityDuration}},
		TimeEstimate: duration,
		SuggestedActions: []string{
			fmt.Sprintf("Schedule for %s", recommended),
			"Suggest alternative times",
			fmt.Sprintf("Send availability to %s", p.Name),
		},
	}
}
