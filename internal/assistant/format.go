package assistant

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	longDateLayout = "Monday, January 2, 2006"
	slotDateLayout = "Monday, Jan 2"
)

var (
	toPattern    = regexp.MustCompile(`(?i)(?:^|\s)to\s+`)
	aboutPattern = regexp.MustCompile(`(?i)\babout\b`)
)

func bullets(items []string) string {
	return "• " + strings.Join(items, "\n• ")
}

// textAfterTo returns what follows the first standalone "to", trimmed and
// without a trailing period. ok is false when there is no such remainder.
func textAfterTo(command string) (string, bool) {
	loc := toPattern.FindStringIndex(command)
	if loc == nil {
		return "", false
	}
	rest := cleanTail(command[loc[1]:])
	return rest, rest != ""
}

// textAfterAbout returns what follows the word "about", or fallback.
func textAfterAbout(command, fallback string) string {
	loc := aboutPattern.FindStringIndex(command)
	if loc == nil {
		return fallback
	}
	if rest := cleanTail(command[loc[1]:]); rest != "" {
		return rest
	}
	return fallback
}

func cleanTail(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	return strings.TrimSpace(s)
}

func money(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.CommafWithDigits(-amount, 2)
	}
	return "$" + humanize.CommafWithDigits(amount, 2)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// contactGap renders the time since last contact, e.g. "4 months" or
// "1 year and 2 months".
func contactGap(days int) string {
	switch {
	case days < 30:
		return plural(days, "day")
	case days < 365:
		return plural(days/30, "month")
	default:
		years := days / 365
		months := (days % 365) / 30
		if months == 0 {
			return plural(years, "year")
		}
		return plural(years, "year") + " and " + plural(months, "month")
	}
}

// monthsBetween counts calendar months from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
