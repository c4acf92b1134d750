package domain

import (
	"strconv"
	"strings"
)

// NextID returns prefix followed by one more than the largest numeric
// suffix among used ids carrying that prefix, skipping any id already
// taken.
func NextID(prefix string, used []string) string {
	taken := make(map[string]bool, len(used))
	max := 0
	for _, id := range used {
		taken[id] = true
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	n := max + 1
	for taken[prefix+strconv.Itoa(n)] {
		n++
	}
	return prefix + strconv.Itoa(n)
}

func NextMeetingID(meetings []Meeting) string {
	return NextID("m", ids(meetings, func(m Meeting) string { return m.ID }))
}

func NextFinanceID(finances []Finance) string {
	return NextID("f", ids(finances, func(f Finance) string { return f.ID }))
}

// TimelineIDFor returns the id of the timeline entry that tracks the
// meeting, task or finance record with the given id.
func TimelineIDFor(itemID string) string {
	return "tl_" + itemID
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
