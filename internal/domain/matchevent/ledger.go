package matchevent

import "sort"

// MostRecentYellow returns the latest standalone yellow card of the player in
// events. Ordering is by minute then OccurredAt; ties keep the later entry.
func MostRecentYellow(events []Event, playerID string) (Event, bool) {
	var (
		found Event
		ok    bool
	)
	for _, e := range events {
		if e.PlayerID != playerID || e.Type != TypeYellow {
			continue
		}
		if !ok || e.Minute > found.Minute || (e.Minute == found.Minute && !e.OccurredAt.Before(found.OccurredAt)) {
			found = e
			ok = true
		}
	}
	return found, ok
}

// Count returns how many events match the filter.
func Count(events []Event, f Filter) int {
	n := 0
	for _, e := range events {
		if f.Matches(e) {
			n++
		}
	}
	return n
}

// Select returns the matching events ordered by OccurredAt, then minute.
func Select(events []Event, f Filter) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		return out[i].Minute < out[j].Minute
	})
	return out
}
