package event

import "sort"

// Dedupe removes events that share a UID. When a UID repeats, the later
// event replaces the earlier one but keeps the position of the first
// occurrence, so the result follows first-extraction order.
func Dedupe(events []Event) []Event {
	index := make(map[string]int, len(events))
	unique := make([]Event, 0, len(events))

	for _, evt := range events {
		uid := evt.UID()
		if i, exists := index[uid]; exists {
			unique[i] = evt
			continue
		}
		index[uid] = len(unique)
		unique = append(unique, evt)
	}

	return unique
}

// SortByStart sorts events by start time in place.
// The sort is stable: events with equal start times keep their relative order.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
