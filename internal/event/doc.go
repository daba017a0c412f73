// Package event provides the Event type for Connecticut General Assembly calendar entries.
//
// The event package handles event representation, deterministic identification, and the
// post-processing applied to a run's combined results: date/time parsing of the listing
// cells, deduplication by UID, ordering by start time, and comparison against the UIDs of
// a previously published calendar. Each event's UID is a SHA1 over its start time and
// lowercased title, so the same meeting maps to the same UID across runs.
package event
