// Package pipeline drives a full scraper run: one fetch and parse per day over a
// fixed window, then deduplication, ordering and a single calendar write.
//
// Days are processed sequentially with a pause between them. A day that fails to
// fetch or parse is logged and recorded in the run Report; it never aborts the run.
// The calendar is written only when at least one event was found, otherwise Run
// returns ErrNoEvents and the previous calendar is left untouched.
package pipeline
