package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

const (
	// PlaceholderTitle is used when a row carries no usable description text.
	PlaceholderTitle = "Unknown CGA Meeting"

	uidDomain = "cga.ct.gov"
	isoLayout = "2006-01-02T15:04:05"
)

// Event represents a single scheduled CGA meeting or hearing.
//
// Start is a naive wall-clock time. It is carried in time.UTC only as a
// location-free container; the calendar zone is attached at serialization.
type Event struct {
	Start    time.Time `json:"start"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
}

// New creates an Event, substituting the placeholder for an empty title.
func New(start time.Time, title, location string) Event {
	if strings.TrimSpace(title) == "" {
		title = PlaceholderTitle
	}
	return Event{
		Start:    start,
		Title:    title,
		Location: location,
	}
}

// UID returns the deterministic calendar identifier for the event.
// Location does not participate, so two rows for the same meeting in
// different rooms collapse to one UID.
func (e Event) UID() string {
	return GenerateUID(e.Start, e.Title)
}

// GenerateUID creates a deterministic UID from a start time and title
func GenerateUID(start time.Time, title string) string {
	h := sha1.New()
	h.Write([]byte(start.Format(isoLayout) + "|" + strings.ToLower(title)))
	return fmt.Sprintf("cga-%x@%s", h.Sum(nil), uidDomain)
}
