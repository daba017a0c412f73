// Package calendar renders CGA events as an iCalendar (.ics) feed and reads back
// the identifiers of a previously published feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cga-events/internal/event"
)

// DefaultTZID is the zone tag attached to every DTSTART.
const DefaultTZID = "America/New_York"

// BuildICS generates the calendar feed for events, which should already be
// deduplicated and sorted. Start times are written as wall-clock values
// tagged with tzid; they are not converted. now is stamped on every event.
func BuildICS(events []event.Event, tzid string, now time.Time) string {
	if tzid == "" {
		tzid = DefaultTZID
	}
	stamp := formatICSTime(now)

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//CGA//EN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, evt := range events {
		ics.WriteString("BEGIN:VEVENT\r\n")
		ics.WriteString(fmt.Sprintf("UID:%s\r\n", evt.UID()))
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		ics.WriteString(fmt.Sprintf("DTSTART;TZID=%s:%s\r\n", tzid, formatLocalTime(evt.Start)))
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Title)))
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(evt.Location)))
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// formatICSTime formats a time.Time as a UTC iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatLocalTime formats the wall-clock digits of t with no zone suffix
func formatLocalTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes commas, the only character the published feed has ever escaped
func escapeICS(s string) string {
	return strings.ReplaceAll(s, ",", "\\,")
}
