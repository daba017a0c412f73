package calendar

import (
	"fmt"
	"io"

	ics "github.com/arran4/golang-ical"
)

// ReadUIDs parses a previously written feed and returns its event UIDs in file order.
func ReadUIDs(r io.Reader) ([]string, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	uids := make([]string, 0, len(events))
	for _, evt := range events {
		if id := evt.Id(); id != "" {
			uids = append(uids, id)
		}
	}

	return uids, nil
}
