package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/cga-events/internal/calendar"
	"github.com/pfrederiksen/cga-events/internal/event"
	"github.com/pfrederiksen/cga-events/internal/logger"
	"github.com/pfrederiksen/cga-events/internal/metrics"
	"github.com/pfrederiksen/cga-events/internal/scraper"
)

// ErrNoEvents is returned when the whole window produced no events.
// The existing calendar is left untouched.
var ErrNoEvents = errors.New("no events found")

// Fetcher returns one day's raw search results HTML
type Fetcher interface {
	FetchDay(ctx context.Context, day time.Time) (string, error)
}

// Store holds the published calendar
type Store interface {
	Read() (io.ReadCloser, error)
	Write(content string) error
}

// DayResult is the outcome of fetching and parsing a single day
type DayResult struct {
	Date   time.Time
	Events []event.Event
	Err    error
}

// Report summarizes a run
type Report struct {
	Days    []DayResult
	Events  []event.Event // deduplicated and sorted
	Added   int
	Removed int
	Written bool
}

// FailedDays returns the days that could not be fetched or parsed
func (r *Report) FailedDays() []DayResult {
	failed := make([]DayResult, 0)
	for _, d := range r.Days {
		if d.Err != nil {
			failed = append(failed, d)
		}
	}
	return failed
}

// Pipeline runs the scraper over a window of consecutive days
type Pipeline struct {
	Fetcher Fetcher
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	Days  int           // window length, starting today
	Delay time.Duration // pause between days
	TZID  string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run fetches every day in the window, then writes the calendar if anything was found.
// A failing day is recorded in the report and never stops the run. Only a failed
// write is returned as a hard error; an empty run returns ErrNoEvents.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	log := p.Logger
	if log == nil {
		log = logger.Default()
	}
	m := p.Metrics
	if m == nil {
		m = metrics.New()
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	t := now()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	log.Info("starting CGA scraper", logger.Fields{
		"days":  p.Days,
		"start": start.Format("2006-01-02"),
	})

	report := &Report{Days: make([]DayResult, 0, p.Days)}
	collected := make([]event.Event, 0)

	for i := 0; i < p.Days; i++ {
		if i > 0 {
			if err := sleep(ctx, p.Delay); err != nil {
				log.Warn("run cancelled", logger.Fields{"completed_days": i})
				break
			}
		}

		day := start.AddDate(0, 0, i)
		began := time.Now()
		result := p.runDay(ctx, day, log)
		m.ObserveDay(result.Err, len(result.Events), time.Since(began))

		if result.Err != nil {
			log.Error("day failed", logger.Fields{
				"date": day.Format("2006-01-02"),
			}, result.Err)
		}

		report.Days = append(report.Days, result)
		collected = append(collected, result.Events...)
	}

	events := event.Dedupe(collected)
	event.SortByStart(events)
	report.Events = events

	if len(events) == 0 {
		return report, ErrNoEvents
	}

	diff := event.Diff(p.previousUIDs(log), events)
	report.Added = len(diff.Added)
	report.Removed = len(diff.Removed)

	written := now()
	if err := p.Store.Write(calendar.BuildICS(events, p.TZID, written)); err != nil {
		return report, fmt.Errorf("writing calendar: %w", err)
	}
	report.Written = true
	m.ObserveWrite(len(events), written)

	log.Info("calendar written", logger.Fields{
		"events":  len(events),
		"added":   report.Added,
		"removed": report.Removed,
		"failed":  len(report.FailedDays()),
	})

	return report, nil
}

// runDay fetches and parses a single day
func (p *Pipeline) runDay(ctx context.Context, day time.Time, log *logger.Logger) DayResult {
	result := DayResult{Date: day}

	html, err := p.Fetcher.FetchDay(ctx, day)
	if err != nil {
		result.Err = fmt.Errorf("fetching %s: %w", day.Format("2006-01-02"), err)
		return result
	}

	events, err := scraper.ParseEvents(strings.NewReader(html), log)
	if err != nil {
		result.Err = fmt.Errorf("parsing %s: %w", day.Format("2006-01-02"), err)
		return result
	}

	result.Events = events
	return result
}

// previousUIDs returns the UIDs of the currently published calendar, if any.
// An unreadable calendar is reported and treated as empty.
func (p *Pipeline) previousUIDs(log *logger.Logger) []string {
	rc, err := p.Store.Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("could not open previous calendar", logger.Fields{"error": err.Error()})
		}
		return nil
	}
	defer rc.Close()

	uids, err := calendar.ReadUIDs(rc)
	if err != nil {
		log.Warn("could not parse previous calendar", logger.Fields{"error": err.Error()})
		return nil
	}
	return uids
}

// sleep pauses for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
