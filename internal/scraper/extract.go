package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/cga-events/internal/event"
	"github.com/pfrederiksen/cga-events/internal/logger"
)

const (
	// minCells is the narrowest row that can hold date, time and a description.
	minCells = 4

	// fillerText is a generic label the listing uses in place of a description.
	fillerText = "cga event"

	// minTitleLength below which a title is treated as a bill or room code.
	minTitleLength = 3
)

// ParseEvents extracts events from one day's search results HTML in row order.
// Rows that are too narrow or whose first two cells are not a date and time
// are skipped. Each event found is logged.
func ParseEvents(r io.Reader, log *logger.Logger) ([]event.Event, error) {
	if log == nil {
		log = logger.Default()
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading HTML: %w", err)
	}

	doc, err := parseRows(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	events := make([]event.Event, 0)

	// Results are plain rows with no distinguishing class, so every row in
	// every table is a candidate.
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}

		texts := make([]string, 0, cells.Length())
		cells.Each(func(j int, cell *goquery.Selection) {
			texts = append(texts, cell.Text())
		})

		evt, ok := eventFromCells(texts)
		if !ok {
			return
		}

		events = append(events, evt)
		log.Info("found event", logger.Fields{
			"when":  evt.Start.Format("01/02 15:04"),
			"title": evt.Title,
		})
	})

	return events, nil
}

// parseRows parses a results page. A bare run of rows with no enclosing
// table loses its tr and td elements under HTML5 parsing, so such input is
// parsed again inside a table.
func parseRows(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if doc.Find("tr").Length() > 0 || !strings.Contains(strings.ToLower(body), "<tr") {
		return doc, nil
	}
	return goquery.NewDocumentFromReader(strings.NewReader("<table>" + body + "</table>"))
}

// eventFromCells builds an event from a row's raw cell texts.
func eventFromCells(cells []string) (event.Event, bool) {
	if len(cells) < minCells {
		return event.Event{}, false
	}

	start, ok := event.ParseDateTime(strings.TrimSpace(cells[0]), strings.TrimSpace(cells[1]))
	if !ok {
		return event.Event{}, false
	}

	title, location := SelectTitleLocation(Candidates(cells[2:]))
	return event.New(start, title, location), true
}

// Candidates returns the normalized texts of cells that could be a title or
// location: non-empty, not purely numeric, and not the generic filler label.
// Column order is preserved.
func Candidates(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		text := event.NormalizeSpace(cell)
		if text == "" || isDigits(text) || strings.EqualFold(text, fillerText) {
			continue
		}
		out = append(out, text)
	}
	return out
}

// SelectTitleLocation picks the title and location from ordered candidates.
// The first candidate is the title and the second the location. A title
// shorter than three characters is usually a bill or room code, so when more
// candidates exist everything shifts by one. The shift happens at most once.
func SelectTitleLocation(candidates []string) (title, location string) {
	title = event.PlaceholderTitle
	if len(candidates) > 0 {
		title = candidates[0]
	}
	if len(candidates) > 1 {
		location = candidates[1]
	}

	if len([]rune(title)) < minTitleLength && len(candidates) > 1 {
		title = candidates[1]
		location = ""
		if len(candidates) > 2 {
			location = candidates[2]
		}
	}

	return title, location
}

// isDigits reports whether s is non-empty and made only of ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
