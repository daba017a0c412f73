package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// \s is ASCII-only; \p{Zs} adds the no-break space listings use between words.
	whitespacePattern = regexp.MustCompile(`[\s\p{Zs}]+`)

	// M/D/YYYY followed by H:MM[:SS] and an AM/PM marker.
	dateTimePattern = regexp.MustCompile(
		`(?i)(\d{1,2})/(\d{1,2})/(\d{4})[\s\p{Zs}]+(\d{1,2}):(\d{2})(?::(\d{2}))?[\s\p{Zs}]*(AM|PM)`)
)

// NormalizeSpace collapses whitespace runs, including no-break spaces, to
// single spaces and trims the result.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// ParseDateTime parses a listing's date cell ("1/5/2025") and time cell
// ("10:00 AM") into a wall-clock time.
// Returns false if the text does not match or names an impossible date or time.
func ParseDateTime(dateText, timeText string) (time.Time, bool) {
	clean := NormalizeSpace(dateText + " " + timeText)

	m := dateTimePattern.FindStringSubmatch(clean)
	if m == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}

	switch pm := strings.EqualFold(m[7], "PM"); {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)

	// time.Date normalizes overflow (day 32 becomes the 1st of next month);
	// reject anything that did not survive unchanged.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}

	return t, true
}
