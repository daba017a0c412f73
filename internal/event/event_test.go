package event

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateUID(t *testing.T) {
	start := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)

	uid1 := GenerateUID(start, "Public Hearing on Energy")
	uid2 := GenerateUID(start, "Public Hearing on Energy")

	if uid1 != uid2 {
		t.Errorf("GenerateUID should be deterministic, got different UIDs: %s vs %s", uid1, uid2)
	}

	if !strings.HasPrefix(uid1, "cga-") || !strings.HasSuffix(uid1, "@cga.ct.gov") {
		t.Errorf("UID %q should have form cga-<hex>@cga.ct.gov", uid1)
	}

	hex := strings.TrimSuffix(strings.TrimPrefix(uid1, "cga-"), "@cga.ct.gov")
	if len(hex) != 40 { // SHA1 produces 40 hex characters
		t.Errorf("expected hash length of 40, got %d", len(hex))
	}
}

func TestUID_Identity(t *testing.T) {
	start := time.Date(2025, time.March, 12, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     Event
		wantSame bool
	}{
		{
			name:     "same start and title, different location",
			a:        New(start, "Budget Session", "Senate Chamber"),
			b:        New(start, "Budget Session", "Room 2C"),
			wantSame: true,
		},
		{
			name:     "title differs only in case",
			a:        New(start, "BUDGET SESSION", ""),
			b:        New(start, "budget session", "Hall of the House"),
			wantSame: true,
		},
		{
			name:     "different start",
			a:        New(start, "Budget Session", ""),
			b:        New(start.Add(time.Minute), "Budget Session", ""),
			wantSame: false,
		},
		{
			name:     "different title",
			a:        New(start, "Budget Session", ""),
			b:        New(start, "Finance Session", ""),
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same := tt.a.UID() == tt.b.UID()
			if same != tt.wantSame {
				t.Errorf("UID equality = %v, want %v (%s vs %s)", same, tt.wantSame, tt.a.UID(), tt.b.UID())
			}
		})
	}
}

func TestNew(t *testing.T) {
	start := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)

	evt := New(start, "Public Hearing on Energy", "Room 2C")
	if evt.Title != "Public Hearing on Energy" {
		t.Errorf("expected title to be 'Public Hearing on Energy', got '%s'", evt.Title)
	}
	if evt.Location != "Room 2C" {
		t.Errorf("expected location to be 'Room 2C', got '%s'", evt.Location)
	}
	if !evt.Start.Equal(start) {
		t.Errorf("expected start %v, got %v", start, evt.Start)
	}

	blank := New(start, "  ", "")
	if blank.Title != PlaceholderTitle {
		t.Errorf("expected placeholder title, got '%s'", blank.Title)
	}
}
