package game

import (
	"testing"
)

func TestParseElo(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"2400", intPtr(2400)},
		{"0", intPtr(0)},
		{"?", nil},
		{"abc", nil},
		{"", nil},
		{"24.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseElo(tt.input)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseElo(%q) = %d, want nil", tt.input, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ParseElo(%q) = nil, want %d", tt.input, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ParseElo(%q) = %d, want %d", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestNewRecord_Placeholders(t *testing.T) {
	rec := NewRecord(map[string]string{}, 0)

	if rec.White != UnknownValue || rec.Black != UnknownValue {
		t.Errorf("players = %q/%q, want %q", rec.White, rec.Black, UnknownValue)
	}
	if rec.Result != ResultOngoing {
		t.Errorf("Result = %q, want %q", rec.Result, ResultOngoing)
	}
	if rec.Date != UnknownDate {
		t.Errorf("Date = %q, want %q", rec.Date, UnknownDate)
	}
	if rec.Round != UnknownRound {
		t.Errorf("Round = %q, want %q", rec.Round, UnknownRound)
	}
	if rec.Event != UnknownValue || rec.TimeControl != UnknownValue || rec.Termination != UnknownValue {
		t.Errorf("event/time control/termination should default to %q: %+v", UnknownValue, rec)
	}
	if rec.WhiteElo != nil || rec.BlackElo != nil {
		t.Error("ELO should be nil when headers are missing")
	}
}

func TestNewRecord_Headers(t *testing.T) {
	rec := NewRecord(map[string]string{
		"White":       "SlowMate",
		"Black":       "C0BR4",
		"Result":      "1/2-1/2",
		"WhiteElo":    "2400",
		"BlackElo":    "?",
		"TimeControl": "180+2",
	}, 42)

	if rec.White != "SlowMate" || rec.Black != "C0BR4" {
		t.Errorf("players = %q/%q", rec.White, rec.Black)
	}
	if rec.Result != ResultDraw {
		t.Errorf("Result = %q, want %q", rec.Result, ResultDraw)
	}
	if rec.WhiteElo == nil || *rec.WhiteElo != 2400 {
		t.Errorf("WhiteElo = %v, want 2400", rec.WhiteElo)
	}
	if rec.BlackElo != nil {
		t.Errorf("BlackElo = %d, want nil", *rec.BlackElo)
	}
	if rec.Moves != 42 {
		t.Errorf("Moves = %d, want 42", rec.Moves)
	}
	if rec.TimeControl != "180+2" {
		t.Errorf("TimeControl = %q, want %q", rec.TimeControl, "180+2")
	}
}

func intPtr(n int) *int {
	return &n
}
