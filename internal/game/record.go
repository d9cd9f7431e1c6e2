// Package game extracts flat game records from PGN input.
package game

import (
	"strconv"

	"github.com/notnil/chess"
)

// Known game results.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultOngoing   = "*"
)

// Placeholders used when a header is missing.
const (
	UnknownValue = "Unknown"
	UnknownDate  = "????.??.??"
	UnknownRound = "?"
)

// Record is the flattened form of a single game.
type Record struct {
	White       string `json:"white"`
	Black       string `json:"black"`
	Result      string `json:"result"`
	Date        string `json:"date"`
	Event       string `json:"event"`
	Round       string `json:"round"`
	TimeControl string `json:"time_control"`
	WhiteElo    *int   `json:"white_elo"`
	BlackElo    *int   `json:"black_elo"`
	Moves       int    `json:"moves"`
	Termination string `json:"termination"`
}

// NewRecord builds a Record from PGN headers and the length of the main line.
// Missing headers fall back to their placeholders.
func NewRecord(headers map[string]string, moves int) Record {
	if moves < 0 {
		moves = 0
	}
	return Record{
		White:       header(headers, "White", UnknownValue),
		Black:       header(headers, "Black", UnknownValue),
		Result:      header(headers, "Result", ResultOngoing),
		Date:        header(headers, "Date", UnknownDate),
		Event:       header(headers, "Event", UnknownValue),
		Round:       header(headers, "Round", UnknownRound),
		TimeControl: header(headers, "TimeControl", UnknownValue),
		WhiteElo:    ParseElo(header(headers, "WhiteElo", "?")),
		BlackElo:    ParseElo(header(headers, "BlackElo", "?")),
		Moves:       moves,
		Termination: header(headers, "Termination", UnknownValue),
	}
}

// FromChess builds a Record from a decoded game.
func FromChess(g *chess.Game) Record {
	headers := make(map[string]string, len(g.TagPairs()))
	for _, tp := range g.TagPairs() {
		if tp == nil {
			continue
		}
		headers[tp.Key] = tp.Value
	}
	return NewRecord(headers, len(g.Moves()))
}

// ParseElo parses a rating header value.
// It returns nil for "?" and for anything that is not an integer.
func ParseElo(s string) *int {
	if s == "?" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func header(headers map[string]string, key, fallback string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	return fallback
}
