// Package performance folds game records into per-engine win/draw/loss counters.
package performance

import (
	"math"

	"github.com/discochess/enginemetrics/internal/game"
)

// EngineStats holds the counters and derived rates for one engine.
// Rates are percentages rounded to two decimals.
type EngineStats struct {
	Wins     int     `json:"wins"`
	Draws    int     `json:"draws"`
	Losses   int     `json:"losses"`
	Total    int     `json:"total"`
	WinRate  float64 `json:"win_rate"`
	DrawRate float64 `json:"draw_rate"`
	LossRate float64 `json:"loss_rate"`
}

// Recompute derives the rates from the integer counters.
func (s *EngineStats) Recompute() {
	s.WinRate = Rate(s.Wins, s.Total)
	s.DrawRate = Rate(s.Draws, s.Total)
	s.LossRate = Rate(s.Losses, s.Total)
}

// Rate returns part/total as a percentage rounded to two decimals.
// It returns 0 when total is not positive.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// Aggregate folds records into a table keyed by engine name.
// Both engines have their total incremented before the result is inspected,
// so unfinished ("*") and unrecognized results still count toward total.
// Keys are case-sensitive.
func Aggregate(records []game.Record) *Table {
	t := NewTable()
	for _, r := range records {
		white := t.ensure(r.White)
		white.Total++
		black := t.ensure(r.Black)
		black.Total++

		switch r.Result {
		case game.ResultWhiteWins:
			white.Wins++
			black.Losses++
		case game.ResultBlackWins:
			black.Wins++
			white.Losses++
		case game.ResultDraw:
			white.Draws++
			black.Draws++
		}
	}
	t.recompute()
	return t
}
