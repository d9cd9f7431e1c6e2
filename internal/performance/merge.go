package performance

import (
	"strings"
	"time"
)

// Snapshot is the performance portion of one stored ingestion.
type Snapshot struct {
	Engines    *Table `json:"engine_performance"`
	TotalGames int    `json:"total_games"`
}

// Summary is the aggregate view over many snapshots.
type Summary struct {
	Engines            *Table    `json:"engines"`
	TotalGamesAnalyzed int       `json:"total_games_analyzed"`
	LastUpdated        time.Time `json:"last_updated"`
}

// MergeOptions controls how snapshots are combined.
type MergeOptions struct {
	// CaseSensitiveFilter compares the engine filter exactly instead of
	// with case folding. Stored keys are always case-sensitive, so with the
	// default two engines differing only by case both match one filter.
	CaseSensitiveFilter bool
}

// Merge sums the counters of every snapshot and recomputes rates once from
// the summed integers. Stored rates are ignored.
// If filter is non-empty only matching engines contribute. Game totals are
// summed over all snapshots regardless of the filter.
func Merge(snapshots []Snapshot, filter string, opts MergeOptions) *Summary {
	merged := NewTable()
	var totalGames int

	for _, snap := range snapshots {
		snap.Engines.Each(func(name string, s *EngineStats) {
			if filter != "" && !matches(name, filter, opts.CaseSensitiveFilter) {
				return
			}
			acc := merged.ensure(name)
			acc.Wins += s.Wins
			acc.Draws += s.Draws
			acc.Losses += s.Losses
			acc.Total += s.Total
		})
		totalGames += snap.TotalGames
	}

	merged.recompute()
	return &Summary{
		Engines:            merged,
		TotalGamesAnalyzed: totalGames,
	}
}

func matches(name, filter string, caseSensitive bool) bool {
	if caseSensitive {
		return name == filter
	}
	return strings.EqualFold(name, filter)
}
