package game

import (
	"gonum.org/v1/gonum/stat"
)

// Stats contains descriptive statistics for a batch of games.
type Stats struct {
	Games        int     `json:"games"`
	AvgMoves     float64 `json:"avg_moves"`
	MovesStdDev  float64 `json:"moves_std_dev"`
	RatedPlayers int     `json:"rated_players"`
	AvgElo       float64 `json:"avg_elo"`
	Decisive     int     `json:"decisive"`
	Draws        int     `json:"draws"`
	Unfinished   int     `json:"unfinished"`
}

// Summarize computes descriptive statistics over records.
func Summarize(records []Record) Stats {
	s := Stats{Games: len(records)}
	if len(records) == 0 {
		return s
	}

	moves := make([]float64, 0, len(records))
	var elos []float64
	for _, r := range records {
		moves = append(moves, float64(r.Moves))
		if r.WhiteElo != nil {
			elos = append(elos, float64(*r.WhiteElo))
		}
		if r.BlackElo != nil {
			elos = append(elos, float64(*r.BlackElo))
		}

		switch r.Result {
		case ResultWhiteWins, ResultBlackWins:
			s.Decisive++
		case ResultDraw:
			s.Draws++
		default:
			s.Unfinished++
		}
	}

	s.AvgMoves = stat.Mean(moves, nil)
	if len(moves) > 1 {
		s.MovesStdDev = stat.StdDev(moves, nil)
	}
	s.RatedPlayers = len(elos)
	if len(elos) > 0 {
		s.AvgElo = stat.Mean(elos, nil)
	}
	return s
}
