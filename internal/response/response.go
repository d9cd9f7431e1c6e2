// Package response turns a classified query and aggregated performance data
// into an answer.
//
// Every answer is assembled from fixed text templates. Confidence values come
// from a fixed table keyed by response type and by whether data was found;
// they are not statistical estimates.
package response

import (
	"fmt"

	"github.com/discochess/enginemetrics/internal/intent"
	"github.com/discochess/enginemetrics/internal/performance"
)

// Data is what the generators may read. Generators perform no I/O.
type Data struct {
	// Summary is the merged engine performance. A nil Summary means no data.
	Summary *performance.Summary
	// Documents is the number of knowledge-base documents consulted.
	Documents int
}

// Available reports whether any knowledge-base documents were found.
func (d Data) Available() bool {
	return d.Documents > 0
}

func (d Data) engines() *performance.Table {
	if d.Summary == nil {
		return nil
	}
	return d.Summary.Engines
}

func (d Data) totalGames() int {
	if d.Summary == nil {
		return 0
	}
	return d.Summary.TotalGamesAnalyzed
}

// Response is a generated answer.
type Response struct {
	Answer          string   `json:"answer"`
	Confidence      float64  `json:"confidence"`
	Sources         []string `json:"sources"`
	Recommendations []string `json:"recommendations"`
}

// Generate answers in using data. Unknown intent types are answered as general questions.
func Generate(in intent.Intent, data Data) Response {
	switch in.Type {
	case intent.Comparison:
		return comparison(in, data)
	case intent.TrendAnalysis:
		return trend(in, data)
	case intent.ProblemDiagnosis:
		return diagnosis(in, data)
	case intent.BestPerformer:
		return bestPerformer(in, data)
	case intent.FactorAnalysis:
		return factorAnalysis(in, data)
	case intent.General:
		return general(in, data)
	default:
		return general(in, data)
	}
}

// Sources lists the labels describing where an answer's data came from.
func Sources(data Data) []string {
	var sources []string
	if data.Available() {
		sources = append(sources,
			"Engine performance database",
			"Game analysis results",
			"Historical performance metrics",
		)
	}
	if data.Documents > 0 {
		sources = append(sources, fmt.Sprintf("Analysis from %d uploaded documents", data.Documents))
	}
	if len(sources) == 0 {
		sources = []string{"General chess engine knowledge"}
	}
	return sources
}

// confidence picks between the with-data and without-data values.
func confidence(ok bool, with, without float64) float64 {
	if ok {
		return with
	}
	return without
}
