// Package analyzer extracts structured information from uploaded analysis documents.
package analyzer

// MetricFields are the top-level JSON fields copied verbatim into extracted metrics.
var MetricFields = []string{
	"elo", "rating", "wins", "losses", "draws", "total_games",
	"win_rate", "loss_rate", "draw_rate", "tactical_accuracy",
	"positional_score", "endgame_score", "time_management",
	"opening_book_score",
}

// ExtractMetrics copies known metric fields from data, then merges the
// "performance" and "statistics" sub-objects in that order. Later keys
// overwrite earlier ones. Values are passed through without validation.
func ExtractMetrics(data map[string]any) map[string]any {
	metrics := make(map[string]any)

	for _, field := range MetricFields {
		if v, ok := data[field]; ok {
			metrics[field] = v
		}
	}

	for _, nested := range []string{"performance", "statistics"} {
		sub, ok := data[nested].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range sub {
			metrics[k] = v
		}
	}

	return metrics
}
