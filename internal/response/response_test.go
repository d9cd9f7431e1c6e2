package response

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/discochess/enginemetrics/internal/intent"
	"github.com/discochess/enginemetrics/internal/performance"
)

func stats(wins, draws, losses int) *performance.EngineStats {
	s := &performance.EngineStats{Wins: wins, Draws: draws, Losses: losses, Total: wins + draws + losses}
	s.Recompute()
	return s
}

func sampleData() Data {
	table := performance.NewTable()
	table.Set("SlowMate", stats(5, 2, 3)) // 50%
	table.Set("C0BR4", stats(7, 1, 2))    // 70%
	table.Set("V7P3R", stats(7, 0, 3))    // 70%, ties C0BR4
	return Data{
		Summary: &performance.Summary{
			Engines:            table,
			TotalGamesAnalyzed: 1234,
			LastUpdated:        time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		},
		Documents: 3,
	}
}

func TestGenerate_BestPerformerNoData(t *testing.T) {
	for _, data := range []Data{{}, {Summary: &performance.Summary{Engines: performance.NewTable()}}} {
		got := Generate(intent.Intent{Type: intent.BestPerformer}, data)

		assert.Equal(t, 0.0, got.Confidence)
		assert.Equal(t, NoDataAnswer, got.Answer)
		assert.Empty(t, got.Sources)
		assert.Equal(t, []string{"Upload PGN files with game results"}, got.Recommendations)
	}
}

func TestGenerate_BestPerformerFirstWinsTies(t *testing.T) {
	got := Generate(intent.Classify("Which engine performs best in blitz?"), sampleData())

	assert.Equal(t, 0.85, got.Confidence)
	assert.True(t, strings.HasPrefix(got.Answer, "**Best Performer in Blitz Play**: **C0BR4**"), got.Answer)
	assert.Contains(t, got.Answer, "• Win Rate: 70%")
	assert.Contains(t, got.Answer, "• Record: 7W-1D-2L")
	assert.Contains(t, got.Answer, "**Blitz Strengths**")
	assert.Equal(t, "Study C0BR4's games in blitz scenarios", got.Recommendations[0])
}

func TestGenerate_BestPerformerOverall(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.BestPerformer}, sampleData())
	assert.Contains(t, got.Answer, "**Best Performer in Overall Play**")
	assert.Contains(t, got.Answer, "**Overall Strengths**")
}

func TestGenerate_Comparison(t *testing.T) {
	got := Generate(intent.Classify("Compare SlowMate vs C0BR4"), sampleData())

	assert.Equal(t, 0.85, got.Confidence)
	assert.True(t, strings.HasPrefix(got.Answer, "Comparing SlowMate, C0BR4 performance:"))
	assert.Contains(t, got.Answer, "**SlowMate**:\n• Win Rate: 50%\n• Games Played: 10\n• Record: 5W-2D-3L")
	assert.True(t, strings.HasSuffix(got.Answer, "**Analysis**: C0BR4 currently leads with the highest win rate (70%)."))
	assert.Equal(t, "Analyze head-to-head results between SlowMate and C0BR4", got.Recommendations[0])
}

func TestGenerate_ComparisonDefaultsAndMissing(t *testing.T) {
	table := performance.NewTable()
	table.Set("SlowMate", stats(1, 0, 1))
	data := Data{Summary: &performance.Summary{Engines: table}}

	got := Generate(intent.Intent{Type: intent.Comparison}, data)

	assert.Equal(t, 0.60, got.Confidence)
	assert.True(t, strings.HasPrefix(got.Answer, "Comparing V7P3R, SlowMate, C0BR4 performance:"))
	assert.Contains(t, got.Answer, "**V7P3R**: No performance data available")
	assert.Contains(t, got.Answer, "**Analysis**: SlowMate currently leads")
}

func TestGenerate_ComparisonNoLeader(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.Comparison, Engines: []string{"COBRA"}}, Data{})
	assert.NotContains(t, got.Answer, "**Analysis**")
	assert.Equal(t, "Comparing COBRA performance:\n\n**COBRA**: No performance data available", got.Answer)
}

func TestGenerate_TrendBands(t *testing.T) {
	tests := []struct {
		name  string
		stats *performance.EngineStats
		want  string
	}{
		{"strong", stats(7, 0, 3), "📈 **Strong Upward Trend**"},
		{"steady", stats(5, 0, 5), "📊 **Steady Performance**"},
		{"exactly sixty is steady", stats(6, 0, 4), "📊 **Steady Performance**"},
		{"concerns", stats(4, 1, 5), "📉 **Performance Concerns**"},
		{"exactly forty-five is concern", stats(9, 0, 11), "📉 **Performance Concerns**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := performance.NewTable()
			table.Set("SlowMate", tt.stats)
			data := Data{Summary: &performance.Summary{Engines: table}, Documents: 1}

			got := Generate(intent.Classify("SlowMate trend"), data)

			assert.Equal(t, 0.80, got.Confidence)
			assert.Contains(t, got.Answer, tt.want)
		})
	}
}

func TestGenerate_TrendDefaultsToV7P3R(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.TrendAnalysis}, Data{})

	assert.Equal(t, "No performance data available for V7P3R. Please upload game data for analysis.", got.Answer)
	assert.Equal(t, 0.50, got.Confidence)
	assert.Equal(t, "Compare V7P3R with previous versions", got.Recommendations[0])
}

func TestGenerate_Diagnosis(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.ProblemDiagnosis}, Data{})
	assert.True(t, strings.HasPrefix(got.Answer, "**Performance Analysis for the engine**:"))
	assert.Equal(t, 0.75, got.Confidence)

	got = Generate(intent.Classify("why did C0BR4 get worse"), Data{})
	assert.True(t, strings.HasPrefix(got.Answer, "**Performance Analysis for C0BR4**:"))
}

func TestGenerate_FactorAnalysis(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.FactorAnalysis}, Data{})
	assert.Equal(t, 0.90, got.Confidence)
	assert.NotContains(t, got.Answer, "Your Data Insights")

	got = Generate(intent.Intent{Type: intent.FactorAnalysis}, sampleData())
	assert.Contains(t, got.Answer, "(based on 1234 games)")
}

func TestGenerate_General(t *testing.T) {
	got := Generate(intent.Intent{Type: intent.General}, sampleData())

	assert.Equal(t, 0.80, got.Confidence)
	assert.Contains(t, got.Answer, "• Total Games Analyzed: 1,234\n")
	assert.Contains(t, got.Answer, "• Engines Tracked: SlowMate, C0BR4, V7P3R\n")
	assert.Contains(t, got.Answer, "• Last Updated: 2024-03-09\n")
}

func TestGenerate_GeneralNoData(t *testing.T) {
	got := Generate(intent.Intent{}, Data{})

	assert.Equal(t, 0.60, got.Confidence)
	assert.True(t, strings.HasPrefix(got.Answer, "I don't have any chess engine performance data available yet."))
	assert.Equal(t, []string{"General chess engine knowledge"}, got.Sources)
}

func TestGenerate_UnknownTypeIsGeneral(t *testing.T) {
	data := sampleData()
	assert.Equal(t,
		Generate(intent.Intent{Type: intent.General}, data),
		Generate(intent.Intent{Type: "sentiment"}, data))
}

func TestSources(t *testing.T) {
	got := Sources(Data{Documents: 2})
	require.Len(t, got, 4)
	assert.Equal(t, "Engine performance database", got[0])
	assert.Equal(t, "Analysis from 2 uploaded documents", got[3])

	assert.Equal(t, []string{"General chess engine knowledge"}, Sources(Data{}))
}

func TestGenerate_Deterministic(t *testing.T) {
	in := intent.Classify("Compare V7P3R and SlowMate")
	assert.Equal(t, Generate(in, sampleData()), Generate(in, sampleData()))
}
