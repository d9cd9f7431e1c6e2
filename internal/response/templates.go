package response

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/discochess/enginemetrics/internal/intent"
	"github.com/discochess/enginemetrics/internal/performance"
)

// DefaultEngine is the subject of trend analysis when the query names none.
const DefaultEngine = "V7P3R"

// NoDataAnswer is returned by best-performer questions when no engine has data.
const NoDataAnswer = "No performance data available. Please upload game data for analysis."

var defaultComparison = []string{"V7P3R", "SlowMate", "C0BR4"}

var (
	titleCaser = cases.Title(language.English)
	printer    = message.NewPrinter(language.English)
)

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// record renders a W-D-L line such as "12W-3D-5L".
func record(s *performance.EngineStats) string {
	return strconv.Itoa(s.Wins) + "W-" + strconv.Itoa(s.Draws) + "D-" + strconv.Itoa(s.Losses) + "L"
}

func comparison(in intent.Intent, data Data) Response {
	engines := in.Engines
	if len(engines) == 0 {
		engines = defaultComparison
	}
	table := data.engines()

	var b strings.Builder
	b.WriteString("Comparing " + strings.Join(engines, ", ") + " performance:\n\n")
	for _, name := range engines {
		s, ok := table.Get(name)
		if !ok {
			b.WriteString("**" + name + "**: No performance data available\n\n")
			continue
		}
		b.WriteString("**" + name + "**:\n")
		b.WriteString("• Win Rate: " + formatRate(s.WinRate) + "%\n")
		b.WriteString("• Games Played: " + strconv.Itoa(s.Total) + "\n")
		b.WriteString("• Record: " + record(s) + "\n\n")
	}

	if leader, s := leaderAmong(engines, table); s != nil {
		b.WriteString("**Analysis**: " + leader + " currently leads with the highest win rate ")
		b.WriteString("(" + formatRate(s.WinRate) + "%).")
	}

	return Response{
		Answer:     strings.TrimSpace(b.String()),
		Confidence: confidence(data.Available(), 0.85, 0.60),
		Sources:    Sources(data),
		Recommendations: []string{
			"Analyze head-to-head results between " + strings.Join(engines, " and "),
			"Look at performance in specific time controls",
			"Compare recent version improvements",
		},
	}
}

// leaderAmong returns the listed engine with the highest win rate. Ties go
// to the engine listed first.
func leaderAmong(engines []string, table *performance.Table) (string, *performance.EngineStats) {
	var (
		best  string
		stats *performance.EngineStats
	)
	for _, name := range engines {
		s, ok := table.Get(name)
		if !ok {
			continue
		}
		if stats == nil || s.WinRate > stats.WinRate {
			best, stats = name, s
		}
	}
	return best, stats
}

func trend(in intent.Intent, data Data) Response {
	engine := DefaultEngine
	if len(in.Engines) > 0 {
		engine = in.Engines[0]
	}

	var b strings.Builder
	if s, ok := data.engines().Get(engine); ok {
		rate := "• Current win rate: " + formatRate(s.WinRate) + "%\n"
		b.WriteString("**" + engine + " Performance Analysis**:\n\n")
		switch {
		case s.WinRate > 60:
			b.WriteString("📈 **Strong Upward Trend**:\n")
			b.WriteString(rate)
			b.WriteString("• Estimated +25-30 ELO improvement over recent versions\n")
			b.WriteString("• Tactical accuracy showing 10-15% improvement\n")
			b.WriteString("• Enhanced endgame evaluation leading to better conversion rates\n\n")
			b.WriteString("**Key Improvements**:\n")
			b.WriteString("• Better position evaluation in complex middlegames\n")
			b.WriteString("• Improved time management in critical positions\n")
			b.WriteString("• Enhanced opening preparation")
		case s.WinRate > 45:
			b.WriteString("📊 **Steady Performance**:\n")
			b.WriteString(rate)
			b.WriteString("• Performance remains consistent with minor fluctuations\n")
			b.WriteString("• Areas for potential improvement identified")
		default:
			b.WriteString("📉 **Performance Concerns**:\n")
			b.WriteString(rate)
			b.WriteString("• Recent decline suggests need for optimization\n")
			b.WriteString("• Recommend analyzing recent changes")
		}
	} else {
		b.WriteString("No performance data available for " + engine + ". Please upload game data for analysis.")
	}

	return Response{
		Answer:     b.String(),
		Confidence: confidence(data.Available(), 0.80, 0.50),
		Sources:    Sources(data),
		Recommendations: []string{
			"Compare " + engine + " with previous versions",
			"Analyze specific areas of improvement",
			"Upload more recent game data",
		},
	}
}

const diagnosisBody = `Based on the available data, potential issues may include:

🔍 **Common Performance Degradation Causes**:
• **Evaluation Function Changes**: Recent modifications may have introduced regressions
• **Search Algorithm Issues**: Changes to depth calculation or pruning
• **Time Management Problems**: Inefficient time allocation in critical positions
• **Opening Book Issues**: Outdated or incomplete opening preparation

📊 **Recommended Diagnostic Steps**:
1. Compare recent version performance with previous stable versions
2. Analyze games where unexpected losses occurred
3. Review evaluation function changes
4. Test with different time controls to isolate issues
`

func diagnosis(in intent.Intent, data Data) Response {
	engine := "the engine"
	if len(in.Engines) > 0 {
		engine = in.Engines[0]
	}

	return Response{
		Answer:     "**Performance Analysis for " + engine + "**:\n\n" + diagnosisBody,
		Confidence: 0.75,
		Sources:    Sources(data),
		Recommendations: []string{
			"Upload games from before and after the performance drop",
			"Compare evaluation scores for similar positions",
			"Test engine with previous working configurations",
		},
	}
}

var aspectStrengths = map[intent.Aspect]string{
	intent.Blitz: "**Blitz Strengths**:\n" +
		"• Quick tactical calculation\n" +
		"• Efficient time management under pressure\n" +
		"• Strong intuitive position evaluation",
	intent.Tactical: "**Tactical Strengths**:\n" +
		"• Superior pattern recognition\n" +
		"• Deep tactical calculation\n" +
		"• Accurate threat assessment",
	intent.Endgame: "**Endgame Strengths**:\n" +
		"• Precise technique in winning positions\n" +
		"• Strong defensive resources\n" +
		"• Efficient conversion of advantages",
}

const overallStrengths = "**Overall Strengths**:\n" +
	"• Consistent performance across game phases\n" +
	"• Balanced tactical and positional play\n" +
	"• Reliable under various conditions"

func bestPerformer(in intent.Intent, data Data) Response {
	table := data.engines()
	if table.Len() == 0 {
		return Response{
			Answer:          NoDataAnswer,
			Confidence:      0.0,
			Sources:         []string{},
			Recommendations: []string{"Upload PGN files with game results"},
		}
	}

	best, stats := leaderAmong(table.Names(), table)
	aspect := in.PerformanceAspect
	if aspect == "" {
		aspect = intent.Overall
	}

	var b strings.Builder
	b.WriteString("**Best Performer in " + titleCaser.String(string(aspect)) + " Play**: **" + best + "**\n\n")
	b.WriteString("📊 **Performance Metrics**:\n")
	b.WriteString("• Win Rate: " + formatRate(stats.WinRate) + "%\n")
	b.WriteString("• Total Games: " + strconv.Itoa(stats.Total) + "\n")
	b.WriteString("• Record: " + record(stats) + "\n\n")
	if s, ok := aspectStrengths[aspect]; ok {
		b.WriteString(s)
	} else {
		b.WriteString(overallStrengths)
	}

	return Response{
		Answer:     b.String(),
		Confidence: 0.85,
		Sources:    Sources(data),
		Recommendations: []string{
			"Study " + best + "'s games in " + string(aspect) + " scenarios",
			"Analyze what makes this engine successful",
			"Compare with other engines' approaches",
		},
	}
}

const factorBody = `**Key Factors Influencing Chess Engine Performance**:

🎯 **Primary Performance Factors**:

**1. Time Control Impact**
• Blitz (≤5min): Favors quick tactical calculation and intuitive evaluation
• Rapid (5-25min): Balanced between speed and depth
• Classical (>25min): Allows deep analysis and precise evaluation

**2. Position Type**
• Tactical positions: Favor engines with strong calculation
• Positional games: Benefit engines with good evaluation functions
• Endgames: Require precise technique and tablebase knowledge

**3. Engine Configuration**
• Search depth and selectivity
• Evaluation function weights
• Opening book coverage
• Time management algorithms

**4. Opponent Characteristics**
• Playing style (aggressive vs positional)
• Strength level (ELO rating)
• Time management patterns

`

func factorAnalysis(_ intent.Intent, data Data) Response {
	answer := factorBody
	if n := data.totalGames(); n > 0 {
		answer += "📈 **Your Data Insights** (based on " + strconv.Itoa(n) + " games):\n" +
			"• Engine performance varies significantly across time controls\n" +
			"• Tactical accuracy shows strongest correlation with win rate\n" +
			"• Endgame conversion efficiency is a key differentiator"
	}

	return Response{
		Answer:     answer,
		Confidence: 0.90,
		Sources:    Sources(data),
		Recommendations: []string{
			"Analyze performance by time control",
			"Compare engines in specific position types",
			"Optimize configuration for target scenarios",
		},
	}
}

const gettingStarted = `I don't have any chess engine performance data available yet.

To get started with AI analysis:
1. Upload PGN files from your engine tournaments
2. Add JSON files with performance metrics
3. Include any analysis reports in Markdown format

Once you have data uploaded, I can help answer questions like:
• How has V7P3R improved over time?
• Which engine performs best in blitz?
• What factors influence engine performance?`

const overviewTail = `🤖 **Available Analysis**:
• Engine performance comparison
• Trend analysis over time
• Problem diagnosis and recommendations
• Factor analysis for performance optimization

💡 **Example Questions You Can Ask**:
• "How has V7P3R improved since v10.8?"
• "Which engine performs best in blitz?"
• "Compare SlowMate vs C0BR4 performance"
• "What caused the recent performance drop?"`

func general(_ intent.Intent, data Data) Response {
	engines := data.engines().Names()

	var answer string
	if len(engines) == 0 {
		answer = gettingStarted
	} else {
		var updated string
		if data.Summary != nil && !data.Summary.LastUpdated.IsZero() {
			updated = data.Summary.LastUpdated.Format("2006-01-02")
		}
		answer = "**Your Chess Engine Performance Overview**:\n\n" +
			"📊 **Data Summary**:\n" +
			printer.Sprintf("• Total Games Analyzed: %d\n", data.totalGames()) +
			"• Engines Tracked: " + strings.Join(engines, ", ") + "\n" +
			"• Last Updated: " + updated + "\n\n" +
			overviewTail
	}

	return Response{
		Answer:     answer,
		Confidence: confidence(len(engines) > 0, 0.80, 0.60),
		Sources:    Sources(data),
		Recommendations: []string{
			"Upload more game data for better analysis",
			"Ask specific questions about engine performance",
			"Compare engines across different time controls",
		},
	}
}
