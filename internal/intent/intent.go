// Package intent classifies free-text questions about engine performance.
//
// Classification is literal substring matching over the lower-cased query.
// Negation is not understood: "don't compare" is still a comparison.
package intent

import (
	"regexp"
	"strings"
)

// Type is the kind of question being asked.
type Type string

const (
	General          Type = "general"
	Comparison       Type = "comparison"
	TrendAnalysis    Type = "trend_analysis"
	ProblemDiagnosis Type = "problem_diagnosis"
	BestPerformer    Type = "best_performer"
	FactorAnalysis   Type = "factor_analysis"
)

// Aspect narrows a question to one area of play.
type Aspect string

const (
	Overall    Aspect = "overall"
	Tactical   Aspect = "tactical"
	Positional Aspect = "positional"
	Endgame    Aspect = "endgame"
	Opening    Aspect = "opening"
	Blitz      Aspect = "blitz"
	Rapid      Aspect = "rapid"
	Classical  Aspect = "classical"
)

// Time frame kinds.
const (
	SinceVersion = "since_version"
	Duration     = "duration"
)

// TimeFrame bounds a question in time.
type TimeFrame struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Intent is the structured reading of a query.
type Intent struct {
	Type              Type       `json:"type"`
	Engines           []string   `json:"engines"`
	TimeFrame         *TimeFrame `json:"time_frame"`
	PerformanceAspect Aspect     `json:"performance_aspect"`
	Comparison        bool       `json:"comparison"`
	TrendAnalysis     bool       `json:"trend_analysis"`
	ProblemDiagnosis  bool       `json:"problem_diagnosis"`
}

// Engines is the vocabulary of engine names recognized in queries.
var Engines = []string{"V7P3R", "SlowMate", "C0BR4", "COBRA"}

// typeRules are checked in order and the first match wins. The order is a
// matching policy, not a ranking of how serious each kind of question is.
var typeRules = []struct {
	typ   Type
	words []string
}{
	{Comparison, []string{"compare", "vs", "versus", "comparison"}},
	{TrendAnalysis, []string{"improve", "trend", "over time", "since", "progress"}},
	{ProblemDiagnosis, []string{"drop", "worse", "problem", "issue", "decline", "regression"}},
	{BestPerformer, []string{"best", "strongest", "performs best", "top", "leader"}},
	{FactorAnalysis, []string{"factor", "influence", "affect", "cause", "impact"}},
}

var aspectOrder = []Aspect{Tactical, Positional, Endgame, Opening, Blitz, Rapid, Classical}

var sinceRe = regexp.MustCompile(`since\s+(v?\d+\.?\d*)`)

// Classify derives an Intent from query. It never fails; an unrecognized
// query yields a General intent with the Overall aspect.
func Classify(query string) Intent {
	q := strings.ToLower(query)

	in := Intent{
		Type:              General,
		Engines:           []string{},
		PerformanceAspect: Overall,
	}

	for _, name := range Engines {
		if strings.Contains(q, strings.ToLower(name)) {
			in.Engines = append(in.Engines, name)
		}
	}

	for _, rule := range typeRules {
		if containsAny(q, rule.words) {
			in.Type = rule.typ
			break
		}
	}
	switch in.Type {
	case Comparison:
		in.Comparison = true
	case TrendAnalysis:
		in.TrendAnalysis = true
	case ProblemDiagnosis:
		in.ProblemDiagnosis = true
	}

	for _, a := range aspectOrder {
		if strings.Contains(q, string(a)) {
			in.PerformanceAspect = a
			break
		}
	}

	in.TimeFrame = timeFrame(q)
	return in
}

// timeFrame expects a lower-cased query. When "since" appears, only the
// version pattern is tried, so "since last week" has no time frame.
func timeFrame(q string) *TimeFrame {
	switch {
	case strings.Contains(q, "since"):
		m := sinceRe.FindStringSubmatch(q)
		if m == nil {
			return nil
		}
		return &TimeFrame{Type: SinceVersion, Value: m[1]}
	case strings.Contains(q, "last month"):
		return &TimeFrame{Type: Duration, Value: "1 month"}
	case strings.Contains(q, "last week"):
		return &TimeFrame{Type: Duration, Value: "1 week"}
	}
	return nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
