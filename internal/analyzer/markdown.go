package analyzer

import (
	"sort"
	"strings"
)

// Section is a Markdown heading together with the lines beneath it.
type Section struct {
	Level      int      `json:"level"`
	Title      string   `json:"title"`
	LineNumber int      `json:"line_number"`
	Content    []string `json:"content"`
}

// Topic is a keyword group and how often its terms occur.
type Topic struct {
	Topic     string `json:"topic"`
	Frequency int    `json:"frequency"`
}

// MarkdownAnalysis is the structural and keyword summary of a document.
type MarkdownAnalysis struct {
	Sections            []Section `json:"sections"`
	WordCount           int       `json:"word_count"`
	KeyTopics           []Topic   `json:"key_topics"`
	PerformanceMentions int       `json:"performance_mentions"`
	EloMentions         int       `json:"elo_mentions"`
	ImprovementMentions int       `json:"improvement_mentions"`
}

// topicGroup is a named set of terms counted as one topic.
type topicGroup struct {
	name  string
	terms []string
}

// topicGroups are counted in this order; ties in frequency keep it.
var topicGroups = []topicGroup{
	{"performance", []string{"performance", "perform"}},
	{"tactical", []string{"tactical", "tactics", "tactic"}},
	{"positional", []string{"positional", "position"}},
	{"endgame", []string{"endgame", "ending"}},
	{"opening", []string{"opening", "book"}},
	{"time_control", []string{"blitz", "rapid", "classical", "time control"}},
	{"engine", []string{"engine", "chess engine"}},
	{"elo", []string{"elo", "rating"}},
	{"improvement", []string{"improve", "improvement", "enhance", "optimization"}},
}

// AnalyzeMarkdown splits content into heading sections and counts keywords.
// A line is a heading when its first character is '#'.
func AnalyzeMarkdown(content string) MarkdownAnalysis {
	lower := strings.ToLower(content)

	return MarkdownAnalysis{
		Sections:            splitSections(content),
		WordCount:           len(strings.Fields(content)),
		KeyTopics:           KeyTopics(content),
		PerformanceMentions: strings.Count(lower, "performance"),
		EloMentions:         strings.Count(lower, "elo"),
		ImprovementMentions: strings.Count(lower, "improve"),
	}
}

// KeyTopics counts every topic group in content, case-insensitively, and
// returns the non-zero ones sorted by descending frequency.
func KeyTopics(content string) []Topic {
	lower := strings.ToLower(content)

	topics := make([]Topic, 0, len(topicGroups))
	for _, g := range topicGroups {
		var n int
		for _, term := range g.terms {
			n += strings.Count(lower, term)
		}
		if n > 0 {
			topics = append(topics, Topic{Topic: g.name, Frequency: n})
		}
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Frequency > topics[j].Frequency
	})
	return topics
}

func splitSections(content string) []Section {
	sections := []Section{}
	var current *Section

	for i, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			if current != nil {
				sections = append(sections, *current)
			}
			stripped := strings.TrimLeft(line, "#")
			current = &Section{
				Level:      len(line) - len(stripped),
				Title:      strings.TrimSpace(stripped),
				LineNumber: i + 1,
				Content:    []string{},
			}
			continue
		}
		if current != nil {
			current.Content = append(current.Content, line)
		}
	}

	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}
