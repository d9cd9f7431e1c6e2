package enginemetrics

// AfterUpload is the suggestion context used right after files are uploaded.
const AfterUpload = "after_upload"

var defaultSuggestions = []string{
	"How has V7P3R improved over time?",
	"Which engine performs best in blitz?",
	"Compare SlowMate vs C0BR4 performance",
	"What factors influence engine performance?",
	"What caused the recent performance drop?",
	"Which engine has the strongest tactical play?",
	"How do different time controls affect performance?",
	"What are the key differences between engines?",
}

var uploadSuggestions = []string{
	"Analyze the data I just uploaded",
	"What insights can you provide from my latest games?",
}

// Suggestions returns example queries. The context AfterUpload puts
// questions about the newest data first.
func Suggestions(context string) []string {
	out := make([]string, 0, len(uploadSuggestions)+len(defaultSuggestions))
	if context == AfterUpload {
		out = append(out, uploadSuggestions...)
	}
	return append(out, defaultSuggestions...)
}
