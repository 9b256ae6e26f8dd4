package prompt

import "fmt"

// GetSystemPrompt provides the analyst role line used by chat-style backends.
func GetSystemPrompt() string {
	return "You are an audit analyst. You must produce one valid JSON object only (no markdown, no commentary, no code fences)."
}

// GetExtractionPrompt builds the structured-extraction instruction around the
// document text. The schema must stay in sync with ai.RawQuestion.
func GetExtractionPrompt(text string) string {
	return fmt.Sprintf("You are an audit analyst. First, count the number of audit questions "+
		"present in the document. Then, for each question, determine the answer "+
		"using evidence from elsewhere in the document. Only provide an answer "+
		"and evidence when they are clearly supported by the text; otherwise use null. "+
		"Return ONLY valid JSON with this schema: "+
		`{"question_count":number,"questions":[{"question":string,"answer":string|null,"evidence":string|null,"requirement_met":true|false|null,"confidence":number,"reasoning":string}]}. `+
		`If no questions are found, return {"question_count":0,"questions":[]}. `+
		"Use short, direct quotes for evidence when available. "+
		"Text:\n%s", text)
}
