package analysis

import (
	"regexp"
	"strings"
)

// Pattern families for question-like spans, applied in fixed order. This is
// a crude heuristic used only when no AI backend is available; false
// positives and negatives are expected.
var (
	// Numbered items: "1. ...?", "2) ...?"
	numberedRe = regexp.MustCompile(`(?m)(?:^|\n)\s*(\d+[.)][^\n?]*\?)`)

	// Generic sentences: uppercase start, ends with a question mark.
	// Intentionally broad; overlaps with the other families.
	sentenceRe = regexp.MustCompile(`([A-Z][^?]*\?)`)

	// Common audit question leads.
	auditRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Does [^?]*\?)`),
		regexp.MustCompile(`(?i)(Is there [^?]*\?)`),
		regexp.MustCompile(`(?i)(Are [^?]*\?)`),
		regexp.MustCompile(`(?i)(Has [^?]*\?)`),
		regexp.MustCompile(`(?i)(Have [^?]*\?)`),
		regexp.MustCompile(`(?i)(Was [^?]*\?)`),
		regexp.MustCompile(`(?i)(Were [^?]*\?)`),
	}
)

const minQuestionLen = 10

// ExtractQuestions scans raw document text for audit-style questions.
// Candidates are trimmed, very short matches dropped, and duplicates removed
// with first-seen-wins ordering across the pattern families.
func ExtractQuestions(text string) []string {
	var candidates []string

	for _, m := range numberedRe.FindAllStringSubmatch(text, -1) {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, sentenceRe.FindAllString(text, -1)...)
	for _, re := range auditRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidates = append(candidates, m[1])
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, q := range candidates {
		q = strings.TrimSpace(q)
		if len(q) <= minQuestionLen {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}
