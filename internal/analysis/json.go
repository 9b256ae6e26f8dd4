package analysis

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates and parses a JSON object embedded in free-form model
// output, tolerating prose around the {...} span. It reports false when no
// object can be parsed; that is a valid negative outcome, not a fault.
func ExtractJSON(text string, v any) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if json.Unmarshal([]byte(text), v) == nil {
		return true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return false
	}
	return json.Unmarshal([]byte(text[start:end+1]), v) == nil
}
