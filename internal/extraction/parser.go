package extraction

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// jsonBlock matches the shortest brace-delimited block, across lines.
	jsonBlock     = regexp.MustCompile(`(?s)\{.*?\}`)
	controlChars  = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
	escapedSpaces = regexp.MustCompile(`\\[nt]`)
)

// ParseResponse extracts the first JSON object from a model completion.
// Only the first brace-delimited block is considered, even if a later one is better formed.
func ParseResponse(raw string) (map[string]any, error) {
	block, ok := FirstJSONBlock(raw)
	if !ok {
		return nil, &NoJSONFoundError{Raw: raw}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(Sanitize(block)), &data); err != nil {
		return nil, &JSONParseError{Err: err, Raw: raw}
	}

	return data, nil
}

// FirstJSONBlock returns the first non-greedy {...} match of the completion.
func FirstJSONBlock(raw string) (string, bool) {
	block := jsonBlock.FindString(raw)
	return block, block != ""
}

// Sanitize removes control characters that break JSON decoding and replaces
// literal \n and \t escape sequences with a single space.
func Sanitize(block string) string {
	block = controlChars.ReplaceAllString(block, "")
	block = escapedSpaces.ReplaceAllString(block, " ")
	return strings.TrimSpace(block)
}
