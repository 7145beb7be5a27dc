package extraction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spigell/resume-extractor/internal/candidate"
)

func TestBuildPromptTruncatesText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", DefaultMaxTextChars) + "TAIL"
	prompt := BuildPrompt(text, candidate.DefaultSchema(), 0)

	if strings.Contains(prompt, "TAIL") {
		t.Fatalf("expected text after %d characters to be dropped", DefaultMaxTextChars)
	}
	if !strings.Contains(prompt, strings.Repeat("a", DefaultMaxTextChars)) {
		t.Fatalf("expected the first %d characters to be kept", DefaultMaxTextChars)
	}
}

func TestBuildPromptCountsRunes(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt("ÉéÉé", candidate.DefaultSchema(), 3)
	if !strings.Contains(prompt, "ÉéÉ\n--- END TEXT ---") {
		t.Fatalf("expected rune-based truncation, got:\n%s", prompt)
	}
}

func TestBuildPromptEmbedsSchema(t *testing.T) {
	t.Parallel()

	schema := candidate.DefaultSchema()
	prompt := BuildPrompt("Jane Doe", schema, 0)

	start := strings.Index(prompt, "{")
	end := strings.Index(prompt, "\n}") + 2
	if start < 0 || end < start {
		t.Fatalf("schema block not found in prompt:\n%s", prompt)
	}

	var fields map[string]map[string]string
	if err := json.Unmarshal([]byte(prompt[start:end]), &fields); err != nil {
		t.Fatalf("schema block is not valid json: %v", err)
	}
	for _, field := range schema.Fields() {
		if fields[string(field)]["type"] != "string" {
			t.Fatalf("field %s missing from schema block", field)
		}
	}

	previous := -1
	for _, field := range schema.Fields() {
		idx := strings.Index(prompt, `"`+string(field)+`"`)
		if idx < previous {
			t.Fatalf("field %s out of schema order", field)
		}
		previous = idx
	}

	for _, want := range []string{"output NA", "JSON object", "--- BEGIN TEXT ---\nJane Doe\n--- END TEXT ---"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	t.Parallel()

	schema := candidate.DefaultSchema()
	if BuildPrompt("text", schema, 0) != BuildPrompt("text", schema, 0) {
		t.Fatalf("expected identical prompts for identical input")
	}
}
