package extraction

import (
	"errors"
	"testing"
)

func TestParseResponseFirstMatchWins(t *testing.T) {
	t.Parallel()

	data, err := ParseResponse(`Here is the result: {"name": "Bob"} extra text {"name":"Alice"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["name"] != "Bob" {
		t.Fatalf("expected first block to win, got %v", data["name"])
	}
}

func TestParseResponseMultiline(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\n  \"name\": \"Jane Doe\",\n  \"email\": \"NA\"\n}\n```"
	data, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data["name"] != "Jane Doe" || data["email"] != "NA" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestParseResponseSanitizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		key    string
		expect string
	}{
		{
			name:   "escaped newline and tab become spaces",
			raw:    `{"address": "12 Main St\nMontreal\tQC"}`,
			key:    "address",
			expect: "12 Main St Montreal QC",
		},
		{
			name:   "control characters are removed",
			raw:    "{\"name\": \"Ja\x01ne\x7f Doe\x0b\"}",
			key:    "name",
			expect: "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := ParseResponse(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if data[tt.key] != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, data[tt.key])
			}
		})
	}
}

func TestParseResponseNoJSON(t *testing.T) {
	t.Parallel()

	raw := "I could not find anything useful."
	_, err := ParseResponse(raw)

	var noJSON *NoJSONFoundError
	if !errors.As(err, &noJSON) {
		t.Fatalf("expected NoJSONFoundError, got %v", err)
	}
	if noJSON.Raw != raw {
		t.Fatalf("expected raw output to be kept, got %q", noJSON.Raw)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	t.Parallel()

	raw := `Result: {name: Bob} done`
	_, err := ParseResponse(raw)

	var parseErr *JSONParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected JSONParseError, got %v", err)
	}
	if parseErr.Raw != raw {
		t.Fatalf("expected raw output to be kept, got %q", parseErr.Raw)
	}
	if parseErr.Err == nil || errors.Unwrap(err) == nil {
		t.Fatalf("expected decoder error to be wrapped")
	}
}

func TestParseResponseNestedObjectIsCutShort(t *testing.T) {
	t.Parallel()

	// the non-greedy match stops at the first closing brace
	_, err := ParseResponse(`{"name": {"value": "Bob"}, "email": "NA"}`)

	var parseErr *JSONParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected JSONParseError, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	if got := Sanitize(" {\"a\":\"x\\ny\"}\x00 "); got != `{"a":"x y"}` {
		t.Fatalf("unexpected sanitized block %q", got)
	}
}
