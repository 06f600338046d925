// Package jsonextract recovers a JSON object from free-form LLM output.
// Model responses are frequently wrapped in markdown fences or surrounded
// by prose, so extraction tries a chain of strategies in order and returns
// the first that yields a parseable object.
package jsonextract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError indicates that no JSON object could be recovered from the text.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no JSON object could be extracted from response (%d bytes)", len(e.Raw))
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// Extract returns the first JSON object found in raw. Strategies, in order:
// the whole text, the first fenced code block, the first brace-delimited
// span. Returns *ParseError when all strategies fail.
func Extract(raw string) (json.RawMessage, error) {
	if obj, ok := tryParse(strings.TrimSpace(raw)); ok {
		return obj, nil
	}

	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		if obj, ok := tryParse(m[1]); ok {
			return obj, nil
		}
	}

	if span := braceSpan(raw); span != "" {
		if obj, ok := tryParse(span); ok {
			return obj, nil
		}
	}

	return nil, &ParseError{Raw: raw}
}

// tryParse accepts s only when it is a complete JSON object.
func tryParse(s string) (json.RawMessage, bool) {
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(strings.TrimSpace(s)), true
}

// braceSpan returns the first balanced top-level {...} span in s.
func braceSpan(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
