// Package sanitize extracts a usable commit message from raw language
// model output. Models wrap their answer in prose, code fences, JSON or
// quotation marks, so extraction is a pipeline of cheap order-sensitive
// heuristics rather than one regex. Every stage swallows its own
// failures and passes the previous text through; the pipeline as a whole
// cannot fail, it can only report that nothing usable was found.
package sanitize

import (
	"encoding/json"
	"strings"
)

// DefaultMessage is the placeholder used when neither the model output
// nor the caller-supplied fallback yields anything usable.
const DefaultMessage = "chore: update"

// jsonFields are the object fields tried in priority order when the
// model answers with a JSON object.
var jsonFields = []string{"message", "commit", "response", "text", "content"}

// quoteChars covers straight, curly and guillemet quotes plus backticks.
const quoteChars = "`\"'“”‘’«»"

// Clean runs raw model output through the extraction pipeline and
// reports whether a non-empty message came out of it.
func Clean(raw string) (string, bool) {
	text, ok := trimEdges(raw)
	if !ok {
		return "", false
	}

	text = stripFence(text)
	text = strings.TrimSpace(text)
	text = unwrapJSON(text)

	// Strip runs of quote-like characters, each end independently.
	text = strings.TrimLeft(text, quoteChars)
	text = strings.TrimRight(text, quoteChars)

	return trimEdges(text)
}

// Compose is the caller-facing fallback chain: the sanitized message if
// one was extracted, else the caller's fallback verbatim if it is
// non-blank, else DefaultMessage.
func Compose(raw, fallback string) string {
	if msg, ok := Clean(raw); ok {
		return msg
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return DefaultMessage
}

// trimEdges drops leading/trailing blank lines, strips trailing
// whitespace from the remaining lines and rejoins them.
func trimEdges(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start == end {
		return "", false
	}

	kept := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.Join(kept, "\n"), true
}

// stripFence removes one layer of code fencing: a leading line starting
// with ``` and a trailing one. Interior fences are left alone.
func stripFence(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// unwrapJSON pulls the message out of a JSON answer. Parse failures and
// unhelpful shapes keep the input text unchanged.
func unwrapJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return text
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return text
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, field := range jsonFields {
			if s, ok := v[field].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return text
}
