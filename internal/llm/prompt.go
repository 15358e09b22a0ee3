package llm

import "strings"

// promptTemplate is the fixed instruction preceding the diff. It asks
// for a bare conventional-commit message; the sanitizer cleans up
// whatever decoration the model adds anyway.
const promptTemplate = `You are an assistant that writes git commit messages.
Write a single conventional commit message for the following staged diff.
The first line is a short imperative summary (max 72 characters), optionally
followed by a blank line and a brief body. Reply with the commit message
only: no explanations, no code fences, no quotes, no JSON.

Diff:
`

// truncationNotice tells the model the diff was cut to the size limit
const truncationNotice = "\n\n[Note: the diff above was truncated to fit the size limit. Summarize the visible changes.]"

// BuildPrompt embeds the diff in the instruction template, appending an
// explicit notice when the diff was cut.
func BuildPrompt(diff string, truncated bool) string {
	var b strings.Builder
	b.WriteString(promptTemplate)
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString(truncationNotice)
	}
	return b.String()
}
