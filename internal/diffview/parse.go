// Package diffview parses unified-diff text into hunks and renders them
// as display rows with line numbers and collapsible context runs.
package diffview

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a single diff line.
type Kind int

const (
	// Context is an unchanged line present on both sides
	Context Kind = iota
	// Added is a line present only on the new side
	Added
	// Removed is a line present only on the old side
	Removed
	// Meta is a file/hunk header or a no-newline marker
	Meta
)

// Line is one logical line of a diff body. OldNo/NewNo are 0 when the
// line has no number on that side (real line numbers start at 1).
type Line struct {
	Kind  Kind
	OldNo int
	NewNo int
	// Text keeps the leading +/-/space sigil verbatim for display
	Text string
}

// Hunk is an ordered group of header lines followed by body lines.
type Hunk struct {
	Meta  []Line
	Lines []Line
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// metaPrefixes are file-level header lines. They group into the current
// hunk's meta section rather than each starting a hunk of their own.
var metaPrefixes = []string{"diff ", "index ", "--- ", "+++ "}

func isFileHeader(line string) bool {
	for _, p := range metaPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Parse scans diff text into a sequence of hunks. It never fails:
// unrecognized lines degrade to context lines without numbers so that
// arbitrary pasted text still renders. Empty input yields no hunks.
func Parse(text string) []Hunk {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	// A trailing newline splits into one empty trailing element; drop it
	// so it does not render as a phantom context line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var hunks []Hunk
	oldNo, newNo := 0, 0

	// current returns the open hunk, opening one if needed. Meta lines may
	// not follow body lines within a hunk, so a header arriving after body
	// starts a fresh hunk.
	current := func(meta bool) *Hunk {
		if len(hunks) == 0 {
			hunks = append(hunks, Hunk{})
		} else if meta && len(hunks[len(hunks)-1].Lines) > 0 {
			hunks = append(hunks, Hunk{})
		}
		return &hunks[len(hunks)-1]
	}

	for _, raw := range lines {
		if m := hunkHeaderRe.FindStringSubmatch(raw); m != nil {
			oldNo, _ = strconv.Atoi(m[1])
			newNo, _ = strconv.Atoi(m[2])
			h := current(true)
			h.Meta = append(h.Meta, Line{Kind: Meta, Text: raw})
			continue
		}

		if isFileHeader(raw) {
			h := current(true)
			h.Meta = append(h.Meta, Line{Kind: Meta, Text: raw})
			continue
		}

		h := current(false)
		switch {
		case strings.HasPrefix(raw, "+"):
			h.Lines = append(h.Lines, Line{Kind: Added, NewNo: newNo, Text: raw})
			newNo++
		case strings.HasPrefix(raw, "-"):
			h.Lines = append(h.Lines, Line{Kind: Removed, OldNo: oldNo, Text: raw})
			oldNo++
		case strings.HasPrefix(raw, `\`):
			// "\ No newline at end of file"
			h.Lines = append(h.Lines, Line{Kind: Meta, Text: raw})
		case raw == "" || strings.HasPrefix(raw, " "):
			text := raw
			if text == "" {
				// keep column alignment for blank context lines
				text = " "
			}
			h.Lines = append(h.Lines, Line{Kind: Context, OldNo: oldNo, NewNo: newNo, Text: text})
			oldNo++
			newNo++
		default:
			// No recognized sigil: lenient fallback so pasted garbage
			// never breaks the preview. No line numbers.
			h.Lines = append(h.Lines, Line{Kind: Context, Text: raw})
		}
	}

	return hunks
}
