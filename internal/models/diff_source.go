package models

// DiffOrigin tags where a diff came from
type DiffOrigin int

const (
	// OriginStaged means the diff was read from the index (git diff --cached)
	OriginStaged DiffOrigin = iota
	// OriginCustom means the diff was supplied by the user (file or paste)
	OriginCustom
)

// Display returns a short label for the origin
func (o DiffOrigin) Display() string {
	switch o {
	case OriginStaged:
		return "staged"
	case OriginCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// DiffSource is a diff text blob plus its provenance. The parser treats
// Text as opaque input; Truncated drives the prompt notice and the
// viewer title.
type DiffSource struct {
	Text      string
	Truncated bool
	Origin    DiffOrigin
}
