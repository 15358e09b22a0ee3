package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPlainMessage(t *testing.T) {
	msg, ok := Clean("feat: add retry logic")

	require.True(t, ok)
	assert.Equal(t, "feat: add retry logic", msg)
}

func TestCleanMultiline(t *testing.T) {
	raw := "\nfix: handle nil repo\n\nThe walk returned nil without an error.  \n\n"
	msg, ok := Clean(raw)

	require.True(t, ok)
	assert.Equal(t, "fix: handle nil repo\n\nThe walk returned nil without an error.", msg)
}

func TestCleanCodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare fence",
			raw:  "```\nfeat: add config\n```",
			want: "feat: add config",
		},
		{
			name: "language tag",
			raw:  "```text\nfeat: add config\n```",
			want: "feat: add config",
		},
		{
			name: "inner fence body survives",
			raw:  "```\nfeat: add config\n\n```go\nfunc x() {}\n```\n```",
			want: "feat: add config\n\n```go\nfunc x() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Clean(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestCleanJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "message field",
			raw:  `{"message": "feat: add parser"}`,
			want: "feat: add parser",
		},
		{
			name: "field priority",
			raw:  `{"content": "wrong", "message": "right"}`,
			want: "right",
		},
		{
			name: "commit field",
			raw:  `{"commit": "fix: off by one"}`,
			want: "fix: off by one",
		},
		{
			name: "invalid json passes through",
			raw:  `{not json`,
			want: "{not json",
		},
		{
			name: "no usable field passes through",
			raw:  `{"other": 42}`,
			want: `{"other": 42}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Clean(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg)
		})
	}
}

func TestCleanFencedJSON(t *testing.T) {
	msg, ok := Clean("```json\n{\"message\": \"chore: bump deps\"}\n```")

	require.True(t, ok)
	assert.Equal(t, "chore: bump deps", msg)
}

func TestCleanQuotes(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"feat: quoted"`, "feat: quoted"},
		{"'feat: single'", "feat: single"},
		{"`feat: ticked`", "feat: ticked"},
		{"“feat: curly”", "feat: curly"},
		{`""feat: doubled""`, "feat: doubled"},
	}

	for _, tt := range tests {
		msg, ok := Clean(tt.raw)
		require.True(t, ok)
		assert.Equal(t, tt.want, msg)
	}
}

func TestCleanBlank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n", " \t \n  "} {
		msg, ok := Clean(raw)
		assert.False(t, ok)
		assert.Empty(t, msg)
	}
}

func TestCleanOnlyQuotes(t *testing.T) {
	msg, ok := Clean(`""`)

	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"```\nfeat: add config\n```",
		`{"message": "feat: add parser"}`,
		"\"quoted subject\"",
		"plain: message\n\nwith body",
	}

	for _, in := range inputs {
		first, ok := Clean(in)
		require.True(t, ok)
		second, ok := Clean(first)
		require.True(t, ok)
		assert.Equal(t, first, second)
	}
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "feat: x", Compose("feat: x", "fallback"))
	assert.Equal(t, "fallback", Compose("", "fallback"))
	assert.Equal(t, DefaultMessage, Compose("", ""))
	assert.Equal(t, DefaultMessage, Compose("\n\n", "  "))
}
