package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yanjianzhang/CommitAIFlow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateDiff(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		limit         int
		want          string
		wantTruncated bool
	}{
		{
			name:  "no limit",
			text:  "abc\ndef\n",
			limit: 0,
			want:  "abc\ndef\n",
		},
		{
			name:  "under limit",
			text:  "abc\n",
			limit: 100,
			want:  "abc\n",
		},
		{
			name:  "exactly at limit",
			text:  "abcd",
			limit: 4,
			want:  "abcd",
		},
		{
			name:          "cuts at line boundary",
			text:          "line one\nline two\nline three\n",
			limit:         15,
			want:          "line one",
			wantTruncated: true,
		},
		{
			name:          "no newline before limit",
			text:          strings.Repeat("x", 50),
			limit:         10,
			want:          strings.Repeat("x", 10),
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateDiff(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestReadDiffFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "changes.diff")
	content := "@@ -1 +1 @@\n-a\n+b\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	diff, err := ReadDiffFile(path, 0)

	require.NoError(t, err)
	assert.Equal(t, content, diff.Text)
	assert.False(t, diff.Truncated)
	assert.Equal(t, models.OriginCustom, diff.Origin)
}

func TestReadDiffFileTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.diff")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	diff, err := ReadDiffFile(path, 9)

	require.NoError(t, err)
	assert.Equal(t, "one\ntwo", diff.Text)
	assert.True(t, diff.Truncated)
}

func TestReadDiffFileMissing(t *testing.T) {
	_, err := ReadDiffFile(filepath.Join(t.TempDir(), "nope.diff"), 0)
	assert.Error(t, err)
}
