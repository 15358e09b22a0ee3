package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	assert.Nil(t, Parse(""))
}

func TestParseSimpleHunk(t *testing.T) {
	hunks := Parse("@@ -1,2 +1,3 @@\n-old\n+new\n+added\n")

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Meta, 1)
	assert.Equal(t, Meta, hunks[0].Meta[0].Kind)
	assert.Equal(t, "@@ -1,2 +1,3 @@", hunks[0].Meta[0].Text)

	require.Len(t, hunks[0].Lines, 3)

	assert.Equal(t, Removed, hunks[0].Lines[0].Kind)
	assert.Equal(t, 1, hunks[0].Lines[0].OldNo)
	assert.Equal(t, 0, hunks[0].Lines[0].NewNo)
	assert.Equal(t, "-old", hunks[0].Lines[0].Text)

	assert.Equal(t, Added, hunks[0].Lines[1].Kind)
	assert.Equal(t, 0, hunks[0].Lines[1].OldNo)
	assert.Equal(t, 1, hunks[0].Lines[1].NewNo)

	assert.Equal(t, Added, hunks[0].Lines[2].Kind)
	assert.Equal(t, 2, hunks[0].Lines[2].NewNo)
}

func TestParseFileHeadersGroupIntoMeta(t *testing.T) {
	diff := "diff --git a/x.go b/x.go\n" +
		"index 111..222 100644\n" +
		"--- a/x.go\n" +
		"+++ b/x.go\n" +
		"@@ -1 +1 @@\n" +
		"-a\n" +
		"+b\n"
	hunks := Parse(diff)

	require.Len(t, hunks, 1)
	assert.Len(t, hunks[0].Meta, 5)
	assert.Len(t, hunks[0].Lines, 2)
}

func TestParseSecondFileStartsNewHunk(t *testing.T) {
	diff := "--- a/x.go\n" +
		"+++ b/x.go\n" +
		"@@ -1 +1 @@\n" +
		"-a\n" +
		"+b\n" +
		"--- a/y.go\n" +
		"+++ b/y.go\n" +
		"@@ -5 +5 @@\n" +
		" ctx\n"
	hunks := Parse(diff)

	require.Len(t, hunks, 2)
	assert.Len(t, hunks[0].Meta, 3)
	assert.Len(t, hunks[1].Meta, 3)

	// Counters reset at the second header
	require.Len(t, hunks[1].Lines, 1)
	assert.Equal(t, 5, hunks[1].Lines[0].OldNo)
	assert.Equal(t, 5, hunks[1].Lines[0].NewNo)
}

func TestParseCountersPerSigil(t *testing.T) {
	diff := "@@ -10,4 +20,4 @@\n" +
		" ctx1\n" +
		"-gone\n" +
		"+here\n" +
		" ctx2\n"
	hunks := Parse(diff)

	require.Len(t, hunks, 1)
	lines := hunks[0].Lines
	require.Len(t, lines, 4)

	assert.Equal(t, 10, lines[0].OldNo)
	assert.Equal(t, 20, lines[0].NewNo)
	assert.Equal(t, 11, lines[1].OldNo) // removed consumes old only
	assert.Equal(t, 21, lines[2].NewNo) // added consumes new only
	assert.Equal(t, 12, lines[3].OldNo)
	assert.Equal(t, 22, lines[3].NewNo)
}

func TestParseHeaderWithoutCounts(t *testing.T) {
	hunks := Parse("@@ -3 +7 @@\n x\n")

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Lines, 1)
	assert.Equal(t, 3, hunks[0].Lines[0].OldNo)
	assert.Equal(t, 7, hunks[0].Lines[0].NewNo)
}

func TestParseNoNewlineMarker(t *testing.T) {
	hunks := Parse("@@ -1 +1 @@\n-a\n\\ No newline at end of file\n+b\n")

	require.Len(t, hunks, 1)
	lines := hunks[0].Lines
	require.Len(t, lines, 3)
	assert.Equal(t, Meta, lines[1].Kind)
	assert.Equal(t, 0, lines[1].OldNo)
	assert.Equal(t, 0, lines[1].NewNo)
	// The marker does not consume a number on either side
	assert.Equal(t, 1, lines[2].NewNo)
}

func TestParseBlankLineIsContext(t *testing.T) {
	hunks := Parse("@@ -1,2 +1,2 @@\n\n x\n")

	require.Len(t, hunks, 1)
	lines := hunks[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, Context, lines[0].Kind)
	assert.Equal(t, " ", lines[0].Text)
	assert.Equal(t, 1, lines[0].OldNo)
	assert.Equal(t, 2, lines[1].OldNo)
}

func TestParseTrailingNewlineDropped(t *testing.T) {
	with := Parse("@@ -1 +1 @@\n x\n")
	without := Parse("@@ -1 +1 @@\n x")

	assert.Equal(t, without, with)
}

func TestParseGarbageNeverFails(t *testing.T) {
	hunks := Parse("this is not a diff\njust some text\n")

	require.Len(t, hunks, 1)
	require.Len(t, hunks[0].Lines, 2)
	for _, l := range hunks[0].Lines {
		assert.Equal(t, Context, l.Kind)
		assert.Equal(t, 0, l.OldNo)
		assert.Equal(t, 0, l.NewNo)
	}
}

func TestParseIdempotentOnReRender(t *testing.T) {
	diff := "@@ -1,3 +1,3 @@\n a\n-b\n+c\n d\n"
	first := Parse(diff)
	second := Parse(diff)

	assert.Equal(t, first, second)
}
