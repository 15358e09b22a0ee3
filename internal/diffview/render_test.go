package diffview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextDiff(n int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("@@ -1,%d +1,%d @@\n", n, n))
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, " line%d\n", i)
	}
	return b.String()
}

func TestRenderShortRunNotCollapsed(t *testing.T) {
	hunks := Parse(contextDiff(20))
	rows := Render(hunks, Options{CollapseContext: true})

	// 1 header + 20 context rows, nothing folded
	require.Len(t, rows, 21)
	for _, r := range rows[1:] {
		assert.NotEqual(t, RowCollapsed, r.Kind)
	}
}

func TestRenderLongRunCollapsed(t *testing.T) {
	hunks := Parse(contextDiff(25))
	rows := Render(hunks, Options{CollapseContext: true})

	// header + 3 leading + marker + 3 trailing
	require.Len(t, rows, 8)
	marker := rows[4]
	assert.Equal(t, RowCollapsed, marker.Kind)
	assert.Equal(t, 19, marker.Count)
	assert.Len(t, marker.Hidden, 19)

	// Edges keep their numbers
	assert.Equal(t, 1, rows[1].OldNo)
	assert.Equal(t, 3, rows[3].OldNo)
	assert.Equal(t, 23, rows[5].OldNo)
	assert.Equal(t, 25, rows[7].OldNo)
}

func TestRenderCollapseDisabled(t *testing.T) {
	hunks := Parse(contextDiff(25))
	rows := Render(hunks, Options{CollapseContext: false})

	require.Len(t, rows, 26)
	for _, r := range rows {
		assert.NotEqual(t, RowCollapsed, r.Kind)
	}
}

func TestRenderRunBrokenByChange(t *testing.T) {
	var b strings.Builder
	b.WriteString("@@ -1,31 +1,31 @@\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, " a%d\n", i)
	}
	b.WriteString("-x\n+y\n")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, " b%d\n", i)
	}

	rows := Render(Parse(b.String()), Options{CollapseContext: true})

	// Neither 15-line run crosses the threshold on its own
	for _, r := range rows {
		assert.NotEqual(t, RowCollapsed, r.Kind)
	}
}

func TestExpandRestoresRun(t *testing.T) {
	hunks := Parse(contextDiff(25))
	rows := Render(hunks, Options{CollapseContext: true})
	full := Render(hunks, Options{CollapseContext: false})

	expanded := Expand(rows, 4)

	require.Equal(t, len(full), len(expanded))
	assert.Equal(t, full, expanded)
}

func TestExpandNonCollapsedNoOp(t *testing.T) {
	hunks := Parse(contextDiff(25))
	rows := Render(hunks, Options{CollapseContext: true})

	assert.Equal(t, rows, Expand(rows, 0))
	assert.Equal(t, rows, Expand(rows, -1))
	assert.Equal(t, rows, Expand(rows, len(rows)))
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	hunks := Parse(contextDiff(25))
	rows := Render(hunks, Options{CollapseContext: true})
	before := len(rows)

	_ = Expand(rows, 4)

	assert.Len(t, rows, before)
	assert.Equal(t, RowCollapsed, rows[4].Kind)
}

func TestRenderNeverPanicsOnArbitraryText(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"@@ broken header\n+x\n",
		"@@ -1 +1 @@",
		strings.Repeat("+add\n", 100),
		"no sigils at all",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			Render(Parse(in), Options{ShowLineNumbers: true, CollapseContext: true})
		})
	}
}
