package diffview

// RowKind classifies a display row. It extends line kinds with the
// synthetic collapsed marker standing in for a folded context run.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdded
	RowRemoved
	RowMeta
	RowCollapsed
)

// Row is one display-ready line. Line numbers are always carried even
// when Options.ShowLineNumbers is off; hiding the gutter is a
// presentation decision, not a data transform.
type Row struct {
	Kind  RowKind
	OldNo int
	NewNo int
	Text  string
	// Count and Hidden are set only on RowCollapsed rows: Count is the
	// number of folded lines and Hidden holds their rows in original
	// order, ready to be spliced back by Expand.
	Count  int
	Hidden []Row
}

// Options are the display toggles. Toggling either one only requires a
// re-render of the already parsed hunks, not a re-parse.
type Options struct {
	ShowLineNumbers bool
	CollapseContext bool
}

// Context runs longer than collapseThreshold fold down to collapseWindow
// lines at each edge plus one collapsed marker row.
const (
	collapseThreshold = 20
	collapseWindow    = 3
)

func rowFor(l Line) Row {
	r := Row{OldNo: l.OldNo, NewNo: l.NewNo, Text: l.Text}
	switch l.Kind {
	case Added:
		r.Kind = RowAdded
	case Removed:
		r.Kind = RowRemoved
	case Meta:
		r.Kind = RowMeta
	default:
		r.Kind = RowContext
	}
	return r
}

// Render flattens hunks into display rows. Per hunk the header lines come
// first, then the body with maximal context runs folded when
// Options.CollapseContext is set.
func Render(hunks []Hunk, opts Options) []Row {
	var rows []Row

	for _, h := range hunks {
		for _, l := range h.Meta {
			rows = append(rows, rowFor(l))
		}

		var run []Row
		flush := func() {
			rows = append(rows, foldRun(run, opts.CollapseContext)...)
			run = nil
		}

		for _, l := range h.Lines {
			if l.Kind == Context {
				run = append(run, rowFor(l))
				continue
			}
			flush()
			rows = append(rows, rowFor(l))
		}
		flush()
	}

	return rows
}

// foldRun emits a context run, folding its middle when collapsing is on
// and the run is long enough to be worth it.
func foldRun(run []Row, collapse bool) []Row {
	if !collapse || len(run) <= collapseThreshold {
		return run
	}

	hidden := make([]Row, len(run)-2*collapseWindow)
	copy(hidden, run[collapseWindow:len(run)-collapseWindow])

	out := make([]Row, 0, 2*collapseWindow+1)
	out = append(out, run[:collapseWindow]...)
	out = append(out, Row{
		Kind:   RowCollapsed,
		Count:  len(hidden),
		Hidden: hidden,
	})
	out = append(out, run[len(run)-collapseWindow:]...)
	return out
}

// Expand splices the hidden rows of the collapsed row at index i back
// into the sequence, returning a new slice. Rows that are not collapsed
// markers are left alone.
func Expand(rows []Row, i int) []Row {
	if i < 0 || i >= len(rows) || rows[i].Kind != RowCollapsed {
		return rows
	}

	out := make([]Row, 0, len(rows)-1+len(rows[i].Hidden))
	out = append(out, rows[:i]...)
	out = append(out, rows[i].Hidden...)
	out = append(out, rows[i+1:]...)
	return out
}
