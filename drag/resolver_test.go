package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsachdeva7/dev-clipboard/tree"
)

const rowH = 24.0

// threeRows is [folder, file, file] stacked at 24px each.
func threeRows() []Row {
	return []Row{
		{NodeID: "folder", Top: 0, Height: rowH, IsFolder: true},
		{NodeID: "mid", Top: rowH, Height: rowH},
		{NodeID: "last", Top: 2 * rowH, Height: rowH},
	}
}

func TestResolve_FolderInterior(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	// Anywhere between the edge bands swallows the drop.
	for _, y := range []float64{8, 12, 16} {
		got := r.Resolve(y, rows, 0, None())
		assert.Equal(t, IntoFolder("folder"), got, "y=%v", y)
	}
}

func TestResolve_FolderEdgeBands(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	// Top band of the first sibling: before it.
	got := r.Resolve(4, rows, 0, None())
	assert.Equal(t, AtPosition("folder", tree.Before), got)

	// Bottom band: after it.
	got = r.Resolve(21, rows, 0, None())
	assert.Equal(t, AtPosition("folder", tree.After), got)
}

func TestResolve_FileRowIgnoresEdgeBands(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	// Dead center of a file row still resolves positionally.
	got := r.Resolve(2*rowH+rowH/2+5, rows, 2, None())
	assert.Equal(t, AtPosition("last", tree.After), got)
}

func TestResolve_TopHalfNotFirst_AnchorsToPrevious(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	// Top half of "mid" (not first) anchors after "folder", not before "mid".
	got := r.Resolve(rowH+6, rows, 1, None())
	assert.Equal(t, AtPosition("folder", tree.After), got)
}

func TestResolve_BottomHalf(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	// Bottom half, not last: after this node.
	got := r.Resolve(rowH+18, rows, 1, None())
	assert.Equal(t, AtPosition("mid", tree.After), got)

	// Bottom half of the last sibling: after it.
	got = r.Resolve(2*rowH+20, rows, 2, None())
	assert.Equal(t, AtPosition("last", tree.After), got)
}

func TestResolve_Hysteresis(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()
	mid := rows[1].center()

	// Pointer just above center with the "after mid" indicator already shown:
	// keep it instead of flipping to "after folder".
	incumbent := AtPosition("mid", tree.After)
	got := r.Resolve(mid-2, rows, 1, incumbent)
	assert.Equal(t, incumbent, got)

	// Same position without the matching incumbent resolves normally.
	got = r.Resolve(mid-2, rows, 1, None())
	assert.Equal(t, AtPosition("folder", tree.After), got)

	// Outside the band the incumbent no longer pins the verdict.
	got = r.Resolve(mid-6, rows, 1, incumbent)
	assert.Equal(t, AtPosition("folder", tree.After), got)
}

func TestResolve_InvalidHoverIndex(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	assert.Equal(t, None(), r.Resolve(10, rows, -1, None()))
	assert.Equal(t, None(), r.Resolve(10, rows, 3, None()))
}

func TestResolveEmptySpace(t *testing.T) {
	r := DefaultResolver()
	rows := threeRows()

	assert.Equal(t, AtPosition("folder", tree.Before), r.ResolveEmptySpace(-10, rows))
	assert.Equal(t, AtPosition("last", tree.After), r.ResolveEmptySpace(100, rows))
	assert.Equal(t, None(), r.ResolveEmptySpace(30, rows), "pointer inside the row span hits no empty space")
	assert.Equal(t, None(), r.ResolveEmptySpace(10, nil))
}

func TestDropEffect_AlwaysMove(t *testing.T) {
	r := DefaultResolver()
	assert.Equal(t, EffectMove, r.DropEffect(Session{Internal: true}))
	assert.Equal(t, EffectMove, r.DropEffect(Session{Internal: false}))
}
