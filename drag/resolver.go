// Package drag turns pointer geometry into structural edit intents. The
// resolver is pure: it sees the row boxes the panel currently renders and the
// pointer's Y coordinate, and decides whether the drag means "drop into this
// folder" or "insert before/after this sibling". Applying the intent is the
// panel's job.
package drag

import "github.com/jsachdeva7/dev-clipboard/tree"

// Geometry defaults, in pixels.
const (
	// DefaultEdgeBandPx is the band at the top and bottom of a folder row
	// where a drag means "insert next to" rather than "drop inside".
	DefaultEdgeBandPx = 8

	// DefaultHysteresisPx is the half-width of the dead zone around a row's
	// vertical center used to suppress indicator flicker on the boundary.
	DefaultHysteresisPx = 4
)

// IntentKind tags a resolved drop intent.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentIntoFolder
	IntentPosition
)

// Intent is the resolver's verdict for the current pointer position. Only
// IntentIntoFolder and IntentPosition trigger tree mutations on drop.
type Intent struct {
	Kind        IntentKind
	FolderID    string        // IntentIntoFolder: drop target folder
	ReferenceID string        // IntentPosition: sibling anchoring the insert
	Position    tree.Position // IntentPosition: side of the reference
}

func None() Intent { return Intent{Kind: IntentNone} }

func IntoFolder(folderID string) Intent {
	return Intent{Kind: IntentIntoFolder, FolderID: folderID}
}

func AtPosition(referenceID string, pos tree.Position) Intent {
	return Intent{Kind: IntentPosition, ReferenceID: referenceID, Position: pos}
}

// Row is the rendered bounding box of one tree node, in panel coordinates.
type Row struct {
	NodeID     string
	Top        float64
	Height     float64
	IsFolder   bool
	IsExpanded bool
}

func (r Row) bottom() float64 { return r.Top + r.Height }
func (r Row) center() float64 { return r.Top + r.Height/2 }

// Session describes the in-flight drag: internal moves reposition an existing
// node, external drags bring OS paths in. The geometry policy is identical;
// the panel picks the mutation.
type Session struct {
	Internal bool
}

// Effect is the drop cursor the UI should present.
type Effect int

const EffectMove Effect = iota

// Resolver holds the tunable geometry constants.
type Resolver struct {
	EdgeBand   float64
	Hysteresis float64
}

func NewResolver(edgeBand, hysteresis float64) Resolver {
	return Resolver{EdgeBand: edgeBand, Hysteresis: hysteresis}
}

func DefaultResolver() Resolver {
	return NewResolver(DefaultEdgeBandPx, DefaultHysteresisPx)
}

// Resolve decides the drop intent for a pointer hovering the row at
// hoverIndex within siblings (the ordered children list that contains it).
// current is the intent backing the indicator already on screen; it is
// returned unchanged inside the hysteresis band to avoid oscillation.
func (r Resolver) Resolve(pointerY float64, siblings []Row, hoverIndex int, current Intent) Intent {
	if hoverIndex < 0 || hoverIndex >= len(siblings) {
		return None()
	}
	row := siblings[hoverIndex]

	// Folder interior (outside the edge bands) swallows the drop.
	if row.IsFolder && pointerY >= row.Top+r.EdgeBand && pointerY <= row.bottom()-r.EdgeBand {
		return IntoFolder(row.NodeID)
	}

	mid := row.center()

	// Pointer sitting on the half boundary: keep the incumbent indicator if
	// it already is the "after this row" verdict.
	if pointerY >= mid-r.Hysteresis && pointerY <= mid+r.Hysteresis &&
		current.Kind == IntentPosition && current.ReferenceID == row.NodeID && current.Position == tree.After {
		return current
	}

	if pointerY < mid {
		if hoverIndex == 0 {
			return AtPosition(row.NodeID, tree.Before)
		}
		// Anchor to the previous sibling instead of "before current": the
		// reference stays stable while the pointer crosses row boundaries.
		return AtPosition(siblings[hoverIndex-1].NodeID, tree.After)
	}
	return AtPosition(row.NodeID, tree.After)
}

// ResolveEmptySpace handles pointer positions that hit no row: below every
// root row the drop lands after the last one, above every row before the
// first.
func (r Resolver) ResolveEmptySpace(pointerY float64, rows []Row) Intent {
	if len(rows) == 0 {
		return None()
	}
	if pointerY < rows[0].Top {
		return AtPosition(rows[0].NodeID, tree.Before)
	}
	if pointerY > rows[len(rows)-1].bottom() {
		return AtPosition(rows[len(rows)-1].NodeID, tree.After)
	}
	return None()
}

// DropEffect reports the cursor for an active drag over the panel. It is
// always a move: the panel never presents a rejected-drop cursor, even over
// areas with no droppable target.
func (r Resolver) DropEffect(Session) Effect {
	return EffectMove
}
