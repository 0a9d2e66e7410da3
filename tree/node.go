// Package tree implements the in-memory file/folder model behind the drop
// panel: the FSNode entity and the Store that owns the current forest and
// exposes its full mutation API.
package tree

import (
	"github.com/google/uuid"

	"github.com/jsachdeva7/dev-clipboard/internal/util"
)

// NodeKind tags an FSNode as a file or a folder. It is fixed at creation.
type NodeKind int

const (
	KindFile NodeKind = iota
	KindFolder
)

func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// FSNode is the single tree entity. Content and SourcePath are only
// meaningful for KindFile nodes, Children only for KindFolder nodes; the
// constructors enforce the pairing. The ID is assigned once and survives
// renames and moves.
type FSNode struct {
	ID         string
	Name       string
	Kind       NodeKind
	Content    string    // files only; may be empty (unreadable or zero-length source)
	SourcePath string    // files only; normalized absolute path, empty when no disk backing
	Children   []*FSNode // folders only; order is display and serialization order
	IsEditing  bool      // transient: name currently being entered
	IsExpanded bool      // transient: folder children currently displayed
}

// NewFileNode creates a file node. sourcePath may be empty for files with no
// disk backing; otherwise it is normalized so watch updates can match it.
func NewFileNode(name, content, sourcePath string) *FSNode {
	if sourcePath != "" {
		sourcePath = NormalizePath(sourcePath)
	}
	return &FSNode{
		ID:         uuid.NewString(),
		Name:       name,
		Kind:       KindFile,
		Content:    content,
		SourcePath: sourcePath,
	}
}

// NewFolderNode creates a collapsed folder node with the given children.
func NewFolderNode(name string, children ...*FSNode) *FSNode {
	if children == nil {
		children = []*FSNode{}
	}
	return &FSNode{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     KindFolder,
		Children: children,
	}
}

func (n *FSNode) IsFile() bool   { return n.Kind == KindFile }
func (n *FSNode) IsFolder() bool { return n.Kind == KindFolder }

// Clone deep-copies the subtree rooted at n, preserving IDs.
func (n *FSNode) Clone() *FSNode {
	c := *n
	if n.IsFolder() {
		c.Children = make([]*FSNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// shallowCopy copies the node struct and its children slice header so the
// copy can be re-pointed at new children without touching the original.
func (n *FSNode) shallowCopy() *FSNode {
	c := *n
	return &c
}

// withChildren returns a copy of the folder node holding the given children
// slice. The original node is left untouched so prior snapshots stay valid.
func (n *FSNode) withChildren(children []*FSNode) *FSNode {
	c := n.shallowCopy()
	c.Children = children
	return c
}

// containsID reports whether id names n or any of its descendants.
func (n *FSNode) containsID(id string) bool {
	if n.ID == id {
		return true
	}
	for _, child := range n.Children {
		if child.containsID(id) {
			return true
		}
	}
	return false
}

// NormalizePath canonicalizes a source path for cross-OS comparison. Watch
// updates and file nodes must agree on this form for the path join to work.
func NormalizePath(p string) string {
	return util.NormalizePath(p)
}
