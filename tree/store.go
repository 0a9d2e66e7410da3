package tree

import (
	"sync"

	"github.com/jsachdeva7/dev-clipboard/internal/util"
)

// Position selects which side of a reference sibling an insertion lands on.
type Position int

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Store owns the current forest of FSNodes and exposes the mutation API.
//
// Mutations never modify nodes in place: every change rebuilds the affected
// path through the tree and swaps in a fresh forest value, so a snapshot
// taken before the change stays valid for concurrent readers (render passes,
// serialization). The single intended writer is the UI/event thread, but
// watch callbacks call UpdateFileContent asynchronously, so the reference
// swap itself is guarded.
type Store struct {
	mu      sync.RWMutex
	forest  []*FSNode
	version uint64
	log     util.Logger
}

func NewStore() *Store {
	return &Store{
		forest: []*FSNode{},
		log:    util.GetLogger("tree.Store"),
	}
}

// Snapshot returns the current forest value. The returned slice and every
// node reachable from it are never mutated by later Store operations.
func (s *Store) Snapshot() []*FSNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forest
}

// Version increments on every applied mutation. A no-op leaves it unchanged.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) commit(forest []*FSNode) {
	s.forest = forest
	s.version++
}

// AddNodes appends nodes at root level, preserving input order. No dedup is
// attempted: dropping the same file twice yields two nodes.
func (s *Store) AddNodes(nodes []*FSNode) {
	if len(nodes) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	forest := make([]*FSNode, 0, len(s.forest)+len(nodes))
	forest = append(forest, s.forest...)
	forest = append(forest, nodes...)
	s.commit(forest)
	s.log.Debug().Int("count", len(nodes)).Msg("Added nodes at root")
}

// AddNodesToFolder appends nodes as the last children of the folder with
// folderID, or at root level when folderID is empty. A stale or unknown
// folderID falls back to root insertion so dropped nodes are never lost.
func (s *Store) AddNodesToFolder(nodes []*FSNode, folderID string) {
	if len(nodes) == 0 {
		return
	}
	if folderID == "" {
		s.AddNodes(nodes)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if forest, ok := appendToFolder(s.forest, folderID, nodes); ok {
		s.commit(forest)
		return
	}
	s.log.Warn().Str("folderID", folderID).Msg("Target folder not found; inserting at root")
	forest := make([]*FSNode, 0, len(s.forest)+len(nodes))
	forest = append(forest, s.forest...)
	forest = append(forest, nodes...)
	s.commit(forest)
}

// RemoveNode removes the node and its subtree wherever it sits. No-op when
// the id is not present.
func (s *Store) RemoveNode(id string) {
	s.DeleteNodes([]string{id})
}

// DeleteNodes removes every listed node and its subtree.
func (s *Store) DeleteNodes(ids []string) {
	if len(ids) == 0 {
		return
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if forest, changed := removeManyByID(s.forest, set); changed {
		s.commit(forest)
		s.log.Debug().Int("count", len(ids)).Msg("Deleted nodes")
	}
}

// CreateFolder appends a new collapsed folder at root level.
func (s *Store) CreateFolder(name string) *FSNode {
	folder := NewFolderNode(name)
	s.AddNodes([]*FSNode{folder})
	return folder
}

// CreateFolderForEditing appends a new collapsed folder with an empty name
// and the editing flag set, and returns its id so the caller can focus a
// name input.
func (s *Store) CreateFolderForEditing() string {
	folder := NewFolderNode("")
	folder.IsEditing = true
	s.AddNodes([]*FSNode{folder})
	return folder.ID
}

// UpdateNodeName renames the node and clears its editing flag. Guarding
// against empty names is the caller's job (the editing flow deletes the node
// instead of committing an empty rename).
func (s *Store) UpdateNodeName(id, name string) {
	s.updateNode(id, func(n *FSNode) {
		n.Name = name
		n.IsEditing = false
	})
}

// SetNodeEditing toggles the transient editing flag.
func (s *Store) SetNodeEditing(id string, editing bool) {
	s.updateNode(id, func(n *FSNode) { n.IsEditing = editing })
}

// SetNodeExpanded toggles whether a folder's children are displayed.
func (s *Store) SetNodeExpanded(id string, expanded bool) {
	s.updateNode(id, func(n *FSNode) { n.IsExpanded = expanded })
}

func (s *Store) updateNode(id string, apply func(*FSNode)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if forest, ok := rebuildNode(s.forest, id, apply); ok {
		s.commit(forest)
	}
}

// MoveNodeToFolder detaches the node (with its subtree) and appends it as
// the last child of the target folder, or at root level when targetFolderID
// is empty. The move is rejected as a no-op when the node is missing, when
// the target is missing or not a folder, and when the target sits inside the
// moving node's own subtree (a cyclic move).
func (s *Store) MoveNodeToFolder(nodeID, targetFolderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := findByID(s.forest, nodeID)
	if node == nil {
		return
	}
	if targetFolderID != "" {
		if targetFolderID == nodeID || node.containsID(targetFolderID) {
			s.log.Warn().Str("nodeID", nodeID).Str("targetFolderID", targetFolderID).
				Msg("Rejected move into own subtree")
			return
		}
		target := findByID(s.forest, targetFolderID)
		if target == nil || !target.IsFolder() {
			s.log.Warn().Str("targetFolderID", targetFolderID).Msg("Move target is not a folder")
			return
		}
	}

	forest, moved, _ := removeByID(s.forest, nodeID)
	if targetFolderID == "" {
		s.commit(append(forest, moved))
		return
	}
	// Target was validated against the pre-removal forest and is outside the
	// moved subtree, so this cannot fail.
	forest, _ = appendToFolder(forest, targetFolderID, []*FSNode{moved})
	s.commit(forest)
}

// MoveNodeToPosition detaches the node and re-inserts it immediately before
// or after targetNodeID, inside whichever children list holds the target.
// No-op when the node and target are the same, when either is missing, or
// when the target sits inside the moving node's subtree.
func (s *Store) MoveNodeToPosition(nodeID, targetNodeID string, pos Position) {
	if nodeID == targetNodeID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	node := findByID(s.forest, nodeID)
	if node == nil {
		return
	}
	if node.containsID(targetNodeID) {
		s.log.Warn().Str("nodeID", nodeID).Str("targetNodeID", targetNodeID).
			Msg("Rejected reposition relative to own descendant")
		return
	}
	if findByID(s.forest, targetNodeID) == nil {
		return
	}

	forest, moved, _ := removeByID(s.forest, nodeID)
	forest, _ = insertAtPosition(forest, targetNodeID, moved, pos)
	s.commit(forest)
}

// FindNodeByID returns the node with the given id, or nil.
func (s *Store) FindNodeByID(id string) *FSNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.forest, id)
}

// FindParentNode returns the folder holding the node. A nil parent with
// found=true means the node sits at root level.
func (s *Store) FindParentNode(id string) (parent *FSNode, found bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findParent(s.forest, id)
}

// Flatten returns the nodes in display order: depth-first, descending only
// into expanded folders.
func (s *Store) Flatten() []*FSNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*FSNode
	flattenInto(s.forest, &out)
	return out
}

// UpdateFileContent replaces the content of every file node whose source
// path matches (separator-insensitive). An unmatched path is a normal no-op:
// the watch bridge may deliver updates for nodes the user already deleted.
func (s *Store) UpdateFileContent(sourcePath, content string) {
	norm := NormalizePath(sourcePath)
	s.mu.Lock()
	defer s.mu.Unlock()
	if forest, changed := updateContentByPath(s.forest, norm, content); changed {
		s.commit(forest)
		s.log.Debug().Str("path", norm).Msg("Updated file content")
	}
}

// FilePaths returns the deduplicated set of source paths of every file node
// currently in the tree. Used by the owning layer to reconcile watches.
func (s *Store) FilePaths() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make(map[string]struct{})
	collectPaths(s.forest, paths)
	return paths
}

// Clear drops the whole forest.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.forest) == 0 {
		return
	}
	s.commit([]*FSNode{})
	s.log.Debug().Msg("Cleared tree")
}
