package tree

// Recursive forest rebuilders. Each returns a fresh slice (with copied
// folder nodes along the affected path) when it changed anything, and the
// original slice untouched otherwise, so callers can rely on reference
// stability for no-ops. Recursion depth equals tree depth; there is no
// explicit bound.

// removeByID detaches the first node matching id, anywhere in the forest.
func removeByID(nodes []*FSNode, id string) (out []*FSNode, removed *FSNode, ok bool) {
	for i, n := range nodes {
		if n.ID == id {
			out = make([]*FSNode, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out, n, true
		}
		if !n.IsFolder() {
			continue
		}
		if children, removed, ok := removeByID(n.Children, id); ok {
			out = make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = n.withChildren(children)
			return out, removed, true
		}
	}
	return nodes, nil, false
}

// removeManyByID detaches every subtree whose root id is in the set.
func removeManyByID(nodes []*FSNode, ids map[string]struct{}) ([]*FSNode, bool) {
	out := make([]*FSNode, 0, len(nodes))
	changed := false
	for _, n := range nodes {
		if _, hit := ids[n.ID]; hit {
			changed = true
			continue
		}
		if n.IsFolder() {
			if children, childChanged := removeManyByID(n.Children, ids); childChanged {
				n = n.withChildren(children)
				changed = true
			}
		}
		out = append(out, n)
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

// appendToFolder appends add as the last children of the folder with
// folderID. Fails when no folder with that id exists.
func appendToFolder(nodes []*FSNode, folderID string, add []*FSNode) ([]*FSNode, bool) {
	for i, n := range nodes {
		if !n.IsFolder() {
			continue
		}
		if n.ID == folderID {
			children := make([]*FSNode, 0, len(n.Children)+len(add))
			children = append(children, n.Children...)
			children = append(children, add...)
			out := make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = n.withChildren(children)
			return out, true
		}
		if children, ok := appendToFolder(n.Children, folderID, add); ok {
			out := make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = n.withChildren(children)
			return out, true
		}
	}
	return nodes, false
}

// insertAtPosition inserts node immediately before or after the sibling with
// targetID, in whichever children list holds the target.
func insertAtPosition(nodes []*FSNode, targetID string, node *FSNode, pos Position) ([]*FSNode, bool) {
	for i, n := range nodes {
		if n.ID == targetID {
			at := i
			if pos == After {
				at = i + 1
			}
			out := make([]*FSNode, 0, len(nodes)+1)
			out = append(out, nodes[:at]...)
			out = append(out, node)
			out = append(out, nodes[at:]...)
			return out, true
		}
		if !n.IsFolder() {
			continue
		}
		if children, ok := insertAtPosition(n.Children, targetID, node, pos); ok {
			out := make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = n.withChildren(children)
			return out, true
		}
	}
	return nodes, false
}

// rebuildNode applies fn to a copy of the node with the given id and rebuilds
// the path down to it.
func rebuildNode(nodes []*FSNode, id string, apply func(*FSNode)) ([]*FSNode, bool) {
	for i, n := range nodes {
		if n.ID == id {
			copied := n.shallowCopy()
			apply(copied)
			out := make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = copied
			return out, true
		}
		if !n.IsFolder() {
			continue
		}
		if children, ok := rebuildNode(n.Children, id, apply); ok {
			out := make([]*FSNode, len(nodes))
			copy(out, nodes)
			out[i] = n.withChildren(children)
			return out, true
		}
	}
	return nodes, false
}

// updateContentByPath replaces the content of every file node whose
// normalized source path equals norm.
func updateContentByPath(nodes []*FSNode, norm, content string) ([]*FSNode, bool) {
	var out []*FSNode
	changed := false
	for i, n := range nodes {
		var replacement *FSNode
		switch {
		case n.IsFile() && n.SourcePath == norm && n.Content != content:
			replacement = n.shallowCopy()
			replacement.Content = content
		case n.IsFolder():
			if children, childChanged := updateContentByPath(n.Children, norm, content); childChanged {
				replacement = n.withChildren(children)
			}
		}
		if replacement == nil {
			continue
		}
		if !changed {
			out = make([]*FSNode, len(nodes))
			copy(out, nodes)
			changed = true
		}
		out[i] = replacement
	}
	if !changed {
		return nodes, false
	}
	return out, true
}

func findByID(nodes []*FSNode, id string) *FSNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if n.IsFolder() {
			if hit := findByID(n.Children, id); hit != nil {
				return hit
			}
		}
	}
	return nil
}

// findParent returns the folder directly holding the node with the given id.
// A nil parent with found=true means the node sits at root level.
func findParent(nodes []*FSNode, id string) (*FSNode, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return nil, true
		}
	}
	return findParentIn(nodes, id)
}

func findParentIn(nodes []*FSNode, id string) (*FSNode, bool) {
	for _, n := range nodes {
		if !n.IsFolder() {
			continue
		}
		for _, child := range n.Children {
			if child.ID == id {
				return n, true
			}
		}
		if parent, ok := findParentIn(n.Children, id); ok {
			return parent, ok
		}
	}
	return nil, false
}

func flattenInto(nodes []*FSNode, out *[]*FSNode) {
	for _, n := range nodes {
		*out = append(*out, n)
		if n.IsFolder() && n.IsExpanded {
			flattenInto(n.Children, out)
		}
	}
}

func collectPaths(nodes []*FSNode, paths map[string]struct{}) {
	for _, n := range nodes {
		if n.IsFile() && n.SourcePath != "" {
			paths[n.SourcePath] = struct{}{}
		}
		if n.IsFolder() {
			collectPaths(n.Children, paths)
		}
	}
}
