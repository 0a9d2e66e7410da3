// Package serialize walks a tree snapshot and produces the clipboard text
// payload. Output is a pure function of tree content and order: serializing
// the same tree twice yields byte-identical text.
package serialize

import (
	"fmt"
	"strings"

	"github.com/jsachdeva7/dev-clipboard/tree"
)

// Mode selects the output layout.
type Mode int

const (
	// ModeTreeAndFiles renders a folder-structure diagram followed by every
	// file's content with headers and separator rules.
	ModeTreeAndFiles Mode = iota
	// ModeCodeBlocks renders one fenced code block per file.
	ModeCodeBlocks
)

// ParseMode maps a CLI/config string to a Mode. Unknown values default to
// ModeTreeAndFiles.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, "blocks") {
		return ModeCodeBlocks
	}
	return ModeTreeAndFiles
}

const rule = "----------------------------------------"

// Serialize renders the forest in the given mode. Files appear in tree
// order; folders without children still show up in the structure listing;
// files with empty content render an empty block.
func Serialize(forest []*tree.FSNode, mode Mode) string {
	if mode == ModeCodeBlocks {
		return serializeCodeBlocks(forest)
	}
	return serializeTreeAndFiles(forest)
}

func serializeTreeAndFiles(forest []*tree.FSNode) string {
	var b strings.Builder

	if hasFolder(forest) {
		b.WriteString("FOLDER STRUCTURE\n")
		b.WriteString(rule + "\n")
		writeStructure(&b, forest, 0)
		b.WriteString("\n")
	}

	b.WriteString("FILES\n")
	b.WriteString(rule + "\n")
	for i, f := range collectFiles(forest) {
		if i > 0 {
			b.WriteString("\n" + rule + "\n")
		}
		fmt.Fprintf(&b, "%s (%s)\n", f.Name, Language(f.Name))
		b.WriteString(rule + "\n")
		b.WriteString(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func serializeCodeBlocks(forest []*tree.FSNode) string {
	var b strings.Builder
	for i, f := range collectFiles(forest) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "// %s\n", f.Name)
		fmt.Fprintf(&b, "```%s\n", Language(f.Name))
		b.WriteString(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}
	return b.String()
}

// writeStructure emits one line per node: root entries flush left, nested
// entries behind a "|--" marker with "|   " continuation indents.
func writeStructure(b *strings.Builder, nodes []*tree.FSNode, depth int) {
	for _, n := range nodes {
		if depth == 0 {
			b.WriteString(n.Name)
		} else {
			b.WriteString(strings.Repeat("|   ", depth-1))
			b.WriteString("|-- ")
			b.WriteString(n.Name)
		}
		b.WriteString("\n")
		if n.IsFolder() {
			writeStructure(b, n.Children, depth+1)
		}
	}
}

func hasFolder(nodes []*tree.FSNode) bool {
	for _, n := range nodes {
		if n.IsFolder() {
			return true
		}
	}
	return false
}

// collectFiles gathers file nodes depth-first, matching display order.
func collectFiles(nodes []*tree.FSNode) []*tree.FSNode {
	var files []*tree.FSNode
	var walk func([]*tree.FSNode)
	walk = func(nodes []*tree.FSNode) {
		for _, n := range nodes {
			if n.IsFile() {
				files = append(files, n)
				continue
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return files
}
