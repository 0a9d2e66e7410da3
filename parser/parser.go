// Package parser materializes FSNode trees from raw filesystem paths, as
// handed over by an OS drop event. Failures stay local: an unreadable entry
// is skipped, an unreadable file becomes an empty-content node, a
// non-existent input path is dropped entirely. Nothing aborts the whole
// drop.
package parser

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/jsachdeva7/dev-clipboard/internal/util"
	"github.com/jsachdeva7/dev-clipboard/tree"
)

type Parser struct {
	// SkipHidden drops dotfiles and dot-directories during directory reads.
	SkipHidden bool
	// UseGitignore honors a .gitignore at each dropped directory's root.
	UseGitignore bool

	log util.Logger
}

func New(skipHidden, useGitignore bool) *Parser {
	return &Parser{
		SkipHidden:   skipHidden,
		UseGitignore: useGitignore,
		log:          util.GetLogger("parser"),
	}
}

// ParsePaths builds one FSNode per input path: a recursively-read folder
// node for directories, a file node with best-effort UTF-8 content for
// files. Folders built here start expanded, matching the paste-drop flow.
func (p *Parser) ParsePaths(paths []string) []*tree.FSNode {
	nodes := make([]*tree.FSNode, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			p.log.Warn().Err(err).Str("path", path).Msg("Cannot resolve dropped path")
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			p.log.Warn().Err(err).Str("path", abs).Msg("Dropped path does not exist")
			continue
		}
		if info.IsDir() {
			nodes = append(nodes, p.parseDir(abs, p.loadIgnore(abs)))
		} else {
			nodes = append(nodes, p.parseFile(abs))
		}
	}
	return nodes
}

func (p *Parser) parseDir(abs string, ignore *rootIgnore) *tree.FSNode {
	folder := tree.NewFolderNode(filepath.Base(abs))
	folder.IsExpanded = true

	entries, err := os.ReadDir(abs)
	if err != nil {
		p.log.Warn().Err(err).Str("path", abs).Msg("Cannot read directory")
		return folder
	}
	for _, entry := range entries {
		name := entry.Name()
		if p.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		child := filepath.Join(abs, name)
		if ignore.matches(child, entry.IsDir()) {
			continue
		}
		if entry.IsDir() {
			folder.Children = append(folder.Children, p.parseDir(child, ignore))
		} else {
			folder.Children = append(folder.Children, p.parseFile(child))
		}
	}
	return folder
}

func (p *Parser) parseFile(abs string) *tree.FSNode {
	content, err := os.ReadFile(abs)
	if err != nil {
		// Unreadable files still get a node, just with empty content.
		p.log.Warn().Err(err).Str("path", abs).Msg("Cannot read file")
		content = nil
	}
	return tree.NewFileNode(filepath.Base(abs), string(content), abs)
}

// rootIgnore matches paths against the .gitignore found at the dropped
// directory's root. A nil receiver matches nothing.
type rootIgnore struct {
	root    string
	matcher *gitignore.GitIgnore
}

func (p *Parser) loadIgnore(root string) *rootIgnore {
	if !p.UseGitignore {
		return nil
	}
	matcher, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// No .gitignore (or unreadable) just means no filtering.
		return nil
	}
	return &rootIgnore{root: root, matcher: matcher}
}

func (ig *rootIgnore) matches(path string, isDir bool) bool {
	if ig == nil {
		return false
	}
	rel, err := filepath.Rel(ig.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		rel += "/"
	}
	return ig.matcher.MatchesPath(rel)
}
