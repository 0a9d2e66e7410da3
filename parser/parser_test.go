package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsachdeva7/dev-clipboard/tree"
)

func childNames(n *tree.FSNode) []string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Name
	}
	return names
}

func TestParsePaths_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	nodes := New(true, false).ParsePaths([]string{path})

	require.Len(t, nodes, 1)
	n := nodes[0]
	assert.True(t, n.IsFile())
	assert.Equal(t, "readme.md", n.Name)
	assert.Equal(t, "hello", n.Content)
	assert.Equal(t, tree.NormalizePath(path), n.SourcePath)
}

func TestParsePaths_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))

	nodes := New(true, false).ParsePaths([]string{dir})

	require.Len(t, nodes, 1)
	root := nodes[0]
	assert.True(t, root.IsFolder())
	assert.True(t, root.IsExpanded, "paste-drop folders start expanded")
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, childNames(root))

	for _, c := range root.Children {
		if c.Name == "sub" {
			require.True(t, c.IsFolder())
			assert.True(t, c.IsExpanded)
			require.Len(t, c.Children, 1)
			assert.Equal(t, "b", c.Children[0].Content)
		}
	}
}

func TestParsePaths_MissingPathSkipped(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.txt")
	require.NoError(t, os.WriteFile(real, []byte("x"), 0o644))

	nodes := New(true, false).ParsePaths([]string{
		filepath.Join(dir, "ghost.txt"),
		real,
	})

	// Missing inputs vanish; they are not error nodes.
	require.Len(t, nodes, 1)
	assert.Equal(t, "real.txt", nodes[0].Name)
}

func TestParsePaths_SkipHidden(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), []byte("s"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "open.txt"), []byte("o"), 0o644))

	nodes := New(true, false).ParsePaths([]string{dir})
	require.Len(t, nodes, 1)
	assert.Equal(t, []string{"open.txt"}, childNames(nodes[0]))

	nodes = New(false, false).ParsePaths([]string{dir})
	require.Len(t, nodes, 1)
	assert.ElementsMatch(t, []string{".secret", "open.txt"}, childNames(nodes[0]))
}

func TestParsePaths_Gitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\nbuild/\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("k"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noise.log"), []byte("n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build", "out.txt"), []byte("o"), 0o644))

	nodes := New(true, true).ParsePaths([]string{dir})
	require.Len(t, nodes, 1)
	assert.Equal(t, []string{"keep.txt"}, childNames(nodes[0]))
}

func TestParsePaths_EmptyInput(t *testing.T) {
	nodes := New(true, false).ParsePaths(nil)
	assert.Empty(t, nodes)
}
