// Package panel wires the pieces together: it owns the tree Store and the
// watch Bridge, applies resolved drop intents, keeps the watched path set
// reconciled with the tree's file nodes, and hands serialized output to the
// clipboard. The panel instance is created by the application entry point
// and injected wherever needed; there is no ambient global state.
package panel

import (
	"os"
	"strings"

	"github.com/jsachdeva7/dev-clipboard/config"
	"github.com/jsachdeva7/dev-clipboard/drag"
	"github.com/jsachdeva7/dev-clipboard/internal/util"
	"github.com/jsachdeva7/dev-clipboard/parser"
	"github.com/jsachdeva7/dev-clipboard/serialize"
	"github.com/jsachdeva7/dev-clipboard/tree"
	"github.com/jsachdeva7/dev-clipboard/watch"
)

type Panel struct {
	store    *tree.Store
	bridge   *watch.Bridge
	parser   *parser.Parser
	resolver drag.Resolver
	mode     serialize.Mode
	log      util.Logger
}

func New(cfg *config.Config, store *tree.Store, bridge *watch.Bridge) *Panel {
	return &Panel{
		store:    store,
		bridge:   bridge,
		parser:   parser.New(cfg.SkipHidden, cfg.UseGitignore),
		resolver: drag.NewResolver(cfg.FolderEdgeBandPx, cfg.HysteresisPx),
		mode:     serialize.ParseMode(cfg.SerializeMode),
		log:      util.GetLogger("panel"),
	}
}

func (p *Panel) Store() *tree.Store      { return p.store }
func (p *Panel) Resolver() drag.Resolver { return p.resolver }

// DropExternal ingests OS paths dropped onto the panel and places the
// resulting nodes according to the resolved intent. With no intent the nodes
// land at root level.
func (p *Panel) DropExternal(paths []string, intent drag.Intent) {
	nodes := p.parser.ParsePaths(paths)
	if len(nodes) == 0 {
		return
	}
	switch intent.Kind {
	case drag.IntentIntoFolder:
		p.store.AddNodesToFolder(nodes, intent.FolderID)
	case drag.IntentPosition:
		p.insertAt(nodes, intent)
	default:
		p.store.AddNodes(nodes)
	}
	p.Reconcile()
}

// insertAt places externally-dropped nodes relative to a sibling, keeping
// their input order.
func (p *Panel) insertAt(nodes []*tree.FSNode, intent drag.Intent) {
	ref := intent.ReferenceID
	for _, n := range nodes {
		p.store.AddNodes([]*tree.FSNode{n})
		p.store.MoveNodeToPosition(n.ID, ref, intent.Position)
		if intent.Position == tree.After {
			// Chain so the next node lands after this one, not before it.
			ref = n.ID
		}
	}
}

// DropInternal applies the resolved intent for a drag of an existing node.
func (p *Panel) DropInternal(nodeID string, intent drag.Intent) {
	switch intent.Kind {
	case drag.IntentIntoFolder:
		p.store.MoveNodeToFolder(nodeID, intent.FolderID)
	case drag.IntentPosition:
		p.store.MoveNodeToPosition(nodeID, intent.ReferenceID, intent.Position)
	}
}

// CommitRename finishes the name-editing flow: an empty or whitespace-only
// name deletes the node instead of committing the rename.
func (p *Panel) CommitRename(id, name string) {
	if strings.TrimSpace(name) == "" {
		p.store.RemoveNode(id)
		p.Reconcile()
		return
	}
	p.store.UpdateNodeName(id, name)
}

// Reconcile diffs the tree's current file paths against the bridge's watched
// set and subscribes/unsubscribes accordingly. Call after any mutation that
// can change which files the tree references.
func (p *Panel) Reconcile() {
	desired := p.store.FilePaths()
	for _, path := range p.bridge.Watched() {
		if _, ok := desired[path]; !ok {
			p.bridge.Unsubscribe(path)
		}
	}
	for path := range desired {
		if err := p.bridge.Subscribe(path, p.onFileChanged); err != nil {
			p.log.Warn().Err(err).Str("path", path).Msg("Cannot watch file")
		}
	}
}

// onFileChanged runs after the debounce window settles. The read is
// best-effort: a transient failure (file mid-write, already deleted) is
// logged and skipped; the next on-disk change re-triggers a fresh attempt.
func (p *Panel) onFileChanged(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		p.log.Warn().Err(err).Str("path", path).Msg("Skipping content update")
		return
	}
	p.store.UpdateFileContent(path, string(content))
}

// SerializeText renders the current tree snapshot in the configured mode.
func (p *Panel) SerializeText() string {
	return serialize.Serialize(p.store.Snapshot(), p.mode)
}

// SerializeToClipboard renders the tree and copies the text to the system
// clipboard. The text is returned either way.
func (p *Panel) SerializeToClipboard() (string, error) {
	text := p.SerializeText()
	if err := copyToClipboard(text); err != nil {
		return text, err
	}
	p.log.Info().Int("bytes", len(text)).Msg("Copied to clipboard")
	return text, nil
}

// ClearAll drops the whole tree and releases every watch.
func (p *Panel) ClearAll() {
	p.store.Clear()
	p.bridge.UnsubscribeAll()
}
