package mcts

import "sync"

// Tree owns the search's root node together with the settings and
// external collaborators a playout needs to extend it (spec §5, §6). It is
// the narrow-waist manager the rest of a driver program talks to instead
// of poking at *Node directly — analogous to the teacher's *MCTS arena
// manager, minus the arena: a Tree here is just a root pointer plus the
// collaborators, since ownership is expressed by real Go pointers.
type Tree struct {
	mu sync.Mutex

	root      *Node
	settings  Settings
	evaluator Evaluator
	tablebase Tablebase

	lumberjack
}

// NewTree creates a Tree rooted at game. evaluator must not be nil;
// tablebase may be nil, in which case tablebase probing is skipped
// entirely (spec §6 treats the tablebase as optional).
func NewTree(game Game, settings Settings, evaluator Evaluator, tablebase Tablebase) *Tree {
	return &Tree{
		root:       NewRoot(game),
		settings:   settings,
		evaluator:  evaluator,
		tablebase:  tablebase,
		lumberjack: makeLumberjack(),
	}
}

// Root returns the tree's current root node.
func (t *Tree) Root() *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root
}

// Settings returns the tree's search settings.
func (t *Tree) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// RunPlayout performs one full select/expand/evaluate/back-propagate cycle
// starting from the current root (spec §4). It is safe to call
// concurrently from multiple goroutines: Playout's virtual loss keeps them
// from converging on the same leaf, and every Node field it touches is
// guarded by that node's own mutex or an atomic.
func (t *Tree) RunPlayout() error {
	root := t.Root()
	settings := t.Settings()

	leaf, depth, _, err := Playout(root, settings)
	if err != nil {
		return err
	}
	t.log("playout reached %v at depth %d", leaf.game.LastMove(), depth)

	if !leaf.HasRawQValue() {
		GeneratePotentials(leaf, t.evaluator, t.tablebase)
	}
	return SetQValueAndPropagate(leaf)
}

// TryRootTablebase probes the tablebase directly for the root position,
// short-circuiting search by materializing a single exact best move, if
// the tablebase has anything for it (spec §4.9).
func (t *Tree) TryRootTablebase() (bool, error) {
	if t.tablebase == nil {
		return false, nil
	}
	return CheckAndGenerateDTZ(t.Root(), t.tablebase)
}

// AdvanceRoot makes the materialized child reached by m the tree's new
// root, detaching it from its former parent so the rest of the tree built
// around the old root can be discarded (spec §3's setAsRootNode). The
// caller must not have a playout in flight when calling this.
func (t *Tree) AdvanceRoot(m Move) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	child := t.root.findChild(m)
	if child == nil {
		return nil, ErrMoveNotFound
	}
	child.SetAsRootNode()
	t.root = child
	return child, nil
}

// Reset discards the current tree entirely and starts over from game.
func (t *Tree) Reset(game Game) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = NewRoot(game)
	t.lumberjack.Reset()
}
