package mcts

import (
	"sync"
	"sync/atomic"
)

// MaxDepth bounds the mate-scoring formula in generatePotentials: shallower
// mates must always outscore deeper ones, and MaxDepth is comfortably above
// any ply a playout could reach. 1024 matches the longest game length a
// halfmove-clock-based draw can permit before a forced repetition or
// 50-move claim.
const MaxDepth = 1024

// mateEpsilon is the per-ply nudge used to prefer shallower mates, per
// spec §4.4.
const mateEpsilon = 1e-4

// qValueUnset is the sentinel a node's qValue/rawQValue/uCoeff hold before
// they have been assigned a real value, mirroring the out-of-range sentinel
// the upstream engine this was distilled from uses (any value outside
// [-1, 1] works; -2 reads unambiguously in a debugger or tree dump).
const qValueUnset float32 = -2

// Node is a vertex of the search tree: a position, its statistics, and the
// union of materialized children and not-yet-materialized potential moves
// that could become children.
//
// A short per-node mutex guards every field that mutates outside of the
// lock-free claim/virtual-loss handshake (children, potentials, qValue,
// visited, policySum, uCoeff, isExact, isTB, rawQValue) — see spec §5.
// scoringOrScored and virtualLoss are accessed without that lock via
// sync/atomic so the claim handshake and virtual-loss bookkeeping never
// block a concurrent playout.
type Node struct {
	mu sync.Mutex

	game   Game
	parent *Node

	children   []*Node
	potentials []*PotentialNode

	visited   uint32
	qValue    float32
	rawQValue float32
	hasRaw    bool
	pValue    float32
	policySum float32
	uCoeff    float32

	isExact bool
	isTB    bool
	// scored is set once generatePotentials has run, regardless of outcome;
	// it distinguishes "legitimately has no children or potentials because
	// it is checkmate/stalemate/exact" from "has simply never been
	// expanded yet".
	scored bool

	scoringOrScored uint32 // atomic 0/1, CAS guarded
	virtualLoss     int32  // atomic
}

// PotentialNode is an unmaterialized child: a pseudo-legal move the rules
// engine has already confirmed does not leave the mover in check, together
// with its prior probability from the parent's policy head.
type PotentialNode struct {
	move   Move
	pValue float32
}

func (p *PotentialNode) Move() Move      { return p.move }
func (p *PotentialNode) PValue() float32 { return p.pValue }

// NewRoot creates a detached root node for game. The root's pValue is
// conceptually 1.0 (spec §3).
func NewRoot(game Game) *Node {
	return &Node{
		game:      game,
		pValue:    1.0,
		qValue:    qValueUnset,
		rawQValue: qValueUnset,
		uCoeff:    qValueUnset,
	}
}

func (n *Node) Game() Game { return n.game }

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// RootNode walks up to the root of n's tree.
func (n *Node) RootNode() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns n's ply distance from the root.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Visited returns the number of completed back-propagations through n.
func (n *Node) Visited() uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visited
}

// HasQValue reports whether at least one back-propagation has landed.
func (n *Node) HasQValue() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visited >= 1
}

// HasRawQValue reports whether the node has been scored (by the evaluator
// or an exact source) but not necessarily yet back-propagated.
func (n *Node) HasRawQValue() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasRaw
}

// QValue returns the node's running-mean value estimate. Only meaningful
// once HasQValue() holds.
func (n *Node) QValue() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.qValue
}

// RawQValue returns the value last assigned by the evaluator or an exact
// source.
func (n *Node) RawQValue() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rawQValue
}

// SetRawQValue assigns the node's raw value, as the evaluator does for a
// freshly-claimed leaf, or generatePotentials does for an exact terminal.
func (n *Node) SetRawQValue(v float32) {
	n.mu.Lock()
	n.rawQValue = v
	n.hasRaw = true
	n.mu.Unlock()
}

// PValue returns the prior probability on the edge leading into n. 1.0 at
// the root.
func (n *Node) PValue() float32 {
	return n.pValue
}

func (n *Node) setPValue(p float32) { n.pValue = p }

// PolicySum returns the sum of child pValues that have been visited at
// least once.
func (n *Node) PolicySum() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.policySum
}

// IsExact reports whether n's value is definitive (terminal or tablebase)
// and therefore never averaged.
func (n *Node) IsExact() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isExact
}

// IsTablebase reports whether n's exact value came from a tablebase probe.
func (n *Node) IsTablebase() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isTB
}

// Children returns a snapshot of n's materialized children, in insertion
// order.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Potentials returns a snapshot of n's unmaterialized moves, in insertion
// order.
func (n *Node) Potentials() []*PotentialNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*PotentialNode, len(n.potentials))
	copy(out, n.potentials)
	return out
}

// HasChildren reports whether n has at least one materialized child.
func (n *Node) HasChildren() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children) > 0
}

// VirtualLoss returns the count of in-flight playouts currently holding n.
func (n *Node) VirtualLoss() int32 { return atomic.LoadInt32(&n.virtualLoss) }

func (n *Node) addVirtualLoss(delta int32) int32 {
	return atomic.AddInt32(&n.virtualLoss, delta)
}

func (n *Node) clearVirtualLoss() { atomic.StoreInt32(&n.virtualLoss, 0) }

// claimForScoring atomically test-and-sets the one-shot scoring claim. It
// returns true only for the single caller that wins the false->true
// transition — i.e. whichever playout first reaches n — so that playout
// becomes responsible for expanding and scoring n while every other visit,
// concurrent or later, finds it already claimed and descends past it.
func (n *Node) claimForScoring() bool {
	return atomic.CompareAndSwapUint32(&n.scoringOrScored, 0, 1)
}

// isNotExtendable reports whether descent should not continue past n: it
// is exact, checkmate/stalemate/tablebase, or has been scored and produced
// neither children nor potentials (spec §4.4).
func (n *Node) isNotExtendable() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.isExact {
		return true
	}
	return n.scored && len(n.children) == 0 && len(n.potentials) == 0
}

// incrementVisitedLocked bumps visited, invalidates the cached PUCT
// coefficient and clears virtual loss — the bookkeeping common to both the
// leaf and every ancestor touched by a back-propagation (spec §4.8).
//
// Caller must hold n.mu.
func (n *Node) incrementVisitedLocked() {
	n.visited++
	n.uCoeff = qValueUnset
	atomic.StoreInt32(&n.virtualLoss, 0)
}

// findChild returns the first child with the given move, or nil.
func (n *Node) findChild(m Move) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.children {
		if c.game.LastMove() == m {
			return c
		}
	}
	return nil
}

// SetAsRootNode detaches n from its current parent, transferring ownership
// to the caller (the search driver advancing the tree by one move). The
// caller must ensure no search is in flight on n's tree.
func (n *Node) SetAsRootNode() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.mu.Lock()
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	n.parent = nil
}

// generateChild clones n's position, applies potential's move, and
// allocates a new child node; it does not score the child. The potential is
// removed from n and released (spec §4.5).
func (n *Node) generateChild(p *PotentialNode) *Node {
	g := n.game.Clone()
	g.MakeMove(p.move)

	child := &Node{
		game:      g,
		parent:    n,
		pValue:    p.pValue,
		qValue:    qValueUnset,
		rawQValue: qValueUnset,
		uCoeff:    qValueUnset,
	}

	n.mu.Lock()
	n.children = append(n.children, child)
	for i, pot := range n.potentials {
		if pot == p {
			n.potentials = append(n.potentials[:i], n.potentials[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
	return child
}

// generatePotential is the callback PseudoLegalMoves invokes for each
// pseudo-legal move of n's position: it constructs a candidate move and
// appends it as a potential, unless applying it leaves the mover in check.
// prior is looked up by the caller (generatePotentials) from the
// evaluator's policy output.
func (n *Node) generatePotential(m Move, prior float32) {
	if !m.IsValid() {
		return
	}
	g := n.game.Clone()
	if !g.MakeMove(m) {
		return // illegal
	}
	if g.IsChecked(n.game.ActiveArmy()) {
		return // leaves mover in check
	}
	n.mu.Lock()
	n.potentials = append(n.potentials, &PotentialNode{move: m, pValue: prior})
	n.mu.Unlock()
}

// repetitions walks ancestors of n, stopping at the first position with
// halfmove clock 0 or after finding two equal positions, and caches the
// result on n's game snapshot (spec §4.6).
func (n *Node) repetitions() int {
	if r := n.game.Repetitions(); r != -1 {
		return r
	}
	var r int
	for p := n.parent; p != nil; p = p.parent {
		if n.game.IsSamePosition(p.game) {
			r++
		}
		if r >= 2 {
			break
		}
		if p.game.HalfmoveClock() == 0 {
			break
		}
	}
	n.game.SetRepetitions(r)
	return r
}

func (n *Node) isThreefold() bool { return n.repetitions() >= 2 }

// IsNoisy reports whether the move leading into n is tactically sharp: a
// capture, a check, or a promotion (spec §8, grounded on the upstream
// engine's Node::isNoisy). The root has no incoming move and is never
// noisy.
func (n *Node) IsNoisy() bool {
	if n.IsRoot() {
		return false
	}
	m := n.game.LastMove()
	return m.IsCapture() || m.IsCheck() || m.Promotion()
}

// HasNoisyChildren reports whether any of n's materialized children is
// noisy (spec §8, grounded on the upstream engine's
// Node::hasNoisyChildren). Unmaterialized potentials are not considered:
// noisiness is only meaningful once a move has been played into a child.
func (n *Node) HasNoisyChildren() bool {
	n.mu.Lock()
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()
	for _, c := range children {
		if c.IsNoisy() {
			return true
		}
	}
	return false
}
