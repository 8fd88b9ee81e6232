package mcts

import "github.com/chewxy/math32"

// selectionView is a uniform scoring view over either a materialized child
// or an unrealized potential of the same parent, so playout descent can
// rank them against each other without caring which one it is (spec §4.1).
// It is the Go rendering of the upstream engine's tagged Child/Potential
// union: a two-field struct where exactly one of child/potential is set,
// rather than an interface, because it never escapes a single playout call
// and allocating an interface value for it on every descent step would be
// wasteful.
type selectionView struct {
	parent    *Node // always set
	child     *Node // set iff this view wraps a materialized child
	potential *PotentialNode
	settings  Settings
}

func childView(parent, child *Node, settings Settings) selectionView {
	return selectionView{parent: parent, child: child, settings: settings}
}

func potentialView(parent *Node, p *PotentialNode, settings Settings) selectionView {
	return selectionView{parent: parent, potential: p, settings: settings}
}

func (v selectionView) isPotential() bool { return v.potential != nil }

// PValue is the prior on the edge leading into the candidate.
func (v selectionView) PValue() float32 {
	if v.isPotential() {
		return v.potential.pValue
	}
	return v.child.PValue()
}

// QValue is the child's running mean, or the parent's default Q for an
// unvisited potential — except at the root, where potentials report Q=1.0
// to force every root move to be tried once before any is revisited
// (spec §4.1).
func (v selectionView) QValue() float32 {
	if v.isPotential() {
		if v.parent.IsRoot() {
			return 1.0
		}
		return v.parent.QValue() // parent's default Q
	}
	return v.child.QValue()
}

// UCoeff is the parent's cached PUCT coefficient, shared by all siblings.
func (v selectionView) UCoeff() float32 {
	return v.parent.uCoeffFor(v.settings)
}

// UValue is the exploration term: uCoeff*p for a potential (infinite
// remaining visits to spend), uCoeff*p/(1+visited+virtualLoss) for a child.
func (v selectionView) UValue() float32 {
	uCoeff := v.UCoeff()
	if v.isPotential() {
		return uCoeff * v.potential.pValue
	}
	denom := 1 + float32(v.child.Visited()) + float32(v.child.VirtualLoss())
	return uCoeff * v.child.PValue() / denom
}

// WeightedExplorationScore is the PUCT selection target.
func (v selectionView) WeightedExplorationScore() float32 {
	return v.QValue() + v.UValue()
}

// materialize returns the actual *Node for v, generating a child from the
// potential on first use (spec §4.3 step 5).
func (v selectionView) materialize() (node *Node, created bool) {
	if v.isPotential() {
		return v.parent.generateChild(v.potential), true
	}
	return v.child, false
}

// uCoeffFor returns n's cached PUCT exploration coefficient, recomputing it
// if invalidated by a visit since the last computation (spec §4.2).
func (n *Node) uCoeffFor(settings Settings) float32 {
	n.mu.Lock()
	if n.uCoeff != qValueUnset {
		c := n.uCoeff
		n.mu.Unlock()
		return c
	}
	children := append([]*Node(nil), n.children...)
	numPotentials := len(n.potentials)
	parentVisits := n.visited
	n.mu.Unlock()

	var sum float32
	for _, c := range children {
		sum += float32(c.Visited()) + float32(c.VirtualLoss())
	}
	_ = numPotentials // potentials contribute zero visits to the sum

	cPuct := settings.CPuct(parentVisits)
	c := cPuct * math32.Sqrt(sum)

	n.mu.Lock()
	n.uCoeff = c
	n.mu.Unlock()
	return c
}
