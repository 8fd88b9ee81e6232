package mcts

import "github.com/chewxy/math32"

// tinyPolicyMass is the renormalization threshold below which the legal
// policy mass is treated as numerically zero and a uniform prior is used
// instead (mirrors the teacher's fallback in expandAndSimulate).
const tinyPolicyMass = math32.SmallestNonzeroFloat32

// GeneratePotentials expands a claimed leaf: it resolves game-rule
// termination (50-move, dead position, threefold), then a tablebase probe,
// then evaluator-scored pseudo-legal moves, and finally the
// checkmate/stalemate override when no potential survives — in that exact
// order (spec §4.4). It is idempotent: calling it twice on an
// already-scored node is a no-op.
func GeneratePotentials(n *Node, evaluator Evaluator, tb Tablebase) {
	n.mu.Lock()
	alreadyScored := n.scored
	n.mu.Unlock()
	if alreadyScored {
		return
	}

	if n.game.HalfmoveClock() >= 100 {
		n.setExactDraw(false)
		return
	}
	if n.game.IsDeadPosition() {
		n.setExactDraw(false)
		return
	}
	if n.isThreefold() {
		n.setExactDraw(false)
		return
	}

	if !n.IsRoot() && tb != nil {
		switch tb.Probe(n.game) {
		case TBWin:
			n.setExactTablebase(1 - CPToScore(1))
			return
		case TBLoss:
			n.setExactTablebase(-1 + CPToScore(1))
			return
		case TBDraw:
			n.setExactTablebase(0)
			return
		}
	}

	var moves []Move
	n.game.PseudoLegalMoves(func(m Move) { moves = append(moves, m) })

	value, priors := evaluator.Infer(n.game, moves)

	var legalSum float32
	before := 0
	for i, m := range moves {
		n.generatePotential(m, priors[i])
		after := len(n.Potentials())
		if after > before {
			legalSum += priors[i]
		}
		before = after
	}

	if before == 0 {
		n.mu.Lock()
		if n.game.IsChecked(n.game.ActiveArmy()) {
			n.game.SetCheckmate()
			n.rawQValue = 1.0 + float32(MaxDepth)*mateEpsilon - float32(n.Depth())*mateEpsilon
		} else {
			n.game.SetStalemate()
			n.rawQValue = 0
		}
		n.hasRaw = true
		n.isExact = true
		n.scored = true
		n.mu.Unlock()
		return
	}

	n.normalizePotentialPriors(legalSum)
	n.SetRawQValue(value)
	n.mu.Lock()
	n.scored = true
	n.mu.Unlock()
}

func (n *Node) setExactDraw(isTB bool) {
	n.mu.Lock()
	n.rawQValue = 0
	n.hasRaw = true
	n.isExact = true
	n.isTB = isTB
	n.scored = true
	n.mu.Unlock()
}

func (n *Node) setExactTablebase(raw float32) {
	n.mu.Lock()
	n.rawQValue = raw
	n.hasRaw = true
	n.isExact = true
	n.isTB = true
	n.scored = true
	n.mu.Unlock()
}

// normalizePotentialPriors rescales n's potentials' priors to sum to 1
// over legalSum, or falls back to a uniform distribution if legalSum is
// too small to divide by safely (spec §4.4, grounded on the teacher's
// expandAndSimulate renormalization step).
func (n *Node) normalizePotentialPriors(legalSum float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if legalSum > tinyPolicyMass {
		for _, p := range n.potentials {
			p.pValue /= legalSum
		}
	} else if len(n.potentials) > 0 {
		uniform := 1 / float32(len(n.potentials))
		for _, p := range n.potentials {
			p.pValue = uniform
		}
	}
}

// CheckAndGenerateDTZ probes the tablebase for root's position directly
// and, if it returns a result, short-circuits search by materializing the
// single best move as an exact child (spec §4.9). It returns false,nil if
// the tablebase has nothing for this position.
func CheckAndGenerateDTZ(root *Node, tb Tablebase) (bool, error) {
	assertf(root.IsRoot(), ErrNotRoot, "CheckAndGenerateDTZ")

	result, move, _, ok := tb.ProbeDTZ(root.game)
	if !ok {
		return false, nil
	}

	g := root.game.Clone()
	if !g.MakeMove(move) {
		return false, ErrIllegalDTZMove
	}
	if g.IsChecked(root.game.ActiveArmy()) {
		return false, ErrIllegalDTZMove
	}
	if g.IsChecked(g.ActiveArmy()) {
		g.SetCheckmate()
	}

	child := &Node{
		game:      g,
		parent:    root,
		pValue:    1.0,
		qValue:    qValueUnset,
		rawQValue: qValueUnset,
		uCoeff:    qValueUnset,
		isExact:   true,
		isTB:      true,
		hasRaw:    true,
		scored:    true,
	}

	switch result {
	case TBWin:
		child.rawQValue = 1.0 - CPToScore(1)
	case TBLoss:
		child.rawQValue = -1.0 + CPToScore(1)
	case TBDraw:
		child.rawQValue = 0
	}

	if !root.HasQValue() {
		root.SetRawQValue(0)
		root.mu.Lock()
		root.qValue = root.rawQValue
		root.incrementVisitedLocked()
		root.mu.Unlock()
	}

	if err := SetQValueAndPropagate(child); err != nil {
		return false, err
	}

	root.mu.Lock()
	root.children = append(root.children, child)
	root.mu.Unlock()
	return true, nil
}
