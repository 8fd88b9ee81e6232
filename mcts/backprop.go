package mcts

// SetQValueAndPropagate commits n's raw value as its Q-value and
// back-propagates it up the tree, flipping sign at every ply since Q is
// always relative to the side to move at that node (spec §4.7, §4.8). n
// must already carry a raw Q-value, set either by the evaluator or by
// generatePotentials/checkAndGenerateDTZ for an exact node.
//
// Only n and its ancestors are touched; siblings are left alone, matching
// the upstream engine's setQValueAndPropagate/backPropagateValueFull pair.
func SetQValueAndPropagate(n *Node) error {
	if !n.HasRawQValue() {
		assertf(false, ErrMissingRawQValue, "node %v", n)
		return ErrMissingRawQValue
	}

	n.mu.Lock()
	parent := n.parent
	firstVisit := n.visited == 0
	pValue := n.pValue
	n.qValue = n.rawQValue
	n.incrementVisitedLocked()
	v := n.qValue
	n.mu.Unlock()

	if parent != nil && firstVisit {
		parent.mu.Lock()
		parent.policySum += pValue
		parent.mu.Unlock()
	}

	for p := parent; p != nil; p = p.parent {
		v = -v
		p.mu.Lock()
		p.qValue = (float32(p.visited)*p.qValue + v) / float32(p.visited+1)
		p.incrementVisitedLocked()
		p.mu.Unlock()
	}
	return nil
}
