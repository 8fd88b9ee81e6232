package mcts

import "github.com/chewxy/math32"

// virtualLossDistance estimates how many additional visits (real or
// virtual) second would need before its weighted exploration score catches
// up to wec, the current leader's score (spec §4.3). Solving
//
//	wec = q + p*uCoeff/(n+1)
//
// for n using second's own q/p/uCoeff gives the distance below. The
// leader's own view never enters the formula — only its score does, as wec.
func virtualLossDistance(wec float32, second selectionView, vldMax int32) int32 {
	q := second.QValue()
	p := second.PValue()
	uCoeff := second.UCoeff()

	if math32.Abs(wec-q) < 1e-12 {
		return 1
	}
	if q > wec {
		return vldMax
	}
	nf := (q + p*uCoeff - wec) / (wec - q)
	if nf > float32(vldMax) {
		return vldMax
	}
	n := int32(math32.Ceil(nf))
	if n < 1 {
		n = 1
	}
	return n
}

// bestAndSecond scans n's children and potentials and returns the two
// highest-scoring selection views by WeightedExplorationScore. secondOK is
// false when n has fewer than two candidates.
func bestAndSecond(n *Node, settings Settings) (best selectionView, second selectionView, secondOK bool) {
	children := n.Children()
	potentials := n.Potentials()

	haveBest := false
	bestScore := float32(-1)
	secondScore := float32(-1)

	consider := func(v selectionView) {
		score := v.WeightedExplorationScore()
		if !haveBest || score > bestScore {
			second, secondScore, secondOK = best, bestScore, haveBest
			best, bestScore, haveBest = v, score, true
		} else if !secondOK || score > secondScore {
			second, secondScore, secondOK = v, score, true
		}
	}

	for _, c := range children {
		consider(childView(n, c, settings))
	}
	for _, p := range potentials {
		consider(potentialView(n, p, settings))
	}
	return best, second, secondOK
}

// Playout descends from root along the PUCT-weighted path to an unscored
// leaf, applying virtual loss as it goes so concurrent playouts spread out
// across the tree instead of piling onto the same candidate (spec §4.3).
// It returns the claimed leaf, its depth (root itself counts as 1), and whether
// materializing a potential along the way created a new node.
//
// Playout never scores or back-propagates the leaf; the caller (the search
// driver) does that once it has a value from the evaluator or an exact
// source.
func Playout(root *Node, settings Settings) (leaf *Node, depth int, created bool, err error) {
	tryPlayoutLimit := settings.TryPlayoutLimit
	// vldMax is the configured clamp ceiling virtualLossDistance is called
	// with; it never changes across restarts. budget is the separate,
	// decrementing remaining try-budget that gates giving up (spec §4.3;
	// the upstream engine keeps these as two distinct variables too: a
	// static SearchSettings::vldMax versus playout()'s own function-local,
	// decrementing int vldMax).
	vldMax := settings.VLDMax
	budget := settings.VLDMax

restartPlayout:
	for {
		d := 0
		vld := vldMax
		n := root

		for {
			d++

			// claimForScoring reports true exactly once per node, on the
			// playout that first reaches it — that playout owns scoring it.
			// Every later visit (including concurrent ones already in
			// flight) finds it claimed and descends past it instead.
			if n.claimForScoring() || n.IsExact() {
				n.addVirtualLoss(1)
				return n, d, created, nil
			}

			// A claimed node that has no Q-value yet is still being scored by
			// the playout that claimed it.
			alreadyPlayingOut := !n.HasQValue()
			var increment int32 = 1
			if alreadyPlayingOut {
				increment = vld - 1
			}
			n.addVirtualLoss(increment)

			if alreadyPlayingOut || n.isNotExtendable() {
				tryPlayoutLimit--
				if tryPlayoutLimit <= 0 {
					return nil, 0, false, ErrNoPlayout
				}
				budget -= n.VirtualLoss()
				if budget <= 0 {
					return nil, 0, false, ErrNoPlayout
				}
				continue restartPlayout
			}

			assertf(n.HasChildren() || len(n.Potentials()) > 0, ErrNoPlayout, "node %v has neither children nor potentials", n)

			best, second, secondOK := bestAndSecond(n, settings)
			if secondOK {
				vldNew := virtualLossDistance(best.WeightedExplorationScore(), second, vldMax)
				if vld == 0 {
					vld = vldNew
				} else if vldNew < vld {
					vld = vldNew
				}
			}

			next, wasCreated := best.materialize()
			if wasCreated {
				created = true
			}
			n = next
		}
	}
}
