package mcts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chewxy/math32"
)

// cpScale and cpSlope are lc0's centipawn conversion constants: Q in
// [-1, 1] maps onto an unbounded centipawn scale via a tangent curve that
// is approximately linear near 0 and saturates towards mate scores at the
// extremes (spec §5).
const (
	cpScale = 290.680623072
	cpSlope = 1.548090806
)

// ScoreToCP converts a Q-value in [-1, 1] to a centipawn score.
func ScoreToCP(q float32) int {
	return int(math32.Round(cpScale * math32.Tan(cpSlope*q)))
}

// CPToScore is the inverse of ScoreToCP.
func CPToScore(cp int) float32 {
	return math32.Atan(float32(cp)/cpScale) / cpSlope
}

// byVisitsThenQ orders candidates the way the principal variation and the
// tree dump do: most-visited first, ties broken by the side-to-move's own
// Q-value (spec §5 — "sort by visits, tie-break by Q").
type byVisitsThenQ struct {
	nodes  []*Node
	player Player
}

func (s byVisitsThenQ) Len() int      { return len(s.nodes) }
func (s byVisitsThenQ) Swap(i, j int) { s.nodes[i], s.nodes[j] = s.nodes[j], s.nodes[i] }
func (s byVisitsThenQ) Less(i, j int) bool {
	a, b := s.nodes[i], s.nodes[j]
	if a.Visited() != b.Visited() {
		return a.Visited() > b.Visited()
	}
	return evaluateFor(a, s.player) > evaluateFor(b, s.player)
}

// evaluateFor reports n's Q-value from player's perspective: Q is always
// stored relative to the side to move at n, so it is negated whenever that
// side differs from player.
func evaluateFor(n *Node, player Player) float32 {
	q := n.QValue()
	if n.game.ActiveArmy() != player {
		return -q
	}
	return q
}

// sortedChildren returns n's children sorted best-first by byVisitsThenQ.
func sortedChildren(n *Node, player Player) []*Node {
	children := n.Children()
	sort.Stable(byVisitsThenQ{nodes: children, player: player})
	return children
}

// PrincipalVariation walks the best child at every ply starting from root
// and returns the resulting move sequence (spec §5).
func PrincipalVariation(root *Node) []Move {
	var pv []Move
	n := root
	for {
		children := n.Children()
		if len(children) == 0 {
			return pv
		}
		sort.Stable(byVisitsThenQ{nodes: children, player: n.game.ActiveArmy()})
		best := children[0]
		pv = append(pv, best.game.LastMove())
		n = best
	}
}

// BestMove returns root's highest-visit child, or nil if root has none.
func BestMove(root *Node) *Node {
	children := sortedChildren(root, root.game.ActiveArmy())
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// PrintTree renders n and its children to the depth given, one line per
// node, in the same n/p/q/u/(q+u)/v/h/cp column layout as the upstream
// engine's tree dump, for diagnostics and debug logging (spec §5).
func PrintTree(n *Node, settings Settings, maxDepth int) string {
	var b strings.Builder
	printTreeNode(&b, n, settings, 0, maxDepth)
	return b.String()
}

func printTreeNode(b *strings.Builder, n *Node, settings Settings, depth, maxDepth int) {
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString("      |")
	}

	mv := n.game.LastMove()
	q := n.QValue()
	u := float32(0)
	if !n.IsRoot() {
		u = childView(n.parent, n, settings).UValue()
	}
	fmt.Fprintf(b, " %-8v n: %-6d p: %5.2f%% q: %6.3f u: %6.3f q+u: %6.3f v: %-6d h: %-4d cp: %-4d",
		mv, n.Visited(), n.PValue()*100, q, u, q+u, n.VirtualLoss(), n.Depth(), ScoreToCP(q))

	if depth >= maxDepth {
		return
	}
	for _, c := range sortedChildren(n, n.game.ActiveArmy()) {
		printTreeNode(b, c, settings, depth+1, maxDepth)
	}
}
