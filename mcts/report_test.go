package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreToCPRoundTrip(t *testing.T) {
	for _, q := range []float32{-0.9, -0.5, -0.1, 0, 0.1, 0.5, 0.9} {
		cp := ScoreToCP(q)
		back := CPToScore(cp)
		assert.InDelta(t, q, back, 0.01, "q=%v cp=%v back=%v", q, cp, back)
	}
}

func TestScoreToCPZeroIsZero(t *testing.T) {
	assert.Equal(t, 0, ScoreToCP(0))
}

func TestPrincipalVariationFollowsMostVisitedChild(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	root.generatePotential(moveL, 0.5)
	root.generatePotential(moveR, 0.5)

	left := root.generateChild(root.Potentials()[0])
	right := root.generateChild(root.Potentials()[0])

	left.SetRawQValue(0)
	require.NoError(t, SetQValueAndPropagate(left))
	right.SetRawQValue(0)
	require.NoError(t, SetQValueAndPropagate(right))
	// Visit right a second time so it is strictly more visited than left.
	require.NoError(t, SetQValueAndPropagate(right))

	pv := PrincipalVariation(root)
	require.NotEmpty(t, pv)
	assert.Equal(t, moveR, pv[0])
}

func TestBestMoveNilOnLeaf(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	assert.Nil(t, BestMove(root))
}

func TestPrintTreeIncludesMoveAndStats(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	root.generatePotential(moveL, 1.0)
	child := root.generateChild(root.Potentials()[0])
	child.SetRawQValue(0.3)
	require.NoError(t, SetQValueAndPropagate(child))

	out := PrintTree(root, DefaultSettings(), 1)
	assert.Contains(t, out, "L")
	assert.Contains(t, out, "cp:")
}
