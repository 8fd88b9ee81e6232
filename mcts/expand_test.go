package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePotentialsDrawByHalfmoveClock(t *testing.T) {
	g := newFakeGame(8)
	g.halfmove = 100
	n := NewRoot(g)

	GeneratePotentials(n, fakeEvaluator{}, nil)

	assert.True(t, n.IsExact())
	assert.False(t, n.IsTablebase())
	assert.Equal(t, float32(0), n.RawQValue())
	assert.Empty(t, n.Potentials())
}

func TestGeneratePotentialsDrawByDeadPosition(t *testing.T) {
	g := newFakeGame(8)
	g.dead = true
	n := NewRoot(g)

	GeneratePotentials(n, fakeEvaluator{}, nil)

	assert.True(t, n.IsExact())
	assert.Equal(t, float32(0), n.RawQValue())
}

func TestGeneratePotentialsDrawByThreefold(t *testing.T) {
	g := newFakeGame(8)
	g.repetitions = 2
	n := NewRoot(g)

	GeneratePotentials(n, fakeEvaluator{}, nil)

	assert.True(t, n.IsExact())
	assert.Equal(t, float32(0), n.RawQValue())
}

func TestGeneratePotentialsTablebaseWinLossDraw(t *testing.T) {
	for _, tc := range []struct {
		name   string
		result TBResult
		want   float32
	}{
		{"win", TBWin, 1 - CPToScore(1)},
		{"loss", TBLoss, -1 + CPToScore(1)},
		{"draw", TBDraw, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			root := NewRoot(newFakeGame(8))
			root.generatePotential(moveL, 1.0)
			parent := root
			child := parent.generateChild(parent.Potentials()[0])

			tb := fakeTablebase{probe: true, probeResult: tc.result}
			GeneratePotentials(child, fakeEvaluator{}, tb)

			assert.True(t, child.IsExact())
			assert.True(t, child.IsTablebase())
			assert.InDelta(t, tc.want, child.RawQValue(), 1e-6)
		})
	}
}

func TestGeneratePotentialsSkipsTablebaseAtRoot(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	tb := fakeTablebase{probe: true, probeResult: TBWin}

	GeneratePotentials(root, fakeEvaluator{value: 0.3}, tb)

	assert.False(t, root.IsExact(), "tablebase probing is skipped at the root (spec §4.4)")
	assert.NotEmpty(t, root.Potentials())
}

func TestGeneratePotentialsNormalizesPriorsOverLegalMoves(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	GeneratePotentials(root, fakeEvaluator{value: 0.2}, nil)

	require.Len(t, root.Potentials(), 2)
	var sum float32
	for _, p := range root.Potentials() {
		sum += p.PValue()
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestGeneratePotentialsCheckmateWhenNoLegalMoves(t *testing.T) {
	g := newFakeGame(0) // no moves available at any depth
	g.checked = true
	n := NewRoot(g)

	GeneratePotentials(n, fakeEvaluator{}, nil)

	assert.True(t, n.IsExact())
	assert.True(t, g.checkmate)
	assert.Greater(t, n.RawQValue(), float32(0.99), "a checkmate must score near +1 from the mover's perspective")
}

func TestGeneratePotentialsStalemateWhenNoLegalMovesAndNotChecked(t *testing.T) {
	g := newFakeGame(0)
	n := NewRoot(g)

	GeneratePotentials(n, fakeEvaluator{}, nil)

	assert.True(t, n.IsExact())
	assert.True(t, g.stalemate)
	assert.Equal(t, float32(0), n.RawQValue())
}

func TestGeneratePotentialsIsIdempotent(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	GeneratePotentials(root, fakeEvaluator{value: 0.2}, nil)
	first := root.Potentials()

	GeneratePotentials(root, fakeEvaluator{value: 0.9}, nil)
	second := root.Potentials()

	assert.Equal(t, len(first), len(second), "a re-score must be a no-op once scored is set")
}

func TestCheckAndGenerateDTZMaterializesExactChild(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	tb := fakeTablebase{dtzOK: true, dtzResult: TBWin, dtzMove: moveL}

	ok, err := CheckAndGenerateDTZ(root, tb)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, root.Children(), 1)
	child := root.Children()[0]
	assert.True(t, child.IsExact())
	assert.True(t, child.IsTablebase())
	assert.InDelta(t, 1.0-CPToScore(1), child.RawQValue(), 1e-6)
	assert.True(t, root.HasQValue(), "root must be bootstrapped with a Q-value so backprop asserts do not fire")
}

func TestCheckAndGenerateDTZNotFound(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	tb := fakeTablebase{dtzOK: false}

	ok, err := CheckAndGenerateDTZ(root, tb)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, root.Children())
}
