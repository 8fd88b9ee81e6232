package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot(t *testing.T) {
	g := newFakeGame(8)
	root := NewRoot(g)

	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Parent())
	assert.Equal(t, float32(1.0), root.PValue())
	assert.False(t, root.HasQValue())
	assert.False(t, root.HasRawQValue())
	assert.False(t, root.HasChildren())
}

func TestGeneratePotentialRejectsIllegalAndInvalid(t *testing.T) {
	g := newFakeGame(8)
	root := NewRoot(g)

	root.generatePotential(fakeMove{}, 0.5)
	assert.Empty(t, root.Potentials(), "invalid move must not become a potential")

	root.generatePotential(moveL, 0.5)
	require.Len(t, root.Potentials(), 1)
	assert.Equal(t, moveL, root.Potentials()[0].Move())
	assert.Equal(t, float32(0.5), root.Potentials()[0].PValue())
}

func TestGenerateChildConsumesPotential(t *testing.T) {
	g := newFakeGame(8)
	root := NewRoot(g)
	root.generatePotential(moveL, 0.7)

	pot := root.Potentials()[0]
	child := root.generateChild(pot)

	assert.Equal(t, root, child.Parent())
	assert.Equal(t, float32(0.7), child.PValue())
	assert.Empty(t, root.Potentials(), "consumed potential must be removed")
	require.Len(t, root.Children(), 1)
	assert.Same(t, child, root.Children()[0])
}

func TestSetAsRootNodeDetaches(t *testing.T) {
	g := newFakeGame(8)
	root := NewRoot(g)
	root.generatePotential(moveL, 1.0)
	root.generatePotential(moveR, 1.0)

	left := root.generateChild(root.Potentials()[0])
	left.SetAsRootNode()

	assert.Nil(t, left.Parent())
	assert.True(t, left.IsRoot())
	assert.Len(t, root.Children(), 0, "detached child must be removed from its former parent")
}

func TestRepetitionsStopsAtHalfmoveReset(t *testing.T) {
	root := NewRoot(newFakeGame(32))
	root.generatePotential(moveR, 1.0) // halfmove++, not a reset move
	n1 := root.generateChild(root.Potentials()[0])

	n1.generatePotential(moveL, 1.0) // resets halfmove clock
	n2 := n1.generateChild(n1.Potentials()[0])

	assert.Equal(t, 0, n2.repetitions(), "walk must stop at the halfmove-clock reset")
}

func TestRepetitionsCountsRepeatedPositions(t *testing.T) {
	// Build a chain where the same position (by path equality) recurs.
	// Since fakeGame's path always grows, we craft two nodes whose
	// IsSamePosition matches: the walk finds the root as one earlier
	// occurrence, then stops at the root's zero halfmove clock.
	base := newFakeGame(32)
	root := NewRoot(base)
	root.generatePotential(moveR, 1.0)
	a := root.generateChild(root.Potentials()[0])

	// Force a's game to report the same position as root's, simulating a
	// repetition the rules engine detected.
	a.game.(*fakeGame).path = append([]fakeMove(nil), root.game.(*fakeGame).path...)
	a.game.(*fakeGame).repetitions = -1

	assert.Equal(t, 1, a.repetitions())
}

func TestQValueUnsetUntilBackpropagated(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	assert.Equal(t, qValueUnset, root.QValue())
	assert.False(t, root.HasQValue())
}

func TestIsNoisyReflectsCaptureCheckOrPromotion(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	assert.False(t, root.IsNoisy(), "the root has no incoming move")

	root.generatePotential(fakeMove{label: "quiet"}, 1.0)
	quiet := root.generateChild(root.Potentials()[0])
	assert.False(t, quiet.IsNoisy())

	root.generatePotential(fakeMove{label: "capture", capture: true}, 1.0)
	noisy := root.generateChild(root.Potentials()[0])
	assert.True(t, noisy.IsNoisy())
}

func TestHasNoisyChildren(t *testing.T) {
	root := NewRoot(newFakeGame(8))
	assert.False(t, root.HasNoisyChildren(), "no materialized children yet")

	root.generatePotential(fakeMove{label: "quiet"}, 1.0)
	root.generateChild(root.Potentials()[0])
	assert.False(t, root.HasNoisyChildren())

	root.generatePotential(fakeMove{label: "check", check: true}, 1.0)
	root.generateChild(root.Potentials()[0])
	assert.True(t, root.HasNoisyChildren())
}
