// Package engine wires the mcts search core together with the chess rules
// engine, the eval heuristic and the tablebase classifier into something
// that can actually pick a move: the UCI/CLI-facing collaborator the core
// itself stays deliberately ignorant of (root-move randomization, time
// budgets and resignation all live here, not in package mcts).
package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorgonia/agogo/eval"
	"github.com/gorgonia/agogo/mcts"
	"github.com/gorgonia/agogo/tablebase"
	"golang.org/x/exp/rand"
)

// Config is the search-driver configuration: how long/hard to search, and
// when to add noise or give up.
type Config struct {
	Settings mcts.Settings

	// Playouts bounds how many playouts Search will run; 0 means unlimited
	// (bounded only by Timeout).
	Playouts int
	// Timeout bounds wall-clock search time; 0 means unlimited (bounded
	// only by Playouts). At least one of the two should be set.
	Timeout time.Duration

	// RandomPlyCount is how many plies from the root of the game (not the
	// search tree) a move is sampled proportionally to visit count rather
	// than simply taking the most-visited child, for opening variety.
	RandomPlyCount int

	// ResignThreshold is the centipawn score below which Search reports a
	// resignation instead of a move. 0 disables resignation.
	ResignThreshold int
}

// DefaultConfig mirrors the kind of budget a quick-play engine ships with:
// a few thousand playouts, a two-second soft cap, and no resignation.
func DefaultConfig() Config {
	return Config{
		Settings:        mcts.DefaultSettings(),
		Playouts:        4000,
		Timeout:         2 * time.Second,
		RandomPlyCount:  0,
		ResignThreshold: 0,
	}
}

// Engine drives a mcts.Tree to a move decision for a single position.
type Engine struct {
	conf      Config
	evaluator mcts.Evaluator
	tablebase mcts.Tablebase
	rng       *rand.Rand
}

// New builds an Engine with the heuristic evaluator and rule-based
// tablebase classifier from this module's eval and tablebase packages. Use
// NewWithCollaborators to supply alternatives (e.g. a trained network).
func New(conf Config) *Engine {
	return NewWithCollaborators(conf, eval.Heuristic{}, tablebase.Rule{})
}

// NewWithCollaborators builds an Engine against an explicit evaluator and
// tablebase, for tests or for swapping in a real neural network.
func NewWithCollaborators(conf Config, evaluator mcts.Evaluator, tb mcts.Tablebase) *Engine {
	return &Engine{
		conf:      conf,
		evaluator: evaluator,
		tablebase: tb,
		rng:       rand.New(rand.NewSource(1)),
	}
}

// Result is what Search reports for a position.
type Result struct {
	Move       mcts.Move
	Resign     bool
	CP         int
	PV         []mcts.Move
	Playouts   int
	TreeDigest string
}

// Search runs playouts against g's position (ply is the game's own ply
// count, used only for root-move randomization) until the configured
// playout or time budget is spent, then reports a move. Playouts are
// spread across runtime.NumCPU() worker goroutines racing against the same
// tree, the same worker-pool shape as the teacher's MCTS.Search — safe
// here because mcts.Tree.RunPlayout's virtual loss keeps concurrent
// descents from converging on the same leaf.
func (e *Engine) Search(ctx context.Context, g mcts.Game, ply int) (Result, error) {
	tree := mcts.NewTree(g, e.conf.Settings, e.evaluator, e.tablebase)

	if found, err := tree.TryRootTablebase(); err != nil && err != mcts.ErrIllegalDTZMove {
		return Result{}, err
	} else if found {
		return e.report(tree, 0)
	}

	ctx, cancel := e.withBudget(ctx)
	defer cancel()

	var playouts int32
	var errOnce sync.Once
	var firstErr error

	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if e.conf.Playouts != 0 && int(atomic.LoadInt32(&playouts)) >= e.conf.Playouts {
					return
				}
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := tree.RunPlayout(); err != nil {
					if err != mcts.ErrNoPlayout {
						errOnce.Do(func() { firstErr = err })
					}
					return
				}
				atomic.AddInt32(&playouts, 1)
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return Result{}, firstErr
	}
	return e.finish(tree, int(playouts), ply)
}

func (e *Engine) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.conf.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.conf.Timeout)
}

func (e *Engine) finish(tree *mcts.Tree, playouts int, ply int) (Result, error) {
	root := tree.Root()
	if ply < e.conf.RandomPlyCount {
		if child := e.sampleByVisits(root); child != nil {
			return e.resultFor(tree, root, child, playouts)
		}
	}
	return e.report(tree, playouts)
}

func (e *Engine) report(tree *mcts.Tree, playouts int) (Result, error) {
	root := tree.Root()
	best := mcts.BestMove(root)
	return e.resultFor(tree, root, best, playouts)
}

func (e *Engine) resultFor(tree *mcts.Tree, root, best *mcts.Node, playouts int) (Result, error) {
	if best == nil {
		return Result{Playouts: playouts}, nil
	}
	// best.QValue() is relative to best's own side to move, which is
	// always root's opponent; flip it back to the root's perspective
	// before turning it into a score to report or judge resignation on.
	cp := mcts.ScoreToCP(-best.QValue())
	resign := e.conf.ResignThreshold != 0 && cp <= -e.conf.ResignThreshold
	return Result{
		Move:       best.Game().LastMove(),
		Resign:     resign,
		CP:         cp,
		PV:         mcts.PrincipalVariation(root),
		Playouts:   playouts,
		TreeDigest: mcts.PrintTree(root, e.conf.Settings, 1),
	}, nil
}

// sampleByVisits draws a child proportionally to its visit count, for
// opening-book-free variety in the first few plies of a game. If the root
// has at least one quiet (non-noisy) child, sampling is restricted to the
// quiet children, so variety never trades away a forced tactic for a
// merely-different one (spec §8, grounded on the upstream engine's
// Node::hasNoisyChildren); it falls back to sampling over every child when
// all of them are noisy.
func (e *Engine) sampleByVisits(root *mcts.Node) *mcts.Node {
	children := root.Children()
	if len(children) == 0 {
		return nil
	}
	if root.HasNoisyChildren() {
		if quiet := quietChildren(children); len(quiet) > 0 {
			children = quiet
		}
	}
	total := 0
	for _, c := range children {
		total += int(c.Visited())
	}
	if total == 0 {
		return children[0]
	}
	pick := e.rng.Intn(total)
	for _, c := range children {
		pick -= int(c.Visited())
		if pick < 0 {
			return c
		}
	}
	return children[len(children)-1]
}

// quietChildren returns the subset of children that are not noisy.
func quietChildren(children []*mcts.Node) []*mcts.Node {
	var out []*mcts.Node
	for _, c := range children {
		if !c.IsNoisy() {
			out = append(out, c)
		}
	}
	return out
}

// AdvanceRoot narrows tree to the subtree reached by playing m, or returns
// mcts.ErrMoveNotFound if m is not among the root's materialized children.
// Callers that want tree reuse between moves should keep the returned
// *mcts.Tree across calls instead of building a fresh one via Search.
func AdvanceRoot(tree *mcts.Tree, m mcts.Move) (*mcts.Node, error) {
	return tree.AdvanceRoot(m)
}
