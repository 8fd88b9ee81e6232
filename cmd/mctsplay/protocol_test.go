package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gorgonia/agogo/chess"
	"github.com/gorgonia/agogo/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProtocol() *protocol {
	conf := engine.DefaultConfig()
	conf.Playouts = 20
	conf.Timeout = time.Second
	return newProtocol(engine.New(conf), zerolog.Nop())
}

func TestUCIHandshake(t *testing.T) {
	p := newTestProtocol()
	reply, quit := p.handle("uci")
	assert.False(t, quit)
	assert.Contains(t, reply, "uciok")

	reply, quit = p.handle("isready")
	assert.False(t, quit)
	assert.Equal(t, "readyok", reply)
}

func TestPositionStartposWithMoves(t *testing.T) {
	p := newTestProtocol()
	_, quit := p.handle("position startpos moves e2e4 e7e5")
	require.False(t, quit)
	assert.Equal(t, 2, p.plies)
	assert.Equal(t, chess.White, p.pos.Side())
}

func TestPositionFenIsAdopted(t *testing.T) {
	p := newTestProtocol()
	_, quit := p.handle("position fen 4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.False(t, quit)
	assert.True(t, strings.HasPrefix(p.pos.FEN(), "4k3/8/8/8/8/8/8/3QK3"))
}

func TestGoReturnsALegalBestMove(t *testing.T) {
	p := newTestProtocol()
	reply, quit := p.handle("go")
	require.False(t, quit)
	assert.True(t, strings.HasPrefix(reply, "bestmove "))
	assert.NotEqual(t, "bestmove 0000", reply)
}

func TestQuitStopsTheLoop(t *testing.T) {
	p := newTestProtocol()
	_, quit := p.handle("quit")
	assert.True(t, quit)
}
