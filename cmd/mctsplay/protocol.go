package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gorgonia/agogo/chess"
	"github.com/gorgonia/agogo/engine"
	"github.com/rs/zerolog"
)

// protocol holds the one piece of state a line-oriented chess driver needs
// between commands: the current position and how many plies deep it is
// (for the engine's opening-randomization gate). It mirrors the shape of
// the teacher's gtp.Engine — a command table dispatching on the first
// whitespace-delimited token of each line — simplified to a direct
// switch, since this dialect is UCI-lite rather than full GTP.
type protocol struct {
	engine *engine.Engine
	pos    *chess.Position
	plies  int
	logger zerolog.Logger
}

func newProtocol(e *engine.Engine, logger zerolog.Logger) *protocol {
	return &protocol{engine: e, pos: chess.NewGame(), logger: logger}
}

// handle processes one input line and returns the reply to print (which
// may span multiple lines) and whether the caller should stop reading.
func (p *protocol) handle(line string) (reply string, quit bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", false
	}
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "uci":
		return "id name mctsplay\nid author the agogo chess fork\nuciok", false
	case "isready":
		return "readyok", false
	case "ucinewgame":
		p.pos = chess.NewGame()
		p.plies = 0
		return "", false
	case "position":
		p.setPosition(args)
		return "", false
	case "go":
		return p.search(args), false
	case "print":
		return p.pos.FEN(), false
	case "quit":
		return "", true
	default:
		p.logger.Warn().Str("command", cmd).Msg("unrecognized command")
		return "", false
	}
}

// setPosition implements "position startpos [moves ...]" and
// "position fen <fen> [moves ...]". An unparseable move in the trailer
// stops replay at that point rather than rejecting the whole command, the
// same leniency GTP's play/genmove give malformed input.
func (p *protocol) setPosition(args []string) {
	if len(args) == 0 {
		return
	}

	var idx int
	switch args[0] {
	case "startpos":
		p.pos = chess.NewGame()
		idx = 1
	case "fen":
		var fields []string
		idx = 1
		for idx < len(args) && args[idx] != "moves" {
			fields = append(fields, args[idx])
			idx++
		}
		pos, ok := chess.FromFEN(strings.Join(fields, " "))
		if !ok {
			p.logger.Warn().Str("fen", strings.Join(fields, " ")).Msg("unparseable fen")
			return
		}
		p.pos = pos
	default:
		return
	}

	p.plies = 0
	if idx >= len(args) || args[idx] != "moves" {
		return
	}
	for _, mv := range args[idx+1:] {
		m, ok := p.pos.ParseMove(mv)
		if !ok {
			p.logger.Warn().Str("move", mv).Msg("illegal move in position trailer")
			return
		}
		p.pos.MakeMove(m)
		p.plies++
	}
}

// search runs one engine.Search call and reports the chosen move in UCI's
// "bestmove" form, applying it to the driver's own position so a following
// "go" continues the game. "go movetime N" tightens the search deadline to
// N milliseconds, but can only ever shorten the engine's own configured
// timeout, never lengthen it — context.WithTimeout always honors whichever
// deadline is sooner.
func (p *protocol) search(args []string) string {
	ctx := context.Background()
	if i := indexOf(args, "movetime"); i >= 0 && i+1 < len(args) {
		if ms, err := strconv.Atoi(args[i+1]); err == nil {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(ms)*time.Millisecond)
			defer cancel()
		}
	}

	result, err := p.engine.Search(ctx, p.pos, p.plies)
	if err != nil {
		p.logger.Error().Err(err).Msg("search failed")
		return "bestmove 0000"
	}
	p.logger.Debug().
		Int("playouts", result.Playouts).
		Int("cp", result.CP).
		Bool("resign", result.Resign).
		Msg("search finished")

	if result.Resign || result.Move == nil || !result.Move.IsValid() {
		return "bestmove 0000"
	}
	p.pos.MakeMove(result.Move)
	p.plies++
	return "bestmove " + result.Move.String()
}

func indexOf(tokens []string, target string) int {
	for i, t := range tokens {
		if t == target {
			return i
		}
	}
	return -1
}
