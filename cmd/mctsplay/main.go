// Command mctsplay is a line-oriented, UCI-lite driver for the engine
// package: enough of the UCI subset (position/go/quit) to play the engine
// from a terminal or pipe it moves from a GUI, without trying to be a
// conformant UCI implementation. It plays the role the teacher's cmd/joshua
// does for self-play training, but for interactive single-position search.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gorgonia/agogo/engine"
	"github.com/rs/zerolog"
)

func main() {
	playouts := flag.Int("playouts", 4000, "playout budget per move (0 = unbounded, bounded only by -timeout)")
	timeout := flag.Duration("timeout", 2*time.Second, "wall-clock budget per move (0 = unbounded, bounded only by -playouts)")
	resign := flag.Int("resign", 0, "centipawn threshold below which the engine resigns (0 disables resignation)")
	verbose := flag.Bool("v", false, "log search diagnostics to stderr")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.Disabled)
	}

	conf := engine.DefaultConfig()
	conf.Playouts = *playouts
	conf.Timeout = *timeout
	conf.ResignThreshold = *resign

	p := newProtocol(engine.New(conf), logger)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		reply, quit := p.handle(line)
		if reply != "" {
			fmt.Println(reply)
		}
		if quit {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("stdin scan failed")
		os.Exit(1)
	}
}
