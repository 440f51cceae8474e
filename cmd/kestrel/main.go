// kestrel is a thin demo binary over pkg/engine: load a position, search it to a
// fixed depth, and print the deepening principal variations. It speaks no text
// protocol -- UCI/console command dispatch is out of scope for this core (see
// DESIGN.md) and is the job of an external front-end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/arnegrim/kestrel/pkg/engine"
	"github.com/arnegrim/kestrel/pkg/search"
	"github.com/seekerror/logw"
)

var (
	position = flag.String("fen", "startpos", "Start position (FEN, or \"startpos\")")
	moves    = flag.String("moves", "", "Space-separated moves to apply before searching")
	depth    = flag.Int("depth", 6, "Search depth limit")
	noise    = flag.Int("noise", 0, "Evaluation noise in centipawns (zero is deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kestrel [options]

KESTREL is a bitboard chess engine core: explicit-stack alpha-beta negamax
with quiescence, iterative deepening, a transposition table, and a
best-move hint cache.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg := engine.DefaultConfig()
	cfg.NoiseCentipawns = *noise
	e := engine.New(ctx, "kestrel", "kestrel", cfg)

	var args []string
	if strings.TrimSpace(*moves) != "" {
		args = strings.Fields(*moves)
	}
	if err := e.LoadPosition(ctx, *position, args...); err != nil {
		logw.Exitf(ctx, "invalid position: %v", err)
	}

	fmt.Println(e.Dump())

	out, handle := e.Go(ctx, search.Options{DepthLimit: *depth})
	for pv := range out {
		fmt.Println(pv.String())
	}
	handle.Halt()
}
