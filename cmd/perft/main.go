// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/arnegrim/kestrel/pkg/board/fen"
	"github.com/arnegrim/kestrel/pkg/engine"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Print per-first-move counts at the final depth")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	e := engine.New(ctx, "kestrel-perft", "kestrel", engine.DefaultConfig())
	if err := e.LoadPosition(ctx, *position); err != nil {
		logw.Exitf(ctx, "invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		result, err := e.Perft(ctx, i)
		if err != nil {
			logw.Exitf(ctx, "perft depth=%v: %v", i, err)
		}
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, result.Total, duration.Microseconds())
		if *divide && i == *depth {
			printDivide(result.Divide)
		}
	}
}

func printDivide(divide map[string]uint64) {
	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	sort.Strings(moves)
	for _, m := range moves {
		fmt.Printf("%v: %v\n", m, divide[m])
	}
}
