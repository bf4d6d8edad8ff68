// Command mctsengine-selfplay drives the searcher through randomized
// self-play games and persists their value/policy training records to
// a badger database. Threading, logging, and file I/O robustness are
// deliberately minimal here; spec.md §1 excludes them from the core's
// correctness obligations.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os/signal"
	"syscall"

	"github.com/riftchess/mctsengine/internal/selfplay"
)

var (
	dbPath = flag.String("db", "selfplay-data", "badger database directory for generated records")
	games  = flag.Int("games", 100, "number of self-play games to generate")
	seed   = flag.Int64("seed", 1, "PRNG seed for opening randomization and value sampling")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := selfplay.OpenStore(*dbPath)
	if err != nil {
		log.Fatalf("open selfplay store: %v", err)
	}
	defer store.Close()

	harness := selfplay.NewHarness(store, rand.New(rand.NewSource(*seed)))

	for i := 0; i < *games; i++ {
		if ctx.Err() != nil {
			log.Printf("stopping after %d/%d games", i, *games)
			break
		}
		if err := harness.PlayAndRecord(ctx); err != nil {
			log.Fatalf("game %d: %v", i, err)
		}
	}
}
