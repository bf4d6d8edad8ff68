// Command mctsengine-uci is the engine's UCI entry point: it wires the
// MCTS searcher into a universal-chess-interface text loop read from
// stdin and written to stdout.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/riftchess/mctsengine/internal/uci"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	protocol := uci.New()
	protocol.Run()
}
