// Package uci is the command-line front end: a thin loop that parses
// universal-chess-interface-style commands, drives an mcts.Searcher,
// and prints its results. Explicitly a collaborator of the core, not
// part of it, the way spec.md §1 scopes the text protocol out of the
// search/tree subsystem proper.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/riftchess/mctsengine/internal/board"
	"github.com/riftchess/mctsengine/internal/mcts"
	"github.com/riftchess/mctsengine/internal/perft"
)

// UCI implements the protocol loop over one mcts.Searcher.
type UCI struct {
	cfg      mcts.Config
	searcher *mcts.Searcher
	position *board.Position
	history  *board.History

	searching bool
	cancel    context.CancelFunc
	done      chan struct{}

	profileFile *os.File
}

// New creates a protocol handler with a fresh searcher at the default
// configuration.
func New() *UCI {
	cfg := mcts.DefaultConfig()
	pos := board.NewPosition()
	history := board.NewHistory()
	history.Push(pos.Hash)
	return &UCI{
		cfg:      cfg,
		searcher: mcts.NewSearcher(cfg),
		position: pos,
		history:  history,
	}
}

// Run reads commands from stdin until "quit" or end of input.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleQuit()
		case "setoption":
			u.handleSetOption(args)
		case "d":
			fmt.Println(u.position.String())
			fmt.Print(mcts.DumpChildren(u.searcher, u.cfg.EvalScale))
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name mctsengine")
	fmt.Println("id author riftchess")
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("option name PUCTConstant type string default 1.414214")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.searcher.NewGame()
	u.position = board.NewPosition()
	u.history = board.NewHistory()
	u.history.Push(u.position.Hash)
}

// handlePosition implements "position [startpos|fen <fen>] [moves <m>…]",
// rebuilding the game's key history from scratch every time, the way the
// teacher's handlePosition always discards and replays rather than
// patching an existing history incrementally.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	moveStart := len(args)

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		moveStart = 1
	case "fen":
		fenEnd := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				fenEnd = i
				break
			}
		}
		if fenEnd <= 1 {
			return
		}
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		moveStart = fenEnd
	default:
		return
	}

	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}

	history := board.NewHistory()
	history.Push(pos.Hash)

	if moveStart < len(args) {
		for _, moveStr := range args[moveStart:] {
			legal := pos.GenerateLegalMoves()
			m, err := board.ParseMoveText(moveStr, legal, pos)
			if err != nil {
				fmt.Fprintf(os.Stderr, "info string invalid move %q: %v\n", moveStr, err)
				return
			}
			pos.MakeMove(m)
			history.Push(pos.Hash)
		}
	}

	u.position = pos
	u.history = history
	u.searcher.SetHistory(history)
	u.searcher.SetPosition(pos)
}

func (u *UCI) handleGo(args []string) {
	limits, deadline := parseGoArgs(args)

	ctx := context.Background()
	var cancel context.CancelFunc
	if deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, deadline)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	u.cancel = cancel
	u.searching = true
	u.done = make(chan struct{})

	go func() {
		defer close(u.done)
		defer cancel()

		result := u.searcher.Run(ctx, limits, func(r mcts.Result) {
			fmt.Println(mcts.FormatUCIInfo(r, u.cfg.EvalScale))
		})
		u.searching = false

		move := result.BestMove
		if move == board.NoMove {
			legal := u.position.GenerateLegalMoves()
			if legal.Len() > 0 {
				move = legal.At(0)
			}
		}
		if move == board.NoMove {
			fmt.Println("bestmove 0000")
			return
		}
		fmt.Printf("bestmove %s\n", move.String())
	}()
}

// parseGoArgs reads the "go" options spec.md §6.3 names: a node
// budget, a move-time deadline, or an explicit infinite search run
// until "stop".
func parseGoArgs(args []string) (mcts.Limits, time.Duration) {
	var limits mcts.Limits
	var deadline time.Duration
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				limits.MaxNodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				deadline = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits, deadline
}

func (u *UCI) handleStop() {
	if u.searching && u.cancel != nil {
		u.cancel()
		<-u.done
	}
}

func (u *UCI) handleQuit() {
	u.handleStop()
	if u.profileFile != nil {
		pprof.StopCPUProfile()
		u.profileFile.Close()
	}
	os.Exit(0)
}

func (u *UCI) handleSetOption(args []string) {
	var name, value string
	readingName, readingValue := false, false
	for _, a := range args {
		switch a {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += a
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += a
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		if mb, err := strconv.Atoi(value); err == nil && mb > 0 {
			u.cfg.TreeSizeMB = mb
			u.searcher = mcts.NewSearcher(u.cfg)
			u.searcher.SetHistory(u.history)
			u.searcher.SetPosition(u.position)
		}
	case "cpuprofile":
		if u.profileFile != nil {
			pprof.StopCPUProfile()
			u.profileFile.Close()
			u.profileFile = nil
		}
		if value != "" && value != "stop" {
			f, err := os.Create(value)
			if err != nil {
				fmt.Fprintf(os.Stderr, "info string failed to create profile: %v\n", err)
				return
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				fmt.Fprintf(os.Stderr, "info string failed to start profile: %v\n", err)
				return
			}
			u.profileFile = f
		}
	}
}

// handlePerft runs the move-counting oracle against the current
// position and reports a per-root-move breakdown plus totals, the way
// "perft N" debug commands commonly do.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	divided := perft.Divide(u.position, depth)
	elapsed := time.Since(start)

	var total uint64
	for _, mc := range divided {
		fmt.Printf("%s: %d\n", mc.Move.String(), mc.Nodes)
		total += mc.Nodes
	}
	fmt.Printf("\nnodes: %d\n", total)
	fmt.Printf("time: %s\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("nps: %.0f\n", float64(total)/elapsed.Seconds())
	}
}
