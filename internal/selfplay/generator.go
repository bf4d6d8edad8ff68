package selfplay

import (
	"context"
	"math/rand"

	"github.com/riftchess/mctsengine/internal/board"
	"github.com/riftchess/mctsengine/internal/mcts"
)

// Config bounds one self-play game.
type Config struct {
	// SearchNodes is the per-ply node budget handed to the searcher.
	SearchNodes uint64
	// MaxValueSamples caps how many of a game's plies are kept as value
	// records; the rest still contribute policy records.
	MaxValueSamples int
}

// DefaultConfig mirrors the original generator's per-game budget: 5000
// search nodes per ply, at most 10 value samples per game.
func DefaultConfig() Config {
	return Config{SearchNodes: 5000, MaxValueSamples: 10}
}

// Game is one finished self-play game: every ply's DataPoint, plus the
// absolute result they're all labeled against for value training.
type Game struct {
	Points []DataPoint
	Result WDL
}

// PlayGame drives searcher from a random opening to a terminal result,
// recording one DataPoint per ply, the way the original generator's
// per-game loop does.
func PlayGame(ctx context.Context, searcher *mcts.Searcher, cfg Config, rng *rand.Rand) Game {
	pos, history := generateOpening(rng)

	searcher.NewGame()
	searcher.SetHistory(history)
	searcher.SetPosition(pos)

	return playFromPosition(ctx, searcher, pos, history, cfg)
}

// playFromPosition runs the per-ply search/record/advance loop starting
// from an already-set-up position, shared by PlayGame and Harness (which
// needs to inspect the opening's hash before committing to playing it).
func playFromPosition(ctx context.Context, searcher *mcts.Searcher, pos *board.Position, history *board.History, cfg Config) Game {
	limits := mcts.Limits{MaxNodes: cfg.SearchNodes}

	var points []DataPoint
	for {
		result := searcher.Run(ctx, limits, nil)

		move := result.BestMove
		if move == board.NoMove {
			legal := pos.GenerateLegalMoves()
			if legal.Len() == 0 {
				break
			}
			move = legal.At(0)
		}

		points = append(points, DataPoint{
			FEN:       pos.ToFEN(),
			VisitDist: result.VisitDist,
			Score:     result.Score.WinProb(),
		})

		pos = pos.Copy()
		pos.MakeMove(move)
		history.Push(pos.Hash)
		searcher.SetHistory(history)
		searcher.SetPosition(pos)

		legal := pos.GenerateLegalMoves()
		switch positionOutcome(pos, legal, history) {
		case mated:
			if pos.SideToMove == board.White {
				return Game{Points: points, Result: BlackWin}
			}
			return Game{Points: points, Result: WhiteWin}
		case drawn:
			return Game{Points: points, Result: Draw}
		}

		select {
		case <-ctx.Done():
			return Game{Points: points, Result: Draw}
		default:
		}
	}
	return Game{Points: points, Result: Draw}
}

// sampleValuePoints picks at most n points at random without
// replacement, the way the original generator samples a handful of a
// game's plies for value training while keeping every ply for policy
// training.
func sampleValuePoints(points []DataPoint, n int, rng *rand.Rand) []DataPoint {
	if len(points) <= n {
		return points
	}
	idx := rng.Perm(len(points))[:n]
	out := make([]DataPoint, n)
	for i, j := range idx {
		out[i] = points[j]
	}
	return out
}
