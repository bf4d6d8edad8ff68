package selfplay

import (
	"math/rand"

	"github.com/riftchess/mctsengine/internal/board"
)

// outcome classifies a position the generator checks after every ply:
// mate, a draw (stalemate, repetition, or the 50-move rule), or still
// ongoing.
type outcome uint8

const (
	ongoing outcome = iota
	mated
	drawn
)

func positionOutcome(pos *board.Position, legal *board.MoveList, history *board.History) outcome {
	if legal.Len() == 0 {
		if pos.InCheck() {
			return mated
		}
		return drawn
	}
	if pos.HalfMoveClock >= 100 || history.IsRepetition(pos.Hash, pos.HalfMoveClock) {
		return drawn
	}
	return ongoing
}

// generateOpening plays 8 uniformly-random plies from the starting
// position, rerolling the whole opening from scratch whenever an
// intermediate position is terminal, per spec.md §6.4.
func generateOpening(rng *rand.Rand) (*board.Position, *board.History) {
	const openingPlies = 8

	for {
		pos := board.NewPosition()
		history := board.NewHistory()
		history.Push(pos.Hash)

		reroll := false
		for ply := 0; ply < openingPlies; ply++ {
			legal := pos.GenerateLegalMoves()
			if legal.Len() == 0 {
				reroll = true
				break
			}
			mv := legal.At(rng.Intn(legal.Len()))
			pos.MakeMove(mv)
			history.Push(pos.Hash)

			if positionOutcome(pos, pos.GenerateLegalMoves(), history) != ongoing {
				reroll = true
				break
			}
		}
		if !reroll {
			return pos, history
		}
	}
}
