package selfplay

import (
	"math/rand"
	"testing"
)

func TestGenerateOpeningPlaysEightPlies(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pos, history := generateOpening(rng)

	if history.Len() != 9 {
		t.Fatalf("history length = %d, want 9 (startpos + 8 plies)", history.Len())
	}
	if pos.GenerateLegalMoves().Len() == 0 {
		t.Fatal("opening position must not be terminal")
	}
}

func TestGenerateOpeningIsDeterministicForAFixedSeed(t *testing.T) {
	pos1, _ := generateOpening(rand.New(rand.NewSource(42)))
	pos2, _ := generateOpening(rand.New(rand.NewSource(42)))

	if pos1.ToFEN() != pos2.ToFEN() {
		t.Fatalf("same seed produced different openings: %q vs %q", pos1.ToFEN(), pos2.ToFEN())
	}
}

func TestPositionOutcomeOngoingAtStart(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pos, history := generateOpening(rng)

	if got := positionOutcome(pos, pos.GenerateLegalMoves(), history); got != ongoing {
		t.Fatalf("outcome = %v, want ongoing", got)
	}
}
