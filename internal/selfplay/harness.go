package selfplay

import (
	"context"
	"math/rand"

	"github.com/riftchess/mctsengine/internal/mcts"
)

// Harness repeatedly plays self-play games and writes their records to
// a Store, skipping openings already seen in a prior run. Internal
// detail (threading, logging, file I/O robustness) is deliberately
// minimal: spec.md §1 excludes it from the core's correctness
// obligations.
type Harness struct {
	Store    *Store
	Searcher *mcts.Searcher
	Config   Config
	Rand     *rand.Rand
}

// NewHarness builds a harness around an already-opened store and a
// fresh searcher at the default configuration.
func NewHarness(store *Store, rng *rand.Rand) *Harness {
	return &Harness{
		Store:    store,
		Searcher: mcts.NewSearcher(mcts.DefaultConfig()),
		Config:   DefaultConfig(),
		Rand:     rng,
	}
}

// PlayAndRecord plays one game (rerolling openings already marked seen
// in the store) and persists its value and policy records.
func (h *Harness) PlayAndRecord(ctx context.Context) error {
	game := h.playUnseenGame(ctx)

	for _, pt := range sampleValuePoints(game.Points, h.Config.MaxValueSamples, h.Rand) {
		if err := h.Store.SaveValueRecord(FormatValueRecord(pt, game.Result)); err != nil {
			return err
		}
	}
	for _, pt := range game.Points {
		if err := h.Store.SavePolicyRecord(FormatPolicyRecord(pt)); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) playUnseenGame(ctx context.Context) Game {
	for {
		pos, history := generateOpening(h.Rand)
		seen, err := h.Store.SeenOpening(pos.Hash)
		if err == nil && seen {
			continue
		}
		if err == nil {
			_ = h.Store.MarkOpeningSeen(pos.Hash)
		}

		h.Searcher.NewGame()
		h.Searcher.SetHistory(history)
		h.Searcher.SetPosition(pos)
		return playFromPosition(ctx, h.Searcher, pos, history, h.Config)
	}
}
