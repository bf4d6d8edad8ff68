// Package selfplay drives the searcher through complete games from
// randomized openings, recording one value and one policy line per ply
// the way an offline training-data generator would, per spec.md §6.4.
package selfplay

import (
	"fmt"
	"strings"

	"github.com/riftchess/mctsengine/internal/mcts"
)

// DataPoint is one played position: its FEN, the search's visit
// distribution over legal moves in generation order, and its
// side-to-move-relative win probability at the time it was searched.
type DataPoint struct {
	FEN       string
	VisitDist []mcts.MoveVisit
	Score     float32
}

// WDL is a finished game's absolute, white-perspective result.
type WDL float32

const (
	BlackWin WDL = 0
	Draw     WDL = 0.5
	WhiteWin WDL = 1
)

// FormatValueRecord renders one value-training line:
// "<fen> | <stm-relative score> | <game wdl>".
func FormatValueRecord(pt DataPoint, wdl WDL) string {
	return fmt.Sprintf("%s | %g | %g\n", pt.FEN, pt.Score, float32(wdl))
}

// FormatPolicyRecord renders one policy-training line: the FEN followed
// by " | <frac>" for every legal move, in move-generation order (the
// root's child order).
func FormatPolicyRecord(pt DataPoint) string {
	var b strings.Builder
	b.WriteString(pt.FEN)
	for _, mv := range pt.VisitDist {
		fmt.Fprintf(&b, " | %g", mv.Frac)
	}
	b.WriteByte('\n')
	return b.String()
}
