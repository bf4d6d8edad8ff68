package mcts

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// FormatUCIInfo renders r as a UCI "info" status line: depth, node
// count, elapsed time, nodes per second, score, and principal
// variation, per spec.md §6.3's `info depth … nodes … nps … score
// {cp N|mate N} pv …` shape.
func FormatUCIInfo(r Result, evalScale float32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d nodes %d time %d", r.Depth, r.Nodes, r.Elapsed.Milliseconds())
	if ms := r.Elapsed.Seconds(); ms > 0 {
		fmt.Fprintf(&b, " nps %d", uint64(float64(r.Nodes)/ms))
	}
	if mateDist, ok := r.Score.IsMate(); ok {
		fmt.Fprintf(&b, " score mate %d", (mateDist+1)/2)
	} else {
		fmt.Fprintf(&b, " score cp %d", r.Score.CP(evalScale))
	}
	if len(r.PV) > 0 {
		b.WriteString(" pv")
		for _, m := range r.PV {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
	}
	return b.String()
}

// profile is the terminal's detected color capability; termenv
// degrades every style built against it to plain text automatically
// when stdout isn't a terminal, so callers never need to branch on it.
var profile = termenv.ColorProfile()

// DumpChildren renders a one-line-per-move breakdown of the root's
// children — the move, its visit count, and its score from the side to
// move's perspective — for the engine's "d" debug command, colorized
// when the terminal supports it and left plain otherwise.
func DumpChildren(s *Searcher, evalScale float32) string {
	root := s.tree.At(s.tree.RootNode())
	if !root.IsExpanded() {
		return "(root not expanded)"
	}

	var b strings.Builder
	it := root.ChildIndices()
	for {
		ci, ok := it.Next()
		if !ok {
			break
		}
		child := s.tree.At(ci)
		move := termenv.String(child.ParentMove.String()).Foreground(profile.Color("6")).Bold()
		visits := termenv.String(fmt.Sprintf("%d", child.Visits)).Foreground(profile.Color("3"))
		score := termenv.String(child.Score().Flip().String()).Foreground(profile.Color("2"))
		fmt.Fprintf(&b, "%s => %s visits, %s\n", move, visits, score)
	}
	return b.String()
}
