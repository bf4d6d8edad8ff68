package selfplay

import (
	"strings"
	"testing"

	"github.com/riftchess/mctsengine/internal/board"
	"github.com/riftchess/mctsengine/internal/mcts"
)

func TestFormatValueRecord(t *testing.T) {
	pt := DataPoint{FEN: "startpos-fen", Score: 0.75}
	line := FormatValueRecord(pt, WhiteWin)

	if !strings.HasPrefix(line, "startpos-fen | 0.75 | 1") {
		t.Fatalf("unexpected value record: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("value record must end with a newline")
	}
}

func TestFormatPolicyRecord(t *testing.T) {
	pt := DataPoint{
		FEN: "some-fen",
		VisitDist: []mcts.MoveVisit{
			{Move: board.NewMove(board.E2, board.E4), Frac: 0.6},
			{Move: board.NewMove(board.D2, board.D4), Frac: 0.4},
		},
	}
	line := FormatPolicyRecord(pt)

	want := "some-fen | 0.6 | 0.4\n"
	if line != want {
		t.Fatalf("policy record = %q, want %q", line, want)
	}
}

func TestFormatPolicyRecordNoMoves(t *testing.T) {
	line := FormatPolicyRecord(DataPoint{FEN: "terminal-fen"})
	if line != "terminal-fen\n" {
		t.Fatalf("policy record = %q, want %q", line, "terminal-fen\n")
	}
}
