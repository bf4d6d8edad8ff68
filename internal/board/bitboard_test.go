package board

import "testing"

func TestBitboardSetClearToggle(t *testing.T) {
	var b Bitboard
	b = b.Set(E4)
	if !b.IsSet(E4) {
		t.Fatal("expected E4 set")
	}
	b = b.Toggle(E4)
	if b.IsSet(E4) {
		t.Fatal("expected E4 cleared after toggle")
	}
	b = b.Set(E4)
	b = b.Clear(E4)
	if b.IsSet(E4) {
		t.Fatal("expected E4 cleared")
	}
}

func TestBitboardPopLSB(t *testing.T) {
	b := SquareBB(A1) | SquareBB(D4) | SquareBB(H8)
	var popped []Square
	for b != 0 {
		popped = append(popped, b.PopLSB())
	}
	want := []Square{A1, D4, H8}
	if len(popped) != len(want) {
		t.Fatalf("got %d squares, want %d", len(popped), len(want))
	}
	for i, sq := range want {
		if popped[i] != sq {
			t.Fatalf("pop order[%d] = %s, want %s", i, popped[i], sq)
		}
	}
}

func TestBitboardOne(t *testing.T) {
	if !SquareBB(E4).One() {
		t.Fatal("singleton bitboard must report One()")
	}
	if Empty.One() {
		t.Fatal("empty bitboard must not report One()")
	}
	if (SquareBB(E4) | SquareBB(D4)).One() {
		t.Fatal("two-square bitboard must not report One()")
	}
}

func TestBitboardEdgeShifts(t *testing.T) {
	if SquareBB(H1).East() != 0 {
		t.Fatal("East() off the h-file must not wrap to the a-file")
	}
	if SquareBB(A1).West() != 0 {
		t.Fatal("West() off the a-file must not wrap to the h-file")
	}
	if SquareBB(A4).NorthWest() != 0 {
		t.Fatal("NorthWest() off the a-file must not wrap")
	}
	if SquareBB(H4).NorthEast() != 0 {
		t.Fatal("NorthEast() off the h-file must not wrap")
	}
}

func TestBitboardLSBMSBEmpty(t *testing.T) {
	if Empty.LSB() != NoSquare {
		t.Fatal("LSB of empty bitboard must be NoSquare")
	}
	if Empty.MSB() != NoSquare {
		t.Fatal("MSB of empty bitboard must be NoSquare")
	}
}

func TestBitboardSquares(t *testing.T) {
	b := SquareBB(B2) | SquareBB(G7)
	squares := b.Squares()
	if len(squares) != 2 {
		t.Fatalf("got %d squares, want 2", len(squares))
	}
	if squares[0] != B2 || squares[1] != G7 {
		t.Fatalf("got %v, want [b2 g7]", squares)
	}
}
