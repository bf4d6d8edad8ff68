package board

import (
	"fmt"
	"strings"
)

// MoveKind distinguishes the four move encodings spec'd for Move.
type MoveKind uint8

const (
	Normal MoveKind = iota // quiet move or capture; captured piece is inferred from occupancy
	EnPassantMove
	CastleMove
	PromotionMove
)

// Move is a 16-bit packed move: from(6) | to(6) | kind(2) | promo(2).
//
// For CastleMove, To is the rook's origin square, not the king's
// destination square — this makes the encoding Fischer-random-safe.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	moveKindShift  = 12
	movePromoShift = 14

	moveFromMask  = 0x3F
	moveToMask    = 0x3F
	moveKindMask  = 0x3
	movePromoMask = 0x3
)

// NoMove is the zero value used as a sentinel (a1a1 quiet move is never legal).
const NoMove Move = 0

// NewMove builds a plain quiet-or-capture move.
func NewMove(from, to Square) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift | uint16(Normal)<<moveKindShift)
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift | uint16(EnPassantMove)<<moveKindShift)
}

// NewCastle builds a castling move. to is the castling rook's origin
// square, not the king's destination — callers must pass the rook
// square so Fischer-random layouts round-trip correctly.
func NewCastle(kingFrom, rookFrom Square) Move {
	return Move(uint16(kingFrom)<<moveFromShift | uint16(rookFrom)<<moveToShift | uint16(CastleMove)<<moveKindShift)
}

// PromoPiece values, packed in the 2-bit promo field.
const (
	PromoKnight uint8 = iota
	PromoBishop
	PromoRook
	PromoQueen
)

// NewPromotion builds a promotion move (optionally also a capture; the
// captured piece, if any, is inferred from board occupancy at make-time).
func NewPromotion(from, to Square, promo uint8) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift |
		uint16(PromotionMove)<<moveKindShift | uint16(promo)<<movePromoShift)
}

func (m Move) From() Square { return Square((uint16(m) >> moveFromShift) & moveFromMask) }
func (m Move) To() Square   { return Square((uint16(m) >> moveToShift) & moveToMask) }
func (m Move) Kind() MoveKind {
	return MoveKind((uint16(m) >> moveKindShift) & moveKindMask)
}
func (m Move) PromoPiece() uint8 { return uint8((uint16(m) >> movePromoShift) & movePromoMask) }

// PromoPieceType maps the packed promo field to a PieceType.
func (m Move) PromoPieceType() PieceType {
	switch m.PromoPiece() {
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	case PromoRook:
		return Rook
	default:
		return Queen
	}
}

func promoChar(pt PieceType) byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	default:
		return 'q'
	}
}

// String renders pure coordinate notation (UCI move text). Castling is
// printed king-to-rook-square, matching the internal encoding; callers
// that need king-destination notation (e.g. display to a human) should
// use Position.CastleKingDestination instead.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.Kind() == PromotionMove {
		sb.WriteByte(promoChar(m.PromoPieceType()))
	}
	return sb.String()
}

// MaxMoves bounds the legal moves in any reachable chess position with
// generous headroom; MoveList is a fixed-capacity stack buffer so the
// move generator never allocates.
const MaxMoves = 256

// MoveList is a fixed-capacity, stack-friendly buffer of moves.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (l *MoveList) Add(m Move) {
	l.moves[l.n] = m
	l.n++
}

func (l *MoveList) Len() int { return l.n }

func (l *MoveList) At(i int) Move { return l.moves[i] }

func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

func (l *MoveList) Reset() { l.n = 0 }

// Contains reports whether m (compared by from/to/kind/promo) is present.
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.n; i++ {
		if l.moves[i] == m {
			return true
		}
	}
	return false
}

// ParseMoveText parses pure coordinate notation against a legal move
// list, normalizing castling written either as king-to-rook-square (the
// internal encoding) or king-to-destination (e.g. "e1g1"), per spec.md
// §6.2's requirement that the driver normalize to whichever legal move
// matches from/to or castle direction.
func ParseMoveText(s string, legal *MoveList, pos *Position) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move text: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	var promo uint8 = 255
	if len(s) == 5 {
		switch s[4] {
		case 'n', 'N':
			promo = PromoKnight
		case 'b', 'B':
			promo = PromoBishop
		case 'r', 'R':
			promo = PromoRook
		case 'q', 'Q':
			promo = PromoQueen
		default:
			return NoMove, fmt.Errorf("invalid promotion letter in %q", s)
		}
	}

	for i := 0; i < legal.Len(); i++ {
		cand := legal.At(i)
		if cand.Kind() == CastleMove {
			// Accept both king-to-rook-square (internal) and
			// king-to-destination (conventional UCI) spellings.
			if cand.From() == from && cand.To() == to {
				return cand, nil
			}
			dest := pos.CastleKingDestination(cand)
			if cand.From() == from && dest == to {
				return cand, nil
			}
			continue
		}
		if cand.From() != from || cand.To() != to {
			continue
		}
		if cand.Kind() == PromotionMove {
			if promo == 255 || cand.PromoPiece() != promo {
				continue
			}
		}
		return cand, nil
	}
	return NoMove, fmt.Errorf("no legal move matches %q", s)
}
