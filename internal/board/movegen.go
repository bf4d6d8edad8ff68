package board

// GenerateLegalMoves produces the bounded (<=256) list of fully legal
// moves for the side to move: pin-aware per piece type, check-evasion
// restricted when the king is attacked, double-check restricted to king
// moves only.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := &MoveList{}

	us := p.SideToMove
	kingSq := p.KingSquare[us]

	numCheckers := p.Checkers.PopCount()
	if numCheckers >= 2 {
		p.generateKingMoves(ml, us, kingSq)
		p.generateCastlingMoves(ml, us, kingSq)
		return ml
	}

	// checkMask restricts destination squares for every non-king piece:
	// Universe when not in check, or "capture the checker / block the
	// line to it" when in single check. Spec.md names this the
	// check-evasion filter; the teacher's generate-then-filter approach
	// does not need it (illegal moves are caught by make/unmake), but a
	// staged generator must restrict destinations up front.
	checkMask := Universe
	if numCheckers == 1 {
		checkerSq := p.Checkers.LSB()
		checkMask = SquareBB(checkerSq) | Between(kingSq, checkerSq)
	}

	p.generatePawnMoves(ml, us, kingSq, checkMask)
	p.generateKnightMoves(ml, us, checkMask)
	p.generateBishopMoves(ml, us, kingSq, checkMask)
	p.generateRookMoves(ml, us, kingSq, checkMask)
	p.generateQueenMoves(ml, us, kingSq, checkMask)
	p.generateKingMoves(ml, us, kingSq)
	if numCheckers == 0 {
		p.generateCastlingMoves(ml, us, kingSq)
	}

	return ml
}

func (p *Position) generatePawnMoves(ml *MoveList, us Color, kingSq Square, checkMask Bitboard) {
	them := us.Other()
	pawns := p.Pieces[us][Pawn]
	pinned := pawns & (p.DiagPinned | p.HVPinned)
	unpinned := pawns &^ pinned

	occupied := p.AllOccupied
	enemies := p.Occupied[them]
	empty := ^occupied

	var promotionRank Bitboard
	var pushDir int
	var thirdRank Bitboard
	if us == White {
		promotionRank = Rank8
		pushDir = 8
		thirdRank = Rank3
	} else {
		promotionRank = Rank1
		pushDir = -8
		thirdRank = Rank6
	}

	// Pushable pinned pawns: only those lying on the king's file survive
	// a vertical pin (pushing keeps them on the pin line).
	pushablePinned := pinned & FileMask[kingSq.File()]
	pushSources := unpinned | pushablePinned

	var rawPush1 Bitboard
	if us == White {
		rawPush1 = pushSources.North() & empty
	} else {
		rawPush1 = pushSources.South() & empty
	}
	push1 := rawPush1 & checkMask

	promoPush := push1 & promotionRank
	quietPush := push1 &^ promoPush

	midRank := rawPush1 & thirdRank
	var push2 Bitboard
	if us == White {
		push2 = midRank.North() & empty & checkMask
	} else {
		push2 = midRank.South() & empty & checkMask
	}

	for quietPush != 0 {
		to := quietPush.PopLSB()
		ml.Add(NewMove(Square(int(to)-pushDir), to))
	}
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, from, to)
	}
	for push2 != 0 {
		to := push2.PopLSB()
		ml.Add(NewMove(Square(int(to)-2*pushDir), to))
	}

	// Captures: diagonally-pinned pawns may only capture along the
	// diagonal their pin lies on.
	capturePinned := pinned & p.DiagPinned

	genCaptures := func(shiftWest bool) {
		var targets Bitboard
		pinnedTargets := Bitboard(0)
		if us == White {
			if shiftWest {
				targets = unpinned.NorthWest() & enemies
			} else {
				targets = unpinned.NorthEast() & enemies
			}
		} else {
			if shiftWest {
				targets = unpinned.SouthWest() & enemies
			} else {
				targets = unpinned.SouthEast() & enemies
			}
		}
		cp := capturePinned
		for cp != 0 {
			from := cp.PopLSB()
			if shiftWest && from.File() == 0 {
				continue
			}
			if !shiftWest && from.File() == 7 {
				continue
			}
			var to Square
			if us == White {
				if shiftWest {
					to = from + 7
				} else {
					to = from + 9
				}
			} else {
				if shiftWest {
					to = from - 9
				} else {
					to = from - 7
				}
			}
			if !to.IsValid() || SquareBB(to)&enemies == 0 {
				continue
			}
			if !Aligned(kingSq, from, to) {
				continue
			}
			pinnedTargets |= SquareBB(to)
		}
		targets |= pinnedTargets
		targets &= checkMask
		promo := targets & promotionRank
		quiet := targets &^ promo
		var offset int
		if us == White {
			if shiftWest {
				offset = 7
			} else {
				offset = 9
			}
		} else {
			if shiftWest {
				offset = -9
			} else {
				offset = -7
			}
		}
		for quiet != 0 {
			to := quiet.PopLSB()
			ml.Add(NewMove(Square(int(to)-offset), to))
		}
		for promo != 0 {
			to := promo.PopLSB()
			addPromotions(ml, Square(int(to)-offset), to)
		}
	}
	genCaptures(true)
	genCaptures(false)

	p.generateEnPassant(ml, us, kingSq, checkMask)
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, PromoQueen))
	ml.Add(NewPromotion(from, to, PromoRook))
	ml.Add(NewPromotion(from, to, PromoBishop))
	ml.Add(NewPromotion(from, to, PromoKnight))
}

func (p *Position) generateEnPassant(ml *MoveList, us Color, kingSq Square, checkMask Bitboard) {
	if p.EnPassant == NoSquare {
		return
	}
	them := us.Other()
	to := p.EnPassant
	var capturedSq Square
	if us == White {
		capturedSq = to - 8
	} else {
		capturedSq = to + 8
	}
	if checkMask != Universe && checkMask&(SquareBB(to)|SquareBB(capturedSq)) == 0 {
		return
	}

	candidates := PawnAttacks(to, them) & p.Pieces[us][Pawn]
	for candidates != 0 {
		from := candidates.PopLSB()
		if p.DiagPinned.IsSet(from) && !Aligned(kingSq, from, to) {
			continue
		}
		if p.HVPinned.IsSet(from) {
			continue
		}
		// En-passant can expose a hidden horizontal pin along the
		// fifth/fourth rank once both pawns vanish; verify by
		// simulating the capture's occupancy change directly.
		occAfter := p.AllOccupied
		occAfter &^= SquareBB(from) | SquareBB(capturedSq)
		occAfter |= SquareBB(to)
		hvAttackers := RookAttacks(kingSq, occAfter) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
		if hvAttackers != 0 {
			continue
		}
		ml.Add(NewEnPassant(from, to))
	}
}

func (p *Position) generateKnightMoves(ml *MoveList, us Color, checkMask Bitboard) {
	knights := p.Pieces[us][Knight] &^ (p.DiagPinned | p.HVPinned)
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) &^ p.Occupied[us] & checkMask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
}

func (p *Position) generateBishopMoves(ml *MoveList, us Color, kingSq Square, checkMask Bitboard) {
	bishops := p.Pieces[us][Bishop] &^ p.HVPinned
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, p.AllOccupied)
		if p.DiagPinned.IsSet(from) {
			attacks &= Line(kingSq, from)
		}
		attacks &^= p.Occupied[us]
		attacks &= checkMask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
}

func (p *Position) generateRookMoves(ml *MoveList, us Color, kingSq Square, checkMask Bitboard) {
	rooks := p.Pieces[us][Rook] &^ p.DiagPinned
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, p.AllOccupied)
		if p.HVPinned.IsSet(from) {
			attacks &= Line(kingSq, from)
		}
		attacks &^= p.Occupied[us]
		attacks &= checkMask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
}

func (p *Position) generateQueenMoves(ml *MoveList, us Color, kingSq Square, checkMask Bitboard) {
	queens := p.Pieces[us][Queen]
	pinned := p.DiagPinned | p.HVPinned
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, p.AllOccupied)
		if pinned.IsSet(from) {
			attacks &= Line(kingSq, from)
		}
		attacks &^= p.Occupied[us]
		attacks &= checkMask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
}

func (p *Position) generateKingMoves(ml *MoveList, us Color, kingSq Square) {
	them := us.Other()
	attacks := KingAttacks(kingSq) &^ p.Occupied[us]
	occWithoutKing := p.AllOccupied &^ SquareBB(kingSq)
	for attacks != 0 {
		to := attacks.PopLSB()
		if p.AttackersByColor(to, them, occWithoutKing) != 0 {
			continue
		}
		ml.Add(NewMove(kingSq, to))
	}
}

func (p *Position) generateCastlingMoves(ml *MoveList, us Color, kingSq Square) {
	them := us.Other()

	tryCastle := func(side CastleSide) {
		rookSq := p.CastlingRooks[us][side]
		if rookSq == NoSquare {
			return
		}
		var kingDest, rookDest Square
		rank := kingSq.Rank()
		if side == KingSide {
			kingDest = NewSquare(6, rank)
			rookDest = NewSquare(5, rank)
		} else {
			kingDest = NewSquare(2, rank)
			rookDest = NewSquare(3, rank)
		}

		blockSquares := (Between(kingSq, kingDest) | SquareBB(kingDest)) |
			(Between(rookSq, rookDest) | SquareBB(rookDest))
		blockSquares &^= SquareBB(kingSq) | SquareBB(rookSq)
		if blockSquares&p.AllOccupied != 0 {
			return
		}

		kingPath := Between(kingSq, kingDest) | SquareBB(kingDest) | SquareBB(kingSq)
		occWithoutKingAndRook := p.AllOccupied &^ (SquareBB(kingSq) | SquareBB(rookSq))
		path := kingPath
		for path != 0 {
			sq := path.PopLSB()
			if p.AttackersByColor(sq, them, occWithoutKingAndRook) != 0 {
				return
			}
		}

		ml.Add(NewCastle(kingSq, rookSq))
	}

	tryCastle(KingSide)
	tryCastle(QueenSide)
}
