package game

import (
	"fmt"
)

// LegalMove reports whether m may be played by the side to move.
// A pass is legal only when that side has pieces but nowhere to go.
func (b *Board) LegalMove(m Move) bool {
	if m.IsPass() {
		return !b.CanMove(b.toMove) && b.counts[b.toMove] > 0
	}
	from, to := m.From(), m.To()
	if !squareInPlay(from) || !squareInPlay(to) {
		return false
	}
	c0, r0 := m.Origin()
	c1, r1 := m.Dest()
	if abs(c1-c0) > 2 || abs(r1-r0) > 2 {
		return false
	}
	return b.cells[from] == b.toMove && b.cells[to] == Empty
}

// CanMove reports whether who has at least one extend or jump, ignoring
// whose turn it is and whether the game is over.
func (b *Board) CanMove(who CellState) bool {
	if b.counts[Empty] == 0 || b.counts[who] == 0 {
		return false
	}
	for sq := firstPlaySquare; sq <= lastPlaySquare; sq++ {
		if b.cells[sq] != who {
			continue
		}
		for dr := -2; dr <= 2; dr++ {
			for dc := -2; dc <= 2; dc++ {
				if b.cells[Neighbor(sq, dc, dr)] == Empty {
					return true
				}
			}
		}
	}
	return false
}

// Apply plays m for the side to move. The board is left untouched when m is
// not legal.
func (b *Board) Apply(m Move) error {
	if !b.LegalMove(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	if m.IsPass() {
		b.pass()
		return nil
	}

	b.startUndo()
	b.history = append(b.history, m)
	player := b.toMove
	to := m.To()
	if m.IsJump() {
		b.set(m.From(), Empty)
		b.jumps++
	} else {
		b.jumps = 0
	}
	b.set(to, player)
	b.convert(to, player)

	b.toMove = Opponent(player)
	b.checkWinner()
	b.announce()
	return nil
}

// convert flips every opponent piece adjacent to sq to player.
func (b *Board) convert(sq int, player CellState) {
	opp := Opponent(player)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := Neighbor(sq, dc, dr)
			if b.cells[n] == opp {
				b.set(n, player)
			}
		}
	}
}

// pass hands the turn over. It is undoable like any other move.
func (b *Board) pass() {
	b.startUndo()
	b.history = append(b.history, Pass)
	b.toMove = Opponent(b.toMove)
	b.announce()
}

// checkWinner decides the game when neither side can move or the jump
// streak reaches JumpLimit, and awards it to the opponent when the side to
// move has been wiped out.
func (b *Board) checkWinner() {
	opp := Opponent(b.toMove)
	switch {
	case !b.CanMove(b.toMove) && !b.CanMove(opp):
		b.decideOnCount()
	case b.jumps >= JumpLimit:
		b.decideOnCount()
	case !b.CanMove(b.toMove) && b.counts[b.toMove] == 0:
		b.gameOver = true
		b.winner = opp
	}
}

func (b *Board) decideOnCount() {
	b.gameOver = true
	switch {
	case b.counts[Red] > b.counts[Blue]:
		b.winner = Red
	case b.counts[Blue] > b.counts[Red]:
		b.winner = Blue
	default:
		b.winner = Empty
	}
}

// LegalBlock reports whether a block may be placed at col, row: only before
// the first move and only on an empty square.
func (b *Board) LegalBlock(col, row int) bool {
	if len(b.history) > 0 || !InPlay(col, row) {
		return false
	}
	return b.Get(col, row) == Empty
}

// SetBlock blocks col, row together with its reflections across the middle
// row and middle column. Blocks are permanent until Clear and cannot be
// undone.
func (b *Board) SetBlock(col, row int) error {
	if !b.LegalBlock(col, row) {
		return fmt.Errorf("%w: %s", ErrIllegalBlock, SquareName(col, row))
	}
	mirror := Side - 1
	for _, sq := range [...]int{
		Index(col, row),
		Index(mirror-col, row),
		Index(col, mirror-row),
		Index(mirror-col, mirror-row),
	} {
		// on the centre lines some reflections coincide
		if b.cells[sq] == Empty {
			b.unrecordedSet(sq, Blocked)
		}
	}
	b.checkWinner()
	b.announce()
	return nil
}
