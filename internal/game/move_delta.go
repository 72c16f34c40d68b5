package game

// undoMark in undoCell.sq opens the records of one move (passes included).
const undoMark = -1

// undoCell is one entry of the undo log: a square and the value it held
// before the move overwrote it. A mark also carries the streak and result
// that were current before the move.
type undoCell struct {
	sq    int
	prev  CellState
	jumps int

	gameOver bool
	winner   CellState
}

// startUndo opens the undo segment for the next move.
func (b *Board) startUndo() {
	b.undo = append(b.undo, undoCell{
		sq:       undoMark,
		jumps:    b.jumps,
		gameOver: b.gameOver,
		winner:   b.winner,
	})
}

// addUndo records the current contents of sq.
func (b *Board) addUndo(sq int) {
	b.undo = append(b.undo, undoCell{sq: sq, prev: b.cells[sq]})
}

// Undo takes back the last move or pass, restoring squares, counts, the
// side to move, the jump streak and the result exactly.
func (b *Board) Undo() error {
	if len(b.history) == 0 || len(b.undo) == 0 {
		return ErrUndoUnderflow
	}
	b.toMove = Opponent(b.toMove)
	b.history = b.history[:len(b.history)-1]

	// replay in reverse
	i := len(b.undo) - 1
	for ; b.undo[i].sq != undoMark; i-- {
		b.unrecordedSet(b.undo[i].sq, b.undo[i].prev)
	}
	mark := b.undo[i]
	b.jumps = mark.jumps
	b.gameOver, b.winner = mark.gameOver, mark.winner
	b.undo = b.undo[:i]
	b.announce()
	return nil
}
