package game

import (
	"fmt"
)

// MoveKind tags the three shapes a Move can take.
type MoveKind uint8

const (
	MovePass MoveKind = iota
	MoveExtend
	MoveJump
)

func (k MoveKind) String() string {
	switch k {
	case MovePass:
		return "pass"
	case MoveExtend:
		return "extend"
	case MoveJump:
		return "jump"
	}
	return "unknown"
}

// Move is an immutable pass, extend or jump. The zero value is a pass.
type Move struct {
	kind                   MoveKind
	col0, row0, col1, row1 int8
}

// Pass is the only pass move.
var Pass = Move{kind: MovePass}

// NewMove builds the move col0,row0 -> col1,row1 (0-based columns and rows),
// classifying it as an extend (Chebyshev distance 1) or a jump (distance 2).
func NewMove(col0, row0, col1, row1 int) (Move, error) {
	if !InPlay(col0, row0) || !InPlay(col1, row1) {
		return Move{}, fmt.Errorf("%w: coordinates off the board", ErrMalformedMove)
	}
	dc, dr := abs(col1-col0), abs(row1-row0)
	var kind MoveKind
	switch {
	case dc == 0 && dr == 0:
		return Move{}, fmt.Errorf("%w: origin equals destination", ErrMalformedMove)
	case dc <= 1 && dr <= 1:
		kind = MoveExtend
	case dc <= 2 && dr <= 2:
		kind = MoveJump
	default:
		return Move{}, fmt.Errorf("%w: destination more than two squares away", ErrMalformedMove)
	}
	return Move{
		kind: kind,
		col0: int8(col0), row0: int8(row0),
		col1: int8(col1), row1: int8(row1),
	}, nil
}

// ParseMove reads "-" (pass), "a1-b2" or "a1b2".
func ParseMove(s string) (Move, error) {
	if s == "-" {
		return Pass, nil
	}
	switch {
	case len(s) == 5 && s[2] == '-':
		s = s[:2] + s[3:]
	case len(s) == 4:
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	col0, row0, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	col1, row1, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return NewMove(col0, row0, col1, row1)
}

// ParseSquare reads a two-character square name such as "c5".
func ParseSquare(s string) (col, row int, err error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'g' || s[1] < '1' || s[1] > '7' {
		return 0, 0, fmt.Errorf("%w: bad square %q", ErrMalformedMove, s)
	}
	return int(s[0] - 'a'), int(s[1] - '1'), nil
}

// SquareName is the inverse of ParseSquare.
func SquareName(col, row int) string {
	return string([]byte{byte('a' + col), byte('1' + row)})
}

func (m Move) Kind() MoveKind { return m.kind }
func (m Move) IsPass() bool   { return m.kind == MovePass }
func (m Move) IsExtend() bool { return m.kind == MoveExtend }
func (m Move) IsJump() bool   { return m.kind == MoveJump }

// Origin and Dest return the 0-based column and row of each end.
func (m Move) Origin() (col, row int) { return int(m.col0), int(m.row0) }
func (m Move) Dest() (col, row int)   { return int(m.col1), int(m.row1) }

// From and To return linearized squares.
func (m Move) From() int { return Index(int(m.col0), int(m.row0)) }
func (m Move) To() int   { return Index(int(m.col1), int(m.row1)) }

func (m Move) String() string {
	if m.IsPass() {
		return "-"
	}
	return SquareName(int(m.col0), int(m.row0)) + "-" + SquareName(int(m.col1), int(m.row1))
}

// MarshalText lets moves travel as their canonical notation in JSON.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	mv, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = mv
	return nil
}

// GenerateMoves lists every legal non-pass move for player on b, scanning
// origins column a..g and row 7..1, then destinations from two columns left
// to two columns right and two rows up to two rows down.
func GenerateMoves(b *Board, player CellState) []Move {
	var moves []Move
	for col := 0; col < Side; col++ {
		for row := Side - 1; row >= 0; row-- {
			from := Index(col, row)
			if b.cells[from] != player {
				continue
			}
			for dc := -2; dc <= 2; dc++ {
				for dr := 2; dr >= -2; dr-- {
					if dc == 0 && dr == 0 {
						continue
					}
					if b.cells[Neighbor(from, dc, dr)] != Empty {
						continue
					}
					kind := MoveJump
					if abs(dc) <= 1 && abs(dr) <= 1 {
						kind = MoveExtend
					}
					moves = append(moves, Move{
						kind: kind,
						col0: int8(col), row0: int8(row),
						col1: int8(col + dc), row1: int8(row + dr),
					})
				}
			}
		}
	}
	return moves
}
