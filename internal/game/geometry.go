// internal/game/geometry.go
package game

const (
	// Side is the number of playable squares along one edge.
	Side = 7
	// Border is the depth of the always-blocked ring around the play area.
	Border = 2
	// ExtendedSide is Side plus the border on both edges.
	ExtendedSide = Side + 2*Border
	// GridSize is the number of squares in the bordered grid.
	GridSize = ExtendedSide * ExtendedSide

	// JumpLimit is the number of consecutive non-extending moves that ends the game.
	JumpLimit = 25
)

// Bounds of the playable squares in linearized order.
var (
	firstPlaySquare = Index(0, 0)
	lastPlaySquare  = Index(Side-1, Side-1)
)

// Index maps column col and row row (0-based, a1 = 0,0) to a linearized
// square. Coordinates up to Border cells outside the board land on the
// blocked border, so callers may scan two cells in any direction freely.
func Index(col, row int) int {
	return (row+Border)*ExtendedSide + (col + Border)
}

// Neighbor returns the square dc columns and dr rows away from sq.
func Neighbor(sq, dc, dr int) int {
	return sq + dc + dr*ExtendedSide
}

// ColRow is the inverse of Index.
func ColRow(sq int) (col, row int) {
	return sq%ExtendedSide - Border, sq/ExtendedSide - Border
}

// InPlay reports whether col, row is one of the 49 playable squares.
func InPlay(col, row int) bool {
	return col >= 0 && col < Side && row >= 0 && row < Side
}

// squareInPlay is InPlay for a linearized square.
func squareInPlay(sq int) bool {
	if sq < 0 || sq >= GridSize {
		return false
	}
	return InPlay(ColRow(sq))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
