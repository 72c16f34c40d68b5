package shell

import "io"

var commandNames = []string{
	"new", "block", "ai", "auto", "undo", "board", "moves", "replay", "depth", "help", "quit",
}

const helptext = `Commands:
  <move>            play a move: a1-a2, a1b2, or - to pass
  new               start a new game
  block <sq>...     block squares and their reflections (before the first move)
  ai                let the AI move for the side to move
  auto              let the AI play both sides to the end
  undo              take back the last move
  board             show the board
  moves             list legal moves
  replay <move>...  play several moves in order
  depth [n]         show or set the AI search depth
  help              this text
  quit              leave
`

func usage(w io.Writer) {
	io.WriteString(w, helptext)
}
