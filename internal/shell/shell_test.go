package shell

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"ataxx_go/internal/game"
	"ataxx_go/internal/session"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestController() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	return newController(&buf, session.Settings{Depth: 1, Seed: 1}), &buf
}

func TestMoveAndBoard(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.NoErr(sc.Execute("a1-a2"))
	is.True(strings.Contains(out.String(), "2  r - - - - - -"))
	is.True(strings.Contains(out.String(), "blue to move. red 3, blue 2."))

	out.Reset()
	is.NoErr(sc.Execute("undo"))
	is.True(strings.Contains(out.String(), "red to move."))

	is.True(errors.Is(sc.Execute("undo"), game.ErrUndoUnderflow))
	is.True(errors.Is(sc.Execute("a1-a1"), game.ErrMalformedMove))
	is.True(errors.Is(sc.Execute("a7-a6"), game.ErrIllegalMove))
}

func TestBlockCommand(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.True(errors.Is(sc.Execute("block"), errNeedsArg))
	is.NoErr(sc.Execute("block c3 d4"))
	is.Equal(sc.game.Snapshot().Open, 40)
	is.True(strings.Contains(out.String(), "3  - - X - X - -"))
	is.True(errors.Is(sc.Execute("block d4"), game.ErrIllegalBlock))
}

func TestMovesCommand(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.NoErr(sc.Execute("moves"))
	fields := strings.Fields(out.String())
	is.Equal(len(fields), 16)
	is.Equal(fields[0], "a1-a3")
}

func TestReplayAndDepth(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.NoErr(sc.Execute(`replay a1-a2 "a7-a6"`))
	is.Equal(len(sc.game.Snapshot().Moves), 2)

	out.Reset()
	is.NoErr(sc.Execute("depth"))
	is.Equal(strings.TrimSpace(out.String()), "1")
	is.NoErr(sc.Execute("depth 2"))
	is.Equal(sc.game.Depth(), 2)
	is.True(sc.Execute("depth x") != nil)
	is.True(sc.Execute("depth 0") != nil)

	is.NoErr(sc.Execute("new"))
	is.Equal(len(sc.game.Snapshot().Moves), 0)
	is.Equal(sc.game.Depth(), 2)
}

func TestAIAndAuto(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.NoErr(sc.Execute("ai"))
	is.True(strings.Contains(out.String(), "AI plays "))
	is.Equal(sc.game.Snapshot().ToMove, "blue")

	out.Reset()
	is.NoErr(sc.Execute("auto"))
	is.True(sc.game.GameOver())
	is.True(strings.Contains(out.String(), "Game over: "))
	is.True(errors.Is(sc.Execute("ai"), session.ErrGameOver))
}

func TestMiscCommands(t *testing.T) {
	is := is.New(t)
	sc, out := newTestController()
	is.NoErr(sc.Execute(""))
	is.NoErr(sc.Execute("help"))
	is.True(strings.Contains(out.String(), "replay <move>..."))
	is.True(errors.Is(sc.Execute("quit"), errQuit))
	is.True(errors.Is(sc.Execute("EXIT"), errQuit))
	is.True(sc.Execute(`replay "a1-a2`) != nil) // unterminated quote
}

func TestCompleterKnowsCommands(t *testing.T) {
	is := is.New(t)
	pc := completer()
	is.Equal(len(pc.GetChildren()), len(commandNames))
}
