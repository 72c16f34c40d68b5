package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"ataxx_go/internal/config"
	"ataxx_go/internal/game"
	"ataxx_go/internal/session"
)

var (
	errQuit       = errors.New("quit")
	errNeedsArg   = errors.New("missing argument")
	errAutoLimit  = errors.New("auto stopped before the game ended")
	defaultPrompt = "\033[31mataxx>\033[0m "
)

// autoPlyLimit bounds `auto` so a pathological position cannot spin forever.
const autoPlyLimit = 5000

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	settings session.Settings
	game     *session.Game
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          defaultPrompt,
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := newController(l.Stdout(), session.Settings{
		Depth:       cfg.SearchDepth(),
		Seed:        cfg.Seed(),
		ShuffleRoot: cfg.ShuffleRoot(),
	})
	sc.l = l
	return sc, nil
}

func newController(out io.Writer, s session.Settings) *ShellController {
	return &ShellController{
		out:      out,
		settings: s,
		game:     session.NewGame(s),
	}
}

func completer() *readline.PrefixCompleter {
	items := lo.Map(commandNames, func(name string, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(name)
	})
	return readline.NewPrefixCompleter(items...)
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) showBoard() {
	sc.showMessage(sc.game.Render())
	s := sc.game.Snapshot()
	switch {
	case s.GameOver && s.Winner == "draw":
		sc.showMessage(fmt.Sprintf("Game over: draw, %d-%d.", s.Red, s.Blue))
	case s.GameOver:
		sc.showMessage(fmt.Sprintf("Game over: %s wins, %d-%d.", s.Winner, s.Red, s.Blue))
	default:
		sc.showMessage(fmt.Sprintf("%s to move. red %d, blue %d.", s.ToMove, s.Red, s.Blue))
	}
}

// Execute runs one command line.
func (sc *ShellController) Execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "new":
		sc.game = session.NewGame(sc.settings)
		sc.showBoard()
	case "block":
		if len(args) == 0 {
			return fmt.Errorf("%w: block <square>...", errNeedsArg)
		}
		for _, sq := range args {
			if err := sc.game.Block(sq); err != nil {
				return err
			}
		}
		sc.showBoard()
	case "ai":
		m, elapsed, err := sc.game.PlayAI()
		if err != nil {
			return err
		}
		sc.showMessage(fmt.Sprintf("AI plays %s (%v).", m, elapsed.Round(time.Microsecond)))
		sc.showBoard()
	case "auto":
		return sc.auto()
	case "undo":
		if err := sc.game.Undo(); err != nil {
			return err
		}
		sc.showBoard()
	case "board":
		sc.showBoard()
	case "moves":
		moves := lo.Map(sc.game.LegalMoves(), func(m game.Move, _ int) string { return m.String() })
		sc.showMessage(strings.Join(moves, " "))
	case "replay":
		if err := sc.game.Replay(args); err != nil {
			return err
		}
		sc.showBoard()
	case "depth":
		if len(args) == 0 {
			sc.showMessage(strconv.Itoa(sc.game.Depth()))
			return nil
		}
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if err := sc.game.SetDepth(d); err != nil {
			return err
		}
		sc.settings.Depth = d
	case "help":
		usage(sc.out)
	case "quit", "exit", "bye":
		return errQuit
	default:
		m, err := sc.game.Play(fields[0])
		if err != nil {
			return err
		}
		log.Debug().Str("move", m.String()).Msg("shell-move")
		sc.showBoard()
	}
	return nil
}

// auto lets the AI play both sides to the end of the game.
func (sc *ShellController) auto() error {
	for ply := 0; ply < autoPlyLimit; ply++ {
		if sc.game.GameOver() {
			sc.showBoard()
			return nil
		}
		m, _, err := sc.game.PlayAI()
		if err != nil {
			return err
		}
		sc.showMessage(m.String())
	}
	return errAutoLimit
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showBoard()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}

		err = sc.Execute(strings.TrimSpace(line))
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop")
}
