// Package shell is an interactive prompt for playing and inspecting
// solitaire games by hand.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/solitaire/config"
	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/zobrist"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer

	game    *game.Game
	zobrist *zobrist.Zobrist
	rng     *frand.RNG

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(commands))
	for _, c := range commands {
		items = append(items, readline.PcItem(c))
	}
	return readline.NewPrefixCompleter(items...)
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	return &ShellController{
		config:  cfg,
		out:     out,
		zobrist: zobrist.New(),
		rng:     frand.NewCustom(frand.Bytes(32), 1024, 12),
	}
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32msolitaire>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    completer(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg, l.Stderr())
	sc.l = l
	return sc
}

// extractFields splits a line into a command, its arguments, and its
// -key value options. Quoting works the way it does in a POSIX shell.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if _, err := strconv.Atoi(fields[idx]); err == nil {
				// a negative number is an argument
				args = append(args, fields[idx])
				continue
			}
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

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
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := extractFields(line)
		if err != nil {
			sc.showError(err)
			continue
		}
		if cmd.cmd == "exit" || cmd.cmd == "bye" {
			sc.stopAutoplay()
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.standardModeSwitch(cmd)
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs one command line and returns what it would print.
func (sc *ShellController) Execute(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	resp, err := sc.standardModeSwitch(cmd)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.message, nil
}

func (sc *ShellController) standardModeSwitch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "legal":
		return sc.legal(cmd)
	case "play":
		return sc.play(cmd)
	case "chance":
		return sc.chance(cmd)
	case "deal":
		return sc.deal(cmd)
	case "undo":
		return sc.undo(cmd)
	case "obs":
		return sc.obs(cmd)
	case "hash":
		return sc.hash(cmd)
	case "returns":
		return sc.returns(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "help":
		return sc.help(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
		return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
	}
}
