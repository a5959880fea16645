package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/solitaire/automatic"
	"github.com/domino14/solitaire/config"
	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/move"
)

var commands = []string{"new", "show", "legal", "play", "chance", "deal", "undo",
	"obs", "hash", "returns", "autoplay", "help", "exit"}

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.game = game.NewGame(
		game.WithLogger(log.Logger),
		game.WithBackupMode(game.InteractiveGameplayMode))
	if err := sc.game.ApplyAction(move.Setup); err != nil {
		return nil, err
	}
	if cmd.options.Bool("deal") {
		return sc.deal(cmd)
	}
	return msg(sc.game.String()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.String()), nil
}

func (sc *ShellController) legal(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.IsTerminal() {
		return msg("The game is over."), nil
	}
	var sb strings.Builder
	if sc.game.IsChanceNode() {
		sb.WriteString("Chance node; outcomes:\n")
	}
	for _, a := range sc.game.LegalActions() {
		fmt.Fprintf(&sb, "%4d: %s\n", int(a), sc.game.ActionToString(a))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// parseAction reads an action from the command arguments, either as an id
// or as text such as "Qh <- Js".
func parseAction(args []string) (move.Action, error) {
	if len(args) == 0 {
		return move.InvalidAction, errors.New("which action? give an id or a move such as `Qh <- Js`")
	}
	return move.ParseAction(strings.Join(args, " "))
}

func (sc *ShellController) apply(a move.Action) (*Response, error) {
	if err := sc.game.ApplyAction(a); err != nil {
		return nil, err
	}
	out := sc.game.String()
	if sc.game.IsTerminal() {
		out += fmt.Sprintf("\nGame over. Returns: %.0f", sc.game.Returns())
	}
	return msg(out), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	a, err := parseAction(cmd.args)
	if err != nil {
		return nil, err
	}
	if a.IsChance() {
		return nil, errors.New("that is a chance event; use `chance`")
	}
	return sc.apply(a)
}

func (sc *ShellController) randomChance() move.Action {
	outcomes := sc.game.ChanceOutcomes()
	return outcomes[sc.rng.Intn(len(outcomes))].Action
}

func (sc *ShellController) chance(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.IsChanceNode() || sc.game.IsTerminal() {
		return nil, errors.New("this is not a chance node")
	}
	if len(cmd.args) == 0 {
		return sc.apply(sc.randomChance())
	}
	a, err := parseAction(cmd.args)
	if err != nil {
		return nil, err
	}
	if !a.IsChance() {
		return nil, errors.New("that is a player action; use `play`")
	}
	return sc.apply(a)
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n := 0
	for sc.game.IsChanceNode() && !sc.game.IsTerminal() {
		if err := sc.game.ApplyAction(sc.randomChance()); err != nil {
			return nil, err
		}
		n++
	}
	log.Debug().Int("events", n).Msg("dealt")
	return msg(sc.game.String()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	return msg(sc.game.String()), nil
}

func (sc *ShellController) obs(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) > 0 && cmd.args[0] == "info" {
		return msg(sc.game.InformationStateString()), nil
	}
	vec := sc.game.ObservationTensor()
	strs := make([]string, len(vec))
	for i, v := range vec {
		strs[i] = strconv.Itoa(int(v))
	}
	return msg(sc.game.ObservationString() + "\n" + strings.Join(strs, " ")), nil
}

func (sc *ShellController) hash(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(fmt.Sprintf("%016x", sc.zobrist.Hash(sc.game))), nil
}

func (sc *ShellController) returns(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(fmt.Sprintf("returns: %.0f  rewards: %.0f", sc.game.Returns(), sc.game.Rewards())), nil
}

func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		return false
	default:
		return true
	}
}

func (sc *ShellController) stopAutoplay() {
	if sc.autoplayCancel == nil {
		return
	}
	sc.autoplayCancel()
	<-sc.autoplayDone
	sc.autoplayCancel = nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.autoplayRunning() {
				return nil, errors.New("no autoplay is running")
			}
			sc.stopAutoplay()
			return msg("autoplay stopped"), nil
		case "analyze":
			if len(cmd.args) < 2 {
				return nil, errors.New("usage: autoplay analyze <file>")
			}
			sum, err := automatic.AnalyzeLogFile(cmd.args[1])
			if err != nil {
				return nil, err
			}
			return msg(sum.String()), nil
		default:
			return nil, fmt.Errorf("unrecognized autoplay argument %q", cmd.args[0])
		}
	}
	if sc.autoplayRunning() {
		return nil, automatic.ErrAlreadyPlaying
	}
	numGames, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	outFile := cmd.options.String("file")
	if outFile == "" {
		outFile = sc.config.GetString(config.ConfigAutoplayOutput)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	done := make(chan struct{})
	sc.autoplayDone = done
	go func() {
		defer close(done)
		sum, err := automatic.StartSelfPlay(ctx, sc.config, numGames, threads, outFile)
		if err != nil {
			log.Err(err).Msg("autoplay-error")
			return
		}
		log.Info().Msgf("autoplay done:\n%v", sum)
	}()
	return msg(fmt.Sprintf("autoplay started: %d games on %d threads, writing to %s",
		numGames, threads, outFile)), nil
}
