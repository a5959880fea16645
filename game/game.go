// Package game encapsulates the main mechanics of a game of Klondike
// solitaire: the chance events that deal and turn over cards, the player's
// draws and moves, scoring and the end of the game.
//
// A Game never generates randomness itself. At a chance node it reports the
// possible outcomes and the caller applies the one that happened, so a game
// is fully determined by its action history.
package game

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
	"github.com/domino14/solitaire/movegen"
)

const (
	// DecisionPlayer is the only player that makes choices.
	DecisionPlayer = 0
	ChancePlayer   = -1
	TerminalPlayer = -4

	// DrawLoopLimit is how many fruitless draws end the game.
	DrawLoopLimit = 8
)

var (
	ErrActionNotLegal = errors.New("action is not legal in this state")
	ErrGameOver       = errors.New("game is over")
)

// generatorPool hands out move generators, so that queries never write to
// the Game and one Game can be read from several goroutines.
var generatorPool = sync.Pool{
	New: func() any {
		return movegen.NewGenerator()
	},
}

// Game is the whole state of one game of solitaire. Only ApplyAction (and
// undoing through the backup stack) changes it; everything else is a query
// and is safe to call concurrently.
type Game struct {
	board  *board.Board
	logger zerolog.Logger

	history     []move.Action
	revealed    [card.NumCards]bool
	numRevealed int

	isSetup   bool
	isStarted bool
	// isFinished is set when draws stop making progress or the board is
	// auto-completed.
	isFinished bool
	// isReversible is whether the last move could be undone right away. If
	// so, the next decision may not make a reversible move.
	isReversible bool

	drawCounter   int
	previousScore float64

	backupMode BackupMode
	stateStack []*stateBackup
}

type Option func(*Game)

// WithLogger makes the game log every action it applies. Games are silent
// by default.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithBackupMode sets the backup mode; see SetBackupMode.
func WithBackupMode(m BackupMode) Option {
	return func(g *Game) {
		g.backupMode = m
	}
}

// NewGame returns a game that has not been set up yet. Its only legal
// action is the Setup chance event.
func NewGame(opts ...Option) *Game {
	g := &Game{
		board:  board.NewEmpty(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Board returns the current board. It must not be modified.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) History() []move.Action {
	return g.history
}

func (g *Game) DrawCounter() int {
	return g.drawCounter
}

// LastMoveReversible reports whether reversible moves are currently being
// suppressed.
func (g *Game) LastMoveReversible() bool {
	return g.isReversible
}

func (g *Game) IsSetup() bool   { return g.isSetup }
func (g *Game) IsStarted() bool { return g.isStarted }

// NumRevealed is how many cards have had their identity dealt so far.
func (g *Game) NumRevealed() int {
	return g.numRevealed
}

func (g *Game) CurrentPlayer() int {
	switch {
	case g.IsTerminal():
		return TerminalPlayer
	case g.IsChanceNode():
		return ChancePlayer
	}
	return DecisionPlayer
}

// IsChanceNode reports whether the next action is dealt rather than chosen:
// before setup, and whenever a tableau top or a waste card is face down.
func (g *Game) IsChanceNode() bool {
	if !g.isSetup {
		return true
	}
	return g.board.HasHiddenTop() || g.board.Stock.HasHidden()
}

func (g *Game) IsTerminal() bool {
	if g.endedByRule() {
		return true
	}
	// A decision node with nothing to do: no moves and no cards to draw.
	return !g.IsChanceNode() && len(g.decisionActions()) == 0
}

// endedByRule covers every way a game ends that does not need move
// generation to detect.
func (g *Game) endedByRule() bool {
	if g.isFinished || g.drawCounter >= DrawLoopLimit {
		return true
	}
	return len(g.history) >= DrawLoopLimit && lo.EveryBy(g.history[len(g.history)-DrawLoopLimit:],
		func(a move.Action) bool { return a == move.Draw })
}

// ChanceOutcome is one possible chance event and its probability.
type ChanceOutcome struct {
	Action      move.Action
	Probability float64
}

// ChanceOutcomes lists the possible chance events: Setup before the game
// is set up, and afterwards a uniform choice among the cards nobody has
// seen yet. It is empty at a decision node.
func (g *Game) ChanceOutcomes() []ChanceOutcome {
	if !g.isSetup {
		return []ChanceOutcome{{Action: move.Setup, Probability: 1}}
	}
	if !g.IsChanceNode() || g.endedByRule() {
		return nil
	}
	p := 1.0 / float64(card.NumCards-g.numRevealed)
	outcomes := make([]ChanceOutcome, 0, card.NumCards-g.numRevealed)
	for i, seen := range g.revealed {
		if !seen {
			outcomes = append(outcomes, ChanceOutcome{
				Action:      move.RevealAction(card.MustFromIndex(i)),
				Probability: p,
			})
		}
	}
	return outcomes
}

// LegalActions returns the actions that may be applied now: the chance
// outcomes at a chance node, otherwise the allowed moves followed by Draw.
// It is empty exactly when the game is over.
func (g *Game) LegalActions() []move.Action {
	if g.endedByRule() {
		return nil
	}
	if g.IsChanceNode() {
		return lo.Map(g.ChanceOutcomes(), func(o ChanceOutcome, _ int) move.Action {
			return o.Action
		})
	}
	if actions := g.decisionActions(); len(actions) > 0 {
		return actions
	}
	return nil
}

// decisionActions are the player's options, whether or not cards are still
// waiting to be revealed.
func (g *Game) decisionActions() []move.Action {
	gen := generatorPool.Get().(*movegen.Generator)
	gen.GenAll(g.board, g.isReversible)
	actions := gen.Actions()
	generatorPool.Put(gen)
	if g.board.Stock.Len() > 0 && g.drawCounter < DrawLoopLimit {
		actions = append(actions, move.Draw)
	}
	return actions
}

// ActionToString returns a readable form of a, such as "Move Qh <- Js".
func (g *Game) ActionToString(a move.Action) string {
	return a.String()
}

// Copy returns a deep copy that shares nothing with g. The backup stack is
// not copied.
func (g *Game) Copy() *Game {
	cp := *g
	cp.board = g.board.Copy()
	cp.history = slices.Clone(g.history)
	cp.stateStack = nil
	return &cp
}
