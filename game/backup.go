package game

import (
	"errors"
	"slices"

	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

type BackupMode int

const (
	// NoBackup never performs game backups. It can be used for autoplay
	// that has absolutely no input.
	NoBackup BackupMode = iota
	// SimulationMode keeps a stack of game copies, so that a search can
	// play forward and then unwind back to where it started.
	SimulationMode
	// InteractiveGameplayMode keeps a backup before every action so that a
	// person at the shell can take actions back.
	InteractiveGameplayMode
)

var ErrNothingToUndo = errors.New("no backed-up state to go back to")

// stateBackup is a subset of Game, meant only for backup purposes.
type stateBackup struct {
	board         *board.Board
	history       []move.Action
	revealed      [card.NumCards]bool
	numRevealed   int
	isSetup       bool
	isStarted     bool
	isFinished    bool
	isReversible  bool
	drawCounter   int
	previousScore float64
}

func (g *Game) SetBackupMode(m BackupMode) {
	g.backupMode = m
	if m == NoBackup {
		g.stateStack = nil
	}
}

func (g *Game) backupState() {
	g.stateStack = append(g.stateStack, &stateBackup{
		board:         g.board.Copy(),
		history:       slices.Clone(g.history),
		revealed:      g.revealed,
		numRevealed:   g.numRevealed,
		isSetup:       g.isSetup,
		isStarted:     g.isStarted,
		isFinished:    g.isFinished,
		isReversible:  g.isReversible,
		drawCounter:   g.drawCounter,
		previousScore: g.previousScore,
	})
}

// UnplayLastMove restores the game to how it was before the last applied
// action. It needs a backup mode other than NoBackup to have been set at
// the time.
func (g *Game) UnplayLastMove() error {
	if len(g.stateStack) == 0 {
		return ErrNothingToUndo
	}
	st := g.stateStack[len(g.stateStack)-1]
	g.stateStack = g.stateStack[:len(g.stateStack)-1]

	g.board = st.board
	g.history = st.history
	g.revealed = st.revealed
	g.numRevealed = st.numRevealed
	g.isSetup = st.isSetup
	g.isStarted = st.isStarted
	g.isFinished = st.isFinished
	g.isReversible = st.isReversible
	g.drawCounter = st.drawCounter
	g.previousScore = st.previousScore
	return nil
}

// NumBackups is how many actions can currently be undone.
func (g *Game) NumBackups() int {
	return len(g.stateStack)
}
