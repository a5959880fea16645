package game

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/move"
	"github.com/domino14/solitaire/movegen"
	"github.com/domino14/solitaire/pile"
)

// ApplyAction applies a, which must be one of LegalActions. A rejected
// action leaves the game untouched.
func (g *Game) ApplyAction(a move.Action) error {
	// No legal actions means the game is over; moves are generated once.
	legal := g.LegalActions()
	if len(legal) == 0 {
		return ErrGameOver
	}
	if !lo.Contains(legal, a) {
		return fmt.Errorf("%w: %v (%d)", ErrActionNotLegal, a, a)
	}
	if g.backupMode != NoBackup {
		g.backupState()
	}
	g.previousScore = g.Returns()

	switch a.Type() {
	case move.ActionTypeSetup:
		g.setup()
	case move.ActionTypeReveal:
		if err := g.reveal(a); err != nil {
			return err
		}
	case move.ActionTypeDraw:
		g.draw()
	case move.ActionTypeMove:
		if err := g.playMove(a); err != nil {
			return err
		}
	}

	if g.isSetup && g.board.IsSolvable() {
		g.board.ForceComplete()
		g.isFinished = true
		g.logger.Debug().Float64("returns", g.Returns()).Msg("board is solvable, completed foundations")
	}
	g.history = append(g.history, a)
	g.logger.Debug().Str("action", a.String()).Int("id", int(a)).
		Int("draw-counter", g.drawCounter).Bool("reversible", g.isReversible).
		Msg("applied action")
	return nil
}

func (g *Game) setup() {
	g.board = board.New()
	g.isSetup = true
	g.isStarted = false
	g.isFinished = false
	g.isReversible = false
	g.drawCounter = 0
	g.previousScore = 0
}

func (g *Game) reveal(a move.Action) error {
	c, err := a.RevealedCard()
	if err != nil {
		return err
	}
	if _, ok := g.board.RevealNext(c); !ok {
		// Chance nodes always have a face-down slot waiting.
		panic(fmt.Sprintf("no face-down card to reveal %v onto", c))
	}
	g.revealed[c.Index()] = true
	g.numRevealed++
	if !g.isStarted && !g.board.HasHiddenTop() {
		g.isStarted = true
		g.previousScore = 0
	}
	return nil
}

func (g *Game) draw() {
	if len(g.board.Stock.Undealt()) == 0 {
		if err := g.board.Stock.Rebuild(); err != nil {
			g.logger.Warn().Err(err).Msg("rebuild-failed")
		}
	}
	g.board.Stock.Draw(pile.DrawSize)

	// A draw that leaves nothing to do but draw again is progress toward
	// the draw loop limit.
	if len(g.decisionActions()) == 1 {
		g.drawCounter++
	}
	if g.drawCounter >= DrawLoopLimit {
		g.isFinished = true
	}
}

func (g *Game) playMove(a move.Action) error {
	m, err := move.FromAction(a)
	if err != nil {
		return err
	}
	reversible := movegen.IsReversible(g.board, m)
	if err := g.board.MoveCards(m); err != nil {
		return err
	}
	g.isReversible = reversible
	if g.drawCounter <= DrawLoopLimit {
		g.drawCounter = 0
	}
	return nil
}

// ApplyActions applies each action in turn, stopping at the first error.
func (g *Game) ApplyActions(actions ...move.Action) error {
	for i, a := range actions {
		if err := g.ApplyAction(a); err != nil {
			return fmt.Errorf("action %d of %d: %w", i+1, len(actions), err)
		}
	}
	return nil
}

// IsRejected reports whether err means an action was refused without
// changing the game.
func IsRejected(err error) bool {
	return errors.Is(err, ErrActionNotLegal) || errors.Is(err, ErrGameOver)
}
