// Package automatic plays solitaire on its own: random playouts that
// exercise the engine, and batch self-play that records results and
// observation vectors for later training.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/move"
	"github.com/domino14/solitaire/zobrist"
)

// GameRecord sums up one finished game.
type GameRecord struct {
	ID                string        `yaml:"id"`
	Seed              string        `yaml:"seed,omitempty"`
	Actions           int           `yaml:"actions"`
	Moves             int           `yaml:"moves"`
	Draws             int           `yaml:"draws"`
	Reveals           int           `yaml:"reveals"`
	Rebuilds          int           `yaml:"rebuilds"`
	Returns           float64       `yaml:"returns"`
	Won               bool          `yaml:"won"`
	Capped            bool          `yaml:"capped"`
	DistinctPositions int           `yaml:"distinct_positions"`
	History           []move.Action `yaml:"history,omitempty"`
}

// GameRunner plays games with a uniformly random policy. A runner is not
// safe for concurrent use; give each worker its own.
type GameRunner struct {
	zobrist *zobrist.Zobrist

	// maxActions stops a game that is still going after this many actions.
	maxActions  int
	validate    bool
	keepHistory bool
	// onDecision, if set, sees every decision node before the action is
	// chosen.
	onDecision func(g *game.Game)
}

// NewGameRunner just instantiates and initializes a game runner.
func NewGameRunner() *GameRunner {
	return &GameRunner{
		zobrist:    zobrist.New(),
		maxActions: game.InformationStateSize,
	}
}

// PlayGame plays a game with a fresh runner. See GameRunner.PlayGame.
func PlayGame(ctx context.Context, rng *frand.RNG) (*GameRecord, error) {
	return NewGameRunner().PlayGame(ctx, rng)
}

func sampleChance(outcomes []game.ChanceOutcome, rng *frand.RNG) move.Action {
	x := rng.Float64()
	acc := 0.0
	for _, o := range outcomes {
		acc += o.Probability
		if x < acc {
			return o.Action
		}
	}
	return outcomes[len(outcomes)-1].Action
}

// PlayGame plays one game to the end. Every random choice, both the cards
// that get dealt and the player's actions, comes from rng, so the same seed
// always plays the same game.
func (r *GameRunner) PlayGame(ctx context.Context, rng *frand.RNG) (*GameRecord, error) {
	g := game.NewGame()
	rec := &GameRecord{}
	seen := make(map[uint64]struct{})

	for !g.IsTerminal() {
		if rec.Actions >= r.maxActions {
			rec.Capped = true
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var a move.Action
		if g.IsChanceNode() {
			a = sampleChance(g.ChanceOutcomes(), rng)
		} else {
			seen[r.zobrist.Hash(g)] = struct{}{}
			if r.onDecision != nil {
				r.onDecision(g)
			}
			legal := g.LegalActions()
			a = legal[rng.Intn(len(legal))]
		}
		if err := g.ApplyAction(a); err != nil {
			return nil, fmt.Errorf("applying %v: %w", a, err)
		}
		if r.validate && g.IsSetup() {
			if err := g.Board().Validate(); err != nil {
				log.Error().Str("state", g.String()).Msg("board-invalid")
				return nil, fmt.Errorf("after %v: %w", a, err)
			}
		}
		rec.Actions++
		switch a.Type() {
		case move.ActionTypeMove:
			rec.Moves++
		case move.ActionTypeDraw:
			rec.Draws++
		case move.ActionTypeReveal:
			rec.Reveals++
		}
	}

	rec.Rebuilds = g.Board().Stock.TimesRebuilt()
	rec.Returns = g.Returns()
	rec.Won = true
	for _, f := range g.Board().Foundations {
		if !f.Complete() {
			rec.Won = false
		}
	}
	rec.DistinctPositions = len(seen)
	if r.keepHistory {
		rec.History = append([]move.Action(nil), g.History()...)
	}
	log.Debug().Int("actions", rec.Actions).Float64("returns", rec.Returns).
		Bool("won", rec.Won).Msg("game-over")
	return rec, nil
}
