package game

import (
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

// MaxGameLength is the episode length hosts should budget for.
const MaxGameLength = 300

// Descriptor holds the static facts a host framework needs to size its
// buffers and normalize returns.
type Descriptor struct {
	Name                  string
	NumDistinctActions    int
	MaxChanceOutcomes     int
	MaxGameLength         int
	NumPlayers            int
	MinUtility            float64
	MaxUtility            float64
	ObservationShape      []int
	InformationStateShape []int
}

func GameDescriptor() Descriptor {
	return Descriptor{
		Name:                  "solitaire",
		NumDistinctActions:    move.NumDistinctActions,
		MaxChanceOutcomes:     card.NumCards,
		MaxGameLength:         MaxGameLength,
		NumPlayers:            1,
		MinUtility:            MinUtility,
		MaxUtility:            MaxUtility,
		ObservationShape:      []int{ObservationSize},
		InformationStateShape: []int{InformationStateSize},
	}
}

// SimState is the turn-by-turn contract a search or self-play driver works
// against.
type SimState interface {
	CurrentPlayer() int
	IsChanceNode() bool
	IsTerminal() bool
	LegalActions() []move.Action
	ChanceOutcomes() []ChanceOutcome
	ApplyAction(a move.Action) error
	Returns() float64
	Rewards() float64
	ActionToString(a move.Action) string
	History() []move.Action
	ObservationTensor() []float64
	InformationStateTensor() []float64
	Clone() SimState
}

var _ SimState = (*Game)(nil)

func (g *Game) Clone() SimState {
	return g.Copy()
}
