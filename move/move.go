// Package move defines the structured move type and its mapping to integer
// action ids.
package move

import (
	"fmt"

	"github.com/domino14/solitaire/card"
)

// Move places Source, and everything stacked above it, onto Target. Target
// is a marker card when the destination pile is empty.
type Move struct {
	Target card.Card
	Source card.Card
}

func New(target, source card.Card) Move {
	return Move{Target: target, Source: source}
}

// cardPair is a move keyed by dense card indices.
type cardPair struct {
	target int
	source int
}

var (
	actionToPair [numMoves]cardPair
	pairToAction map[cardPair]Action
)

// The move ids are laid out as follows, with suits always in s, h, c, d
// order:
//
//	54..57    a King onto an empty tableau
//	58..109   per suit, foundation builds: empty <- A, A <- 2, ... Q <- K
//	110..205  per suit, tableau builds for ranks 2..K, each onto the two
//	          lower cards of the opposite color
//
// Consumers depend on these numbers, so the order here must not change.
func init() {
	pairs := make([]cardPair, 0, numMoves)
	for _, s := range card.Suits {
		pairs = append(pairs, cardPair{card.TableauBaseIndex, card.New(card.King, s).Index()})
	}
	for _, s := range card.Suits {
		pairs = append(pairs, cardPair{card.FoundationMarker(s).Index(), card.New(card.Ace, s).Index()})
		for r := card.Ace; r < card.King; r++ {
			pairs = append(pairs, cardPair{card.New(r, s).Index(), card.New(r+1, s).Index()})
		}
	}
	for _, s := range card.Suits {
		for r := card.Two; r <= card.King; r++ {
			for _, os := range s.OppositeSuits() {
				pairs = append(pairs, cardPair{card.New(r, s).Index(), card.New(r-1, os).Index()})
			}
		}
	}
	if len(pairs) != numMoves {
		panic(fmt.Sprintf("move table has %d entries, expected %d", len(pairs), numMoves))
	}
	pairToAction = make(map[cardPair]Action, numMoves)
	for i, p := range pairs {
		actionToPair[i] = p
		pairToAction[p] = firstMove + Action(i)
	}
}

// FromAction decodes a move id.
func FromAction(a Action) (Move, error) {
	if a.Type() != ActionTypeMove {
		return Move{}, fmt.Errorf("%w: %d is not a move", ErrInvalidAction, a)
	}
	p := actionToPair[a-firstMove]
	return New(card.MustFromIndex(p.target), card.MustFromIndex(p.source)), nil
}

// Action encodes the move. Pairs that can never be generated as a legal
// move have no id.
func (m Move) Action() (Action, error) {
	a, ok := pairToAction[cardPair{m.Target.Index(), m.Source.Index()}]
	if !ok {
		return InvalidAction, fmt.Errorf("%w: no id for move %v", ErrInvalidAction, m)
	}
	return a, nil
}

// MustAction is Action for moves that came out of move generation.
func (m Move) MustAction() Action {
	a, err := m.Action()
	if err != nil {
		panic(err)
	}
	return a
}

// IsFoundationMove reports whether the move builds on a foundation. Only
// foundations build upwards, so the identities alone decide it.
func (m Move) IsFoundationMove() bool {
	return m.Target.Kind == card.FoundationBase ||
		(m.Target.Kind == card.Ordinary && m.Source.Rank == m.Target.Rank+1)
}

func (m Move) String() string {
	return fmt.Sprintf("%v <- %v", m.Target, m.Source)
}
