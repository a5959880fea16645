// Package pile implements the three kinds of card piles on a solitaire
// board. They share the Pile contract: Sources lists the cards that may be
// moved away, Targets lists what may receive a move, Split removes a run and
// Extend places a run on top.
package pile

import (
	"errors"
	"fmt"

	"github.com/domino14/solitaire/card"
)

var (
	ErrCardNotFound         = errors.New("card not found in pile")
	ErrRebuildNonEmptyStock = errors.New("cannot rebuild a non-empty stock")
)

// Pile is the capability shared by the stock/waste pair, the foundations
// and the tableaus.
type Pile interface {
	Location() card.Location
	// Cards returns the pile contents bottom to top. The slice must not be
	// modified.
	Cards() []card.Card
	Len() int
	Sources() []card.Card
	Targets() []card.Card
	Split(c card.Card) ([]card.Card, error)
	Extend(cards []card.Card)
}

func notFound(c card.Card, p Pile) error {
	return fmt.Errorf("%w: %v in %v", ErrCardNotFound, c, p.Location())
}

func relocate(cards []card.Card, loc card.Location) []card.Card {
	out := make([]card.Card, len(cards))
	for i, c := range cards {
		c.Location = loc
		out[i] = c
	}
	return out
}

func hiddenSlots(n int, loc card.Location) []card.Card {
	cards := make([]card.Card, n)
	for i := range cards {
		cards[i] = card.HiddenSlot(loc)
	}
	return cards
}
