package pile

import (
	"slices"

	"github.com/domino14/solitaire/card"
)

// Foundation holds one suit, built up from the Ace.
type Foundation struct {
	suit  card.Suit
	cards []card.Card
}

func NewFoundation(s card.Suit) *Foundation {
	return &Foundation{suit: s}
}

func (f *Foundation) Suit() card.Suit         { return f.suit }
func (f *Foundation) Location() card.Location { return card.LocFoundation }
func (f *Foundation) Cards() []card.Card      { return f.cards }
func (f *Foundation) Len() int                { return len(f.cards) }

func (f *Foundation) Top() (card.Card, bool) {
	if len(f.cards) == 0 {
		return card.Card{}, false
	}
	return f.cards[len(f.cards)-1], true
}

func (f *Foundation) Sources() []card.Card {
	top, ok := f.Top()
	if !ok {
		return nil
	}
	return []card.Card{top}
}

func (f *Foundation) Targets() []card.Card {
	top, ok := f.Top()
	if !ok {
		return []card.Card{card.FoundationMarker(f.suit)}
	}
	return []card.Card{top}
}

// Split only ever removes the top card. Asking for any other card is an
// error, even if that card is further down this foundation.
func (f *Foundation) Split(c card.Card) ([]card.Card, error) {
	top, ok := f.Top()
	if !ok || !top.Same(c) {
		return nil, notFound(c, f)
	}
	f.cards = f.cards[:len(f.cards)-1]
	return []card.Card{top}, nil
}

func (f *Foundation) Extend(cards []card.Card) {
	f.cards = append(f.cards, relocate(cards, card.LocFoundation)...)
}

func (f *Foundation) Complete() bool {
	return len(f.cards) == int(card.King)
}

// Fill replaces the contents with the full Ace..King run of this suit.
func (f *Foundation) Fill() {
	f.cards = f.cards[:0]
	for r := card.Ace; r <= card.King; r++ {
		c := card.New(r, f.suit)
		c.Location = card.LocFoundation
		f.cards = append(f.cards, c)
	}
}

func (f *Foundation) Copy() *Foundation {
	return &Foundation{suit: f.suit, cards: slices.Clone(f.cards)}
}
