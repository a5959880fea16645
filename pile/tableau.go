package pile

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/solitaire/card"
)

// Tableau is one of the seven cascading piles. Cards are stored bottom to
// top; only face-up cards may be moved, together with everything above them.
type Tableau struct {
	cards []card.Card
}

// NewTableau returns a tableau with n face-down slots.
func NewTableau(n int) *Tableau {
	return &Tableau{cards: hiddenSlots(n, card.LocTableau)}
}

// TableauOf builds a tableau from the given cards, bottom first, keeping
// their hidden flags.
func TableauOf(cards ...card.Card) *Tableau {
	return &Tableau{cards: relocate(cards, card.LocTableau)}
}

func (t *Tableau) Location() card.Location { return card.LocTableau }
func (t *Tableau) Cards() []card.Card      { return t.cards }
func (t *Tableau) Len() int                { return len(t.cards) }

// Sources are all face-up cards; any of them can be the base of a run.
func (t *Tableau) Sources() []card.Card {
	return lo.Filter(t.cards, func(c card.Card, _ int) bool {
		return !c.Hidden
	})
}

// Targets is the face-up top card, or the empty marker. A face-down top
// card cannot receive anything until it is revealed.
func (t *Tableau) Targets() []card.Card {
	top, ok := t.Top()
	if !ok {
		return []card.Card{card.TableauMarker()}
	}
	if top.Hidden {
		return nil
	}
	return []card.Card{top}
}

// Split removes c and every card above it and returns them in order.
func (t *Tableau) Split(c card.Card) ([]card.Card, error) {
	pos := t.Position(c)
	if pos < 0 {
		return nil, notFound(c, t)
	}
	run := slices.Clone(t.cards[pos:])
	t.cards = t.cards[:pos]
	return run, nil
}

func (t *Tableau) Extend(cards []card.Card) {
	t.cards = append(t.cards, relocate(cards, card.LocTableau)...)
}

// Top returns the top card, if any.
func (t *Tableau) Top() (card.Card, bool) {
	if len(t.cards) == 0 {
		return card.Card{}, false
	}
	return t.cards[len(t.cards)-1], true
}

// Position returns the height of c in this tableau, or -1.
func (t *Tableau) Position(c card.Card) int {
	_, pos, ok := lo.FindIndexOf(t.cards, c.Same)
	if !ok {
		return -1
	}
	return pos
}

// HiddenCount is the number of face-down cards.
func (t *Tableau) HiddenCount() int {
	return lo.CountBy(t.cards, func(c card.Card) bool { return c.Hidden })
}

// RevealTop turns over a face-down top card as c. It reports false if the
// top card is already face up or the tableau is empty.
func (t *Tableau) RevealTop(c card.Card) bool {
	top, ok := t.Top()
	if !ok || !top.Hidden {
		return false
	}
	c.Hidden = false
	c.Location = card.LocTableau
	t.cards[len(t.cards)-1] = c
	return true
}

func (t *Tableau) Clear() {
	t.cards = t.cards[:0]
}

func (t *Tableau) Copy() *Tableau {
	return &Tableau{cards: slices.Clone(t.cards)}
}
