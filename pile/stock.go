package pile

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/solitaire/card"
)

// DrawSize is how many cards a single draw turns over.
const DrawSize = 3

// Stock is the stock and waste pair. The stock is a queue whose front is
// drawn next. In the waste, index 0 is the exposed card and the only one
// that may be played.
//
// Cards are dealt face down into the stock and only get their identity when
// they first reach the waste. The order in which that happens is kept so
// the stock can be rebuilt the same way every time it runs out.
type Stock struct {
	stock        []card.Card
	waste        []card.Card
	dealOrder    []card.Card
	timesRebuilt int
}

// NewStock returns a stock of n face-down cards and an empty waste.
func NewStock(n int) *Stock {
	return &Stock{stock: hiddenSlots(n, card.LocStock)}
}

// StockOf returns a stock holding the given face-up cards, front first. The
// deal order is the given order.
func StockOf(cards ...card.Card) *Stock {
	s := &Stock{}
	s.Extend(cards)
	return s
}

func (s *Stock) Location() card.Location { return card.LocWaste }

// Cards returns the waste, exposed card first.
func (s *Stock) Cards() []card.Card     { return s.waste }
func (s *Stock) Len() int               { return len(s.stock) + len(s.waste) }
func (s *Stock) Undealt() []card.Card   { return s.stock }
func (s *Stock) Waste() []card.Card     { return s.waste }
func (s *Stock) DealOrder() []card.Card { return s.dealOrder }
func (s *Stock) TimesRebuilt() int      { return s.timesRebuilt }

// Sources is the exposed waste card, if it has been revealed.
func (s *Stock) Sources() []card.Card {
	if len(s.waste) == 0 || s.waste[0].Hidden {
		return nil
	}
	return []card.Card{s.waste[0]}
}

// Targets is always empty: nothing may be moved onto the waste.
func (s *Stock) Targets() []card.Card {
	return nil
}

// Split removes the exposed waste card. Any other card is an error.
func (s *Stock) Split(c card.Card) ([]card.Card, error) {
	if len(s.waste) == 0 || !s.waste[0].Same(c) {
		return nil, notFound(c, s)
	}
	front := s.waste[0]
	s.waste = slices.Clone(s.waste[1:])
	return []card.Card{front}, nil
}

// Extend puts cards at the back of the stock queue. Face-up cards are
// recorded in the deal order as they arrive.
func (s *Stock) Extend(cards []card.Card) {
	for _, c := range relocate(cards, card.LocStock) {
		s.stock = append(s.stock, c)
		if !c.Hidden {
			s.dealOrder = append(s.dealOrder, c)
		}
	}
}

// Draw moves up to n cards from the front of the stock to the waste. The
// first card drawn ends up exposed. It returns the number of cards moved.
func (s *Stock) Draw(n int) int {
	n = min(n, len(s.stock))
	if n == 0 {
		return 0
	}
	waste := make([]card.Card, 0, n+len(s.waste))
	waste = append(waste, relocate(s.stock[:n], card.LocWaste)...)
	s.waste = append(waste, s.waste...)
	s.stock = slices.Clone(s.stock[n:])
	return n
}

// Rebuild turns the waste back into the stock, in deal order rather than
// waste order. It only works on an empty stock.
func (s *Stock) Rebuild() error {
	if len(s.stock) > 0 {
		return ErrRebuildNonEmptyStock
	}
	rebuilt := lo.Filter(s.dealOrder, func(c card.Card, _ int) bool {
		return lo.ContainsBy(s.waste, c.Same)
	})
	s.stock = relocate(rebuilt, card.LocStock)
	s.waste = nil
	s.timesRebuilt++
	return nil
}

// HasHidden reports whether any waste card is still face down.
func (s *Stock) HasHidden() bool {
	return lo.ContainsBy(s.waste, func(c card.Card) bool { return c.Hidden })
}

// RevealNext gives the first face-down waste card the identity c. It
// reports false if there was nothing to reveal.
func (s *Stock) RevealNext(c card.Card) bool {
	_, i, ok := lo.FindIndexOf(s.waste, func(w card.Card) bool { return w.Hidden })
	if !ok {
		return false
	}
	c.Hidden = false
	c.Location = card.LocWaste
	s.waste[i] = c
	s.dealOrder = append(s.dealOrder, c)
	return true
}

// Clear empties the stock and the waste. The deal order is kept.
func (s *Stock) Clear() {
	s.stock = nil
	s.waste = nil
}

func (s *Stock) Copy() *Stock {
	return &Stock{
		stock:        slices.Clone(s.stock),
		waste:        slices.Clone(s.waste),
		dealOrder:    slices.Clone(s.dealOrder),
		timesRebuilt: s.timesRebuilt,
	}
}
