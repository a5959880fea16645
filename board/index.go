package board

import (
	"github.com/domino14/solitaire/card"
)

// Loc is where a card sits. Pile is the tableau number or the foundation
// suit, and Pos the height within that pile (or the waste position, with 0
// being the exposed card). Markers have a Pos of -1.
type Loc struct {
	Location card.Location
	Pile     int
	Pos      int
}

var missing = Loc{Location: card.LocMissing, Pile: -1, Pos: -1}

// Index is a snapshot of where every revealed card is. Building one costs a
// single pass over the board, after which lookups are constant time; move
// generation builds it once instead of searching the piles per candidate.
// It goes stale as soon as the board changes.
type Index struct {
	cards           [card.NumCards]Loc
	emptyTableau    int
	emptyFoundation [NumFoundations]bool
}

func (b *Board) Index() *Index {
	idx := &Index{emptyTableau: -1}
	for i := range idx.cards {
		idx.cards[i] = missing
	}
	add := func(cards []card.Card, loc card.Location, p int) {
		for pos, c := range cards {
			if c.Kind == card.Ordinary {
				idx.cards[c.Index()] = Loc{Location: loc, Pile: p, Pos: pos}
			}
		}
	}
	for i, t := range b.Tableaus {
		if t.Len() == 0 && idx.emptyTableau < 0 {
			idx.emptyTableau = i
		}
		add(t.Cards(), card.LocTableau, i)
	}
	for i, f := range b.Foundations {
		idx.emptyFoundation[i] = f.Len() == 0
		add(f.Cards(), card.LocFoundation, i)
	}
	add(b.Stock.Waste(), card.LocWaste, 0)
	add(b.Stock.Undealt(), card.LocStock, 0)
	return idx
}

// Locate finds c. The tableau marker resolves to the leftmost empty
// tableau, and a foundation marker to its suit's foundation if that is
// empty. Face-down cards have no identity and are never found.
func (idx *Index) Locate(c card.Card) (Loc, bool) {
	switch c.Kind {
	case card.Ordinary:
		l := idx.cards[c.Index()]
		return l, l.Location != card.LocMissing
	case card.TableauBase:
		if idx.emptyTableau < 0 {
			return missing, false
		}
		return Loc{Location: card.LocTableau, Pile: idx.emptyTableau, Pos: -1}, true
	case card.FoundationBase:
		if c.Suit < card.Spades || c.Suit > card.Diamonds || !idx.emptyFoundation[c.Suit] {
			return missing, false
		}
		return Loc{Location: card.LocFoundation, Pile: int(c.Suit), Pos: -1}, true
	}
	return missing, false
}
