// Package board holds the twelve piles of a solitaire layout and the
// queries that need to look across more than one of them.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
	"github.com/domino14/solitaire/pile"
)

const (
	NumTableaus    = 7
	NumFoundations = 4
	// StockSize is what is left for the stock after the tableaus are dealt.
	StockSize = card.NumCards - NumTableaus*(NumTableaus+1)/2
)

var (
	ErrIllegalMove = errors.New("move cannot be applied to this board")
	ErrInvariant   = errors.New("board invariant violated")
)

// Board owns every pile. Foundations are indexed by suit.
type Board struct {
	Stock       *pile.Stock
	Foundations [NumFoundations]*pile.Foundation
	Tableaus    [NumTableaus]*pile.Tableau
}

// New returns the layout right after the deal: tableaus of 1 through 7
// face-down cards, empty foundations and a face-down stock.
func New() *Board {
	b := NewEmpty()
	b.Stock = pile.NewStock(StockSize)
	for i := range b.Tableaus {
		b.Tableaus[i] = pile.NewTableau(i + 1)
	}
	return b
}

// NewEmpty returns a board where every pile is empty.
func NewEmpty() *Board {
	b := &Board{Stock: pile.StockOf()}
	for _, s := range card.Suits {
		b.Foundations[s] = pile.NewFoundation(s)
	}
	for i := range b.Tableaus {
		b.Tableaus[i] = pile.NewTableau(0)
	}
	return b
}

func (b *Board) Copy() *Board {
	cp := &Board{Stock: b.Stock.Copy()}
	for i, f := range b.Foundations {
		cp.Foundations[i] = f.Copy()
	}
	for i, t := range b.Tableaus {
		cp.Tableaus[i] = t.Copy()
	}
	return cp
}

// Targets lists every card that can receive a move, tableaus first.
func (b *Board) Targets() []card.Card {
	targets := lo.FlatMap(b.Tableaus[:], func(t *pile.Tableau, _ int) []card.Card {
		return t.Targets()
	})
	return append(targets, lo.FlatMap(b.Foundations[:], func(f *pile.Foundation, _ int) []card.Card {
		return f.Targets()
	})...)
}

// Sources lists every card that can currently be moved.
func (b *Board) Sources() []card.Card {
	sources := lo.FlatMap(b.Tableaus[:], func(t *pile.Tableau, _ int) []card.Card {
		return t.Sources()
	})
	sources = append(sources, lo.FlatMap(b.Foundations[:], func(f *pile.Foundation, _ int) []card.Card {
		return f.Sources()
	})...)
	return append(sources, b.Stock.Sources()...)
}

func (b *Board) pile(l Loc) pile.Pile {
	switch l.Location {
	case card.LocTableau:
		return b.Tableaus[l.Pile]
	case card.LocFoundation:
		return b.Foundations[l.Pile]
	case card.LocWaste:
		return b.Stock
	}
	return nil
}

// MoveCards applies m. Both ends are checked before anything is touched,
// so a failed move leaves the board as it was.
func (b *Board) MoveCards(m move.Move) error {
	idx := b.Index()
	src, ok := idx.Locate(m.Source)
	if !ok || !b.IsSource(src) {
		return fmt.Errorf("%w: source %v is not movable", ErrIllegalMove, m.Source)
	}
	dst, ok := idx.Locate(m.Target)
	if !ok || !b.IsTarget(dst) {
		return fmt.Errorf("%w: target %v cannot receive cards", ErrIllegalMove, m.Target)
	}
	if src.Location == dst.Location && src.Pile == dst.Pile {
		return fmt.Errorf("%w: %v is already on %v", ErrIllegalMove, m.Source, m.Target)
	}
	run, err := b.pile(src).Split(m.Source)
	if err != nil {
		panic(fmt.Sprintf("split failed after validation: %v", err))
	}
	b.pile(dst).Extend(run)
	return nil
}

// IsSource reports whether the card at l may be moved away.
func (b *Board) IsSource(l Loc) bool {
	switch l.Location {
	case card.LocTableau:
		return !b.Tableaus[l.Pile].Cards()[l.Pos].Hidden
	case card.LocFoundation:
		return b.IsTop(l)
	case card.LocWaste:
		return l.Pos == 0 && !b.Stock.Waste()[0].Hidden
	}
	return false
}

// IsTarget reports whether the card or marker at l can receive cards.
func (b *Board) IsTarget(l Loc) bool {
	switch l.Location {
	case card.LocTableau:
		t := b.Tableaus[l.Pile]
		if l.Pos < 0 {
			return t.Len() == 0
		}
		return b.IsTop(l) && !t.Cards()[l.Pos].Hidden
	case card.LocFoundation:
		return l.Pos < 0 || b.IsTop(l)
	}
	return false
}

// IsTop reports whether l is the top card of its pile. For the waste, the
// top is the exposed card.
func (b *Board) IsTop(l Loc) bool {
	switch l.Location {
	case card.LocTableau:
		return l.Pos >= 0 && l.Pos == b.Tableaus[l.Pile].Len()-1
	case card.LocFoundation:
		return l.Pos >= 0 && l.Pos == b.Foundations[l.Pile].Len()-1
	case card.LocWaste:
		return l.Pos == 0
	}
	return false
}

// IsBottom reports whether l is the lowest card of a tableau.
func (b *Board) IsBottom(l Loc) bool {
	return l.Location == card.LocTableau && l.Pos == 0
}

// IsOverHidden reports whether the tableau card at l sits directly on a
// face-down card.
func (b *Board) IsOverHidden(l Loc) bool {
	if l.Location != card.LocTableau || l.Pos < 1 {
		return false
	}
	return b.Tableaus[l.Pile].Cards()[l.Pos-1].Hidden
}

func (b *Board) IsTopCard(c card.Card) bool {
	l, ok := b.Index().Locate(c)
	return ok && b.IsTop(l)
}

func (b *Board) IsBottomCard(c card.Card) bool {
	l, ok := b.Index().Locate(c)
	return ok && b.IsBottom(l)
}

func (b *Board) IsOverHiddenCard(c card.Card) bool {
	l, ok := b.Index().Locate(c)
	return ok && b.IsOverHidden(l)
}

// HasHiddenTop reports whether some tableau is waiting for its top card to
// be revealed.
func (b *Board) HasHiddenTop() bool {
	return lo.ContainsBy(b.Tableaus[:], func(t *pile.Tableau) bool {
		top, ok := t.Top()
		return ok && top.Hidden
	})
}

// RevealNext gives c to the first face-down slot waiting to be revealed:
// the leftmost hidden tableau top, otherwise the first hidden waste card.
// It returns where c went.
func (b *Board) RevealNext(c card.Card) (card.Location, bool) {
	for _, t := range b.Tableaus {
		if t.RevealTop(c) {
			return card.LocTableau, true
		}
	}
	if b.Stock.RevealNext(c) {
		return card.LocWaste, true
	}
	return card.LocMissing, false
}

// BuriedHidden counts face-down tableau cards, not counting face-down tops,
// which will be turned over by the next chance event anyway.
func (b *Board) BuriedHidden() int {
	return lo.SumBy(b.Tableaus[:], func(t *pile.Tableau) int {
		n := t.HiddenCount()
		if top, ok := t.Top(); ok && top.Hidden {
			n--
		}
		return n
	})
}

// IsSolvable reports whether the game can no longer be lost: the stock and
// waste are empty and every tableau card is face up.
func (b *Board) IsSolvable() bool {
	return b.Stock.Len() == 0 && lo.EveryBy(b.Tableaus[:], func(t *pile.Tableau) bool {
		return t.HiddenCount() == 0
	})
}

// ForceComplete plays out a solvable board: the tableaus are cleared and
// every foundation is filled.
func (b *Board) ForceComplete() {
	for _, t := range b.Tableaus {
		t.Clear()
	}
	for _, f := range b.Foundations {
		f.Fill()
	}
}

// Validate checks that the board holds exactly 52 physical cards and that
// no identity appears twice.
func (b *Board) Validate() error {
	var seen [card.NumCards]bool
	count := 0
	check := func(cards []card.Card) error {
		for _, c := range cards {
			count++
			if c.Kind == card.Unknown {
				continue
			}
			if c.Kind != card.Ordinary {
				return fmt.Errorf("%w: marker %v in a pile", ErrInvariant, c)
			}
			if seen[c.Index()] {
				return fmt.Errorf("%w: duplicate %v", ErrInvariant, c)
			}
			seen[c.Index()] = true
		}
		return nil
	}
	piles := [][]card.Card{b.Stock.Undealt(), b.Stock.Waste()}
	for _, f := range b.Foundations {
		piles = append(piles, f.Cards())
	}
	for _, t := range b.Tableaus {
		piles = append(piles, t.Cards())
	}
	for _, p := range piles {
		if err := check(p); err != nil {
			return err
		}
	}
	if count != card.NumCards {
		return fmt.Errorf("%w: %d cards on the board", ErrInvariant, count)
	}
	return nil
}

// String renders the piles one per line, with only the foundation tops
// shown.
func (b *Board) String() string {
	var sb strings.Builder
	writeCards := func(label string, cards []card.Card) {
		fmt.Fprintf(&sb, "%-12s: ", label)
		sb.WriteString(strings.Join(lo.Map(cards, func(c card.Card, _ int) string {
			return c.String()
		}), " "))
		sb.WriteString("\n")
	}
	writeCards("STOCK", b.Stock.Undealt())
	writeCards("WASTE", b.Stock.Waste())
	writeCards("FOUNDATIONS", lo.Map(b.Foundations[:], func(f *pile.Foundation, _ int) card.Card {
		if top, ok := f.Top(); ok {
			return top
		}
		return card.FoundationMarker(f.Suit())
	}))
	for i, t := range b.Tableaus {
		writeCards(fmt.Sprintf("TABLEAU %d", i+1), t.Cards())
	}
	return sb.String()
}
