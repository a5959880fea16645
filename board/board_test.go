package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
	"github.com/domino14/solitaire/pile"
)

func c(s string) card.Card {
	cd, err := card.FromString(s)
	if err != nil {
		panic(err)
	}
	return cd
}

func hidden(s string) card.Card {
	cd := c(s)
	cd.Hidden = true
	return cd
}

// smallBoard is a partial layout; it does not hold all 52 cards.
func smallBoard() *Board {
	b := NewEmpty()
	b.Stock = pile.StockOf(c("2c"), c("9d"), c("4h"))
	b.Stock.Draw(pile.DrawSize)
	b.Foundations[card.Spades].Extend([]card.Card{c("As")})
	b.Tableaus[0] = pile.TableauOf(c("Kd"))
	b.Tableaus[1] = pile.TableauOf(hidden("3d"), c("Qs"), c("Jh"))
	b.Tableaus[2] = pile.TableauOf(hidden("5d"), hidden("6d"))
	b.Tableaus[3] = pile.TableauOf(c("2s"))
	return b
}

func TestNewLayout(t *testing.T) {
	is := is.New(t)
	b := New()
	for i, tab := range b.Tableaus {
		is.Equal(tab.Len(), i+1)
		is.Equal(tab.HiddenCount(), i+1)
	}
	is.Equal(len(b.Stock.Undealt()), 24)
	is.Equal(len(b.Stock.Waste()), 0)
	is.True(b.HasHiddenTop())
	is.NoErr(b.Validate())
	// nothing can be targeted or moved before anything is revealed
	is.Equal(len(b.Sources()), 0)
	is.Equal(len(b.Targets()), 4)
}

func TestIndexLocate(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	idx := b.Index()

	l, ok := idx.Locate(c("Jh"))
	is.True(ok)
	is.Equal(l, Loc{Location: card.LocTableau, Pile: 1, Pos: 2})
	l, ok = idx.Locate(c("2c"))
	is.True(ok)
	is.Equal(l, Loc{Location: card.LocWaste, Pile: 0, Pos: 0})
	_, ok = idx.Locate(c("7c"))
	is.True(!ok)

	l, ok = idx.Locate(card.TableauMarker())
	is.True(ok)
	is.Equal(l.Pile, 4)
	_, ok = idx.Locate(card.FoundationMarker(card.Spades))
	is.True(!ok)
	l, ok = idx.Locate(card.FoundationMarker(card.Clubs))
	is.True(ok)
	is.Equal(l.Pile, int(card.Clubs))
}

func TestTopBottomOverHidden(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	is.True(b.IsTopCard(c("Jh")))
	is.True(!b.IsTopCard(c("Qs")))
	is.True(b.IsTopCard(c("2c")))
	is.True(!b.IsTopCard(c("9d")))
	is.True(b.IsTopCard(c("As")))

	is.True(b.IsBottomCard(c("Kd")))
	is.True(!b.IsBottomCard(c("Qs")))
	is.True(b.IsOverHiddenCard(c("Qs")))
	is.True(!b.IsOverHiddenCard(c("Jh")))
	is.True(!b.IsOverHiddenCard(c("Kd")))
}

func TestTargetsSources(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	targets := names(b.Targets())
	// the third tableau has a hidden top and offers no target
	is.Equal(targets, []string{"Kd", "Jh", "2s", "__", "__", "__", "As", "♥", "♣", "♦"})
	is.Equal(names(b.Sources()), []string{"Kd", "Qs", "Jh", "2s", "As", "2c"})
}

func names(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, cd := range cards {
		out[i] = cd.String()
	}
	return out
}

func TestMoveCards(t *testing.T) {
	is := is.New(t)
	b := smallBoard()

	is.NoErr(b.MoveCards(move.New(c("As"), c("2s"))))
	is.Equal(b.Foundations[card.Spades].Len(), 2)
	is.Equal(b.Tableaus[3].Len(), 0)

	is.NoErr(b.MoveCards(move.New(c("Kd"), c("Qs"))))
	is.Equal(names(b.Tableaus[0].Cards()), []string{"Kd", "Qs", "Jh"})
	is.Equal(b.Tableaus[1].Len(), 1)

	// empty marker resolves to the leftmost empty tableau
	is.NoErr(b.MoveCards(move.New(card.TableauMarker(), c("Kd"))))
	is.Equal(b.Tableaus[0].Len(), 0)
	is.Equal(names(b.Tableaus[3].Cards()), []string{"Kd", "Qs", "Jh"})
}

func TestMoveCardsRejects(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	before := b.String()

	// unknown source, buried target, buried waste card, filled foundation,
	// hidden source, missing source
	cases := []move.Move{
		move.New(c("Jh"), c("Ts")),
		move.New(c("Qs"), c("Jh")),
		move.New(c("Kd"), c("9d")),
		move.New(card.FoundationMarker(card.Spades), c("As")),
		move.New(c("6d"), c("5d")),
		move.New(c("2c"), c("Ah")),
	}
	for _, m := range cases {
		err := b.MoveCards(m)
		is.True(errors.Is(err, ErrIllegalMove))
	}
	is.Equal(b.String(), before)
}

func TestRevealNext(t *testing.T) {
	is := is.New(t)
	b := New()
	for i := 0; i < NumTableaus; i++ {
		loc, ok := b.RevealNext(card.Deck()[i])
		is.True(ok)
		is.Equal(loc, card.LocTableau)
	}
	is.True(!b.HasHiddenTop())
	_, ok := b.RevealNext(card.Deck()[7])
	is.True(!ok)

	b.Stock.Draw(pile.DrawSize)
	loc, ok := b.RevealNext(card.Deck()[7])
	is.True(ok)
	is.Equal(loc, card.LocWaste)
	is.NoErr(b.Validate())
}

func TestBuriedHidden(t *testing.T) {
	is := is.New(t)
	b := New()
	is.Equal(b.BuriedHidden(), 21)
	b.RevealNext(c("As"))
	is.Equal(b.BuriedHidden(), 21)
}

func TestSolvableAndForceComplete(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	is.True(!b.IsSolvable())

	b = NewEmpty()
	b.Tableaus[0] = pile.TableauOf(c("Kh"), c("Qs"))
	is.True(b.IsSolvable())
	b.ForceComplete()
	for _, f := range b.Foundations {
		is.True(f.Complete())
	}
	for _, tab := range b.Tableaus {
		is.Equal(tab.Len(), 0)
	}
	is.NoErr(b.Validate())
}

func TestValidateCatchesDuplicates(t *testing.T) {
	is := is.New(t)
	b := New()
	b.RevealNext(c("As"))
	b.RevealNext(c("As"))
	is.True(errors.Is(b.Validate(), ErrInvariant))

	b = smallBoard()
	is.True(errors.Is(b.Validate(), ErrInvariant))
}

func TestCopyIsDeep(t *testing.T) {
	is := is.New(t)
	b := smallBoard()
	cp := b.Copy()
	is.NoErr(cp.MoveCards(move.New(c("As"), c("2s"))))
	is.Equal(b.Tableaus[3].Len(), 1)
	is.Equal(b.Foundations[card.Spades].Len(), 1)
}

func BenchmarkIndex(b *testing.B) {
	bd := New()
	for i := 0; i < NumTableaus; i++ {
		bd.RevealNext(card.Deck()[i])
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bd.Index()
	}
}
