package game

import (
	"github.com/samber/lo"

	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/pile"
)

const (
	// Every face-down tableau card and undealt stock card is worth this much
	// once it is uncovered or played.
	hiddenCardPoints = 20
	// After the deal, 21 tableau cards lie under the seven tops.
	buriedAtStart = 21

	MinUtility = 0.0
	// MaxUtility is every foundation complete, every tableau card uncovered
	// and the stock used up.
	MaxUtility = 4*580 + buriedAtStart*hiddenCardPoints + board.StockSize*hiddenCardPoints
)

// foundationPoints favors getting low cards up early.
var foundationPoints = [card.King + 1]float64{
	card.Ace:   100,
	card.Two:   90,
	card.Three: 80,
	card.Four:  70,
	card.Five:  60,
	card.Six:   50,
	card.Seven: 40,
	card.Eight: 30,
	card.Nine:  20,
	card.Ten:   10,
	card.Jack:  10,
	card.Queen: 10,
	card.King:  10,
}

// Returns is the score of the position, recomputed from the piles. It is
// zero until every tableau top has been turned over.
func (g *Game) Returns() float64 {
	if !g.isStarted {
		return 0
	}
	foundation := lo.SumBy(g.board.Foundations[:], func(f *pile.Foundation) float64 {
		return lo.SumBy(f.Cards(), func(c card.Card) float64 {
			return foundationPoints[c.Rank]
		})
	})
	tableau := float64((buriedAtStart - g.board.BuriedHidden()) * hiddenCardPoints)
	stock := float64((board.StockSize - g.board.Stock.Len()) * hiddenCardPoints)
	return foundation + tableau + stock
}

// Rewards is the change in Returns caused by the last action.
func (g *Game) Rewards() float64 {
	if !g.isStarted {
		return 0
	}
	return g.Returns() - g.previousScore
}
