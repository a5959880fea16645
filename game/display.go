package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

func cardList(cards []card.Card) string {
	return strings.Join(lo.Map(cards, func(c card.Card, _ int) string {
		return c.String()
	}), " ")
}

// String shows everything, including the deal order that the player could
// only know by remembering it.
func (g *Game) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s: %d\n", "PLAYER", g.CurrentPlayer())
	fmt.Fprintf(&sb, "%-12s: %d\n", "DRAW COUNTER", g.drawCounter)
	fmt.Fprintf(&sb, "%-12s: %d\n", "REBUILDS", g.board.Stock.TimesRebuilt())
	fmt.Fprintf(&sb, "%-12s: %.0f\n\n", "RETURNS", g.Returns())
	sb.WriteString(g.board.String())
	fmt.Fprintf(&sb, "%-12s: %s\n", "ORDER", cardList(g.board.Stock.DealOrder()))
	return sb.String()
}

// ObservationString is the board as the player sees it.
func (g *Game) ObservationString() string {
	return g.board.String()
}

// InformationStateString is the action history.
func (g *Game) InformationStateString() string {
	return strings.Join(lo.Map(g.history, func(a move.Action, _ int) string {
		return fmt.Sprint(int(a))
	}), ", ")
}
