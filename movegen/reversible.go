package movegen

import (
	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

// IsReversible reports whether m could be undone by the very next move.
// Waste cards never go back to the waste. Foundation cards can always be
// put back. A tableau run can be moved back unless moving it empties its
// pile or uncovers a face-down card.
func IsReversible(b *board.Board, m move.Move) bool {
	src, ok := b.Index().Locate(m.Source)
	if !ok {
		return false
	}
	return reversible(b, src)
}

func reversible(b *board.Board, src board.Loc) bool {
	switch src.Location {
	case card.LocWaste:
		return false
	case card.LocFoundation:
		return true
	case card.LocTableau:
		return !b.IsBottom(src) && !b.IsOverHidden(src)
	}
	return false
}
