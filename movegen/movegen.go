// Package movegen contains the move-generating functions: which cards can
// go where, and which of those moves could be undone on the next turn.
package movegen

import (
	"github.com/samber/lo"

	"github.com/domino14/solitaire/board"
	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

// candidate is a generated move plus where its source was found.
type candidate struct {
	m   move.Move
	src board.Loc
}

// Generator generates moves for a board. It keeps its result buffer
// between calls, so a single Generator must not be shared across
// goroutines.
type Generator struct {
	cands []candidate
	plays []move.Move
}

func NewGenerator() *Generator {
	return &Generator{
		cands: make([]candidate, 0, 32),
		plays: make([]move.Move, 0, 32),
	}
}

// GenAll generates the playable moves for b. When suppressReversible is
// set, moves that could be undone next turn are left out; the engine sets
// it right after a reversible move so the player cannot shuffle a card
// back and forth forever.
func (g *Generator) GenAll(b *board.Board, suppressReversible bool) []move.Move {
	g.cands = appendCandidates(g.cands[:0], b)
	g.plays = g.plays[:0]
	for _, c := range g.cands {
		if suppressReversible && reversible(b, c.src) {
			continue
		}
		g.plays = append(g.plays, c.m)
	}
	return g.plays
}

// Plays returns the moves from the last GenAll call.
func (g *Generator) Plays() []move.Move {
	return g.plays
}

// Actions returns the action ids of the moves from the last GenAll call.
func (g *Generator) Actions() []move.Action {
	return lo.Map(g.plays, func(m move.Move, _ int) move.Action {
		return m.MustAction()
	})
}

// CandidateMoves returns every move that can legally be made on b, before
// any reversibility filtering. Targets are visited tableaus first, then
// foundations, and for each target its legal children in suit order.
func CandidateMoves(b *board.Board) []move.Move {
	return lo.Map(appendCandidates(nil, b), func(c candidate, _ int) move.Move {
		return c.m
	})
}

func appendCandidates(cands []candidate, b *board.Board) []candidate {
	idx := b.Index()
	seenEmptyTableau := false
	for _, target := range b.Targets() {
		// Every empty tableau offers the same marker; one is enough.
		if target.Kind == card.TableauBase {
			if seenEmptyTableau {
				continue
			}
			seenEmptyTableau = true
		}
		for _, child := range target.LegalChildren() {
			src, ok := idx.Locate(child)
			if !ok || !b.IsSource(src) {
				continue
			}
			// Only the top card of a tableau can go up to a foundation.
			if target.Location == card.LocFoundation && src.Location == card.LocTableau && !b.IsTop(src) {
				continue
			}
			// A King that is already the bottom of its tableau has nowhere
			// better to be.
			if target.Kind == card.TableauBase && b.IsBottom(src) {
				continue
			}
			child.Location = src.Location
			cands = append(cands, candidate{m: move.New(target, child), src: src})
		}
	}
	return cands
}
