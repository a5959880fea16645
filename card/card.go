// Package card models the standard 52-card deck used by the solitaire engine,
// together with the marker cards that stand in for an empty pile.
//
// A card is internally represented by its kind, rank and suit. Only those
// three fields define its identity; whether it is face down and which pile
// kind currently holds it are state, carried alongside.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// NumCards is the number of ordinary cards in a deck.
const NumCards = 52

// Dense indices of the marker cards. Ordinary cards map to [0, 52).
const (
	SpadesBaseIndex     = -1
	HeartsBaseIndex     = -2
	ClubsBaseIndex      = -3
	DiamondsBaseIndex   = -4
	TableauBaseIndex    = -5
	InvalidIndex        = -100
	numMarkers          = 5
	firstMarkerIndex    = TableauBaseIndex
	suitsPerDeck        = 4
	ranksPerSuit        = 13
	rankTokens          = "A23456789TJQK"
	suitTokens          = "shcd"
	tableauBaseToken    = "__"
	hiddenToken         = "[]"
	unknownVisibleToken = "??"
)

var (
	ErrBadIndex = errors.New("index does not map to a card")
	ErrBadToken = errors.New("cannot parse card")
)

// Suit is one of the four suits. The ordering here fixes the dense index of
// every card, so it must not change.
type Suit int8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds

	NoSuit Suit = -1
)

// Suits lists the real suits in index order.
var Suits = [suitsPerDeck]Suit{Spades, Hearts, Clubs, Diamonds}

func (s Suit) String() string {
	if s < Spades || s > Diamonds {
		return ""
	}
	return string(suitTokens[s])
}

// Glyph is the symbol shown for an empty foundation of this suit.
func (s Suit) Glyph() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	}
	return ""
}

func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// OppositeSuits returns the two suits of the other color, in index order.
func (s Suit) OppositeSuits() []Suit {
	switch s {
	case Spades, Clubs:
		return []Suit{Hearts, Diamonds}
	case Hearts, Diamonds:
		return []Suit{Spades, Clubs}
	}
	return nil
}

// Rank runs from Ace (1) to King (13). NoRank is used by marker cards and by
// slots that have not been revealed yet.
type Rank int8

const (
	NoRank Rank = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	if r < Ace || r > King {
		return ""
	}
	return string(rankTokens[r-1])
}

// Kind distinguishes ordinary cards from the markers.
type Kind uint8

const (
	// Unknown is a face-down slot whose identity has not been dealt yet.
	Unknown Kind = iota
	Ordinary
	// TableauBase is the placeholder target of an empty tableau.
	TableauBase
	// FoundationBase is the placeholder target of an empty foundation; it
	// carries the suit of its foundation.
	FoundationBase
)

// Location is the kind of pile a card currently sits in.
type Location uint8

const (
	LocStock Location = iota
	LocWaste
	LocFoundation
	LocTableau
	LocMissing
)

func (l Location) String() string {
	switch l {
	case LocStock:
		return "stock"
	case LocWaste:
		return "waste"
	case LocFoundation:
		return "foundation"
	case LocTableau:
		return "tableau"
	}
	return "missing"
}

// Card is a single card or marker.
type Card struct {
	Kind     Kind
	Rank     Rank
	Suit     Suit
	Hidden   bool
	Location Location
}

// New returns a face-up ordinary card that is not in any pile yet.
func New(r Rank, s Suit) Card {
	return Card{Kind: Ordinary, Rank: r, Suit: s, Location: LocMissing}
}

// TableauMarker is the identity of an empty tableau.
func TableauMarker() Card {
	return Card{Kind: TableauBase, Suit: NoSuit, Location: LocTableau}
}

// FoundationMarker is the identity of the empty foundation for suit s.
func FoundationMarker(s Suit) Card {
	return Card{Kind: FoundationBase, Suit: s, Location: LocFoundation}
}

// HiddenSlot is a face-down card whose identity will be assigned by a reveal.
func HiddenSlot(loc Location) Card {
	return Card{Kind: Unknown, Suit: NoSuit, Hidden: true, Location: loc}
}

// FromIndex is the inverse of Index.
func FromIndex(idx int) (Card, error) {
	switch {
	case idx >= 0 && idx < NumCards:
		return New(Rank(idx%ranksPerSuit)+Ace, Suit(idx/ranksPerSuit)), nil
	case idx == TableauBaseIndex:
		return TableauMarker(), nil
	case idx >= DiamondsBaseIndex && idx <= SpadesBaseIndex:
		return FoundationMarker(Suit(-idx - 1)), nil
	}
	return Card{}, fmt.Errorf("%w: %d", ErrBadIndex, idx)
}

// MustFromIndex is FromIndex for indices known to be valid, such as those
// stored in the action tables.
func MustFromIndex(idx int) Card {
	c, err := FromIndex(idx)
	if err != nil {
		panic(err)
	}
	return c
}

// Index is the dense integer for this card: [0, 52) for ordinary cards and
// -1..-5 for markers. An unrevealed slot has no index and returns
// InvalidIndex. This is pure arithmetic and sits on the hot path of
// observation encoding and move generation.
func (c Card) Index() int {
	switch c.Kind {
	case Ordinary:
		return int(c.Suit)*ranksPerSuit + int(c.Rank-Ace)
	case TableauBase:
		return TableauBaseIndex
	case FoundationBase:
		return -int(c.Suit) - 1
	}
	return InvalidIndex
}

// Same reports whether two cards have the same identity. Unrevealed slots
// have no identity and are never the same as anything.
func (c Card) Same(o Card) bool {
	if c.Kind == Unknown || o.Kind == Unknown {
		return false
	}
	return c.Kind == o.Kind && c.Rank == o.Rank && c.Suit == o.Suit
}

// Identity strips state from the card.
func (c Card) Identity() Card {
	return Card{Kind: c.Kind, Rank: c.Rank, Suit: c.Suit, Location: LocMissing}
}

func (c Card) IsMarker() bool {
	return c.Kind == TableauBase || c.Kind == FoundationBase
}

// LegalChildren returns the identities of the cards that may be placed on
// this card, given the pile kind it sits in. Callers still have to find
// where each child currently is before treating it as a source.
func (c Card) LegalChildren() []Card {
	if c.Hidden {
		return nil
	}
	switch c.Location {
	case LocTableau:
		switch {
		case c.Kind == TableauBase:
			children := make([]Card, 0, len(Suits))
			for _, s := range Suits {
				children = append(children, New(King, s))
			}
			return children
		case c.Kind == Ordinary && c.Rank != Ace:
			opp := c.Suit.OppositeSuits()
			children := make([]Card, 0, len(opp))
			for _, s := range opp {
				children = append(children, New(c.Rank-1, s))
			}
			return children
		}
	case LocFoundation:
		switch {
		case c.Kind == FoundationBase:
			return []Card{New(Ace, c.Suit)}
		case c.Kind == Ordinary && c.Rank != King:
			return []Card{New(c.Rank+1, c.Suit)}
		}
	}
	return nil
}

func (c Card) String() string {
	if c.Hidden {
		return hiddenToken
	}
	switch c.Kind {
	case Ordinary:
		return c.Rank.String() + c.Suit.String()
	case TableauBase:
		return tableauBaseToken
	case FoundationBase:
		return c.Suit.Glyph()
	}
	return unknownVisibleToken
}

// FromString parses the user-visible form of a card, such as "As", "Td" or
// "__". Foundation markers may be given as their glyph or as "_s".
func FromString(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if s == tableauBaseToken {
		return TableauMarker(), nil
	}
	for _, st := range Suits {
		if s == st.Glyph() || s == "_"+st.String() {
			return FoundationMarker(st), nil
		}
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadToken, s)
	}
	ri := strings.IndexByte(rankTokens, strings.ToUpper(s[:1])[0])
	si := strings.IndexByte(suitTokens, strings.ToLower(s[1:])[0])
	if ri < 0 || si < 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadToken, s)
	}
	return New(Rank(ri)+Ace, Suit(si)), nil
}

// Deck returns the 52 ordinary cards in index order.
func Deck() []Card {
	deck := make([]Card, NumCards)
	for i := range deck {
		deck[i] = MustFromIndex(i)
	}
	return deck
}

// Markers returns the five marker cards in index order, from -5 to -1.
func Markers() []Card {
	markers := make([]Card, 0, numMarkers)
	for i := firstMarkerIndex; i < 0; i++ {
		markers = append(markers, MustFromIndex(i))
	}
	return markers
}
