package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/solitaire/card"
)

func mustCard(s string) card.Card {
	c, err := card.FromString(s)
	if err != nil {
		panic(err)
	}
	return c
}

func TestCodecRoundTrip(t *testing.T) {
	is := is.New(t)
	for a := firstMove; a < NumDistinctActions; a++ {
		m, err := FromAction(a)
		is.NoErr(err)
		back, err := m.Action()
		is.NoErr(err)
		is.Equal(back, a)
	}
	is.Equal(len(pairToAction), numMoves)
}

func TestKnownIds(t *testing.T) {
	cases := []struct {
		target, source string
		id             Action
	}{
		{"__", "Ks", 54},
		{"__", "Kd", 57},
		{"♠", "As", 58},
		{"As", "2s", 59},
		{"Qs", "Ks", 70},
		{"♥", "Ah", 71},
		{"Qd", "Kd", 109},
		{"2s", "Ah", 110},
		{"2s", "Ad", 111},
		{"Ks", "Qd", 133},
		{"2h", "As", 134},
		{"Kd", "Qs", 204},
		{"Kd", "Qc", 205},
	}
	for _, tc := range cases {
		a, err := New(mustCard(tc.target), mustCard(tc.source)).Action()
		assert.NoError(t, err)
		assert.Equal(t, tc.id, a, "%v <- %v", tc.target, tc.source)
	}
}

func TestNonMoves(t *testing.T) {
	is := is.New(t)
	_, err := New(mustCard("Ks"), mustCard("Qs")).Action()
	is.True(errors.Is(err, ErrInvalidAction))
	_, err = FromAction(Draw)
	is.True(errors.Is(err, ErrInvalidAction))
	_, err = FromAction(NumDistinctActions)
	is.True(errors.Is(err, ErrInvalidAction))
	is.Equal(Action(-3).Type(), ActionTypeInvalid)
	is.Equal(Action(206).Type(), ActionTypeInvalid)
}

func TestRevealIds(t *testing.T) {
	is := is.New(t)
	for _, c := range card.Deck() {
		a := RevealAction(c)
		is.Equal(int(a), c.Index()+1)
		is.Equal(a.Type(), ActionTypeReveal)
		back, err := a.RevealedCard()
		is.NoErr(err)
		is.True(back.Same(c))
	}
	_, err := Setup.RevealedCard()
	is.True(errors.Is(err, ErrInvalidAction))
}

func TestIsFoundationMove(t *testing.T) {
	is := is.New(t)
	for a := firstMove; a < NumDistinctActions; a++ {
		m, _ := FromAction(a)
		is.Equal(m.IsFoundationMove(), a >= 58 && a <= 109)
	}
}

func TestActionStrings(t *testing.T) {
	cases := []struct {
		a   Action
		str string
	}{
		{Setup, "Setup"},
		{1, "Reveal As"},
		{52, "Reveal Kd"},
		{Draw, "Draw"},
		{54, "Move __ <- Ks"},
		{58, "Move ♠ <- As"},
		{205, "Move Kd <- Qc"},
		{InvalidAction, "Invalid"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.str, tc.a.String())
	}
}

func TestParseAction(t *testing.T) {
	for a := Setup; a < NumDistinctActions; a++ {
		parsed, err := ParseAction(a.String())
		assert.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	cases := map[string]Action{
		"54":        54,
		"kd qc":     205,
		"Kd <- Qc":  205,
		"reveal 2s": 2,
		"DRAW":      Draw,
	}
	for in, expected := range cases {
		a, err := ParseAction(in)
		assert.NoError(t, err, in)
		assert.Equal(t, expected, a, in)
	}
	for _, bad := range []string{"", "206", "-1", "Ks Qs", "move Ks", "reveal __"} {
		_, err := ParseAction(bad)
		assert.ErrorIs(t, err, ErrInvalidAction, bad)
	}
}
