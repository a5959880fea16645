package move

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/solitaire/card"
)

// Action is an integer action id. Every move the engine can make, chance
// events included, has exactly one id in [0, NumDistinctActions).
type Action int

const (
	Setup Action = 0
	// Reveal ids are the card index plus one.
	firstReveal Action = 1
	lastReveal  Action = 52
	Draw        Action = 53
	firstMove   Action = 54

	NumDistinctActions = 206
	numMoves           = NumDistinctActions - int(firstMove)

	InvalidAction Action = -1
)

var ErrInvalidAction = errors.New("invalid action id")

// ActionType is the kind of thing an action does.
type ActionType uint8

const (
	ActionTypeInvalid ActionType = iota
	ActionTypeSetup
	ActionTypeReveal
	ActionTypeDraw
	ActionTypeMove
)

func (a Action) Type() ActionType {
	switch {
	case a == Setup:
		return ActionTypeSetup
	case a >= firstReveal && a <= lastReveal:
		return ActionTypeReveal
	case a == Draw:
		return ActionTypeDraw
	case a >= firstMove && a < NumDistinctActions:
		return ActionTypeMove
	}
	return ActionTypeInvalid
}

func (a Action) IsChance() bool {
	t := a.Type()
	return t == ActionTypeSetup || t == ActionTypeReveal
}

// RevealAction is the chance outcome that gives a face-down card the
// identity c.
func RevealAction(c card.Card) Action {
	return Action(c.Index()) + firstReveal
}

// RevealedCard is the inverse of RevealAction.
func (a Action) RevealedCard() (card.Card, error) {
	if a.Type() != ActionTypeReveal {
		return card.Card{}, fmt.Errorf("%w: %d is not a reveal", ErrInvalidAction, a)
	}
	return card.FromIndex(int(a - firstReveal))
}

// String renders the action the way the shell and logs show it, for
// example "Reveal Qh" or "Move Qh <- Js".
func (a Action) String() string {
	switch a.Type() {
	case ActionTypeSetup:
		return "Setup"
	case ActionTypeReveal:
		c, _ := a.RevealedCard()
		return "Reveal " + c.String()
	case ActionTypeDraw:
		return "Draw"
	case ActionTypeMove:
		m, _ := FromAction(a)
		return "Move " + m.String()
	}
	return "Invalid"
}

// ParseAction reads an action either as its id or in the form printed by
// String. The "Move" and "Reveal" prefixes are optional, and a move may be
// given as just its two cards.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		a := Action(id)
		if a.Type() == ActionTypeInvalid {
			return InvalidAction, fmt.Errorf("%w: %d", ErrInvalidAction, id)
		}
		return a, nil
	}
	fields := strings.Fields(strings.ReplaceAll(s, "<-", " "))
	if len(fields) == 0 {
		return InvalidAction, fmt.Errorf("%w: empty", ErrInvalidAction)
	}
	switch strings.ToLower(fields[0]) {
	case "setup":
		return Setup, nil
	case "draw":
		return Draw, nil
	case "reveal":
		if len(fields) != 2 {
			break
		}
		c, err := card.FromString(fields[1])
		if err != nil || c.Kind != card.Ordinary {
			break
		}
		return RevealAction(c), nil
	case "move":
		fields = fields[1:]
	}
	if len(fields) != 2 {
		return InvalidAction, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
	target, err := card.FromString(fields[0])
	if err != nil {
		return InvalidAction, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	source, err := card.FromString(fields[1])
	if err != nil {
		return InvalidAction, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	return New(target, source).Action()
}
