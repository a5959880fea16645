package game

import (
	"sync"

	"gorgonia.org/tensor"

	"github.com/domino14/solitaire/card"
	"github.com/domino14/solitaire/move"
)

// Slot values in the observation vector, next to the card indices.
const (
	HiddenCard = 98
	NoCard     = 99
)

const (
	tableauSlots    = 19
	foundationSlots = 13
	wasteSlots      = 24
	stockSlots      = 24

	ObservationSize      = 7*tableauSlots + 4*foundationSlots + wasteSlots + stockSlots
	InformationStateSize = 1000
)

// ObservationPool holds observation-sized vectors for callers that encode
// many positions, such as the self-play recorder.
var ObservationPool = sync.Pool{
	New: func() interface{} {
		v := make([]float64, ObservationSize)
		return &v
	},
}

func encodePile(dst []float64, cards []card.Card) {
	for i := range dst {
		switch {
		case i >= len(cards):
			dst[i] = NoCard
		case cards[i].Hidden:
			dst[i] = HiddenCard
		default:
			dst[i] = float64(cards[i].Index())
		}
	}
}

// EncodeObservation writes the observation into vec, which must have room
// for ObservationSize values. The layout is the seven tableaus bottom to
// top, the four foundations in suit order, the waste from the exposed card
// and then the stock from the next card to be drawn. Each pile is padded
// out with NoCard.
func (g *Game) EncodeObservation(vec []float64) {
	vec = vec[:ObservationSize]
	off := 0
	for _, t := range g.board.Tableaus {
		encodePile(vec[off:off+tableauSlots], t.Cards())
		off += tableauSlots
	}
	for _, f := range g.board.Foundations {
		encodePile(vec[off:off+foundationSlots], f.Cards())
		off += foundationSlots
	}
	encodePile(vec[off:off+wasteSlots], g.board.Stock.Waste())
	off += wasteSlots
	encodePile(vec[off:off+stockSlots], g.board.Stock.Undealt())
}

func (g *Game) ObservationTensor() []float64 {
	vec := make([]float64, ObservationSize)
	g.EncodeObservation(vec)
	return vec
}

// InformationStateTensor is the action history padded out with
// InvalidAction. Histories longer than InformationStateSize are cut off.
func (g *Game) InformationStateTensor() []float64 {
	vec := make([]float64, InformationStateSize)
	for i := range vec {
		if i < len(g.history) {
			vec[i] = float64(g.history[i])
		} else {
			vec[i] = float64(move.InvalidAction)
		}
	}
	return vec
}

// ObservationDense is the observation as a tensor shaped for a model input.
func (g *Game) ObservationDense() *tensor.Dense {
	return tensor.New(
		tensor.WithShape(ObservationSize),
		tensor.WithBacking(g.ObservationTensor()))
}

func (g *Game) InformationStateDense() *tensor.Dense {
	return tensor.New(
		tensor.WithShape(InformationStateSize),
		tensor.WithBacking(g.InformationStateTensor()))
}
