package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))

	}
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{640, 0, 3220, 1180} {
		s.Push(v)
	}
	is.Equal(s.Min(), 0.0)
	is.Equal(s.Max(), 3220.0)
	is.Equal(s.Last(), 1180.0)
	is.Equal(s.Iterations(), 4)
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-5)
	s := &Statistic{}
	for _, v := range []float64{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(v)
	}
	lo, hi := s.ConfidenceInterval(95)
	is.True(FuzzyEqual(s.Mean()-lo, hi-s.Mean()))
	// 1.96 * 5.2372 / sqrt(8)
	is.True(math.Abs(hi-s.Mean()-3.62915) < 1e-4)
}
