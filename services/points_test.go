package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints_CuratedTables(t *testing.T) {
	calc := NewPointsCalculator()

	tests := []struct {
		name     string
		position int
		total    int
		want     int
	}{
		{"winner of a 9 player night", 1, 9, 27},
		{"runner-up of a 9 player night", 2, 9, 21},
		{"first out of a 9 player night", 9, 9, 1},
		{"winner of a 6 player night", 1, 6, 18},
		{"mid table of a 10 player night", 5, 10, 10},
		{"first out of a 12 player night", 12, 12, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.Points(tt.position, tt.total))
		})
	}
}

func TestPoints_DerivedCurveForUnknownSizes(t *testing.T) {
	calc := NewPointsCalculator()

	// 15 has no curated table; winner gets outlasted*3 plus the bonus.
	assert.Equal(t, (15-1)*3+15, calc.Points(1, 15))
	assert.Equal(t, 0, calc.Points(15, 15))
}

func TestPoints_MonotonicInPosition(t *testing.T) {
	calc := NewPointsCalculator()

	// Curated and derived sizes alike: the winner never scores less than
	// anyone eliminated earlier, and the curve never increases with
	// position.
	for _, n := range []int{2, 6, 7, 8, 9, 10, 11, 12, 15, 20} {
		prev := calc.Points(1, n)
		for k := 2; k <= n; k++ {
			pts := calc.Points(k, n)
			assert.GreaterOrEqual(t, prev, pts, "size %d position %d", n, k)
			assert.GreaterOrEqual(t, pts, 0, "size %d position %d", n, k)
			prev = pts
		}
	}
}

func TestPoints_Deterministic(t *testing.T) {
	calc := NewPointsCalculator()
	for i := 0; i < 5; i++ {
		assert.Equal(t, calc.Points(3, 9), calc.Points(3, 9))
	}
}

func TestPoints_OutOfRangeIsProgrammingError(t *testing.T) {
	calc := NewPointsCalculator()
	assert.Panics(t, func() { calc.Points(0, 9) })
	assert.Panics(t, func() { calc.Points(10, 9) })
}
