package services

import (
	"fmt"
)

// pointsTables holds the curated award curve per roster size. Historical
// seasons seated different table sizes, so the curve is looked up by the
// number of participants; index 0 is position 1 (last player standing).
// Each curve is strictly non-increasing, which keeps scoring monotonic.
var pointsTables = map[int][]int{
	6:  {18, 13, 9, 6, 3, 1},
	7:  {21, 15, 11, 8, 5, 3, 1},
	8:  {24, 18, 13, 9, 6, 4, 2, 1},
	9:  {27, 21, 16, 12, 9, 6, 4, 2, 1},
	10: {30, 24, 18, 14, 10, 7, 5, 3, 2, 1},
	11: {33, 26, 20, 16, 12, 9, 6, 4, 3, 2, 1},
	12: {36, 29, 23, 18, 14, 10, 7, 5, 4, 3, 2, 1},
}

// PointsCalculator maps a finishing position to a points award for a
// given roster size. Pure and deterministic: same inputs, same award.
type PointsCalculator struct {
	tables map[int][]int
}

// NewPointsCalculator returns a calculator with the league's curated
// tables. Sizes without a curated table fall back to a derived curve.
func NewPointsCalculator() *PointsCalculator {
	return &PointsCalculator{tables: pointsTables}
}

// Points returns the award for finishing at position out of
// totalParticipants. Position 1 is the session winner and always scores
// at least as much as any other position. Position must already be
// validated to [1, totalParticipants] by the caller; passing anything
// else is a programming error.
func (p *PointsCalculator) Points(position, totalParticipants int) int {
	if position < 1 || position > totalParticipants {
		panic(fmt.Sprintf("points: position %d out of range for %d participants", position, totalParticipants))
	}
	if table, ok := p.tables[totalParticipants]; ok {
		return table[position-1]
	}
	return derivedPoints(position, totalParticipants)
}

// derivedPoints is the fallback curve for roster sizes the league has no
// curated table for: three points per player outlasted, with a winner
// bonus equal to the table size.
func derivedPoints(position, totalParticipants int) int {
	pts := (totalParticipants - position) * 3
	if position == 1 {
		pts += totalParticipants
	}
	return pts
}
