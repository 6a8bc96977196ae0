package main

import "math"

// Score weights.
const (
	originWeight     = 20
	classWeight      = 15
	tierWeight       = 10
	tankPenaltyPerPc = 0.5
	costWeight       = 2
)

func tankCount(team []*Unit) int {
	n := 0
	for _, u := range team {
		if u.IsTank {
			n++
		}
	}
	return n
}

// tankPercentage is 0 for an empty team.
func tankPercentage(tanks, size int) float64 {
	if size == 0 {
		return 0
	}
	return float64(tanks) / float64(size) * 100
}

// effectiveCost sums unit costs; opted-in units are already owned and free.
func (sc *solveCtx) effectiveCost(team []*Unit) int {
	total := 0
	for _, u := range team {
		if sc.optIn[u.Name] {
			continue
		}
		total += u.Cost
	}
	return total
}

// computeScore applies the ranking formula to precomputed team statistics.
// Only the final sum is rounded.
func computeScore(traits []ActiveTrait, size, tanks, cost int, tankTarget float64) int {
	origins, classes, tiers := 0, 0, 0
	for _, t := range traits {
		if t.IsOrigin {
			origins++
		} else {
			classes++
		}
		tiers += t.TiersMet
	}
	penalty := math.Abs(tankPercentage(tanks, size)-tankTarget) * tankPenaltyPerPc

	score := float64(origins*originWeight) +
		float64(classes*classWeight) +
		float64(tiers*tierWeight) -
		penalty -
		float64(cost*costWeight)
	return int(math.Round(score))
}
