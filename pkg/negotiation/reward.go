package negotiation

import (
	"github.com/aimarket/haggle-engine/pkg/money"
)

// PointsPerStar converts a star rating into points.
const PointsPerStar = 10

// Reward is the player's score for a closed deal.
type Reward struct {
	Stars  int `json:"stars"`
	Points int `json:"points"`
}

// CalculateReward rates a closed deal against the level's price range.
// It is a pure function of the three prices: overpaying scores zero,
// full price one star, target price a perfect three. In between, the
// rating follows how much of the range above target the buyer paid.
func CalculateReward(closing, initial, target money.Price) Reward {
	switch {
	case closing > initial:
		return Reward{Stars: 0, Points: 0}
	case closing == initial:
		return Reward{Stars: 1, Points: PointsPerStar}
	case closing == target:
		return Reward{Stars: 3, Points: 3 * PointsPerStar}
	}

	// Strictly between target and initial. Comparisons are kept in
	// integer cents: pct <= N becomes aboveTarget*100 <= range*N.
	aboveTarget := closing - target
	priceRange := initial - target

	var stars int
	switch {
	case aboveTarget*100 <= priceRange*10:
		stars = 3
	case aboveTarget*100 <= priceRange*30:
		stars = 2
	default:
		stars = 1
	}

	return Reward{Stars: stars, Points: stars * PointsPerStar}
}
