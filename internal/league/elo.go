package league

import "math"

const (
	initialRating = 1500
	minKFactor    = 18
	maxKFactor    = 40
)

// expectedScore is the logistic win expectancy for rating1 against rating2
// on the standard 400-point scale.
func expectedScore(rating1, rating2 float64) float64 {
	return 1 / (1 + math.Pow(10, (rating2-rating1)/400))
}

func clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}

// updateRatings applies one match to both players' ratings. The actual score
// is the share of points won rather than a binary result, so lopsided wins
// move ratings further. K decays with match count, clamped to [18, 40].
func updateRatings(p1, p2 *PlayerStats, score1, score2 int) {
	total := float64(score1 + score2)
	if total == 0 {
		return
	}

	expected1 := expectedScore(p1.Elo, p2.Elo)
	expected2 := expectedScore(p2.Elo, p1.Elo)
	rate1 := float64(score1) / total
	rate2 := float64(score2) / total

	p1.Elo += p1.KFactor * (rate1 - expected1)
	p2.Elo += p2.KFactor * (rate2 - expected2)

	p1.KFactor = clamp(250/math.Pow(float64(p1.TotalMatches)+96, 0.4), minKFactor, maxKFactor)
	p2.KFactor = clamp(250/math.Pow(float64(p2.TotalMatches)+96, 0.4), minKFactor, maxKFactor)
	p1.TotalMatches++
	p2.TotalMatches++
}
