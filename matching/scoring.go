package matching

import "becayis-backend/models"

// Criterion weights. They sum to exactly 1.0, so a total score is always
// in [0,1].
const (
	WeightLocation    = 0.4
	WeightInstitution = 0.3
	WeightDepartment  = 0.2
	WeightPosition    = 0.1

	// Threshold is the minimum total score for a pair to be materialized
	// as a match. 0.7 is the "one-directional location match with
	// everything else equal" boundary, and it is inclusive.
	Threshold = 0.7

	// locationOneWay is the location score when only one side lists the
	// other's current post among its targets.
	locationOneWay = 0.7

	// The weights are exact in decimal but not in binary (0.4+0.3 is one
	// ulp above 0.7), so threshold comparison tolerates that much slack.
	scoreEpsilon = 1e-9
)

// ScorePair computes the per-criterion scores and the weighted total for the
// ordered pair (a, b). Pure and deterministic; the location criterion is the
// only direction-dependent one.
func ScorePair(a, b *models.ExchangeRequest) (models.CriterionScores, float64) {
	scores := models.CriterionScores{
		Location:    locationScore(a, b),
		Institution: equalityScore(a.Institution, b.Institution),
		Department:  equalityScore(a.Department, b.Department),
		Position:    equalityScore(a.Position, b.Position),
	}
	total := WeightLocation*scores.Location +
		WeightInstitution*scores.Institution +
		WeightDepartment*scores.Department +
		WeightPosition*scores.Position
	// Summation drift can land one ulp above 1.0; the stored score must
	// stay in [0,1].
	if total > 1 {
		total = 1
	}
	return scores, total
}

// Qualifies reports whether a total score meets the threshold (inclusive).
func Qualifies(total float64) bool {
	return total >= Threshold-scoreEpsilon
}

func locationScore(a, b *models.ExchangeRequest) float64 {
	targetMatch := wantsCurrentPost(a, b)
	reverseMatch := wantsCurrentPost(b, a)

	switch {
	case targetMatch && reverseMatch:
		return 1
	case targetMatch || reverseMatch:
		return locationOneWay
	default:
		return 0
	}
}

// wantsCurrentPost reports whether any of a's target locations equals b's
// current post.
func wantsCurrentPost(a, b *models.ExchangeRequest) bool {
	for _, target := range a.TargetLocations {
		if target.City == b.CurrentCity && target.District == b.CurrentDistrict {
			return true
		}
	}
	return false
}

func equalityScore(a, b string) float64 {
	if a == b {
		return 1
	}
	return 0
}
