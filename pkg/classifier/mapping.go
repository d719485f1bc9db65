package classifier

import "math"

// Score band boundaries. These are policy constants, not correctness
// properties; tests pin them so a change here is a deliberate one.
const (
	ScoreStrongPositive = 0.6
	ScoreMildPositive   = 0.2
	ScoreMildNegative   = -0.2
	ScoreStrongNegative = -0.6

	// MagnitudeLowSignal forces neutral below this intensity regardless of score.
	MagnitudeLowSignal = 0.3
	// MagnitudeElevated breaks ties toward the more agitated label on the negative side.
	MagnitudeElevated = 0.7
	// MagnitudeIntense breaks ties toward surprise on the strongly positive side.
	MagnitudeIntense = 0.8
)

// MapToLabel maps a provider sentiment (score, magnitude) pair onto the
// emotion taxonomy. Magnitude below the low-signal cutoff always means
// neutral; otherwise the score band decides, with magnitude as the
// tie-break between adjacent bands.
func MapToLabel(score, magnitude float64) Label {
	if magnitude < MagnitudeLowSignal {
		return LabelNeutral
	}

	switch {
	case score >= ScoreStrongPositive:
		if magnitude >= MagnitudeIntense {
			return LabelSurprise
		}
		return LabelJoy
	case score >= ScoreMildPositive:
		return LabelJoy
	case score > ScoreMildNegative:
		return LabelNeutral
	case score > ScoreStrongNegative:
		if magnitude >= MagnitudeElevated {
			return LabelFear
		}
		return LabelSadness
	default:
		if magnitude >= MagnitudeElevated {
			return LabelAnger
		}
		return LabelSadness
	}
}

// DeriveConfidence computes confidence as min(magnitude * |score|, 1.0)
func DeriveConfidence(score, magnitude float64) float64 {
	return math.Min(magnitude*math.Abs(score), 1.0)
}

// ClampScore forces a provider score into [-1, 1]
func ClampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// ClampMagnitude forces a provider magnitude to be non-negative
func ClampMagnitude(magnitude float64) float64 {
	if magnitude < 0 {
		return 0
	}
	return magnitude
}
