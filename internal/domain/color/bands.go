package color

// Band is a qualitative label for how close two colors are.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGreat     Band = "great"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Distance-band cut points. These are product policy, not a standard; every
// call site reads the same constants so the labels stay consistent.
const (
	DistanceExcellent = 25.0
	DistanceGreat     = 50.0
	DistanceGood      = 100.0
	DistanceFair      = 160.0
)

// DistanceBand maps an RGB-cube distance onto a match-quality band.
func DistanceBand(d float64) Band {
	switch {
	case d < DistanceExcellent:
		return BandExcellent
	case d < DistanceGreat:
		return BandGreat
	case d < DistanceGood:
		return BandGood
	case d < DistanceFair:
		return BandFair
	default:
		return BandPoor
	}
}

// ContrastBand is a qualitative label for a WCAG contrast ratio.
type ContrastBand string

const (
	ContrastLow     ContrastBand = "low"
	ContrastAALarge ContrastBand = "aa-large"
	ContrastAA      ContrastBand = "aa"
	ContrastAAA     ContrastBand = "aaa"
)

// WCAG contrast thresholds.
const (
	ContrastThresholdAALarge = 3.0
	ContrastThresholdAA      = 4.5
	ContrastThresholdAAA     = 7.0
)

// ContrastBandOf maps a contrast ratio onto the WCAG bands.
func ContrastBandOf(ratio float64) ContrastBand {
	switch {
	case ratio >= ContrastThresholdAAA:
		return ContrastAAA
	case ratio >= ContrastThresholdAA:
		return ContrastAA
	case ratio >= ContrastThresholdAALarge:
		return ContrastAALarge
	default:
		return ContrastLow
	}
}
