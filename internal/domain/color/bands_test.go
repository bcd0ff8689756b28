package color

import "testing"

func TestDistanceBand(t *testing.T) {
	tests := []struct {
		distance float64
		want     Band
	}{
		{0, BandExcellent},
		{DistanceExcellent - 0.01, BandExcellent},
		{DistanceExcellent, BandGreat},
		{DistanceGreat, BandGood},
		{DistanceGood, BandFair},
		{DistanceFair, BandPoor},
		{MaxDistance, BandPoor},
	}
	for _, tt := range tests {
		if got := DistanceBand(tt.distance); got != tt.want {
			t.Errorf("DistanceBand(%f) = %s, expected %s", tt.distance, got, tt.want)
		}
	}
}

func TestContrastBandOf(t *testing.T) {
	tests := []struct {
		ratio float64
		want  ContrastBand
	}{
		{1, ContrastLow},
		{2.99, ContrastLow},
		{3, ContrastAALarge},
		{4.5, ContrastAA},
		{6.99, ContrastAA},
		{7, ContrastAAA},
		{21, ContrastAAA},
	}
	for _, tt := range tests {
		if got := ContrastBandOf(tt.ratio); got != tt.want {
			t.Errorf("ContrastBandOf(%f) = %s, expected %s", tt.ratio, got, tt.want)
		}
	}
}
