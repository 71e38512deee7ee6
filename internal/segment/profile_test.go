package segment

import (
	"math"
	"testing"

	"gocv.io/x/gocv"
)

func TestMeanIntensity8Bit(t *testing.T) {
	m := newGray8(10, 10, 20)
	defer m.Close()
	fillRect8(&m, 0, 0, 10, 5, 40) // top half 40, bottom half 20

	if got := MeanIntensity(m); math.Abs(got-30) > 1e-9 {
		t.Errorf("MeanIntensity() = %v, want 30", got)
	}
}

func TestMeanIntensity16Bit(t *testing.T) {
	m := newGray16(8, 8, 1000)
	defer m.Close()
	fillRect16(&m, 0, 0, 8, 4, 3000) // top half 3000, bottom half 1000

	if got := MeanIntensity(m); math.Abs(got-2000) > 1e-9 {
		t.Errorf("MeanIntensity() = %v, want 2000", got)
	}
}

func TestMeanIntensityEmpty(t *testing.T) {
	m := gocv.NewMat()
	defer m.Close()
	if got := MeanIntensity(m); got != 0 {
		t.Errorf("MeanIntensity(empty) = %v, want 0", got)
	}
}

func TestIntensitySpread(t *testing.T) {
	flat := newGray8(10, 10, 77)
	defer flat.Close()
	if got := IntensitySpread(flat); got != 0 {
		t.Errorf("IntensitySpread(constant) = %v, want 0", got)
	}

	split := newGray8(10, 10, 0)
	defer split.Close()
	fillRect8(&split, 0, 0, 10, 5, 100)
	if got := IntensitySpread(split); got <= 0 {
		t.Errorf("IntensitySpread(bimodal) = %v, want > 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		mfi  float64
		want Mode
	}{
		{"well below", 200, ModeNormal},
		{"exactly at threshold", 1000, ModeNormal},
		{"just above", 1000.001, ModeHighAutofluorescence},
		{"far above", 30000, ModeHighAutofluorescence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.mfi, 1000); got != tt.want {
				t.Errorf("Classify(%v, 1000) = %v, want %v", tt.mfi, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeNormal.String() != "Normal" {
		t.Errorf("ModeNormal.String() = %q", ModeNormal.String())
	}
	if ModeHighAutofluorescence.String() != "HighAutofluorescence" {
		t.Errorf("ModeHighAutofluorescence.String() = %q", ModeHighAutofluorescence.String())
	}
}
