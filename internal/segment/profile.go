package segment

import (
	"encoding/binary"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// MeanIntensity computes the arithmetic mean of all sample values (the MFI).
// It must be called before any destructive transform of the raster, since the
// result drives path classification for the rest of the image's processing.
func MeanIntensity(m gocv.Mat) float64 {
	vals := sampleValues(m)
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// IntensitySpread returns the standard deviation of all sample values.
// Reported alongside the MFI for diagnostics; it does not affect
// classification.
func IntensitySpread(m gocv.Mat) float64 {
	vals := sampleValues(m)
	if len(vals) < 2 {
		return 0
	}
	return stat.StdDev(vals, nil)
}

// Classify maps a mean intensity to a processing mode. The comparison is a
// strict greater-than: an MFI exactly at the threshold stays on the normal
// path.
func Classify(mfi, threshold float64) Mode {
	if mfi > threshold {
		return ModeHighAutofluorescence
	}
	return ModeNormal
}

// sampleValues flattens a single-channel 8 or 16 bit raster into float64
// samples. 16-bit mats are stored little-endian by OpenCV on all supported
// platforms.
func sampleValues(m gocv.Mat) []float64 {
	if m.Empty() {
		return nil
	}

	data := m.ToBytes()
	switch m.Type() {
	case gocv.MatTypeCV16UC1:
		vals := make([]float64, len(data)/2)
		for i := range vals {
			vals[i] = float64(binary.LittleEndian.Uint16(data[2*i:]))
		}
		return vals
	default:
		vals := make([]float64, len(data))
		for i, b := range data {
			vals[i] = float64(b)
		}
		return vals
	}
}
