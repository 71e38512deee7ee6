package segment

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrSegmentation indicates that no valid threshold could be derived from the
// image histogram.
var ErrSegmentation = errors.New("no valid threshold")

// ProposeTriangle computes the Triangle auto-threshold for an 8-bit image
// with a dark background. The Triangle method draws a line from the histogram
// peak to the farthest populated bin on the bright side and picks the bin with
// the maximum perpendicular distance from that line, which suits the skewed
// unimodal histograms of sparse fluorescent signal.
//
// A constant image yields its own value as the threshold, so the resulting
// mask is empty rather than an error; only an image with no samples at all is
// degenerate. The proposal carries no state between images.
func ProposeTriangle(gray gocv.Mat) (float64, error) {
	if gray.Empty() || gray.Rows() == 0 || gray.Cols() == 0 {
		return 0, ErrSegmentation
	}

	minVal, maxVal, _, _ := gocv.MinMaxLoc(gray)
	if minVal == maxVal {
		return float64(maxVal), nil
	}

	scratch := gocv.NewMat()
	defer scratch.Close()
	thresh := gocv.Threshold(gray, &scratch, 0, 255, gocv.ThresholdBinary+gocv.ThresholdTriangle)
	return float64(thresh), nil
}

// ApplyThreshold converts an 8-bit image to a binary mask: samples strictly
// above the threshold become 255, everything else 0.
func ApplyThreshold(gray gocv.Mat, threshold float64) gocv.Mat {
	mask := gocv.NewMat()
	gocv.Threshold(gray, &mask, float32(threshold), 255, gocv.ThresholdBinary)
	return mask
}
