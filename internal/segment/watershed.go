package segment

import (
	"gocv.io/x/gocv"
)

// SplitTouching separates touching foreground blobs in a binary mask using a
// distance-transform watershed. Distance-transform peaks seed the markers, so
// each convex core becomes its own catchment basin and the watershed cuts
// one-pixel ridgelines between blobs that merged during thresholding. Peaks
// are taken at half of each component's own distance maximum, so small blobs
// keep their seed even next to much larger ones. The returned mask is again
// binary.
func SplitTouching(mask gocv.Mat) gocv.Mat {
	rows, cols := mask.Rows(), mask.Cols()

	dist := gocv.NewMat()
	defer dist.Close()
	distLabels := gocv.NewMat()
	defer distLabels.Close()
	gocv.DistanceTransform(mask, &dist, &distLabels, gocv.DistL2, gocv.DistanceMask5, gocv.DistanceLabelCComp)

	_, maxDist, _, _ := gocv.MinMaxLoc(dist)
	if maxDist <= 0 {
		// Nothing in the foreground to split
		return mask.Clone()
	}

	components := gocv.NewMat()
	defer components.Close()
	count := gocv.ConnectedComponents(mask, &components)

	// Per-component distance maximum
	peakDist := make([]float32, count)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := components.GetIntAt(y, x)
			if c == 0 {
				continue
			}
			if d := dist.GetFloatAt(y, x); d > peakDist[c] {
				peakDist[c] = d
			}
		}
	}

	peaks := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	defer peaks.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := components.GetIntAt(y, x)
			if c == 0 {
				continue
			}
			if dist.GetFloatAt(y, x) >= 0.5*peakDist[c] {
				peaks.SetUCharAt(y, x, 255)
			}
		}
	}

	markers := gocv.NewMat()
	defer markers.Close()
	gocv.ConnectedComponents(peaks, &markers)

	// Shift labels so background becomes 1, and zero the uncertain region
	// (foreground not covered by a peak) for the watershed to flood.
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			label := markers.GetIntAt(y, x) + 1
			if mask.GetUCharAt(y, x) > 0 && peaks.GetUCharAt(y, x) == 0 {
				label = 0
			}
			markers.SetIntAt(y, x, label)
		}
	}

	color := gocv.NewMat()
	defer color.Close()
	gocv.CvtColor(mask, &color, gocv.ColorGrayToBGR)
	gocv.Watershed(color, &markers)

	// Labels above 1 are foreground basins; ridge pixels (-1) and the
	// background basin stay clear, which is what cuts touching blobs apart.
	result := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if markers.GetIntAt(y, x) > 1 && mask.GetUCharAt(y, x) > 0 {
				result.SetUCharAt(y, x, 255)
			}
		}
	}
	return result
}
