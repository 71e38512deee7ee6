package segment

import (
	"fmt"

	"fluoroquant/pkg/geometry"

	"gocv.io/x/gocv"
)

// ParticleStats summarizes the foreground components found inside the ROI.
type ParticleStats struct {
	Count     int      // components at or above the area cutoff
	TotalArea int      // summed component area in pixels
	Coverage  float64  // TotalArea / ROI area * 100, in [0,100]
	Mask      gocv.Mat // binary mask of the kept components, caller closes
}

// AnalyzeParticles labels the connected components of a binary mask restricted
// to the well ellipse, discards components smaller than minArea (a component
// exactly at the cutoff is kept), and reports count, total foreground area,
// and %coverage relative to the ROI area. The returned mask holds only the
// kept components and is the raster persisted for the image.
func AnalyzeParticles(mask gocv.Mat, roi geometry.Ellipse, minArea int) (ParticleStats, error) {
	rows, cols := mask.Rows(), mask.Cols()

	roiMask := MaskROI(roi, rows, cols)
	defer roiMask.Close()

	roiArea := gocv.CountNonZero(roiMask)
	if roiArea == 0 {
		return ParticleStats{}, fmt.Errorf("ROI %+v does not overlap a %dx%d raster", roi, cols, rows)
	}

	restricted := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	defer restricted.Close()
	mask.CopyToWithMask(&restricted, roiMask)

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()
	n := gocv.ConnectedComponentsWithStats(restricted, &labels, &stats, &centroids)

	kept := make(map[int32]bool)
	result := ParticleStats{}
	for i := 1; i < n; i++ { // label 0 is background
		area := int(stats.GetIntAt(i, int(gocv.CCStatArea)))
		if area < minArea {
			continue
		}
		kept[int32(i)] = true
		result.Count++
		result.TotalArea += area
	}

	// Components inside the ROI cannot exceed its area, so coverage stays
	// within [0,100] by construction.
	result.Coverage = float64(result.TotalArea) / float64(roiArea) * 100

	out := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if kept[labels.GetIntAt(y, x)] {
				out.SetUCharAt(y, x, 255)
			}
		}
	}
	result.Mask = out

	return result, nil
}
