package segment

import (
	"image"
	"image/color"

	"fluoroquant/pkg/geometry"

	"gocv.io/x/gocv"
)

// MaskROI rasterizes the well ellipse as a filled 8-bit mask of the given
// raster dimensions. Pixels inside the ellipse are 255.
func MaskROI(roi geometry.Ellipse, rows, cols int) gocv.Mat {
	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8UC1)

	rx, ry := roi.SemiAxes()
	center := image.Pt(int(roi.Center.X+0.5), int(roi.Center.Y+0.5))
	axes := image.Pt(int(rx+0.5), int(ry+0.5))
	white := color.RGBA{255, 255, 255, 0}
	gocv.Ellipse(&mask, center, axes, 0, 0, 360, white, -1)

	return mask
}

// ClipOutside returns a copy of src with every pixel outside the well ellipse
// cleared to background. Used on the high-autofluorescence path before any
// intensity-altering step, so edge autofluorescence cannot bias the Triangle
// threshold or the background estimate.
func ClipOutside(src gocv.Mat, roi geometry.Ellipse) gocv.Mat {
	mask := MaskROI(roi, src.Rows(), src.Cols())
	defer mask.Close()

	result := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), src.Rows(), src.Cols(), src.Type())
	src.CopyToWithMask(&result, mask)
	return result
}

// ROIArea returns the number of raster pixels the ellipse covers within the
// given dimensions. This is the denominator of %coverage, so an ellipse
// partly outside the frame only counts its visible portion.
func ROIArea(roi geometry.Ellipse, rows, cols int) int {
	mask := MaskROI(roi, rows, cols)
	defer mask.Close()
	return gocv.CountNonZero(mask)
}
