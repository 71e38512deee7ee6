package segment

import (
	"gocv.io/x/gocv"
)

// newGray8 builds a constant single-channel 8-bit raster.
func newGray8(rows, cols int, value uint8) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(value), 0, 0, 0),
		rows, cols, gocv.MatTypeCV8UC1)
}

// newGray16 builds a constant single-channel 16-bit raster.
func newGray16(rows, cols int, value uint16) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(value), 0, 0, 0),
		rows, cols, gocv.MatTypeCV16UC1)
}

// fillRect8 paints a filled rectangle into an 8-bit raster.
func fillRect8(m *gocv.Mat, x0, y0, w, h int, value uint8) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.SetUCharAt(y, x, value)
		}
	}
}

// fillRect16 paints a filled rectangle into a 16-bit raster.
func fillRect16(m *gocv.Mat, x0, y0, w, h int, value uint16) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.SetShortAt(y, x, int16(value))
		}
	}
}

// componentCount returns the number of foreground components in a binary mask.
func componentCount(mask gocv.Mat) int {
	labels := gocv.NewMat()
	defer labels.Close()
	return gocv.ConnectedComponents(mask, &labels) - 1
}
