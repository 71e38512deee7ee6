package segment

import (
	"image"

	"gocv.io/x/gocv"
)

// SubtractBackground estimates the slowly varying background with a grayscale
// morphological opening (structuring ellipse of diameter 2*radius+1) and
// subtracts it from the source, approximating a rolling-ball filter of the
// given radius. The source is left untouched; the result is a new raster of
// the same bit depth.
func SubtractBackground(src gocv.Mat, radius int) gocv.Mat {
	if radius < 1 {
		radius = 1
	}
	size := 2*radius + 1

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(size, size))
	defer kernel.Close()

	background := gocv.NewMat()
	defer background.Close()
	gocv.MorphologyEx(src, &background, gocv.MorphOpen, kernel)

	result := gocv.NewMat()
	gocv.Subtract(src, background, &result)
	return result
}

// RescaleTo8Bit stretches the source intensities to the full 8-bit range and
// converts to an 8-bit raster. A constant image maps to all zeros.
func RescaleTo8Bit(src gocv.Mat) gocv.Mat {
	stretched := gocv.NewMat()
	defer stretched.Close()
	gocv.Normalize(src, &stretched, 0, 255, gocv.NormMinMax)

	result := gocv.NewMat()
	stretched.ConvertTo(&result, gocv.MatTypeCV8UC1)
	return result
}
