package raster

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
	"golang.org/x/image/tiff"
)

// SaveMask writes a binary 8-bit mask as a losslessly compressed grayscale
// TIFF. The mask is expected to contain exactly two values (0 and 255).
func SaveMask(path string, mask gocv.Mat) error {
	if mask.Empty() {
		return fmt.Errorf("cannot save empty mask to %s", path)
	}
	if mask.Type() != gocv.MatTypeCV8UC1 {
		return fmt.Errorf("mask for %s must be single-channel 8-bit, got type %d", path, mask.Type())
	}

	rows, cols := mask.Rows(), mask.Cols()
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	data := mask.ToBytes()
	if len(data) == rows*cols {
		copy(img.Pix, data)
	} else {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				img.Pix[y*img.Stride+x] = mask.GetUCharAt(y, x)
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mask file: %w", err)
	}
	defer file.Close()

	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(file, img, opts); err != nil {
		return fmt.Errorf("failed to encode mask: %w", err)
	}
	return nil
}
