package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// Loader produces a ChannelSet for one input file. The concrete decoding and
// channel splitting is a collaborator concern; the pipeline only sees indexed
// rasters.
type Loader interface {
	Load(path string) (*ChannelSet, error)
}

// FileLoader decodes TIFF, PNG, and JPEG files. Grayscale images yield a
// single channel with index 0. Color images are split into one channel per
// color plane, indexed red=0, green=1, blue=2, so that a green fluorescent
// reporter lands on channel 1.
type FileLoader struct{}

// Load opens and decodes the file at path into a ChannelSet.
func (FileLoader) Load(path string) (*ChannelSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	base := filepath.Base(path)
	cs := &ChannelSet{Path: path}

	switch src := img.(type) {
	case *image.Gray16:
		cs.Channels = []Channel{{
			Index: 0,
			Name:  channelName(base, 0),
			Mat:   matFromGray16(src),
		}}
	case *image.Gray:
		cs.Channels = []Channel{{
			Index: 0,
			Name:  channelName(base, 0),
			Mat:   matFromGray(src),
		}}
	default:
		planes := splitColorPlanes(img)
		for i, m := range planes {
			cs.Channels = append(cs.Channels, Channel{
				Index: i,
				Name:  channelName(base, i),
				Mat:   m,
			})
		}
	}

	return cs, nil
}

func channelName(base string, index int) string {
	return fmt.Sprintf("%s - C=%d", base, index)
}

// matFromGray16 converts a 16-bit grayscale image to a CV16UC1 Mat.
func matFromGray16(src *image.Gray16) gocv.Mat {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV16UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y
			mat.SetShortAt(y, x, int16(v))
		}
	}
	return mat
}

// matFromGray converts an 8-bit grayscale image to a CV8UC1 Mat.
func matFromGray(src *image.Gray) gocv.Mat {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mat.SetUCharAt(y, x, src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
	}
	return mat
}

// splitColorPlanes extracts the red, green, and blue planes of a color image
// as separate 8-bit rasters.
func splitColorPlanes(src image.Image) []gocv.Mat {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	planes := make([]gocv.Mat, 3)
	for i := range planes {
		planes[i] = gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			planes[0].SetUCharAt(y, x, uint8(r>>8))
			planes[1].SetUCharAt(y, x, uint8(g>>8))
			planes[2].SetUCharAt(y, x, uint8(b>>8))
		}
	}
	return planes
}

// SupportedFormats returns the list of supported input image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
