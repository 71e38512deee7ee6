package segment

import (
	"testing"

	"gocv.io/x/gocv"
)

// fillDisk paints a filled disk into an 8-bit raster.
func fillDisk(m *gocv.Mat, cx, cy, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				m.SetUCharAt(y, x, 255)
			}
		}
	}
}

func TestSplitTouchingKeepsSeparateBlobs(t *testing.T) {
	mask := newGray8(100, 100, 0)
	defer mask.Close()
	fillDisk(&mask, 25, 50, 10)
	fillDisk(&mask, 75, 50, 10)

	split := SplitTouching(mask)
	defer split.Close()

	if got := componentCount(split); got != 2 {
		t.Errorf("component count = %d, want 2", got)
	}
	// The disk cores survive the split.
	if split.GetUCharAt(50, 25) != 255 {
		t.Error("left disk core missing after split")
	}
	if split.GetUCharAt(50, 75) != 255 {
		t.Error("right disk core missing after split")
	}
}

func TestSplitTouchingCutsDumbbell(t *testing.T) {
	// Two disks joined by a thin neck merge into one component under plain
	// thresholding; the watershed must cut them apart again.
	mask := newGray8(100, 160, 0)
	defer mask.Close()
	fillDisk(&mask, 50, 50, 18)
	fillDisk(&mask, 110, 50, 18)
	fillRect8(&mask, 50, 47, 60, 6, 255) // neck

	if got := componentCount(mask); got != 1 {
		t.Fatalf("fixture should be one merged component, got %d", got)
	}

	split := SplitTouching(mask)
	defer split.Close()

	if got := componentCount(split); got < 2 {
		t.Errorf("component count after split = %d, want at least 2", got)
	}
}

func TestSplitTouchingKeepsSmallBlobNextToLarge(t *testing.T) {
	// The small blob must seed its own marker even though its distance peak
	// is far below the large blob's.
	mask := newGray8(120, 120, 0)
	defer mask.Close()
	fillDisk(&mask, 40, 60, 25)
	fillDisk(&mask, 100, 60, 5)

	split := SplitTouching(mask)
	defer split.Close()

	if got := componentCount(split); got != 2 {
		t.Errorf("component count = %d, want 2 (small blob lost its marker)", got)
	}
	if split.GetUCharAt(60, 100) != 255 {
		t.Error("small blob core missing after split")
	}
}

func TestSplitTouchingEmptyMask(t *testing.T) {
	mask := newGray8(50, 50, 0)
	defer mask.Close()

	split := SplitTouching(mask)
	defer split.Close()

	if got := gocv.CountNonZero(split); got != 0 {
		t.Errorf("empty mask split to %d foreground pixels, want 0", got)
	}
}

func TestSplitTouchingStaysBinary(t *testing.T) {
	mask := newGray8(80, 80, 0)
	defer mask.Close()
	fillDisk(&mask, 40, 40, 15)

	split := SplitTouching(mask)
	defer split.Close()

	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			v := split.GetUCharAt(y, x)
			if v != 0 && v != 255 {
				t.Fatalf("split[%d,%d] = %d, want 0 or 255", y, x, v)
			}
		}
	}
	// Splitting never adds foreground.
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if split.GetUCharAt(y, x) == 255 && mask.GetUCharAt(y, x) == 0 {
				t.Fatalf("split added foreground at [%d,%d]", y, x)
			}
		}
	}
}
