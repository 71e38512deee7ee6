package segment

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func TestProposeTriangleSeparatesSignal(t *testing.T) {
	// Dark background with one bright square, the histogram shape the
	// Triangle method is made for.
	m := newGray8(100, 100, 10)
	defer m.Close()
	fillRect8(&m, 40, 40, 20, 20, 200)

	thresh, err := ProposeTriangle(m)
	if err != nil {
		t.Fatalf("ProposeTriangle() error = %v", err)
	}
	if thresh <= 10 || thresh >= 200 {
		t.Errorf("threshold %v should fall between background 10 and signal 200", thresh)
	}

	mask := ApplyThreshold(m, thresh)
	defer mask.Close()
	if got := gocv.CountNonZero(mask); got != 400 {
		t.Errorf("mask foreground = %d pixels, want the 400-pixel square", got)
	}
}

func TestProposeTriangleConstantImage(t *testing.T) {
	m := newGray8(50, 50, 7)
	defer m.Close()

	thresh, err := ProposeTriangle(m)
	if err != nil {
		t.Fatalf("ProposeTriangle() error = %v", err)
	}
	if thresh != 7 {
		t.Errorf("constant image threshold = %v, want its own value 7", thresh)
	}

	// Strictly-greater conversion makes the mask empty rather than full.
	mask := ApplyThreshold(m, thresh)
	defer mask.Close()
	if got := gocv.CountNonZero(mask); got != 0 {
		t.Errorf("constant image mask has %d foreground pixels, want 0", got)
	}
}

func TestProposeTriangleEmptyMat(t *testing.T) {
	m := gocv.NewMat()
	defer m.Close()

	_, err := ProposeTriangle(m)
	if !errors.Is(err, ErrSegmentation) {
		t.Errorf("ProposeTriangle(empty) error = %v, want ErrSegmentation", err)
	}
}

func TestApplyThresholdBinary(t *testing.T) {
	m := newGray8(20, 20, 0)
	defer m.Close()
	fillRect8(&m, 0, 0, 20, 10, 100)
	fillRect8(&m, 0, 10, 20, 5, 50)

	mask := ApplyThreshold(m, 50)
	defer mask.Close()

	// Every sample must be exactly 0 or 255, and 50 itself stays background.
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := mask.GetUCharAt(y, x)
			if v != 0 && v != 255 {
				t.Fatalf("mask[%d,%d] = %d, want 0 or 255", y, x, v)
			}
		}
	}
	if got := gocv.CountNonZero(mask); got != 20*10 {
		t.Errorf("foreground = %d, want %d (values above 50 only)", got, 20*10)
	}
}
