// Package decision supplies the operator decisions the pipeline cannot make
// on its own: positioning the well region and confirming the proposed
// threshold on the high-autofluorescence path. The interactive implementation
// blocks until the operator answers; the fixed implementation makes batch and
// test runs fully automatic.
package decision

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"fluoroquant/pkg/geometry"
)

// ErrAborted indicates the operator cancelled a decision prompt. The batch
// policy decides whether the remaining images still run.
var ErrAborted = errors.New("aborted by operator")

// Provider answers the two pipeline questions that may need a human.
type Provider interface {
	// PositionROI places the well ellipse, given the current default.
	PositionROI(def geometry.Ellipse) (geometry.Ellipse, error)

	// ConfirmThreshold accepts or overrides the proposed threshold. Only
	// called on the high-autofluorescence path.
	ConfirmThreshold(proposed float64) (float64, error)
}

// Fixed is a non-blocking provider for scripted batch runs and tests. Nil
// fields accept the pipeline's defaults.
type Fixed struct {
	ROI       *geometry.Ellipse
	Threshold *float64
}

// PositionROI returns the scripted ellipse, or the default when none is set.
func (f Fixed) PositionROI(def geometry.Ellipse) (geometry.Ellipse, error) {
	if f.ROI != nil {
		return *f.ROI, nil
	}
	return def, nil
}

// ConfirmThreshold returns the scripted threshold, or the proposal when none
// is set.
func (f Fixed) ConfirmThreshold(proposed float64) (float64, error) {
	if f.Threshold != nil {
		return *f.Threshold, nil
	}
	return proposed, nil
}

// Func adapts plain functions to the Provider interface, for per-image
// scripting in tests. Nil functions accept the defaults.
type Func struct {
	ROIFunc       func(def geometry.Ellipse) (geometry.Ellipse, error)
	ThresholdFunc func(proposed float64) (float64, error)
}

func (f Func) PositionROI(def geometry.Ellipse) (geometry.Ellipse, error) {
	if f.ROIFunc == nil {
		return def, nil
	}
	return f.ROIFunc(def)
}

func (f Func) ConfirmThreshold(proposed float64) (float64, error) {
	if f.ThresholdFunc == nil {
		return proposed, nil
	}
	return f.ThresholdFunc(proposed)
}

// Console prompts the operator on a terminal. An empty answer accepts the
// default, "q" cancels, and end of input counts as cancelling.
type Console struct {
	In  io.Reader
	Out io.Writer

	scanner *bufio.Scanner
}

// NewConsole creates an interactive provider reading from in and prompting on
// out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{In: in, Out: out, scanner: bufio.NewScanner(in)}
}

// PositionROI shows the current ellipse and reads an optional replacement as
// four numbers: center x, center y, width, height.
func (c *Console) PositionROI(def geometry.Ellipse) (geometry.Ellipse, error) {
	fmt.Fprintf(c.Out, "ROI center (%.0f,%.0f) size %.0fx%.0f [enter to accept, 'cx cy w h' to move, q to cancel]: ",
		def.Center.X, def.Center.Y, def.Width, def.Height)

	line, err := c.readLine()
	if err != nil {
		return geometry.Ellipse{}, err
	}
	if line == "" {
		return def, nil
	}

	var cx, cy, w, h float64
	if _, err := fmt.Sscanf(line, "%f %f %f %f", &cx, &cy, &w, &h); err != nil {
		return geometry.Ellipse{}, fmt.Errorf("expected 'cx cy w h', got %q: %w", line, err)
	}
	roi := geometry.NewEllipse(cx, cy, w, h)
	if !roi.Valid() {
		return geometry.Ellipse{}, fmt.Errorf("ROI %q has non-positive extent", line)
	}
	return roi, nil
}

// ConfirmThreshold shows the proposed threshold and reads an optional
// override.
func (c *Console) ConfirmThreshold(proposed float64) (float64, error) {
	fmt.Fprintf(c.Out, "proposed threshold %.1f [enter to accept, value to override, q to cancel]: ", proposed)

	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return proposed, nil
	}

	var value float64
	if _, err := fmt.Sscanf(line, "%f", &value); err != nil {
		return 0, fmt.Errorf("expected a number, got %q: %w", line, err)
	}
	return value, nil
}

func (c *Console) readLine() (string, error) {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	line := strings.TrimSpace(c.scanner.Text())
	if strings.EqualFold(line, "q") {
		return "", ErrAborted
	}
	return line, nil
}
