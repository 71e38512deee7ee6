// Package segment implements the per-well segmentation and quantification
// stages: intensity profiling, background normalization, Triangle
// thresholding, watershed splitting, ROI restriction, and particle analysis.
package segment

import (
	"fluoroquant/pkg/geometry"
)

// Mode selects the processing path for one image.
type Mode int

const (
	// ModeNormal applies the ROI only at particle analysis.
	ModeNormal Mode = iota
	// ModeHighAutofluorescence clips the ROI before any intensity-altering
	// step and requires operator confirmation of the threshold.
	ModeHighAutofluorescence
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeHighAutofluorescence:
		return "HighAutofluorescence"
	default:
		return "Unknown"
	}
}

// Params holds the tunable segmentation parameters.
type Params struct {
	// RollingRadius is the rolling-background estimation radius in pixels.
	RollingRadius int

	// MinParticleArea is the connected-component area cutoff in pixels.
	// A component exactly at the cutoff is kept.
	MinParticleArea int

	// MFIThreshold separates the two processing paths. An image whose mean
	// intensity is strictly greater than this goes down the
	// high-autofluorescence path.
	MFIThreshold float64

	// ROI is the default well region before operator adjustment.
	ROI geometry.Ellipse
}

// DefaultParams returns segmentation parameters tuned for 4x well scans of
// fluorescent reporter wells.
func DefaultParams() Params {
	return Params{
		RollingRadius:   50,
		MinParticleArea: 100,
		MFIThreshold:    1000,

		// Expected well framing for the target microscope and magnification.
		ROI: geometry.NewEllipse(700, 1000, 3850, 3850),
	}
}

// WithRollingRadius returns a copy of params with the given background radius.
func (p Params) WithRollingRadius(radius int) Params {
	p.RollingRadius = radius
	return p
}

// WithMinParticleArea returns a copy of params with the given area cutoff.
func (p Params) WithMinParticleArea(area int) Params {
	p.MinParticleArea = area
	return p
}

// WithMFIThreshold returns a copy of params with the given path threshold.
func (p Params) WithMFIThreshold(threshold float64) Params {
	p.MFIThreshold = threshold
	return p
}

// WithROI returns a copy of params with the given default well region.
func (p Params) WithROI(roi geometry.Ellipse) Params {
	p.ROI = roi
	return p
}
