// Package titre converts measured %coverage into relative viral titre
// estimates against calibration wells.
package titre

import (
	"errors"
	"fmt"
)

// ErrZeroControlCoverage indicates the virus-only control well has zero
// coverage, which leaves the linear scaling undefined.
var ErrZeroControlCoverage = errors.New("control coverage is zero")

// CalibrationWell pairs an independently known titre with the %coverage
// measured for that well. A known titre of zero marks the uninfected
// baseline.
type CalibrationWell struct {
	Titre    float64 `yaml:"titre"`    // PFU/ml
	Coverage float64 `yaml:"coverage"` // percent
}

// Estimate is the derived titre for one experimental well.
type Estimate struct {
	Label    string
	Coverage float64
	Titre    float64
}

// EstimateTitre scales an experimental well's %coverage linearly against the
// virus-only control: titre = coverage / control coverage * control titre.
func EstimateTitre(coverage float64, control CalibrationWell) (float64, error) {
	if control.Coverage == 0 {
		return 0, ErrZeroControlCoverage
	}
	return coverage / control.Coverage * control.Titre, nil
}

// ValidateBaseline checks that the uninfected well reads approximately zero
// coverage. A baseline above the tolerance means the segmentation is picking
// up debris or autofluorescence and the calibration cannot be trusted.
func ValidateBaseline(baseline CalibrationWell, tolerance float64) error {
	if baseline.Coverage > tolerance {
		return fmt.Errorf("baseline well coverage %.2f%% exceeds tolerance %.2f%%",
			baseline.Coverage, tolerance)
	}
	return nil
}
