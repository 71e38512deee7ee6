// Package pipeline orchestrates the per-image processing loop: loading,
// channel selection, intensity classification, the mode-dependent
// segmentation stages, particle analysis, and mask/summary output.
package pipeline

import (
	"fluoroquant/internal/segment"
)

// State tracks how far one image has progressed through the pipeline.
// Failed is reachable from any state; a failed image leaves no record.
type State int

const (
	StateLoaded State = iota
	StateChannelSelected
	StateClassified
	StateSegmented
	StateROIRestricted
	StateAnalyzed
	StateSaved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "Loaded"
	case StateChannelSelected:
		return "ChannelSelected"
	case StateClassified:
		return "Classified"
	case StateSegmented:
		return "Segmented"
	case StateROIRestricted:
		return "ROIRestricted"
	case StateAnalyzed:
		return "Analyzed"
	case StateSaved:
		return "Saved"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ImageRecord is the per-image result appended to the batch summary once the
// image reaches Saved. Exactly one record exists per successfully processed
// input file.
type ImageRecord struct {
	File      string       // input file name
	Channel   int          // selected channel index
	MFI       float64      // mean intensity before any transform
	Mode      segment.Mode // classification, fixed once computed
	Threshold float64      // threshold applied during mask conversion
	Count     int          // particles at or above the area cutoff
	TotalArea int          // summed foreground area in pixels
	Coverage  float64      // %coverage relative to the ROI
	MaskPath  string       // saved mask raster
}
