package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fluoroquant/internal/decision"
	"fluoroquant/internal/raster"
	"fluoroquant/internal/segment"
	"fluoroquant/pkg/geometry"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// Policy controls how the batch reacts to a failed image.
type Policy struct {
	// ContinueOnError keeps the batch going after an image-scoped failure
	// (missing channel, degenerate histogram, per-image I/O).
	ContinueOnError bool

	// ContinueOnAbort keeps the batch going after the operator cancels a
	// decision prompt.
	ContinueOnAbort bool
}

// Options configures a batch run.
type Options struct {
	Params          segment.Params
	ReporterChannel int // preferred channel index
	FallbackChannel int // used when the reporter channel is absent
	OutputDir       string
	MaskPrefix      string
	Policy          Policy
}

// Orchestrator runs the batch strictly sequentially: one image occupies the
// whole pipeline from Loaded to Saved or Failed before the next begins, so at
// most one image's rasters are alive at a time.
type Orchestrator struct {
	loader   raster.Loader
	provider decision.Provider
	opts     Options
	log      zerolog.Logger

	// roi is the current well placement, reused as the default for the next
	// image until the provider repositions it.
	roi geometry.Ellipse
}

// New creates an orchestrator. The provider is consulted for ROI placement on
// every image and for threshold confirmation on the high-autofluorescence
// path.
func New(loader raster.Loader, provider decision.Provider, opts Options, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		loader:   loader,
		provider: provider,
		opts:     opts,
		log:      log,
		roi:      opts.Params.ROI,
	}
}

// Run processes every file and returns the batch summary. A failed image
// never contributes a record; whether it stops the batch depends on the
// policy. When the batch stops early the summary still holds the records of
// the images already saved, and the error is returned alongside it.
func (o *Orchestrator) Run(files []string) (*BatchSummary, error) {
	summary := &BatchSummary{}

	for _, path := range files {
		start := time.Now()
		rec, err := o.processOne(path)
		if err != nil {
			err = fmt.Errorf("%s: %w", filepath.Base(path), err)
			o.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("image failed")

			if errors.Is(err, decision.ErrAborted) {
				if !o.opts.Policy.ContinueOnAbort {
					return summary, err
				}
				continue
			}
			if !o.opts.Policy.ContinueOnError {
				return summary, err
			}
			continue
		}

		summary.Append(rec)
		o.log.Info().
			Str("file", rec.File).
			Str("mode", rec.Mode.String()).
			Int("count", rec.Count).
			Float64("coverage", rec.Coverage).
			Dur("elapsed", time.Since(start)).
			Msg("image processed")
	}

	mean, stddev := summary.CoverageStats()
	o.log.Info().
		Int("processed", len(summary.Records)).
		Float64("coverage_mean", mean).
		Float64("coverage_stddev", stddev).
		Msg("batch finished")

	return summary, nil
}

func (o *Orchestrator) processOne(path string) (ImageRecord, error) {
	cs, err := o.loader.Load(path)
	if err != nil {
		return ImageRecord{}, err
	}
	o.trace(path, StateLoaded)

	ch, err := cs.Select(o.opts.ReporterChannel, o.opts.FallbackChannel)
	if err != nil {
		cs.Close()
		return ImageRecord{}, err
	}
	o.trace(path, StateChannelSelected)

	// Take ownership of the selected raster; the rest of the set is done.
	work := ch.Mat.Clone()
	channel := ch.Index
	cs.Close()

	// MFI before any mutation; the classification is final once computed.
	mfi := segment.MeanIntensity(work)
	mode := segment.Classify(mfi, o.opts.Params.MFIThreshold)
	o.trace(path, StateClassified)
	o.log.Debug().
		Str("file", filepath.Base(path)).
		Float64("mfi", mfi).
		Float64("spread", segment.IntensitySpread(work)).
		Str("mode", mode.String()).
		Msg("classified")

	var (
		mask      gocv.Mat
		threshold float64
		roi       geometry.Ellipse
	)

	switch mode {
	case segment.ModeHighAutofluorescence:
		// ROI first: edge autofluorescence must not bias the Triangle
		// threshold or the background estimate.
		roi, err = o.positionROI()
		if err != nil {
			work.Close()
			return ImageRecord{}, err
		}
		mask, threshold, err = o.segmentHighAutofluorescence(work, roi)
		if err != nil {
			return ImageRecord{}, err
		}
		o.trace(path, StateSegmented)
	default:
		mask, threshold, err = o.segmentNormal(work)
		if err != nil {
			return ImageRecord{}, err
		}
		o.trace(path, StateSegmented)

		// ROI placement happens only now, after segmentation.
		roi, err = o.positionROI()
		if err != nil {
			mask.Close()
			return ImageRecord{}, err
		}
	}
	o.trace(path, StateROIRestricted)

	stats, err := segment.AnalyzeParticles(mask, roi, o.opts.Params.MinParticleArea)
	mask.Close()
	if err != nil {
		return ImageRecord{}, err
	}
	o.trace(path, StateAnalyzed)

	maskPath := filepath.Join(o.opts.OutputDir, o.maskName(path))
	if err := raster.SaveMask(maskPath, stats.Mask); err != nil {
		stats.Mask.Close()
		return ImageRecord{}, err
	}
	stats.Mask.Close()
	o.trace(path, StateSaved)

	return ImageRecord{
		File:      filepath.Base(path),
		Channel:   channel,
		MFI:       mfi,
		Mode:      mode,
		Threshold: threshold,
		Count:     stats.Count,
		TotalArea: stats.TotalArea,
		Coverage:  stats.Coverage,
		MaskPath:  maskPath,
	}, nil
}

// segmentNormal runs normalize, rescale, Triangle threshold, and watershed.
// It consumes work.
func (o *Orchestrator) segmentNormal(work gocv.Mat) (gocv.Mat, float64, error) {
	sub := segment.SubtractBackground(work, o.opts.Params.RollingRadius)
	work.Close()

	eight := segment.RescaleTo8Bit(sub)
	sub.Close()

	// Thresholds are selected per image, with no carry-over state.
	threshold, err := segment.ProposeTriangle(eight)
	if err != nil {
		eight.Close()
		return gocv.Mat{}, 0, err
	}

	bin := segment.ApplyThreshold(eight, threshold)
	eight.Close()

	split := segment.SplitTouching(bin)
	bin.Close()
	return split, threshold, nil
}

// segmentHighAutofluorescence clips the ROI before any intensity-altering
// step, then normalizes, rescales, and thresholds. The Triangle proposal must
// be confirmed or overridden by the provider before mask conversion. It
// consumes work.
func (o *Orchestrator) segmentHighAutofluorescence(work gocv.Mat, roi geometry.Ellipse) (gocv.Mat, float64, error) {
	clipped := segment.ClipOutside(work, roi)
	work.Close()

	sub := segment.SubtractBackground(clipped, o.opts.Params.RollingRadius)
	clipped.Close()

	eight := segment.RescaleTo8Bit(sub)
	sub.Close()

	proposed, err := segment.ProposeTriangle(eight)
	if err != nil {
		eight.Close()
		return gocv.Mat{}, 0, err
	}

	threshold, err := o.provider.ConfirmThreshold(proposed)
	if err != nil {
		eight.Close()
		return gocv.Mat{}, 0, err
	}

	bin := segment.ApplyThreshold(eight, threshold)
	eight.Close()

	split := segment.SplitTouching(bin)
	bin.Close()
	return split, threshold, nil
}

// positionROI asks the provider to place the well ellipse, offering the
// previous placement as the default, and remembers the answer for the next
// image.
func (o *Orchestrator) positionROI() (geometry.Ellipse, error) {
	roi, err := o.provider.PositionROI(o.roi)
	if err != nil {
		return geometry.Ellipse{}, err
	}
	if !roi.Valid() {
		return geometry.Ellipse{}, fmt.Errorf("provider returned ROI with non-positive extent: %+v", roi)
	}
	o.roi = roi
	return roi, nil
}

// maskName builds the output mask file name: the fixed prefix plus the input
// name with its extension replaced by .tif.
func (o *Orchestrator) maskName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return o.opts.MaskPrefix + base + ".tif"
}

func (o *Orchestrator) trace(path string, state State) {
	o.log.Debug().Str("file", filepath.Base(path)).Str("state", state.String()).Msg("state")
}
