// Command fluoroquant quantifies the fraction of each well image covered by a
// fluorescent reporter signal and estimates relative viral titres against
// calibration wells.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fluoroquant/internal/decision"
	"fluoroquant/internal/pipeline"
	"fluoroquant/internal/raster"
	"fluoroquant/internal/segment"
	"fluoroquant/internal/titre"
	"fluoroquant/pkg/config"
	"fluoroquant/pkg/geometry"

	"github.com/rs/zerolog"
)

func main() {
	inputDir := flag.String("input", "", "Directory of well scans to process")
	configPath := flag.String("config", "fluoroquant.yaml", "Path to YAML configuration")
	interactive := flag.Bool("interactive", false, "Prompt for ROI placement and threshold confirmation")
	controlTitre := flag.Float64("control-titre", 0, "Known titre of the virus-only control well (PFU/ml)")
	controlCoverage := flag.Float64("control-coverage", 0, "Measured %coverage of the virus-only control well")
	baselineCoverage := flag.Float64("baseline-coverage", 0, "Measured %coverage of the uninfected baseline well")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *inputDir == "" {
		fmt.Println("Usage: fluoroquant -input <dir> [-config fluoroquant.yaml] [-interactive] [-control-titre N -control-coverage N]")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *controlTitre > 0 {
		cfg.Calibration.ControlTitre = *controlTitre
	}
	if *controlCoverage > 0 {
		cfg.Calibration.ControlCoverage = *controlCoverage
	}
	if *baselineCoverage > 0 {
		cfg.Calibration.BaselineCoverage = *baselineCoverage
	}

	files, err := pipeline.ScanInputs(*inputDir, cfg.Output.FolderPrefix, filepath.Ext(cfg.Output.SummaryName))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to scan inputs")
	}
	if len(files) == 0 {
		log.Fatal().Str("dir", *inputDir).Msg("no input images found")
	}
	log.Info().Int("files", len(files)).Str("dir", *inputDir).Msg("scan complete")

	outputDir := filepath.Join(*inputDir, cfg.Output.FolderPrefix+"_"+time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output folder")
	}

	params := segment.DefaultParams().
		WithRollingRadius(cfg.Segmentation.RollingRadius).
		WithMinParticleArea(cfg.Segmentation.MinParticleArea).
		WithMFIThreshold(cfg.Segmentation.MFIThreshold).
		WithROI(geometry.NewEllipse(cfg.ROI.CenterX, cfg.ROI.CenterY, cfg.ROI.Width, cfg.ROI.Height))

	var provider decision.Provider = decision.Fixed{}
	if *interactive {
		provider = decision.NewConsole(os.Stdin, os.Stdout)
	}

	orch := pipeline.New(raster.FileLoader{}, provider, pipeline.Options{
		Params:          params,
		ReporterChannel: cfg.Segmentation.ReporterChannel,
		FallbackChannel: cfg.Segmentation.FallbackChannel,
		OutputDir:       outputDir,
		MaskPrefix:      cfg.Output.MaskPrefix,
		Policy: pipeline.Policy{
			ContinueOnError: cfg.Batch.ContinueOnError,
			ContinueOnAbort: cfg.Batch.ContinueOnAbort,
		},
	}, log)

	summary, runErr := orch.Run(files)

	// The summary covers every image that reached Saved, even when the batch
	// stopped early.
	summaryPath := filepath.Join(outputDir, cfg.Output.SummaryName)
	if err := summary.WriteFile(summaryPath); err != nil {
		log.Fatal().Err(err).Msg("failed to write summary")
	}
	log.Info().Str("path", summaryPath).Msg("summary written")

	if cfg.Calibration.ControlCoverage > 0 {
		printTitres(summary, cfg, log)
	}

	if runErr != nil {
		os.Exit(1)
	}
}

func printTitres(summary *pipeline.BatchSummary, cfg *config.Config, log zerolog.Logger) {
	control := titre.CalibrationWell{
		Titre:    cfg.Calibration.ControlTitre,
		Coverage: cfg.Calibration.ControlCoverage,
	}
	baseline := titre.CalibrationWell{Coverage: cfg.Calibration.BaselineCoverage}

	if err := titre.ValidateBaseline(baseline, cfg.Calibration.BaselineTolerance); err != nil {
		log.Warn().Err(err).Msg("baseline well is not blank; titres may be inflated")
	}

	fmt.Printf("\n%-40s %10s %16s\n", "Well", "%Area", "Titre (PFU/ml)")
	for _, rec := range summary.Records {
		est, err := titre.EstimateTitre(rec.Coverage, control)
		if err != nil {
			log.Error().Err(err).Msg("titre estimation failed")
			return
		}
		fmt.Printf("%-40s %10.3f %16.1f\n", rec.File, rec.Coverage, est)
	}
}
