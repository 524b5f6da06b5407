// Command eegprep runs a synthetic EEG preprocessing pipeline and prints a
// summary of every stage.
//
// Usage:
//
//	eegprep [flags]
//
// It synthesizes a multichannel recording, band-pass filters it, extracts
// global field power peaks, and draws randomly resampled epochs.
//
// Examples:
//
//	eegprep
//	eegprep -channels 32 -seconds 60 -distance 5
//	eegprep -low 0 -high 0 -epochs 20 -coverage 0.8
//	eegprep -without-replacement -coverage 0.5 -v
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-eeg/bandpass"
	"github.com/cwbudde/algo-eeg/gfp"
	"github.com/cwbudde/algo-eeg/recording"
	"github.com/cwbudde/algo-eeg/report"
	"github.com/cwbudde/algo-eeg/resample"
	"github.com/cwbudde/algo-eeg/synth"
	"go.uber.org/zap"
)

type stageRow struct {
	stage  string
	shape  string
	rate   float64
	detail string
}

func main() {
	channels := flag.Int("channels", 8, "number of channels to synthesize")
	seconds := flag.Float64("seconds", 20, "recording length in seconds")
	rate := flag.Float64("rate", 250, "sample rate in Hz")
	seed := flag.Uint64("seed", 1, "seed for synthesis and epoch draws")
	low := flag.Float64("low", 1, "band-pass low cutoff in Hz (0 disables filtering)")
	high := flag.Float64("high", 40, "band-pass high cutoff in Hz (0 disables filtering)")
	taps := flag.Int("taps", 201, "band-pass kernel length (odd)")
	distance := flag.Int("distance", 2, "minimum spacing between dispersion peaks in samples")
	epochCount := flag.Int("epochs", 10, "number of epochs to draw (0 derives it)")
	epochSamples := flag.Int("epoch-samples", 0, "samples per drawn epoch (0 derives it)")
	coverage := flag.Float64("coverage", 0.5, "fraction of the recording the draw covers (0 derives it)")
	withoutReplacement := flag.Bool("without-replacement", false, "draw every sample index at most once")
	verbose := flag.Bool("v", false, "log stage summaries")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: eegprep [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Synthesizes a recording, band-pass filters it, extracts global\n")
		fmt.Fprintf(os.Stderr, "field power peaks, and draws resampled epochs.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  eegprep -channels 32 -seconds 60 -distance 5\n")
		fmt.Fprintf(os.Stderr, "  eegprep -without-replacement -coverage 0.5 -v\n")
	}
	flag.Parse()

	reporter := report.Reporter(report.Discard{})
	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fail(err)
		}
		defer func() { _ = logger.Sync() }()
		reporter = report.Zap(logger)
	}

	gen := synth.New(synth.WithSampleRate(*rate), synth.WithSeed(*seed))
	raw, err := gen.Raw(*channels, int(*seconds * *rate))
	if err != nil {
		fail(err)
	}
	rows := []stageRow{{
		stage:  "synthesized",
		shape:  fmt.Sprintf("%dx%d", raw.ChannelCount(), raw.SampleCount()),
		rate:   raw.Info().SampleRate,
		detail: fmt.Sprintf("seed=%d", *seed),
	}}

	if *low > 0 && *high > 0 {
		filter, err := bandpass.New(*low, *high, *rate, bandpass.WithTaps(*taps))
		if err != nil {
			fail(err)
		}
		filtered, err := filter.ApplyInstance(raw)
		if err != nil {
			fail(err)
		}
		raw = filtered.(*recording.Raw)
		rows = append(rows, stageRow{
			stage:  "filtered",
			shape:  fmt.Sprintf("%dx%d", raw.ChannelCount(), raw.SampleCount()),
			rate:   raw.Info().SampleRate,
			detail: fmt.Sprintf("band=[%g, %g] Hz taps=%d", *low, *high, len(filter.Taps())),
		})
	}

	peaks, err := gfp.ExtractPeaks(raw,
		gfp.WithMinPeakDistance(*distance),
		gfp.WithReporter(reporter),
	)
	if err != nil {
		fail(err)
	}
	picked := 0
	if len(peaks.Data()) > 0 {
		picked = len(peaks.Data()[0])
	}
	percent := 100 * float64(picked) / float64(raw.SampleCount())
	rows = append(rows, stageRow{
		stage:  "gfp peaks",
		shape:  fmt.Sprintf("%dx%d", len(peaks.Data()), picked),
		rate:   peaks.Info().SampleRate,
		detail: fmt.Sprintf("distance=%d picked=%.1f%%", *distance, percent),
	})

	plan, err := resample.PlanFor(raw.SampleCount(), *epochCount, *epochSamples, *coverage)
	if err != nil {
		fail(err)
	}
	opts := []resample.Option{
		resample.WithSeed(*seed),
		resample.WithReporter(reporter),
	}
	if *epochCount > 0 {
		opts = append(opts, resample.WithEpochCount(*epochCount))
	}
	if *epochSamples > 0 {
		opts = append(opts, resample.WithEpochLength(*epochSamples))
	}
	if *coverage > 0 {
		opts = append(opts, resample.WithCoverage(*coverage))
	}
	if *withoutReplacement {
		opts = append(opts, resample.WithoutReplacement())
	}
	drawn, err := resample.Draw(raw, opts...)
	if err != nil {
		fail(err)
	}
	rows = append(rows, stageRow{
		stage:  "resampled",
		shape:  fmt.Sprintf("%dx%dx%d", len(drawn), *channels, plan.EpochLength),
		rate:   *rate,
		detail: fmt.Sprintf("coverage=%.2f replace=%t", plan.Coverage, !*withoutReplacement),
	})

	printSummary(rows)
}

func printSummary(rows []stageRow) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Stage\tShape\tRate [Hz]\tDetail\n"); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t-----\t---------\t------\n"); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	for _, row := range rows {
		rateLabel := "irregular"
		if row.rate != recording.IrregularRate {
			rateLabel = fmt.Sprintf("%g", row.rate)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.stage, row.shape, rateLabel, row.detail); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
