// Command ditherhost renders audio files through the dither unit.
//
// Usage:
//
//	ditherhost [flags] in.wav|in.mp3 out.wav
//	ditherhost -info
//
// The input is decoded to float samples, run through one dither instance per
// channel in fixed-size blocks, and written as integer PCM WAV at the target
// bit depth.
//
// Examples:
//
//	ditherhost -bits 16 master.wav master16.wav
//	ditherhost -precision 8 -bits 8 -analyze voice.mp3 voice8.wav
//	ditherhost -mode adding -gain 0.5 -mix bed.wav fx.wav out.wav
//	ditherhost -info
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-dither/dsp/dither"
	"github.com/cwbudde/algo-dither/internal/audiofile"
	"github.com/cwbudde/algo-dither/internal/host"
	"github.com/cwbudde/algo-dither/measure/noisefloor"
	"github.com/cwbudde/algo-dither/plugin"
	"github.com/cwbudde/algo-vecmath/cpu"
)

type options struct {
	in, out   string
	mix       string
	precision float64
	bits      int
	block     int
	mode      host.Mode
	gain      float64
	analyze   bool
}

func main() {
	precision := flag.Float64("precision", 0, "dither precision in bits (1..24), 0 uses -bits")
	bits := flag.Int("bits", 16, "output bit depth (8, 16, 24 or 32)")
	block := flag.Int("block", 1024, "block size in frames")
	mode := flag.String("mode", "overwrite", "write policy: overwrite or adding")
	gain := flag.Float64("gain", 1, "run-adding gain (adding mode only)")
	mix := flag.String("mix", "", "bed file the unit output is added to (adding mode only)")
	analyze := flag.Bool("analyze", false, "print noise-floor statistics of the added dither")
	info := flag.Bool("info", false, "list available units and CPU features, then exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ditherhost [flags] in.wav|in.mp3 out.wav\n\n")
		fmt.Fprintf(os.Stderr, "Adds TPDF dither and requantizes to the target bit depth.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ditherhost -bits 16 master.wav master16.wav\n")
		fmt.Fprintf(os.Stderr, "  ditherhost -precision 8 -bits 8 -analyze voice.mp3 voice8.wav\n")
		fmt.Fprintf(os.Stderr, "  ditherhost -mode adding -gain 0.5 -mix bed.wav fx.wav out.wav\n")
		fmt.Fprintf(os.Stderr, "  ditherhost -info\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *info {
		printInfo(os.Stdout)
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := host.ParseMode(*mode)
	if err != nil {
		logger.Error("invalid flag", "flag", "mode", "err", err)
		os.Exit(2)
	}

	opts := options{
		in:        flag.Arg(0),
		out:       flag.Arg(1),
		mix:       *mix,
		precision: *precision,
		bits:      *bits,
		block:     *block,
		mode:      m,
		gain:      *gain,
		analyze:   *analyze,
	}

	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger, w io.Writer) error {
	if opts.mix != "" && opts.mode != host.ModeAdding {
		return errors.New("-mix requires -mode adding")
	}

	rq, err := dither.NewRequantizer(dither.WithBitDepth(opts.bits))
	if err != nil {
		return err
	}

	precision := opts.precision
	if precision == 0 {
		precision = float64(opts.bits)
	}

	src, err := audiofile.Read(opts.in)
	if err != nil {
		return err
	}

	logger.Info("decoded",
		"file", opts.in,
		"rate", src.SampleRate,
		"channels", src.Channels,
		"bits", src.BitDepth,
		"frames", src.Frames())

	dst := make([]float64, len(src.Samples))
	if opts.mix != "" {
		if err := loadBed(dst, opts.mix, src); err != nil {
			return err
		}
	}

	r, err := host.NewRenderer(plugin.Lookup(0), src.Channels, uint(src.SampleRate),
		host.WithBlockSize(opts.block),
		host.WithMode(opts.mode),
		host.WithGain(opts.gain),
		host.WithControl("precision", precision),
	)
	if err != nil {
		return err
	}
	defer r.Close()

	p, _ := r.Control("precision")
	logger.Debug("renderer ready", "block", r.BlockSize(), "mode", r.Mode(), "precision", p)

	stats, err := r.Render(dst, src.Samples)
	if err != nil {
		return err
	}

	logger.Info("rendered", "frames", stats.Frames, "blocks", stats.Blocks, "peak", stats.Peak)

	if stats.Peak > 1 && rq.Limit() {
		logger.Warn("output exceeds full scale and will be clipped", "peak", stats.Peak)
	}

	out := &audiofile.Audio{
		SampleRate: src.SampleRate,
		Channels:   src.Channels,
		BitDepth:   opts.bits,
		Samples:    dst,
	}

	if err := audiofile.Write(opts.out, out, rq); err != nil {
		return err
	}

	logger.Info("wrote", "file", opts.out, "bits", opts.bits)

	if opts.analyze {
		if opts.mode != host.ModeOverwrite {
			logger.Warn("-analyze only applies to overwrite mode, skipped")
			return nil
		}

		return printAnalysis(w, src, out, p)
	}

	return nil
}

// loadBed fills dst with the frames of the bed file, zero-padded or truncated
// to the length of src.
func loadBed(dst []float64, path string, src *audiofile.Audio) error {
	bed, err := audiofile.Read(path)
	if err != nil {
		return err
	}

	if bed.Channels != src.Channels || bed.SampleRate != src.SampleRate {
		return fmt.Errorf("bed %s is %d ch @ %d Hz, input is %d ch @ %d Hz",
			path, bed.Channels, bed.SampleRate, src.Channels, src.SampleRate)
	}

	copy(dst, bed.Samples)

	return nil
}

// printAnalysis reports the noise floor of out minus the dry input, per
// channel, against the TPDF expectation at precision.
func printAnalysis(w io.Writer, dry, wet *audiofile.Audio, precision float64) error {
	nch := dry.Channels
	frames := dry.Frames()
	diff := make([]float64, frames)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tRMS (dB)\tExpected (dB)\tVar ratio\tPeak (dB)\tExcess kurt.\tFlatness\n")
	fmt.Fprintf(tw, "-------\t--------\t-------------\t---------\t---------\t------------\t--------\n")

	want := noisefloor.ExpectedVariance(precision)

	for ch := range nch {
		for i := range frames {
			diff[i] = wet.Samples[i*nch+ch] - dry.Samples[i*nch+ch]
		}

		rep, err := noisefloor.Analyze(diff, float64(dry.SampleRate))
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.3f\t%.2f\t%.3f\t%.3f\n",
			ch,
			rep.RMS_dB,
			ampTodB(noisefloor.ExpectedRMS(precision)),
			rep.Variance/want,
			rep.Peak_dB,
			rep.ExcessKurtosis,
			rep.Flatness,
		)
	}

	return tw.Flush()
}

func printInfo(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index\tID\tLabel\tName\tHard RT\tPorts\n")
	fmt.Fprintf(tw, "-----\t--\t-----\t----\t-------\t-----\n")

	for i := uint(0); ; i++ {
		d := plugin.Lookup(i)
		if d == nil {
			break
		}

		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%v\t%s\n",
			i, d.UniqueID, d.Label, d.Name, d.HardRTCapable(), portSummary(d.Ports))
	}

	_ = tw.Flush()

	f := cpu.DetectFeatures()
	fmt.Fprintf(w, "\nCPU: %s, best SIMD level: %s\n", f.Architecture, bestLevel(f))
}

func portSummary(ports []plugin.Port) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		kind := "control"
		if p.IsAudio() {
			kind = "audio"
		}

		dir := "out"
		if p.IsInput() {
			dir = "in"
		}

		s := fmt.Sprintf("%s(%s %s", p.Name, kind, dir)
		if lo, hi := p.Bounds(0); p.IsControl() && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) {
			s += fmt.Sprintf(" %g..%g", lo, hi)
		}

		parts[i] = s + ")"
	}

	return strings.Join(parts, ", ")
}

func bestLevel(f cpu.Features) cpu.SIMDLevel {
	for _, lvl := range []cpu.SIMDLevel{cpu.SIMDAVX512, cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON} {
		if cpu.Supports(f, lvl) {
			return lvl
		}
	}

	return cpu.SIMDNone
}

func ampTodB(v float64) float64 {
	return 20 * math.Log10(v)
}
