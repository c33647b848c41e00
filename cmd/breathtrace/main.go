// Command breathtrace steps the breathing guide with a fixed frame time and
// prints what the presentation would show after every tick.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/model"
	"campuszen/internal/storage"
	"campuszen/internal/ui/animation"

	"gopkg.in/yaml.v3"
)

// maxSteps bounds the rows a single trace may produce.
const maxSteps = 1_000_000

var (
	errBadFormat = errors.New("format must be table or yaml")
	errBadStep   = errors.New("dt must be a positive number of seconds")
	errBadCycles = errors.New("cycles must be a finite number of at least 0")
	errTooLong   = errors.New("trace is too long, lower -cycles or raise -dt")
)

type row struct {
	Time       float64 `yaml:"t"`
	Phase      string  `yaml:"phase"`
	Elapsed    float64 `yaml:"elapsed"`
	Scale      float64 `yaml:"scale"`
	PulseAlpha float64 `yaml:"pulse_alpha"`
	Label      string  `yaml:"label"`
	LabelAlpha float64 `yaml:"label_alpha"`
}

// recorder is a pulse and label sink that keeps the last values written.
type recorder struct {
	scale      float64
	pulseAlpha float64
	text       string
	labelAlpha float64
}

func (sink *recorder) SetPulse(scale, alpha float64) {
	sink.scale = scale
	sink.pulseAlpha = alpha
}

func (sink *recorder) SetLabel(text string, alpha float64) {
	sink.text = text
	sink.labelAlpha = alpha
}

func main() {
	presetName := flag.String("preset", animation.DefaultPresetName, "preset name")
	presetsPath := flag.String("presets", "", "extra presets file (.yaml, .yml or .toml)")
	dtSeconds := flag.Float64("dt", 0.1, "frame time in seconds")
	cycles := flag.Float64("cycles", 1, "number of breath cycles to trace")
	carry := flag.Bool("carry", false, "carry overflow into the next phase")
	format := flag.String("format", "table", "output format: table or yaml")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var extra []animation.Preset
	if *presetsPath != "" {
		loaded, err := storage.LoadPresets(*presetsPath)
		if err != nil {
			slog.Error("load presets", "path", *presetsPath, "error", err)
			os.Exit(1)
		}
		extra = loaded
	}

	preset, ok := animation.PresetByName(*presetName, extra...)
	if !ok {
		slog.Error("unknown preset", "name", *presetName)
		os.Exit(1)
	}
	config, err := preset.Apply(model.DefaultBreathConfig())
	if err != nil {
		slog.Error("apply preset", "error", err)
		os.Exit(1)
	}
	config.CarryRemainder = *carry

	dt, err := stepDuration(*dtSeconds)
	if err != nil {
		usageError(err)
	}
	rows, err := trace(config, dt, *cycles)
	if err != nil {
		usageError(err)
	}
	if err := write(os.Stdout, rows, *format); err != nil {
		slog.Error("write trace", "error", err)
		os.Exit(1)
	}
}

func usageError(err error) {
	fmt.Fprintln(os.Stderr, err)
	flag.Usage()
	os.Exit(2)
}

func stepDuration(seconds float64) (time.Duration, error) {
	dt, ok := model.DurationFromSeconds(seconds)
	if !ok || dt <= 0 {
		return 0, fmt.Errorf("dt %v: %w", seconds, errBadStep)
	}
	return dt, nil
}

// trace starts a controller and ticks it until cycles full cycles of
// configured time have passed. The first row is the pose right after start.
// A non-positive dt falls back to 100ms.
func trace(config model.BreathConfig, dt time.Duration, cycles float64) ([]row, error) {
	if dt <= 0 {
		dt = 100 * time.Millisecond
	}
	if math.IsNaN(cycles) || math.IsInf(cycles, 0) || cycles < 0 {
		return nil, fmt.Errorf("cycles %v: %w", cycles, errBadCycles)
	}
	wanted := math.Ceil(cycles * float64(config.CycleDuration()) / float64(dt))
	if wanted > maxSteps {
		return nil, fmt.Errorf("%.0f steps: %w", wanted, errTooLong)
	}
	steps := int(wanted)

	sink := &recorder{}
	controller := breath.NewController(config, sink, sink)
	controller.Start()

	rows := make([]row, 0, steps+1)
	rows = append(rows, snapshot(0, controller, sink))
	for step := 1; step <= steps; step++ {
		controller.Tick(dt)
		rows = append(rows, snapshot(time.Duration(step)*dt, controller, sink))
	}
	return rows, nil
}

func snapshot(at time.Duration, controller *breath.Controller, sink *recorder) row {
	state := controller.State()
	return row{
		Time:       round(at.Seconds()),
		Phase:      string(state.Phase),
		Elapsed:    round(state.Elapsed.Seconds()),
		Scale:      round(sink.scale),
		PulseAlpha: round(sink.pulseAlpha),
		Label:      sink.text,
		LabelAlpha: round(sink.labelAlpha),
	}
}

func write(out io.Writer, rows []row, format string) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		if err := encoder.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	case "table":
		table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(table, "t\tphase\telapsed\tscale\talpha\tlabel\tlabel_alpha")
		for _, r := range rows {
			fmt.Fprintf(table, "%.3f\t%s\t%.3f\t%.4f\t%.4f\t%s\t%.4f\n",
				r.Time, r.Phase, r.Elapsed, r.Scale, r.PulseAlpha, r.Label, r.LabelAlpha)
		}
		return table.Flush()
	default:
		return fmt.Errorf("write %q: %w", format, errBadFormat)
	}
}

func round(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}
