package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"launchdash.dev/internal/logging"
	"launchdash.dev/internal/models"
)

var (
	ErrUnknownOutput   = errors.New("unknown output")
	ErrDuplicateOutput = errors.New("output already registered")
)

// State is the current value of every input control.
type State struct {
	Site    string              `json:"site"`
	Payload models.PayloadRange `json:"payload"`
}

type CallbackFunc func(ctx context.Context, src Source, state State) (models.Figure, error)

// Callback recomputes one output whenever any of its inputs change.
type Callback struct {
	Output string
	Inputs []string
	Fn     CallbackFunc
}

// Update is a recomputed figure for one output.
type Update struct {
	Output string        `json:"output"`
	Figure models.Figure `json:"figure"`
}

// Observer is notified of every figure the dispatcher computes.
type Observer func(ctx context.Context, update Update)

// Dispatcher routes input changes to the callbacks subscribed to them.
// Registration happens before serving; Dispatch is safe for concurrent use after that.
type Dispatcher struct {
	source    Source
	logger    *slog.Logger
	callbacks []Callback
	observers []Observer
}

// NewDispatcher returns a dispatcher with the three dashboard callbacks registered.
func NewDispatcher(source Source, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{source: source, logger: logger}

	for _, cb := range DefaultCallbacks() {
		d.MustRegister(cb)
	}
	return d
}

// DefaultCallbacks wires the three charts to their inputs. The all-sites pie listens to
// the dropdown but ignores its value.
func DefaultCallbacks() []Callback {
	return []Callback{
		{
			Output: models.AllSitesPieChartID,
			Inputs: []string{models.SiteDropdownID},
			Fn: func(ctx context.Context, src Source, _ State) (models.Figure, error) {
				return AllSitesSuccessPie(ctx, src)
			},
		},
		{
			Output: models.SitePieChartID,
			Inputs: []string{models.SiteDropdownID},
			Fn: func(ctx context.Context, src Source, state State) (models.Figure, error) {
				return SiteOutcomePie(ctx, src, state.Site)
			},
		},
		{
			Output: models.PayloadScatterChartID,
			Inputs: []string{models.SiteDropdownID, models.PayloadSliderID},
			Fn: func(ctx context.Context, src Source, state State) (models.Figure, error) {
				return PayloadOutcomeScatter(ctx, src, state.Site, state.Payload)
			},
		},
	}
}

func (d *Dispatcher) Register(cb Callback) error {
	if cb.Fn == nil {
		return fmt.Errorf("callback for %q has no function", cb.Output)
	}
	for _, existing := range d.callbacks {
		if existing.Output == cb.Output {
			return fmt.Errorf("%w: %s", ErrDuplicateOutput, cb.Output)
		}
	}
	d.callbacks = append(d.callbacks, cb)
	return nil
}

// MustRegister is like Register but panics if the callback cannot be registered.
func (d *Dispatcher) MustRegister(cb Callback) {
	if err := d.Register(cb); err != nil {
		panic(err)
	}
}

func (d *Dispatcher) Observe(o Observer) {
	d.observers = append(d.observers, o)
}

func (d *Dispatcher) Source() Source {
	return d.source
}

// Outputs lists registered output ids in registration order.
func (d *Dispatcher) Outputs() []string {
	outputs := make([]string, 0, len(d.callbacks))
	for _, cb := range d.callbacks {
		outputs = append(outputs, cb.Output)
	}
	return outputs
}

// Affected returns the outputs subscribed to any of the changed inputs. No changed
// inputs means the initial render, which affects every output.
func (d *Dispatcher) Affected(changed []string) []string {
	if len(changed) == 0 {
		return d.Outputs()
	}

	var outputs []string
	for _, cb := range d.callbacks {
		for _, input := range cb.Inputs {
			if slices.Contains(changed, input) {
				outputs = append(outputs, cb.Output)
				break
			}
		}
	}
	return outputs
}

// Dispatch runs every callback affected by changed, in registration order, and stops at
// the first failure.
func (d *Dispatcher) Dispatch(ctx context.Context, state State, changed []string) ([]Update, error) {
	outputs := d.Affected(changed)
	updates := make([]Update, 0, len(outputs))

	for _, output := range outputs {
		fig, err := d.Render(ctx, output, state)
		if err != nil {
			return updates, err
		}
		updates = append(updates, Update{Output: output, Figure: fig})
	}
	return updates, nil
}

// Render computes a single output.
func (d *Dispatcher) Render(ctx context.Context, output string, state State) (models.Figure, error) {
	idx := slices.IndexFunc(d.callbacks, func(cb Callback) bool { return cb.Output == output })
	if idx < 0 {
		return models.Figure{}, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}

	state.Site = NormalizeSite(state.Site)

	start := time.Now()
	fig, err := d.callbacks[idx].Fn(ctx, d.source, state)
	if err != nil {
		logging.LogError(d.logger, "callback failed", err,
			slog.String("output", output),
			slog.String("component", "dashboard"))
		return models.Figure{}, fmt.Errorf("render %s: %w", output, err)
	}

	d.logger.Debug("callback finished",
		slog.String("output", output),
		slog.String("site", state.Site),
		slog.Float64("payload_low", state.Payload.Low),
		slog.Float64("payload_high", state.Payload.High),
		slog.Duration("duration", time.Since(start)),
		slog.String("component", "dashboard"))

	update := Update{Output: output, Figure: fig}
	for _, observe := range d.observers {
		observe(ctx, update)
	}
	return fig, nil
}
