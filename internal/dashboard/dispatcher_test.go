package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"launchdash.dev/internal/models"
)

func newFixtureDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return NewDispatcher(fixtureSources(t)[0].source, nil)
}

func TestDispatcherAffected(t *testing.T) {
	d := newFixtureDispatcher(t)

	tests := []struct {
		name     string
		changed  []string
		expected []string
	}{
		{
			name:     "initial render",
			changed:  nil,
			expected: []string{models.AllSitesPieChartID, models.SitePieChartID, models.PayloadScatterChartID},
		},
		{
			name:     "dropdown",
			changed:  []string{models.SiteDropdownID},
			expected: []string{models.AllSitesPieChartID, models.SitePieChartID, models.PayloadScatterChartID},
		},
		{
			name:     "slider",
			changed:  []string{models.PayloadSliderID},
			expected: []string{models.PayloadScatterChartID},
		},
		{
			name:     "both",
			changed:  []string{models.PayloadSliderID, models.SiteDropdownID},
			expected: []string{models.AllSitesPieChartID, models.SitePieChartID, models.PayloadScatterChartID},
		},
		{
			name:     "unknown input",
			changed:  []string{"color-picker"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Affected(tt.changed))
		})
	}
}

func TestDispatcherDispatch(t *testing.T) {
	d := newFixtureDispatcher(t)
	ctx := context.Background()

	state := State{Site: "KSC LC-39A", Payload: models.PayloadRange{Low: 2000, High: 6000}}

	updates, err := d.Dispatch(ctx, state, []string{models.PayloadSliderID})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, models.PayloadScatterChartID, updates[0].Output)
	assert.Equal(t, 11, updates[0].Figure.PointCount())

	updates, err = d.Dispatch(ctx, state, nil)
	require.NoError(t, err)
	require.Len(t, updates, 3)
	for i, output := range d.Outputs() {
		assert.Equal(t, output, updates[i].Output)
		assert.Equal(t, output, updates[i].Figure.ID)
	}
}

func TestDispatcherNormalizesEmptySite(t *testing.T) {
	d := newFixtureDispatcher(t)

	fig, err := d.Render(context.Background(), models.SitePieChartID, State{})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderTitle, fig.Title)
}

func TestDispatcherUnknownOutput(t *testing.T) {
	d := newFixtureDispatcher(t)

	_, err := d.Render(context.Background(), "launch-map", State{})
	assert.ErrorIs(t, err, ErrUnknownOutput)
}

func TestDispatcherRegister(t *testing.T) {
	d := newFixtureDispatcher(t)

	err := d.Register(Callback{Output: models.SitePieChartID, Inputs: []string{models.SiteDropdownID}, Fn: DefaultCallbacks()[1].Fn})
	assert.ErrorIs(t, err, ErrDuplicateOutput)

	err = d.Register(Callback{Output: "no-fn"})
	assert.Error(t, err)

	err = d.Register(Callback{
		Output: "site-count",
		Inputs: []string{models.PayloadSliderID},
		Fn: func(ctx context.Context, src Source, _ State) (models.Figure, error) {
			sites, err := src.Sites(ctx)
			if err != nil {
				return models.Figure{}, err
			}
			return models.Figure{ID: "site-count", Kind: models.FigurePie, Slices: []models.PieSlice{{Label: "sites", Value: float64(len(sites))}}}, nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{models.PayloadScatterChartID, "site-count"}, d.Affected([]string{models.PayloadSliderID}))

	fig, err := d.Render(context.Background(), "site-count", State{})
	require.NoError(t, err)
	assert.Equal(t, float64(4), fig.Total())
}

func TestDispatcherMustRegister(t *testing.T) {
	var d *Dispatcher
	require.NotPanics(t, func() { d = newFixtureDispatcher(t) })
	assert.Equal(t, []string{
		models.AllSitesPieChartID,
		models.SitePieChartID,
		models.PayloadScatterChartID,
	}, d.Affected([]string{models.SiteDropdownID}))

	assert.PanicsWithError(t, ErrDuplicateOutput.Error()+": "+models.SitePieChartID, func() {
		d.MustRegister(DefaultCallbacks()[1])
	})
	assert.Panics(t, func() { d.MustRegister(Callback{Output: "no-fn"}) })
}

func TestDispatcherStopsAtFirstFailure(t *testing.T) {
	d := newFixtureDispatcher(t)
	boom := errors.New("boom")

	require.NoError(t, d.Register(Callback{
		Output: "broken",
		Inputs: []string{models.SiteDropdownID},
		Fn: func(context.Context, Source, State) (models.Figure, error) {
			return models.Figure{}, boom
		},
	}))

	updates, err := d.Dispatch(context.Background(), State{}, []string{models.SiteDropdownID})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, updates, 3)
}

func TestDispatcherObservers(t *testing.T) {
	d := newFixtureDispatcher(t)

	var seen []string
	d.Observe(func(_ context.Context, u Update) {
		seen = append(seen, u.Output)
	})

	_, err := d.Dispatch(context.Background(), State{Site: models.AllSites, Payload: models.PayloadRange{High: 10000}}, nil)
	require.NoError(t, err)
	assert.Equal(t, d.Outputs(), seen)
}
