package dashboard

import (
	"context"
	"fmt"

	"launchdash.dev/internal/models"
)

const (
	AllSitesPieTitle = "Total Successful Launches by Site"
	PlaceholderTitle = "No Specific Site Selected"
	PlaceholderLabel = "Select a specific site to view"
	PayloadAxisLabel = "Payload Mass (kg)"
	OutcomeAxisLabel = "Launch Outcome"
)

// AllSitesSuccessPie shares the successful launches out by site.
func AllSitesSuccessPie(ctx context.Context, src Source) (models.Figure, error) {
	counts, err := src.SuccessCountsBySite(ctx)
	if err != nil {
		return models.Figure{}, fmt.Errorf("success counts by site: %w", err)
	}

	slices := make([]models.PieSlice, 0, len(counts))
	for _, c := range counts {
		slices = append(slices, models.PieSlice{Label: c.Site, Value: float64(c.Count)})
	}

	return models.Figure{
		ID:     models.AllSitesPieChartID,
		Kind:   models.FigurePie,
		Title:  AllSitesPieTitle,
		Slices: slices,
	}, nil
}

// SiteOutcomePie splits one site's launches into successes and failures. AllSites
// yields a fixed placeholder.
func SiteOutcomePie(ctx context.Context, src Source, site string) (models.Figure, error) {
	site = NormalizeSite(site)
	if site == models.AllSites {
		return placeholderPie(), nil
	}

	counts, err := src.OutcomeCountsForSite(ctx, site)
	if err != nil {
		return models.Figure{}, fmt.Errorf("outcome counts for %q: %w", site, err)
	}

	slices := make([]models.PieSlice, 0, len(counts))
	for _, c := range counts {
		slices = append(slices, models.PieSlice{Label: c.Label(), Value: float64(c.Count)})
	}

	return models.Figure{
		ID:     models.SitePieChartID,
		Kind:   models.FigurePie,
		Title:  fmt.Sprintf("Success vs. Failure for %s", site),
		Slices: slices,
	}, nil
}

func placeholderPie() models.Figure {
	return models.Figure{
		ID:     models.SitePieChartID,
		Kind:   models.FigurePie,
		Title:  PlaceholderTitle,
		Slices: []models.PieSlice{{Label: PlaceholderLabel, Value: 1}},
	}
}

// PayloadOutcomeScatter plots outcome against payload for launches in r, one series
// per booster category.
func PayloadOutcomeScatter(ctx context.Context, src Source, site string, r models.PayloadRange) (models.Figure, error) {
	site = NormalizeSite(site)

	launches, err := src.LaunchesInPayloadRange(ctx, site, r)
	if err != nil {
		return models.Figure{}, fmt.Errorf("launches in payload range: %w", err)
	}

	series := []models.ScatterSeries{}
	index := make(map[string]int)
	for _, l := range launches {
		i, ok := index[l.BoosterVersionCategory]
		if !ok {
			i = len(series)
			index[l.BoosterVersionCategory] = i
			series = append(series, models.ScatterSeries{Name: l.BoosterVersionCategory, Points: []models.ScatterPoint{}})
		}
		series[i].Points = append(series[i].Points, models.ScatterPoint{
			X:     l.PayloadMassKg,
			Y:     float64(l.Class),
			Label: l.BoosterVersion,
		})
	}

	return models.Figure{
		ID:     models.PayloadScatterChartID,
		Kind:   models.FigureScatter,
		Title:  fmt.Sprintf("Success by Payload for %s", siteTitle(site)),
		XLabel: PayloadAxisLabel,
		YLabel: OutcomeAxisLabel,
		Series: series,
	}, nil
}

// NormalizeSite maps an empty selection to AllSites.
func NormalizeSite(site string) string {
	if site == "" {
		return models.AllSites
	}
	return site
}

func siteTitle(site string) string {
	if site == models.AllSites {
		return models.AllSitesLabel
	}
	return site
}
