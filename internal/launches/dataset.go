package launches

import (
	"context"
	"slices"

	"launchdash.dev/internal/models"
)

// Dataset is the immutable in-memory launch table. All queries return fresh slices.
type Dataset struct {
	launches   []models.Launch
	sites      []string
	minPayload float64
	maxPayload float64
}

// NewDataset copies launches into a Dataset.
func NewDataset(launches []models.Launch) *Dataset {
	ds := &Dataset{launches: slices.Clone(launches)}

	seen := make(map[string]bool)
	for i, l := range ds.launches {
		if !seen[l.LaunchSite] {
			seen[l.LaunchSite] = true
			ds.sites = append(ds.sites, l.LaunchSite)
		}
		if i == 0 || l.PayloadMassKg < ds.minPayload {
			ds.minPayload = l.PayloadMassKg
		}
		if i == 0 || l.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = l.PayloadMassKg
		}
	}

	return ds
}

func (ds *Dataset) Len() int {
	return len(ds.launches)
}

// Launches returns a copy of every row in file order.
func (ds *Dataset) Launches() []models.Launch {
	return slices.Clone(ds.launches)
}

// PayloadBounds returns the smallest and largest payload mass in the dataset.
func (ds *Dataset) PayloadBounds() models.PayloadRange {
	return models.PayloadRange{Low: ds.minPayload, High: ds.maxPayload}
}

// SiteNames returns the distinct launch sites in order of first appearance.
func (ds *Dataset) SiteNames() []string {
	return slices.Clone(ds.sites)
}

// HasSite reports whether any row was launched from site.
func (ds *Dataset) HasSite(site string) bool {
	return slices.Contains(ds.sites, site)
}

// BoosterCategories returns the distinct booster categories in order of first appearance.
func (ds *Dataset) BoosterCategories() []string {
	var categories []string
	for _, l := range ds.launches {
		if !slices.Contains(categories, l.BoosterVersionCategory) {
			categories = append(categories, l.BoosterVersionCategory)
		}
	}
	return categories
}

func (ds *Dataset) Sites(ctx context.Context) ([]string, error) {
	return ds.SiteNames(), ctx.Err()
}

// SuccessCountsBySite counts successful launches per site, ordered by each site's first
// successful row. Sites without a success are omitted.
func (ds *Dataset) SuccessCountsBySite(ctx context.Context) ([]models.SiteCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := []models.SiteCount{}
	position := make(map[string]int)
	for _, l := range ds.launches {
		if !l.Succeeded() {
			continue
		}
		i, ok := position[l.LaunchSite]
		if !ok {
			i = len(counts)
			position[l.LaunchSite] = i
			counts = append(counts, models.SiteCount{Site: l.LaunchSite})
		}
		counts[i].Count++
	}
	return counts, nil
}

// OutcomeCountsForSite counts launches per outcome at site, largest count first and
// failures before successes on a tie. Outcomes that never occur are omitted.
func (ds *Dataset) OutcomeCountsForSite(ctx context.Context, site string) ([]models.OutcomeCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var perClass [2]int
	for _, l := range ds.launches {
		if l.LaunchSite == site && (l.Class == models.OutcomeFailure || l.Class == models.OutcomeSuccess) {
			perClass[l.Class]++
		}
	}

	counts := []models.OutcomeCount{}
	for class, n := range perClass {
		if n > 0 {
			counts = append(counts, models.OutcomeCount{Class: class, Count: n})
		}
	}
	slices.SortStableFunc(counts, func(a, b models.OutcomeCount) int {
		return b.Count - a.Count
	})
	return counts, nil
}

// LaunchesInPayloadRange returns the rows with payload in r (inclusive), restricted to
// site unless site is models.AllSites.
func (ds *Dataset) LaunchesInPayloadRange(ctx context.Context, site string, r models.PayloadRange) ([]models.Launch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	launches := []models.Launch{}
	for _, l := range ds.launches {
		if !r.Contains(l.PayloadMassKg) {
			continue
		}
		if site != models.AllSites && l.LaunchSite != site {
			continue
		}
		launches = append(launches, l)
	}
	return launches, nil
}
