package dashboard

import (
	"context"

	"launchdash.dev/internal/models"
)

// Source is the read-only query surface the callbacks are computed from. Both the
// in-memory dataset and the SQLite mirror implement it.
type Source interface {
	Sites(ctx context.Context) ([]string, error)
	SuccessCountsBySite(ctx context.Context) ([]models.SiteCount, error)
	OutcomeCountsForSite(ctx context.Context, site string) ([]models.OutcomeCount, error)
	LaunchesInPayloadRange(ctx context.Context, site string, r models.PayloadRange) ([]models.Launch, error)
}
