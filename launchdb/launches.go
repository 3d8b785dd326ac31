package launchdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"launchdash.dev/internal/logging"
	"launchdash.dev/internal/models"
)

// ImportLaunches replaces the table contents with launches, keeping their order.
func (c *Client) ImportLaunches(ctx context.Context, launches []models.Launch) (err error) {
	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)
		if c.config.verbose {
			logging.LogOperation(c.logger, "launchdb_import_finished",
				slog.Int("rows", len(launches)),
				slog.Duration("duration", c.importRuntime),
				slog.String("component", "launchdb"))
		}
	}()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_launches")

	if _, err = tx.ExecContext(ctx, `DELETE FROM launches`); err != nil {
		return fmt.Errorf("error clearing launches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO launches (
			row_index, flight_number, launch_site, class,
			payload_mass_kg, booster_version, booster_version_category
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer logging.HandleDeferredError(&err, stmt.Close, c.logger, "close_insert_statement")

	for i, launch := range launches {
		_, err = stmt.ExecContext(ctx,
			i, launch.FlightNumber, launch.LaunchSite, launch.Class,
			launch.PayloadMassKg, launch.BoosterVersion, launch.BoosterVersionCategory,
		)
		if err != nil {
			return fmt.Errorf("error inserting launch row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// CountLaunches returns the number of stored rows.
func (c *Client) CountLaunches(ctx context.Context) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM launches`).Scan(&n)
	return n, err
}

// Sites returns the distinct launch sites in order of first appearance.
func (c *Client) Sites(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT launch_site FROM launches
		GROUP BY launch_site
		ORDER BY MIN(row_index)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	sites := []string{}
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// SuccessCountsBySite counts successful launches per site. Sites with no success are
// omitted.
func (c *Client) SuccessCountsBySite(ctx context.Context) ([]models.SiteCount, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT launch_site, COUNT(*) FROM launches
		WHERE class = ?
		GROUP BY launch_site
		ORDER BY MIN(row_index)`, models.OutcomeSuccess)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	counts := []models.SiteCount{}
	for rows.Next() {
		var sc models.SiteCount
		if err := rows.Scan(&sc.Site, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// OutcomeCountsForSite counts launches per outcome class at site, largest first.
func (c *Client) OutcomeCountsForSite(ctx context.Context, site string) ([]models.OutcomeCount, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT class, COUNT(*) FROM launches
		WHERE launch_site = ?
		GROUP BY class
		ORDER BY COUNT(*) DESC, class ASC`, site)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	counts := []models.OutcomeCount{}
	for rows.Next() {
		var oc models.OutcomeCount
		if err := rows.Scan(&oc.Class, &oc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, oc)
	}
	return counts, rows.Err()
}

// LaunchesInPayloadRange returns launches whose payload lies in [r.Low, r.High], limited
// to site unless site is models.AllSites.
func (c *Client) LaunchesInPayloadRange(ctx context.Context, site string, r models.PayloadRange) ([]models.Launch, error) {
	query := `
		SELECT flight_number, launch_site, class, payload_mass_kg,
			booster_version, booster_version_category
		FROM launches
		WHERE payload_mass_kg >= ? AND payload_mass_kg <= ?`
	args := []any{r.Low, r.High}
	if site != models.AllSites {
		query += ` AND launch_site = ?`
		args = append(args, site)
	}
	query += ` ORDER BY row_index`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	return scanLaunches(rows)
}

func scanLaunches(rows *sql.Rows) ([]models.Launch, error) {
	launches := []models.Launch{}
	for rows.Next() {
		var l models.Launch
		err := rows.Scan(&l.FlightNumber, &l.LaunchSite, &l.Class, &l.PayloadMassKg,
			&l.BoosterVersion, &l.BoosterVersionCategory)
		if err != nil {
			return nil, err
		}
		launches = append(launches, l)
	}
	return launches, rows.Err()
}
