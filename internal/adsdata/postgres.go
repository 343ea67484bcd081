package adsdata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/adecos/ads-copilot/internal/pkg/logger"
)

// PostgresService reads performance data straight from the application's
// stats tables.
type PostgresService struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresService opens a connection pool against the given URL.
func NewPostgresService(databaseURL string) (*PostgresService, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresService{db: db, now: time.Now}, nil
}

// NewPostgresServiceWithDB wraps an existing handle (useful for testing).
func NewPostgresServiceWithDB(db *sql.DB) *PostgresService {
	return &PostgresService{db: db, now: time.Now}
}

// SetNowFunc overrides the clock used for time-range resolution.
func (s *PostgresService) SetNowFunc(now func() time.Time) { s.now = now }

// Close releases the connection pool.
func (s *PostgresService) Close() error { return s.db.Close() }

// QueryPerformance aggregates ad_stats rows per time bucket, or per
// bucket and entity when a breakdown is requested.
func (s *PostgresService) QueryPerformance(ctx context.Context, params PerformanceParams) (*PerformanceResult, error) {
	dr := ResolveTimeRange(params.TimeRange, s.now())

	bucket := "date::text"
	switch params.GroupBy {
	case "week":
		bucket = "to_char(date_trunc('week', date), 'YYYY-MM-DD')"
	case "month":
		bucket = "to_char(date_trunc('month', date), 'YYYY-MM-DD')"
	}

	entityExpr := "''"
	switch params.Breakdown {
	case "account":
		entityExpr = "account_name"
	case "campaign":
		entityExpr = "campaign_name"
	}

	query := fmt.Sprintf(`
		SELECT %s, %s,
		       COALESCE(SUM(clicks), 0), COALESCE(SUM(impressions), 0),
		       COALESCE(SUM(cost), 0), COALESCE(SUM(revenue), 0),
		       COALESCE(SUM(conversions), 0)
		FROM ad_stats
		WHERE date BETWEEN $1 AND $2`, bucket, entityExpr)
	args := []interface{}{dr.Start, dr.End}

	if params.Program != "" {
		query += fmt.Sprintf(" AND program ILIKE $%d", len(args)+1)
		args = append(args, "%"+params.Program+"%")
	}
	if len(params.Keywords) > 0 {
		clauses := make([]string, 0, len(params.Keywords))
		for _, kw := range params.Keywords {
			clauses = append(clauses, fmt.Sprintf("campaign_name ILIKE $%d", len(args)+1))
			args = append(args, "%"+kw+"%")
		}
		query += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	if entityExpr != "''" {
		query += " GROUP BY 1, 2 ORDER BY 1, 2"
	} else {
		query += " GROUP BY 1 ORDER BY 1"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance: %w", err)
	}
	defer rows.Close()

	var data []PerformanceRow
	for rows.Next() {
		var r PerformanceRow
		if err := rows.Scan(&r.Date, &r.Entity, &r.Clicks, &r.Impressions, &r.Cost, &r.Revenue, &r.Conversions); err != nil {
			return nil, fmt.Errorf("failed to scan performance row: %w", err)
		}
		data = append(data, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read performance rows: %w", err)
	}

	logger.Debug("performance query complete",
		"rows", len(data), "from", dr.Start, "to", dr.End, "breakdown", params.Breakdown)

	return &PerformanceResult{
		Data:       data,
		Summary:    ComputeSummary(data),
		DateRange:  dr,
		TimeRange:  params.TimeRange,
		IsGranular: entityExpr != "''",
	}, nil
}

// ListCampaigns returns campaigns, filtered by program and by a
// case-insensitive keyword match on the name when given.
func (s *PostgresService) ListCampaigns(ctx context.Context, params CampaignParams) ([]Campaign, error) {
	query := `
		SELECT id::text, name, status,
		       COALESCE(clicks, 0), COALESCE(cost, 0), COALESCE(revenue, 0)
		FROM campaigns
		WHERE 1=1`
	args := []interface{}{}
	if params.Program != "" {
		query += fmt.Sprintf(" AND program ILIKE $%d", len(args)+1)
		args = append(args, "%"+params.Program+"%")
	}
	if params.Keyword != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+params.Keyword+"%")
	}
	query += ` ORDER BY cost DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []Campaign
	for rows.Next() {
		var c Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.Clicks, &c.Cost, &c.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan campaign row: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// ListAccounts returns all ad accounts with activity counts.
func (s *PostgresService) ListAccounts(ctx context.Context) (*AccountList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, name, platform, status
		FROM ad_accounts
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	list := &AccountList{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Platform, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		list.Accounts = append(list.Accounts, a)
		list.TotalAccounts++
		if a.Status == "active" {
			list.ActiveAccounts++
		}
	}
	return list, rows.Err()
}
