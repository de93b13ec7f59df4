package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"scoreworker/internal/logging"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// performanceViews are the materialized views derived from
// match_player_performance, base views first.
var performanceViews = []string{
	"mv_player_performance",
	"mv_player_role_performance",
	"mv_player_side_performance",
	"mv_agent_performance",
	"mv_team_performance",
}

// ViewRefresher refreshes the reporting views after a match is written.
type ViewRefresher struct {
	db    execer
	views []string
}

// NewViewRefresher creates a refresher for the standard performance views.
func NewViewRefresher(db execer) *ViewRefresher {
	return &ViewRefresher{db: db, views: performanceViews}
}

// RefreshAll refreshes every view. A failing view is logged and skipped; the
// call only fails when no view could be refreshed.
func (r *ViewRefresher) RefreshAll(ctx context.Context) error {
	logger := logging.Logger()
	startTime := time.Now()
	refreshed := 0

	for _, view := range r.views {
		if _, err := r.db.Exec(ctx, refreshStatement(view)); err != nil {
			logger.Warnf("failed to refresh view %s: %v", view, err)
			continue
		}
		refreshed++
	}

	logger.Debugf("view refresh completed: %d/%d succeeded in %v", refreshed, len(r.views), time.Since(startTime))

	if refreshed == 0 && len(r.views) > 0 {
		return fmt.Errorf("all %d view refreshes failed", len(r.views))
	}
	return nil
}

// refreshStatement builds a non-blocking refresh; every view carries a unique
// index so CONCURRENTLY is allowed.
func refreshStatement(view string) string {
	return "REFRESH MATERIALIZED VIEW CONCURRENTLY " + pgx.Identifier{view}.Sanitize()
}
