package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeExecer struct {
	statements []string
	failing    map[string]bool
}

func (f *fakeExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.statements = append(f.statements, sql)
	if f.failing[sql] {
		return pgconn.CommandTag{}, errors.New("view does not exist")
	}
	return pgconn.CommandTag{}, nil
}

func TestRefreshStatementQuotesView(t *testing.T) {
	got := refreshStatement("mv_team_performance")
	want := `REFRESH MATERIALIZED VIEW CONCURRENTLY "mv_team_performance"`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRefreshAllContinuesPastFailures(t *testing.T) {
	fe := &fakeExecer{failing: map[string]bool{refreshStatement("mv_player_role_performance"): true}}
	r := NewViewRefresher(fe)

	if err := r.RefreshAll(context.Background()); err != nil {
		t.Fatalf("expected partial failure to be tolerated, got %v", err)
	}
	if len(fe.statements) != len(performanceViews) {
		t.Errorf("expected every view to be attempted, got %d", len(fe.statements))
	}
}

func TestRefreshAllFailsWhenNothingRefreshed(t *testing.T) {
	failing := make(map[string]bool)
	for _, v := range performanceViews {
		failing[refreshStatement(v)] = true
	}
	r := NewViewRefresher(&fakeExecer{failing: failing})

	if err := r.RefreshAll(context.Background()); err == nil {
		t.Error("expected error when every refresh fails")
	}
}
