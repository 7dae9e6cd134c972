package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

// sqlRecorder 截获 gorm 生成的（已带参）SQL，配合 DryRun 校验语句形状。
type sqlRecorder struct {
	last string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	r.last, _ = fc()
}

func dryRunRepo(t *testing.T) (*Repo, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true, Logger: rec})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return NewRepo(db), rec
}

func TestTopServicedQueryShape(t *testing.T) {
	repo, rec := dryRunRepo(t)
	ctx := context.Background()

	if _, err := repo.TopServiced(ctx, 2, false); err != nil {
		t.Fatalf("top serviced: %v", err)
	}
	q := rec.last
	if !strings.Contains(q, "ORDER BY services DESC") {
		t.Fatalf("expected descending order by service count, got:\n%s", q)
	}
	if !strings.Contains(q, "LIMIT 2") {
		t.Fatalf("expected limit bound to 2, got:\n%s", q)
	}
	if strings.Contains(q, "cr.rid IS NULL") {
		t.Fatalf("open-only filter must be absent by default, got:\n%s", q)
	}
}

func TestTopServicedOpenOnlyFiltersClosed(t *testing.T) {
	repo, rec := dryRunRepo(t)

	if _, err := repo.TopServiced(context.Background(), 3, true); err != nil {
		t.Fatalf("top serviced: %v", err)
	}
	q := rec.last
	if !strings.Contains(q, "LEFT JOIN closed_requests") || !strings.Contains(q, "cr.rid IS NULL") {
		t.Fatalf("expected anti-join on closed requests, got:\n%s", q)
	}
	if !strings.Contains(q, "LIMIT 3") {
		t.Fatalf("expected limit bound to 3, got:\n%s", q)
	}
}

func TestLatestBillsUnderBindsThreshold(t *testing.T) {
	repo, rec := dryRunRepo(t)

	if _, err := repo.LatestBillsUnder(context.Background(), 100); err != nil {
		t.Fatalf("latest bills: %v", err)
	}
	q := rec.last
	if !strings.Contains(q, "cr.bill < 100") {
		t.Fatalf("expected bill threshold bound to 100, got:\n%s", q)
	}
	if !strings.Contains(q, "MAX(cr2.date)") {
		t.Fatalf("expected per-customer latest close subquery, got:\n%s", q)
	}
}
