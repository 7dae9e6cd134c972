package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/middleware"
)

// fakeStore 记录收到的阈值并返回固定结果。
type fakeStore struct {
	gotThreshold int
	gotMinCars   int
	gotYear      int
	gotOdometer  int
	gotLimit     int
	gotOpenOnly  bool
	err          error
	bills        []CustomerBillRow
	topServiced  []CarServicesRow
}

func (f *fakeStore) LatestBillsUnder(_ context.Context, threshold int) ([]CustomerBillRow, error) {
	f.gotThreshold = threshold
	return f.bills, f.err
}

func (f *fakeStore) CarCountsOver(_ context.Context, minCars int) ([]CustomerCarsRow, error) {
	f.gotMinCars = minCars
	return nil, f.err
}

func (f *fakeStore) ClassicsWithLowOdometer(_ context.Context, beforeYear, maxOdometer int) ([]CarRow, error) {
	f.gotYear, f.gotOdometer = beforeYear, maxOdometer
	return nil, f.err
}

func (f *fakeStore) TopServiced(_ context.Context, limit int, openOnly bool) ([]CarServicesRow, error) {
	f.gotLimit, f.gotOpenOnly = limit, openOnly
	return f.topServiced, f.err
}

func (f *fakeStore) TotalsByCustomer(_ context.Context) ([]CustomerTotalRow, error) {
	return nil, f.err
}

func TestFixedThresholds(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)
	ctx := context.Background()

	if _, err := svc.CustomersWithSmallRecentBill(ctx); err != nil {
		t.Fatalf("CustomersWithSmallRecentBill: %v", err)
	}
	if store.gotThreshold != 100 {
		t.Fatalf("expected bill threshold 100, got %d", store.gotThreshold)
	}

	if _, err := svc.CarCollectors(ctx); err != nil {
		t.Fatalf("CarCollectors: %v", err)
	}
	if store.gotMinCars != 20 {
		t.Fatalf("expected car threshold 20, got %d", store.gotMinCars)
	}

	if _, err := svc.LowMileageClassics(ctx); err != nil {
		t.Fatalf("LowMileageClassics: %v", err)
	}
	if store.gotYear != 1995 || store.gotOdometer != 50000 {
		t.Fatalf("expected bounds 1995/50000, got %d/%d", store.gotYear, store.gotOdometer)
	}
}

func TestTopServicedCarsLimit(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)
	ctx := context.Background()

	for _, k := range []int{0, -3} {
		if _, err := svc.TopServicedCars(ctx, k, false); !apperr.IsCode(err, apperr.CodeInvalidLimit) {
			t.Fatalf("k=%d: expected invalid_limit, got %v", k, err)
		}
	}
	if store.gotLimit != 0 {
		t.Fatalf("store must not be hit on invalid k")
	}

	store.topServiced = []CarServicesRow{
		{VIN: "AAAAAAAAAAAAAAAA", Services: 5},
		{VIN: "BBBBBBBBBBBBBBBB", Services: 3},
	}
	rows, err := svc.TopServicedCars(ctx, 2, true)
	if err != nil {
		t.Fatalf("TopServicedCars: %v", err)
	}
	if store.gotLimit != 2 || !store.gotOpenOnly {
		t.Fatalf("expected limit=2 openOnly=true, got %d/%v", store.gotLimit, store.gotOpenOnly)
	}
	if len(rows) != 2 || rows[0].Services < rows[1].Services {
		t.Fatalf("expected descending rows, got %+v", rows)
	}
}

func TestSmallRecentBillScenario(t *testing.T) {
	// Jane 最近一次账单 150：不应出现在报表；换成 80 则应出现
	store := &fakeStore{}
	svc := NewService(store, nil)
	ctx := context.Background()

	rows, err := svc.CustomersWithSmallRecentBill(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected Jane (bill=150) excluded, got %+v", rows)
	}

	store.bills = []CustomerBillRow{{CustomerID: 1, FName: "Jane", LName: "Doe", Bill: 80, ClosedAt: time.Now()}}
	rows, err = svc.CustomersWithSmallRecentBill(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 || rows[0].Bill != 80 {
		t.Fatalf("expected Jane (bill=80) included, got %+v", rows)
	}
}

func TestBreakerShortCircuits(t *testing.T) {
	store := &fakeStore{err: errors.New("db gone")}
	breaker := middleware.NewCircuitBreaker("report store", 1, time.Minute, 1)
	svc := NewService(store, breaker)
	ctx := context.Background()

	if _, err := svc.CustomersByTotalBill(ctx); err == nil {
		t.Fatalf("expected store error")
	}
	// 熔断已打开：后续查询不再落到存储层
	store.err = nil
	if _, err := svc.CustomersByTotalBill(ctx); !apperr.IsCode(err, apperr.CodeStoreUnavailable) {
		t.Fatalf("expected open breaker to fail fast with store_unavailable, got %v", err)
	}
}
