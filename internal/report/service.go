package report

import (
	"context"
	"fmt"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/middleware"
)

// 报表阈值。来自门店的固定业务口径，不开放配置。
const (
	billThreshold    = 100
	carThreshold     = 20
	classicYearBound = 1995
	odometerBound    = 50000
)

// Store 报表查询契约；*Repo 是生产实现。
type Store interface {
	LatestBillsUnder(ctx context.Context, threshold int) ([]CustomerBillRow, error)
	CarCountsOver(ctx context.Context, minCars int) ([]CustomerCarsRow, error)
	ClassicsWithLowOdometer(ctx context.Context, beforeYear, maxOdometer int) ([]CarRow, error)
	TopServiced(ctx context.Context, limit int, openOnly bool) ([]CarServicesRow, error)
	TotalsByCustomer(ctx context.Context) ([]CustomerTotalRow, error)
}

// Service 派生报表用例。纯读，无状态；聚合查询可挂熔断器，
// 存储持续出错时直接快速失败而不是压垮数据库。
type Service struct {
	store   Store
	breaker *middleware.CircuitBreaker
}

func NewService(store Store, breaker *middleware.CircuitBreaker) *Service {
	return &Service{store: store, breaker: breaker}
}

// guard 经熔断器执行查询（未配置熔断器时直接执行）。
func (s *Service) guard(ctx context.Context, fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	return s.breaker.Call(ctx, fn)
}

// CustomersWithSmallRecentBill 最近一次关单账单低于 100 的客户。
func (s *Service) CustomersWithSmallRecentBill(ctx context.Context) ([]CustomerBillRow, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	var rows []CustomerBillRow
	err := s.guard(ctx, func() (e error) {
		rows, e = s.store.LatestBillsUnder(ctx, billThreshold)
		return e
	})
	return rows, err
}

// CarCollectors 名下车辆超过 20 辆的客户。
func (s *Service) CarCollectors(ctx context.Context) ([]CustomerCarsRow, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	var rows []CustomerCarsRow
	err := s.guard(ctx, func() (e error) {
		rows, e = s.store.CarCountsOver(ctx, carThreshold)
		return e
	})
	return rows, err
}

// LowMileageClassics 1995 年前出厂、且有工单记录过不高于 50000
// 里程读数的车辆。口径：任何一条工单的读数达标即可（取 <=）。
func (s *Service) LowMileageClassics(ctx context.Context) ([]CarRow, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	var rows []CarRow
	err := s.guard(ctx, func() (e error) {
		rows, e = s.store.ClassicsWithLowOdometer(ctx, classicYearBound, odometerBound)
		return e
	})
	return rows, err
}

// TopServicedCars 工单数前 k 的车辆；k 必须为正整数，否则 invalid_limit。
// openOnly 时只统计尚未关单的工单。
func (s *Service) TopServicedCars(ctx context.Context, k int, openOnly bool) ([]CarServicesRow, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if k <= 0 {
		return nil, apperr.Validationf(apperr.CodeInvalidLimit, "k must be a positive integer")
	}
	var rows []CarServicesRow
	err := s.guard(ctx, func() (e error) {
		rows, e = s.store.TopServiced(ctx, k, openOnly)
		return e
	})
	return rows, err
}

// CustomersByTotalBill 客户按累计账单降序。
func (s *Service) CustomersByTotalBill(ctx context.Context) ([]CustomerTotalRow, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	var rows []CustomerTotalRow
	err := s.guard(ctx, func() (e error) {
		rows, e = s.store.TotalsByCustomer(ctx)
		return e
	})
	return rows, err
}
