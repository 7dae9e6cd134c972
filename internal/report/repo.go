package report

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repo 报表查询的生产实现。全部使用参数化 SQL，只读。
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

// LatestBillsUnder 每个客户取最近一次关单，账单低于 threshold 的行。
func (r *Repo) LatestBillsUnder(ctx context.Context, threshold int) ([]CustomerBillRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []CustomerBillRow
	err := db.Raw(`
		SELECT c.id AS customer_id, c.fname, c.lname, cr.bill, cr.date AS closed_at
		FROM customers c
		JOIN service_requests sr ON sr.customer_id = c.id
		JOIN closed_requests cr ON cr.rid = sr.rid
		WHERE cr.date = (
			SELECT MAX(cr2.date)
			FROM closed_requests cr2
			JOIN service_requests sr2 ON sr2.rid = cr2.rid
			WHERE sr2.customer_id = c.id
		)
		AND cr.bill < ?`, threshold).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CarCountsOver 名下车辆数超过 minCars 的客户。
func (r *Repo) CarCountsOver(ctx context.Context, minCars int) ([]CustomerCarsRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []CustomerCarsRow
	err := db.Raw(`
		SELECT c.id AS customer_id, c.fname, c.lname, COUNT(o.id) AS cars
		FROM customers c
		JOIN owns o ON o.customer_id = c.id
		GROUP BY c.id, c.fname, c.lname
		HAVING COUNT(o.id) > ?`, minCars).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ClassicsWithLowOdometer 年份早于 beforeYear 且在某张工单里记录过
// 不高于 maxOdometer 里程读数的车辆（去重）。
func (r *Repo) ClassicsWithLowOdometer(ctx context.Context, beforeYear, maxOdometer int) ([]CarRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []CarRow
	err := db.Raw(`
		SELECT DISTINCT k.vin, k.make, k.model, k.year
		FROM cars k
		JOIN service_requests sr ON sr.car_vin = k.vin
		WHERE k.year < ? AND sr.odometer <= ?`, beforeYear, maxOdometer).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopServiced 工单数最多的前 limit 辆车，按数量降序。
// 并列时顺序不做保证（随存储层自然顺序）。openOnly 时只统计未关单的工单。
func (r *Repo) TopServiced(ctx context.Context, limit int, openOnly bool) ([]CarServicesRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	q := `
		SELECT k.vin, k.make, k.model, k.year, COUNT(sr.rid) AS services
		FROM cars k
		JOIN service_requests sr ON sr.car_vin = k.vin
		LEFT JOIN closed_requests cr ON cr.rid = sr.rid`
	if openOnly {
		q += `
		WHERE cr.rid IS NULL`
	}
	q += `
		GROUP BY k.vin, k.make, k.model, k.year
		ORDER BY services DESC
		LIMIT ?`

	var rows []CarServicesRow
	if err := db.Raw(q, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalsByCustomer 客户按累计账单降序。
func (r *Repo) TotalsByCustomer(ctx context.Context) ([]CustomerTotalRow, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var rows []CustomerTotalRow
	err := db.Raw(`
		SELECT c.id AS customer_id, c.fname, c.lname, SUM(cr.bill) AS total
		FROM customers c
		JOIN service_requests sr ON sr.customer_id = c.id
		JOIN closed_requests cr ON cr.rid = sr.rid
		GROUP BY c.id, c.fname, c.lname
		ORDER BY total DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
