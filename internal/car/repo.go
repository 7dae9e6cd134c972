package car

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create 持久化车辆；ownerID 非空时在同一事务内建立归属，
// 任一步失败则整体回滚（不留半提交状态）。
func (r *Repo) Create(ctx context.Context, c *Car, ownerID *uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if ownerID != nil {
			return tx.Create(&Ownership{CustomerID: *ownerID, CarVIN: c.VIN}).Error
		}
		return nil
	})
}

func (r *Repo) FindByVIN(ctx context.Context, vin string) (*Car, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var c Car
	if err := r.db.WithContext(ctx).Where("vin = ?", vin).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateOwnership(ctx context.Context, o *Ownership) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return r.db.WithContext(ctx).Create(o).Error
}

// ListByOwner 返回客户名下全部车辆，顺序为存储层自然顺序。
func (r *Repo) ListByOwner(ctx context.Context, customerID uint) ([]Car, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var out []Car
	err := r.db.WithContext(ctx).
		Joins("JOIN owns ON owns.car_vin = cars.vin").
		Where("owns.customer_id = ?", customerID).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
