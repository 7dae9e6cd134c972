package request

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

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, sr *ServiceRequest) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(sr).Error
}

func (r *Repo) FindByRID(ctx context.Context, rid uint) (*ServiceRequest, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var sr ServiceRequest
	if err := db.Where("rid = ?", rid).First(&sr).Error; err != nil {
		return nil, err
	}
	return &sr, nil
}

// CreateClosed 插入关单行；rid 主键冲突时由驱动翻译为 gorm.ErrDuplicatedKey。
func (r *Repo) CreateClosed(ctx context.Context, cr *ClosedRequest) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(cr).Error
}

func (r *Repo) FindClosedByRID(ctx context.Context, rid uint) (*ClosedRequest, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var cr ClosedRequest
	if err := db.Where("rid = ?", rid).First(&cr).Error; err != nil {
		return nil, err
	}
	return &cr, nil
}
