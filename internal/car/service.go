package car

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"gorm.io/gorm"
)

// Store 车辆/归属存储契约。
// 约定：VIN 冲突返回 gorm.ErrDuplicatedKey，未命中返回 gorm.ErrRecordNotFound。
type Store interface {
	Create(ctx context.Context, c *Car, ownerID *uint) error
	FindByVIN(ctx context.Context, vin string) (*Car, error)
	CreateOwnership(ctx context.Context, o *Ownership) error
	ListByOwner(ctx context.Context, customerID uint) ([]Car, error)
}

// CustomerDirectory 归属建立前的客户存在性校验入口。
type CustomerDirectory interface {
	Get(ctx context.Context, id uint) (*customer.Customer, error)
}

// Service 车辆登记与归属关系用例。
type Service struct {
	store     Store
	customers CustomerDirectory
}

func NewService(store Store, customers CustomerDirectory) *Service {
	return &Service{store: store, customers: customers}
}

// AddInput 新建车辆的入参。Year 保留原始串，便于核心自己报出
// not_an_integer / invalid_year。OwnerID 非空时同事务建立归属。
type AddInput struct {
	VIN     string
	Make    string
	Model   string
	Year    string
	OwnerID *uint
}

// Add 校验并持久化新车辆；VIN 重复返回 duplicate_vin 冲突。
func (s *Service) Add(ctx context.Context, in AddInput) (*Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	in.VIN = strings.TrimSpace(in.VIN)
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.Year = strings.TrimSpace(in.Year)

	// 长度一律按字符（rune）计
	if len([]rune(in.VIN)) != 16 {
		return nil, apperr.Validationf(apperr.CodeInvalidField, "vin must be exactly 16 characters")
	}
	if in.Make == "" || len([]rune(in.Make)) > 32 {
		return nil, apperr.Validationf(apperr.CodeInvalidField, "make must be between 1 and 32 characters")
	}
	if in.Model == "" || len([]rune(in.Model)) > 32 {
		return nil, apperr.Validationf(apperr.CodeInvalidField, "model must be between 1 and 32 characters")
	}
	year, err := ParseYear(in.Year)
	if err != nil {
		return nil, err
	}

	if in.OwnerID != nil {
		// 先确认归属客户存在，避免车辆落库后归属失败回滚
		if _, err := s.customers.Get(ctx, *in.OwnerID); err != nil {
			return nil, err
		}
	}

	c := &Car{VIN: in.VIN, Make: in.Make, Model: in.Model, Year: year}
	if err := s.store.Create(ctx, c, in.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf(apperr.CodeDuplicateVin, "vin %s already exists", in.VIN)
		}
		return nil, fmt.Errorf("create car: %w", err)
	}
	return c, nil
}

// LinkOwner 为已有车辆建立归属；双方都必须已存在。
func (s *Service) LinkOwner(ctx context.Context, customerID uint, vin string) (*Ownership, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, vin); err != nil {
		return nil, err
	}
	o := &Ownership{CustomerID: customerID, CarVIN: vin}
	if err := s.store.CreateOwnership(ctx, o); err != nil {
		return nil, fmt.Errorf("create ownership: %w", err)
	}
	return o, nil
}

// Get 按 VIN 查询车辆；未找到返回 unknown_car。
func (s *Service) Get(ctx context.Context, vin string) (*Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByVIN(ctx, vin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf(apperr.CodeUnknownCar, "car %s not found", vin)
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return c, nil
}

// OwnedBy 客户名下全部车辆（可能为空），顺序为存储层自然顺序。
func (s *Service) OwnedBy(ctx context.Context, customerID uint) ([]Car, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.store.ListByOwner(ctx, customerID)
}

// ParseYear 年份：必须是 4 位整数且不早于 1970。
func ParseYear(raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validationf(apperr.CodeNotAnInteger, "year must be an integer")
	}
	if year < 1000 || year > 9999 || year < 1970 {
		return 0, apperr.Validationf(apperr.CodeInvalidYear, "year must be a 4-digit year of 1970 or newer")
	}
	return year, nil
}
