package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MechanicShop/MechanicShop/internal/car"
	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"github.com/MechanicShop/MechanicShop/internal/mechanic"
	"gorm.io/gorm"
)

// Store 工单存储契约。
// 约定：未命中返回 gorm.ErrRecordNotFound；
// 关单行主键冲突返回 gorm.ErrDuplicatedKey。
type Store interface {
	Create(ctx context.Context, sr *ServiceRequest) error
	FindByRID(ctx context.Context, rid uint) (*ServiceRequest, error)
	CreateClosed(ctx context.Context, cr *ClosedRequest) error
	FindClosedByRID(ctx context.Context, rid uint) (*ClosedRequest, error)
}

// CustomerDirectory / CarDirectory / MechanicDirectory
// 开单 / 关单前的引用存在性校验入口，由各自领域的 Service 实现。
type CustomerDirectory interface {
	Get(ctx context.Context, id uint) (*customer.Customer, error)
}

type CarDirectory interface {
	Get(ctx context.Context, vin string) (*car.Car, error)
}

type MechanicDirectory interface {
	Get(ctx context.Context, id uint) (*mechanic.Mechanic, error)
}

// Service 工单生命周期用例（开单 / 关单）。
type Service struct {
	store     Store
	customers CustomerDirectory
	cars      CarDirectory
	mechanics MechanicDirectory
	now       func() time.Time
}

func NewService(store Store, customers CustomerDirectory, cars CarDirectory, mechanics MechanicDirectory) *Service {
	return &Service{
		store:     store,
		customers: customers,
		cars:      cars,
		mechanics: mechanics,
		now:       time.Now,
	}
}

// OpenInput 开单入参。customerID / carVIN 默认已由解析层确定，
// 这里只在落库前做最后一道存在性校验。
type OpenInput struct {
	CustomerID uint
	CarVIN     string
	Odometer   int
	Complaint  string
}

// Open 开单：校验里程与投诉内容，开单时间取当前时刻，初始状态 open。
func (s *Service) Open(ctx context.Context, in OpenInput) (*ServiceRequest, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if in.Odometer <= 0 {
		return nil, apperr.Validationf(apperr.CodeInvalidOdometer, "odometer must be a positive integer")
	}
	in.Complaint = strings.TrimSpace(in.Complaint)
	if in.Complaint == "" {
		return nil, apperr.Validationf(apperr.CodeEmptyComplaint, "complaint must not be empty")
	}

	// 引用完整性：落库时客户与车辆必须仍然存在
	if _, err := s.customers.Get(ctx, in.CustomerID); err != nil {
		return nil, integrityOf(err, apperr.CodeUnknownCustomer)
	}
	if _, err := s.cars.Get(ctx, in.CarVIN); err != nil {
		return nil, integrityOf(err, apperr.CodeUnknownCar)
	}

	sr := &ServiceRequest{
		CustomerID: in.CustomerID,
		CarVIN:     in.CarVIN,
		Date:       s.now(),
		Odometer:   in.Odometer,
		Complaint:  in.Complaint,
	}
	if err := s.store.Create(ctx, sr); err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}
	return sr, nil
}

// CloseInput 关单入参。
type CloseInput struct {
	RID        uint
	MechanicID int // 保留原始符号，<=0 直接报 invalid_mechanic_id
	Comment    string
	Bill       int
}

// Close 关单：工单从 open 流转到 closed，终态不可回退。
// 重复关单既有状态机预检，也有关单行主键冲突兜底（并发下以后者为准）。
func (s *Service) Close(ctx context.Context, in CloseInput) (*ClosedRequest, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	if in.MechanicID <= 0 {
		return nil, apperr.Validationf(apperr.CodeInvalidMechanicID, "mechanic id must be a positive integer")
	}
	if in.Bill <= 0 {
		return nil, apperr.Validationf(apperr.CodeInvalidBill, "bill must be a positive integer")
	}

	if _, err := s.store.FindByRID(ctx, in.RID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf(apperr.CodeUnknownRequest, "service request %d not found", in.RID)
		}
		return nil, fmt.Errorf("find service request: %w", err)
	}
	if _, err := s.mechanics.Get(ctx, uint(in.MechanicID)); err != nil {
		return nil, err
	}

	// 状态机预检：已有关单行说明当前状态是 closed，不允许再流转
	from, err := s.statusOf(ctx, in.RID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(from, StatusClosed) {
		return nil, apperr.Conflictf(apperr.CodeAlreadyClosed, "service request %d is already closed", in.RID)
	}

	cr := &ClosedRequest{
		RID:     in.RID,
		MID:     uint(in.MechanicID),
		Date:    s.now(),
		Comment: strings.TrimSpace(in.Comment),
		Bill:    in.Bill,
	}
	if err := s.store.CreateClosed(ctx, cr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf(apperr.CodeAlreadyClosed, "service request %d is already closed", in.RID)
		}
		return nil, fmt.Errorf("create closed request: %w", err)
	}
	return cr, nil
}

// Get 按 rid 查询工单；未找到返回 unknown_request。
func (s *Service) Get(ctx context.Context, rid uint) (*ServiceRequest, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	sr, err := s.store.FindByRID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf(apperr.CodeUnknownRequest, "service request %d not found", rid)
		}
		return nil, fmt.Errorf("find service request: %w", err)
	}
	return sr, nil
}

// StatusOf 查询工单当前状态（open / closed）。
func (s *Service) StatusOf(ctx context.Context, rid uint) (Status, error) {
	if _, err := s.Get(ctx, rid); err != nil {
		return "", err
	}
	return s.statusOf(ctx, rid)
}

func (s *Service) statusOf(ctx context.Context, rid uint) (Status, error) {
	_, err := s.store.FindClosedByRID(ctx, rid)
	if err == nil {
		return StatusClosed, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StatusOpen, nil
	}
	return "", fmt.Errorf("find closed request: %w", err)
}

// integrityOf 把“未找到”升级为完整性错误：开单层已经假定引用有效，
// 此时引用失效属于 IntegrityError 而非普通 NotFound。
func integrityOf(err error, code string) error {
	if apperr.KindOf(err) == apperr.KindNotFound {
		return apperr.Integrity(code, err)
	}
	return err
}
