// Package resolve 把用户给出的“部分键”（姓氏、编号）解析成确定的实体身份。
// 每一步都是返回结果的独立小步骤：候选列表 -> 按下标消歧 -> 必要时新建，
// 所有提示 / 重试循环留在交互层。
package resolve

import (
	"context"
	"fmt"

	"github.com/MechanicShop/MechanicShop/internal/car"
	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"github.com/MechanicShop/MechanicShop/internal/mechanic"
	"github.com/MechanicShop/MechanicShop/internal/request"
)

// CustomerSource / CarSource / MechanicSource / RequestSource
// 解析器对各领域服务的只读依赖。
type CustomerSource interface {
	ByLastName(ctx context.Context, lname string) ([]customer.Customer, error)
	Get(ctx context.Context, id uint) (*customer.Customer, error)
}

type CarSource interface {
	OwnedBy(ctx context.Context, customerID uint) ([]car.Car, error)
}

type MechanicSource interface {
	Get(ctx context.Context, id uint) (*mechanic.Mechanic, error)
}

type RequestSource interface {
	Get(ctx context.Context, rid uint) (*request.ServiceRequest, error)
}

// Resolver 身份与关联解析器。除显式的 create 回调外只读。
type Resolver struct {
	customers CustomerSource
	cars      CarSource
	mechanics MechanicSource
	requests  RequestSource
}

func NewResolver(customers CustomerSource, cars CarSource, mechanics MechanicSource, requests RequestSource) *Resolver {
	return &Resolver{customers: customers, cars: cars, mechanics: mechanics, requests: requests}
}

// CustomerCandidates 按姓氏返回候选客户（可能为空），顺序为存储层自然顺序。
func (r *Resolver) CustomerCandidates(ctx context.Context, lastName string) ([]customer.Customer, error) {
	if r == nil || r.customers == nil {
		return nil, fmt.Errorf("resolver not initialized")
	}
	return r.customers.ByLastName(ctx, lastName)
}

// PickCustomer 按下标在候选列表中消歧；越界返回 invalid_selection。
func PickCustomer(candidates []customer.Customer, idx int) (*customer.Customer, error) {
	if idx < 0 || idx >= len(candidates) {
		return nil, apperr.Validationf(apperr.CodeInvalidSelection, "selection %d out of range [0, %d)", idx, len(candidates))
	}
	c := candidates[idx]
	return &c, nil
}

// CreateCustomerFunc 零命中时的新建回调，由交互层实现（提示录入字段）。
type CreateCustomerFunc func(ctx context.Context) (*customer.Customer, error)

// OrCreateCustomer 解析或新建客户：
// - 零命中：调用 create 新建，created = true
// - 唯一命中：直接返回
// - 多命中：返回候选列表，调用方用 PickCustomer 消歧后重新进入流程
func (r *Resolver) OrCreateCustomer(ctx context.Context, lastName string, create CreateCustomerFunc) (c *customer.Customer, created bool, candidates []customer.Customer, err error) {
	candidates, err = r.CustomerCandidates(ctx, lastName)
	if err != nil {
		return nil, false, nil, err
	}
	switch len(candidates) {
	case 0:
		if create == nil {
			return nil, false, nil, apperr.NotFoundf(apperr.CodeUnknownCustomer, "no customer with last name %q", lastName)
		}
		c, err = create(ctx)
		if err != nil {
			return nil, false, nil, err
		}
		return c, true, nil, nil
	case 1:
		return &candidates[0], false, nil, nil
	default:
		return nil, false, candidates, nil
	}
}

// CarCandidates 客户名下的候选车辆（可能为空）。
func (r *Resolver) CarCandidates(ctx context.Context, customerID uint) ([]car.Car, error) {
	if r == nil || r.cars == nil {
		return nil, fmt.Errorf("resolver not initialized")
	}
	return r.cars.OwnedBy(ctx, customerID)
}

// PickCar 按下标消歧车辆；越界返回 invalid_selection。
func PickCar(candidates []car.Car, idx int) (*car.Car, error) {
	if idx < 0 || idx >= len(candidates) {
		return nil, apperr.Validationf(apperr.CodeInvalidSelection, "selection %d out of range [0, %d)", idx, len(candidates))
	}
	c := candidates[idx]
	return &c, nil
}

// Mechanic 按编号解析技师（存在性校验）。
func (r *Resolver) Mechanic(ctx context.Context, id uint) (*mechanic.Mechanic, error) {
	if r == nil || r.mechanics == nil {
		return nil, fmt.Errorf("resolver not initialized")
	}
	return r.mechanics.Get(ctx, id)
}

// Request 按 rid 解析工单（存在性校验）。
func (r *Resolver) Request(ctx context.Context, rid uint) (*request.ServiceRequest, error) {
	if r == nil || r.requests == nil {
		return nil, fmt.Errorf("resolver not initialized")
	}
	return r.requests.Get(ctx, rid)
}
