package mechanic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"gorm.io/gorm"
)

// Store 技师存储契约；未命中返回 gorm.ErrRecordNotFound。
type Store interface {
	Create(ctx context.Context, m *Mechanic) error
	FindByID(ctx context.Context, id uint) (*Mechanic, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddInput 新建技师的入参。
type AddInput struct {
	FName      string
	LName      string
	Experience int
}

// Add 校验并持久化新技师。
func (s *Service) Add(ctx context.Context, in AddInput) (*Mechanic, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	in.FName = strings.TrimSpace(in.FName)
	in.LName = strings.TrimSpace(in.LName)

	if err := customer.ValidateName("first name", in.FName); err != nil {
		return nil, err
	}
	if err := customer.ValidateName("last name", in.LName); err != nil {
		return nil, err
	}
	if in.Experience < 0 || in.Experience > 99 {
		return nil, apperr.Validationf(apperr.CodeInvalidField, "experience must be between 0 and 99 years")
	}

	m := &Mechanic{FName: in.FName, LName: in.LName, Experience: in.Experience}
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create mechanic: %w", err)
	}
	return m, nil
}

// Get 按 id 查询技师；未找到返回 unknown_mechanic。
func (s *Service) Get(ctx context.Context, id uint) (*Mechanic, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf(apperr.CodeUnknownMechanic, "mechanic %d not found", id)
		}
		return nil, fmt.Errorf("find mechanic: %w", err)
	}
	return m, nil
}
