package customer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
)

// Store 客户存储契约；*Repo 是生产实现，测试用内存替身。
// 约定：未命中返回 gorm.ErrRecordNotFound。
type Store interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByLastName(ctx context.Context, lname string) ([]Customer, error)
}

// Service 客户注册与查询用例。
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// AddInput 新建客户的入参。
type AddInput struct {
	FName   string
	LName   string
	Phone   string
	Address string
}

// Add 校验并持久化新客户，返回带生成 id 的行。
func (s *Service) Add(ctx context.Context, in AddInput) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	in.FName = strings.TrimSpace(in.FName)
	in.LName = strings.TrimSpace(in.LName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if err := ValidateName("first name", in.FName); err != nil {
		return nil, err
	}
	if err := ValidateName("last name", in.LName); err != nil {
		return nil, err
	}
	if err := ValidatePhone(in.Phone); err != nil {
		return nil, err
	}
	if in.Address == "" || len([]rune(in.Address)) > 256 {
		return nil, apperr.Validationf(apperr.CodeInvalidField, "address must be between 1 and 256 characters")
	}

	c := &Customer{
		FName:   in.FName,
		LName:   in.LName,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// ByLastName 按姓氏返回候选列表（可能为空），顺序为存储层自然顺序。
func (s *Service) ByLastName(ctx context.Context, lname string) ([]Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	lname = strings.TrimSpace(lname)
	if err := ValidateName("last name", lname); err != nil {
		return nil, err
	}
	return s.store.FindByLastName(ctx, lname)
}

// Get 按 id 查询客户；未找到返回 unknown_customer。
func (s *Service) Get(ctx context.Context, id uint) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFoundf(apperr.CodeUnknownCustomer, "customer %d not found", id)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

// ValidateName 姓名：1-32 个字符且只能是字母。
func ValidateName(field, name string) error {
	if name == "" || len([]rune(name)) > 32 {
		return apperr.Validationf(apperr.CodeInvalidField, "%s must be between 1 and 32 characters", field)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return apperr.Validationf(apperr.CodeInvalidField, "%s must contain letters only", field)
		}
	}
	return nil
}

// ValidatePhone 电话：固定 13 位，格式 (###)###-####。
func ValidatePhone(phone string) error {
	bad := apperr.Validationf(apperr.CodeInvalidField, "phone must match (###)###-####")
	if len(phone) != 13 {
		return bad
	}
	if phone[0] != '(' || phone[4] != ')' || phone[8] != '-' {
		return bad
	}
	for _, i := range []int{1, 2, 3, 5, 6, 7, 9, 10, 11, 12} {
		if phone[i] < '0' || phone[i] > '9' {
			return bad
		}
	}
	return nil
}
