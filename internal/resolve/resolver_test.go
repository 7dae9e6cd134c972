package resolve

import (
	"context"
	"testing"

	"github.com/MechanicShop/MechanicShop/internal/car"
	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
)

type fakeCustomers struct {
	byLName map[string][]customer.Customer
}

func (f fakeCustomers) ByLastName(_ context.Context, lname string) ([]customer.Customer, error) {
	return f.byLName[lname], nil
}

func (f fakeCustomers) Get(_ context.Context, id uint) (*customer.Customer, error) {
	for _, cs := range f.byLName {
		for _, c := range cs {
			if c.ID == id {
				return &c, nil
			}
		}
	}
	return nil, apperr.NotFoundf(apperr.CodeUnknownCustomer, "customer %d not found", id)
}

func TestPickCustomerBounds(t *testing.T) {
	cands := []customer.Customer{{ID: 1}, {ID: 2}}

	c, err := PickCustomer(cands, 1)
	if err != nil {
		t.Fatalf("PickCustomer: %v", err)
	}
	if c.ID != 2 {
		t.Fatalf("expected id 2, got %d", c.ID)
	}
	for _, idx := range []int{-1, 2} {
		if _, err := PickCustomer(cands, idx); !apperr.IsCode(err, apperr.CodeInvalidSelection) {
			t.Fatalf("index %d: expected invalid_selection, got %v", idx, err)
		}
	}
}

func TestPickCarBounds(t *testing.T) {
	if _, err := PickCar(nil, 0); !apperr.IsCode(err, apperr.CodeInvalidSelection) {
		t.Fatalf("expected invalid_selection on empty list, got %v", err)
	}
	cands := []car.Car{{VIN: "1234567890123456"}}
	c, err := PickCar(cands, 0)
	if err != nil || c.VIN != "1234567890123456" {
		t.Fatalf("PickCar: %v %+v", err, c)
	}
}

func TestOrCreateCustomer(t *testing.T) {
	src := fakeCustomers{byLName: map[string][]customer.Customer{
		"Doe":   {{ID: 1, FName: "Jane", LName: "Doe"}},
		"Smith": {{ID: 2, LName: "Smith"}, {ID: 3, LName: "Smith"}},
	}}
	r := NewResolver(src, nil, nil, nil)
	ctx := context.Background()

	// 唯一命中
	c, created, cands, err := r.OrCreateCustomer(ctx, "Doe", nil)
	if err != nil || created || cands != nil {
		t.Fatalf("unexpected result: %v %v %v", err, created, cands)
	}
	if c.ID != 1 {
		t.Fatalf("expected id 1, got %d", c.ID)
	}

	// 多命中：返回候选，由调用方消歧
	c, created, cands, err = r.OrCreateCustomer(ctx, "Smith", nil)
	if err != nil || created || c != nil {
		t.Fatalf("unexpected result: %v %v %+v", err, created, c)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}

	// 零命中 + create 回调
	c, created, _, err = r.OrCreateCustomer(ctx, "Nobody", func(context.Context) (*customer.Customer, error) {
		return &customer.Customer{ID: 9, LName: "Nobody"}, nil
	})
	if err != nil || !created || c.ID != 9 {
		t.Fatalf("expected created customer 9, got %v %v %+v", err, created, c)
	}

	// 零命中且无 create 回调
	_, _, _, err = r.OrCreateCustomer(ctx, "Nobody", nil)
	if !apperr.IsCode(err, apperr.CodeUnknownCustomer) {
		t.Fatalf("expected unknown_customer, got %v", err)
	}
}
