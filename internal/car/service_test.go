package car

import (
	"context"
	"strings"
	"testing"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"gorm.io/gorm"
)

type memStore struct {
	cars   map[string]Car
	owns   []Ownership
	nextID uint
}

func newMemStore() *memStore {
	return &memStore{cars: make(map[string]Car), nextID: 1}
}

func (m *memStore) Create(_ context.Context, c *Car, ownerID *uint) error {
	if _, ok := m.cars[c.VIN]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.cars[c.VIN] = *c
	if ownerID != nil {
		m.owns = append(m.owns, Ownership{ID: m.nextID, CustomerID: *ownerID, CarVIN: c.VIN})
		m.nextID++
	}
	return nil
}

func (m *memStore) FindByVIN(_ context.Context, vin string) (*Car, error) {
	c, ok := m.cars[vin]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memStore) CreateOwnership(_ context.Context, o *Ownership) error {
	o.ID = m.nextID
	m.nextID++
	m.owns = append(m.owns, *o)
	return nil
}

func (m *memStore) ListByOwner(_ context.Context, customerID uint) ([]Car, error) {
	var out []Car
	for _, o := range m.owns {
		if o.CustomerID == customerID {
			out = append(out, m.cars[o.CarVIN])
		}
	}
	return out, nil
}

type fixedCustomers struct {
	ids map[uint]bool
}

func (f fixedCustomers) Get(_ context.Context, id uint) (*customer.Customer, error) {
	if f.ids[id] {
		return &customer.Customer{ID: id, FName: "Jane", LName: "Doe"}, nil
	}
	return nil, apperr.NotFoundf(apperr.CodeUnknownCustomer, "customer %d not found", id)
}

const testVIN = "1234567890123456"

func TestAddCarWithOwner(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, fixedCustomers{ids: map[uint]bool{1: true}})
	ctx := context.Background()

	owner := uint(1)
	c, err := svc.Add(ctx, AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "2001", OwnerID: &owner})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Year != 2001 {
		t.Fatalf("expected year 2001, got %d", c.Year)
	}
	owned, err := svc.OwnedBy(ctx, 1)
	if err != nil {
		t.Fatalf("OwnedBy: %v", err)
	}
	if len(owned) != 1 || owned[0].VIN != testVIN {
		t.Fatalf("expected linked car, got %+v", owned)
	}
}

func TestAddCarDuplicateVIN(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, fixedCustomers{})
	ctx := context.Background()

	in := AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "2001"}
	if _, err := svc.Add(ctx, in); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	_, err := svc.Add(ctx, in)
	if !apperr.IsCode(err, apperr.CodeDuplicateVin) {
		t.Fatalf("expected duplicate_vin, got %v", err)
	}
	if len(store.cars) != 1 {
		t.Fatalf("expected car count unchanged, got %d", len(store.cars))
	}
}

func TestAddCarValidation(t *testing.T) {
	svc := NewService(newMemStore(), fixedCustomers{})
	ctx := context.Background()

	cases := []struct {
		name string
		in   AddInput
		code string
	}{
		{"short vin", AddInput{VIN: "123", Make: "Honda", Model: "Civic", Year: "2001"}, apperr.CodeInvalidField},
		{"year not integer", AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "MMXX"}, apperr.CodeNotAnInteger},
		{"year too old", AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "1969"}, apperr.CodeInvalidYear},
		{"year not 4 digits", AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "20010"}, apperr.CodeInvalidYear},
		{"empty make", AddInput{VIN: testVIN, Make: "", Model: "Civic", Year: "2001"}, apperr.CodeInvalidField},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, tc.in); !apperr.IsCode(err, tc.code) {
			t.Fatalf("%s: expected code %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestAddCarLengthsCountRunes(t *testing.T) {
	svc := NewService(newMemStore(), fixedCustomers{})
	ctx := context.Background()

	// 20 个多字节字符 = 60 字节，按字符计仍在 32 以内
	in := AddInput{VIN: testVIN, Make: strings.Repeat("车", 20), Model: "エルフ", Year: "1993"}
	if _, err := svc.Add(ctx, in); err != nil {
		t.Fatalf("Add multi-byte make: %v", err)
	}

	in = AddInput{VIN: "6543210987654321", Make: strings.Repeat("车", 33), Model: "X", Year: "1993"}
	if _, err := svc.Add(ctx, in); !apperr.IsCode(err, apperr.CodeInvalidField) {
		t.Fatalf("expected 33-char make rejected, got %v", err)
	}
}

func TestAddCarUnknownOwnerLeavesStoreUntouched(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, fixedCustomers{})
	ctx := context.Background()

	owner := uint(9)
	_, err := svc.Add(ctx, AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "2001", OwnerID: &owner})
	if !apperr.IsCode(err, apperr.CodeUnknownCustomer) {
		t.Fatalf("expected unknown_customer, got %v", err)
	}
	if len(store.cars) != 0 || len(store.owns) != 0 {
		t.Fatalf("expected no partial writes")
	}
}

func TestLinkOwner(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, fixedCustomers{ids: map[uint]bool{2: true}})
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddInput{VIN: testVIN, Make: "Honda", Model: "Civic", Year: "2001"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	o, err := svc.LinkOwner(ctx, 2, testVIN)
	if err != nil {
		t.Fatalf("LinkOwner: %v", err)
	}
	if o.ID == 0 {
		t.Fatalf("expected generated ownership id")
	}
	if _, err := svc.LinkOwner(ctx, 2, "0000000000000000"); !apperr.IsCode(err, apperr.CodeUnknownCar) {
		t.Fatalf("expected unknown_car, got %v", err)
	}
}
