package mechanic

import (
	"context"
	"testing"

	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"gorm.io/gorm"
)

type memStore struct {
	rows   []Mechanic
	nextID uint
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (m *memStore) Create(_ context.Context, mc *Mechanic) error {
	mc.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, *mc)
	return nil
}

func (m *memStore) FindByID(_ context.Context, id uint) (*Mechanic, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			mc := m.rows[i]
			return &mc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestAddMechanic(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	m, err := svc.Add(ctx, AddInput{FName: "Max", LName: "Wrench", Experience: 12})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.ID == 0 {
		t.Fatalf("expected generated id")
	}

	got, err := svc.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Experience != 12 {
		t.Fatalf("expected experience 12, got %d", got.Experience)
	}
}

func TestAddMechanicRejectsExperienceRange(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	for _, years := range []int{-1, 100} {
		if _, err := svc.Add(ctx, AddInput{FName: "Max", LName: "Wrench", Experience: years}); apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("experience %d: expected validation error, got %v", years, err)
		}
	}
}

func TestGetUnknownMechanic(t *testing.T) {
	svc := NewService(newMemStore())
	if _, err := svc.Get(context.Background(), 7); !apperr.IsCode(err, apperr.CodeUnknownMechanic) {
		t.Fatalf("expected unknown_mechanic, got %v", err)
	}
}
