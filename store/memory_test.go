package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
)

func TestMemoryProducts_OrderAndLookup(t *testing.T) {
	mem := NewMemory()
	mem.Products.Add(
		&core.Product{UniqueID: "c", Name: "Third"},
		&core.Product{UniqueID: "a", Name: "First"},
		&core.Product{UniqueID: "b", Name: "Second"},
	)

	ctx := context.Background()

	// GetAll preserves insertion order, not key order.
	all, err := mem.Products.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if all[i].UniqueID != want {
			t.Errorf("GetAll()[%d] = %s, want %s", i, all[i].UniqueID, want)
		}
	}

	p, err := mem.Products.GetByID(ctx, "a")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if p.Name != "First" {
		t.Errorf("GetByID(a).Name = %q, want First", p.Name)
	}

	if _, err := mem.Products.GetByID(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("GetByID(missing) error = %v, want store not-found", err)
	}
}

func TestMemoryProducts_AddOverwritesKeepingOrder(t *testing.T) {
	mem := NewMemory()
	mem.Products.Add(
		&core.Product{UniqueID: "a", Name: "Old"},
		&core.Product{UniqueID: "b", Name: "Other"},
	)
	mem.Products.Add(&core.Product{UniqueID: "a", Name: "New"})

	all, _ := mem.Products.GetAll(context.Background())
	if len(all) != 2 {
		t.Fatalf("got %d products, want 2", len(all))
	}
	if all[0].UniqueID != "a" || all[0].Name != "New" {
		t.Errorf("all[0] = %s/%s, want a/New (overwritten in place)", all[0].UniqueID, all[0].Name)
	}
}

func TestMemoryProducts_GetAllPaginated(t *testing.T) {
	mem := NewMemory()
	for i := 1; i <= 5; i++ {
		mem.Products.Add(&core.Product{UniqueID: fmt.Sprintf("p%d", i)})
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []string
		wantErr  bool
	}{
		{name: "first page", page: 1, pageSize: 2, want: []string{"p1", "p2"}},
		{name: "middle page", page: 2, pageSize: 2, want: []string{"p3", "p4"}},
		{name: "short last page", page: 3, pageSize: 2, want: []string{"p5"}},
		{name: "page past the end", page: 4, pageSize: 2, want: []string{}},
		{name: "zero page rejected", page: 0, pageSize: 2, wantErr: true},
		{name: "zero page size rejected", page: 1, pageSize: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mem.Products.GetAllPaginated(context.Background(), tt.page, tt.pageSize)
			if tt.wantErr {
				if !core.IsInvalidInput(err) {
					t.Fatalf("error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAllPaginated() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d products, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].UniqueID != want {
					t.Errorf("page[%d] = %s, want %s", i, got[i].UniqueID, want)
				}
			}
		})
	}
}

func TestMemoryCustomers(t *testing.T) {
	mem := NewMemory()
	mem.Customers.Add(
		&core.Customer{CustomerID: "u1", Age: 30},
		&core.Customer{CustomerID: "u2", Age: 25},
	)

	ctx := context.Background()
	all, err := mem.Customers.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 2 || all[0].CustomerID != "u1" {
		t.Errorf("GetAll() = %v, want [u1 u2] in insertion order", all)
	}

	if _, err := mem.Customers.GetByID(ctx, "nobody"); !core.IsStoreNotFound(err) {
		t.Errorf("GetByID(nobody) error = %v, want store not-found", err)
	}
}

func TestMemoryInteractions_CreateRoundTrip(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	if err := mem.Interactions.Create(ctx, "u1", "p1", core.InteractionView, "landing page"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mem.Interactions.Create(ctx, "u1", "p2", core.InteractionPurchase, ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mem.Interactions.Create(ctx, "u2", "p1", core.InteractionLike, ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := mem.Interactions.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d interactions, want 2", len(got))
	}
	first := got[0]
	if first.UserID != "u1" || first.ProductID != "p1" || first.Kind != core.InteractionView {
		t.Errorf("interaction = %+v, want u1/p1/view", first)
	}
	if first.Note != "landing page" {
		t.Errorf("note = %q, want landing page", first.Note)
	}
	if first.Timestamp.IsZero() {
		t.Error("Create() should stamp the interaction time")
	}

	// Unknown users read back as empty, not as an error.
	none, err := mem.Interactions.GetByUser(ctx, "stranger")
	if err != nil {
		t.Fatalf("GetByUser(stranger) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d interactions for a stranger, want 0", len(none))
	}
}

func TestMemoryInteractions_GetByUserReturnsCopy(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()
	_ = mem.Interactions.Create(ctx, "u1", "p1", core.InteractionView, "")

	got, _ := mem.Interactions.GetByUser(ctx, "u1")
	got[0] = nil // mutating the returned slice must not corrupt the store

	again, _ := mem.Interactions.GetByUser(ctx, "u1")
	if again[0] == nil {
		t.Error("store returned its internal slice instead of a copy")
	}
}
