package recommender

import (
	"context"
	"testing"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/store"
)

func TestRecommend(t *testing.T) {
	mem := store.NewMemory()
	mem.Products.Add(
		&core.Product{UniqueID: "p1", Name: "Acoustic Guitar", About: "spruce top acoustic guitar", Category: "Music"},
		&core.Product{UniqueID: "p2", Name: "Electric Guitar", About: "solid body electric guitar", Category: "Music"},
		&core.Product{UniqueID: "p3", Name: "Drum Kit", About: "five piece drum kit", Category: "Music"},
		&core.Product{UniqueID: "p4", Name: "Yoga Mat", About: "non slip yoga mat", Category: "Fitness"},
	)
	mem.Customers.Add(
		&core.Customer{CustomerID: "u1"},
		&core.Customer{CustomerID: "u2"},
	)

	ctx := context.Background()
	_ = mem.Interactions.Create(ctx, "u1", "p1", core.InteractionPurchase, "")
	_ = mem.Interactions.Create(ctx, "u2", "p1", core.InteractionLike, "")
	_ = mem.Interactions.Create(ctx, "u2", "p2", core.InteractionPurchase, "")

	products, _ := mem.Products.GetAll(ctx)
	rctx := &core.Context{Products: products, UserID: "u1", Limit: 3}

	first, err := Recommend(ctx, mem.Products, mem.Customers, mem.Interactions, rctx)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(first.Entries) == 0 {
		t.Fatal("Recommend() produced no entries")
	}
	if first.Entries[0].ProductID != "p2" {
		t.Errorf("top recommendation = %s, want p2 (similar and purchased by the similar user)", first.Entries[0].ProductID)
	}
	for _, e := range first.Entries {
		if e.ProductID == "p1" {
			t.Error("already-purchased product recommended")
		}
	}

	// Same inputs, same output.
	rctx2 := &core.Context{Products: products, UserID: "u1", Limit: 3}
	again, err := Recommend(ctx, mem.Products, mem.Customers, mem.Interactions, rctx2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(again.Entries) != len(first.Entries) {
		t.Fatalf("run 2 returned %d entries, want %d", len(again.Entries), len(first.Entries))
	}
	for i := range first.Entries {
		if again.Entries[i].ProductID != first.Entries[i].ProductID || again.Entries[i].Score != first.Entries[i].Score {
			t.Errorf("entry %d differs between runs: %s/%v vs %s/%v", i,
				first.Entries[i].ProductID, first.Entries[i].Score,
				again.Entries[i].ProductID, again.Entries[i].Score)
		}
	}
}

func TestRecommend_UnknownUserGetsNeutralResult(t *testing.T) {
	mem := store.NewMemory()
	mem.Products.Add(
		&core.Product{UniqueID: "p1", Name: "One", About: "first product"},
		&core.Product{UniqueID: "p2", Name: "Two", About: "second product"},
	)

	ctx := context.Background()
	products, _ := mem.Products.GetAll(ctx)

	result, err := Recommend(ctx, mem.Products, mem.Customers, mem.Interactions,
		&core.Context{Products: products, UserID: "stranger", Limit: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// No history at all: the pipeline falls back to the neutral candidate list.
	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(result.Entries))
	}
	for _, e := range result.Entries {
		if e.Score != 1 {
			t.Errorf("entry %s score = %v, want neutral 1", e.ProductID, e.Score)
		}
	}
}
