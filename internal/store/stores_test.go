package store

import (
	"context"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
)

func TestStoreOrdering(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateStore(ctx, database, "Mercator", "", "")
	second, _ := CreateStore(ctx, database, "Spar", "", "#00aa00")

	if first.Position != 0 || second.Position != 1 {
		t.Errorf("expected appended positions, got %d and %d", first.Position, second.Position)
	}

	stores, err := ListStores(ctx, database)
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}
	if len(stores) != 2 || stores[0].Name != "Mercator" {
		t.Errorf("unexpected listing %+v", stores)
	}
}

func TestDeleteStoreReassignsShoppingItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	doomed, _ := CreateStore(ctx, database, "Closing Down", "", "")
	fallback, _ := CreateStore(ctx, database, "Hofer", "", "")

	entry, _ := CreateShoppingItem(ctx, database, model.ShoppingListItem{
		Name: "Bananas", Quantity: 1, StoreID: doomed.ID,
	})

	if err := DeleteStore(ctx, database, doomed.ID); err != nil {
		t.Fatalf("DeleteStore: %v", err)
	}

	got, _ := GetShoppingItem(ctx, database, entry.ID)
	if got.StoreID != fallback.ID {
		t.Errorf("expected entry reassigned to %q, got %q", fallback.ID, got.StoreID)
	}

	// Deleting the last store leaves entries unassigned.
	if err := DeleteStore(ctx, database, fallback.ID); err != nil {
		t.Fatalf("DeleteStore: %v", err)
	}
	got, _ = GetShoppingItem(ctx, database, entry.ID)
	if got.StoreID != "" {
		t.Errorf("expected entry without store, got %q", got.StoreID)
	}
}

func TestUpdateStore(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	s, _ := CreateStore(ctx, database, "Lidl", "", "")
	updated, err := UpdateStore(ctx, database, s.ID, "Lidl Center", "cart", "#0050aa")
	if err != nil {
		t.Fatalf("UpdateStore: %v", err)
	}
	if updated.Name != "Lidl Center" || updated.Color != "#0050aa" {
		t.Errorf("unexpected store %+v", updated)
	}

	if got, _ := UpdateStore(ctx, database, "missing", "X", "", ""); got != nil {
		t.Error("expected nil updating unknown store")
	}
}
