package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	area, err := store.CreateArea(ctx, database, "Fridge", model.AreaTypeFridge, "", "")
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	milk, _ := store.CreateItem(ctx, database, model.Item{
		Name: "Milk", Quantity: 2, Unit: "l", ExpirationDate: "2025-12-01", StorageAreaID: area.ID,
	})
	store.CreateItem(ctx, database, model.Item{Name: "Eggs", Quantity: 6, StorageAreaID: area.ID})
	store.CreateShoppingItem(ctx, database, model.ShoppingListItem{Name: "Bread", Quantity: 1})

	doc, err := Export(ctx, database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.Version != Version {
		t.Errorf("version = %q, want %q", doc.Version, Version)
	}
	if doc.Inventory.ItemCount != 2 || doc.Shopping.ItemCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", doc.Inventory.ItemCount, doc.Shopping.ItemCount)
	}

	// Serialize and re-parse, as a real restore would.
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshaling document: %v", err)
	}
	parsed, err := Parse(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	summary, err := Import(ctx, database, parsed)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.InventoryItems != 2 || summary.ShoppingItems != 1 {
		t.Errorf("summary = %+v, want 2 items and 1 shopping entry", summary)
	}

	items, _ := store.ListItems(ctx, database, "")
	if len(items) != 2 {
		t.Fatalf("expected 2 items after import, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == milk.ID {
			t.Error("imported items must get fresh ids")
		}
		if item.Name == "Milk" && item.ExpirationDate != "2025-12-01" {
			t.Errorf("expected expiration kept, got %q", item.ExpirationDate)
		}
	}

	entries, _ := store.ListShoppingItems(ctx, database)
	if len(entries) != 1 || entries[0].Name != "Bread" {
		t.Errorf("unexpected shopping list %+v", entries)
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	area, _ := store.CreateArea(ctx, database, "Pantry", model.AreaTypePantry, "", "")
	store.CreateItem(ctx, database, model.Item{Name: "Old Rice", Quantity: 1, StorageAreaID: area.ID})

	doc, err := Export(ctx, database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	// New data appears after the export; the import wipes it.
	store.CreateItem(ctx, database, model.Item{Name: "Newer Pasta", Quantity: 1, StorageAreaID: area.ID})
	store.CreateShoppingItem(ctx, database, model.ShoppingListItem{Name: "Sugar", Quantity: 1})

	if _, err := Import(ctx, database, doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	items, _ := store.ListItems(ctx, database, "")
	if len(items) != 1 || items[0].Name != "Old Rice" {
		t.Errorf("expected only backed-up items, got %+v", items)
	}
	entries, _ := store.ListShoppingItems(ctx, database)
	if len(entries) != 0 {
		t.Errorf("expected shopping list replaced, got %+v", entries)
	}
}

func TestImportFailureLeavesDataIntact(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	area, _ := store.CreateArea(ctx, database, "Fridge", model.AreaTypeFridge, "", "")
	store.CreateItem(ctx, database, model.Item{Name: "Milk", Quantity: 1, StorageAreaID: area.ID})
	store.CreateShoppingItem(ctx, database, model.ShoppingListItem{Name: "Bread", Quantity: 1})

	// The document's item references a storage area this database never had,
	// so the insert fails the foreign-key check mid-import.
	doc := &Document{
		Version:   Version,
		Inventory: Section{Items: json.RawMessage(`[{"name":"Ghost","quantity":1,"storage_area_id":"no-such-area"}]`), ItemCount: 1},
		Shopping:  Section{Items: json.RawMessage(`[]`)},
	}

	if _, err := Import(ctx, database, doc); err == nil {
		t.Fatal("expected import to fail")
	}

	items, _ := store.ListItems(ctx, database, "")
	if len(items) != 1 || items[0].Name != "Milk" {
		t.Errorf("expected inventory untouched after failed import, got %+v", items)
	}
	entries, _ := store.ListShoppingItems(ctx, database)
	if len(entries) != 1 || entries[0].Name != "Bread" {
		t.Errorf("expected shopping list untouched after failed import, got %+v", entries)
	}
}

func TestRoundTripKeepsDisposedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	area, _ := store.CreateArea(ctx, database, "Fridge", model.AreaTypeFridge, "", "")
	cheese, _ := store.CreateItem(ctx, database, model.Item{
		Name: "Cheese", Quantity: 1, StorageAreaID: area.ID, Category: "Dairy", ApproximateCost: 4.50,
	})
	if _, err := store.MarkItemGone(ctx, database, cheese.ID, "", model.DisposalExpired); err != nil {
		t.Fatalf("MarkItemGone: %v", err)
	}

	doc, err := Export(ctx, database)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if doc.Inventory.ItemCount != 1 {
		t.Fatalf("expected disposed item in export, got count %d", doc.Inventory.ItemCount)
	}

	if _, err := Import(ctx, database, doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	all, _ := store.ListAllItems(ctx, database)
	if len(all) != 1 {
		t.Fatalf("expected 1 item after import, got %d", len(all))
	}
	if all[0].GoneAt == nil || all[0].DisposalReason != model.DisposalExpired {
		t.Errorf("expected disposal kept through restore, got %+v", all[0])
	}
	active, _ := store.ListItems(ctx, database, "")
	if len(active) != 0 {
		t.Errorf("disposed item must not rejoin active inventory, got %+v", active)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"missing version", `{"inventory": {"items": []}, "shopping": {"items": []}}`},
		{"missing inventory", `{"version": "1.0", "shopping": {"items": []}}`},
		{"missing shopping", `{"version": "1.0", "inventory": {"items": []}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.raw))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if err.Error() != "invalid backup file format" && tc.name != "not json" {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
