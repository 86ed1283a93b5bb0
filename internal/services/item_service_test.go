package services_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockroom/internal/apperr"
	"stockroom/internal/repos"
	"stockroom/internal/services"
)

// memdb opens a seeded in-memory database. A single connection keeps
// the :memory: store shared across the pool.
func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func itemService(db *sqlx.DB) *services.ItemService {
	return services.NewItemService(
		repos.NewItemRepo(db),
		repos.NewCategoryRepo(db),
		repos.NewLocationRepo(db),
		repos.NewSequenceRepo(db),
	)
}

func TestItemCreate_GeneratesSKUFromCategoryPrefix(t *testing.T) {
	db := memdb(t)
	catSvc := services.NewCategoryService(repos.NewCategoryRepo(db))
	svc := itemService(db)

	cat, err := catSvc.Create(services.CategoryInput{Name: "Elektronik"})
	if err != nil {
		t.Fatal(err)
	}

	it, err := svc.Create(services.ItemInput{
		Name: "Laptop", CategoryID: cat.ID, LocationID: "loc-main-wh",
	})
	if err != nil {
		t.Fatal(err)
	}
	if it.SKU != "ELE-001" {
		t.Fatalf("want SKU ELE-001, got %s", it.SKU)
	}
	if it.Stock != 0 {
		t.Fatalf("stock must start at 0, got %d", it.Stock)
	}
	if it.Status != "out_of_stock" {
		t.Fatalf("fresh item should derive out_of_stock, got %s", it.Status)
	}
}

func TestItemCreate_SequenceIsGlobalNotPerCategory(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)

	// Three items across two seeded categories
	for i, cat := range []string{"cat-electronics", "cat-electronics", "cat-office"} {
		if _, err := svc.Create(services.ItemInput{
			Name: "Item " + string(rune('A'+i)), CategoryID: cat, LocationID: "loc-main-wh",
		}); err != nil {
			t.Fatal(err)
		}
	}

	// The 4th item continues the global counter regardless of category
	it, err := svc.Create(services.ItemInput{
		Name: "Desk", CategoryID: "cat-furniture", LocationID: "loc-main-wh",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(it.SKU, "-004") {
		t.Fatalf("4th item should get sequence 004, got %s", it.SKU)
	}
	if !strings.HasPrefix(it.SKU, "FUR-") {
		t.Fatalf("prefix should come from category name, got %s", it.SKU)
	}
}

func TestItemCreate_PreSuppliedSKUIsKept(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)

	it, err := svc.Create(services.ItemInput{
		Name: "Monitor", SKU: "CUSTOM-9", CategoryID: "cat-electronics", LocationID: "loc-main-wh",
	})
	if err != nil {
		t.Fatal(err)
	}
	if it.SKU != "CUSTOM-9" {
		t.Fatalf("pre-supplied SKU must be kept, got %s", it.SKU)
	}

	// Duplicate SKU surfaces as a duplicate error naming the field
	_, err = svc.Create(services.ItemInput{
		Name: "Monitor 2", SKU: "CUSTOM-9", CategoryID: "cat-electronics", LocationID: "loc-main-wh",
	})
	if apperr.KindOf(err) != apperr.KindDuplicate {
		t.Fatalf("want duplicate error, got %v", err)
	}
	if !strings.Contains(apperr.Message(err), "sku") {
		t.Fatalf("duplicate message should name the field, got %q", apperr.Message(err))
	}
}

func TestItemCreate_ValidationAggregatesProblems(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)

	_, err := svc.Create(services.ItemInput{})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("want validation error, got %v", err)
	}
	msg := apperr.Message(err)
	for _, field := range []string{"name", "category", "location"} {
		if !strings.Contains(msg, field) {
			t.Errorf("validation message should mention %s, got %q", field, msg)
		}
	}
}

func TestItemCreate_UnknownCategoryIsNotFound(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)

	_, err := svc.Create(services.ItemInput{
		Name: "Ghost", CategoryID: "nope", LocationID: "loc-main-wh",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestItemUpdate_CannotTouchStockOrSKU(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)
	ledger := services.NewLedgerService(repos.NewTransactionRepo(db))

	it, err := svc.Create(services.ItemInput{
		Name: "Cable", CategoryID: "cat-electronics", LocationID: "loc-main-wh",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Record(services.RecordInput{Type: "inbound", ItemID: it.ID, Quantity: 7}); err != nil {
		t.Fatal(err)
	}

	upd, err := svc.Update(it.ID, services.ItemInput{
		Name: "HDMI Cable", SKU: "HACKED", CategoryID: it.CategoryID, LocationID: it.LocationID, MinStock: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if upd.SKU != it.SKU {
		t.Fatalf("update must not change SKU: %s -> %s", it.SKU, upd.SKU)
	}
	if upd.Stock != 7 {
		t.Fatalf("update must not change stock, got %d", upd.Stock)
	}
	if upd.Name != "HDMI Cable" || upd.MinStock != 3 {
		t.Fatalf("catalog fields not updated: %+v", upd)
	}
}

func TestItemList_StatusFilter(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)
	ledger := services.NewLedgerService(repos.NewTransactionRepo(db))

	low, err := svc.Create(services.ItemInput{
		Name: "Paper", CategoryID: "cat-office", LocationID: "loc-main-wh", MinStock: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Record(services.RecordInput{Type: "inbound", ItemID: low.ID, Quantity: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(services.ItemInput{
		Name: "Pens", CategoryID: "cat-office", LocationID: "loc-main-wh",
	}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List("", "", "", "low", 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != low.ID {
		t.Fatalf("want only the low-stock item, got %+v", got)
	}
}

func TestItemList_StatusFilterPagesOverAllMatches(t *testing.T) {
	db := memdb(t)
	svc := itemService(db)
	ledger := services.NewLedgerService(repos.NewTransactionRepo(db))

	// Three low-stock items interleaved with well-stocked ones
	lowIDs := map[string]bool{}
	for i, name := range []string{"Pens", "Paper", "Staples", "Toner", "Tape"} {
		it, err := svc.Create(services.ItemInput{
			Name: name, CategoryID: "cat-office", LocationID: "loc-main-wh", MinStock: 10,
		})
		if err != nil {
			t.Fatal(err)
		}
		qty := 100
		if i%2 == 0 {
			qty = 5
			lowIDs[it.ID] = true
		}
		if _, err := ledger.Record(services.RecordInput{Type: "inbound", ItemID: it.ID, Quantity: qty}); err != nil {
			t.Fatal(err)
		}
	}

	// Paging applies to the filtered set, not the raw rows: a page of 2
	// is full even when stocked items sit between the matches.
	page1, err := svc.List("", "", "", "low", 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page1) != 2 {
		t.Fatalf("first page should be full, got %d items", len(page1))
	}
	page2, err := svc.List("", "", "", "low", 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2) != 1 {
		t.Fatalf("second page should hold the last match, got %d items", len(page2))
	}

	seen := map[string]bool{}
	for _, it := range append(page1, page2...) {
		if it.Status != "low" {
			t.Fatalf("non-matching item paged in: %+v", it)
		}
		seen[it.ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("pages must cover every match exactly once, got %v", seen)
	}
	for id := range lowIDs {
		if !seen[id] {
			t.Fatalf("match %s missing from pages", id)
		}
	}

	// An offset past the matches yields an empty page, not an error
	empty, err := svc.List("", "", "", "low", 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Fatalf("want empty page past the matches, got %+v", empty)
	}
}
