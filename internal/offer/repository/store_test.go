package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "offer_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   NewGormStore(openTestDB(t), nil),
	}
}

func TestGetAllMissingCollectionIsEmpty(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var products []entity.Product
			if err := store.GetAll(context.Background(), CollectionProducts, &products); err != nil {
				t.Fatalf("GetAll: %v", err)
			}
			if products == nil || len(products) != 0 {
				t.Errorf("Expected empty non-nil slice, got %#v", products)
			}
		})
	}
}

func TestSaveAllOverwritesCollection(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := []entity.Client{{ID: "c1", Name: "Acme"}, {ID: "c2", Name: "Globex"}}
			if err := store.SaveAll(ctx, CollectionClients, first); err != nil {
				t.Fatalf("SaveAll: %v", err)
			}
			second := []entity.Client{{ID: "c3", Name: "Initech"}}
			if err := store.SaveAll(ctx, CollectionClients, second); err != nil {
				t.Fatalf("SaveAll: %v", err)
			}

			var got []entity.Client
			if err := store.GetAll(ctx, CollectionClients, &got); err != nil {
				t.Fatalf("GetAll: %v", err)
			}
			if len(got) != 1 || got[0].ID != "c3" {
				t.Errorf("Expected only c3, got %+v", got)
			}
		})
	}
}

func TestSaveAllNilSliceStoresEmptyList(t *testing.T) {
	store := NewMemoryStore()
	var none []entity.TestTool
	if err := store.SaveAll(context.Background(), CollectionTestTools, none); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if raw := string(store.Raw(CollectionTestTools)); raw != "[]" {
		t.Errorf("Expected [], got %s", raw)
	}
}

func TestGetAllCorruptPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()

	mem := NewMemoryStore()
	mem.SetRaw(CollectionProjects, []byte(`{"not":"a list"`))
	var projects []entity.Project
	if err := mem.GetAll(ctx, CollectionProjects, &projects); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("Expected empty list for corrupt payload, got %d", len(projects))
	}

	db := openTestDB(t)
	if err := db.Exec("INSERT INTO collections (name, data, version, updated_at) VALUES (?, ?, 1, ?)",
		CollectionProjects, "[{\"id\": 12", time.Now()).Error; err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}
	gs := NewGormStore(db, nil)
	projects = nil
	if err := gs.GetAll(ctx, CollectionProjects, &projects); err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if projects == nil || len(projects) != 0 {
		t.Errorf("Expected empty list for corrupt row, got %#v", projects)
	}
}

func TestGetAllRejectsNonSliceDestination(t *testing.T) {
	var p entity.Project
	if err := NewMemoryStore().GetAll(context.Background(), CollectionProjects, &p); err == nil {
		t.Fatal("Expected error for non-slice destination")
	}
}

func TestGormStoreVersionAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(openTestDB(t), nil)

	for i := 0; i < 3; i++ {
		if err := store.SaveAll(ctx, "spare-parts-p1-two-year", []entity.SparePartNote{{ID: "n"}}); err != nil {
			t.Fatalf("SaveAll: %v", err)
		}
	}
	v, err := store.Version(ctx, "spare-parts-p1-two-year")
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 3 {
		t.Errorf("Expected version 3, got %d", v)
	}

	if err := store.Delete(ctx, "spare-parts-p1-two-year"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	v, _ = store.Version(ctx, "spare-parts-p1-two-year")
	if v != 0 {
		t.Errorf("Expected version 0 after delete, got %d", v)
	}
}

func TestGormStoreReadFailureIsStorageError(t *testing.T) {
	db := openTestDB(t)
	store := NewGormStore(db, nil)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	var products []entity.Product
	err := store.GetAll(context.Background(), CollectionProducts, &products)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}
}

func TestIDGeneratorUnique(t *testing.T) {
	gen := NewIDGenerator()
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := gen.NewID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != 1600 {
		t.Errorf("Expected 1600 unique ids, got %d", len(seen))
	}
}

func TestLocalLockerSerialises(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, CollectionProjects)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(timeout, CollectionProjects); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded while held, got %v", err)
	}

	other, err := locker.Lock(ctx, CollectionProducts)
	if err != nil {
		t.Fatalf("Lock on another key should not block: %v", err)
	}
	other()

	unlock()
	unlock()
	again, err := locker.Lock(ctx, CollectionProjects)
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	again()
}

func TestExistsDistinguishesEmptyFromMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			ok, err := store.Exists(ctx, CollectionProducts)
			if err != nil || ok {
				t.Fatalf("Expected missing collection, got ok=%v err=%v", ok, err)
			}
			if err := store.SaveAll(ctx, CollectionProducts, []entity.Product{}); err != nil {
				t.Fatalf("SaveAll: %v", err)
			}
			ok, err = store.Exists(ctx, CollectionProducts)
			if err != nil || !ok {
				t.Fatalf("Expected existing empty collection, got ok=%v err=%v", ok, err)
			}
		})
	}
}
