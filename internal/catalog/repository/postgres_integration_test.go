//go:build integration

package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"wedding-marketplace/internal/catalog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBName = "test_marketplace"
	testDBUser = "test"
	testDBPass = "test"

	vendorA = "vendor-a"
	vendorB = "vendor-b"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:17-alpine"),
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	m, err := migrate.New("file://"+migrationsDir(t), connStr)
	if err != nil {
		t.Fatalf("init migrate: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("run migrations: %v", err)
	}
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		t.Fatalf("close migrate source: %v", srcErr)
	}
	if dbErr != nil {
		t.Fatalf("close migrate db: %v", dbErr)
	}

	for _, v := range []struct{ id, name, phone string }{
		{vendorA, "Melati Organizer", "081234567890"},
		{vendorB, "Kenanga Foto", "+62 811 0000 111"},
	} {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO vendors (id, name, whatsapp_number) VALUES ($1, $2, $3)`,
			v.id, v.name, v.phone,
		); err != nil {
			t.Fatalf("seed vendor %s: %v", v.id, err)
		}
	}

	return db
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations", "marketplace")
}

func submission(name string, category catalog.Category, from, to *float64) catalog.ProductSubmission {
	return catalog.ProductSubmission{
		Name:        name,
		Description: "Deskripsi layanan pernikahan yang cukup panjang.",
		Category:    category,
		Location:    "Bandung",
		PriceFrom:   from,
		PriceTo:     to,
		PriceUnit:   catalog.PriceUnitPackage,
	}
}

func TestPostgresRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	t.Run("creates listing joined with vendor", func(t *testing.T) {
		l, err := repo.Create(ctx, vendorA, submission("Gedung Melati", catalog.CategoryVenue, ptr(1000000), ptr(2000000)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.ID == 0 {
			t.Fatal("expected non-zero ID")
		}
		if l.VendorName != "Melati Organizer" || l.WhatsAppNumber != "081234567890" {
			t.Fatalf("vendor not joined: %+v", l)
		}
		if l.CreatedAt.IsZero() {
			t.Fatal("expected non-zero created_at")
		}

		got, err := repo.Get(ctx, l.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.PriceFrom == nil || *got.PriceFrom != 1000000 || got.PriceTo == nil || *got.PriceTo != 2000000 {
			t.Fatalf("prices not persisted: %+v", got)
		}
	})

	t.Run("nil prices stay nil", func(t *testing.T) {
		l, err := repo.Create(ctx, vendorA, submission("Tanpa Harga", catalog.CategoryVenue, nil, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := repo.Get(ctx, l.ID)
		if got.PriceFrom != nil || got.PriceTo != nil {
			t.Fatalf("want nil prices, got %+v", got)
		}
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := repo.Create(ctx, "nobody", submission("Gedung X", catalog.CategoryVenue, nil, nil))
		if !errors.Is(err, catalog.ErrUnknownVendor) {
			t.Fatalf("want ErrUnknownVendor, got %v", err)
		}
	})

	t.Run("missing listing", func(t *testing.T) {
		if _, err := repo.Get(ctx, 999999); !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestPostgresRepository_DeleteOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	l, err := repo.Create(ctx, vendorA, submission("Hapus Saya", catalog.CategoryCatering, nil, nil))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := repo.Delete(ctx, vendorB, l.ID); !errors.Is(err, catalog.ErrForbidden) {
		t.Fatalf("want ErrForbidden for other vendor, got %v", err)
	}
	if err := repo.Delete(ctx, vendorA, l.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := repo.Delete(ctx, vendorA, l.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}

func TestPostgresRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	seed := []catalog.ProductSubmission{
		submission("Gedung Melati", catalog.CategoryVenue, ptr(5000000), nil),
		submission("Diskon 50% Dekorasi", catalog.CategoryDecoration, ptr(1000000), nil),
		submission("Dekorasi 500 Bunga", catalog.CategoryDecoration, ptr(3000000), nil),
		submission("Foto_Studio Kenanga", catalog.CategoryPhotography, nil, nil),
		submission("FotoXStudio Murah", catalog.CategoryPhotography, ptr(200000), nil),
	}
	for _, s := range seed {
		if _, err := repo.Create(ctx, vendorA, s); err != nil {
			t.Fatalf("seed %q: %v", s.Name, err)
		}
	}

	newest := catalog.SearchQuery{Sort: catalog.SortNewest, Page: 1}

	t.Run("no filter returns all newest first", func(t *testing.T) {
		list, err := repo.Search(ctx, newest, 100, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != len(seed) {
			t.Fatalf("want %d items, got %d", len(seed), len(list))
		}
		for i := 1; i < len(list); i++ {
			if list[i].ID >= list[i-1].ID {
				t.Fatalf("expected newest first, got id %d after %d", list[i].ID, list[i-1].ID)
			}
		}
	})

	t.Run("percent in term is literal", func(t *testing.T) {
		q := newest
		q.SearchTerm = "50%"
		list, err := repo.Search(ctx, q, 100, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 1 || list[0].Name != "Diskon 50% Dekorasi" {
			t.Fatalf("want only the 50%% listing, got %+v", list)
		}
	})

	t.Run("underscore in term is literal", func(t *testing.T) {
		q := newest
		q.SearchTerm = "foto_studio"
		total, err := repo.Count(ctx, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 1 {
			t.Fatalf("want 1 match, got %d", total)
		}
	})

	t.Run("category filter with price sort", func(t *testing.T) {
		q := catalog.SearchQuery{Category: catalog.CategoryDecoration, Sort: catalog.SortPriceHigh, Page: 1}
		list, err := repo.Search(ctx, q, 100, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 || *list[0].PriceFrom < *list[1].PriceFrom {
			t.Fatalf("want 2 decoration listings by price desc, got %+v", list)
		}
	})

	t.Run("price low keeps unpriced last", func(t *testing.T) {
		q := catalog.SearchQuery{Category: catalog.CategoryPhotography, Sort: catalog.SortPriceLow, Page: 1}
		list, _ := repo.Search(ctx, q, 100, 0)
		if len(list) != 2 || list[1].PriceFrom != nil {
			t.Fatalf("want unpriced listing last, got %+v", list)
		}
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		all, _ := repo.Search(ctx, newest, 100, 0)
		page2, _ := repo.Search(ctx, newest, 2, 2)
		if len(page2) != 2 || page2[0].ID != all[2].ID {
			t.Fatalf("offset mismatch: %+v", page2)
		}
	})
}

func TestPostgresRepository_Views(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	l, _ := repo.Create(ctx, vendorB, submission("Foto Prewed", catalog.CategoryPhotography, nil, nil))
	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, l.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	got, _ := repo.Get(ctx, l.ID)
	if got.ViewCount != 3 {
		t.Fatalf("want 3 views, got %d", got.ViewCount)
	}
}

func TestPostgresRepository_ContactLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	l, _ := repo.Create(ctx, vendorA, submission("Katering Sedap", catalog.CategoryCatering, nil, nil))

	c, err := repo.CreateContact(ctx, catalog.ContactLog{
		ListingID: l.ID,
		VendorID:  vendorA,
		BuyerID:   "buyer-1",
		Status:    catalog.ContactStatusContacted,
	})
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := repo.UpdateContactStatus(ctx, c.ID, catalog.ContactStatusContacted, catalog.ContactStatusReplied); err != nil {
		t.Fatalf("contacted->replied: %v", err)
	}
	if err := repo.UpdateContactStatus(ctx, c.ID, catalog.ContactStatusContacted, catalog.ContactStatusCancelled); !errors.Is(err, catalog.ErrInvalidTransition) {
		t.Fatalf("want stale transition rejected, got %v", err)
	}

	got, err := repo.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if got.Status != catalog.ContactStatusReplied || got.BuyerID != "buyer-1" {
		t.Fatalf("unexpected contact %+v", got)
	}
}

func TestPostgresRepository_Health(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgres(db)

	if err := repo.Health(); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
}
