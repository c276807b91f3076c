package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/dpp/internal/db"
	"github.com/Simplici0/dpp/internal/migrations"
	"github.com/Simplici0/dpp/internal/passport"
)

func newSeedTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()
	cfg := Config{
		AdminEmail:    "admin@dpp.example",
		AdminPassword: "12345",
	}

	for i := 0; i < 5; i++ {
		stats, err := Run(ctx, database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 2 {
				t.Fatalf("expected 2 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM users WHERE email = ?`, "admin@dpp.example", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM passports WHERE slug = ?`, DemoSlug, 1)

	var hash string
	if err := database.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, "admin@dpp.example").Scan(&hash); err != nil {
		t.Fatalf("query admin hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("12345")); err != nil {
		t.Fatalf("expected admin hash to match password: %v", err)
	}
}

func TestRunRotatesChangedAdminPassword(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	if _, err := Run(ctx, database, Config{AdminEmail: "admin@dpp.example", AdminPassword: "old"}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	stats, err := Run(ctx, database, Config{AdminEmail: "admin@dpp.example", AdminPassword: "new"})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if stats.Updates != 1 || stats.Inserts != 0 {
		t.Fatalf("expected one update, got %+v", stats)
	}
}

func TestRunSkipsAdminWithoutCredentials(t *testing.T) {
	database := newSeedTestDB(t)

	stats, err := Run(context.Background(), database, Config{})
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 1 {
		t.Fatalf("expected only the demo passport insert, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM users`, nil, 0)
}

func TestRunSeedsPublishedDemoWine(t *testing.T) {
	database := newSeedTestDB(t)
	if _, err := Run(context.Background(), database, Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	demo, err := passport.NewStore(database).GetBySlug(context.Background(), DemoSlug)
	if err != nil {
		t.Fatalf("load demo passport: %v", err)
	}
	if !demo.Published() || demo.Wine == nil {
		t.Fatalf("expected published wine passport, got %+v", demo)
	}
	// 12.5% vol, 6 g/L sugar, 7.2 g/L acidity: glycerine 9.9 g/L, 76 kcal, 318 kJ.
	if demo.Wine.Glycerine != 9.9 || demo.Wine.EnergyKcal != 76 || demo.Wine.EnergyKj != 318 {
		t.Fatalf("unexpected demo nutrition: %+v", demo.Wine)
	}
}

func TestRunDoesNotRestoreDeletedDemoPassport(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	if _, err := Run(ctx, database, Config{}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	store := passport.NewStore(database)
	demo, err := store.GetBySlug(ctx, DemoSlug)
	if err != nil {
		t.Fatalf("load demo passport: %v", err)
	}
	if err := store.Delete(ctx, demo.ID); err != nil {
		t.Fatalf("delete demo passport: %v", err)
	}

	stats, err := Run(ctx, database, Config{})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected no inserts after deletion, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM passports WHERE slug = ?`, DemoSlug, 0)
}

func TestRunAdoptsExistingDemoPassport(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	if _, err := Run(ctx, database, Config{}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if _, err := database.Exec(`DELETE FROM seed_markers`); err != nil {
		t.Fatalf("clear seed markers: %v", err)
	}

	stats, err := Run(ctx, database, Config{})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if stats.Inserts != 0 {
		t.Fatalf("expected the existing demo to be kept, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM passports`, nil, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM seed_markers WHERE name = ?`, "demo_passport", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
