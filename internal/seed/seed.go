package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/dpp/internal/passport"
)

const (
	DemoSlug            = "demo-wine"
	demoMarker          = "demo_passport"
	demoProductName     = "Demo Riesling Trocken"
	demoManufacturer    = "Demo Winery"
	demoAlcoholPercent  = 12.5
	demoResidualSugar   = 6
	demoTotalAcidity    = 7.2
	demoGrapeVariety    = "Riesling"
	demoBottleVolumeML  = "750"
	demoVintage         = "2023"
	demoIngredientsList = "Grapes, preservatives: sulphites"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureDemoPassport(ctx, tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// seedAdmin creates the admin user, or rotates its hash when the configured
// password no longer matches.
func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var hash string
	err := tx.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		newHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(newHash)); err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check admin user existence: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
		return nil
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE email = ?`, string(newHash), email); err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	stats.Updates++
	return nil
}

// ensureDemoPassport creates the demo wine once per database. The marker keeps
// a demo that an admin deleted from coming back on the next start.
func ensureDemoPassport(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var marker string
	err := tx.QueryRowContext(ctx, `SELECT name FROM seed_markers WHERE name = ?`, demoMarker).Scan(&marker)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check demo seed marker: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO seed_markers (name) VALUES (?)`, demoMarker); err != nil {
		return fmt.Errorf("insert demo seed marker: %w", err)
	}

	store := passport.NewStore(tx)
	_, err = store.GetBySlug(ctx, DemoSlug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, passport.ErrNotFound) {
		return fmt.Errorf("check demo passport existence: %w", err)
	}

	wine := &passport.WineDetails{
		AlcoholPercent: demoAlcoholPercent,
		ResidualSugar:  demoResidualSugar,
		TotalAcidity:   demoTotalAcidity,
	}
	wine.Recalculate()

	demo := &passport.Passport{
		Slug:         DemoSlug,
		Category:     passport.CategoryWine,
		ProductName:  demoProductName,
		Manufacturer: demoManufacturer,
		Status:       passport.StatusPublished,
		Fields: map[string]string{
			"grape_variety":    demoGrapeVariety,
			"vintage":          demoVintage,
			"bottle_volume_ml": demoBottleVolumeML,
			"ingredients":      demoIngredientsList,
		},
		Wine: wine,
	}
	if err := store.Create(ctx, demo); err != nil {
		return fmt.Errorf("insert demo passport: %w", err)
	}
	stats.Inserts++
	return nil
}
