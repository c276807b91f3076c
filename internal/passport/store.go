package passport

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned when no passport matches the id or slug.
var ErrNotFound = errors.New("passport not found")

const (
	// timeLayout sorts lexically, which ORDER BY created_at relies on.
	timeLayout      = "2006-01-02 15:04:05.000000000"
	maxSlugAttempts = 100
)

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Query    string
	Category Category
	Status   Status
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists passports in the passports table.
type Store struct {
	db  DBTX
	now func() time.Time
}

// NewStore returns a Store backed by db.
func NewStore(db DBTX) *Store {
	return &Store{db: db, now: time.Now}
}

// Create assigns an ID, a unique slug and timestamps, then inserts the passport.
func (s *Store) Create(ctx context.Context, p *Passport) error {
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if err := p.Validate(); err != nil {
		return err
	}

	fieldsJSON, wineJSON, err := encodeDetails(p)
	if err != nil {
		return err
	}

	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = p.CreatedAt

	base := Slugify(p.ProductName)
	if strings.TrimSpace(p.Slug) != "" {
		base = Slugify(p.Slug)
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := slugCandidate(base, attempt)
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO passports (id, slug, category, product_name, manufacturer, status, fields_json, wine_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, slug, string(p.Category), p.ProductName, p.Manufacturer, string(p.Status),
			fieldsJSON, wineJSON, p.CreatedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout))
		if err == nil {
			p.Slug = slug
			return nil
		}
		if !isSlugConflict(err) {
			return fmt.Errorf("insert passport: %w", err)
		}
	}

	return fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}

// Get loads a passport by id.
func (s *Store) Get(ctx context.Context, id string) (*Passport, error) {
	return s.getOne(ctx, `WHERE id = ?`, id)
}

// GetBySlug loads a passport by its public slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Passport, error) {
	return s.getOne(ctx, `WHERE slug = ?`, slug)
}

// List returns passports matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Passport, error) {
	query := strings.TrimSpace(f.Query)
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, selectColumns+`
		WHERE (? = '' OR product_name LIKE ? ESCAPE '\' OR manufacturer LIKE ? ESCAPE '\')
		  AND (? = '' OR category = ?)
		  AND (? = '' OR status = ?)
		ORDER BY created_at DESC, rowid DESC
	`, query, search, search, string(f.Category), string(f.Category), string(f.Status), string(f.Status))
	if err != nil {
		return nil, fmt.Errorf("query passports: %w", err)
	}
	defer rows.Close()

	passports := make([]Passport, 0)
	for rows.Next() {
		p, err := scanPassport(rows)
		if err != nil {
			return nil, err
		}
		passports = append(passports, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passports: %w", err)
	}

	return passports, nil
}

// Update saves every mutable field. The slug, id and creation time never change.
func (s *Store) Update(ctx context.Context, p *Passport) error {
	if err := p.Validate(); err != nil {
		return err
	}

	fieldsJSON, wineJSON, err := encodeDetails(p)
	if err != nil {
		return err
	}

	updatedAt := s.now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE passports
		SET
			category = ?,
			product_name = ?,
			manufacturer = ?,
			status = ?,
			fields_json = ?,
			wine_json = ?,
			updated_at = ?
		WHERE id = ?
	`, string(p.Category), p.ProductName, p.Manufacturer, string(p.Status),
		fieldsJSON, wineJSON, updatedAt.Format(timeLayout), p.ID)
	if err != nil {
		return fmt.Errorf("update passport: %w", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}
	p.UpdatedAt = updatedAt
	return nil
}

// SetStatus publishes or unpublishes a passport.
func (s *Store) SetStatus(ctx context.Context, id string, status Status) error {
	if status != StatusDraft && status != StatusPublished {
		return fmt.Errorf("status must be draft or published")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE passports SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), s.now().UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("update passport status: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes a passport.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM passports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete passport: %w", err)
	}
	return expectOneRow(result)
}

const selectColumns = `
	SELECT id, slug, category, product_name, manufacturer, status, fields_json, COALESCE(wine_json, ''), created_at, updated_at
	FROM passports
`

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) getOne(ctx context.Context, where string, arg any) (*Passport, error) {
	p, err := scanPassport(s.db.QueryRowContext(ctx, selectColumns+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPassport(row scanner) (*Passport, error) {
	var (
		p                    Passport
		category, status     string
		fieldsJSON, wineJSON string
	)
	// The driver decodes DATETIME columns into time.Time.
	if err := row.Scan(&p.ID, &p.Slug, &category, &p.ProductName, &p.Manufacturer, &status,
		&fieldsJSON, &wineJSON, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan passport: %w", err)
	}
	p.Category = Category(category)
	p.Status = Status(status)

	p.Fields = map[string]string{}
	if fieldsJSON != "" {
		if err := json.Unmarshal([]byte(fieldsJSON), &p.Fields); err != nil {
			return nil, fmt.Errorf("decode passport %s fields: %w", p.ID, err)
		}
	}
	if wineJSON != "" {
		p.Wine = &WineDetails{}
		if err := json.Unmarshal([]byte(wineJSON), p.Wine); err != nil {
			return nil, fmt.Errorf("decode passport %s wine data: %w", p.ID, err)
		}
	}

	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

func encodeDetails(p *Passport) (string, sql.NullString, error) {
	fields := p.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("encode passport fields: %w", err)
	}

	var wineJSON sql.NullString
	if p.Wine != nil {
		raw, err := json.Marshal(p.Wine)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("encode wine data: %w", err)
		}
		wineJSON = sql.NullString{String: string(raw), Valid: true}
	}

	return string(fieldsJSON), wineJSON, nil
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func isSlugConflict(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
