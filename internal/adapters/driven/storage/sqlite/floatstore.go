package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

// Ensure FloatStore implements the interface.
var _ driven.FloatStore = (*FloatStore)(nil)

// FloatStore implements driven.FloatStore on the floats table.
type FloatStore struct {
	db *sql.DB
}

// List returns every float in insertion order.
func (s *FloatStore) List(ctx context.Context) ([]domain.Float, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lat, lng, location, sea FROM floats ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("listing floats: %w", err)
	}
	defer rows.Close()

	var floats []domain.Float
	for rows.Next() {
		var f domain.Float
		if err := rows.Scan(&f.ID, &f.Lat, &f.Lng, &f.Location, &f.Sea); err != nil {
			return nil, fmt.Errorf("scanning float: %w", err)
		}
		floats = append(floats, f)
	}
	return floats, rows.Err()
}

// Get returns a float by ID.
func (s *FloatStore) Get(ctx context.Context, id string) (*domain.Float, error) {
	var f domain.Float
	err := s.db.QueryRowContext(ctx, `
		SELECT id, lat, lng, location, sea FROM floats WHERE id = ?
	`, id).Scan(&f.ID, &f.Lat, &f.Lng, &f.Location, &f.Sea)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("float %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning float: %w", err)
	}
	return &f, nil
}

// ReplaceAll swaps the dataset inside one transaction and records the
// import. Any failure, including a duplicate ID, rolls back to the
// previous dataset.
func (s *FloatStore) ReplaceAll(ctx context.Context, floats []domain.Float) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM floats"); err != nil {
		return fmt.Errorf("clearing floats: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO floats (position, id, lat, lng, location, sea) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	seen := make(map[string]struct{}, len(floats))
	for i, f := range floats {
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: duplicate float id %s", domain.ErrInvalidInput, f.ID)
		}
		seen[f.ID] = struct{}{}
		if _, err := stmt.ExecContext(ctx, i, f.ID, f.Lat, f.Lng, f.Location, f.Sea); err != nil {
			return fmt.Errorf("inserting float %s: %w", f.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO float_imports (float_count, imported_at) VALUES (?, ?)",
		len(floats), time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	return tx.Commit()
}

// Count returns the number of floats.
func (s *FloatStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM floats").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting floats: %w", err)
	}
	return n, nil
}

// LastImport returns when the dataset was last replaced and how many floats
// it held. ok is false before the first import.
func (s *FloatStore) LastImport(ctx context.Context) (at time.Time, count int, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT imported_at, float_count FROM float_imports ORDER BY id DESC LIMIT 1
	`).Scan(&at, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, 0, false, nil
	}
	if err != nil {
		return time.Time{}, 0, false, fmt.Errorf("reading last import: %w", err)
	}
	return at, count, true, nil
}
