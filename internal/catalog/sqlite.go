package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/lapidary/internal/model"
)

// SQLiteStore loads the catalog from an embedded read-only SQLite
// database. The minerals table uses the external column names:
// name, ri_min, ri_max, sg_min, sg_max, birefringence, dispersion,
// hardness, system, optical_character.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore creates a SQLite-backed catalog store.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Source returns the database path.
func (s *SQLiteStore) Source() string {
	return s.path
}

// Load reads every mineral record in rowid order.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Mineral, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT name, ri_min, ri_max, sg_min, sg_max,
		       birefringence, dispersion, hardness, system, optical_character
		FROM minerals
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query minerals: %w", err)
	}
	defer rows.Close()

	var minerals []model.Mineral
	for rows.Next() {
		var (
			m                                    model.Mineral
			riMin, riMax, sgMin, sgMax, bir, dis sql.NullFloat64
			hardness, system, optical            sql.NullString
		)
		if err := rows.Scan(&m.Name, &riMin, &riMax, &sgMin, &sgMax,
			&bir, &dis, &hardness, &system, &optical); err != nil {
			return nil, fmt.Errorf("scan mineral: %w", err)
		}

		m.RIMin = nullableFloat(riMin)
		m.RIMax = nullableFloat(riMax)
		m.SGMin = nullableFloat(sgMin)
		m.SGMax = nullableFloat(sgMax)
		m.Birefringence = nullableFloat(bir)
		m.Dispersion = nullableFloat(dis)
		m.Hardness = hardness.String
		m.System = system.String
		m.OpticalCharacter = optical.String

		minerals = append(minerals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read minerals: %w", err)
	}

	return minerals, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
