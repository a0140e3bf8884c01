package report

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// InsertSequence inserts or gets an existing sequence.
func (d *DB) InsertSequence(s Sequence) (int64, error) {
	var id int64
	err := d.db.QueryRow(
		"SELECT id FROM sequences WHERE path = ? AND width = ? AND height = ? AND format = ? AND bit_depth = ?",
		s.Path, s.Width, s.Height, s.Format, s.BitDepth,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to query sequence: %w", err)
	}

	result, err := d.db.Exec(
		"INSERT INTO sequences (path, width, height, format, bit_depth) VALUES (?, ?, ?, ?, ?)",
		s.Path, s.Width, s.Height, s.Format, s.BitDepth,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sequence: %w", err)
	}
	return result.LastInsertId()
}

// InsertRun records a new comparison.
func (d *DB) InsertRun(r Run) (int64, error) {
	result, err := d.db.Exec(
		"INSERT INTO runs (reference_id, distorted_id, metric, plane) VALUES (?, ?, ?, ?)",
		r.ReferenceID, r.DistortedID, r.Metric, r.Plane,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return result.LastInsertId()
}

// InsertMeasurements stores the values of a run in one transaction.
// A frame measured twice keeps the last value.
func (d *DB) InsertMeasurements(runID int64, ms []Measurement) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO measurements (run_id, frame, value) VALUES (?, ?, ?) " +
			"ON CONFLICT(run_id, frame) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.Exec(runID, m.Frame, toNull(m.Value)); err != nil {
			return fmt.Errorf("failed to insert measurement %d: %w", m.Frame, err)
		}
	}
	return tx.Commit()
}

func toNull(v float64) sql.NullFloat64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.Inf(1)
	}
	return v.Float64
}
