package report

import (
	"database/sql"
	"errors"
	"fmt"
)

var ErrRunNotFound = errors.New("run not found")

// Measurements returns the values of a run by frame.
func (d *DB) Measurements(runID int64) ([]Measurement, error) {
	rows, err := d.db.Query("SELECT frame, value FROM measurements WHERE run_id = ? ORDER BY frame", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query measurements: %w", err)
	}
	defer rows.Close()

	var ms []Measurement
	for rows.Next() {
		var m Measurement
		var v sql.NullFloat64
		if err := rows.Scan(&m.Frame, &v); err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		m.Value = fromNull(v)
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

const summaryColumns = "id, reference_path, distorted_path, metric, plane, frames, mean_value, min_value, max_value"

// Summaries lists every run, newest first.
func (d *DB) Summaries() ([]*Summary, error) {
	rows, err := d.db.Query("SELECT " + summaryColumns + " FROM run_summaries ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []*Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (d *DB) Summary(runID int64) (*Summary, error) {
	row := d.db.QueryRow("SELECT "+summaryColumns+" FROM run_summaries WHERE id = ?", runID)
	s, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return s, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (*Summary, error) {
	var s Summary
	var mean, lo, hi sql.NullFloat64
	err := row.Scan(&s.RunID, &s.ReferencePath, &s.DistortedPath, &s.Metric, &s.Plane, &s.Frames, &mean, &lo, &hi)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan summary: %w", err)
	}
	s.Mean, s.Min, s.Max = mean.Float64, lo.Float64, hi.Float64
	return &s, nil
}
