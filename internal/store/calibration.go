package store

import (
	"database/sql"

	"github.com/so-keyldzn/semantiq/internal/apperr"
	"github.com/so-keyldzn/semantiq/internal/model"
)

// RecordObservation appends a DistanceObservation row (§4.7). The
// Retrieval Engine decides whether to call this at all — bootstrap mode records
// every observation, production mode samples at the configured rate — this
// method itself is an unconditional append.
func (s *Store) RecordObservation(language string, distance float32) error {
	_, err := s.db.Exec(
		"INSERT INTO distance_observations (language, distance, created_at) VALUES (?, ?, ?)",
		language, distance, nowRFC3339(),
	)
	if err != nil {
		return apperr.Internalf(err, "record_observation for %s", language)
	}
	return nil
}

// ReadObservations returns up to limit distances recorded for language,
// most recent first.
func (s *Store) ReadObservations(language string, limit int) ([]float32, error) {
	rows, err := s.db.Query(
		"SELECT distance FROM distance_observations WHERE language = ? ORDER BY created_at DESC LIMIT ?",
		language, limit,
	)
	if err != nil {
		return nil, apperr.Internalf(err, "read_observations for %s", language)
	}
	defer rows.Close()

	var out []float32
	for rows.Next() {
		var d float32
		if err := rows.Scan(&d); err != nil {
			return nil, apperr.Internalf(err, "scan observation row")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountObservations returns the number of distance_observations rows
// stored for language, the value the Calibrator's bootstrap/production
// switch and the "crossed 500" trigger both key off of (§4.7).
func (s *Store) CountObservations(language string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM distance_observations WHERE language = ?", language).Scan(&n)
	if err != nil {
		return 0, apperr.Internalf(err, "count_observations for %s", language)
	}
	return n, nil
}

// PutCalibration writes (or replaces) language's threshold row.
func (s *Store) PutCalibration(language string, maxDistance, minSimilarity float32, sampleCount uint32) error {
	_, err := s.db.Exec(
		`INSERT INTO threshold_calibration (language, max_distance, min_similarity, sample_count, calibrated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(language) DO UPDATE SET
			max_distance = excluded.max_distance,
			min_similarity = excluded.min_similarity,
			sample_count = excluded.sample_count,
			calibrated_at = excluded.calibrated_at`,
		language, maxDistance, minSimilarity, sampleCount, nowRFC3339(),
	)
	if err != nil {
		return apperr.Internalf(err, "put_calibration for %s", language)
	}
	return nil
}

// GetCalibration looks up language's threshold row. ok is false if no row
// exists — the caller (Calibrator.LookupThresholds) then falls back to the
// GlobalLanguage sentinel and finally the compile-time defaults (§4.7).
func (s *Store) GetCalibration(language string) (model.ThresholdCalibration, bool, error) {
	var row model.ThresholdCalibration
	var calibratedAt string
	row.Language = language

	err := s.db.QueryRow(
		"SELECT max_distance, min_similarity, sample_count, calibrated_at FROM threshold_calibration WHERE language = ?",
		language,
	).Scan(&row.MaxDistance, &row.MinSimilarity, &row.SampleCount, &calibratedAt)
	if err == sql.ErrNoRows {
		return model.ThresholdCalibration{}, false, nil
	}
	if err != nil {
		return model.ThresholdCalibration{}, false, apperr.Internalf(err, "get_calibration for %s", language)
	}

	if t, perr := parseRFC3339(calibratedAt); perr == nil {
		row.CalibratedAt = t
	}
	return row, true, nil
}
