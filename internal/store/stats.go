package store

import "github.com/so-keyldzn/semantiq/internal/apperr"

// Stats summarizes the Index Store's current contents, the data behind the
// `semantiq stats` CLI command (§4.4, §6).
type Stats struct {
	FileCount          int
	SymbolCount        int
	ChunkCount         int
	ChunksWithVector   int
	DependencyCount    int
	CalibrationByLang  map[string]int // language -> sample_count
}

// Stats gathers row counts across every table, splitting the chunk count by
// whether a chunks_vec row exists for the chunk (only chunks written with a
// nil embedding have none).
func (s *Store) Stats() (Stats, error) {
	var out Stats
	out.CalibrationByLang = make(map[string]int)

	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&out.FileCount); err != nil {
		return Stats{}, apperr.Internalf(err, "count files")
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM symbols").Scan(&out.SymbolCount); err != nil {
		return Stats{}, apperr.Internalf(err, "count symbols")
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&out.ChunkCount); err != nil {
		return Stats{}, apperr.Internalf(err, "count chunks")
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks_vec").Scan(&out.ChunksWithVector); err != nil {
		return Stats{}, apperr.Internalf(err, "count chunks_vec")
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM dependencies").Scan(&out.DependencyCount); err != nil {
		return Stats{}, apperr.Internalf(err, "count dependencies")
	}

	rows, err := s.db.Query("SELECT language, sample_count FROM threshold_calibration")
	if err != nil {
		return Stats{}, apperr.Internalf(err, "list calibration rows")
	}
	defer rows.Close()
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return Stats{}, apperr.Internalf(err, "scan calibration row")
		}
		out.CalibrationByLang[lang] = n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, apperr.Internalf(err, "iterate calibration rows")
	}

	return out, nil
}
