package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ExportRecord is one file written by an export encoder.
type ExportRecord struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	Format     string    `json:"format"`
	ReportURL  string    `json:"report_url"`
	FellBack   bool      `json:"fell_back"`
	ExportedAt time.Time `json:"exported_at"`
}

// ExportLog records produced export files so `export list` can show them.
type ExportLog struct {
	db *sql.DB
}

func NewExportLog(db *sql.DB) *ExportLog {
	return &ExportLog{db: db}
}

func (l *ExportLog) Record(rec ExportRecord) (int64, error) {
	res, err := l.db.Exec("INSERT INTO export_log (filename, format, report_url, fell_back, exported_at) VALUES (?, ?, ?, ?, ?)",
		rec.Filename, rec.Format, rec.ReportURL, rec.FellBack, rec.ExportedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("recording export %s: %w", rec.Filename, err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit records, newest first.
func (l *ExportLog) Recent(limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query("SELECT id, filename, format, report_url, fell_back, exported_at FROM export_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying export log: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.ID, &r.Filename, &r.Format, &r.ReportURL, &r.FellBack, &r.ExportedAt); err != nil {
			return nil, fmt.Errorf("scanning export log row: %w", err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export log rows: %w", err)
	}
	return records, nil
}
