package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ebzefr/WebSecura/database"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// Recorder keeps a log of written files. database.ExportLog implements it.
type Recorder interface {
	Record(rec database.ExportRecord) (int64, error)
}

// Exporter encodes reports and writes them to a directory.
type Exporter struct {
	dir     string
	product string
	log     Recorder
	now     func() time.Time
}

// NewExporter writes into dir. log may be nil.
func NewExporter(dir, product string, log Recorder) *Exporter {
	return &Exporter{dir: dir, product: product, log: log, now: time.Now}
}

// Encode runs the encoder of format and names the result.
func (e *Exporter) Encode(r *models.ScanReport, format Format) (string, Output, error) {
	if r == nil {
		return "", Output{}, ErrNoData
	}
	enc, err := EncoderFor(format)
	if err != nil {
		return "", Output{}, err
	}
	out, err := enc.Encode(r)
	if err != nil {
		return "", Output{}, err
	}
	name := Filename(e.product, out.Ext, e.now())
	e.record(name, format, r, out)
	return name, out, nil
}

// Export writes r as format into the export directory and returns the path.
// Nothing is written for a nil report.
func (e *Exporter) Export(r *models.ScanReport, format Format) (string, error) {
	if r == nil {
		return "", ErrNoData
	}
	enc, err := EncoderFor(format)
	if err != nil {
		return "", err
	}
	out, err := enc.Encode(r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", e.dir, err)
	}
	name := Filename(e.product, out.Ext, e.now())
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, out.Data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("Exported %s report for %s to %s (%d bytes)", out.Format, r.URL, path, len(out.Data))
	e.record(name, format, r, out)
	return path, nil
}

func (e *Exporter) record(name string, requested Format, r *models.ScanReport, out Output) {
	if out.FellBack {
		logger.Warn("Requested %s export of %s produced %s instead", requested, r.URL, out.Format)
	}
	if e.log == nil {
		return
	}
	rec := database.ExportRecord{Filename: name, Format: string(out.Format), ReportURL: r.URL, FellBack: out.FellBack, ExportedAt: e.now()}
	if _, err := e.log.Record(rec); err != nil {
		logger.Error("Failed to record export %s: %v", name, err)
	}
}
