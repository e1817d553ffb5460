package core

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// AppState owns the "current report" slot read by the exporters. It is
// written by a live scan or by opening a history record, whichever request
// was issued last. A response for an older request is dropped.
type AppState struct {
	mu         sync.Mutex
	store      Storage
	generation uint64
	current    *models.ScanReport
	loaded     bool
}

// NewAppState returns state persisted in store. A nil store keeps the
// report in memory only.
func NewAppState(store Storage) *AppState {
	return &AppState{store: store}
}

// Begin registers a new request that may write the current report and
// returns its generation.
func (s *AppState) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Commit stores report as current if gen is still the latest request.
// A failure to persist is logged; the in-memory slot is still updated.
func (s *AppState) Commit(gen uint64, report *models.ScanReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		logger.Warn("Discarding report for %s: request %d superseded by %d", report.URL, gen, s.generation)
		return ErrSuperseded
	}
	s.current = report
	s.loaded = true
	s.persist(report)
	return nil
}

// SetCurrent replaces the current report unconditionally.
func (s *AppState) SetCurrent(report *models.ScanReport) {
	_ = s.Commit(s.Begin(), report)
}

func (s *AppState) persist(report *models.ScanReport) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		logger.Error("Failed to encode current report: %v", err)
		return
	}
	if err := s.store.SetItem(models.CurrentReportKey, string(data)); err != nil {
		logger.Error("Failed to persist current report: %v", err)
	}
}

// Current returns the current report, reading it back from storage on
// first use. A stored value that does not decode is removed.
func (s *AppState) Current() (*models.ScanReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded || s.store == nil {
		return s.current, s.current != nil
	}
	s.loaded = true

	raw, ok, err := s.store.GetItem(models.CurrentReportKey)
	if err != nil {
		logger.Error("Failed to read current report: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	report, err := decodeReport(raw)
	if err != nil {
		logger.Warn("Stored report is corrupt, removing it: %v", err)
		if rmErr := s.store.RemoveItem(models.CurrentReportKey); rmErr != nil {
			logger.Error("Failed to remove corrupt report: %v", rmErr)
		}
		return nil, false
	}
	s.current = report
	return report, true
}

func decodeReport(raw string) (*models.ScanReport, error) {
	var r models.ScanReport
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	if r.Results == nil {
		return nil, fmt.Errorf("decoding report: no results")
	}
	return &r, nil
}
