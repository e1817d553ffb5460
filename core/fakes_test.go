package core

import (
	"context"
	"sync"

	"github.com/Ebzefr/WebSecura/models"
)

type recordingControl struct {
	busy, idle, cleared int
}

func (c *recordingControl) Busy()       { c.busy++ }
func (c *recordingControl) Idle()       { c.idle++ }
func (c *recordingControl) ClearInput() { c.cleared++ }

type recordingPresenter struct {
	reports []*models.ScanReport
	details []*models.ScanReport
	errors  []string
}

func (p *recordingPresenter) PresentReport(r *models.ScanReport) { p.reports = append(p.reports, r) }
func (p *recordingPresenter) PresentDetail(r *models.ScanReport) { p.details = append(p.details, r) }
func (p *recordingPresenter) ShowError(msg string)               { p.errors = append(p.errors, msg) }

type recordingSink struct {
	mu        sync.Mutex
	shown     []Notice
	dismissed []uint64
}

func (s *recordingSink) Show(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
}

func (s *recordingSink) Dismiss(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = append(s.dismissed, id)
}

func (s *recordingSink) dismissedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dismissed)
}

type fakeHistoryAPI struct {
	entries     []models.HistoryEntry
	listErr     error
	detail      *models.ScanReport
	detailErr   error
	deleteErr   error
	listCalls   int
	deleteCalls []int64
}

func (f *fakeHistoryAPI) History(ctx context.Context, userID int64, perPage int) ([]models.HistoryEntry, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.HistoryEntry(nil), f.entries...), nil
}

func (f *fakeHistoryAPI) HistoryDetail(ctx context.Context, id, userID int64) (*models.ScanReport, error) {
	return f.detail, f.detailErr
}

func (f *fakeHistoryAPI) DeleteHistory(ctx context.Context, id, userID int64) error {
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func loggedIn(t interface{ Fatalf(string, ...interface{}) }, store Storage, admin bool) *SessionGate {
	g := NewSessionGate(store)
	if err := g.Set(models.Session{ID: 7, Username: "alice", Email: "alice@example.com", IsAdmin: admin}); err != nil {
		t.Fatalf("Set session: %v", err)
	}
	return g
}
