package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// HistoryAPI is the subset of the backend client the history browser uses.
type HistoryAPI interface {
	History(ctx context.Context, userID int64, perPage int) ([]models.HistoryEntry, error)
	HistoryDetail(ctx context.Context, id, userID int64) (*models.ScanReport, error)
	DeleteHistory(ctx context.Context, id, userID int64) error
}

// historyFetchLimit asks the backend for everything; paging is client side.
const historyFetchLimit = 1000

// LoadStatus says why a history list is what it is. Empty and Failed lists
// look the same to the user.
type LoadStatus string

const (
	LoadPending LoadStatus = "pending"
	LoadOK      LoadStatus = "ok"
	LoadEmpty   LoadStatus = "empty"
	LoadFailed  LoadStatus = "failed"
)

// PageButton is one entry in the compact page selector.
type PageButton struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// HistoryPage is everything needed to draw the list view.
type HistoryPage struct {
	Entries    []models.HistoryEntry
	Pagination models.PaginationState
	TotalPages int
	Buttons    []PageButton
	Term       string
	Status     LoadStatus
}

// Fallback reports whether the list shows the "no scans" placeholder.
func (p HistoryPage) Fallback() bool {
	return len(p.Entries) == 0
}

// FilterEntries keeps entries whose URL contains term, ignoring case. An
// empty term keeps everything.
func FilterEntries(entries []models.HistoryEntry, term string) []models.HistoryEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}
	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.URL), term) {
			out = append(out, e)
		}
	}
	return out
}

// Paginate returns the contiguous slice for page. Out of range pages are
// clamped.
func Paginate(entries []models.HistoryEntry, page, pageSize int) []models.HistoryEntry {
	start, end := models.PaginationState{CurrentPage: page, PageSize: pageSize, TotalItems: len(entries)}.Bounds()
	return entries[start:end]
}

// PageWindow lays out the page selector: first, last, and current±1, with
// an ellipsis for each gap. A single page gets no selector at all.
func PageWindow(current, totalPages int) []PageButton {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}
	var buttons []PageButton
	last := 0
	for p := 1; p <= totalPages; p++ {
		if p != 1 && p != totalPages && (p < current-1 || p > current+1) {
			continue
		}
		if last != 0 && p-last > 1 {
			buttons = append(buttons, PageButton{Ellipsis: true})
		}
		buttons = append(buttons, PageButton{Page: p, Current: p == current})
		last = p
	}
	return buttons
}

// HistoryBrowser holds the user's history list with its filter and page.
type HistoryBrowser struct {
	mu        sync.Mutex
	api       HistoryAPI
	session   *SessionGate
	state     *AppState
	presenter Presenter
	pageSize  int

	generation uint64
	all        []models.HistoryEntry
	term       string
	page       int
	status     LoadStatus
}

func NewHistoryBrowser(api HistoryAPI, session *SessionGate, state *AppState, presenter Presenter, pageSize int) *HistoryBrowser {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &HistoryBrowser{api: api, session: session, state: state, presenter: presenter, pageSize: pageSize, page: 1, status: LoadPending}
}

// Load fetches the full list for the logged in user. On failure the list is
// emptied and the fallback shows; the cause is logged either way.
func (h *HistoryBrowser) Load(ctx context.Context) error {
	user, err := h.session.RequireUser()
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.generation++
	gen := h.generation
	h.mu.Unlock()

	entries, err := h.api.History(ctx, user.ID, historyFetchLimit)

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.generation {
		logger.Debug("Dropping history load %d, superseded by %d", gen, h.generation)
		return ErrSuperseded
	}
	if err != nil {
		logger.Error("History load failed for user %d: %v", user.ID, err)
		h.all = nil
		h.status = LoadFailed
		return fmt.Errorf("loading history: %w", err)
	}
	if len(entries) == 0 {
		logger.Info("History for user %d is empty", user.ID)
		h.status = LoadEmpty
	} else {
		logger.Debug("Loaded %d history entries for user %d", len(entries), user.ID)
		h.status = LoadOK
	}
	h.all = entries
	h.page = models.PaginationState{CurrentPage: h.page, PageSize: h.pageSize, TotalItems: len(h.filteredLocked())}.Clamp().CurrentPage
	return nil
}

// Filter sets the URL search term and returns to page 1.
func (h *HistoryBrowser) Filter(term string) HistoryPage {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.term = strings.TrimSpace(term)
	h.page = 1
	return h.pageLocked()
}

// GoTo moves to page, clamped to the available range.
func (h *HistoryBrowser) GoTo(page int) HistoryPage {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.page = page
	return h.pageLocked()
}

// Page is the current view.
func (h *HistoryBrowser) Page() HistoryPage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pageLocked()
}

// Entry looks up a loaded entry by id.
func (h *HistoryBrowser) Entry(id int64) (models.HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, e := range h.all {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

func (h *HistoryBrowser) filteredLocked() []models.HistoryEntry {
	return FilterEntries(h.all, h.term)
}

func (h *HistoryBrowser) pageLocked() HistoryPage {
	filtered := h.filteredLocked()
	state := models.PaginationState{CurrentPage: h.page, PageSize: h.pageSize, TotalItems: len(filtered)}.Clamp()
	h.page = state.CurrentPage
	return HistoryPage{
		Entries:    Paginate(filtered, state.CurrentPage, state.PageSize),
		Pagination: state,
		TotalPages: state.TotalPages(),
		Buttons:    PageWindow(state.CurrentPage, state.TotalPages()),
		Term:       h.term,
		Status:     h.status,
	}
}

// ViewDetail fetches one full record, makes it the current report and shows
// it in the modal. A failure is shown and the list is left alone.
func (h *HistoryBrowser) ViewDetail(ctx context.Context, id int64) (*models.ScanReport, error) {
	user, err := h.session.RequireUser()
	if err != nil {
		return nil, err
	}
	gen := h.state.Begin()
	report, err := h.api.HistoryDetail(ctx, id, user.ID)
	if err != nil {
		logger.Error("Loading history record %d failed: %v", id, err)
		h.show("Failed to load scan details: " + backend.UserMessage(err))
		return nil, fmt.Errorf("loading history record %d: %w", id, err)
	}
	if err := h.state.Commit(gen, report); err != nil {
		return nil, err
	}
	if h.presenter != nil {
		h.presenter.PresentDetail(report)
	}
	return report, nil
}

// Delete removes a record after the user confirms, then reloads the list
// from the server. Without confirmation nothing is sent.
func (h *HistoryBrowser) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	user, err := h.session.RequireUser()
	if err != nil {
		return err
	}
	if !confirmed(confirm, "Are you sure you want to delete this scan? This action cannot be undone.") {
		logger.Debug("Delete of history record %d cancelled", id)
		return ErrCancelled
	}
	if err := h.api.DeleteHistory(ctx, id, user.ID); err != nil {
		logger.Error("Deleting history record %d failed: %v", id, err)
		h.show("Failed to delete scan: " + backend.UserMessage(err))
		return fmt.Errorf("deleting history record %d: %w", id, err)
	}
	logger.Info("Deleted history record %d", id)
	return h.Load(ctx)
}

func (h *HistoryBrowser) show(msg string) {
	if h.presenter != nil {
		h.presenter.ShowError(msg)
	}
}
