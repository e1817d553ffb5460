package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/models"
)

// makeEntries builds n entries; every other one is on example.com.
func makeEntries(n int) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, n)
	for i := range entries {
		host := "other.org"
		if i%2 == 0 {
			host = "Example.com"
		}
		entries[i] = models.HistoryEntry{ID: int64(i + 1), URL: fmt.Sprintf("https://%s/%d", host, i+1), TotalChecks: 4, PassedChecks: 4}
	}
	return entries
}

func newBrowser(t *testing.T, api *fakeHistoryAPI) (*HistoryBrowser, *recordingPresenter, *AppState) {
	t.Helper()
	store := NewMemoryStorage()
	presenter := &recordingPresenter{}
	state := NewAppState(store)
	return NewHistoryBrowser(api, loggedIn(t, store, false), state, presenter, 10), presenter, state
}

func TestPaginate(t *testing.T) {
	entries := makeEntries(25)
	if got := Paginate(entries, 3, 10); len(got) != 5 || got[0].ID != 21 {
		t.Errorf("page 3 = %d items starting at %d, want 5 starting at 21", len(got), got[0].ID)
	}
	if got := Paginate(entries, 9, 10); len(got) != 5 {
		t.Errorf("out of range page clamps to last: got %d items", len(got))
	}
	if got := Paginate(nil, 1, 10); len(got) != 0 {
		t.Errorf("empty list page = %v", got)
	}
}

func TestPageWindow(t *testing.T) {
	btn := func(p int) PageButton { return PageButton{Page: p} }
	cur := func(p int) PageButton { return PageButton{Page: p, Current: true} }
	gap := PageButton{Ellipsis: true}

	tests := []struct {
		current, total int
		want           []PageButton
	}{
		{1, 0, nil},
		{1, 1, nil},
		{1, 3, []PageButton{cur(1), btn(2), btn(3)}},
		{5, 10, []PageButton{btn(1), gap, btn(4), cur(5), btn(6), gap, btn(10)}},
		{1, 10, []PageButton{cur(1), btn(2), gap, btn(10)}},
		{10, 10, []PageButton{btn(1), gap, btn(9), cur(10)}},
		{3, 5, []PageButton{btn(1), btn(2), cur(3), btn(4), btn(5)}},
	}
	for _, tt := range tests {
		if got := PageWindow(tt.current, tt.total); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageWindow(%d, %d) = %+v, want %+v", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestFilterResetsToFirstPage(t *testing.T) {
	api := &fakeHistoryAPI{entries: makeEntries(25)}
	h, _, _ := newBrowser(t, api)
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p := h.GoTo(3); p.Pagination.CurrentPage != 3 || len(p.Entries) != 5 || p.TotalPages != 3 {
		t.Fatalf("page 3 = %+v", p.Pagination)
	}

	// Entries 1, 3, ... 23, 25 are on example.com: 13 of them. Drop one to
	// get the 12 matches the case below expects.
	api.entries = append(api.entries[:24:24], models.HistoryEntry{ID: 25, URL: "https://other.org/25"})
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	h.GoTo(3)

	p := h.Filter("EXAMPLE")
	if p.Pagination.CurrentPage != 1 {
		t.Errorf("CurrentPage after filter = %d, want 1", p.Pagination.CurrentPage)
	}
	if p.Pagination.TotalItems != 12 || len(p.Entries) != 10 {
		t.Errorf("filter matched %d, page shows %d; want 12 and 10", p.Pagination.TotalItems, len(p.Entries))
	}
	if p.Entries[0].ID != 1 || p.Entries[9].ID != 19 {
		t.Errorf("page 1 = ids %d..%d, want 1..19", p.Entries[0].ID, p.Entries[9].ID)
	}
	if len(p.Buttons) != 2 {
		t.Errorf("buttons = %+v, want two pages", p.Buttons)
	}
}

func TestLoadEmptyAndFailedShareFallback(t *testing.T) {
	empty, _, _ := newBrowser(t, &fakeHistoryAPI{})
	if err := empty.Load(context.Background()); err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	ep := empty.Page()
	if !ep.Fallback() || ep.Status != LoadEmpty || ep.Buttons != nil || ep.TotalPages != 1 {
		t.Errorf("empty page = %+v", ep)
	}

	failed, _, _ := newBrowser(t, &fakeHistoryAPI{listErr: &backend.TransportError{Op: "history", Err: errors.New("refused")}})
	if err := failed.Load(context.Background()); err == nil {
		t.Fatal("Load succeeded, want error")
	}
	fp := failed.Page()
	if !fp.Fallback() || fp.Status != LoadFailed {
		t.Errorf("failed page = %+v", fp)
	}
}

func TestLoadRequiresSession(t *testing.T) {
	h := NewHistoryBrowser(&fakeHistoryAPI{}, NewSessionGate(NewMemoryStorage()), NewAppState(nil), nil, 10)
	if err := h.Load(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load = %v, want ErrNotLoggedIn", err)
	}
}

func TestViewDetail(t *testing.T) {
	report := &models.ScanReport{URL: "https://example.com/1", Results: []models.CheckResult{{Check: "HSTS"}}}
	api := &fakeHistoryAPI{entries: makeEntries(3), detail: report}
	h, presenter, state := newBrowser(t, api)
	h.Load(context.Background())

	if _, err := h.ViewDetail(context.Background(), 1); err != nil {
		t.Fatalf("ViewDetail: %v", err)
	}
	if len(presenter.details) != 1 {
		t.Errorf("modal shown %d times", len(presenter.details))
	}
	if cur, ok := state.Current(); !ok || cur.URL != report.URL {
		t.Error("viewed record did not become the current report")
	}

	api.detailErr = &backend.ServerError{Op: "history detail", StatusCode: 404, Message: "Scan not found"}
	if _, err := h.ViewDetail(context.Background(), 99); err == nil {
		t.Fatal("ViewDetail succeeded for a missing record")
	}
	if got := presenter.errors; len(got) != 1 || got[0] != "Failed to load scan details: Scan not found" {
		t.Errorf("errors = %q", got)
	}
	if len(h.Page().Entries) != 3 {
		t.Error("list changed after a failed detail load")
	}
}

func TestDeleteWithoutConfirmationSendsNothing(t *testing.T) {
	api := &fakeHistoryAPI{entries: makeEntries(3)}
	h, _, _ := newBrowser(t, api)
	h.Load(context.Background())

	for name, c := range map[string]Confirmer{
		"declined": ConfirmFunc(func(string) bool { return false }),
		"nil":      nil,
	} {
		if err := h.Delete(context.Background(), 2, c); !errors.Is(err, ErrCancelled) {
			t.Errorf("%s: Delete = %v, want ErrCancelled", name, err)
		}
	}
	if len(api.deleteCalls) != 0 {
		t.Errorf("delete calls = %v, want none", api.deleteCalls)
	}
}

func TestDeleteReloadsOnSuccess(t *testing.T) {
	api := &fakeHistoryAPI{entries: makeEntries(3)}
	h, _, _ := newBrowser(t, api)
	h.Load(context.Background())
	yes := ConfirmFunc(func(string) bool { return true })

	if err := h.Delete(context.Background(), 2, yes); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if api.listCalls != 2 {
		t.Errorf("list fetched %d times, want reload after delete", api.listCalls)
	}
	if _, ok := h.Entry(2); ok {
		t.Error("deleted entry still listed")
	}

	api.deleteErr = &backend.ServerError{Op: "history delete", StatusCode: 500}
	if err := h.Delete(context.Background(), 3, yes); err == nil {
		t.Fatal("Delete succeeded, want error")
	}
	if _, ok := h.Entry(3); !ok {
		t.Error("entry disappeared after a failed delete")
	}
}
