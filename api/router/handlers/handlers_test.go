package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/core"
	"github.com/Ebzefr/WebSecura/export"
	"github.com/Ebzefr/WebSecura/models"
	"github.com/Ebzefr/WebSecura/render"
)

// stubBackend records the API calls the UI makes.
type stubBackend struct {
	mu    sync.Mutex
	calls []string
}

func (b *stubBackend) count(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/scan":
			var req models.ScanRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(models.ScanResponse{
				Status:   "success",
				URL:      req.URL,
				ScanTime: "2024-05-01T12:30:00",
				Results: []models.CheckResult{
					{Check: "HTTPS", Passed: true, Description: "Site uses HTTPS"},
					{Check: "HSTS", Passed: false, Severity: models.SeverityHigh, Description: "Missing HSTS", Recommendation: "Add Strict-Transport-Security"},
				},
			})
		case r.URL.Path == "/api/history" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"history": []models.HistoryEntry{{ID: 3, URL: "https://example.com", ScanTime: "2024-05-01T12:30:00", TotalChecks: 2, PassedChecks: 1, FailedChecks: 1}},
			})
		case strings.HasPrefix(r.URL.Path, "/api/history/") && r.Method == http.MethodDelete:
			w.Write([]byte(`{"message":"deleted"}`))
		case r.URL.Path == "/api/health":
			w.Write([]byte(`{"status":"healthy"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	})
	return mux
}

func newTestServer(t *testing.T) (*Server, *stubBackend) {
	t.Helper()
	stub := &stubBackend{}
	api := httptest.NewServer(stub.handler())
	t.Cleanup(api.Close)

	tpl, err := render.LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	store := core.NewMemoryStorage()
	board := &NoticeBoard{}
	notifier := core.NewNotifier(board, time.Minute)
	t.Cleanup(notifier.Close)
	return &Server{
		Templates: tpl,
		Client:    backend.NewClient(api.URL, 5*time.Second),
		State:     core.NewAppState(store),
		Session:   core.NewSessionGate(store),
		Exporter:  export.NewExporter(t.TempDir(), "websecura", nil),
		Notifier:  notifier,
		Notices:   board,
		Product:   "WebSecura",
		PageSize:  10,
	}, stub
}

func routes(s *Server) http.Handler {
	r := chi.NewRouter()
	s.RegisterScanRoutes(r)
	s.RegisterHistoryRoutes(r)
	s.RegisterExportRoutes(r)
	s.RegisterAuthRoutes(r)
	s.RegisterAdminRoutes(r)
	s.RegisterHealthRoutes(r)
	return r
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	return doc
}

func TestScanShowsSingleOverlay(t *testing.T) {
	s, stub := newTestServer(t)
	h := routes(s)

	rec := postForm(h, "/scan", url.Values{"url": {"example.com"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /scan status = %d", rec.Code)
	}
	doc := parse(t, rec)
	if n := doc.Find("#" + render.OverlayID).Length(); n != 1 {
		t.Errorf("overlay count = %d, want 1", n)
	}
	if n := doc.Find(".result-card").Length(); n != 2 {
		t.Errorf("card count = %d, want 2", n)
	}
	if got := doc.Find(".scan-url").Text(); got != "https://example.com" {
		t.Errorf("scan url = %q", got)
	}
	// The input is cleared after a successful scan.
	if v, _ := doc.Find("#websiteUrl").Attr("value"); v != "" {
		t.Errorf("input value = %q, want empty", v)
	}
	if stub.count("POST /api/scan") != 1 {
		t.Errorf("scan calls = %d", stub.count("POST /api/scan"))
	}

	// Showing the report again still yields one overlay.
	doc = parse(t, get(h, "/report"))
	if n := doc.Find("#" + render.OverlayID).Length(); n != 1 {
		t.Errorf("overlay count on /report = %d, want 1", n)
	}
}

func TestServedOverlayCanBeDismissed(t *testing.T) {
	s, _ := newTestServer(t)
	doc := parse(t, postForm(routes(s), "/scan", url.Values{"url": {"example.com"}}))

	overlay := doc.Find("#" + render.OverlayID)
	if href, _ := overlay.Find(".results-close").Attr("href"); href != "/" {
		t.Errorf("close control href = %q", href)
	}
	backdrop := overlay.Find(".results-backdrop")
	if backdrop.Length() != 1 {
		t.Fatalf("backdrop count = %d, want 1", backdrop.Length())
	}
	if href, _ := backdrop.Attr("href"); href != "/" {
		t.Errorf("backdrop href = %q", href)
	}
	if backdrop.ParentsFiltered(".results-container").Length() != 0 {
		t.Error("backdrop sits inside the content")
	}
	if key, _ := overlay.Attr("data-dismiss-key"); key != "Escape" {
		t.Errorf("data-dismiss-key = %q", key)
	}
	if href, _ := overlay.Attr("data-close-href"); href != "/" {
		t.Errorf("data-close-href = %q", href)
	}
	script := doc.Find("script").Text()
	if !strings.Contains(script, "keydown") || !strings.Contains(script, "dataset.closeHref") {
		t.Errorf("page has no key handler for the overlay:\n%s", script)
	}
}

func TestScanInvalidInputShowsError(t *testing.T) {
	s, stub := newTestServer(t)
	rec := postForm(routes(s), "/scan", url.Values{"url": {"   "}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	doc := parse(t, rec)
	if got := doc.Find("#formError").Text(); got != "Please enter a website URL" {
		t.Errorf("error text = %q", got)
	}
	if doc.Find("#"+render.OverlayID).Length() != 0 {
		t.Error("overlay rendered for invalid input")
	}
	if len(stub.calls) != 0 {
		t.Errorf("backend called: %v", stub.calls)
	}
}

func TestExportWithoutReport(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(routes(s), "/export/json")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Message != export.ErrNoData.Error() {
		t.Errorf("message = %q", body.Message)
	}
}

func TestExportAfterScan(t *testing.T) {
	s, _ := newTestServer(t)
	h := routes(s)
	postForm(h, "/scan", url.Values{"url": {"example.com"}})

	rec := get(h, "/export/text")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "websecura-scan-") || !strings.Contains(cd, ".txt") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "URL: https://example.com") {
		t.Errorf("text export missing URL line:\n%s", rec.Body.String())
	}
}

func TestHistoryRequiresLogin(t *testing.T) {
	s, stub := newTestServer(t)
	rec := get(routes(s), "/history")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("got %d to %q, want redirect to /login", rec.Code, rec.Header().Get("Location"))
	}
	if len(stub.calls) != 0 {
		t.Errorf("backend called: %v", stub.calls)
	}
}

func TestDeleteHistoryNeedsConfirmation(t *testing.T) {
	s, stub := newTestServer(t)
	if err := s.Session.Set(models.Session{ID: 7, Username: "alice"}); err != nil {
		t.Fatalf("Set session: %v", err)
	}
	h := routes(s)

	rec := postForm(h, "/history/3/delete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	doc := parse(t, rec)
	if action, _ := doc.Find(".confirm form").Attr("action"); action != "/history/3/delete" {
		t.Errorf("confirm action = %q", action)
	}
	if n := stub.count("DELETE"); n != 0 {
		t.Fatalf("DELETE sent without confirmation (%d calls)", n)
	}

	rec = postForm(h, "/history/3/delete", url.Values{"confirm": {"yes"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("confirmed delete status = %d", rec.Code)
	}
	if n := stub.count("DELETE /api/history/3"); n != 1 {
		t.Errorf("DELETE calls = %d, want 1", n)
	}
}

func TestHistoryListsEntries(t *testing.T) {
	s, _ := newTestServer(t)
	s.Session.Set(models.Session{ID: 7, Username: "alice"})
	doc := parse(t, get(routes(s), "/history"))
	if n := doc.Find(".history-table tbody tr").Length(); n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
	if doc.Find(".pagination").Length() != 0 {
		t.Error("pagination shown for a single page")
	}
}

func TestAdminForbiddenForRegularUser(t *testing.T) {
	s, stub := newTestServer(t)
	s.Session.Set(models.Session{ID: 7, Username: "alice"})
	rec := get(routes(s), "/admin/")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if len(stub.calls) != 0 {
		t.Errorf("backend called: %v", stub.calls)
	}
}

func TestHealthReportsBackend(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(routes(s), "/health")
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body["backend"] != "healthy" || body["ok"] != true {
		t.Errorf("health = %v", body)
	}
}
