package render

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Ebzefr/WebSecura/models"
)

const hostPage = `<!DOCTYPE html><html><body><main><div id="results-anchor"></div></main></body></html>`

func newTestPage(t *testing.T, html string) *Page {
	t.Helper()
	tpl, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	p, err := NewPage(tpl, strings.NewReader(html))
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func TestMountOverlayReplacesPrevious(t *testing.T) {
	p := newTestPage(t, hostPage)

	first := sampleReport()
	second := &models.ScanReport{URL: "https://second.example", ScanTime: "2024-05-02T08:00:00", Results: []models.CheckResult{{Check: "HSTS", Passed: true}}}

	o1, err := p.MountOverlay(RenderOverlay(first))
	if err != nil || o1 == nil {
		t.Fatalf("MountOverlay: %v, %v", o1, err)
	}
	o2, err := p.MountOverlay(RenderOverlay(second))
	if err != nil {
		t.Fatalf("MountOverlay again: %v", err)
	}

	if n := p.Count("#" + OverlayID); n != 1 {
		t.Fatalf("overlays in document = %d, want 1", n)
	}
	if got := p.Document().Find("#resultsOverlay .scan-url").Text(); got != "https://second.example" {
		t.Errorf("overlay shows %q, want the second report", got)
	}
	if n := p.Count("#resultsOverlay .result-card"); n != 1 {
		t.Errorf("cards = %d, want 1", n)
	}
	if !o1.Closed() || o2.Closed() {
		t.Error("first overlay should be closed and second open")
	}
	if n := p.ListenerCount(); n != 3 {
		t.Errorf("listeners = %d, want 3", n)
	}
}

func TestConcurrentMountsLeaveOneOverlay(t *testing.T) {
	p := newTestPage(t, hostPage)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := &models.ScanReport{URL: fmt.Sprintf("https://site%d.example", i), Results: []models.CheckResult{{Check: "HTTPS", Passed: true}}}
			if _, err := p.MountOverlay(RenderOverlay(r)); err != nil {
				t.Errorf("MountOverlay %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if n := p.Count("#" + OverlayID); n != 1 {
		t.Fatalf("overlays in document = %d, want 1", n)
	}
	if n := p.ListenerCount(); n != 3 {
		t.Errorf("listeners = %d, want 3", n)
	}
	if !p.Dispatch(Event{Type: EventKeydown, Target: DocumentTarget, Key: "Escape"}) {
		t.Fatal("Escape did not reach the surviving overlay")
	}
	if p.Count("#"+OverlayID) != 0 || p.ListenerCount() != 0 {
		t.Error("overlay or listeners left after Escape")
	}
}

func TestOverlayDismissal(t *testing.T) {
	events := map[string]Event{
		"close control": {Type: EventClick, Target: "#resultsOverlay .results-close"},
		"backdrop":      {Type: EventClick, Target: "#resultsOverlay .results-backdrop"},
		"escape":        {Type: EventKeydown, Target: DocumentTarget, Key: "Escape"},
	}
	for name, ev := range events {
		t.Run(name, func(t *testing.T) {
			p := newTestPage(t, hostPage)
			o, _ := p.MountOverlay(RenderOverlay(sampleReport()))

			if p.Dispatch(Event{Type: EventClick, Target: "#resultsOverlay .results-container"}) {
				t.Error("click inside the content closed the overlay")
			}
			if p.Dispatch(Event{Type: EventKeydown, Target: DocumentTarget, Key: "Enter"}) {
				t.Error("Enter closed the overlay")
			}
			if !p.Dispatch(ev) {
				t.Fatal("event was not handled")
			}
			if !o.Closed() || p.Count("#"+OverlayID) != 0 {
				t.Error("overlay still open")
			}
			if n := p.ListenerCount(); n != 0 {
				t.Errorf("%d listeners left after close", n)
			}
			if p.Dispatch(Event{Type: EventKeydown, Target: DocumentTarget, Key: "Escape"}) {
				t.Error("Escape handler survived close")
			}
		})
	}
}

func TestMountWithoutAnchorIsNoop(t *testing.T) {
	p := newTestPage(t, `<html><body><p>minimal</p></body></html>`)
	o, err := p.MountOverlay(RenderOverlay(sampleReport()))
	if err != nil || o != nil {
		t.Fatalf("MountOverlay = %v, %v; want nil, nil", o, err)
	}
	o.Close()
	if p.Count("#"+OverlayID) != 0 || p.ListenerCount() != 0 {
		t.Error("mount without anchor changed the page")
	}
}

func TestOverlayAndModalCoexist(t *testing.T) {
	p := newTestPage(t, hostPage)
	p.MountOverlay(RenderOverlay(sampleReport()))
	m, _ := p.MountModal(RenderModal(sampleReport()))

	if p.Count("#"+OverlayID) != 1 || p.Count("#"+ModalID) != 1 {
		t.Fatal("expected one overlay and one modal")
	}
	p.Dispatch(Event{Type: EventClick, Target: "#historyModal .modal-close"})
	if !m.Closed() || p.Count("#"+OverlayID) != 1 {
		t.Error("closing the modal should leave the overlay")
	}
}

func TestUntrustedTextIsEscaped(t *testing.T) {
	p := newTestPage(t, hostPage)
	r := &models.ScanReport{
		URL: "javascript:alert(1)",
		Results: []models.CheckResult{{
			Check:       `<script>alert("x")</script>`,
			Description: `<img src=x onerror=alert(1)>`,
		}},
	}
	if _, err := p.MountOverlay(RenderOverlay(r)); err != nil {
		t.Fatalf("MountOverlay: %v", err)
	}
	if n := p.Count("#resultsOverlay script, #resultsOverlay img"); n != 0 {
		t.Errorf("backend text produced %d live elements", n)
	}
	if got := p.Document().Find(".result-title").Text(); got != `<script>alert("x")</script>` {
		t.Errorf("title text = %q", got)
	}
	href, _ := p.Document().Find(".scan-url").Attr("href")
	if strings.HasPrefix(href, "javascript:") {
		t.Errorf("unsafe href kept: %q", href)
	}
}
