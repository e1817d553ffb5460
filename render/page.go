package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ebzefr/WebSecura/logger"
)

// EventType is the kind of a dispatched UI event.
type EventType string

const (
	EventClick   EventType = "click"
	EventKeydown EventType = "keydown"
)

// DocumentTarget is the target of document wide key listeners.
const DocumentTarget = "document"

// Event is a user interaction. Target is the selector of the element that
// received it, for example "#resultsOverlay .results-close".
type Event struct {
	Type   EventType
	Target string
	Key    string
}

type listener struct {
	typ    EventType
	target string
	key    string
	fn     func()
}

// Page is a parsed HTML document that report views are mounted into. Each
// mounted view owns the listeners it registers and drops them on Close.
type Page struct {
	mu        sync.Mutex
	doc       *goquery.Document
	tpl       *Templates
	nextID    uint64
	listeners map[uint64]listener
	mounted   map[string]*Overlay
}

// NewPage parses r as the page to mount into.
func NewPage(tpl *Templates, r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Page{doc: doc, tpl: tpl, listeners: make(map[uint64]listener), mounted: make(map[string]*Overlay)}, nil
}

// Document exposes the parsed document for queries.
func (p *Page) Document() *goquery.Document { return p.doc }

// HTML serializes the page.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return goquery.OuterHtml(p.doc.Selection)
}

// MountOverlay shows v as the results overlay. Any live overlay is closed
// first so at most one exists. It returns nil when the page has no anchor.
func (p *Page) MountOverlay(v View) (*Overlay, error) {
	v.Variant = VariantOverlay
	return p.mount(v)
}

// MountModal shows v as the history detail modal.
func (p *Page) MountModal(v View) (*Overlay, error) {
	v.Variant = VariantModal
	return p.mount(v)
}

func (p *Page) mount(v View) (*Overlay, error) {
	id := v.ElementID()

	fragment, err := p.tpl.Fragment(v)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	anchor := p.doc.Find("#" + AnchorID)
	if anchor.Length() == 0 {
		logger.Debug("No #%s on page, skipping %s", AnchorID, v.Variant)
		return nil, nil
	}
	if prev := p.mounted[id]; prev != nil {
		prev.closeLocked()
	}
	// Nodes not owned by an Overlay, for example server rendered markup.
	p.doc.Find("#" + id).Remove()
	anchor.AppendHtml(fragment)

	o := &Overlay{page: p, id: id}
	root := "#" + id
	o.listenerIDs = []uint64{
		p.addLocked(listener{typ: EventClick, target: root + " ." + v.CloseClass(), fn: o.Close}),
		p.addLocked(listener{typ: EventClick, target: root + " ." + v.BackdropClass(), fn: o.Close}),
		p.addLocked(listener{typ: EventKeydown, target: DocumentTarget, key: v.DismissKey(), fn: o.Close}),
	}
	p.mounted[id] = o
	return o, nil
}

func (p *Page) addLocked(l listener) uint64 {
	p.nextID++
	p.listeners[p.nextID] = l
	return p.nextID
}

// Dispatch delivers e to matching listeners in registration order and
// reports whether any ran. Clicks on the content area match nothing and so
// leave the view open.
func (p *Page) Dispatch(e Event) bool {
	p.mu.Lock()
	var ids []uint64
	for id, l := range p.listeners {
		if l.typ != e.Type || l.target != strings.TrimSpace(e.Target) {
			continue
		}
		if l.key != "" && l.key != e.Key {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.listeners[id].fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns) > 0
}

// ListenerCount is the number of registered listeners.
func (p *Page) ListenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// Count returns how many elements match selector.
func (p *Page) Count(selector string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Find(selector).Length()
}

// Overlay is a mounted report view.
type Overlay struct {
	page        *Page
	id          string
	listenerIDs []uint64
	closed      bool
}

// ID is the element id of the mounted view.
func (o *Overlay) ID() string { return o.id }

// Close removes the view and all three of its listeners. Closing twice, or
// closing a nil Overlay, does nothing.
func (o *Overlay) Close() {
	if o == nil {
		return
	}
	o.page.mu.Lock()
	defer o.page.mu.Unlock()
	o.closeLocked()
}

func (o *Overlay) closeLocked() {
	if o.closed {
		return
	}
	p := o.page
	o.closed = true
	for _, id := range o.listenerIDs {
		delete(p.listeners, id)
	}
	if p.mounted[o.id] == o {
		delete(p.mounted, o.id)
		p.doc.Find("#" + o.id).Remove()
	}
}

// Closed reports whether the view has been dismissed.
func (o *Overlay) Closed() bool {
	o.page.mu.Lock()
	defer o.page.mu.Unlock()
	return o.closed
}
