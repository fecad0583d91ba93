// Package dom provides a minimal page document model for widget composition.
//
// The dashboard assembles its pages as a tree of elements. Chart and diagram
// libraries mount into container elements at unpredictable times and stash
// internal back-references on them via an open props map, the way browser
// libraries hang registries off DOM nodes. Nothing here is a rendering
// engine; the tree exists so layout composition, late mounting, and mutation
// observation have something concrete to operate on.
package dom

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Disposer removes an observer when called. Calling it more than once is a
// no-op.
type Disposer func()

// MutationKind classifies a tree change
type MutationKind string

const (
	MutationChildAdded   MutationKind = "child_added"
	MutationChildRemoved MutationKind = "child_removed"
)

// Mutation records a single tree change
type Mutation struct {
	Kind     MutationKind
	TargetID string // id of the parent whose child list changed
}

// Element is a node in the page tree. Props is the attachment-point map where
// mounted libraries keep internal state; its layout is their business, not
// ours.
type Element struct {
	Tag string
	ID  string

	doc      *Document
	parent   *Element
	children []*Element
	props    map[string]any
}

// Document is a page tree with coalesced mutation observation
type Document struct {
	mu   sync.RWMutex
	root *Element
	byID map[string]*Element

	obsMu     sync.Mutex
	observers map[int]func([]Mutation)
	nextObs   int
	pending   []Mutation
	debounced func(func())
}

// NewDocument creates a document with an empty body element
func NewDocument() *Document {
	d := &Document{
		byID:      make(map[string]*Element),
		observers: make(map[int]func([]Mutation)),
		debounced: debounce.New(20 * time.Millisecond),
	}
	d.root = &Element{Tag: "body", doc: d}
	return d
}

// Body returns the document root
func (d *Document) Body() *Element {
	return d.root
}

// CreateElement creates a detached element owned by this document
func (d *Document) CreateElement(tag, id string) *Element {
	return &Element{Tag: tag, ID: id, doc: d, props: make(map[string]any)}
}

// GetElementByID resolves an attached element by id
func (d *Document) GetElementByID(id string) (*Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.byID[id]
	return el, ok
}

// Observe registers a mutation observer. Mutations are delivered coalesced
// after a short quiet period, so a burst of tree changes produces one
// callback.
func (d *Document) Observe(fn func([]Mutation)) Disposer {
	d.obsMu.Lock()
	d.nextObs++
	id := d.nextObs
	d.observers[id] = fn
	d.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.obsMu.Lock()
			delete(d.observers, id)
			d.obsMu.Unlock()
		})
	}
}

func (d *Document) record(m Mutation) {
	d.obsMu.Lock()
	d.pending = append(d.pending, m)
	d.obsMu.Unlock()

	d.debounced(d.flush)
}

func (d *Document) flush() {
	d.obsMu.Lock()
	muts := d.pending
	d.pending = nil
	fns := make([]func([]Mutation), 0, len(d.observers))
	for _, fn := range d.observers {
		fns = append(fns, fn)
	}
	d.obsMu.Unlock()

	if len(muts) == 0 {
		return
	}
	for _, fn := range fns {
		fn(muts)
	}
}

// Append attaches child as the last child of e
func (e *Element) Append(child *Element) {
	d := e.doc
	d.mu.Lock()
	child.parent = e
	e.children = append(e.children, child)
	registerSubtree(d, child)
	d.mu.Unlock()

	d.record(Mutation{Kind: MutationChildAdded, TargetID: e.ID})
}

// Remove detaches e from its parent
func (e *Element) Remove() {
	d := e.doc
	d.mu.Lock()
	parent := e.parent
	if parent == nil {
		d.mu.Unlock()
		return
	}
	for i, c := range parent.children {
		if c == e {
			parent.children = append(parent.children[:i:i], parent.children[i+1:]...)
			break
		}
	}
	e.parent = nil
	unregisterSubtree(d, e)
	d.mu.Unlock()

	d.record(Mutation{Kind: MutationChildRemoved, TargetID: parent.ID})
}

func registerSubtree(d *Document, el *Element) {
	if el.ID != "" {
		d.byID[el.ID] = el
	}
	for _, c := range el.children {
		registerSubtree(d, c)
	}
}

func unregisterSubtree(d *Document, el *Element) {
	if el.ID != "" && d.byID[el.ID] == el {
		delete(d.byID, el.ID)
	}
	for _, c := range el.children {
		unregisterSubtree(d, c)
	}
}

// Children returns a snapshot of the element's children
func (e *Element) Children() []*Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Descendants returns every element below e in depth-first order
func (e *Element) Descendants() []*Element {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	var out []*Element
	var walk func(*Element)
	walk = func(el *Element) {
		for _, c := range el.children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(e)
	return out
}

// SetProp stores a value on the element's attachment-point map
func (e *Element) SetProp(key string, value any) {
	e.doc.mu.Lock()
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[key] = value
	e.doc.mu.Unlock()
}

// Prop reads a value from the element's attachment-point map
func (e *Element) Prop(key string) (any, bool) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	v, ok := e.props[key]
	return v, ok
}

// Props returns a snapshot of the element's attachment-point map
func (e *Element) Props() map[string]any {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	out := make(map[string]any, len(e.props))
	for k, v := range e.props {
		out[k] = v
	}
	return out
}
