package drag

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TNKompanska19/Visualization-Group-25/internal/dom"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// Attachment-point names diagram libraries are known to use when stashing
// their registry on a container element. Probed first, before the rest of
// the props map. Not a stable contract; the whole search is best effort.
var wellKnownProps = []string{"_netreg", "_cyreg", "_viz"}

// Probe bounds. The registry object sits at most a couple of levels below an
// attachment point; anything deeper is some other library's internals.
const (
	probeMaxDepth = 4
	probeMaxNodes = 256
)

// LocatorConfig tunes the scene search
type LocatorConfig struct {
	ContainerID string        `yaml:"container_id"`
	MaxAttempts int           `yaml:"max_attempts"`
	Interval    time.Duration `yaml:"interval"`
}

// DefaultLocatorConfig matches the container id of the staff network widget
func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		ContainerID: "staff-network-weekly",
		MaxAttempts: 20,
		Interval:    500 * time.Millisecond,
	}
}

// Locator finds the live scene for a diagram container, tolerating arbitrary
// mount delay and the host library's internal object layout. On success it
// hands the scene to the controller exactly once per scene instance. On
// exhausting its retries it gives up silently; the drag feature degrades to
// unavailable and the rest of the page is unaffected.
type Locator struct {
	doc        *dom.Document
	cfg        LocatorConfig
	controller *Controller

	mu         sync.Mutex
	found      map[scene.Scene]bool
	obsDispose dom.Disposer
	closed     bool
}

// NewLocator creates a locator that attaches ctrl to whatever scene appears
// under the configured container
func NewLocator(doc *dom.Document, cfg LocatorConfig, ctrl *Controller) *Locator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultLocatorConfig().MaxAttempts
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultLocatorConfig().Interval
	}
	if cfg.ContainerID == "" {
		cfg.ContainerID = DefaultLocatorConfig().ContainerID
	}
	return &Locator{
		doc:        doc,
		cfg:        cfg,
		controller: ctrl,
		found:      make(map[scene.Scene]bool),
	}
}

// Run starts the bounded retry loop and installs the mutation observer that
// re-triggers the search when the page subtree changes (covering late
// replacement of the diagram). It returns immediately; the search proceeds
// in the background until ctx is cancelled, the attempts are exhausted, or
// Close is called. The observer outlives the polling loop.
func (l *Locator) Run(ctx context.Context) {
	l.mu.Lock()
	if l.obsDispose == nil && !l.closed {
		l.obsDispose = l.doc.Observe(func([]dom.Mutation) {
			l.attempt()
		})
	}
	l.mu.Unlock()

	go l.poll(ctx)
}

func (l *Locator) poll(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= l.cfg.MaxAttempts; attempt++ {
		if l.attempt() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
	log.Warnf("scene locator: no scene found under #%s after %d attempts, giving up",
		l.cfg.ContainerID, l.cfg.MaxAttempts)
}

// Close disposes the mutation observer. Safe to call at any time.
func (l *Locator) Close() {
	l.mu.Lock()
	dispose := l.obsDispose
	l.obsDispose = nil
	l.closed = true
	l.mu.Unlock()

	if dispose != nil {
		dispose()
	}
}

// attempt runs one search pass. It returns true when a scene is attached
// (now or previously).
func (l *Locator) attempt() bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return true
	}
	l.mu.Unlock()

	sc := l.find()
	if sc == nil {
		l.mu.Lock()
		done := len(l.found) > 0
		l.mu.Unlock()
		return done
	}

	l.mu.Lock()
	already := l.found[sc]
	l.found[sc] = true
	l.mu.Unlock()

	if !already {
		log.Infof("scene locator: found scene under #%s, attaching drag controller", l.cfg.ContainerID)
		l.controller.Attach(sc)
	}
	return true
}

// find searches the container's attachment points for a value satisfying the
// scene capability contract, then falls back to any descendant canvas
// element.
func (l *Locator) find() scene.Scene {
	container, ok := l.doc.GetElementByID(l.cfg.ContainerID)
	if !ok {
		return nil
	}

	if sc := probeElement(container); sc != nil {
		return sc
	}
	for _, el := range container.Descendants() {
		if el.Tag != "canvas" {
			continue
		}
		if sc := probeElement(el); sc != nil {
			return sc
		}
	}
	return nil
}

// probeElement searches one element's props, well-known attachment points
// first
func probeElement(el *dom.Element) scene.Scene {
	props := el.Props()
	for _, key := range wellKnownProps {
		if v, ok := props[key]; ok {
			if sc := probeValue(v); sc != nil {
				return sc
			}
		}
	}
	for key, v := range props {
		if isWellKnown(key) {
			continue
		}
		if sc := probeValue(v); sc != nil {
			return sc
		}
	}
	return nil
}

func isWellKnown(key string) bool {
	for _, k := range wellKnownProps {
		if k == key {
			return true
		}
	}
	return false
}

type probeItem struct {
	value any
	depth int
}

// probeValue walks an unknown object graph breadth-first, bounded in depth
// and node count and cycle-guarded by pointer identity, looking for a value
// that passes the scene capability test. Panics raised while inspecting a
// candidate are treated as "not a match".
func probeValue(root any) scene.Scene {
	visited := make(map[uintptr]bool)
	queue := []probeItem{{value: root, depth: 0}}
	examined := 0

	for len(queue) > 0 && examined < probeMaxNodes {
		item := queue[0]
		queue = queue[1:]
		examined++

		if sc, ok := capabilityTest(item.value); ok {
			return sc
		}
		if item.depth >= probeMaxDepth {
			continue
		}
		queue = append(queue, expand(item, visited)...)
	}
	return nil
}

// capabilityTest checks whether v satisfies the scene contract
func capabilityTest(v any) (sc scene.Scene, ok bool) {
	defer func() {
		if recover() != nil {
			sc, ok = nil, false
		}
	}()
	sc, ok = v.(scene.Scene)
	return sc, ok
}

// expand produces the children of a probe item: map values, slice elements,
// pointer targets, and exported struct fields. Values whose inspection
// panics are skipped.
func expand(item probeItem, visited map[uintptr]bool) (children []probeItem) {
	defer func() {
		if recover() != nil {
			children = nil
		}
	}()

	rv := reflect.ValueOf(item.value)
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		ptr := rv.Pointer()
		if visited[ptr] {
			return nil
		}
		visited[ptr] = true
	}

	depth := item.depth + 1
	switch rv.Kind() {
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			v := rv.MapIndex(key)
			if v.CanInterface() {
				children = append(children, probeItem{value: v.Interface(), depth: depth})
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			v := rv.Index(i)
			if v.CanInterface() {
				children = append(children, probeItem{value: v.Interface(), depth: depth})
			}
		}
	case reflect.Ptr:
		if elem := rv.Elem(); elem.IsValid() && elem.CanInterface() {
			children = append(children, probeItem{value: elem.Interface(), depth: depth})
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			if f.CanInterface() {
				children = append(children, probeItem{value: f.Interface(), depth: depth})
			}
		}
	}
	return children
}
