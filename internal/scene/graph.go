package scene

import (
	"sync"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

// Graph is the in-memory Scene implementation backing the staff network view.
// It is safe for concurrent use; gesture handlers are invoked without the
// internal lock held, so they may freely call back into the scene.
type Graph struct {
	mu        sync.RWMutex
	nodes     []*domain.Node
	index     map[string]int
	edges     []*domain.Edge
	positions map[string]domain.Position

	subs   map[string][]*subscription
	nextID int

	render     func()
	batchDepth int
	dirty      bool
}

type subscription struct {
	id       int
	selector string
	handler  Handler
}

// NewGraph creates an empty scene graph
func NewGraph() *Graph {
	return &Graph{
		index:     make(map[string]int),
		positions: make(map[string]domain.Position),
		subs:      make(map[string][]*subscription),
	}
}

// AddNode adds a node at the given position. A node with a duplicate id
// replaces the existing one in place, keeping iteration order stable.
func (g *Graph) AddNode(node *domain.Node, pos domain.Position) {
	g.mu.Lock()
	if i, ok := g.index[node.ID]; ok {
		g.nodes[i] = node
	} else {
		g.index[node.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node)
	}
	g.positions[node.ID] = pos
	g.mu.Unlock()
}

// AddEdge adds a directed edge
func (g *Graph) AddEdge(edge *domain.Edge) {
	g.mu.Lock()
	g.edges = append(g.edges, edge)
	g.mu.Unlock()
}

// Clear removes all nodes and edges but keeps subscriptions installed
func (g *Graph) Clear() {
	g.mu.Lock()
	g.nodes = nil
	g.edges = nil
	g.index = make(map[string]int)
	g.positions = make(map[string]domain.Position)
	g.mu.Unlock()
}

// Nodes returns every node in insertion order
func (g *Graph) Nodes() []*domain.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*domain.Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns every directed edge
func (g *Graph) Edges() []*domain.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*domain.Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeByID resolves a node by id
func (g *Graph) NodeByID(id string) (*domain.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Position returns the current position of a node
func (g *Graph) Position(id string) (domain.Position, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	pos, ok := g.positions[id]
	return pos, ok
}

// SetPosition moves a node. Outside a batch the render hook fires
// immediately; inside a batch it is deferred to the end of the batch.
func (g *Graph) SetPosition(id string, pos domain.Position) {
	g.mu.Lock()
	if _, ok := g.index[id]; !ok {
		g.mu.Unlock()
		return
	}
	g.positions[id] = pos
	render := g.markDirtyLocked()
	g.mu.Unlock()

	if render != nil {
		render()
	}
}

// Positions returns a snapshot of all node positions
func (g *Graph) Positions() map[string]domain.Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]domain.Position, len(g.positions))
	for id, pos := range g.positions {
		out[id] = pos
	}
	return out
}

// SetRenderFunc installs the hook invoked after position changes. The hook
// fires once per batch, not once per write.
func (g *Graph) SetRenderFunc(fn func()) {
	g.mu.Lock()
	g.render = fn
	g.mu.Unlock()
}

// Batch applies the mutations made by fn as a single update w.r.t. the
// render hook. Batches nest; the hook fires when the outermost batch ends.
func (g *Graph) Batch(fn func()) {
	g.mu.Lock()
	g.batchDepth++
	g.mu.Unlock()

	fn()

	g.mu.Lock()
	g.batchDepth--
	var render func()
	if g.batchDepth == 0 && g.dirty {
		g.dirty = false
		render = g.render
	}
	g.mu.Unlock()

	if render != nil {
		render()
	}
}

// markDirtyLocked records a pending render. It returns the hook to invoke
// when the write happened outside any batch, nil otherwise.
func (g *Graph) markDirtyLocked() func() {
	if g.batchDepth > 0 {
		g.dirty = true
		return nil
	}
	return g.render
}

// On subscribes a handler to a gesture event and returns its disposer
func (g *Graph) On(event, selector string, h Handler) Disposer {
	g.mu.Lock()
	g.nextID++
	sub := &subscription{id: g.nextID, selector: selector, handler: h}
	g.subs[event] = append(g.subs[event], sub)
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			list := g.subs[event]
			for i, s := range list {
				if s.id == sub.id {
					g.subs[event] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// SubscriberCount returns the number of handlers installed for an event
func (g *Graph) SubscriberCount(event string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.subs[event])
}

// Emit dispatches a gesture event to every matching subscriber. Handlers run
// without the scene lock held and in subscription order. Events for unknown
// node ids are dropped.
func (g *Graph) Emit(ev Event) {
	g.mu.RLock()
	i, ok := g.index[ev.NodeID]
	if !ok {
		g.mu.RUnlock()
		return
	}
	nodeType := g.nodes[i].Type
	matched := make([]Handler, 0, len(g.subs[ev.Name]))
	for _, sub := range g.subs[ev.Name] {
		if sub.selector == SelectorNode || sub.selector == string(nodeType) {
			matched = append(matched, sub.handler)
		}
	}
	g.mu.RUnlock()

	for _, h := range matched {
		h(ev)
	}
}
