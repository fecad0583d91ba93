// Package scene defines the capability contract for a live node-link diagram
// and provides an in-memory implementation of it.
//
// The drag controller never constructs or destroys a scene; it holds a borrowed
// reference discovered at runtime and talks to it exclusively through the Scene
// interface. Anything that exposes these capabilities (node/edge enumeration,
// position access, gesture subscription, batched mutation) can host a group
// drag, which keeps the controller insulated from the rendering layer.
package scene

import (
	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

// Gesture event names, matching the pointer interaction phases of the
// rendering layer: grab (press), drag (move), free (release).
const (
	EventGrab = "grab"
	EventDrag = "drag"
	EventFree = "free"
)

// SelectorNode matches every node regardless of type
const SelectorNode = "node"

// Event is a single gesture occurrence on a node
type Event struct {
	Name   string          `json:"name"`
	NodeID string          `json:"node_id"`
	Pos    domain.Position `json:"pos"`
}

// Handler receives gesture events
type Handler func(Event)

// Disposer removes a subscription when called. Calling it more than once is a
// no-op.
type Disposer func()

// Scene is the capability contract consumed by the drag controller.
//
// Implementations must apply all mutations made inside Batch as a single
// update with respect to rendering: the render hook fires at most once per
// batch, never between individual writes.
type Scene interface {
	// Nodes returns every node in stable iteration order
	Nodes() []*domain.Node

	// Edges returns every directed edge
	Edges() []*domain.Edge

	// NodeByID resolves a node by its id
	NodeByID(id string) (*domain.Node, bool)

	// Position returns the current position of the node with the given id
	Position(id string) (domain.Position, bool)

	// SetPosition moves the node with the given id
	SetPosition(id string, pos domain.Position)

	// On subscribes a handler to a gesture event. The selector restricts
	// delivery: SelectorNode matches all nodes, a NodeType string matches
	// nodes of that type only.
	On(event, selector string, h Handler) Disposer

	// Batch applies the mutations made by fn as one atomic update w.r.t.
	// rendering
	Batch(fn func())
}
