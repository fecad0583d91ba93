// Package drag makes a parent node's descendants move rigidly with it while
// it is being dragged in the staff network diagram.
//
// Grabbing a department or role node snapshots the positional offset of every
// descendant; each subsequent move re-applies the offsets relative to the
// root's current position in one batched update; releasing the node clears
// the session. Nodes of any other type drag individually, untouched.
//
// The package also contains the Locator, which discovers the live scene for a
// diagram container at runtime and attaches the controller to it.
package drag

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// SessionFunc is notified when a drag session starts (started=true) or ends.
// Descendants is the number of nodes moving with the root.
type SessionFunc func(rootID string, descendants int, started bool)

// Controller synchronizes descendant positions during a drag gesture
type Controller struct {
	mu        sync.Mutex
	draggable map[domain.NodeType]bool
	session   *session
	attached  map[scene.Scene][]scene.Disposer
	onSession SessionFunc
}

// session is the state of one active drag, created on grab and destroyed on
// release. Offsets are relative to the root at grab time; membership is
// frozen for the session even if edges change mid-drag.
type session struct {
	rootID  string
	offsets map[string]domain.Offset
}

// NewController creates a drag controller. Roots of the given types start a
// group drag; all other node types are ignored. With no types given the
// default draggable set is department and role.
func NewController(rootTypes ...domain.NodeType) *Controller {
	if len(rootTypes) == 0 {
		rootTypes = []domain.NodeType{domain.NodeTypeDepartment, domain.NodeTypeRole}
	}
	draggable := make(map[domain.NodeType]bool, len(rootTypes))
	for _, t := range rootTypes {
		draggable[t] = true
	}
	return &Controller{
		draggable: draggable,
		attached:  make(map[scene.Scene][]scene.Disposer),
	}
}

// OnSession installs a callback fired when a drag session starts or ends
func (c *Controller) OnSession(fn SessionFunc) {
	c.mu.Lock()
	c.onSession = fn
	c.mu.Unlock()
}

// Attach installs the gesture handlers on a scene. Attaching the same scene
// twice is a no-op; the first attachment wins.
func (c *Controller) Attach(s scene.Scene) {
	c.mu.Lock()
	if _, ok := c.attached[s]; ok {
		c.mu.Unlock()
		return
	}
	disposers := []scene.Disposer{
		s.On(scene.EventGrab, scene.SelectorNode, func(ev scene.Event) { c.onGrab(s, ev) }),
		s.On(scene.EventDrag, scene.SelectorNode, func(ev scene.Event) { c.onMove(s, ev) }),
		s.On(scene.EventFree, scene.SelectorNode, func(ev scene.Event) { c.onFree(ev) }),
	}
	c.attached[s] = disposers
	c.mu.Unlock()

	log.Debugf("drag controller attached, draggable root types: %d", len(c.draggable))
}

// Detach removes the gesture handlers from a scene previously attached
func (c *Controller) Detach(s scene.Scene) {
	c.mu.Lock()
	disposers := c.attached[s]
	delete(c.attached, s)
	c.mu.Unlock()

	for _, dispose := range disposers {
		dispose()
	}
}

// Active reports whether a drag session is in progress and for which root
func (c *Controller) Active() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", false
	}
	return c.session.rootID, true
}

func (c *Controller) onGrab(s scene.Scene, ev scene.Event) {
	c.mu.Lock()
	if c.session != nil {
		// One session at a time; a stray grab mid-drag is ignored
		c.mu.Unlock()
		return
	}
	node, ok := s.NodeByID(ev.NodeID)
	if !ok || !c.draggable[node.Type] {
		c.mu.Unlock()
		return
	}

	rootPos, ok := s.Position(ev.NodeID)
	if !ok {
		c.mu.Unlock()
		return
	}

	offsets := make(map[string]domain.Offset)
	for _, desc := range Descendants(s, ev.NodeID) {
		if pos, ok := s.Position(desc.ID); ok {
			offsets[desc.ID] = pos.Sub(rootPos)
		}
	}
	c.session = &session{rootID: ev.NodeID, offsets: offsets}
	onSession := c.onSession
	c.mu.Unlock()

	log.Debugf("group drag started: root=%s descendants=%d", ev.NodeID, len(offsets))
	if onSession != nil {
		onSession(ev.NodeID, len(offsets), true)
	}
}

func (c *Controller) onMove(s scene.Scene, ev scene.Event) {
	c.mu.Lock()
	if c.session == nil || c.session.rootID != ev.NodeID {
		c.mu.Unlock()
		return
	}
	offsets := c.session.offsets
	c.mu.Unlock()

	rootPos, ok := s.Position(ev.NodeID)
	if !ok {
		return
	}

	// All descendant writes land as one update so the scene renders once
	s.Batch(func() {
		for id, off := range offsets {
			s.SetPosition(id, rootPos.Add(off))
		}
	})
}

func (c *Controller) onFree(ev scene.Event) {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	onSession := c.onSession
	c.mu.Unlock()

	// Any release clears the session, even for a node we never tracked
	if sess == nil {
		return
	}
	log.Debugf("group drag ended: root=%s", sess.rootID)
	if onSession != nil {
		onSession(sess.rootID, len(sess.offsets), false)
	}
}
