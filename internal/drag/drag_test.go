package drag

import (
	"testing"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// networkScene builds the smallest realistic staff network: one department,
// two roles, three staff members.
func networkScene() *scene.Graph {
	g := scene.NewGraph()
	g.AddNode(domain.NewNode("dept", domain.NodeTypeDepartment, "Emergency"), domain.Position{X: 500, Y: 350})
	g.AddNode(domain.NewNode("role_doctor", domain.NodeTypeRole, "Doctor"), domain.Position{X: 400, Y: 450})
	g.AddNode(domain.NewNode("role_nurse", domain.NodeTypeRole, "Nurse"), domain.Position{X: 600, Y: 450})
	g.AddNode(domain.NewNode("staff_1", domain.NodeTypeStaff, "A"), domain.Position{X: 350, Y: 550})
	g.AddNode(domain.NewNode("staff_2", domain.NodeTypeStaff, "B"), domain.Position{X: 450, Y: 550})
	g.AddNode(domain.NewNode("staff_3", domain.NodeTypeStaff, "C"), domain.Position{X: 650, Y: 550})
	g.AddEdge(domain.NewEdge("dept", "role_doctor", domain.EdgeTypeStaffing))
	g.AddEdge(domain.NewEdge("dept", "role_nurse", domain.EdgeTypeStaffing))
	g.AddEdge(domain.NewEdge("role_doctor", "staff_1", domain.EdgeTypeAssignment))
	g.AddEdge(domain.NewEdge("role_doctor", "staff_2", domain.EdgeTypeAssignment))
	g.AddEdge(domain.NewEdge("role_nurse", "staff_3", domain.EdgeTypeAssignment))
	return g
}

func grab(g *scene.Graph, id string) {
	pos, _ := g.Position(id)
	g.Emit(scene.Event{Name: scene.EventGrab, NodeID: id, Pos: pos})
}

func move(g *scene.Graph, id string, to domain.Position) {
	g.SetPosition(id, to)
	g.Emit(scene.Event{Name: scene.EventDrag, NodeID: id, Pos: to})
}

func free(g *scene.Graph, id string) {
	pos, _ := g.Position(id)
	g.Emit(scene.Event{Name: scene.EventFree, NodeID: id, Pos: pos})
}

func TestRigidMotion(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	rootStart, _ := g.Position("role_doctor")
	s1Start, _ := g.Position("staff_1")
	s2Start, _ := g.Position("staff_2")

	grab(g, "role_doctor")
	move(g, "role_doctor", domain.Position{X: 300, Y: 300})
	move(g, "role_doctor", domain.Position{X: 120, Y: 80})

	rootPos, _ := g.Position("role_doctor")
	for id, start := range map[string]domain.Position{"staff_1": s1Start, "staff_2": s2Start} {
		got, _ := g.Position(id)
		want := rootPos.Add(start.Sub(rootStart))
		if got != want {
			t.Errorf("%s: expected %+v, got %+v", id, want, got)
		}
	}

	t.Run("unrelated branch untouched", func(t *testing.T) {
		got, _ := g.Position("staff_3")
		if (got != domain.Position{X: 650, Y: 550}) {
			t.Errorf("staff_3 moved during doctor drag: %+v", got)
		}
	})

	free(g, "role_doctor")
}

func TestDepartmentDragMovesWholeSubtree(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	starts := g.Positions()
	grab(g, "dept")
	move(g, "dept", domain.Position{X: 550, Y: 400})

	rootStart := starts["dept"]
	rootPos, _ := g.Position("dept")
	for _, id := range []string{"role_doctor", "role_nurse", "staff_1", "staff_2", "staff_3"} {
		got, _ := g.Position(id)
		want := rootPos.Add(starts[id].Sub(rootStart))
		if got != want {
			t.Errorf("%s: expected %+v, got %+v", id, want, got)
		}
	}
}

func TestTypeGating(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "staff_1")
	if _, active := ctrl.Active(); active {
		t.Fatal("grabbing a staff node must not start a session")
	}

	before := g.Positions()
	move(g, "staff_1", domain.Position{X: 0, Y: 0})

	for id, pos := range g.Positions() {
		if id == "staff_1" {
			continue
		}
		if pos != before[id] {
			t.Errorf("%s moved during a non-root drag: %+v", id, pos)
		}
	}
}

func TestReleaseAlwaysClears(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "role_nurse")
	if _, active := ctrl.Active(); !active {
		t.Fatal("expected active session after grab")
	}
	free(g, "role_nurse")
	if _, active := ctrl.Active(); active {
		t.Fatal("expected session cleared after free")
	}

	t.Run("subsequent move for former root is a no-op", func(t *testing.T) {
		s3Before, _ := g.Position("staff_3")
		move(g, "role_nurse", domain.Position{X: 10, Y: 10})
		s3After, _ := g.Position("staff_3")
		if s3Before != s3After {
			t.Errorf("descendant moved after release: %+v → %+v", s3Before, s3After)
		}
	})

	t.Run("release of an unrelated node also clears", func(t *testing.T) {
		grab(g, "role_nurse")
		free(g, "staff_1")
		if _, active := ctrl.Active(); active {
			t.Error("expected any release to clear the session")
		}
	})
}

func TestStrayMoveEventsIgnored(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "role_doctor")
	s3Before, _ := g.Position("staff_3")

	// A drag event for a node other than the session root must be a no-op
	move(g, "role_nurse", domain.Position{X: 1, Y: 1})

	s3After, _ := g.Position("staff_3")
	if s3Before != s3After {
		t.Errorf("stray move event moved staff_3: %+v → %+v", s3Before, s3After)
	}
	if root, _ := ctrl.Active(); root != "role_doctor" {
		t.Errorf("session root changed to %s", root)
	}
}

func TestSecondGrabIgnored(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "role_doctor")
	grab(g, "role_nurse")

	if root, _ := ctrl.Active(); root != "role_doctor" {
		t.Fatalf("second grab replaced the session root: %s", root)
	}

	t.Run("second root's subtree never snapshotted", func(t *testing.T) {
		s3Before, _ := g.Position("staff_3")
		move(g, "role_nurse", domain.Position{X: 700, Y: 500})
		s3After, _ := g.Position("staff_3")
		if s3Before != s3After {
			t.Errorf("staff_3 followed a root that never started a session: %+v → %+v", s3Before, s3After)
		}
	})

	t.Run("first session still drags rigidly", func(t *testing.T) {
		rootStart, _ := g.Position("role_doctor")
		s1Start, _ := g.Position("staff_1")
		move(g, "role_doctor", domain.Position{X: 200, Y: 200})

		rootPos, _ := g.Position("role_doctor")
		got, _ := g.Position("staff_1")
		want := rootPos.Add(s1Start.Sub(rootStart))
		if got != want {
			t.Errorf("staff_1: expected %+v, got %+v", want, got)
		}
	})
}

func TestMembershipFrozenAtGrab(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "role_doctor")

	// Edge added mid-drag: staff_3 becomes a child of role_doctor, but the
	// session's offset map was captured at grab time
	g.AddEdge(domain.NewEdge("role_doctor", "staff_3", domain.EdgeTypeAssignment))

	s3Before, _ := g.Position("staff_3")
	move(g, "role_doctor", domain.Position{X: 50, Y: 50})
	s3After, _ := g.Position("staff_3")

	if s3Before != s3After {
		t.Errorf("node added to subtree mid-drag moved: %+v → %+v", s3Before, s3After)
	}
}

func TestMovesBatchedPerEvent(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "dept")

	renders := 0
	g.SetRenderFunc(func() { renders++ })
	g.Emit(scene.Event{Name: scene.EventDrag, NodeID: "dept", Pos: domain.Position{X: 1, Y: 1}})

	// Five descendants, one render
	if renders != 1 {
		t.Errorf("expected 1 render for the batched descendant update, got %d", renders)
	}
}

func TestAttachIdempotent(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)
	ctrl.Attach(g)

	for _, event := range []string{scene.EventGrab, scene.EventDrag, scene.EventFree} {
		if n := g.SubscriberCount(event); n != 1 {
			t.Errorf("%s: expected 1 handler after double attach, got %d", event, n)
		}
	}

	t.Run("detach removes handlers", func(t *testing.T) {
		ctrl.Detach(g)
		for _, event := range []string{scene.EventGrab, scene.EventDrag, scene.EventFree} {
			if n := g.SubscriberCount(event); n != 0 {
				t.Errorf("%s: expected 0 handlers after detach, got %d", event, n)
			}
		}
	})
}

func TestSessionCallback(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	type call struct {
		root    string
		n       int
		started bool
	}
	var calls []call
	ctrl.OnSession(func(rootID string, n int, started bool) {
		calls = append(calls, call{rootID, n, started})
	})
	ctrl.Attach(g)

	grab(g, "role_doctor")
	free(g, "role_doctor")

	if len(calls) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(calls))
	}
	if !calls[0].started || calls[0].root != "role_doctor" || calls[0].n != 2 {
		t.Errorf("unexpected start callback %+v", calls[0])
	}
	if calls[1].started {
		t.Errorf("expected end callback, got %+v", calls[1])
	}
}

func TestOffsetsRecomputedPerGrab(t *testing.T) {
	g := networkScene()
	ctrl := NewController()
	ctrl.Attach(g)

	grab(g, "role_doctor")
	move(g, "role_doctor", domain.Position{X: 100, Y: 100})
	free(g, "role_doctor")

	// Spread staff_1 away from the root between sessions
	g.SetPosition("staff_1", domain.Position{X: 0, Y: 0})

	grab(g, "role_doctor")
	rootStart, _ := g.Position("role_doctor")
	move(g, "role_doctor", domain.Position{X: 200, Y: 250})

	rootPos, _ := g.Position("role_doctor")
	got, _ := g.Position("staff_1")
	want := rootPos.Add(domain.Position{X: 0, Y: 0}.Sub(rootStart))
	if got != want {
		t.Errorf("expected offsets from the second grab, got %+v want %+v", got, want)
	}
}
