package scene

import (
	"testing"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
)

func buildGraph() *Graph {
	g := NewGraph()
	g.AddNode(domain.NewNode("dept", domain.NodeTypeDepartment, "Emergency"), domain.Position{X: 500, Y: 350})
	g.AddNode(domain.NewNode("role_doctor", domain.NodeTypeRole, "Doctor"), domain.Position{X: 400, Y: 450})
	g.AddNode(domain.NewNode("staff_1", domain.NodeTypeStaff, "A"), domain.Position{X: 350, Y: 550})
	g.AddEdge(domain.NewEdge("dept", "role_doctor", domain.EdgeTypeStaffing))
	g.AddEdge(domain.NewEdge("role_doctor", "staff_1", domain.EdgeTypeAssignment))
	return g
}

func TestGraphLookup(t *testing.T) {
	g := buildGraph()

	t.Run("node by id", func(t *testing.T) {
		node, ok := g.NodeByID("role_doctor")
		if !ok {
			t.Fatal("expected node to exist")
		}
		if node.Type != domain.NodeTypeRole {
			t.Errorf("expected role node, got %s", node.Type)
		}
		if _, ok := g.NodeByID("ghost"); ok {
			t.Error("expected missing node lookup to fail")
		}
	})

	t.Run("iteration order is stable", func(t *testing.T) {
		nodes := g.Nodes()
		want := []string{"dept", "role_doctor", "staff_1"}
		if len(nodes) != len(want) {
			t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
		}
		for i, id := range want {
			if nodes[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, nodes[i].ID)
			}
		}
	})

	t.Run("duplicate add replaces in place", func(t *testing.T) {
		g := buildGraph()
		g.AddNode(domain.NewNode("dept", domain.NodeTypeDepartment, "Renamed"), domain.Position{X: 1, Y: 2})

		if len(g.Nodes()) != 3 {
			t.Errorf("expected 3 nodes after replace, got %d", len(g.Nodes()))
		}
		node, _ := g.NodeByID("dept")
		if node.Label != "Renamed" {
			t.Errorf("expected replaced label, got %s", node.Label)
		}
	})
}

func TestGraphBatchRendering(t *testing.T) {
	t.Run("each write renders outside a batch", func(t *testing.T) {
		g := buildGraph()
		renders := 0
		g.SetRenderFunc(func() { renders++ })

		g.SetPosition("staff_1", domain.Position{X: 1, Y: 1})
		g.SetPosition("staff_1", domain.Position{X: 2, Y: 2})

		if renders != 2 {
			t.Errorf("expected 2 renders, got %d", renders)
		}
	})

	t.Run("batched writes render once", func(t *testing.T) {
		g := buildGraph()
		renders := 0
		g.SetRenderFunc(func() { renders++ })

		g.Batch(func() {
			g.SetPosition("role_doctor", domain.Position{X: 10, Y: 10})
			g.SetPosition("staff_1", domain.Position{X: 20, Y: 20})
		})

		if renders != 1 {
			t.Errorf("expected a single render per batch, got %d", renders)
		}
	})

	t.Run("empty batch does not render", func(t *testing.T) {
		g := buildGraph()
		renders := 0
		g.SetRenderFunc(func() { renders++ })

		g.Batch(func() {})

		if renders != 0 {
			t.Errorf("expected no render for empty batch, got %d", renders)
		}
	})

	t.Run("nested batches render at outermost end", func(t *testing.T) {
		g := buildGraph()
		renders := 0
		g.SetRenderFunc(func() { renders++ })

		g.Batch(func() {
			g.SetPosition("staff_1", domain.Position{X: 5, Y: 5})
			g.Batch(func() {
				g.SetPosition("role_doctor", domain.Position{X: 6, Y: 6})
			})
			if renders != 0 {
				t.Errorf("render fired before outermost batch ended")
			}
		})

		if renders != 1 {
			t.Errorf("expected 1 render, got %d", renders)
		}
	})

	t.Run("unknown node write is dropped", func(t *testing.T) {
		g := buildGraph()
		renders := 0
		g.SetRenderFunc(func() { renders++ })

		g.SetPosition("ghost", domain.Position{X: 9, Y: 9})

		if renders != 0 {
			t.Errorf("expected no render for unknown node, got %d", renders)
		}
	})
}

func TestGraphSubscriptions(t *testing.T) {
	t.Run("selector filters by node type", func(t *testing.T) {
		g := buildGraph()
		var all, depts []string
		g.On(EventGrab, SelectorNode, func(ev Event) { all = append(all, ev.NodeID) })
		g.On(EventGrab, string(domain.NodeTypeDepartment), func(ev Event) { depts = append(depts, ev.NodeID) })

		g.Emit(Event{Name: EventGrab, NodeID: "dept"})
		g.Emit(Event{Name: EventGrab, NodeID: "staff_1"})

		if len(all) != 2 {
			t.Errorf("expected 2 deliveries to wildcard subscriber, got %d", len(all))
		}
		if len(depts) != 1 || depts[0] != "dept" {
			t.Errorf("expected only the department grab, got %v", depts)
		}
	})

	t.Run("disposer removes handler and is idempotent", func(t *testing.T) {
		g := buildGraph()
		calls := 0
		dispose := g.On(EventDrag, SelectorNode, func(Event) { calls++ })

		g.Emit(Event{Name: EventDrag, NodeID: "dept"})
		dispose()
		dispose()
		g.Emit(Event{Name: EventDrag, NodeID: "dept"})

		if calls != 1 {
			t.Errorf("expected 1 call, got %d", calls)
		}
		if g.SubscriberCount(EventDrag) != 0 {
			t.Errorf("expected no subscribers after dispose")
		}
	})

	t.Run("events for unknown nodes are dropped", func(t *testing.T) {
		g := buildGraph()
		calls := 0
		g.On(EventFree, SelectorNode, func(Event) { calls++ })

		g.Emit(Event{Name: EventFree, NodeID: "ghost"})

		if calls != 0 {
			t.Errorf("expected no delivery for unknown node, got %d", calls)
		}
	})

	t.Run("handler may call back into the scene", func(t *testing.T) {
		g := buildGraph()
		g.On(EventDrag, SelectorNode, func(ev Event) {
			g.SetPosition(ev.NodeID, ev.Pos)
		})

		g.Emit(Event{Name: EventDrag, NodeID: "dept", Pos: domain.Position{X: 77, Y: 88}})

		pos, _ := g.Position("dept")
		if pos.X != 77 || pos.Y != 88 {
			t.Errorf("expected handler write to land, got %+v", pos)
		}
	})
}
