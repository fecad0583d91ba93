package page

import (
	"testing"
	"time"

	"github.com/TNKompanska19/Visualization-Group-25/internal/dom"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

func TestBuildLayout(t *testing.T) {
	doc := dom.NewDocument()
	layout := Build(doc)

	for _, id := range []string{SidebarID, MainAreaID, TrendID, NetworkID, SatisfactionID, MoraleID} {
		if _, ok := doc.GetElementByID(id); !ok {
			t.Errorf("element %q not resolvable", id)
		}
	}
	if layout.Network == nil || layout.Network.ID != NetworkID {
		t.Errorf("layout network = %+v", layout.Network)
	}
}

func TestMountNetwork(t *testing.T) {
	doc := dom.NewDocument()
	Build(doc)
	g := scene.NewGraph()

	if err := MountNetwork(doc, NetworkID, g); err != nil {
		t.Fatalf("MountNetwork: %v", err)
	}

	container, _ := doc.GetElementByID(NetworkID)
	reg, ok := container.Prop("_netreg")
	if !ok {
		t.Fatal("registry prop missing after mount")
	}
	m, ok := reg.(map[string]any)
	if !ok || m["scene"] != g {
		t.Errorf("registry does not carry the scene: %#v", reg)
	}
	if _, ok := doc.GetElementByID(NetworkID + "-canvas"); !ok {
		t.Error("canvas child missing after mount")
	}
}

func TestMountNetworkUnknownContainer(t *testing.T) {
	doc := dom.NewDocument()
	if err := MountNetwork(doc, "nope", scene.NewGraph()); err == nil {
		t.Error("expected error for unknown container")
	}
}

func TestMountNetworkAfter(t *testing.T) {
	doc := dom.NewDocument()
	Build(doc)

	done := MountNetworkAfter(doc, NetworkID, scene.NewGraph(), 10*time.Millisecond)

	if _, ok := doc.GetElementByID(NetworkID + "-canvas"); ok {
		t.Error("canvas mounted before delay elapsed")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("delayed mount: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("delayed mount never completed")
	}
	if _, ok := doc.GetElementByID(NetworkID + "-canvas"); !ok {
		t.Error("canvas missing after delayed mount")
	}
}
