// Package page composes the dashboard's widget tree and mounts the staff
// network scene into it. Widgets render client-side; the tree here is the
// server's model of what the page looks like, which is what the scene
// locator searches.
package page

import (
	"fmt"
	"time"

	"github.com/TNKompanska19/Visualization-Group-25/internal/dom"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// Widget container ids. The staff network id is what the drag locator
// polls for.
const (
	SidebarID      = "sidebar"
	MainAreaID     = "main-widget-area"
	TrendID        = "weekly-trend"
	NetworkID      = "staff-network-weekly"
	SatisfactionID = "mini-satisfaction"
	MoraleID       = "mini-morale"
)

// Layout holds the main regions of the dashboard document
type Layout struct {
	Sidebar *dom.Element
	Main    *dom.Element
	Trend   *dom.Element
	Network *dom.Element
}

// Build assembles the dashboard layout under the document body
func Build(doc *dom.Document) *Layout {
	sidebar := doc.CreateElement("aside", SidebarID)
	main := doc.CreateElement("main", MainAreaID)

	trend := doc.CreateElement("div", TrendID)
	network := doc.CreateElement("div", NetworkID)
	main.Append(trend)
	main.Append(network)

	for _, id := range []string{SatisfactionID, MoraleID} {
		main.Append(doc.CreateElement("div", id))
	}

	doc.Body().Append(sidebar)
	doc.Body().Append(main)

	return &Layout{Sidebar: sidebar, Main: main, Trend: trend, Network: network}
}

// MountNetwork attaches the scene graph to the network container the way
// the rendering library does: a registry prop on the container plus a
// canvas child.
func MountNetwork(doc *dom.Document, containerID string, g *scene.Graph) error {
	container, ok := doc.GetElementByID(containerID)
	if !ok {
		return fmt.Errorf("no container %q in document", containerID)
	}

	canvas := doc.CreateElement("canvas", containerID+"-canvas")
	container.Append(canvas)
	container.SetProp("_netreg", map[string]any{
		"version": 1,
		"scene":   g,
	})
	return nil
}

// MountNetworkAfter mounts the scene once the delay elapses, mimicking a
// widget that initializes asynchronously. The returned channel reports the
// mount result.
func MountNetworkAfter(doc *dom.Document, containerID string, g *scene.Graph, delay time.Duration) <-chan error {
	done := make(chan error, 1)
	time.AfterFunc(delay, func() {
		done <- MountNetwork(doc, containerID, g)
	})
	return done
}
