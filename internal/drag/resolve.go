package drag

import (
	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/scene"
)

// Descendants returns every node transitively reachable from rootID by
// following directed edges (source → target), in breadth-first discovery
// order. The root itself is not part of the result. A visited set guarantees
// termination on cyclic edge sets and uniqueness on diamonds. A root id not
// present in the scene yields an empty result, not an error.
func Descendants(s scene.Scene, rootID string) []*domain.Node {
	if _, ok := s.NodeByID(rootID); !ok {
		return nil
	}

	children := make(map[string][]string)
	for _, e := range s.Edges() {
		children[e.SourceID] = append(children[e.SourceID], e.TargetID)
	}

	visited := map[string]bool{rootID: true}
	queue := []string{rootID}
	var out []*domain.Node

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, childID := range children[id] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			node, ok := s.NodeByID(childID)
			if !ok {
				// Edge pointing at a node that no longer exists
				continue
			}
			out = append(out, node)
			queue = append(queue, childID)
		}
	}

	return out
}
