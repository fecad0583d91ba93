package domain

import (
	"crypto/sha256"
	"fmt"
)

// EdgeType represents the kind of parent→child relation an edge carries
type EdgeType string

const (
	EdgeTypeStaffing    EdgeType = "staffing"    // department → role
	EdgeTypeAssignment  EdgeType = "assignment"  // role → staff
	EdgeTypeSupervision EdgeType = "supervision" // staff → staff
)

// Edge represents a directed connection between two nodes.
// Direction matters: descendants are computed by following SourceID → TargetID.
type Edge struct {
	ID       string   `json:"id"`
	SourceID string   `json:"source"`
	TargetID string   `json:"target"`
	Type     EdgeType `json:"edge_type"`
}

// NewEdge creates a new directed edge
func NewEdge(sourceID, targetID string, edgeType EdgeType) *Edge {
	edge := &Edge{
		SourceID: sourceID,
		TargetID: targetID,
		Type:     edgeType,
	}
	edge.ID = edge.GenerateID()
	return edge
}

// GenerateID creates a deterministic ID for the edge based on its endpoints.
// Unlike an undirected graph, the endpoints are not normalized: an edge a→b
// is distinct from b→a.
func (e *Edge) GenerateID() string {
	key := fmt.Sprintf("%s>%s-%s", e.SourceID, e.TargetID, e.Type)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}
