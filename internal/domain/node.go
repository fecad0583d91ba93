package domain

// NodeType classifies an element of the staff network
type NodeType string

const (
	NodeTypeDepartment NodeType = "department"
	NodeTypeRole       NodeType = "role"
	NodeTypeStaff      NodeType = "staff"
	NodeTypeUnknown    NodeType = "unknown"
)

// RoleName identifies a staff role within a department
type RoleName string

const (
	RoleDoctor           RoleName = "doctor"
	RoleNurse            RoleName = "nurse"
	RoleNursingAssistant RoleName = "nursing_assistant"
)

// Node represents an element of the staff network
type Node struct {
	ID         string         `json:"id"`
	Type       NodeType       `json:"node_type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
}

// NewNode creates a new node with initialized properties
func NewNode(id string, nodeType NodeType, label string) *Node {
	return &Node{
		ID:         id,
		Type:       nodeType,
		Label:      label,
		Properties: make(map[string]any),
	}
}

// SetProperty sets a property value
func (n *Node) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
}

// GetProperty gets a property value
func (n *Node) GetProperty(key string) (any, bool) {
	if n.Properties == nil {
		return nil, false
	}
	val, ok := n.Properties[key]
	return val, ok
}

// GetPropertyString gets a property as a string
func (n *Node) GetPropertyString(key string) string {
	val, ok := n.GetProperty(key)
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
