package domain

import (
	"testing"
)

func TestNewNode(t *testing.T) {
	t.Run("initializes properties map", func(t *testing.T) {
		node := NewNode("dept_emergency", NodeTypeDepartment, "Emergency")

		if node.ID != "dept_emergency" {
			t.Errorf("expected ID 'dept_emergency', got %s", node.ID)
		}
		if node.Type != NodeTypeDepartment {
			t.Errorf("expected type department, got %s", node.Type)
		}
		if node.Properties == nil {
			t.Error("expected Properties to be initialized")
		}
	})
}

func TestNodeProperties(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		node := NewNode("role_doctor", NodeTypeRole, "Doctor")
		node.SetProperty("role_name", "doctor")

		val, ok := node.GetProperty("role_name")
		if !ok {
			t.Fatal("expected property to exist")
		}
		if val != "doctor" {
			t.Errorf("expected 'doctor', got %v", val)
		}
	})

	t.Run("get on nil map", func(t *testing.T) {
		node := &Node{ID: "bare"}
		if _, ok := node.GetProperty("missing"); ok {
			t.Error("expected missing property on nil map")
		}
	})

	t.Run("set on nil map initializes", func(t *testing.T) {
		node := &Node{ID: "bare"}
		node.SetProperty("k", 1)
		if _, ok := node.GetProperty("k"); !ok {
			t.Error("expected property after set on nil map")
		}
	})

	t.Run("string accessor", func(t *testing.T) {
		node := NewNode("staff_7", NodeTypeStaff, "S. Kovacheva")
		node.SetProperty("color", "#AF7AC5")
		node.SetProperty("size", 45)

		if got := node.GetPropertyString("color"); got != "#AF7AC5" {
			t.Errorf("expected '#AF7AC5', got %q", got)
		}
		if got := node.GetPropertyString("size"); got != "" {
			t.Errorf("expected empty string for non-string property, got %q", got)
		}
		if got := node.GetPropertyString("missing"); got != "" {
			t.Errorf("expected empty string for missing property, got %q", got)
		}
	})
}
