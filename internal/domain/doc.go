// Package domain defines the core domain types for the hospital operations dashboard.
//
// This package contains the fundamental entities and value objects shared by the
// rest of the system: the staff network (nodes, edges, positions) rendered as a
// node-link diagram, and the weekly operational records the chart widgets are
// built from.
//
// # Network Types
//
// Node represents an element of the staff network (a department, a role within
// it, or an individual staff member) with free-form properties and a stable id.
//
// Edge represents a directed parent→child relation (department→role,
// role→staff) used for descendant computation during group drags.
//
// Position is a 2D point in scene coordinates.
//
// # Operational Records
//
// ServiceWeek holds one department-week of operational metrics (beds, requests,
// admissions, refusals, satisfaction, morale) plus derived rates.
//
// Patient holds a single admission with arrival/departure dates and derived
// length of stay.
//
// StaffShift holds one staff member's assignment for a given week.
//
// # Calendar Annotations
//
// EventMarker tags a week with a notable hospital event (flu outbreak, staff
// strike, equipment donation). AnomalyWeeks lists the weeks whose records are
// known to be corrupted in the source data.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Rich type system with meaningful constants and enumerations
package domain
