package models

import "fmt"

// Status is the closed set of complaint lifecycle states. Unknown values are
// rejected at the boundary instead of being carried around as raw strings.
type Status string

const (
	StatusPending          Status = "pending"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusReplied          Status = "replied"
	StatusClosed           Status = "closed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingApproval, StatusReplied, StatusClosed:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", raw)
	}
	return s, nil
}

// Priority is the declared urgency of a complaint. The displayed priority may
// be raised above the declared one by type-based floors (see analysis package).
type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParsePriority converts a raw string into a Priority.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", raw)
	}
	return p, nil
}

// Role is the closed set of actor roles known to the workflow engine.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleController Role = "controller"
	RoleViewer     Role = "viewer"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleController, RoleViewer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return r, nil
}

// Action is a workflow action an actor can request on a complaint.
type Action string

const (
	ActionSubmit           Action = "submit"
	ActionForward          Action = "forward"
	ActionRouteForApproval Action = "route_for_approval"
	ActionApprove          Action = "approve"
	ActionReject           Action = "reject"
	ActionReply            Action = "reply"
	ActionClose            Action = "close"
)

func (a Action) Valid() bool {
	switch a {
	case ActionSubmit, ActionForward, ActionRouteForApproval,
		ActionApprove, ActionReject, ActionReply, ActionClose:
		return true
	}
	return false
}

// ParseAction converts a raw string into an Action.
func ParseAction(raw string) (Action, error) {
	a := Action(raw)
	if !a.Valid() {
		return "", fmt.Errorf("unknown action %q", raw)
	}
	return a, nil
}
