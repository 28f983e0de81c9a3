package models

import "time"

// WorkflowEvent is the message published on Redis after a transition commits
// and fanned out to connected staff dashboards. It is a notification, not the
// audit record itself; the transactions/rejections tables stay authoritative.
type WorkflowEvent struct {
	ComplaintID string `json:"complaint_id"`
	Action      Action `json:"action"`
	Status      Status `json:"status"`

	// Department is the owning department after the transition; dashboard
	// clients are scoped to it.
	Department string `json:"department"`

	ActorID   string `json:"actor_id"`
	ActorName string `json:"actor_name"`
	Remarks   string `json:"remarks,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
