package handler

import (
	"freightdesk/backend/internal/notify"
	"freightdesk/backend/internal/workflow"
)

// Handler bundles the services the HTTP layer fronts. It contains no
// workflow policy; every transition goes through the engine.
type Handler struct {
	Engine *workflow.Engine
	Queue  *workflow.ApprovalQueue
	Hub    *notify.Hub
}

func NewHandler(e *workflow.Engine, q *workflow.ApprovalQueue, hub *notify.Hub) *Handler {
	return &Handler{Engine: e, Queue: q, Hub: hub}
}
