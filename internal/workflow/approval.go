package workflow

import (
	"fmt"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
)

// ApprovalQueue exposes the complaints awaiting sign-off for one approver
// scope, plus the approve/reject actions. All transitions still run through
// the engine; the queue adds no policy of its own.
type ApprovalQueue struct {
	Storage storage.Storage
	Engine  *Engine
}

// NewApprovalQueue creates a new approval queue service.
func NewApprovalQueue(s storage.Storage, e *Engine) *ApprovalQueue {
	return &ApprovalQueue{Storage: s, Engine: e}
}

// ListPending returns the awaiting_approval complaints owned by the given
// department scope, oldest first. Read-only.
func (q *ApprovalQueue) ListPending(scope string) ([]models.Complaint, error) {
	if scope == "" {
		return nil, fmt.Errorf("%w: approver scope is required", ErrValidation)
	}
	return q.Storage.ListAwaitingApproval(scope)
}

// Approve signs off one complaint. The engine rejects actors whose scope does
// not match the complaint's pending department.
func (q *ApprovalQueue) Approve(complaintID string, actor models.Actor, remarks string) (*models.Complaint, error) {
	return q.Engine.ApplyAction(complaintID, actor, ActionRequest{
		Action:  models.ActionApprove,
		Remarks: remarks,
	})
}

// Reject declines the pending stage with a mandatory reason, optionally
// redirecting the complaint to a named department instead of the snapshotted
// pre-approval owner.
func (q *ApprovalQueue) Reject(complaintID string, actor models.Actor, reason, redirectTo string, redirectToName *string) (*models.Complaint, error) {
	return q.Engine.ApplyAction(complaintID, actor, ActionRequest{
		Action:         models.ActionReject,
		Reason:         reason,
		RedirectTo:     redirectTo,
		RedirectToName: redirectToName,
	})
}
