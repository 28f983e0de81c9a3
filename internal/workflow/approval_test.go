package workflow_test

import (
	"testing"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestListPendingRequiresScope verifies the queue refuses an empty approver
// scope instead of listing everything.
func TestListPendingRequiresScope(t *testing.T) {
	storageMock := new(MockStorage)
	queue := workflow.NewApprovalQueue(storageMock, workflow.NewEngine(storageMock))

	_, err := queue.ListPending("")

	assert.ErrorIs(t, err, workflow.ErrValidation)
	storageMock.AssertNotCalled(t, "ListAwaitingApproval", mock.Anything)
}

// TestListPendingDelegatesToStorage verifies the queue is a pure read over
// the awaiting_approval set for the scope.
func TestListPendingDelegatesToStorage(t *testing.T) {
	storageMock := new(MockStorage)
	queue := workflow.NewApprovalQueue(storageMock, workflow.NewEngine(storageMock))

	expected := []models.Complaint{
		{ComplaintID: "CMP202401010001", Status: models.StatusAwaitingApproval, Department: "Commercial"},
		{ComplaintID: "CMP202401020003", Status: models.StatusAwaitingApproval, Department: "Commercial"},
	}
	storageMock.On("ListAwaitingApproval", "Commercial").Return(expected, nil).Once()

	pending, err := queue.ListPending("Commercial")

	assert.NoError(t, err)
	assert.Equal(t, expected, pending)
	storageMock.AssertExpectations(t)
}

// TestQueueApproveDelegatesToEngine verifies Approve goes through the engine
// with action=approve, so all transition and scope rules apply.
func TestQueueApproveDelegatesToEngine(t *testing.T) {
	storageMock := new(MockStorage)
	engine := workflow.NewEngine(storageMock)
	queue := workflow.NewApprovalQueue(storageMock, engine)

	c := awaitingComplaint()
	storageMock.On("GetComplaintByID", c.ComplaintID).Return(c, nil).Once()
	storageMock.On("ApplyTransition", c, mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.TransactionType == models.ActionApprove && txn.Remarks == "cleared"
	}), (*models.Rejection)(nil)).Return(nil).Once()
	storageMock.On("PublishEvent", mock.AnythingOfType("models.WorkflowEvent")).Return(nil)

	updated, err := queue.Approve(c.ComplaintID, approver, "cleared")

	assert.NoError(t, err)
	assert.Equal(t, models.StatusReplied, updated.Status)
	storageMock.AssertExpectations(t)
}

// TestQueueRejectDelegatesToEngine verifies Reject routes the mandatory
// reason and redirect through the engine.
func TestQueueRejectDelegatesToEngine(t *testing.T) {
	storageMock := new(MockStorage)
	engine := workflow.NewEngine(storageMock)
	queue := workflow.NewApprovalQueue(storageMock, engine)

	c := awaitingComplaint()
	storageMock.On("GetComplaintByID", c.ComplaintID).Return(c, nil).Once()
	storageMock.On("ApplyTransition", c, (*models.Transaction)(nil), mock.MatchedBy(func(r *models.Rejection) bool {
		return r.RejectionReason == "rates not agreed"
	})).Return(nil).Once()
	storageMock.On("PublishEvent", mock.AnythingOfType("models.WorkflowEvent")).Return(nil)

	updated, err := queue.Reject(c.ComplaintID, approver, "rates not agreed", "", nil)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, "Operations", updated.Department)
}
