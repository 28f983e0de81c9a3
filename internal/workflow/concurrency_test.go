package workflow_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
	"freightdesk/backend/internal/workflow"

	"github.com/stretchr/testify/assert"
)

// raceStore is an in-memory storage.Storage with the same optimistic version
// check the real store performs, so engine-level races can be exercised
// without a database.
type raceStore struct {
	mu        sync.Mutex
	complaint models.Complaint
	txns      []models.Transaction
	rejs      []models.Rejection
}

func (f *raceStore) GetComplaintByID(id string) (*models.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.complaint.ComplaintID {
		return nil, storage.ErrNotFound
	}
	c := f.complaint
	return &c, nil
}

func (f *raceStore) ApplyTransition(c *models.Complaint, txn *models.Transaction, rej *models.Rejection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.Version != f.complaint.Version {
		return storage.ErrConflict
	}
	f.complaint = *c
	f.complaint.Version++
	now := time.Now()
	if txn != nil {
		txn.CreatedAt = now
		f.txns = append(f.txns, *txn)
	}
	if rej != nil {
		rej.CreatedAt = now
		f.rejs = append(f.rejs, *rej)
	}
	return nil
}

func (f *raceStore) historyLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.txns) + len(f.rejs)
}

// The remaining Storage methods are not exercised by this test.
func (f *raceStore) CreateComplaint(*models.Complaint, *models.Transaction) error { return nil }
func (f *raceStore) ListAwaitingApproval(string) ([]models.Complaint, error)      { return nil, nil }
func (f *raceStore) ListComplaintsForCustomer(string) ([]models.Complaint, error) { return nil, nil }
func (f *raceStore) ListComplaintsForDepartment(string) ([]models.Complaint, error) {
	return nil, nil
}
func (f *raceStore) ListTransactions(string) ([]models.Transaction, error) { return nil, nil }
func (f *raceStore) ListRejections(string) ([]models.Rejection, error)     { return nil, nil }
func (f *raceStore) CountEvidence(string) (int64, error)                   { return 0, nil }
func (f *raceStore) SaveEvidence(*models.Evidence) error                   { return nil }
func (f *raceStore) ListEvidence(string) ([]models.Evidence, error)        { return nil, nil }
func (f *raceStore) GetStaffByID(string) (*models.StaffUser, error)        { return nil, storage.ErrNotFound }
func (f *raceStore) ListApproversForDepartment(string) ([]models.StaffUser, error) {
	return nil, nil
}
func (f *raceStore) NextComplaintSequence(time.Time) (int64, error) { return 1, nil }
func (f *raceStore) PublishEvent(models.WorkflowEvent) error        { return nil }

// TestConcurrentApproveAndReject verifies that of two simultaneous,
// mutually exclusive transitions exactly one commits; the loser sees
// Conflict (lost the version check) or InvalidTransition (read the committed
// state), never a second success.
func TestConcurrentApproveAndReject(t *testing.T) {
	for i := 0; i < 50; i++ {
		store := &raceStore{complaint: *awaitingComplaint()}
		engine := workflow.NewEngine(store)
		complaintID := store.complaint.ComplaintID

		var wg sync.WaitGroup
		results := make([]error, 2)

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.ApplyAction(complaintID, approver, workflow.ActionRequest{
				Action:  models.ActionApprove,
				Remarks: "cleared",
			})
			results[0] = err
		}()
		go func() {
			defer wg.Done()
			_, err := engine.ApplyAction(complaintID, approver, workflow.ActionRequest{
				Action: models.ActionReject,
				Reason: "not cleared",
			})
			results[1] = err
		}()
		wg.Wait()

		successes := 0
		for _, err := range results {
			if err == nil {
				successes++
				continue
			}
			assert.True(t,
				errors.Is(err, workflow.ErrConflict) || errors.Is(err, workflow.ErrInvalidTransition),
				"loser must see Conflict or InvalidTransition, got: %v", err)
		}
		assert.Equal(t, 1, successes, "exactly one of approve/reject may commit")
		assert.Equal(t, 1, store.historyLen(), "exactly one history row per committed transition")
	}
}
