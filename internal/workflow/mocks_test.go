package workflow_test

import (
	"time"

	"freightdesk/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface, used to
// verify exactly which persistence calls a workflow operation makes.
type MockStorage struct {
	mock.Mock
}

// Complaint operations
func (m *MockStorage) CreateComplaint(c *models.Complaint, first *models.Transaction) error {
	args := m.Called(c, first)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ApplyTransition(c *models.Complaint, txn *models.Transaction, rej *models.Rejection) error {
	args := m.Called(c, txn, rej)
	return args.Error(0)
}

func (m *MockStorage) ListAwaitingApproval(department string) ([]models.Complaint, error) {
	args := m.Called(department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsForCustomer(customerID string) ([]models.Complaint, error) {
	args := m.Called(customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsForDepartment(department string) ([]models.Complaint, error) {
	args := m.Called(department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

// History operations
func (m *MockStorage) ListTransactions(complaintID string) ([]models.Transaction, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockStorage) ListRejections(complaintID string) ([]models.Rejection, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rejection), args.Error(1)
}

// Evidence operations
func (m *MockStorage) CountEvidence(complaintID string) (int64, error) {
	args := m.Called(complaintID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SaveEvidence(ev *models.Evidence) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) ListEvidence(complaintID string) ([]models.Evidence, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Evidence), args.Error(1)
}

// Staff operations
func (m *MockStorage) GetStaffByID(id string) (*models.StaffUser, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStorage) ListApproversForDepartment(department string) ([]models.StaffUser, error) {
	args := m.Called(department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StaffUser), args.Error(1)
}

// Sequence and events
func (m *MockStorage) NextComplaintSequence(day time.Time) (int64, error) {
	args := m.Called(day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) PublishEvent(ev models.WorkflowEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}
