package storage

import (
	"context"
	"errors"
	"time"

	"freightdesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// WorkflowEventsChannel is the Redis Pub/Sub channel transitions are
// announced on after they commit.
const WorkflowEventsChannel = "workflow:events"

var (
	// ErrNotFound is returned when a complaint id is unknown.
	ErrNotFound = errors.New("complaint not found")
	// ErrConflict is returned when a transition lost the optimistic version
	// check to a concurrent writer.
	ErrConflict = errors.New("complaint was modified concurrently")
)

type Storage interface {
	CreateComplaint(c *models.Complaint, first *models.Transaction) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ApplyTransition(c *models.Complaint, txn *models.Transaction, rej *models.Rejection) error

	ListAwaitingApproval(department string) ([]models.Complaint, error)
	ListComplaintsForCustomer(customerID string) ([]models.Complaint, error)
	ListComplaintsForDepartment(department string) ([]models.Complaint, error)

	ListTransactions(complaintID string) ([]models.Transaction, error)
	ListRejections(complaintID string) ([]models.Rejection, error)

	CountEvidence(complaintID string) (int64, error)
	SaveEvidence(ev *models.Evidence) error
	ListEvidence(complaintID string) ([]models.Evidence, error)

	GetStaffByID(id string) (*models.StaffUser, error)
	ListApproversForDepartment(department string) ([]models.StaffUser, error)

	NextComplaintSequence(day time.Time) (int64, error)
	PublishEvent(ev models.WorkflowEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
