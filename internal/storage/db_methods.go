package storage

import (
	"errors"
	"log"

	"freightdesk/backend/internal/models"

	"gorm.io/gorm"
)

// CreateComplaint persists a new complaint together with its first (submit)
// transaction in one database transaction, so a complaint never exists
// without the history row that created it.
func (s *Service) CreateComplaint(c *models.Complaint, first *models.Transaction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			log.Printf("ERROR: Failed to create complaint %s: %v", c.ComplaintID, err)
			return err
		}
		return tx.Create(first).Error
	})
}

// GetComplaintByID loads the current complaint snapshot.
func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Where("complaint_id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get complaint %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// ApplyTransition writes the mutated complaint snapshot plus exactly one
// history row atomically. The UPDATE is guarded by the version the engine
// read; if a concurrent transition got there first, RowsAffected is zero and
// the whole transaction rolls back with ErrConflict. Partial application
// (status changed without a history row, or the reverse) cannot happen.
func (s *Service) ApplyTransition(c *models.Complaint, txn *models.Transaction, rej *models.Rejection) error {
	if (txn == nil) == (rej == nil) {
		return errors.New("a transition needs exactly one history record")
	}

	prev := c.Version
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Complaint{}).
			Where("complaint_id = ? AND version = ?", c.ComplaintID, prev).
			Updates(map[string]interface{}{
				"status":            c.Status,
				"department":        c.Department,
				"return_department": c.ReturnDepartment,
				"assigned_to":       c.AssignedTo,
				"assigned_to_name":  c.AssignedToName,
				"action_taken":      c.ActionTaken,
				"version":           prev + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if txn != nil {
			return tx.Create(txn).Error
		}
		return tx.Create(rej).Error
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) {
			log.Printf("ERROR: Failed to apply transition for complaint %s: %v", c.ComplaintID, err)
		}
		return err
	}

	c.Version = prev + 1
	return nil
}

// ListAwaitingApproval returns the approval queue for one department, oldest
// first so nobody's complaint is starved.
func (s *Service) ListAwaitingApproval(department string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("status = ? AND department = ?", models.StatusAwaitingApproval, department).
		Order("created_at asc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list approval queue for %s: %v", department, err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaintsForCustomer returns every complaint a customer has filed,
// newest first.
func (s *Service) ListComplaintsForCustomer(customerID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for customer %s: %v", customerID, err)
		return nil, err
	}
	return complaints, nil
}

// ListComplaintsForDepartment returns the open workload of a department,
// newest first. Closed complaints are excluded.
func (s *Service) ListComplaintsForDepartment(department string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Where("department = ? AND status <> ?", department, models.StatusClosed).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		log.Printf("ERROR: Failed to list complaints for department %s: %v", department, err)
		return nil, err
	}
	return complaints, nil
}

// ListTransactions returns the transaction history for a complaint, ordered
// by creation time ascending.
func (s *Service) ListTransactions(complaintID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc, id asc").
		Find(&txns).Error
	if err != nil {
		log.Printf("ERROR: Failed to list transactions for %s: %v", complaintID, err)
		return nil, err
	}
	return txns, nil
}

// ListRejections returns the rejection history for a complaint, ordered by
// creation time ascending.
func (s *Service) ListRejections(complaintID string) ([]models.Rejection, error) {
	var rejs []models.Rejection
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc, id asc").
		Find(&rejs).Error
	if err != nil {
		log.Printf("ERROR: Failed to list rejections for %s: %v", complaintID, err)
		return nil, err
	}
	return rejs, nil
}

// CountEvidence returns how many evidence references a complaint already has.
func (s *Service) CountEvidence(complaintID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Evidence{}).
		Where("complaint_id = ?", complaintID).
		Count(&count).Error
	return count, err
}

// SaveEvidence persists one evidence reference.
func (s *Service) SaveEvidence(ev *models.Evidence) error {
	if err := s.DB.Create(ev).Error; err != nil {
		log.Printf("ERROR: Failed to save evidence for %s: %v", ev.ComplaintID, err)
		return err
	}
	return nil
}

// ListEvidence returns the evidence references attached to a complaint.
func (s *Service) ListEvidence(complaintID string) ([]models.Evidence, error) {
	var evs []models.Evidence
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at asc").
		Find(&evs).Error
	if err != nil {
		return nil, err
	}
	return evs, nil
}

// GetStaffByID loads a staff account, used by the ops CLI to act as a named
// user.
func (s *Service) GetStaffByID(id string) (*models.StaffUser, error) {
	var u models.StaffUser
	err := s.DB.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListApproversForDepartment finds staff who may approve for a department:
// controllers and admins whose scopes include it.
func (s *Service) ListApproversForDepartment(department string) ([]models.StaffUser, error) {
	var users []models.StaffUser
	err := s.DB.Where("? = ANY(departments)", department).
		Where("role IN ?", []models.Role{models.RoleController, models.RoleAdmin}).
		Find(&users).Error
	if err != nil {
		log.Printf("ERROR: Failed to list approvers for %s: %v", department, err)
		return nil, err
	}
	return users, nil
}
