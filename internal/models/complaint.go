package models

import (
	"fmt"
	"regexp"
	"time"
)

// Complaint is the central ticket entity tracked end-to-end. Its Status,
// Department and assignment fields are mutated only by the workflow engine;
// classification and description are immutable after creation. A complaint is
// never deleted: the row plus its transactions and rejections form a permanent
// audit record.
type Complaint struct {
	// ComplaintID is "CMP" + creation date (YYYYMMDD) + 4-digit daily sequence,
	// e.g. CMP202401010001. Immutable once assigned.
	ComplaintID string `gorm:"primaryKey" json:"complaint_id"`

	Status Status `gorm:"type:text;not null;index" json:"status"`

	// Priority is the urgency declared at submission. DisplayPriority is what
	// staff dashboards show and may be raised by type-based floors.
	Priority        Priority `gorm:"type:text;not null" json:"priority"`
	DisplayPriority Priority `gorm:"type:text;not null" json:"display_priority"`

	// Classification, fixed at creation.
	Category         string `gorm:"type:text;not null" json:"category"`
	ComplaintType    string `gorm:"type:text;not null" json:"complaint_type"`
	ComplaintSubtype string `gorm:"type:text" json:"complaint_subtype"`

	CustomerID   string `gorm:"type:text;not null;index" json:"customer_id"`
	CustomerName string `gorm:"type:text;not null" json:"customer_name"`

	// Department is the unit currently responsible for the complaint.
	Department string `gorm:"type:text;not null;index" json:"department"`

	// ReturnDepartment is snapshotted when the complaint is routed for
	// approval, so a rejection can restore the pre-approval owner even though
	// Department is overwritten by forwards.
	ReturnDepartment string `gorm:"type:text" json:"return_department,omitempty"`

	AssignedTo     *string `gorm:"type:text" json:"assigned_to,omitempty"`
	AssignedToName *string `gorm:"type:text" json:"assigned_to_name,omitempty"`

	Description string `gorm:"type:text;not null" json:"description"`

	// ActionTaken holds the latest staff resolution text; earlier values
	// survive in the transaction history.
	ActionTaken string `gorm:"type:text" json:"action_taken"`

	// Date and Time are the creation timestamp components shown to customers.
	Date string `gorm:"type:text;not null" json:"date"`
	Time string `gorm:"type:text;not null" json:"time"`

	// Version backs the optimistic concurrency check on every transition.
	Version int `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Closed reports whether the complaint reached its terminal state.
func (c *Complaint) Closed() bool {
	return c.Status == StatusClosed
}

var complaintIDPattern = regexp.MustCompile(`^CMP\d{8}\d{4}$`)

// FormatComplaintID builds a complaint identifier from the creation day and
// the daily sequence number.
func FormatComplaintID(day time.Time, seq int64) string {
	return fmt.Sprintf("CMP%s%04d", day.Format("20060102"), seq)
}

// ValidComplaintID reports whether id matches the CMP+YYYYMMDD+NNNN format.
func ValidComplaintID(id string) bool {
	return complaintIDPattern.MatchString(id)
}
