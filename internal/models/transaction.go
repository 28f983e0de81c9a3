package models

import "time"

// Transaction is one append-only audit record of a non-rejection workflow
// action. One complaint accrues many transactions, ordered by CreatedAt.
// Rows are never updated or deleted.
type Transaction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"type:text;not null;index:idx_txn_complaint" json:"complaint_id"`

	// TransactionType is the action that produced this record
	// (submit, forward, route_for_approval, approve, reply, close).
	TransactionType Action `gorm:"type:text;not null" json:"transaction_type"`

	CreatedBy     string `gorm:"type:text;not null" json:"created_by"`
	CreatedByName string `gorm:"type:text;not null" json:"created_by_name"`

	FromDepartment string  `gorm:"type:text" json:"from_department"`
	ToDepartment   *string `gorm:"type:text" json:"to_department,omitempty"`

	Remarks string `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_txn_complaint" json:"created_at"`
}
