package models

import "time"

// Rejection is one append-only audit record of an approval stage being
// declined. It carries the stage that was exited, who rejected it, who the
// complaint was handed back to, and the mandatory reason.
type Rejection struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"type:text;not null;index:idx_rej_complaint" json:"complaint_id"`

	// RejectionStage names the workflow stage being rejected,
	// e.g. "commercial_approval".
	RejectionStage string `gorm:"type:text;not null" json:"rejection_stage"`

	RejectedBy     string  `gorm:"type:text;not null" json:"rejected_by"`
	RejectedByName string  `gorm:"type:text;not null" json:"rejected_by_name"`
	RejectedToName *string `gorm:"type:text" json:"rejected_to_name,omitempty"`

	RejectionReason string `gorm:"type:text;not null" json:"rejection_reason"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_rej_complaint" json:"created_at"`
}
