package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvidenceRef is attachment metadata handed in by the external upload
// component. The engine records the reference; it never stores the bytes.
type EvidenceRef struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// Evidence links an uploaded attachment to a complaint. At most three
// evidence rows may exist per complaint; the engine enforces the limit.
type Evidence struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"type:text;not null;index" json:"complaint_id"`

	Filename string `gorm:"type:text;not null" json:"filename"`
	Size     int64  `gorm:"not null" json:"size"`
	URL      string `gorm:"type:text;not null" json:"url"`

	UploadedBy string `gorm:"type:text;not null" json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates an ID for the evidence row if one was not supplied.
func (e *Evidence) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
