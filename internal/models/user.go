package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // needed for pq.StringArray
	"gorm.io/gorm"
)

// Actor is the already-authenticated identity performing a workflow action.
// It is passed explicitly into every engine call; the engine performs only
// role/department authorization and never touches credentials.
type Actor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// StaffUser is a persisted staff account used by the ops CLI to resolve an
// acting identity and by the alerting path to find approvers. Authentication
// itself lives outside this service.
type StaffUser struct {
	ID   string `gorm:"primaryKey" json:"id"` // UUID
	Name string `gorm:"type:text;not null" json:"name"`
	Role Role   `gorm:"type:text;not null" json:"role"`

	// Departments lists the department scopes this user may act for.
	Departments pq.StringArray `gorm:"type:text[]" json:"departments"`

	// TelegramChatID, when non-zero, receives approval alerts.
	TelegramChatID int64 `json:"telegram_chat_id,omitempty"`
}

// BeforeCreate generates a UUID for the staff user if the ID is not set.
func (u *StaffUser) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Actor converts the stored staff user into an Actor scoped to the given
// department. The department must be one of the user's scopes; callers
// validate that before acting.
func (u *StaffUser) Actor(department string) Actor {
	return Actor{
		ID:         u.ID,
		Name:       u.Name,
		Role:       u.Role,
		Department: department,
	}
}
