package models_test

import (
	"testing"
	"time"

	"freightdesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// TestFormatComplaintID verifies the CMP+YYYYMMDD+NNNN identifier format.
func TestFormatComplaintID(t *testing.T) {
	day := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "CMP202401010001", models.FormatComplaintID(day, 1))
	assert.Equal(t, "CMP202401010042", models.FormatComplaintID(day, 42))
	assert.Equal(t, "CMP202401019999", models.FormatComplaintID(day, 9999))
}

// TestValidComplaintID verifies the identifier validator.
func TestValidComplaintID(t *testing.T) {
	assert.True(t, models.ValidComplaintID("CMP202401010001"))
	assert.False(t, models.ValidComplaintID("CMP2024010100"), "sequence too short")
	assert.False(t, models.ValidComplaintID("cmp202401010001"), "prefix is case sensitive")
	assert.False(t, models.ValidComplaintID("TKT202401010001"))
	assert.False(t, models.ValidComplaintID(""))
}

// TestParseStatus verifies unknown statuses are rejected at the boundary.
func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "awaiting_approval", "replied", "closed"} {
		s, err := models.ParseStatus(raw)
		assert.NoError(t, err)
		assert.True(t, s.Valid())
	}

	_, err := models.ParseStatus("in_progress")
	assert.Error(t, err)
}

// TestParseRoleAndAction verifies the remaining enumerations.
func TestParseRoleAndAction(t *testing.T) {
	_, err := models.ParseRole("controller")
	assert.NoError(t, err)
	_, err = models.ParseRole("superuser")
	assert.Error(t, err)

	_, err = models.ParseAction("route_for_approval")
	assert.NoError(t, err)
	_, err = models.ParseAction("escalate")
	assert.Error(t, err)

	_, err = models.ParsePriority("critical")
	assert.NoError(t, err)
	_, err = models.ParsePriority("urgent")
	assert.Error(t, err)
}

// TestComplaintClosed verifies the terminal-state helper.
func TestComplaintClosed(t *testing.T) {
	c := models.Complaint{Status: models.StatusReplied}
	assert.False(t, c.Closed())

	c.Status = models.StatusClosed
	assert.True(t, c.Closed())
}

// TestEvidenceBeforeCreate verifies the uuid hook fills and preserves IDs.
func TestEvidenceBeforeCreate(t *testing.T) {
	ev := &models.Evidence{ComplaintID: "CMP202401010001", Filename: "seal.jpg", Size: 100, URL: "https://files/x"}

	assert.NoError(t, ev.BeforeCreate(nil))
	assert.NotEmpty(t, ev.ID)

	existing := ev.ID
	assert.NoError(t, ev.BeforeCreate(nil))
	assert.Equal(t, existing, ev.ID, "existing ID must be preserved")
}
