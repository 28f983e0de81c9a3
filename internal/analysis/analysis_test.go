package analysis_test

import (
	"testing"

	"freightdesk/backend/internal/analysis"
	"freightdesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// TestDisplayPriorityFloors verifies type floors raise but never lower the
// displayed priority.
func TestDisplayPriorityFloors(t *testing.T) {
	tests := []struct {
		name          string
		declared      models.Priority
		complaintType string
		expected      models.Priority
	}{
		{"dangerous goods always critical", models.PriorityNormal, "dangerous_goods", models.PriorityCritical},
		{"damage floored at high", models.PriorityNormal, "cargo_damage", models.PriorityHigh},
		{"declared above floor wins", models.PriorityCritical, "cargo_damage", models.PriorityCritical},
		{"unlisted type keeps declared", models.PriorityMedium, "billing_dispute", models.PriorityMedium},
		{"delay floored at medium", models.PriorityNormal, "delayed_freight", models.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.DisplayPriority(tt.declared, tt.complaintType))
		})
	}
}
