// Package analysis derives presentation-level attributes from a complaint's
// classification, currently the displayed priority.
package analysis

import (
	"freightdesk/backend/internal/config"
	"freightdesk/backend/internal/models"
)

// DisplayPriority returns the priority staff dashboards should show: the
// declared priority raised to the floor configured for the complaint type,
// whichever ranks higher. The declared priority itself is never rewritten.
func DisplayPriority(declared models.Priority, complaintType string) models.Priority {
	floor, ok := config.TypePriorityFloors[complaintType]
	if !ok {
		return declared
	}
	if config.PriorityRank[floor] > config.PriorityRank[declared] {
		return floor
	}
	return declared
}
