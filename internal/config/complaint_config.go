package config

import "freightdesk/backend/internal/models"

const (
	// MaxEvidencePerComplaint caps staff-uploaded attachment references.
	MaxEvidencePerComplaint = 3

	// StageCommercialApproval is the approval checkpoint a complaint enters
	// when routed for commercial sign-off.
	StageCommercialApproval = "commercial_approval"

	// StageFallbackStatus is where a rejected stage sends the complaint back.
	StageFallbackStatus = models.StatusPending
)

// Transitions is the single source of truth for which action is legal from
// which status and what status it produces. Closed has no entries: it is
// terminal. Reply is allowed from every non-closed status so staff can update
// the resolution text at any point before closure.
var Transitions = map[models.Status]map[models.Action]models.Status{
	models.StatusPending: {
		models.ActionForward:          models.StatusPending,
		models.ActionRouteForApproval: models.StatusAwaitingApproval,
		models.ActionReply:            models.StatusReplied,
	},
	models.StatusAwaitingApproval: {
		models.ActionApprove: models.StatusReplied,
		// Reject falls back to the stage's fallback status; the table keeps
		// the default, the engine computes the return department.
		models.ActionReject: StageFallbackStatus,
		models.ActionReply:  models.StatusReplied,
	},
	models.StatusReplied: {
		models.ActionClose: models.StatusClosed,
		models.ActionReply: models.StatusReplied,
	},
	models.StatusClosed: {},
}

// RoleActions is the authorization table keyed by (role, action). It is
// consulted exactly once per request inside the engine; callers never
// duplicate role checks.
var RoleActions = map[models.Role]map[models.Action]bool{
	models.RoleCustomer: {
		models.ActionSubmit: true,
	},
	models.RoleController: {
		models.ActionForward:          true,
		models.ActionRouteForApproval: true,
		models.ActionApprove:          true,
		models.ActionReject:           true,
		models.ActionReply:            true,
		models.ActionClose:            true,
	},
	models.RoleAdmin: {
		models.ActionSubmit:           true,
		models.ActionForward:          true,
		models.ActionRouteForApproval: true,
		models.ActionApprove:          true,
		models.ActionReject:           true,
		models.ActionReply:            true,
		models.ActionClose:            true,
	},
	// Viewers can read everything but transition nothing.
	models.RoleViewer: {},
}

// StageForStatus maps an approval-pending status to the stage name recorded
// on a rejection.
var StageForStatus = map[models.Status]string{
	models.StatusAwaitingApproval: StageCommercialApproval,
}

// PriorityRank orders priorities for comparisons. Higher is more urgent.
var PriorityRank = map[models.Priority]int{
	models.PriorityNormal:   0,
	models.PriorityMedium:   1,
	models.PriorityHigh:     2,
	models.PriorityCritical: 3,
}

// TypePriorityFloors raises the displayed priority for complaint types the
// operator treats as inherently urgent, regardless of what the customer
// declared.
var TypePriorityFloors = map[string]models.Priority{
	"dangerous_goods": models.PriorityCritical,
	"cargo_damage":    models.PriorityHigh,
	"cargo_loss":      models.PriorityHigh,
	"delayed_freight": models.PriorityMedium,
}
