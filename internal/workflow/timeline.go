package workflow

import (
	"time"

	"freightdesk/backend/internal/models"
)

// EntryKind tags a timeline entry so renderers can style transactions and
// rejections distinctly.
type EntryKind string

const (
	EntryTransaction EntryKind = "transaction"
	EntryRejection   EntryKind = "rejection"
)

// TimelineEntry is one render-ready line of a complaint's audit trail. The
// transaction and rejection fields are populated according to Kind.
type TimelineEntry struct {
	Kind      EntryKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`

	TransactionType models.Action `json:"transaction_type,omitempty"`
	FromDepartment  string        `json:"from_department,omitempty"`
	ToDepartment    *string       `json:"to_department,omitempty"`
	Remarks         string        `json:"remarks,omitempty"`

	RejectionStage  string  `json:"rejection_stage,omitempty"`
	RejectedToName  *string `json:"rejected_to_name,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
}

// MergeTimeline merges the two already-ordered histories into one sequence
// ordered by CreatedAt ascending. It is a pure projection: no mutation, no
// caching, and identical inputs always yield identical output. Ties go to the
// transaction, matching the order the engine writes rows in.
func MergeTimeline(txns []models.Transaction, rejs []models.Rejection) []TimelineEntry {
	merged := make([]TimelineEntry, 0, len(txns)+len(rejs))

	i, j := 0, 0
	for i < len(txns) && j < len(rejs) {
		if !rejs[j].CreatedAt.Before(txns[i].CreatedAt) {
			merged = append(merged, transactionEntry(txns[i]))
			i++
		} else {
			merged = append(merged, rejectionEntry(rejs[j]))
			j++
		}
	}
	for ; i < len(txns); i++ {
		merged = append(merged, transactionEntry(txns[i]))
	}
	for ; j < len(rejs); j++ {
		merged = append(merged, rejectionEntry(rejs[j]))
	}

	return merged
}

func transactionEntry(t models.Transaction) TimelineEntry {
	return TimelineEntry{
		Kind:            EntryTransaction,
		CreatedAt:       t.CreatedAt,
		ActorID:         t.CreatedBy,
		ActorName:       t.CreatedByName,
		TransactionType: t.TransactionType,
		FromDepartment:  t.FromDepartment,
		ToDepartment:    t.ToDepartment,
		Remarks:         t.Remarks,
	}
}

func rejectionEntry(r models.Rejection) TimelineEntry {
	return TimelineEntry{
		Kind:            EntryRejection,
		CreatedAt:       r.CreatedAt,
		ActorID:         r.RejectedBy,
		ActorName:       r.RejectedByName,
		RejectionStage:  r.RejectionStage,
		RejectedToName:  r.RejectedToName,
		RejectionReason: r.RejectionReason,
	}
}
