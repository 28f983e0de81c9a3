// Package workflow is the single authority over complaint state. Every
// status, department or assignment change goes through Engine.ApplyAction,
// which validates the actor and the transition against the policy tables in
// config and persists the mutation together with exactly one history record.
package workflow

import (
	"errors"
	"fmt"
	"log"
	"time"

	"freightdesk/backend/internal/analysis"
	"freightdesk/backend/internal/config"
	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
)

// Engine orchestrates complaint transitions.
type Engine struct {
	Storage storage.Storage
}

// NewEngine creates a new workflow engine.
func NewEngine(s storage.Storage) *Engine {
	return &Engine{Storage: s}
}

// SubmitInput is the validated payload for filing a new complaint. The
// customer identity comes from the actor, never from the payload.
type SubmitInput struct {
	Category         string          `json:"category"`
	ComplaintType    string          `json:"complaint_type"`
	ComplaintSubtype string          `json:"complaint_subtype"`
	Priority         models.Priority `json:"priority"`
	Description      string          `json:"description"`
	// Department is the unit the complaint is initially filed against.
	Department string `json:"department"`
}

// ActionRequest carries the parameters of a workflow action. Which fields
// matter depends on the action; unused ones are ignored.
type ActionRequest struct {
	Action  models.Action `json:"action"`
	Remarks string        `json:"remarks"`

	// Department is the target for forward and route_for_approval.
	Department     string  `json:"department"`
	AssignedTo     *string `json:"assigned_to"`
	AssignedToName *string `json:"assigned_to_name"`

	// ActionTaken is the staff resolution text for reply.
	ActionTaken string `json:"action_taken"`

	// Reason and the redirect fields apply to reject only.
	Reason         string  `json:"reason"`
	RedirectTo     string  `json:"redirect_to"`
	RedirectToName *string `json:"redirect_to_name"`
}

// Submit files a new complaint on behalf of the acting customer. It mints the
// complaint id from the daily sequence, computes the display priority and
// persists the complaint together with its submit transaction.
func (e *Engine) Submit(actor models.Actor, in SubmitInput) (*models.Complaint, error) {
	if !config.RoleActions[actor.Role][models.ActionSubmit] {
		return nil, fmt.Errorf("%w: role %q cannot submit", ErrUnauthorized, actor.Role)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Category == "" || in.ComplaintType == "" {
		return nil, fmt.Errorf("%w: category and complaint_type are required", ErrValidation)
	}
	if in.Department == "" {
		return nil, fmt.Errorf("%w: department is required", ErrValidation)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityNormal
	}
	if !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	now := time.Now()
	seq, err := e.Storage.NextComplaintSequence(now)
	if err != nil {
		return nil, err
	}

	c := &models.Complaint{
		ComplaintID:      models.FormatComplaintID(now, seq),
		Status:           models.StatusPending,
		Priority:         in.Priority,
		DisplayPriority:  analysis.DisplayPriority(in.Priority, in.ComplaintType),
		Category:         in.Category,
		ComplaintType:    in.ComplaintType,
		ComplaintSubtype: in.ComplaintSubtype,
		CustomerID:       actor.ID,
		CustomerName:     actor.Name,
		Department:       in.Department,
		Description:      in.Description,
		Date:             now.Format("2006-01-02"),
		Time:             now.Format("15:04:05"),
		Version:          1,
	}
	toDept := in.Department
	first := &models.Transaction{
		ComplaintID:     c.ComplaintID,
		TransactionType: models.ActionSubmit,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		ToDepartment:    &toDept,
	}

	if err := e.Storage.CreateComplaint(c, first); err != nil {
		return nil, err
	}

	e.publish(c, actor, models.ActionSubmit, "")
	return c, nil
}

// ApplyAction validates and applies one workflow action. On success the
// updated snapshot is returned and exactly one transaction or rejection row
// has been appended.
func (e *Engine) ApplyAction(complaintID string, actor models.Actor, req ActionRequest) (*models.Complaint, error) {
	if !req.Action.Valid() || req.Action == models.ActionSubmit {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}

	c, err := e.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	// One authorization check per request, against the role table.
	if !config.RoleActions[actor.Role][req.Action] {
		return nil, fmt.Errorf("%w: role %q may not %s", ErrUnauthorized, actor.Role, req.Action)
	}

	next, ok := config.Transitions[c.Status][req.Action]
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s a complaint in status %q", ErrInvalidTransition, req.Action, c.Status)
	}

	// Approval-stage actions are scoped to the department the complaint is
	// currently pending with.
	if req.Action == models.ActionApprove || req.Action == models.ActionReject {
		if actor.Department != c.Department {
			return nil, fmt.Errorf("%w: complaint is pending with %q, actor is scoped to %q",
				ErrUnauthorized, c.Department, actor.Department)
		}
	}

	var txn *models.Transaction
	var rej *models.Rejection

	switch req.Action {
	case models.ActionForward:
		txn, err = e.forward(c, actor, req)
	case models.ActionRouteForApproval:
		txn, err = e.routeForApproval(c, actor, req)
	case models.ActionApprove:
		txn = e.record(c, actor, req.Action, req.Remarks)
	case models.ActionReject:
		rej, err = e.reject(c, actor, req)
	case models.ActionReply:
		txn, err = e.reply(c, actor, req)
	case models.ActionClose:
		txn = e.record(c, actor, req.Action, req.Remarks)
	}
	if err != nil {
		return nil, err
	}

	c.Status = next

	if err := e.Storage.ApplyTransition(c, txn, rej); err != nil {
		return nil, mapStorageErr(err)
	}

	e.publish(c, actor, req.Action, req.Remarks)
	return c, nil
}

// forward hands the complaint to another department, optionally assigning a
// responsible staff member. Status does not change.
func (e *Engine) forward(c *models.Complaint, actor models.Actor, req ActionRequest) (*models.Transaction, error) {
	if req.Department == "" {
		return nil, fmt.Errorf("%w: forward requires a target department", ErrValidation)
	}
	from := c.Department
	to := req.Department

	c.Department = to
	if req.AssignedTo != nil {
		c.AssignedTo = req.AssignedTo
		c.AssignedToName = req.AssignedToName
	}

	return &models.Transaction{
		ComplaintID:     c.ComplaintID,
		TransactionType: models.ActionForward,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		FromDepartment:  from,
		ToDepartment:    &to,
		Remarks:         req.Remarks,
	}, nil
}

// routeForApproval sends the complaint to an approving department and
// snapshots the current owner so a rejection can restore it later.
func (e *Engine) routeForApproval(c *models.Complaint, actor models.Actor, req ActionRequest) (*models.Transaction, error) {
	if req.Department == "" {
		return nil, fmt.Errorf("%w: route_for_approval requires the approving department", ErrValidation)
	}
	from := c.Department
	to := req.Department

	c.ReturnDepartment = from
	c.Department = to

	return &models.Transaction{
		ComplaintID:     c.ComplaintID,
		TransactionType: models.ActionRouteForApproval,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		FromDepartment:  from,
		ToDepartment:    &to,
		Remarks:         req.Remarks,
	}, nil
}

// reject records the declined stage and routes the complaint back: to the
// requested redirect department if given, otherwise to the department
// snapshotted when it was routed for approval.
func (e *Engine) reject(c *models.Complaint, actor models.Actor, req ActionRequest) (*models.Rejection, error) {
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	stage, ok := config.StageForStatus[c.Status]
	if !ok {
		return nil, fmt.Errorf("%w: no approval stage for status %q", ErrInvalidTransition, c.Status)
	}

	back := req.RedirectTo
	if back == "" {
		back = c.ReturnDepartment
	}
	if back == "" {
		// Defensive default; ReturnDepartment is always set on route.
		back = c.Department
	}

	c.Department = back
	c.ReturnDepartment = ""

	return &models.Rejection{
		ComplaintID:     c.ComplaintID,
		RejectionStage:  stage,
		RejectedBy:      actor.ID,
		RejectedByName:  actor.Name,
		RejectedToName:  req.RedirectToName,
		RejectionReason: req.Reason,
	}, nil
}

// reply updates the staff resolution text. Previous values survive in the
// transaction history; the complaint row keeps only the latest.
func (e *Engine) reply(c *models.Complaint, actor models.Actor, req ActionRequest) (*models.Transaction, error) {
	if req.ActionTaken == "" {
		return nil, fmt.Errorf("%w: action_taken is required for reply", ErrValidation)
	}

	c.ActionTaken = req.ActionTaken

	remarks := req.Remarks
	if remarks == "" {
		remarks = req.ActionTaken
	}
	return &models.Transaction{
		ComplaintID:     c.ComplaintID,
		TransactionType: models.ActionReply,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		FromDepartment:  c.Department,
		Remarks:         remarks,
	}, nil
}

// record builds a plain transaction for actions that mutate only status
// (approve, close).
func (e *Engine) record(c *models.Complaint, actor models.Actor, action models.Action, remarks string) *models.Transaction {
	return &models.Transaction{
		ComplaintID:     c.ComplaintID,
		TransactionType: action,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		FromDepartment:  c.Department,
		Remarks:         remarks,
	}
}

// AttachEvidence records one staff-uploaded attachment reference, enforcing
// the per-complaint limit. The bytes themselves live in external storage.
func (e *Engine) AttachEvidence(complaintID string, actor models.Actor, ref models.EvidenceRef) (*models.Evidence, error) {
	if actor.Role != models.RoleController && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only staff may attach evidence", ErrUnauthorized)
	}

	c, err := e.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return nil, mapStorageErr(err)
	}
	if c.Closed() {
		return nil, fmt.Errorf("%w: complaint is closed", ErrInvalidTransition)
	}

	if ref.Filename == "" || ref.URL == "" {
		return nil, fmt.Errorf("%w: evidence filename and url are required", ErrValidation)
	}
	if ref.Size <= 0 {
		return nil, fmt.Errorf("%w: evidence size must be positive", ErrValidation)
	}

	count, err := e.Storage.CountEvidence(complaintID)
	if err != nil {
		return nil, err
	}
	if count >= config.MaxEvidencePerComplaint {
		return nil, fmt.Errorf("%w: evidence limit of %d reached", ErrValidation, config.MaxEvidencePerComplaint)
	}

	ev := &models.Evidence{
		ComplaintID: complaintID,
		Filename:    ref.Filename,
		Size:        ref.Size,
		URL:         ref.URL,
		UploadedBy:  actor.ID,
	}
	if err := e.Storage.SaveEvidence(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Timeline rebuilds the audit view for one complaint: transactions and
// rejections merged into one chronological, kind-tagged sequence.
func (e *Engine) Timeline(complaintID string) ([]TimelineEntry, error) {
	if _, err := e.Storage.GetComplaintByID(complaintID); err != nil {
		return nil, mapStorageErr(err)
	}

	txns, err := e.Storage.ListTransactions(complaintID)
	if err != nil {
		return nil, err
	}
	rejs, err := e.Storage.ListRejections(complaintID)
	if err != nil {
		return nil, err
	}
	return MergeTimeline(txns, rejs), nil
}

// publish announces a committed transition. Publishing is best-effort: the
// transition already committed, so a broken broker must not fail the call.
func (e *Engine) publish(c *models.Complaint, actor models.Actor, action models.Action, remarks string) {
	ev := models.WorkflowEvent{
		ComplaintID: c.ComplaintID,
		Action:      action,
		Status:      c.Status,
		Department:  c.Department,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		Remarks:     remarks,
		OccurredAt:  time.Now(),
	}
	if err := e.Storage.PublishEvent(ev); err != nil {
		log.Printf("WARNING: Failed to publish workflow event for %s: %v", c.ComplaintID, err)
	}
}

func mapStorageErr(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, storage.ErrConflict) {
		return ErrConflict
	}
	return err
}
