package handler

import (
	"errors"
	"net/http"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
	"freightdesk/backend/internal/workflow"

	"github.com/gin-gonic/gin"
)

// SubmitComplaint files a new complaint for the acting customer.
// POST /complaints
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var in workflow.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	complaint, err := h.Engine.Submit(actorFrom(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// GetComplaint returns the current snapshot plus its evidence references.
// GET /complaints/:id
func (h *Handler) GetComplaint(c *gin.Context) {
	complaint, ok := h.loadVisible(c)
	if !ok {
		return
	}

	evidence, err := h.Engine.Storage.ListEvidence(complaint.ComplaintID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaint": complaint, "evidence": evidence})
}

// ListComplaints returns the caller's view of the register: customers see
// their own complaints, staff see their department's open workload.
// GET /complaints
func (h *Handler) ListComplaints(c *gin.Context) {
	actor := actorFrom(c)

	var (
		complaints []models.Complaint
		err        error
	)
	if actor.Role == models.RoleCustomer {
		complaints, err = h.Engine.Storage.ListComplaintsForCustomer(actor.ID)
	} else {
		department := c.Query("department")
		if department == "" {
			department = actor.Department
		}
		complaints, err = h.Engine.Storage.ListComplaintsForDepartment(department)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetTimeline returns the merged audit trail for one complaint.
// GET /complaints/:id/timeline
func (h *Handler) GetTimeline(c *gin.Context) {
	complaint, ok := h.loadVisible(c)
	if !ok {
		return
	}

	timeline, err := h.Engine.Timeline(complaint.ComplaintID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

// ApplyAction requests a workflow transition on a complaint.
// POST /complaints/:id/actions
func (h *Handler) ApplyAction(c *gin.Context) {
	var req workflow.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	complaint, err := h.Engine.ApplyAction(c.Param("id"), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// AttachEvidence links an already-uploaded attachment to a complaint.
// POST /complaints/:id/evidence
func (h *Handler) AttachEvidence(c *gin.Context) {
	var ref models.EvidenceRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ev, err := h.Engine.AttachEvidence(c.Param("id"), actorFrom(c), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

// ListApprovals returns the approval queue for the actor's department scope,
// oldest first.
// GET /approvals/pending
func (h *Handler) ListApprovals(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role == models.RoleCustomer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff only"})
		return
	}

	pending, err := h.Queue.ListPending(actor.Department)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pending)
}

// loadVisible fetches the complaint and enforces the read rule: staff see
// everything, a customer sees only their own complaints. Viewing is not a
// transition, so this never touches the engine's transition path.
func (h *Handler) loadVisible(c *gin.Context) (*models.Complaint, bool) {
	complaint, err := h.Engine.Storage.GetComplaintByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, workflow.ErrNotFound)
		return nil, false
	}
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	actor := actorFrom(c)
	if actor.Role == models.RoleCustomer && complaint.CustomerID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your complaint"})
		return nil, false
	}
	return complaint, true
}

// respondError maps the engine error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrConflict):
		// Retry-eligible: the caller may re-read and resubmit once.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
