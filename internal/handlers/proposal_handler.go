package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httpresp"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	ucRequest "github.com/WAKO-NZ/tap4service2-sub000/internal/usecase/request"
)

type ProposalHandler struct {
	proposeUC       *ucRequest.ProposeTime
	resolveUC       *ucRequest.ResolveProposal
	listProposalsUC *ucRequest.ListProposals
}

func NewProposalHandler(
	proposeUC *ucRequest.ProposeTime,
	resolveUC *ucRequest.ResolveProposal,
	listProposalsUC *ucRequest.ListProposals,
) *ProposalHandler {
	return &ProposalHandler{
		proposeUC:       proposeUC,
		resolveUC:       resolveUC,
		listProposalsUC: listProposalsUC,
	}
}

type CreateProposalRequest struct {
	ProposedTime string `json:"proposed_time" binding:"required"`
}

type ResolveProposalRequest struct {
	Action string `json:"action" binding:"required,oneof=approve decline"`
}

// Create lets the assigned technician suggest an alternate time.
func (h *ProposalHandler) Create(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p, err := h.proposeUC.Execute(c.Request.Context(), technicianID, requestID, req.ProposedTime)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "proposal created", gin.H{
		"proposalId": p.ID,
		"requestId":  p.ServiceRequestID,
		"status":     p.Status,
	})
}

// List returns a request's proposals to its owning customer.
func (h *ProposalHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	views, err := h.listProposalsUC.Execute(c.Request.Context(), customerID, requestID)
	if err != nil {
		respondBusiness(c, err)
		return
	}
	httpresp.List(c, views)
}

// Resolve approves or declines a pending proposal on the owning
// customer's behalf.
func (h *ProposalHandler) Resolve(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}
	proposalID, ok := paramID(c, "proposalId")
	if !ok {
		return
	}

	var req ResolveProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.resolveUC.Execute(
		c.Request.Context(), customerID, requestID, proposalID, req.Action,
	)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "proposal "+req.Action+"d", gin.H{
		"proposalId": proposalID,
		"requestId":  updated.ID,
		"status":     updated.Status,
	})
}
