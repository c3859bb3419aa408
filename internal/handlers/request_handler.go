package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httpresp"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	ucRequest "github.com/WAKO-NZ/tap4service2-sub000/internal/usecase/request"
)

// ======================================================
// HANDLER
// ======================================================

type RequestHandler struct {
	createUC     *ucRequest.CreateRequest
	assignUC     *ucRequest.AssignRequest
	unassignUC   *ucRequest.UnassignRequest
	rescheduleUC *ucRequest.RescheduleRequest
	completeUC   *ucRequest.CompleteRequest
	confirmUC    *ucRequest.ConfirmCompletion
	cancelUC     *ucRequest.CancelRequest

	listMineUC      *ucRequest.ListCustomerRequests
	listJobsUC      *ucRequest.ListTechnicianJobs
	listAvailableUC *ucRequest.ListAvailableJobs
}

func NewRequestHandler(
	createUC *ucRequest.CreateRequest,
	assignUC *ucRequest.AssignRequest,
	unassignUC *ucRequest.UnassignRequest,
	rescheduleUC *ucRequest.RescheduleRequest,
	completeUC *ucRequest.CompleteRequest,
	confirmUC *ucRequest.ConfirmCompletion,
	cancelUC *ucRequest.CancelRequest,
	listMineUC *ucRequest.ListCustomerRequests,
	listJobsUC *ucRequest.ListTechnicianJobs,
	listAvailableUC *ucRequest.ListAvailableJobs,
) *RequestHandler {
	return &RequestHandler{
		createUC:        createUC,
		assignUC:        assignUC,
		unassignUC:      unassignUC,
		rescheduleUC:    rescheduleUC,
		completeUC:      completeUC,
		confirmUC:       confirmUC,
		cancelUC:        cancelUC,
		listMineUC:      listMineUC,
		listJobsUC:      listJobsUC,
		listAvailableUC: listAvailableUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequestRequest struct {
	Description   string `json:"description" binding:"required"`
	Region        string `json:"region" binding:"required"`
	Availability1 string `json:"availability_1" binding:"required"`
	Availability2 string `json:"availability_2"`
}

type AssignServiceRequestRequest struct {
	ScheduledTime string `json:"scheduled_time" binding:"required"`
}

type RescheduleServiceRequestRequest struct {
	Availability1 string `json:"availability_1" binding:"required"`
	Availability2 string `json:"availability_2"`
}

type CompleteServiceRequestRequest struct {
	Note string `json:"note"`
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequestField(c, "invalid_id", "Identifier must be a positive integer.", name)
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE (customer)
// ======================================================

func (h *RequestHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucRequest.CreateRequestInput{
		CustomerID:    customerID,
		Description:   req.Description,
		Region:        req.Region,
		Availability1: req.Availability1,
		Availability2: req.Availability2,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusCreated, "service request created", gin.H{
		"requestId": created.ID,
		"paymentId": created.PaymentID,
		"status":    created.Status,
	})
}

// ======================================================
// LISTS (polling resync paths)
// ======================================================

func (h *RequestHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listMineUC.Execute(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Could not list requests.")
		return
	}
	httpresp.List(c, views)
}

func (h *RequestHandler) ListAvailable(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listAvailableUC.Execute(c.Request.Context(), technicianID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Could not list available jobs.")
		return
	}
	httpresp.List(c, views)
}

func (h *RequestHandler) ListAssigned(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	views, err := h.listJobsUC.Execute(c.Request.Context(), technicianID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Could not list jobs.")
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// ASSIGN (technician)
// ======================================================

func (h *RequestHandler) Assign(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AssignServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.assignUC.Execute(c.Request.Context(), technicianID, requestID, req.ScheduledTime)
	if err != nil {
		// Losing the assignment race is a conflict, not a missing row.
		if httperr.IsBusiness(err, "precondition_failed") {
			httperr.Conflict(c, "already_assigned", "Request already taken or no longer pending.")
			return
		}
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request assigned", gin.H{
		"requestId":     updated.ID,
		"technicianId":  technicianID,
		"status":        updated.Status,
		"paymentStatus": updated.PaymentStatus,
	})
}

// ======================================================
// UNASSIGN (technician)
// ======================================================

func (h *RequestHandler) Unassign(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	updated, err := h.unassignUC.Execute(c.Request.Context(), technicianID, requestID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request released", gin.H{
		"requestId": updated.ID,
		"status":    updated.Status,
	})
}

// ======================================================
// RESCHEDULE (customer)
// ======================================================

func (h *RequestHandler) Reschedule(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.rescheduleUC.Execute(c.Request.Context(), ucRequest.RescheduleInput{
		CustomerID:    customerID,
		RequestID:     requestID,
		Availability1: req.Availability1,
		Availability2: req.Availability2,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request rescheduled", gin.H{
		"requestId": updated.ID,
		"status":    updated.Status,
	})
}

// ======================================================
// COMPLETE (technician)
// ======================================================

func (h *RequestHandler) Complete(c *gin.Context) {
	technicianID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CompleteServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updated, err := h.completeUC.Execute(c.Request.Context(), technicianID, requestID, req.Note)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request completed by technician", gin.H{
		"requestId": updated.ID,
		"status":    updated.Status,
	})
}

// ======================================================
// CONFIRM COMPLETION (customer)
// ======================================================

func (h *RequestHandler) Confirm(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	updated, err := h.confirmUC.Execute(c.Request.Context(), customerID, requestID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request completed", gin.H{
		"requestId":     updated.ID,
		"status":        updated.Status,
		"paymentStatus": updated.PaymentStatus,
	})
}

// ======================================================
// CANCEL (customer)
// ======================================================

func (h *RequestHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, ok := paramID(c, "id")
	if !ok {
		return
	}

	updated, err := h.cancelUC.Execute(c.Request.Context(), customerID, requestID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "request cancelled", gin.H{
		"requestId": updated.ID,
		"status":    updated.Status,
	})
}
