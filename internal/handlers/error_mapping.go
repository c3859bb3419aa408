package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
)

// respondBusiness translates a use-case business error into the HTTP
// error envelope. Validation faults carry the offending field;
// lifecycle guard misses come back as 404 (a stale precondition is
// indistinguishable from a missing row) except the assign race, which
// the caller maps to 409 itself.
func respondBusiness(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", err.Error())
		return
	}

	switch be.Code {
	case "missing_description":
		httperr.BadRequestField(c, be.Code, "Description is required.", "description")
	case "invalid_region":
		httperr.BadRequestField(c, be.Code, "Unknown region.", "region")
	case "invalid_availability":
		httperr.BadRequestField(c, be.Code, "Availability must be a DD/MM/YYYY HH:mm:ss timestamp.", "availability_1")
	case "availability_in_past":
		httperr.BadRequestField(c, be.Code, "Availability must be in the future.", "availability_1")
	case "invalid_scheduled_time":
		httperr.BadRequestField(c, be.Code, "Scheduled time must be a DD/MM/YYYY HH:mm:ss timestamp.", "scheduled_time")
	case "invalid_proposed_time":
		httperr.BadRequestField(c, be.Code, "Proposed time must be a DD/MM/YYYY HH:mm:ss timestamp.", "proposed_time")
	case "proposed_time_in_past":
		httperr.BadRequestField(c, be.Code, "Proposed time must be in the future.", "proposed_time")
	case "invalid_action":
		httperr.BadRequestField(c, be.Code, "Action must be approve or decline.", "action")
	case "too_close_to_schedule":
		httperr.BadRequest(c, be.Code, "Too close to the confirmed schedule time.")

	case "customer_not_found", "technician_not_found", "request_not_found",
		"proposal_not_found", "not_assigned_to_technician":
		httperr.NotFound(c, be.Code, "Not found.")

	case "region_not_served":
		httperr.Forbidden(c, be.Code, "Technician does not serve this region.")

	case "technician_unavailable", "proposal_resolved", "invalid_state":
		httperr.Conflict(c, be.Code, "Operation not allowed in the current state.")

	case "precondition_failed":
		httperr.NotFound(c, be.Code, "Request not found or not in the expected state.")

	default:
		httperr.Internal(c, be.Code, "Unexpected error.")
	}
}
