package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

type AssignRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewAssignRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *AssignRequest {
	return &AssignRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute accepts a pending, unassigned request on behalf of a
// technician. Two racing technicians are arbitrated by the guarded
// UPDATE: the loser sees precondition_failed.
func (uc *AssignRequest) Execute(
	ctx context.Context,
	technicianID uint,
	requestID uint,
	scheduledTime string,
) (*models.ServiceRequest, error) {

	tech, err := uc.repo.GetTechnicianByID(ctx, technicianID)
	if err != nil {
		return nil, httperr.ErrBusiness("technician_not_found")
	}
	if !tech.Available {
		return nil, httperr.ErrBusiness("technician_unavailable")
	}

	scheduled, err := timezone.Parse(scheduledTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_scheduled_time")
	}

	req, err := uc.repo.GetRequestWithParties(ctx, requestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	serves := false
	for _, tr := range tech.Regions {
		if tr.Region == req.Region {
			serves = true
			break
		}
	}
	if !serves {
		return nil, httperr.ErrBusiness("region_not_served")
	}

	if err := uc.repo.AssignRequest(ctx, requestID, technicianID, scheduled); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "technician",
		ActorID:   &technicianID,
		Action:    "request_assigned",
		Entity:    "service_request",
		EntityID:  &requestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, nil), nil
}
