package request

import (
	"context"
	"time"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

type RescheduleInput struct {
	CustomerID    uint
	RequestID     uint
	Availability1 string
	Availability2 string
}

type RescheduleRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	notice   time.Duration
}

func NewRescheduleRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	notice time.Duration,
) *RescheduleRequest {
	return &RescheduleRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		notice:   notice,
	}
}

// Execute replaces the customer's availability windows and drops any
// technician assignment, returning the request to pending. Rejected
// within the notice window of a confirmed schedule time.
func (uc *RescheduleRequest) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.ServiceRequest, error) {

	req, err := uc.repo.GetRequestForCustomer(ctx, in.RequestID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if err := domain.CanReschedule(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	now := timezone.Now()
	if req.ScheduledTime != nil && now.After(req.ScheduledTime.Add(-uc.notice)) {
		return nil, httperr.ErrBusiness("too_close_to_schedule")
	}

	availability1, err := timezone.Parse(in.Availability1)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_availability")
	}
	if !availability1.After(now) {
		return nil, httperr.ErrBusiness("availability_in_past")
	}

	var availability2 *time.Time
	if in.Availability2 != "" {
		a2, err := timezone.Parse(in.Availability2)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_availability")
		}
		if !a2.After(now) {
			return nil, httperr.ErrBusiness("availability_in_past")
		}
		availability2 = &a2
	}

	detached := req.TechnicianID

	if err := uc.repo.RescheduleRequest(
		ctx, in.RequestID, in.CustomerID, availability1, availability2,
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &in.CustomerID,
		Action:    "request_rescheduled",
		Entity:    "service_request",
		EntityID:  &in.RequestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, in.RequestID, detached), nil
}
