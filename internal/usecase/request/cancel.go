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

type CancelRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
	notice   time.Duration
}

func NewCancelRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	notice time.Duration,
) *CancelRequest {
	return &CancelRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		notice:   notice,
	}
}

// Execute cancels a request on the owning customer's behalf, rejected
// within the notice window of a confirmed schedule time.
func (uc *CancelRequest) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
) (*models.ServiceRequest, error) {

	req, err := uc.repo.GetRequestForCustomer(ctx, requestID, customerID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	if err := domain.CanCancel(domain.Status(req.Status)); err != nil {
		return nil, err
	}

	now := timezone.Now()
	if req.ScheduledTime != nil && now.After(req.ScheduledTime.Add(-uc.notice)) {
		return nil, httperr.ErrBusiness("too_close_to_schedule")
	}

	detached := req.TechnicianID

	if err := uc.repo.CancelRequest(ctx, requestID, customerID, now); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &customerID,
		Action:    "request_cancelled",
		Entity:    "service_request",
		EntityID:  &requestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, detached), nil
}
