package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

type UnassignRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewUnassignRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *UnassignRequest {
	return &UnassignRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute walks an assignment back: the request returns to the open
// market and the payment authorization is voided.
func (uc *UnassignRequest) Execute(
	ctx context.Context,
	technicianID uint,
	requestID uint,
) (*models.ServiceRequest, error) {

	if err := uc.repo.UnassignRequest(ctx, requestID, technicianID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "technician",
		ActorID:   &technicianID,
		Action:    "request_unassigned",
		Entity:    "service_request",
		EntityID:  &requestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, &technicianID), nil
}
