package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

type CompleteRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCompleteRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CompleteRequest {
	return &CompleteRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute records the technician's completion, waiting on the
// customer's confirmation before payment capture.
func (uc *CompleteRequest) Execute(
	ctx context.Context,
	technicianID uint,
	requestID uint,
	note string,
) (*models.ServiceRequest, error) {

	now := timezone.Now()
	if err := uc.repo.CompleteRequest(ctx, requestID, technicianID, note, now); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "technician",
		ActorID:   &technicianID,
		Action:    "request_completed_technician",
		Entity:    "service_request",
		EntityID:  &requestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, nil), nil
}
