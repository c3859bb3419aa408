package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

type ConfirmCompletion struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewConfirmCompletion(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *ConfirmCompletion {
	return &ConfirmCompletion{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute is the customer's sign-off: the request closes and the
// payment authorization is captured.
func (uc *ConfirmCompletion) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
) (*models.ServiceRequest, error) {

	if err := uc.repo.ConfirmCompletion(ctx, requestID, customerID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &customerID,
		Action:    "request_completed",
		Entity:    "service_request",
		EntityID:  &requestID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, nil), nil
}
