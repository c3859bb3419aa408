package request

import (
	"context"
	"strings"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/payments"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/regions"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	CustomerID uint

	Description   string
	Region        string
	Availability1 string
	Availability2 string
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewCreateRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *CreateRequest {
	return &CreateRequest{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *CreateRequest) Execute(
	ctx context.Context,
	in CreateRequestInput,
) (*models.ServiceRequest, error) {

	if _, err := uc.repo.GetCustomerByID(ctx, in.CustomerID); err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, httperr.ErrBusiness("missing_description")
	}

	region, ok := regions.Normalize(in.Region)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_region")
	}

	now := timezone.Now()

	availability1, err := timezone.Parse(in.Availability1)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_availability")
	}
	if !availability1.After(now) {
		return nil, httperr.ErrBusiness("availability_in_past")
	}

	req := &models.ServiceRequest{
		CustomerID:    in.CustomerID,
		Description:   strings.TrimSpace(in.Description),
		Region:        region,
		Status:        string(domain.InitialStatus()),
		Availability1: availability1,
		PaymentID:     payments.NewReference(),
		PaymentStatus: string(domain.InitialPaymentStatus()),
	}

	if in.Availability2 != "" {
		a2, err := timezone.Parse(in.Availability2)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_availability")
		}
		if !a2.After(now) {
			return nil, httperr.ErrBusiness("availability_in_past")
		}
		req.Availability2 = &a2
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &in.CustomerID,
		Action:    "request_created",
		Entity:    "service_request",
		EntityID:  &req.ID,
	})

	fanout(ctx, uc.repo, uc.notifier, req.ID, nil)

	return req, nil
}
