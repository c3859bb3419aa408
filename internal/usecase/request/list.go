package request

import (
	"context"

	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/dto"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
)

// ListCustomerRequests is the customer's polling view: all own
// requests, newest first.
type ListCustomerRequests struct {
	repo domain.Repository
}

func NewListCustomerRequests(repo domain.Repository) *ListCustomerRequests {
	return &ListCustomerRequests{repo: repo}
}

func (uc *ListCustomerRequests) Execute(
	ctx context.Context,
	customerID uint,
) ([]dto.RequestView, error) {

	reqs, err := uc.repo.ListRequestsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return dto.RequestViewsFrom(reqs), nil
}

// ListTechnicianJobs is the technician's polling view of accepted work.
type ListTechnicianJobs struct {
	repo domain.Repository
}

func NewListTechnicianJobs(repo domain.Repository) *ListTechnicianJobs {
	return &ListTechnicianJobs{repo: repo}
}

func (uc *ListTechnicianJobs) Execute(
	ctx context.Context,
	technicianID uint,
) ([]dto.RequestView, error) {

	reqs, err := uc.repo.ListRequestsForTechnician(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	return dto.RequestViewsFrom(reqs), nil
}

// ListAvailableJobs filters open requests down to the regions the
// technician serves.
type ListAvailableJobs struct {
	repo domain.Repository
}

func NewListAvailableJobs(repo domain.Repository) *ListAvailableJobs {
	return &ListAvailableJobs{repo: repo}
}

func (uc *ListAvailableJobs) Execute(
	ctx context.Context,
	technicianID uint,
) ([]dto.RequestView, error) {

	served, err := uc.repo.TechnicianRegions(ctx, technicianID)
	if err != nil {
		return nil, err
	}

	reqs, err := uc.repo.ListPendingByRegions(ctx, served)
	if err != nil {
		return nil, err
	}
	return dto.RequestViewsFrom(reqs), nil
}

// ListProposals returns a request's proposals to its owning customer.
type ListProposals struct {
	repo domain.Repository
}

func NewListProposals(repo domain.Repository) *ListProposals {
	return &ListProposals{repo: repo}
}

func (uc *ListProposals) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
) ([]dto.ProposalView, error) {

	if _, err := uc.repo.GetRequestForCustomer(ctx, requestID, customerID); err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}

	ps, err := uc.repo.ListProposalsForRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return dto.ProposalViewsFrom(ps), nil
}
