package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

const (
	ActionApprove = "approve"
	ActionDecline = "decline"
)

type ResolveProposal struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewResolveProposal(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *ResolveProposal {
	return &ResolveProposal{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute resolves a pending proposal exactly once. Approval moves the
// parent request to the proposed time; decline detaches the technician
// and returns the request to pending.
func (uc *ResolveProposal) Execute(
	ctx context.Context,
	customerID uint,
	requestID uint,
	proposalID uint,
	action string,
) (*models.ServiceRequest, error) {

	p, err := uc.repo.GetProposalForRequest(ctx, proposalID, requestID)
	if err != nil {
		return nil, httperr.ErrBusiness("proposal_not_found")
	}

	if err := domain.CanResolveProposal(domain.ProposalStatus(p.Status)); err != nil {
		return nil, err
	}

	var detached *uint

	switch action {
	case ActionApprove:
		if err := uc.repo.ApproveProposal(ctx, proposalID, requestID, customerID); err != nil {
			return nil, err
		}
	case ActionDecline:
		if err := uc.repo.DeclineProposal(ctx, proposalID, requestID, customerID); err != nil {
			return nil, err
		}
		detached = &p.TechnicianID
	default:
		return nil, httperr.ErrBusiness("invalid_action")
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "customer",
		ActorID:   &customerID,
		Action:    "proposal_" + action + "d",
		Entity:    "proposal",
		EntityID:  &proposalID,
	})

	return fanout(ctx, uc.repo, uc.notifier, requestID, detached), nil
}
