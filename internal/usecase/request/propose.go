package request

import (
	"context"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/dto"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

type ProposeTime struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier Notifier
}

func NewProposeTime(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
) *ProposeTime {
	return &ProposeTime{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
	}
}

// Execute records an alternate-time suggestion from the assigned
// technician and pushes it to the owning customer. The parent request
// is untouched until the customer resolves the proposal.
func (uc *ProposeTime) Execute(
	ctx context.Context,
	technicianID uint,
	requestID uint,
	proposedTime string,
) (*models.Proposal, error) {

	proposed, err := timezone.Parse(proposedTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_proposed_time")
	}
	if !proposed.After(timezone.Now()) {
		return nil, httperr.ErrBusiness("proposed_time_in_past")
	}

	req, err := uc.repo.GetRequestForTechnician(ctx, requestID, technicianID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_assigned_to_technician")
	}

	if domain.Status(req.Status) != domain.StatusAssigned {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	p := &models.Proposal{
		ServiceRequestID: requestID,
		TechnicianID:     technicianID,
		ProposedTime:     proposed,
		Status:           string(domain.ProposalPending),
	}

	if err := uc.repo.CreateProposal(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "technician",
		ActorID:   &technicianID,
		Action:    "proposal_created",
		Entity:    "proposal",
		EntityID:  &p.ID,
	})

	if full, err := uc.repo.GetRequestWithParties(ctx, requestID); err == nil {
		uc.notifier.SendToCustomer(req.CustomerID, dto.ProposalEvent{
			Type:     dto.EventProposal,
			Proposal: dto.ProposalViewFrom(p),
			Request:  dto.RequestViewFrom(full),
		})
	}

	return p, nil
}
