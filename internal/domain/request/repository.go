package request

import (
	"context"
	"time"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

// Repository is the persistence port of the request lifecycle. Every
// state-changing method is a guarded conditional UPDATE: the WHERE
// clause carries the precondition and a zero-affected-rows result
// surfaces as a precondition_failed business error.
type Repository interface {
	// -------- Parties --------
	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	GetTechnicianByID(
		ctx context.Context,
		id uint,
	) (*models.Technician, error)

	TechnicianRegions(
		ctx context.Context,
		technicianID uint,
	) ([]string, error)

	ListTechnicianIDsByRegion(
		ctx context.Context,
		region string,
	) ([]uint, error)

	// -------- Requests (read) --------
	CreateRequest(
		ctx context.Context,
		req *models.ServiceRequest,
	) error

	GetRequestForCustomer(
		ctx context.Context,
		requestID uint,
		customerID uint,
	) (*models.ServiceRequest, error)

	GetRequestForTechnician(
		ctx context.Context,
		requestID uint,
		technicianID uint,
	) (*models.ServiceRequest, error)

	GetRequestWithParties(
		ctx context.Context,
		requestID uint,
	) (*models.ServiceRequest, error)

	ListRequestsByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.ServiceRequest, error)

	ListRequestsForTechnician(
		ctx context.Context,
		technicianID uint,
	) ([]models.ServiceRequest, error)

	ListPendingByRegions(
		ctx context.Context,
		regions []string,
	) ([]models.ServiceRequest, error)

	// -------- Requests (guarded transitions) --------
	AssignRequest(
		ctx context.Context,
		requestID uint,
		technicianID uint,
		scheduled time.Time,
	) error

	UnassignRequest(
		ctx context.Context,
		requestID uint,
		technicianID uint,
	) error

	RescheduleRequest(
		ctx context.Context,
		requestID uint,
		customerID uint,
		availability1 time.Time,
		availability2 *time.Time,
	) error

	CompleteRequest(
		ctx context.Context,
		requestID uint,
		technicianID uint,
		note string,
		now time.Time,
	) error

	ConfirmCompletion(
		ctx context.Context,
		requestID uint,
		customerID uint,
	) error

	CancelRequest(
		ctx context.Context,
		requestID uint,
		customerID uint,
		now time.Time,
	) error

	// -------- Proposals --------
	CreateProposal(
		ctx context.Context,
		p *models.Proposal,
	) error

	GetProposalForRequest(
		ctx context.Context,
		proposalID uint,
		requestID uint,
	) (*models.Proposal, error)

	ListProposalsForRequest(
		ctx context.Context,
		requestID uint,
	) ([]models.Proposal, error)

	ApproveProposal(
		ctx context.Context,
		proposalID uint,
		requestID uint,
		customerID uint,
	) error

	DeclineProposal(
		ctx context.Context,
		proposalID uint,
		requestID uint,
		customerID uint,
	) error
}
