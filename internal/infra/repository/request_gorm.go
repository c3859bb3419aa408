package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

// RequestGormRepository implements the lifecycle guard: each transition
// is one conditional UPDATE whose WHERE clause is the precondition.
// Row-level atomicity of that UPDATE is the entire concurrency
// mechanism; a zero-affected-rows result means the precondition no
// longer holds (or the row never existed) and surfaces as
// precondition_failed.
type RequestGormRepository struct {
	db *gorm.DB
}

func NewRequestGormRepository(db *gorm.DB) *RequestGormRepository {
	return &RequestGormRepository{db: db}
}

func guarded(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("precondition_failed")
	}
	return nil
}

// --------------------------------------------------
// Parties
// --------------------------------------------------

func (r *RequestGormRepository) GetCustomerByID(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *RequestGormRepository) GetTechnicianByID(
	ctx context.Context,
	id uint,
) (*models.Technician, error) {

	var tech models.Technician
	if err := r.db.WithContext(ctx).
		Preload("Regions").
		First(&tech, id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *RequestGormRepository) TechnicianRegions(
	ctx context.Context,
	technicianID uint,
) ([]string, error) {

	var out []string
	if err := r.db.WithContext(ctx).
		Model(&models.TechnicianRegion{}).
		Where("technician_id = ?", technicianID).
		Pluck("region", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RequestGormRepository) ListTechnicianIDsByRegion(
	ctx context.Context,
	region string,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.TechnicianRegion{}).
		Where("region = ?", region).
		Pluck("technician_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// --------------------------------------------------
// Requests (read)
// --------------------------------------------------

func (r *RequestGormRepository) CreateRequest(
	ctx context.Context,
	req *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestGormRepository) GetRequestForCustomer(
	ctx context.Context,
	requestID uint,
	customerID uint,
) (*models.ServiceRequest, error) {

	var req models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", requestID, customerID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestGormRepository) GetRequestForTechnician(
	ctx context.Context,
	requestID uint,
	technicianID uint,
) (*models.ServiceRequest, error) {

	var req models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND technician_id = ?", requestID, technicianID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestGormRepository) GetRequestWithParties(
	ctx context.Context,
	requestID uint,
) (*models.ServiceRequest, error) {

	var req models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		First(&req, requestID).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestGormRepository) ListRequestsByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.ServiceRequest, error) {

	var reqs []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RequestGormRepository) ListRequestsForTechnician(
	ctx context.Context,
	technicianID uint,
) ([]models.ServiceRequest, error) {

	var reqs []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		Where("technician_id = ?", technicianID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RequestGormRepository) ListPendingByRegions(
	ctx context.Context,
	regions []string,
) ([]models.ServiceRequest, error) {

	if len(regions) == 0 {
		return []models.ServiceRequest{}, nil
	}

	var reqs []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where(
			"status = ? AND technician_id IS NULL AND region IN ?",
			string(domain.StatusPending), regions,
		).
		Order("created_at ASC").
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Requests (guarded transitions)
// --------------------------------------------------

func (r *RequestGormRepository) AssignRequest(
	ctx context.Context,
	requestID uint,
	technicianID uint,
	scheduled time.Time,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND status = ? AND technician_id IS NULL",
			requestID, string(domain.StatusPending),
		).
		Updates(map[string]any{
			"technician_id":  technicianID,
			"scheduled_time": scheduled,
			"status":         string(domain.StatusAssigned),
			"payment_status": string(domain.PaymentAuthorized),
		}))
}

func (r *RequestGormRepository) UnassignRequest(
	ctx context.Context,
	requestID uint,
	technicianID uint,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND status = ? AND technician_id = ?",
			requestID, string(domain.StatusAssigned), technicianID,
		).
		Updates(map[string]any{
			"technician_id":  nil,
			"scheduled_time": nil,
			"status":         string(domain.StatusPending),
			"payment_status": string(domain.PaymentPending),
		}))
}

func (r *RequestGormRepository) RescheduleRequest(
	ctx context.Context,
	requestID uint,
	customerID uint,
	availability1 time.Time,
	availability2 *time.Time,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND customer_id = ? AND status IN ?",
			requestID, customerID,
			[]string{string(domain.StatusPending), string(domain.StatusAssigned)},
		).
		Updates(map[string]any{
			"availability1":  availability1,
			"availability2":  availability2,
			"technician_id":  nil,
			"scheduled_time": nil,
			"status":         string(domain.StatusPending),
			"payment_status": string(domain.PaymentPending),
		}))
}

func (r *RequestGormRepository) CompleteRequest(
	ctx context.Context,
	requestID uint,
	technicianID uint,
	note string,
	now time.Time,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND status = ? AND technician_id = ?",
			requestID, string(domain.StatusAssigned), technicianID,
		).
		Updates(map[string]any{
			"status":          string(domain.StatusCompletedTechnician),
			"completion_note": note,
			"completed_at":    now,
		}))
}

func (r *RequestGormRepository) ConfirmCompletion(
	ctx context.Context,
	requestID uint,
	customerID uint,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND customer_id = ? AND status = ?",
			requestID, customerID, string(domain.StatusCompletedTechnician),
		).
		Updates(map[string]any{
			"status":         string(domain.StatusCompleted),
			"payment_status": string(domain.PaymentCaptured),
		}))
}

func (r *RequestGormRepository) CancelRequest(
	ctx context.Context,
	requestID uint,
	customerID uint,
	now time.Time,
) error {

	return guarded(r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where(
			"id = ? AND customer_id = ? AND status IN ?",
			requestID, customerID,
			[]string{string(domain.StatusPending), string(domain.StatusAssigned)},
		).
		Updates(map[string]any{
			"status":         string(domain.StatusCancelled),
			"cancelled_at":   now,
			"technician_id":  nil,
			"scheduled_time": nil,
			"payment_status": string(domain.PaymentPending),
		}))
}

// --------------------------------------------------
// Proposals
// --------------------------------------------------

func (r *RequestGormRepository) CreateProposal(
	ctx context.Context,
	p *models.Proposal,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *RequestGormRepository) GetProposalForRequest(
	ctx context.Context,
	proposalID uint,
	requestID uint,
) (*models.Proposal, error) {

	var p models.Proposal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND service_request_id = ?", proposalID, requestID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RequestGormRepository) ListProposalsForRequest(
	ctx context.Context,
	requestID uint,
) ([]models.Proposal, error) {

	var ps []models.Proposal
	if err := r.db.WithContext(ctx).
		Where("service_request_id = ?", requestID).
		Order("created_at DESC").
		Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// ApproveProposal resolves the proposal and moves the parent request to
// the proposed time in one transaction. The parent must still be
// assigned to the proposing technician; either both guarded UPDATEs
// match or the whole resolution rolls back.
func (r *RequestGormRepository) ApproveProposal(
	ctx context.Context,
	proposalID uint,
	requestID uint,
	customerID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Proposal
		if err := tx.
			Where("id = ? AND service_request_id = ?", proposalID, requestID).
			First(&p).Error; err != nil {
			return httperr.ErrBusiness("precondition_failed")
		}

		if err := guarded(tx.
			Model(&models.Proposal{}).
			Where("id = ? AND status = ?", p.ID, string(domain.ProposalPending)).
			Update("status", string(domain.ProposalApproved))); err != nil {
			return err
		}

		return guarded(tx.
			Model(&models.ServiceRequest{}).
			Where(
				"id = ? AND customer_id = ? AND technician_id = ? AND status = ?",
				requestID, customerID, p.TechnicianID, string(domain.StatusAssigned),
			).
			Updates(map[string]any{
				"scheduled_time": p.ProposedTime,
				"status":         string(domain.StatusAssigned),
			}))
	})
}

// DeclineProposal resolves the proposal and reverts the parent request
// to pending, clearing the technician assignment. A request that has
// already completed or been cancelled is left untouched.
func (r *RequestGormRepository) DeclineProposal(
	ctx context.Context,
	proposalID uint,
	requestID uint,
	customerID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Proposal
		if err := tx.
			Where("id = ? AND service_request_id = ?", proposalID, requestID).
			First(&p).Error; err != nil {
			return httperr.ErrBusiness("precondition_failed")
		}

		if err := guarded(tx.
			Model(&models.Proposal{}).
			Where("id = ? AND status = ?", p.ID, string(domain.ProposalPending)).
			Update("status", string(domain.ProposalDeclined))); err != nil {
			return err
		}

		return guarded(tx.
			Model(&models.ServiceRequest{}).
			Where(
				"id = ? AND customer_id = ? AND status IN ?",
				requestID, customerID,
				[]string{string(domain.StatusPending), string(domain.StatusAssigned)},
			).
			Updates(map[string]any{
				"technician_id":  nil,
				"scheduled_time": nil,
				"status":         string(domain.StatusPending),
				"payment_status": string(domain.PaymentPending),
			}))
	})
}

// Compile-time check
var _ domain.Repository = (*RequestGormRepository)(nil)
