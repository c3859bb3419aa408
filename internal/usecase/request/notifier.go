package request

import (
	"context"
	"log"

	domain "github.com/WAKO-NZ/tap4service2-sub000/internal/domain/request"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/dto"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
)

// Notifier is the push port of the lifecycle use cases. The hub
// satisfies it; delivery is fire-and-forget.
type Notifier interface {
	SendToCustomer(id uint, message any) bool
	SendToTechnician(id uint, message any) bool
	SendToTechnicians(ids []uint, message any)
}

// fanout re-reads the mutated request with its joined display fields
// and pushes it to every interested connected viewer: the owning
// customer, the assigned technician, the just-detached technician (if
// any), and, when the request is back on the open market, the
// technicians serving its region. Failures here never fail the
// operation: the transition is already committed, and polling is the
// authoritative resync path.
func fanout(
	ctx context.Context,
	repo domain.Repository,
	n Notifier,
	requestID uint,
	detachedTechnicianID *uint,
) *models.ServiceRequest {

	req, err := repo.GetRequestWithParties(ctx, requestID)
	if err != nil {
		log.Printf("fanout reload request %d: %v", requestID, err)
		return &models.ServiceRequest{ID: requestID}
	}

	view := dto.RequestViewFrom(req)
	update := dto.RequestEvent{Type: dto.EventUpdate, Request: view}

	n.SendToCustomer(req.CustomerID, update)
	if req.TechnicianID != nil {
		n.SendToTechnician(*req.TechnicianID, update)
	}
	if detachedTechnicianID != nil &&
		(req.TechnicianID == nil || *req.TechnicianID != *detachedTechnicianID) {
		n.SendToTechnician(*detachedTechnicianID, update)
	}

	if domain.Status(req.Status) == domain.StatusPending && req.TechnicianID == nil {
		ids, err := repo.ListTechnicianIDsByRegion(ctx, req.Region)
		if err != nil {
			log.Printf("new_job fanout: %v", err)
			return req
		}
		n.SendToTechnicians(ids, dto.RequestEvent{Type: dto.EventNewJob, Request: view})
	}

	return req
}
