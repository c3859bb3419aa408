package dto

import (
	"github.com/WAKO-NZ/tap4service2-sub000/internal/models"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/timezone"
)

// RequestView is the joined projection of a service request pushed to
// clients, timestamps rendered in the wire format.
type RequestView struct {
	ID              uint   `json:"id"`
	Description     string `json:"description"`
	Region          string `json:"region"`
	Status          string `json:"status"`
	CustomerID      uint   `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	TechnicianID    *uint  `json:"technician_id"`
	TechnicianName  string `json:"technician_name,omitempty"`
	Availability1   string `json:"availability_1"`
	Availability2   string `json:"availability_2,omitempty"`
	ScheduledTime   string `json:"scheduled_time,omitempty"`
	PaymentID       string `json:"payment_id"`
	PaymentStatus   string `json:"payment_status"`
	CompletionNote  string `json:"completion_note,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func RequestViewFrom(r *models.ServiceRequest) RequestView {
	v := RequestView{
		ID:              r.ID,
		Description:     r.Description,
		Region:          r.Region,
		Status:          r.Status,
		CustomerID:      r.CustomerID,
		CustomerName:    r.Customer.Name,
		CustomerAddress: r.Customer.Address,
		TechnicianID:    r.TechnicianID,
		Availability1:   timezone.Format(r.Availability1),
		Availability2:   timezone.FormatPtr(r.Availability2),
		ScheduledTime:   timezone.FormatPtr(r.ScheduledTime),
		PaymentID:       r.PaymentID,
		PaymentStatus:   r.PaymentStatus,
		CompletionNote:  r.CompletionNote,
		CreatedAt:       timezone.Format(r.CreatedAt),
	}
	if r.Technician != nil {
		v.TechnicianName = r.Technician.Name
	}
	return v
}

func RequestViewsFrom(rs []models.ServiceRequest) []RequestView {
	out := make([]RequestView, 0, len(rs))
	for i := range rs {
		out = append(out, RequestViewFrom(&rs[i]))
	}
	return out
}

type ProposalView struct {
	ID               uint   `json:"id"`
	ServiceRequestID uint   `json:"service_request_id"`
	TechnicianID     uint   `json:"technician_id"`
	ProposedTime     string `json:"proposed_time"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

func ProposalViewFrom(p *models.Proposal) ProposalView {
	return ProposalView{
		ID:               p.ID,
		ServiceRequestID: p.ServiceRequestID,
		TechnicianID:     p.TechnicianID,
		ProposedTime:     timezone.Format(p.ProposedTime),
		Status:           p.Status,
		CreatedAt:        timezone.Format(p.CreatedAt),
	}
}

func ProposalViewsFrom(ps []models.Proposal) []ProposalView {
	out := make([]ProposalView, 0, len(ps))
	for i := range ps {
		out = append(out, ProposalViewFrom(&ps[i]))
	}
	return out
}
