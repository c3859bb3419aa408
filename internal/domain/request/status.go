package request

import "github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"

// ===============================
// Service Request Status
// ===============================

type Status string

const (
	StatusPending             Status = "pending"
	StatusAssigned            Status = "assigned"
	StatusCompletedTechnician Status = "completed_technician"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
)

// HasTechnician reports whether a request in this status must carry a
// technician assignment. technician_id is non-null exactly for these
// states.
func (s Status) HasTechnician() bool {
	switch s {
	case StatusAssigned, StatusCompletedTechnician, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
)

// ===============================
// Proposal Status
// ===============================

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalDeclined ProposalStatus = "declined"
)

// ===============================
// Transition guards
// ===============================

// CanAssign: only an unassigned pending request can be accepted.
func CanAssign(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanUnassign: only the assigned state can be walked back by the
// technician.
func CanUnassign(current Status) error {
	if current != StatusAssigned {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule: the customer may change availabilities while the
// request is still pending or merely assigned.
func CanReschedule(current Status) error {
	if current != StatusPending && current != StatusAssigned {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: the technician marks work done only on an assigned
// request.
func CanComplete(current Status) error {
	if current != StatusAssigned {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanConfirm: the customer confirms only after the technician reported
// completion.
func CanConfirm(current Status) error {
	if current != StatusCompletedTechnician {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: a request is cancellable by its customer any time before
// completion.
func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusAssigned:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanAuthorize / CanCapture enforce the forward-only payment
// progression tied to assign and confirm-completion.
func CanAuthorize(current PaymentStatus) error {
	if current != PaymentPending {
		return httperr.ErrBusiness("invalid_payment_state")
	}
	return nil
}

func CanCapture(current PaymentStatus) error {
	if current != PaymentAuthorized {
		return httperr.ErrBusiness("invalid_payment_state")
	}
	return nil
}

// CanResolveProposal: a proposal is resolved exactly once.
func CanResolveProposal(current ProposalStatus) error {
	if current != ProposalPending {
		return httperr.ErrBusiness("proposal_resolved")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

func InitialPaymentStatus() PaymentStatus {
	return PaymentPending
}
