package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/httperr"
)

var allStatuses = []Status{
	StatusPending,
	StatusAssigned,
	StatusCompletedTechnician,
	StatusCompleted,
	StatusCancelled,
}

func TestTransitionGuards(t *testing.T) {
	tests := []struct {
		name    string
		guard   func(Status) error
		allowed []Status
	}{
		{"assign", CanAssign, []Status{StatusPending}},
		{"unassign", CanUnassign, []Status{StatusAssigned}},
		{"reschedule", CanReschedule, []Status{StatusPending, StatusAssigned}},
		{"complete", CanComplete, []Status{StatusAssigned}},
		{"confirm", CanConfirm, []Status{StatusCompletedTechnician}},
		{"cancel", CanCancel, []Status{StatusPending, StatusAssigned}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := make(map[Status]bool)
			for _, s := range tt.allowed {
				allowed[s] = true
			}

			for _, s := range allStatuses {
				err := tt.guard(s)
				if allowed[s] {
					assert.NoError(t, err, string(s))
				} else {
					assert.True(t, httperr.IsBusiness(err, "invalid_state"), string(s))
				}
			}
		})
	}
}

func TestPaymentGuards(t *testing.T) {
	assert.NoError(t, CanAuthorize(PaymentPending))
	assert.Error(t, CanAuthorize(PaymentAuthorized))
	assert.Error(t, CanAuthorize(PaymentCaptured))

	assert.NoError(t, CanCapture(PaymentAuthorized))
	assert.Error(t, CanCapture(PaymentPending))
	assert.Error(t, CanCapture(PaymentCaptured))
}

func TestCanResolveProposal(t *testing.T) {
	assert.NoError(t, CanResolveProposal(ProposalPending))

	for _, s := range []ProposalStatus{ProposalApproved, ProposalDeclined} {
		err := CanResolveProposal(s)
		assert.True(t, httperr.IsBusiness(err, "proposal_resolved"), string(s))
	}
}

func TestHasTechnician(t *testing.T) {
	assert.False(t, StatusPending.HasTechnician())
	assert.True(t, StatusAssigned.HasTechnician())
	assert.True(t, StatusCompletedTechnician.HasTechnician())
	assert.True(t, StatusCompleted.HasTechnician())
	assert.False(t, StatusCancelled.HasTechnician())
}

func TestInitialStates(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
	assert.Equal(t, PaymentPending, InitialPaymentStatus())
}
