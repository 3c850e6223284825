package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validDealParams() CreateDealParams {
	return CreateDealParams{
		PropertyID:     uuid.New(),
		AgentID:        uuid.New(),
		BuyerName:      "Ivan Petrov",
		BuyerEmail:     "ivan@example.com",
		SalePrice:      250000,
		CommissionRate: 3,
	}
}

func TestCalculateCommission(t *testing.T) {
	got := CalculateCommission(250000, 3)
	if got != 7500 {
		t.Fatalf("expected commission 7500, got %v", got)
	}
	if CalculateCommission(100, 0) != 0 {
		t.Fatalf("expected zero commission at 0%% rate")
	}
}

func TestNewDeal_ComputesCommissionAndDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deal, err := NewDeal(validDealParams(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.Status != DealStatusPending {
		t.Fatalf("expected status pending, got %q", deal.Status)
	}
	if deal.CommissionAmount != 7500 {
		t.Fatalf("expected commission 7500, got %v", deal.CommissionAmount)
	}
	if !deal.CreatedAt.Equal(now) {
		t.Fatalf("expected CreatedAt=%v, got %v", now, deal.CreatedAt)
	}
	if deal.ClosedAt != nil {
		t.Fatalf("expected nil ClosedAt for a new deal")
	}
}

func TestNewDeal_RejectsInvalidTerms(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*CreateDealParams)
	}{
		{"zero price", func(p *CreateDealParams) { p.SalePrice = 0 }},
		{"negative price", func(p *CreateDealParams) { p.SalePrice = -1 }},
		{"negative rate", func(p *CreateDealParams) { p.CommissionRate = -0.5 }},
		{"rate above 100", func(p *CreateDealParams) { p.CommissionRate = 100.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validDealParams()
			tc.mod(&params)
			_, err := NewDeal(params, time.Now())
			if !errors.Is(err, ErrInvalidDealTerms) {
				t.Fatalf("expected ErrInvalidDealTerms, got %v", err)
			}
		})
	}
}

func TestDeal_Complete_FromPending(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())
	closedAt := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

	if err := deal.Complete(closedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.Status != DealStatusCompleted {
		t.Fatalf("expected status completed, got %q", deal.Status)
	}
	if deal.ClosedAt == nil || !deal.ClosedAt.Equal(closedAt) {
		t.Fatalf("expected ClosedAt=%v, got %v", closedAt, deal.ClosedAt)
	}
}

func TestDeal_Complete_RejectsNonPending(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())
	deal.Status = DealStatusCancelled

	err := deal.Complete(time.Now())
	if !IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestDeal_Cancel_AppendsReasonToNotes(t *testing.T) {
	params := validDealParams()
	params.Notes = "initial notes"
	deal, _ := NewDeal(params, time.Now())

	if err := deal.Cancel("buyer withdrew"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.Status != DealStatusCancelled {
		t.Fatalf("expected status cancelled, got %q", deal.Status)
	}
	if !strings.HasPrefix(deal.Notes, "initial notes") {
		t.Fatalf("existing notes must be preserved, got %q", deal.Notes)
	}
	if !strings.Contains(deal.Notes, "--- Cancelled ---\nbuyer withdrew") {
		t.Fatalf("expected cancellation section with reason, got %q", deal.Notes)
	}
}

func TestDeal_Cancel_EmptyReasonLeavesNotesUntouched(t *testing.T) {
	params := validDealParams()
	params.Notes = "initial notes"
	deal, _ := NewDeal(params, time.Now())

	if err := deal.Cancel(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.Notes != "initial notes" {
		t.Fatalf("expected notes unchanged, got %q", deal.Notes)
	}
}

func TestDeal_Cancel_RejectsCompleted(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())
	if err := deal.Complete(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := deal.Cancel("too late")
	if !IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "completed deals cannot be cancelled" {
		t.Fatalf("unexpected reason: %q", err.Error())
	}
}

func TestDeal_Cancel_RejectsDoubleCancel(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())
	if err := deal.Cancel("first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := deal.Cancel("second")
	if !IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if err.Error() != "deal is already cancelled" {
		t.Fatalf("unexpected reason: %q", err.Error())
	}
	if strings.Contains(deal.Notes, "second") {
		t.Fatalf("second reason must not be appended, got %q", deal.Notes)
	}
}

func TestDeal_UpdateTerms_RecomputesCommission(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())

	if err := deal.UpdateTerms(300000, 2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.SalePrice != 300000 || deal.CommissionRate != 2.5 {
		t.Fatalf("terms not applied: price=%v rate=%v", deal.SalePrice, deal.CommissionRate)
	}
	if deal.CommissionAmount != 7500 {
		t.Fatalf("expected recomputed commission 7500, got %v", deal.CommissionAmount)
	}
}

func TestDeal_UpdateTerms_RejectsNonPendingAndBadValues(t *testing.T) {
	deal, _ := NewDeal(validDealParams(), time.Now())

	if err := deal.UpdateTerms(-1, 3); !errors.Is(err, ErrInvalidDealTerms) {
		t.Fatalf("expected ErrInvalidDealTerms for negative price, got %v", err)
	}
	if err := deal.UpdateTerms(100, 101); !errors.Is(err, ErrInvalidDealTerms) {
		t.Fatalf("expected ErrInvalidDealTerms for rate above 100, got %v", err)
	}

	if err := deal.Complete(time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := deal.UpdateTerms(100, 3); !IsInvalidState(err) {
		t.Fatalf("expected invalid state error for completed deal, got %v", err)
	}
}
