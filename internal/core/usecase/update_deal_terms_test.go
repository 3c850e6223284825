package usecase

import (
	"context"
	"errors"
	"testing"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestUpdateDealTerms_RecomputesCommission(t *testing.T) {
	deal, _ := domain.NewDeal(dealParamsFor(uuid.New()), testNow())
	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal

	uc := NewUpdateDealTermsUseCase(deals)

	got, err := uc.Execute(context.Background(), deal.ID, 400000, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SalePrice != 400000 || got.CommissionRate != 2 {
		t.Fatalf("terms not applied: price=%v rate=%v", got.SalePrice, got.CommissionRate)
	}
	if got.CommissionAmount != 8000 {
		t.Fatalf("expected recomputed commission 8000, got %v", got.CommissionAmount)
	}
	if len(deals.updated) != 1 {
		t.Fatalf("expected deal update persisted")
	}
}

func TestUpdateDealTerms_RejectsCompletedDeal(t *testing.T) {
	deal, _ := domain.NewDeal(dealParamsFor(uuid.New()), testNow())
	if err := deal.Complete(testNow()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal

	uc := NewUpdateDealTermsUseCase(deals)
	_, err := uc.Execute(context.Background(), deal.ID, 100, 3)
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if len(deals.updated) != 0 {
		t.Fatalf("rejected update must not be persisted")
	}
}

func TestUpdateDealTerms_RejectsInvalidValues(t *testing.T) {
	deal, _ := domain.NewDeal(dealParamsFor(uuid.New()), testNow())
	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal

	uc := NewUpdateDealTermsUseCase(deals)
	_, err := uc.Execute(context.Background(), deal.ID, -5, 3)
	if !errors.Is(err, domain.ErrInvalidDealTerms) {
		t.Fatalf("expected ErrInvalidDealTerms, got %v", err)
	}
}

func TestUpdateDealTerms_DealNotFound(t *testing.T) {
	uc := NewUpdateDealTermsUseCase(newFakeDealRepo())
	_, err := uc.Execute(context.Background(), uuid.New(), 100, 3)
	if !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}
