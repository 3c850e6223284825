package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

func TestCancelDeal_RepublishesPropertyAndReopensInquiry(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}
	inquiry := domain.NewInquiry(domain.CreateInquiryParams{PropertyID: property.ID, BuyerName: "Anna"}, testNow())

	deals := newFakeDealRepo()
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	inquiries := newFakeInquiryRepo()
	inquiries.inquiries[inquiry.ID] = inquiry
	events := &fakeDealEvents{}

	createUC := NewCreateDealUseCase(&fakeTransactor{}, deals, properties, inquiries, events, &fakeClock{now: testNow()})
	params := dealParamsFor(property.ID)
	params.InquiryID = &inquiry.ID
	deal, err := createUC.Execute(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inquiry.Status != domain.InquiryStatusClosed {
		t.Fatalf("precondition: inquiry must be closed by deal creation")
	}

	cancelUC := NewCancelDealUseCase(&fakeTransactor{}, deals, properties, inquiries, events, &fakeClock{now: testNow()})
	cancelled, err := cancelUC.Execute(context.Background(), deal.ID, "buyer withdrew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cancelled.Status != domain.DealStatusCancelled {
		t.Fatalf("expected deal cancelled, got %q", cancelled.Status)
	}
	if !strings.Contains(cancelled.Notes, "buyer withdrew") {
		t.Fatalf("expected cancellation reason in notes, got %q", cancelled.Notes)
	}
	if property.Status != domain.PropertyStatusPublished {
		t.Fatalf("expected property republished, got %q", property.Status)
	}
	if property.ClosedDealID != nil {
		t.Fatalf("expected deal link cleared, got %v", property.ClosedDealID)
	}
	if inquiry.Status != domain.InquiryStatusNew {
		t.Fatalf("expected inquiry reopened as new, got %q", inquiry.Status)
	}
	if len(events.published) != 2 || events.published[1].Type != port.DealEventCancelled {
		t.Fatalf("expected cancelled event published, got %+v", events.published)
	}
}

func TestCancelDeal_ManuallyReopenedInquiryNotTouched(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusUnderOffer}
	inquiry := domain.NewInquiry(domain.CreateInquiryParams{PropertyID: property.ID}, testNow())
	if err := inquiry.Assign(uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := dealParamsFor(property.ID)
	params.InquiryID = &inquiry.ID
	deal, _ := domain.NewDeal(params, testNow())

	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	inquiries := newFakeInquiryRepo()
	inquiries.inquiries[inquiry.ID] = inquiry

	uc := NewCancelDealUseCase(&fakeTransactor{}, deals, properties, inquiries, &fakeDealEvents{}, &fakeClock{now: testNow()})
	if _, err := uc.Execute(context.Background(), deal.ID, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inquiry.Status != domain.InquiryStatusAssigned {
		t.Fatalf("non-closed inquiry must keep its status, got %q", inquiry.Status)
	}
	if len(inquiries.updated) != 0 {
		t.Fatalf("non-closed inquiry must not be re-saved, got %d updates", len(inquiries.updated))
	}
}

func TestCancelDeal_MissingInquirySkipped(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusUnderOffer}
	missingInquiryID := uuid.New()

	params := dealParamsFor(property.ID)
	params.InquiryID = &missingInquiryID
	deal, _ := domain.NewDeal(params, testNow())

	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property

	uc := NewCancelDealUseCase(&fakeTransactor{}, deals, properties, newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})
	cancelled, err := uc.Execute(context.Background(), deal.ID, "changed mind")
	if err != nil {
		t.Fatalf("missing inquiry must not fail cancellation: %v", err)
	}
	if cancelled.Status != domain.DealStatusCancelled {
		t.Fatalf("expected deal cancelled, got %q", cancelled.Status)
	}
}

func TestCancelDeal_RejectsCompletedDeal(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusSold}
	deal, _ := domain.NewDeal(dealParamsFor(property.ID), testNow())
	if err := deal.Complete(testNow()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property

	uc := NewCancelDealUseCase(&fakeTransactor{}, deals, properties, newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})
	_, err := uc.Execute(context.Background(), deal.ID, "too late")
	if !domain.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if property.Status != domain.PropertyStatusSold {
		t.Fatalf("property must stay sold, got %q", property.Status)
	}
}

func TestCancelDeal_DealNotFound(t *testing.T) {
	uc := NewCancelDealUseCase(&fakeTransactor{}, newFakeDealRepo(), newFakePropertyRepo(), newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})
	_, err := uc.Execute(context.Background(), uuid.New(), "whatever")
	if !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}
