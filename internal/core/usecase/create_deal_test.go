package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

func testNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func dealParamsFor(propertyID uuid.UUID) domain.CreateDealParams {
	return domain.CreateDealParams{
		PropertyID:     propertyID,
		AgentID:        uuid.New(),
		BuyerName:      "Ivan Petrov",
		BuyerEmail:     "ivan@example.com",
		SalePrice:      250000,
		CommissionRate: 3,
	}
}

func TestCreateDeal_HappyPath(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}

	deals := newFakeDealRepo()
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	inquiries := newFakeInquiryRepo()
	events := &fakeDealEvents{}
	transactor := &fakeTransactor{}

	uc := NewCreateDealUseCase(transactor, deals, properties, inquiries, events, &fakeClock{now: testNow()})

	deal, err := uc.Execute(context.Background(), dealParamsFor(property.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transactor.calls != 1 {
		t.Fatalf("expected 1 transaction, got %d", transactor.calls)
	}
	if deal.Status != domain.DealStatusPending {
		t.Fatalf("expected pending deal, got %q", deal.Status)
	}
	if len(deals.created) != 1 {
		t.Fatalf("expected 1 created deal, got %d", len(deals.created))
	}
	if property.Status != domain.PropertyStatusUnderOffer {
		t.Fatalf("expected property under_offer, got %q", property.Status)
	}
	if property.ClosedDealID == nil || *property.ClosedDealID != deal.ID {
		t.Fatalf("expected property linked to deal %s, got %v", deal.ID, property.ClosedDealID)
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events.published))
	}
	if events.published[0].Type != port.DealEventCreated {
		t.Fatalf("expected event %q, got %q", port.DealEventCreated, events.published[0].Type)
	}
}

func TestCreateDeal_ClosesLinkedInquiry(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}
	inquiry := domain.NewInquiry(domain.CreateInquiryParams{PropertyID: property.ID, BuyerName: "Anna"}, testNow())

	deals := newFakeDealRepo()
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	inquiries := newFakeInquiryRepo()
	inquiries.inquiries[inquiry.ID] = inquiry

	uc := NewCreateDealUseCase(&fakeTransactor{}, deals, properties, inquiries, &fakeDealEvents{}, &fakeClock{now: testNow()})

	params := dealParamsFor(property.ID)
	params.InquiryID = &inquiry.ID
	if _, err := uc.Execute(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inquiry.Status != domain.InquiryStatusClosed {
		t.Fatalf("expected linked inquiry closed, got %q", inquiry.Status)
	}
	if len(inquiries.updated) != 1 {
		t.Fatalf("expected 1 inquiry update, got %d", len(inquiries.updated))
	}
}

func TestCreateDeal_AlreadyClosedInquiryNotTouched(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}
	inquiry := domain.NewInquiry(domain.CreateInquiryParams{PropertyID: property.ID}, testNow())
	if err := inquiry.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deals := newFakeDealRepo()
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	inquiries := newFakeInquiryRepo()
	inquiries.inquiries[inquiry.ID] = inquiry

	uc := NewCreateDealUseCase(&fakeTransactor{}, deals, properties, inquiries, &fakeDealEvents{}, &fakeClock{now: testNow()})

	params := dealParamsFor(property.ID)
	params.InquiryID = &inquiry.ID
	if _, err := uc.Execute(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inquiries.updated) != 0 {
		t.Fatalf("closed inquiry must not be re-saved, got %d updates", len(inquiries.updated))
	}
}

func TestCreateDeal_RejectsSecondActiveDeal(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusUnderOffer}
	existing, _ := domain.NewDeal(dealParamsFor(property.ID), testNow())

	deals := newFakeDealRepo()
	deals.activeByID[property.ID] = existing
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property

	uc := NewCreateDealUseCase(&fakeTransactor{}, deals, properties, newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})

	_, err := uc.Execute(context.Background(), dealParamsFor(property.ID))
	if !errors.Is(err, domain.ErrActiveDealExists) {
		t.Fatalf("expected ErrActiveDealExists, got %v", err)
	}
	if len(deals.created) != 0 {
		t.Fatalf("no deal must be created, got %d", len(deals.created))
	}
}

func TestCreateDeal_InvalidTermsRejectedBeforeTransaction(t *testing.T) {
	transactor := &fakeTransactor{}
	uc := NewCreateDealUseCase(transactor, newFakeDealRepo(), newFakePropertyRepo(), newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})

	params := dealParamsFor(uuid.New())
	params.SalePrice = 0
	_, err := uc.Execute(context.Background(), params)
	if !errors.Is(err, domain.ErrInvalidDealTerms) {
		t.Fatalf("expected ErrInvalidDealTerms, got %v", err)
	}
	if transactor.calls != 0 {
		t.Fatalf("validation must happen before the transaction")
	}
}

func TestCreateDeal_PropertyNotFound(t *testing.T) {
	uc := NewCreateDealUseCase(&fakeTransactor{}, newFakeDealRepo(), newFakePropertyRepo(), newFakeInquiryRepo(), &fakeDealEvents{}, &fakeClock{now: testNow()})

	_, err := uc.Execute(context.Background(), dealParamsFor(uuid.New()))
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestCreateDeal_PublishFailureDoesNotFailOperation(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}

	deals := newFakeDealRepo()
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property
	events := &fakeDealEvents{err: errors.New("broker down")}

	uc := NewCreateDealUseCase(&fakeTransactor{}, deals, properties, newFakeInquiryRepo(), events, &fakeClock{now: testNow()})

	deal, err := uc.Execute(context.Background(), dealParamsFor(property.ID))
	if err != nil {
		t.Fatalf("publish failure must not fail the use case: %v", err)
	}
	if deal == nil {
		t.Fatalf("expected created deal")
	}
}
