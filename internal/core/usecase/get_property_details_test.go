package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"brokerage-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestGetPropertyDetails_ResolvesImageURLs(t *testing.T) {
	property := &domain.Property{
		ID:     uuid.New(),
		Title:  "Two-bedroom flat",
		Status: domain.PropertyStatusPublished,
		Images: []string{"properties/1/front.jpg", "properties/1/kitchen.jpg"},
	}
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property

	uc := NewGetPropertyDetailsUseCase(properties, staticURLResolver{prefix: "https://cdn.example.com/"})

	details, err := uc.Execute(context.Background(), property.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Property.Title != "Two-bedroom flat" {
		t.Fatalf("unexpected property: %+v", details.Property)
	}
	if len(details.ImageURLs) != 2 {
		t.Fatalf("expected 2 image URLs, got %d", len(details.ImageURLs))
	}
	if details.ImageURLs[0] != "https://cdn.example.com/properties/1/front.jpg" {
		t.Fatalf("unexpected URL: %q", details.ImageURLs[0])
	}
}

func TestGetPropertyDetails_NotFound(t *testing.T) {
	uc := NewGetPropertyDetailsUseCase(newFakePropertyRepo(), staticURLResolver{})
	_, err := uc.Execute(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestGetViewStats_HappyPath(t *testing.T) {
	property := &domain.Property{ID: uuid.New(), Status: domain.PropertyStatusPublished}
	properties := newFakePropertyRepo()
	properties.properties[property.ID] = property

	last := testNow()
	views := &fakeViewRepo{stats: &domain.PropertyViewStats{
		PropertyID:     property.ID,
		TotalViews:     42,
		UniqueSessions: 17,
		LastViewedAt:   &last,
	}}

	uc := NewGetViewStatsUseCase(views, properties)
	stats, err := uc.Execute(context.Background(), property.ID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalViews != 42 || stats.UniqueSessions != 17 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestGetViewStats_UnknownProperty(t *testing.T) {
	uc := NewGetViewStatsUseCase(&fakeViewRepo{}, newFakePropertyRepo())
	from := testNow().Add(-24 * time.Hour)
	_, err := uc.Execute(context.Background(), uuid.New(), &from, nil)
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestGetDealByID(t *testing.T) {
	deal, _ := domain.NewDeal(dealParamsFor(uuid.New()), testNow())
	deals := newFakeDealRepo()
	deals.deals[deal.ID] = deal

	uc := NewGetDealByIDUseCase(deals)
	got, err := uc.Execute(context.Background(), deal.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != deal.ID {
		t.Fatalf("expected deal %s, got %s", deal.ID, got.ID)
	}

	if _, err := uc.Execute(context.Background(), uuid.New()); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}
