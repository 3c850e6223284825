package usecase

import (
	"context"
	"time"

	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"

	"github.com/google/uuid"
)

// --- fakes shared by the use case tests ---

// fakeTransactor выполняет fn напрямую, без реальной транзакции
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeDealRepo struct {
	deals      map[uuid.UUID]*domain.Deal
	activeByID map[uuid.UUID]*domain.Deal // ключ - property_id

	createErr error
	findErr   error
	updateErr error

	created []*domain.Deal
	updated []*domain.Deal
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{
		deals:      make(map[uuid.UUID]*domain.Deal),
		activeByID: make(map[uuid.UUID]*domain.Deal),
	}
}

func (f *fakeDealRepo) Create(_ context.Context, deal *domain.Deal) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.deals[deal.ID] = deal
	f.created = append(f.created, deal)
	return nil
}

func (f *fakeDealRepo) FindByID(_ context.Context, dealID uuid.UUID) (*domain.Deal, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	deal, ok := f.deals[dealID]
	if !ok {
		return nil, domain.ErrDealNotFound
	}
	return deal, nil
}

func (f *fakeDealRepo) Update(_ context.Context, deal *domain.Deal) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.deals[deal.ID] = deal
	f.updated = append(f.updated, deal)
	return nil
}

func (f *fakeDealRepo) FindActiveByPropertyID(_ context.Context, propertyID uuid.UUID) (*domain.Deal, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.activeByID[propertyID], nil
}

type fakePropertyRepo struct {
	properties map[uuid.UUID]*domain.Property

	findErr   error
	updateErr error

	updated []*domain.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[uuid.UUID]*domain.Property)}
}

func (f *fakePropertyRepo) FindByID(_ context.Context, propertyID uuid.UUID) (*domain.Property, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	property, ok := f.properties[propertyID]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (f *fakePropertyRepo) Update(_ context.Context, property *domain.Property) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.properties[property.ID] = property
	f.updated = append(f.updated, property)
	return nil
}

type fakeInquiryRepo struct {
	inquiries map[uuid.UUID]*domain.Inquiry

	createErr error
	findErr   error
	updateErr error

	updated []*domain.Inquiry
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{inquiries: make(map[uuid.UUID]*domain.Inquiry)}
}

func (f *fakeInquiryRepo) Create(_ context.Context, inquiry *domain.Inquiry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.inquiries[inquiry.ID] = inquiry
	return nil
}

func (f *fakeInquiryRepo) FindByID(_ context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	inquiry, ok := f.inquiries[inquiryID]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	return inquiry, nil
}

func (f *fakeInquiryRepo) Update(_ context.Context, inquiry *domain.Inquiry) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.inquiries[inquiry.ID] = inquiry
	f.updated = append(f.updated, inquiry)
	return nil
}

type fakeDealEvents struct {
	published []port.DealEvent
	err       error
}

func (f *fakeDealEvents) PublishDealEvent(_ context.Context, event port.DealEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type fakeViewRepo struct {
	views      []*domain.PropertyView
	recent     bool
	aggregated []domain.MostViewedProperty
	stats      *domain.PropertyViewStats

	insertErr    error
	recentErr    error
	aggregateErr error
	statsErr     error

	recentCalls int
	lastSince   time.Time
}

func (f *fakeViewRepo) Insert(_ context.Context, view *domain.PropertyView) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.views = append(f.views, view)
	return nil
}

func (f *fakeViewRepo) HasRecentView(_ context.Context, propertyID uuid.UUID, sessionID string, since time.Time) (bool, error) {
	f.recentCalls++
	f.lastSince = since
	if f.recentErr != nil {
		return false, f.recentErr
	}
	if f.recent {
		return true, nil
	}
	for _, v := range f.views {
		if v.PropertyID == propertyID && v.SessionID != nil && *v.SessionID == sessionID && v.ViewedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeViewRepo) AggregateByProperty(_ context.Context, _, _ *time.Time) ([]domain.MostViewedProperty, error) {
	if f.aggregateErr != nil {
		return nil, f.aggregateErr
	}
	return f.aggregated, nil
}

func (f *fakeViewRepo) StatsByProperty(_ context.Context, propertyID uuid.UUID, _, _ *time.Time) (*domain.PropertyViewStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats != nil {
		return f.stats, nil
	}
	return &domain.PropertyViewStats{PropertyID: propertyID}, nil
}

type staticURLResolver struct {
	prefix string
}

func (r staticURLResolver) Resolve(path string) string { return r.prefix + path }

// compile-time checks
var (
	_ port.TransactorPort         = (*fakeTransactor)(nil)
	_ port.ClockPort              = (*fakeClock)(nil)
	_ port.DealRepositoryPort     = (*fakeDealRepo)(nil)
	_ port.PropertyRepositoryPort = (*fakePropertyRepo)(nil)
	_ port.InquiryRepositoryPort  = (*fakeInquiryRepo)(nil)
	_ port.DealEventsPort         = (*fakeDealEvents)(nil)
	_ port.ViewRepositoryPort     = (*fakeViewRepo)(nil)
	_ port.FileURLResolverPort    = (staticURLResolver{})
)
