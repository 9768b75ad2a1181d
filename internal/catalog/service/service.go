package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wedding-marketplace/internal/catalog"
	"wedding-marketplace/internal/catalog/cache"
	"wedding-marketplace/internal/catalog/validation"
	"wedding-marketplace/internal/debounce"
	"wedding-marketplace/internal/format"
)

const (
	defaultPageSize        = 12
	defaultCacheTTL        = 30 * time.Second
	defaultViewDelay       = time.Second
	defaultViewTimeout     = 5 * time.Second
	defaultInvalidateDelay = 2 * time.Second

	formListing = "listing"
	formContact = "contact_status"
)

type Repository interface {
	Create(ctx context.Context, vendorID string, s catalog.ProductSubmission) (catalog.Listing, error)
	Get(ctx context.Context, id int64) (catalog.Listing, error)
	Delete(ctx context.Context, vendorID string, id int64) error
	Search(ctx context.Context, q catalog.SearchQuery, limit, offset int) ([]catalog.Listing, error)
	Count(ctx context.Context, q catalog.SearchQuery) (int64, error)
	IncrementViews(ctx context.Context, id int64) error
	CreateContact(ctx context.Context, c catalog.ContactLog) (catalog.ContactLog, error)
	GetContact(ctx context.Context, id int64) (catalog.ContactLog, error)
	UpdateContactStatus(ctx context.Context, id int64, from, to catalog.ContactStatus) error
}

type Publisher interface {
	Publish(ctx context.Context, event catalog.Event) error
}

type Options struct {
	PageSize        int
	CacheTTL        time.Duration
	ViewDelay       time.Duration
	ViewTimeout     time.Duration
	InvalidateDelay time.Duration
}

func (o Options) withDefaults() Options {
	if o.PageSize < 1 {
		o.PageSize = defaultPageSize
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	if o.ViewDelay <= 0 {
		o.ViewDelay = defaultViewDelay
	}
	if o.ViewTimeout <= 0 {
		o.ViewTimeout = defaultViewTimeout
	}
	if o.InvalidateDelay <= 0 {
		o.InvalidateDelay = defaultInvalidateDelay
	}
	return o
}

// ContactRequest is what a buyer sends when opening a chat with a vendor.
// BuyerID is empty for anonymous visitors.
type ContactRequest struct {
	BuyerID    string
	Message    string
	IncludeRef bool
}

type Contact struct {
	Log         catalog.ContactLog
	WhatsAppURL string
}

type Service struct {
	repo      Repository
	publisher Publisher
	cache     cache.Client[catalog.SearchResult]
	logger    *slog.Logger
	metrics   *Metrics
	opts      Options

	generation atomic.Uint64
	invalidate *debounce.Func[struct{}]
	views      sync.WaitGroup
}

func New(repo Repository, publisher Publisher, searchCache cache.Client[catalog.SearchResult], logger *slog.Logger, metrics *Metrics, opts Options) *Service {
	s := &Service{
		repo:      repo,
		publisher: publisher,
		cache:     searchCache,
		logger:    logger,
		metrics:   metrics,
		opts:      opts.withDefaults(),
	}
	s.invalidate = debounce.NewFunc(s.opts.InvalidateDelay, func(struct{}) {
		gen := s.generation.Add(1)
		s.logger.Debug("search cache invalidated", "generation", gen)
	})
	return s
}

func (s *Service) CreateListing(ctx context.Context, vendorID string, submission catalog.ProductSubmission) (catalog.Listing, error) {
	if vendorID == "" {
		return catalog.Listing{}, catalog.ErrMissingUser
	}

	submission, err := validation.ValidateSubmission(submission)
	if err != nil {
		s.metrics.ValidationFailures.WithLabelValues(formListing).Inc()
		return catalog.Listing{}, err
	}

	listing, err := s.repo.Create(ctx, vendorID, submission)
	if err != nil {
		return catalog.Listing{}, fmt.Errorf("repo create: %w", err)
	}

	s.publish(ctx, catalog.Event{
		EventType: catalog.EventListingCreated,
		ListingID: listing.ID,
		VendorID:  vendorID,
		Name:      listing.Name,
	})

	s.metrics.Created.Inc()
	s.invalidate.Call(struct{}{})
	return listing, nil
}

func (s *Service) DeleteListing(ctx context.Context, vendorID string, id int64) error {
	if vendorID == "" {
		return catalog.ErrMissingUser
	}

	if err := s.repo.Delete(ctx, vendorID, id); err != nil {
		return fmt.Errorf("repo delete: %w", err)
	}

	s.publish(ctx, catalog.Event{
		EventType: catalog.EventListingDeleted,
		ListingID: id,
		VendorID:  vendorID,
	})

	s.metrics.Deleted.Inc()
	s.invalidate.Call(struct{}{})
	return nil
}

// SearchListings returns one page of listings matching q. Results are
// cached until the TTL expires or a listing write settles.
func (s *Service) SearchListings(ctx context.Context, q catalog.SearchQuery) (catalog.SearchResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if !q.Sort.Valid() {
		q.Sort = catalog.SortNewest
	}

	key := s.cacheKey(q)
	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotExists) {
		s.logger.Warn("search cache read failed", "key", key, "error", err)
	}

	offset := (q.Page - 1) * s.opts.PageSize

	items, err := s.repo.Search(ctx, q, s.opts.PageSize, offset)
	if err != nil {
		return catalog.SearchResult{}, fmt.Errorf("repo search: %w", err)
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return catalog.SearchResult{}, fmt.Errorf("repo count: %w", err)
	}

	result := catalog.SearchResult{
		Items:    items,
		Page:     q.Page,
		PageSize: s.opts.PageSize,
		Total:    total,
	}

	if err := s.cache.Set(ctx, key, result, s.opts.CacheTTL); err != nil {
		s.logger.Warn("search cache write failed", "key", key, "error", err)
	}
	return result, nil
}

func (s *Service) cacheKey(q catalog.SearchQuery) string {
	return fmt.Sprintf("search:v%d:%s|%d|%s|%s",
		s.generation.Load(), q.Sort, q.Page, q.Category, strings.ToLower(q.SearchTerm))
}

// GetListing loads a listing and records the view in the background.
func (s *Service) GetListing(ctx context.Context, id int64) (catalog.Listing, error) {
	listing, err := s.repo.Get(ctx, id)
	if err != nil {
		return catalog.Listing{}, fmt.Errorf("repo get: %w", err)
	}

	s.TrackView(id)
	return listing, nil
}

// TrackView increments the view counter after a short delay. Failures are
// logged and dropped.
func (s *Service) TrackView(id int64) {
	s.views.Add(1)
	time.AfterFunc(s.opts.ViewDelay, func() {
		defer s.views.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.opts.ViewTimeout)
		defer cancel()

		if err := s.repo.IncrementViews(ctx, id); err != nil {
			s.logger.Warn("track view failed", "listing_id", id, "error", err)
			return
		}
		s.metrics.Views.Inc()
	})
}

// ContactVendor records that a buyer opened a chat for a listing and returns
// the WhatsApp link the buyer should be sent to.
func (s *Service) ContactVendor(ctx context.Context, listingID int64, req ContactRequest) (Contact, error) {
	listing, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return Contact{}, fmt.Errorf("repo get: %w", err)
	}

	link := format.WhatsAppURL(listing.WhatsAppNumber, req.Message, format.WhatsAppOptions{
		IncludeRef: req.IncludeRef,
		UserID:     req.BuyerID,
		ProductID:  strconv.FormatInt(listing.ID, 10),
	})

	contact, err := s.repo.CreateContact(ctx, catalog.ContactLog{
		ListingID: listing.ID,
		VendorID:  listing.VendorID,
		BuyerID:   req.BuyerID,
		Status:    catalog.ContactStatusContacted,
	})
	if err != nil {
		return Contact{}, fmt.Errorf("repo create contact: %w", err)
	}

	s.publish(ctx, catalog.Event{
		EventType: catalog.EventContactInitiated,
		ListingID: listing.ID,
		VendorID:  listing.VendorID,
		ContactID: contact.ID,
		UserID:    req.BuyerID,
		Status:    contact.Status,
		Name:      listing.Name,
	})

	s.metrics.Contacts.Inc()
	return Contact{Log: contact, WhatsAppURL: link}, nil
}

// UpdateContactStatus lets the owning vendor advance a contact.
func (s *Service) UpdateContactStatus(ctx context.Context, vendorID string, contactID int64, next catalog.ContactStatus) (catalog.ContactLog, error) {
	if vendorID == "" {
		return catalog.ContactLog{}, catalog.ErrMissingUser
	}

	contact, err := s.repo.GetContact(ctx, contactID)
	if err != nil {
		return catalog.ContactLog{}, fmt.Errorf("repo get contact: %w", err)
	}
	if contact.VendorID != vendorID {
		return catalog.ContactLog{}, catalog.ErrForbidden
	}
	if !contact.Status.CanTransition(next) {
		s.metrics.ValidationFailures.WithLabelValues(formContact).Inc()
		return catalog.ContactLog{}, fmt.Errorf("%w: %s to %s", catalog.ErrInvalidTransition, contact.Status, next)
	}

	if err := s.repo.UpdateContactStatus(ctx, contactID, contact.Status, next); err != nil {
		return catalog.ContactLog{}, fmt.Errorf("repo update contact: %w", err)
	}

	s.publish(ctx, catalog.Event{
		EventType: catalog.EventContactStatusChanged,
		ListingID: contact.ListingID,
		VendorID:  vendorID,
		ContactID: contactID,
		UserID:    contact.BuyerID,
		Status:    next,
	})

	contact.Status = next
	return contact, nil
}

// Close drops pending cache invalidations and waits for scheduled view
// increments to finish.
func (s *Service) Close() {
	s.invalidate.Stop()
	s.views.Wait()
}

func (s *Service) publish(ctx context.Context, event catalog.Event) {
	event.Timestamp = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish event failed",
			"event_type", event.EventType,
			"listing_id", event.ListingID,
			"error", err,
		)
	}
}
