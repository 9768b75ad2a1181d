package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("listing not found")
	ErrUnknownVendor     = errors.New("vendor not registered")
	ErrContactNotFound   = errors.New("contact not found")
	ErrForbidden         = errors.New("listing belongs to another vendor")
	ErrInvalidTransition = errors.New("invalid contact status transition")
	ErrMissingUser       = errors.New("user id is required")
)

const (
	EventsQueue = "marketplace.events"

	EventListingCreated       = "listing_created"
	EventListingDeleted       = "listing_deleted"
	EventContactInitiated     = "contact_initiated"
	EventContactStatusChanged = "contact_status_changed"
)

type Category string

const (
	CategoryVenue            Category = "venue"
	CategoryCatering         Category = "catering"
	CategoryPhotography      Category = "photography"
	CategoryDecoration       Category = "decoration"
	CategoryMakeup           Category = "makeup"
	CategoryAttire           Category = "attire"
	CategoryEntertainment    Category = "entertainment"
	CategoryWeddingOrganizer Category = "wedding_organizer"
)

// Categories lists every category code in display order.
var Categories = []Category{
	CategoryVenue,
	CategoryCatering,
	CategoryPhotography,
	CategoryDecoration,
	CategoryMakeup,
	CategoryAttire,
	CategoryEntertainment,
	CategoryWeddingOrganizer,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Sort string

const (
	SortNewest    Sort = "newest"
	SortFeatured  Sort = "featured"
	SortPriceLow  Sort = "price_low"
	SortPriceHigh Sort = "price_high"
)

func (s Sort) Valid() bool {
	switch s {
	case SortNewest, SortFeatured, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

type PriceUnit string

const (
	PriceUnitPackage   PriceUnit = "paket"
	PriceUnitPerHour   PriceUnit = "per jam"
	PriceUnitPerPerson PriceUnit = "per orang"
	PriceUnitCustom    PriceUnit = "custom"
)

// SearchQuery is a validated listing search. Zero values of SearchTerm and
// Category mean "no filter".
type SearchQuery struct {
	SearchTerm string   `json:"search,omitempty"`
	Category   Category `json:"category,omitempty"`
	Sort       Sort     `json:"sort"`
	Page       int      `json:"page"`
}

type ProductSubmission struct {
	Name        string    `json:"name" validate:"min=3,max=100" example:"Gedung Serbaguna Melati"`
	Description string    `json:"description" validate:"min=20,max=2000" example:"Gedung kapasitas 500 tamu lengkap dengan AC dan parkir luas."`
	Category    Category  `json:"category" validate:"required,category" example:"venue"`
	Location    string    `json:"location" validate:"min=3,max=100" example:"Bandung"`
	PriceFrom   *float64  `json:"price_from" validate:"omitempty,gte=0,lte=999999999999999,whole" example:"15000000"`
	PriceTo     *float64  `json:"price_to" validate:"omitempty,gte=0,lte=999999999999999,whole" example:"25000000"`
	PriceUnit   PriceUnit `json:"price_unit" validate:"oneof=paket 'per jam' 'per orang' custom" example:"paket"`
}

type Listing struct {
	ID             int64     `json:"id" example:"1"`
	VendorID       string    `json:"vendor_id" example:"5b1c7f9e-2f0a-4d7e-9a43-0d5b3c1e8f21"`
	VendorName     string    `json:"vendor_name" example:"Melati Organizer"`
	WhatsAppNumber string    `json:"-"`
	Name           string    `json:"name" example:"Gedung Serbaguna Melati"`
	Description    string    `json:"description"`
	Category       Category  `json:"category" example:"venue"`
	Location       string    `json:"location" example:"Bandung"`
	PriceFrom      *float64  `json:"price_from"`
	PriceTo        *float64  `json:"price_to"`
	PriceUnit      PriceUnit `json:"price_unit" example:"paket"`
	IsFeatured     bool      `json:"is_featured"`
	ViewCount      int64     `json:"view_count"`
	CreatedAt      time.Time `json:"created_at" example:"2026-02-24T12:00:00Z"`
}

type SearchResult struct {
	Items    []Listing `json:"items"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int64     `json:"total"`
}

type ContactStatus string

const (
	ContactStatusContacted ContactStatus = "contacted"
	ContactStatusReplied   ContactStatus = "replied"
	ContactStatusBooked    ContactStatus = "booked"
	ContactStatusCancelled ContactStatus = "cancelled"
)

var contactTransitions = map[ContactStatus][]ContactStatus{
	ContactStatusContacted: {ContactStatusReplied, ContactStatusCancelled},
	ContactStatusReplied:   {ContactStatusBooked, ContactStatusCancelled},
}

// CanTransition reports whether a contact may move from s to next.
// Booked and cancelled are terminal.
func (s ContactStatus) CanTransition(next ContactStatus) bool {
	for _, allowed := range contactTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ContactLog struct {
	ID        int64         `json:"id" example:"7"`
	ListingID int64         `json:"listing_id" example:"1"`
	VendorID  string        `json:"vendor_id"`
	BuyerID   string        `json:"buyer_id,omitempty"`
	Status    ContactStatus `json:"status" example:"contacted"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Event struct {
	EventType string        `json:"event_type"`
	ListingID int64         `json:"listing_id"`
	VendorID  string        `json:"vendor_id,omitempty"`
	ContactID int64         `json:"contact_id,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	Status    ContactStatus `json:"status,omitempty"`
	Name      string        `json:"name,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
