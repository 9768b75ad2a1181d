package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"wedding-marketplace/internal/catalog"
	"wedding-marketplace/internal/catalog/service"
	"wedding-marketplace/internal/catalog/validation"
	"wedding-marketplace/internal/format"

	"github.com/gin-gonic/gin"
)

const userIDHeader = "X-User-ID"

type ListingService interface {
	CreateListing(ctx context.Context, vendorID string, submission catalog.ProductSubmission) (catalog.Listing, error)
	DeleteListing(ctx context.Context, vendorID string, id int64) error
	SearchListings(ctx context.Context, q catalog.SearchQuery) (catalog.SearchResult, error)
	GetListing(ctx context.Context, id int64) (catalog.Listing, error)
	ContactVendor(ctx context.Context, listingID int64, req service.ContactRequest) (service.Contact, error)
	UpdateContactStatus(ctx context.Context, vendorID string, contactID int64, next catalog.ContactStatus) (catalog.ContactLog, error)
}

type Handler struct {
	service ListingService
}

func NewHandler(svc ListingService) *Handler {
	return &Handler{service: svc}
}

type errorResponse struct {
	Error  string                  `json:"error" example:"listing not found"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

type searchListingsResponse struct {
	Items      []catalog.Listing `json:"items"`
	Pagination paginationMeta    `json:"pagination"`
}

type paginationMeta struct {
	Page     int   `json:"page" example:"1"`
	PageSize int   `json:"page_size" example:"12"`
	Total    int64 `json:"total" example:"42"`
}

type listingResponse struct {
	catalog.Listing
	PriceDisplay string `json:"price_display" example:"Rp 15.000.000 - Rp 25.000.000 /paket"`
	WhatsAppURL  string `json:"whatsapp_url" example:"https://wa.me/628123456789?text=Halo"`
}

type contactRequest struct {
	Message    string `json:"message" example:"Halo, apakah tanggal 12 Juni masih tersedia?"`
	IncludeRef bool   `json:"include_ref" example:"true"`
}

type contactResponse struct {
	ContactID   int64  `json:"contact_id" example:"7"`
	WhatsAppURL string `json:"whatsapp_url" example:"https://wa.me/628123456789?text=Halo"`
}

type updateContactRequest struct {
	Status catalog.ContactStatus `json:"status" binding:"required" example:"replied"`
}

// SearchListings godoc
// @Summary      Search vendor listings
// @Tags         listings
// @Produce      json
// @Param        search    query     string  false  "Free-text term, 2 to 100 characters"
// @Param        category  query     string  false  "Category code"
// @Param        sort      query     string  false  "newest, featured, price_low or price_high"  default(newest)
// @Param        page      query     int     false  "Page number"  default(1)
// @Success      200       {object}  searchListingsResponse
// @Failure      400       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /listings [get]
func (h *Handler) SearchListings(c *gin.Context) {
	q, err := validation.ParseSearchQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid search query", Fields: validation.FieldErrors(err)})
		return
	}

	result, err := h.service.SearchListings(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to search listings"})
		return
	}

	items := result.Items
	if items == nil {
		items = []catalog.Listing{}
	}
	c.JSON(http.StatusOK, searchListingsResponse{
		Items: items,
		Pagination: paginationMeta{
			Page:     result.Page,
			PageSize: result.PageSize,
			Total:    result.Total,
		},
	})
}

// GetListing godoc
// @Summary      Get a listing by ID
// @Tags         listings
// @Produce      json
// @Param        id   path      int  true  "Listing ID"
// @Success      200  {object}  listingResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /listings/{id} [get]
func (h *Handler) GetListing(c *gin.Context) {
	id, ok := pathID(c, "invalid listing id")
	if !ok {
		return
	}

	listing, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get listing")
		return
	}

	c.JSON(http.StatusOK, listingResponse{
		Listing:      listing,
		PriceDisplay: format.CurrencyRange(listing.PriceFrom, listing.PriceTo, string(listing.PriceUnit)),
		WhatsAppURL:  format.WhatsAppURL(listing.WhatsAppNumber, "", format.WhatsAppOptions{}),
	})
}

// CreateListing godoc
// @Summary      Create a listing for the calling vendor
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string                     true  "Vendor ID"
// @Param        body       body      catalog.ProductSubmission  true  "Listing data"
// @Success      201        {object}  catalog.Listing
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /listings [post]
func (h *Handler) CreateListing(c *gin.Context) {
	vendorID, ok := requireUser(c)
	if !ok {
		return
	}

	var req catalog.ProductSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	listing, err := h.service.CreateListing(c.Request.Context(), vendorID, req)
	if err != nil {
		writeError(c, err, "failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// DeleteListing godoc
// @Summary      Delete one of the calling vendor's listings
// @Tags         listings
// @Produce      json
// @Param        X-User-ID  header    string  true  "Vendor ID"
// @Param        id         path      int     true  "Listing ID"
// @Success      204
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /listings/{id} [delete]
func (h *Handler) DeleteListing(c *gin.Context) {
	vendorID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invalid listing id")
	if !ok {
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), vendorID, id); err != nil {
		writeError(c, err, "failed to delete listing")
		return
	}

	c.Status(http.StatusNoContent)
}

// ContactVendor godoc
// @Summary      Start a WhatsApp conversation with a listing's vendor
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string          false  "Buyer ID"
// @Param        id         path      int             true   "Listing ID"
// @Param        body       body      contactRequest  false  "Message"
// @Success      201        {object}  contactResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /listings/{id}/contact [post]
func (h *Handler) ContactVendor(c *gin.Context) {
	id, ok := pathID(c, "invalid listing id")
	if !ok {
		return
	}

	var req contactRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}

	contact, err := h.service.ContactVendor(c.Request.Context(), id, service.ContactRequest{
		BuyerID:    c.GetHeader(userIDHeader),
		Message:    req.Message,
		IncludeRef: req.IncludeRef,
	})
	if err != nil {
		writeError(c, err, "failed to contact vendor")
		return
	}

	c.JSON(http.StatusCreated, contactResponse{
		ContactID:   contact.Log.ID,
		WhatsAppURL: contact.WhatsAppURL,
	})
}

// UpdateContactStatus godoc
// @Summary      Advance a contact's status
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header    string                true  "Vendor ID"
// @Param        id         path      int                   true  "Contact ID"
// @Param        body       body      updateContactRequest  true  "New status"
// @Success      204
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /contacts/{id} [patch]
func (h *Handler) UpdateContactStatus(c *gin.Context) {
	vendorID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "invalid contact id")
	if !ok {
		return
	}

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.service.UpdateContactStatus(c.Request.Context(), vendorID, id, req.Status); err != nil {
		writeError(c, err, "failed to update contact")
		return
	}

	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: catalog.ErrMissingUser.Error()})
		return "", false
	}
	return userID, true
}

func pathID(c *gin.Context, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: invalidMsg})
		return 0, false
	}
	return id, true
}

// writeError maps service errors to HTTP responses. Anything unrecognised
// becomes a 500 with fallback as the message.
func writeError(c *gin.Context, err error, fallback string) {
	if fields := validation.FieldErrors(err); fields != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: catalog.ErrNotFound.Error()})
	case errors.Is(err, catalog.ErrContactNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: catalog.ErrContactNotFound.Error()})
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: catalog.ErrForbidden.Error()})
	case errors.Is(err, catalog.ErrInvalidTransition):
		c.JSON(http.StatusConflict, errorResponse{Error: catalog.ErrInvalidTransition.Error()})
	case errors.Is(err, catalog.ErrMissingUser):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: catalog.ErrMissingUser.Error()})
	case errors.Is(err, catalog.ErrUnknownVendor):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: catalog.ErrUnknownVendor.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}
