package validation

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"wedding-marketplace/internal/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

const (
	searchMinLength = 2
	searchMaxLength = 100

	// MaxPage bounds pagination so offsets stay well inside int range.
	MaxPage = 1000

	fieldSearch   = "search"
	fieldCategory = "category"
	fieldSort     = "sort"
	fieldPage     = "page"
	fieldPriceTo  = "price_to"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field   string `json:"field" example:"price_to"`
	Message string `json:"message" example:"must be greater than or equal to price_from"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return catalog.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})
	v.RegisterStructValidation(priceRangeValidation, catalog.ProductSubmission{})
	return v
}

// priceRangeValidation blames price_to whenever the range is inverted.
func priceRangeValidation(sl validator.StructLevel) {
	s, ok := sl.Current().Interface().(catalog.ProductSubmission)
	if !ok || s.PriceFrom == nil || s.PriceTo == nil {
		return
	}
	if *s.PriceTo < *s.PriceFrom {
		sl.ReportError(s.PriceTo, fieldPriceTo, "PriceTo", "pricerange", "")
	}
}

// ParseSearchQuery validates raw listing search parameters and fills defaults.
func ParseSearchQuery(values url.Values) (catalog.SearchQuery, error) {
	var errs *multierror.Error

	q := catalog.SearchQuery{
		Sort: catalog.SortNewest,
		Page: 1,
	}

	if term := strings.TrimSpace(values.Get(fieldSearch)); term != "" {
		n := utf8.RuneCountInString(term)
		switch {
		case n < searchMinLength:
			errs = multierror.Append(errs, FieldError{Field: fieldSearch, Message: fmt.Sprintf("must be at least %d characters", searchMinLength)})
		case n > searchMaxLength:
			errs = multierror.Append(errs, FieldError{Field: fieldSearch, Message: fmt.Sprintf("must be at most %d characters", searchMaxLength)})
		default:
			q.SearchTerm = term
		}
	}

	if raw := values.Get(fieldCategory); raw != "" {
		category := catalog.Category(raw)
		if !category.Valid() {
			errs = multierror.Append(errs, FieldError{Field: fieldCategory, Message: "must be one of " + joinCategories()})
		} else {
			q.Category = category
		}
	}

	if raw := values.Get(fieldSort); raw != "" {
		sort := catalog.Sort(raw)
		if !sort.Valid() {
			errs = multierror.Append(errs, FieldError{Field: fieldSort, Message: "must be one of newest, featured, price_low, price_high"})
		} else {
			q.Sort = sort
		}
	}

	if raw := values.Get(fieldPage); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs = multierror.Append(errs, FieldError{Field: fieldPage, Message: "must be an integer"})
		case page < 1:
			errs = multierror.Append(errs, FieldError{Field: fieldPage, Message: "must be greater than or equal to 1"})
		case page > MaxPage:
			errs = multierror.Append(errs, FieldError{Field: fieldPage, Message: fmt.Sprintf("must be at most %d", MaxPage)})
		default:
			q.Page = page
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return catalog.SearchQuery{}, err
	}
	return q, nil
}

// ValidateSubmission normalizes a vendor listing submission and checks it
// against the listing constraints. The returned submission is trimmed and
// carries the default price unit.
func ValidateSubmission(s catalog.ProductSubmission) (catalog.ProductSubmission, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Location = strings.TrimSpace(s.Location)
	if s.PriceUnit == "" {
		s.PriceUnit = catalog.PriceUnitPackage
	}

	err := validate.Struct(s)
	if err == nil {
		return s, nil
	}

	var errs *multierror.Error
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return catalog.ProductSubmission{}, fmt.Errorf("validate submission: %w", err)
	}
	for _, valErr := range valErrs {
		errs = multierror.Append(errs, FieldError{
			Field:   valErr.Field(),
			Message: message(valErr),
		})
	}
	return catalog.ProductSubmission{}, errs.ErrorOrNil()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return "must not be negative"
	case "lte":
		return "must be at most " + fe.Param()
	case "whole":
		return "must be a whole rupiah amount"
	case "category":
		return "must be one of " + joinCategories()
	case "oneof":
		return "must be one of paket, per jam, per orang, custom"
	case "pricerange":
		return "must be greater than or equal to price_from"
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", fe.Tag(), fe.Param()))
}

func joinCategories() string {
	codes := make([]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		codes = append(codes, string(c))
	}
	return strings.Join(codes, ", ")
}

// FieldErrors extracts the field errors carried by err, in the order they
// were reported. It returns nil when err is not a validation failure.
func FieldErrors(err error) []FieldError {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var fe FieldError
		if errors.As(err, &fe) {
			return []FieldError{fe}
		}
		return nil
	}

	out := make([]FieldError, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var fe FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	return len(FieldErrors(err)) > 0
}
