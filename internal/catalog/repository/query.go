package repository

import (
	"wedding-marketplace/internal/catalog"
	"wedding-marketplace/internal/catalog/search"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var listingColumns = []string{
	"l.id",
	"l.vendor_id",
	"v.name",
	"v.whatsapp_number",
	"l.name",
	"l.description",
	"l.category",
	"l.location",
	"l.price_from",
	"l.price_to",
	"l.price_unit",
	"l.is_featured",
	"l.view_count",
	"l.created_at",
}

// searchFields are matched against the free-text term, in this order.
var searchFields = []string{"l.name", "l.description", "l.location"}

var sortOrders = map[catalog.Sort][]string{
	catalog.SortNewest:    {"l.created_at DESC", "l.id DESC"},
	catalog.SortFeatured:  {"l.is_featured DESC", "l.created_at DESC", "l.id DESC"},
	catalog.SortPriceLow:  {"l.price_from ASC NULLS LAST", "l.id DESC"},
	catalog.SortPriceHigh: {"l.price_from DESC NULLS LAST", "l.id DESC"},
}

func listingSelect() sq.SelectBuilder {
	return psql.Select(listingColumns...).
		From("listings l").
		Join("vendors v ON v.id = l.vendor_id")
}

func applyFilters(b sq.SelectBuilder, q catalog.SearchQuery) sq.SelectBuilder {
	if q.Category != "" {
		b = b.Where(sq.Eq{"l.category": string(q.Category)})
	}
	if q.SearchTerm != "" {
		b = b.Where(search.ILikeAny(searchFields, q.SearchTerm))
	}
	return b
}

func searchQuery(q catalog.SearchQuery, limit, offset int) (string, []interface{}, error) {
	order, ok := sortOrders[q.Sort]
	if !ok {
		order = sortOrders[catalog.SortNewest]
	}

	return applyFilters(listingSelect(), q).
		OrderBy(order...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func countQuery(q catalog.SearchQuery) (string, []interface{}, error) {
	b := psql.Select("COUNT(*)").
		From("listings l").
		Join("vendors v ON v.id = l.vendor_id")
	return applyFilters(b, q).ToSql()
}
