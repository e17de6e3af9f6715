package service

import (
	"math"
	"net/url"
	"strconv"

	"github.com/shoplane/shoplane-api/internal/repository"
)

// Listing defaults and bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ProductQuery is the structured result of parsing listing query parameters:
// a filter, a sort order, and a page window. It has no side effects and no
// error conditions; malformed input degrades to permissive behavior instead
// of being rejected.
type ProductQuery struct {
	Filter repository.ProductFilter
	Sort   repository.ProductSort
	Page   int
	Limit  int
}

// Offset returns the number of records to skip for the requested page.
func (q *ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseProductQuery translates flat string query parameters into a
// ProductQuery.
//
// Quirks that are part of the contract:
//   - featured/onSale activate a true-equality filter only when the raw value
//     is literally "true". Absence, "false", and garbage all mean "no filter".
//   - minPrice/maxPrice are inclusive bounds and may be supplied alone.
//     Malformed numbers coerce to NaN rather than erroring; NaN bounds match
//     nothing when compared.
//   - unrecognized sort tokens fall back to newest-first.
//
// page and limit are clamped to sane bounds (page >= 1, 1 <= limit <= 100)
// rather than allowing a negative skip.
func ParseProductQuery(params url.Values) *ProductQuery {
	q := &ProductQuery{
		Sort:  repository.SortNewest,
		Page:  1,
		Limit: DefaultPageSize,
	}

	q.Filter.CategoryID = params.Get("category")
	q.Filter.Brand = params.Get("brand")

	if params.Get("featured") == "true" {
		t := true
		q.Filter.Featured = &t
	}
	if params.Get("onSale") == "true" {
		t := true
		q.Filter.OnSale = &t
	}
	if params.Get("inStock") == "true" {
		q.Filter.InStock = true
	}

	if raw := params.Get("minPrice"); raw != "" {
		v := parsePriceParam(raw)
		q.Filter.MinPrice = &v
	}
	if raw := params.Get("maxPrice"); raw != "" {
		v := parsePriceParam(raw)
		q.Filter.MaxPrice = &v
	}

	switch params.Get("sort") {
	case "price-asc":
		q.Sort = repository.SortPriceAsc
	case "price-desc":
		q.Sort = repository.SortPriceDesc
	case "rating":
		q.Sort = repository.SortRating
	case "newest":
		q.Sort = repository.SortNewest
	}

	if raw := params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Page = n
		}
	}
	if raw := params.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}

	return q
}

// parsePriceParam converts a numeric string to float64, coercing garbage to
// NaN instead of failing.
func parsePriceParam(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
