package listing

import (
	"strconv"
	"strings"
)

const (
	APIPageSize  = 15
	PagePageSize = 10
)

// Params are the raw filter values of a listing or export request.
type Params struct {
	Search     string `json:"search" form:"search"`
	CategoryID string `json:"category_id" form:"category_id"`
	Status     string `json:"status" form:"status"`
}

func (p Params) Normalized() Params {
	return Params{
		Search:     strings.TrimSpace(p.Search),
		CategoryID: strings.TrimSpace(p.CategoryID),
		Status:     strings.TrimSpace(p.Status),
	}
}

// CategoryFilter distinguishes "no filter" from "products without a category".
type CategoryFilter struct {
	Enabled bool
	// ID is nil when filtering for products without a category.
	ID *uint
}

type Filters struct {
	Search   string
	Category CategoryFilter
	Status   *bool
}

// Filters parses p. Unparseable category or status values disable that
// filter rather than matching nothing.
func (p Params) Filters() Filters {
	p = p.Normalized()

	return Filters{
		Search:   p.Search,
		Category: parseCategory(p.CategoryID),
		Status:   parseStatus(p.Status),
	}
}

func parseCategory(raw string) CategoryFilter {
	switch strings.ToLower(raw) {
	case "":
		return CategoryFilter{}
	case "0", "none", "null":
		return CategoryFilter{Enabled: true}
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return CategoryFilter{}
	}

	v := uint(id)
	return CategoryFilter{Enabled: true, ID: &v}
}

func parseStatus(raw string) *bool {
	var v bool
	switch strings.ToLower(raw) {
	case "1", "true":
		v = true
	case "0", "false":
		v = false
	default:
		return nil
	}
	return &v
}
