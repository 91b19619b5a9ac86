package listing

import "strconv"

type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type Page[T any] struct {
	Items []T `json:"data"`
	Meta  Meta `json:"meta"`
}

// LastPage is never below 1 so an empty listing still has a first page.
func LastPage(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Clamp keeps page inside [1, LastPage].
func Clamp(page int, total int64, perPage int) int {
	if page < 1 {
		return 1
	}
	if last := LastPage(total, perPage); page > last {
		return last
	}
	return page
}

func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// ParsePage reads a 1-based page number, defaulting to 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// MapPage converts the items of p, keeping its pagination metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[R]{Items: items, Meta: p.Meta}
}
