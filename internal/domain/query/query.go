// Package query implements the filter-then-page read used by every list
// endpoint of the collection store.
package query

// Defaults applied when a caller leaves paging unspecified or invalid.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Paging selects one window of a filtered sequence. Page is 1-based.
type Paging struct {
	Page     int
	PageSize int
}

// Normalize replaces values below 1 with the defaults.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Window returns the half-open index range [start, end) of the page,
// clamped to n items. A page past the end yields start == end.
func (p Paging) Window(n int) (start, end int) {
	p = p.Normalize()
	// Compare before multiplying so huge pages cannot wrap around.
	if p.Page-1 > n/p.PageSize {
		return n, n
	}
	start = (p.Page - 1) * p.PageSize
	end = start + p.PageSize
	if end > n || end < start {
		end = n
	}
	return start, end
}

// Predicate reports whether an item passes a filter.
type Predicate[T any] func(T) bool

// All combines predicates with AND. Nil predicates are skipped.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Apply filters items in order, counts the matches and returns the requested
// page of them. The returned slice is freshly allocated and never nil.
func Apply[T any](items []T, match Predicate[T], paging Paging) ([]T, int) {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if match == nil || match(item) {
			filtered = append(filtered, item)
		}
	}
	start, end := paging.Window(len(filtered))
	page := make([]T, end-start)
	copy(page, filtered[start:end])
	return page, len(filtered)
}
