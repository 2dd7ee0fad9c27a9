// Package pagination holds the pure arithmetic for paginated listings.
// It never queries or filters data; the persistence layer applies Skip and
// Limit, and the API boundary is responsible for clamping raw input.
package pagination

// Bounds applied by Normalize. Describe itself does not re-validate them.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params carries the caller-supplied page coordinates.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps params to page >= 1 and page_size in [1, MaxPageSize],
// defaulting page_size to DefaultPageSize when unset.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Skip returns the number of rows to skip before the requested page.
func (p Params) Skip() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the row cap for the requested page.
func (p Params) Limit() int {
	return p.PageSize
}

// Page is the derived navigation metadata for a listing. It is never
// persisted.
type Page struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Describe computes the page descriptor for the given coordinates. Pure
// function over whatever it is given: a page beyond the last simply yields
// HasNext == false. TotalPages is zero iff total is zero.
func Describe(page, pageSize, total int) Page {
	totalPages := (total + pageSize - 1) / pageSize
	return Page{
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
