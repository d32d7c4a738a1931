package pagination

import "math"

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// New clamps a page request: number defaults to 1, size to defaultSize, and size never exceeds maxSize.
func New(number, size, defaultSize, maxSize int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// TotalPages is ceil(total/size); zero matches give zero pages.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPageInfo(p Page, total int64) PageInfo {
	return PageInfo{
		Total:      total,
		Page:       p.Number,
		Limit:      p.Size,
		TotalPages: TotalPages(total, p.Size),
	}
}
