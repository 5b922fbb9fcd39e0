package ledger

import (
	"fmt"
	"slices"

	"github.com/Veraticus/savings-sprint/internal/model"
)

// DefaultPageSize is used when no page size is given.
const DefaultPageSize = 10

// PageSizes are the allowed page sizes.
var PageSizes = []int{5, 10, 20, 50}

// Page is one slice of a paginated transaction list.
type Page struct {
	Items      []model.Transaction
	Number     int // 1-based
	Size       int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// FirstIndex is the 1-based position of the first item on the page, 0 when empty.
func (p Page) FirstIndex() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// LastIndex is the 1-based position of the last item on the page, 0 when empty.
func (p Page) LastIndex() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.FirstIndex() + len(p.Items) - 1
}

// ValidatePageSize rejects sizes outside PageSizes. Zero means the default.
func ValidatePageSize(size int) (int, error) {
	if size == 0 {
		return DefaultPageSize, nil
	}
	if !slices.Contains(PageSizes, size) {
		return 0, fmt.Errorf("page size %d not one of %v", size, PageSizes)
	}
	return size, nil
}

// Paginate returns page number of txns. Out-of-range page numbers are pulled
// back to the first or last page.
func Paginate(txns []model.Transaction, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(txns)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	number = max(1, min(number, pages))

	start := (number - 1) * size
	end := min(start+size, total)

	return Page{
		Items:      txns[start:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}
}
