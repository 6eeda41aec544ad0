package datatable

// Pagination selects who owns the page state. It is either Internal or
// Controlled; the two modes are mutually exclusive.
type Pagination interface {
	size() int
	isPagination()
}

// Internal pagination: the table tracks the page and slices the filtered,
// sorted records itself.
type Internal struct {
	PageSize int
}

// Controlled pagination: the caller owns the page, supplies the total item
// count, and passes exactly one page of records. The table never re-slices.
type Controlled struct {
	Page     int
	Total    int
	PageSize int
	OnChange func(page int)
}

func (p Internal) size() int   { return p.PageSize }
func (p Controlled) size() int { return p.PageSize }

func (Internal) isPagination()   {}
func (Controlled) isPagination() {}

// pageCount is ceil(total / size), never below 1.
func pageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// slicePage returns records[(page-1)*size : page*size], clamped to the slice.
func slicePage(records []Record, page, size int) []Record {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []Record{}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
