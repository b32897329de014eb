package models

// PaginatedList is one page of a larger ordered result.
type PaginatedList[T any] struct {
	Items           []T   `json:"items"`
	PageIndex       int   `json:"pageIndex"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPaginatedList computes page metadata. pageIndex is 1-based.
func NewPaginatedList[T any](items []T, pageIndex, pageSize int, totalCount int64) PaginatedList[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	if items == nil {
		items = []T{}
	}
	return PaginatedList[T]{
		Items:           items,
		PageIndex:       pageIndex,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		HasPreviousPage: pageIndex > 1,
		HasNextPage:     pageIndex < totalPages,
	}
}

// MapPaginatedList converts the items of a page while keeping its metadata.
func MapPaginatedList[T, R any](page PaginatedList[T], convert func(T) R) PaginatedList[R] {
	items := make([]R, len(page.Items))
	for i, item := range page.Items {
		items[i] = convert(item)
	}
	return PaginatedList[R]{
		Items:           items,
		PageIndex:       page.PageIndex,
		TotalPages:      page.TotalPages,
		TotalCount:      page.TotalCount,
		HasPreviousPage: page.HasPreviousPage,
		HasNextPage:     page.HasNextPage,
	}
}
