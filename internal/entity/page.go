package entity

// Page is one page of a list result as reported by the service.
type Page[T any] struct {
	Content     []T  `json:"content"`
	PageNumber  int  `json:"page_number"`
	ItemsNumber int  `json:"items_number"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
}

func (p *Page[T]) HasContent() bool {
	return p != nil && len(p.Content) > 0
}
