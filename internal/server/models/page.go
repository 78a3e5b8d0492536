package models

// PageRequest selects one page of a listing. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Asc  bool
}

func (r PageRequest) Offset() int { return r.Page * r.Size }

// Page is one slice of an ordered listing plus totals.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
}

// NewPage assembles a Page from the items of req and the listing total.
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:          items,
		Page:             req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       pages,
		First:            req.Page == 0,
		Last:             req.Page+1 >= pages,
		NumberOfElements: len(items),
	}
}
