package dto

type ProductFilters struct {
	SearchQuery string `json:"search_query,omitempty"` // matched against the name
	SortBy      string `json:"sort_by,omitempty"`      // name, price, quantity, created_at
	SortOrder   string `json:"sort_order,omitempty"`   // asc, desc
	Page        int    `json:"page,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}
