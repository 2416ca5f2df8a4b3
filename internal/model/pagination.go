package model

// PageRequest carries pagination, sorting and filtering parameters for
// search endpoints.  Handlers bind it from query parameters and call
// Normalize before handing it to a repository.
//
// Fields:
//  Page     – 1-based page number.
//  PageSize – number of items per page.
//  Sort     – column to sort by; repositories allowlist the value and
//             fall back to id ordering for anything unknown.
//  Order    – "asc" or "desc" (default asc).
//  Query    – optional free-text filter.
type PageRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Sort     string `query:"sort"`
	Order    string `query:"order"`
	Query    string `query:"q"`
}

// Normalize clamps the paging values to sane defaults: page >= 1 and
// 1 <= page_size <= 100 (default 10).
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset returns the number of rows to skip for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}
