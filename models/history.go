package models

// HistoryEntry is a summary row in the scan history list. Fetching the
// full record by ID yields a ScanReport.
type HistoryEntry struct {
	ID           int64  `json:"id" example:"42" format:"int64"`
	URL          string `json:"url" example:"https://example.com"`
	ScanTime     string `json:"scan_time"`
	TotalChecks  int    `json:"total_checks"`
	PassedChecks int    `json:"passed_checks"`
	FailedChecks int    `json:"failed_checks"`
}

// Tier derives the risk tier from the stored counts.
func (h HistoryEntry) Tier() RiskTier {
	return TierFor(h.TotalChecks, h.FailedChecks)
}

// PaginationState tracks the visible page of a list with a fixed page size.
type PaginationState struct {
	CurrentPage int `json:"page"`
	PageSize    int `json:"limit"`
	TotalItems  int `json:"total_records"`
}

// TotalPages is ceil(TotalItems/PageSize), never less than one: an empty
// list is shown as a single empty page.
func (p PaginationState) TotalPages() int {
	if p.PageSize <= 0 || p.TotalItems <= 0 {
		return 1
	}
	return (p.TotalItems + p.PageSize - 1) / p.PageSize
}

// Clamp returns p with CurrentPage moved into [1, TotalPages].
func (p PaginationState) Clamp() PaginationState {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if last := p.TotalPages(); p.CurrentPage > last {
		p.CurrentPage = last
	}
	return p
}

// Bounds returns the half-open [start, end) slice indexes of the current page.
func (p PaginationState) Bounds() (int, int) {
	p = p.Clamp()
	if p.PageSize <= 0 {
		return 0, p.TotalItems
	}
	start := (p.CurrentPage - 1) * p.PageSize
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end := start + p.PageSize
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// PaginatedResponse is the shape the local UI serves list pages in.
type PaginatedResponse struct {
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalRecords int         `json:"total_records"`
	TotalPages   int         `json:"total_pages"`
	Records      interface{} `json:"records"`
}
