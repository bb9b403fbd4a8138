package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// maxVisible is the number of page links shown around the current page.
	maxVisible = 5
)

// Page is the list envelope returned by the upstream API.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
	Results  []T     `json:"results"`
}

// State is the pagination state of one list.
type State struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}

// NewState returns page 1 with the page size clamped to [1, MaxPageSize].
func NewState(pageSize int) State {
	return State{Page: 1, PageSize: ClampPageSize(pageSize)}
}

// ClampPageSize falls back to DefaultPageSize for non-positive sizes and caps at MaxPageSize.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// TotalPages is ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

func (s State) TotalPages() int {
	return TotalPages(s.Count, s.PageSize)
}

// LastPage is max(1, TotalPages).
func (s State) LastPage() int {
	if n := s.TotalPages(); n > 1 {
		return n
	}
	return 1
}

// Clamp keeps page within [1, LastPage].
func (s State) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if last := s.LastPage(); page > last {
		return last
	}
	return page
}

func (s State) HasPrev() bool {
	return s.Page > 1
}

func (s State) HasNext() bool {
	return s.Page < s.TotalPages()
}

// From is the 1-based index of the first row on the current page.
func (s State) From() int {
	if s.Count == 0 {
		return 0
	}
	return (s.Page-1)*s.PageSize + 1
}

// To is the 1-based index of the last row on the current page.
func (s State) To() int {
	to := s.Page * s.PageSize
	if to > s.Count {
		return s.Count
	}
	return to
}

// Pager is what the pagination control renders.
type Pager struct {
	Visible    bool  `json:"visible"`
	Current    int   `json:"current"`
	TotalPages int   `json:"total_pages"`
	TotalCount int   `json:"total_count"`
	From       int   `json:"from"`
	To         int   `json:"to"`
	Pages      []int `json:"pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	PrevPage   int   `json:"prev_page"`
	NextPage   int   `json:"next_page"`
}

// Pager computes the control for the current state. The control is hidden when
// there is at most one page; links never leave [1, TotalPages].
func (s State) Pager() Pager {
	total := s.TotalPages()
	p := Pager{
		Visible:    total > 1,
		Current:    s.Page,
		TotalPages: total,
		TotalCount: s.Count,
		From:       s.From(),
		To:         s.To(),
		HasPrev:    s.HasPrev(),
		HasNext:    s.HasNext(),
	}
	if !p.Visible {
		return p
	}

	start := s.Page - maxVisible/2
	if start < 1 {
		start = 1
	}
	end := start + maxVisible - 1
	if end > total {
		end = total
	}
	if end-start < maxVisible-1 {
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}
	if p.HasPrev {
		p.PrevPage = s.Page - 1
	}
	if p.HasNext {
		p.NextPage = s.Page + 1
	}
	return p
}
