package listing

import (
	"maps"
	"slices"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
)

// Snapshot is a consistent copy of a controller's state, safe to render.
type Snapshot[T any] struct {
	Rows    []T              `json:"rows"`
	Page    pagination.State `json:"pagination"`
	Pager   pagination.Pager `json:"pager"`
	Loading bool             `json:"loading"`
	Error   *apierror.Error  `json:"error,omitempty"`

	Filters     map[string]string `json:"filters"`
	FilterError *apierror.Error   `json:"filter_error,omitempty"`

	ModalOpen  bool              `json:"modal_open"`
	Form       map[string]string `json:"form"`
	FormError  *apierror.Error   `json:"form_error,omitempty"`
	Submitting bool              `json:"submitting"`

	PendingDelete *Pending[T]     `json:"pending_delete,omitempty"`
	Deleting      map[int64]bool  `json:"deleting,omitempty"`
	DeleteError   *apierror.Error `json:"delete_error,omitempty"`
}

func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot[T]{
		Rows:        slices.Clone(c.rows),
		Page:        c.state,
		Pager:       c.state.Pager(),
		Loading:     c.loading,
		Error:       c.err,
		Filters:     maps.Clone(c.filters),
		FilterError: c.filterErr,
		ModalOpen:   c.modalOpen,
		Form:        maps.Clone(c.form),
		FormError:   c.formErr,
		Submitting:  c.submitting,
		DeleteError: c.deleteErr,
	}
	if s.Rows == nil {
		s.Rows = []T{}
	}
	if c.pending != nil {
		p := *c.pending
		s.PendingDelete = &p
	}
	if len(c.deleting) > 0 {
		s.Deleting = maps.Clone(c.deleting)
	}
	return s
}

// Empty reports whether the loaded page has no rows.
func (s Snapshot[T]) Empty() bool {
	return len(s.Rows) == 0
}

// HasFilters reports whether any filter has a value.
func (s Snapshot[T]) HasFilters() bool {
	for _, v := range s.Filters {
		if v != "" {
			return true
		}
	}
	return false
}

// IsDeleting reports whether a delete for id is in flight.
func (s Snapshot[T]) IsDeleting(id int64) bool {
	return s.Deleting[id]
}
