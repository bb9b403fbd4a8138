// Package listing implements the list-page state machine shared by every
// screen: fetch a page of rows, open a create form, confirm and delete a row.
//
// A Controller moves Idle -> Loading -> Loaded|Errored and re-enters Loading
// on every page change, filter change and post-mutation refresh. Each fetch
// takes a sequence token; a response that is not the latest issued is dropped
// with ErrStale so overlapping requests cannot overwrite newer state.
package listing

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

var (
	ErrStale          = errors.New("listing: response superseded by a newer request")
	ErrNoDeleteTarget = errors.New("listing: no delete target selected")
)

// Query is what a list call receives.
type Query struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

type (
	ListFunc[T any] func(ctx context.Context, q Query) (pagination.Page[T], error)
	CreateFunc      func(ctx context.Context, values map[string]string) error
	DeleteFunc      func(ctx context.Context, id int64) error
)

// Options configures a Controller. List, IDOf and PageSize are required.
type Options[T any] struct {
	List     ListFunc[T]
	Create   CreateFunc
	Delete   DeleteFunc
	IDOf     func(T) int64
	PageSize int

	// Rules run before Create is called; a failing form never reaches the API.
	Rules validator.Rules
	// DefaultForm returns the form values after open, close and a successful create.
	DefaultForm func() map[string]string
	// CheckFilters validates filters before they are applied.
	CheckFilters func(filters map[string]string) validator.ValidationErrors
	// Ready gates fetching. When it reports false, Fetch does nothing.
	Ready func() bool
}

type Screen[T any] interface {
	Fetch(ctx context.Context, page int) error
	Refresh(ctx context.Context) error
	Create(ctx context.Context, values map[string]string) error
	OpenCreate()
	CloseCreate()
	RequestDelete(id int64)
	CancelDelete()
	Delete(ctx context.Context) error
	SetFilters(filters map[string]string) error
	ApplyFilters(ctx context.Context) error
	ClearFilters(ctx context.Context) error
	Reset()
	Snapshot() Snapshot[T]
}

// Controller is safe for concurrent use. Network calls happen without the
// lock held.
type Controller[T any] struct {
	opts Options[T]

	mu      sync.Mutex
	seq     uint64
	rows    []T
	state   pagination.State
	counted bool // state.Count is known for the current filters
	loading bool
	err     *apierror.Error

	filters   map[string]string
	filterErr *apierror.Error

	modalOpen  bool
	form       map[string]string
	formErr    *apierror.Error
	submitting bool

	pending   *Pending[T]
	deleting  map[int64]bool
	deleteErr *apierror.Error
}

// Pending is the row awaiting delete confirmation. Row is nil when the id is
// not on the current page.
type Pending[T any] struct {
	ID  int64 `json:"id"`
	Row *T    `json:"row,omitempty"`
}

func New[T any](opts Options[T]) *Controller[T] {
	if opts.DefaultForm == nil {
		opts.DefaultForm = func() map[string]string { return map[string]string{} }
	}
	return &Controller[T]{
		opts:     opts,
		state:    pagination.NewState(opts.PageSize),
		filters:  map[string]string{},
		form:     opts.DefaultForm(),
		deleting: map[int64]bool{},
	}
}

// Fetch loads page. It is a no-op while the gate is closed. On failure the
// error is stored and the previous rows stay.
//
// Once the count is known, page is clamped to [1, LastPage] before the call.
// When it is not yet known and the answer shows page lies beyond the last
// page, the last page is fetched instead.
func (c *Controller[T]) Fetch(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.opts.Ready != nil && !c.opts.Ready() {
		c.mu.Unlock()
		return nil
	}
	counted := c.counted
	if counted {
		page = c.state.Clamp(page)
	} else if page < 1 {
		page = 1
	}
	c.seq++
	token := c.seq
	c.loading = true
	c.err = nil
	q := Query{Page: page, PageSize: c.state.PageSize, Filters: activeFilters(c.filters)}
	c.mu.Unlock()

	result, err := c.opts.List(ctx, q)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		c.loading = false
		c.err = apierror.From(err)
		c.mu.Unlock()
		return c.err
	}
	if !counted {
		answered := pagination.State{PageSize: c.state.PageSize, Count: result.Count}
		if last := answered.Clamp(page); last != page {
			c.state.Count = result.Count
			c.counted = true
			c.mu.Unlock()
			return c.Fetch(ctx, last)
		}
	}
	c.loading = false
	c.rows = result.Results
	if c.rows == nil {
		c.rows = []T{}
	}
	c.state.Page = page
	c.state.Count = result.Count
	c.counted = true
	c.mu.Unlock()
	return nil
}

// Refresh re-fetches the current page.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	page := c.state.Page
	c.mu.Unlock()
	return c.Fetch(ctx, page)
}

// Create validates values and submits them. A successful create closes the
// form, resets it and refreshes the current page.
func (c *Controller[T]) Create(ctx context.Context, values map[string]string) error {
	c.mu.Lock()
	c.formErr = nil
	c.modalOpen = true
	c.form = maps.Clone(values)
	if errs := validator.ValidateForm(values, c.opts.Rules); errs != nil {
		c.formErr = apierror.Validation(errs)
		c.mu.Unlock()
		return c.formErr
	}
	if c.opts.Create == nil {
		c.mu.Unlock()
		return apierror.Local(errors.New("create is not supported"))
	}
	c.submitting = true
	c.mu.Unlock()

	err := c.opts.Create(ctx, values)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.formErr = apierror.From(err)
		c.mu.Unlock()
		return c.formErr
	}
	c.modalOpen = false
	c.form = c.opts.DefaultForm()
	c.mu.Unlock()

	c.refreshAfterMutation(ctx)
	return nil
}

func (c *Controller[T]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.modalOpen {
		c.form = c.opts.DefaultForm()
		c.formErr = nil
	}
	c.modalOpen = true
}

// CloseCreate closes the form and discards its values and error.
func (c *Controller[T]) CloseCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modalOpen = false
	c.form = c.opts.DefaultForm()
	c.formErr = nil
}

// RequestDelete opens the confirmation for id.
func (c *Controller[T]) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil && c.pending.ID == id {
		return
	}
	c.pending = &Pending[T]{ID: id}
	for i := range c.rows {
		if c.opts.IDOf(c.rows[i]) == id {
			row := c.rows[i]
			c.pending.Row = &row
			break
		}
	}
	c.deleteErr = nil
}

func (c *Controller[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	c.deleteErr = nil
}

// Delete removes the pending row. On failure the confirmation stays open with
// the error; on success it closes and the current page is refreshed.
func (c *Controller[T]) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoDeleteTarget
	}
	if c.opts.Delete == nil {
		c.mu.Unlock()
		return apierror.Local(errors.New("delete is not supported"))
	}
	id := c.pending.ID
	c.deleting[id] = true
	c.deleteErr = nil
	c.mu.Unlock()

	err := c.opts.Delete(ctx, id)

	c.mu.Lock()
	delete(c.deleting, id)
	if err != nil {
		c.deleteErr = apierror.From(err)
		c.mu.Unlock()
		return c.deleteErr
	}
	if c.pending != nil && c.pending.ID == id {
		c.pending = nil
	}
	c.mu.Unlock()

	c.refreshAfterMutation(ctx)
	return nil
}

// SetFilters replaces the filters without fetching. Invalid filters leave the
// applied ones unchanged.
func (c *Controller[T]) SetFilters(filters map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterErr = nil
	if c.opts.CheckFilters != nil {
		if errs := c.opts.CheckFilters(filters); errs != nil {
			c.filterErr = apierror.Validation(errs)
			return c.filterErr
		}
	}
	if !maps.Equal(activeFilters(c.filters), activeFilters(filters)) {
		c.counted = false
	}
	c.filters = maps.Clone(filters)
	if c.filters == nil {
		c.filters = map[string]string{}
	}
	return nil
}

// ApplyFilters fetches page 1 with the current filters.
func (c *Controller[T]) ApplyFilters(ctx context.Context) error {
	c.mu.Lock()
	if c.filterErr != nil {
		err := c.filterErr
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	return c.Fetch(ctx, 1)
}

// ClearFilters drops every filter and fetches page 1.
func (c *Controller[T]) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	if len(activeFilters(c.filters)) > 0 {
		c.counted = false
	}
	c.filters = map[string]string{}
	c.filterErr = nil
	c.mu.Unlock()
	return c.Fetch(ctx, 1)
}

// Reset empties the list locally without calling the API. In-flight fetches
// are dropped when they return.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.rows = []T{}
	c.state.Page = 1
	c.state.Count = 0
	c.counted = false
	c.loading = false
	c.err = nil
	c.pending = nil
	c.deleteErr = nil
}

func (c *Controller[T]) refreshAfterMutation(ctx context.Context) {
	// The mutation already succeeded; a failed refresh is kept as the list error.
	_ = c.Refresh(ctx)
}

func activeFilters(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
