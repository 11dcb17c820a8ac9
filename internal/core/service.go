package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is the number of rows rendered per view.
const DefaultPageSize = 10

var (
	// ErrViewNotFound is returned for unknown or expired view sessions.
	ErrViewNotFound = errors.New("view not found")
	// ErrLayoutNotFound is returned for unknown layout keys.
	ErrLayoutNotFound = errors.New("layout not found")
)

// Service owns the row store and the per-page-load view sessions.
type Service struct {
	store    *RowStore
	pageSize int
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*viewSession
}

// viewSession is the mutable handle around one page load's immutable state.
type viewSession struct {
	id         string
	layoutKey  string
	filters    FilterState
	sort       *SortState
	visibility VisibilityState
	lastSeen   time.Time
}

// Snapshot is everything needed to draw one view.
type Snapshot struct {
	ViewID     string
	Layout     Layout
	Result     Result
	Filters    FilterState
	Sort       *SortState
	Visibility VisibilityState
	Options    map[Field]ColumnOptions
}

// NewService creates a Service over store. pageSize <= 0 uses DefaultPageSize.
func NewService(store *RowStore, pageSize int) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("new service: nil row store")
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		pageSize: pageSize,
		now:      time.Now,
		sessions: make(map[string]*viewSession),
	}, nil
}

// Store returns the row store.
func (s *Service) Store() *RowStore { return s.store }

// ListLayouts returns all registered layouts.
func (s *Service) ListLayouts() []Layout {
	return All()
}

// OpenView starts a fresh view session for a layout. Every full page load
// opens a new session, so a reload resets filters, sort and visibility.
func (s *Service) OpenView(ctx context.Context, layoutKey string) (*Snapshot, error) {
	if _, ok := Get(layoutKey); !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, layoutKey)
	}

	sess := &viewSession{
		id:        uuid.NewString(),
		layoutKey: layoutKey,
		lastSeen:  s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	slog.DebugContext(ctx, "view opened", "view_id", sess.id, "layout", layoutKey)
	return s.snapshot(*sess)
}

// Snapshot renders the current state of a view.
func (s *Service) Snapshot(ctx context.Context, viewID string) (*Snapshot, error) {
	return s.update(ctx, viewID, func(*viewSession, Layout) error { return nil })
}

// ApplyFilter parses raw inputs for the column's filter kind and stores
// the result. Input the filter cannot use clears it.
func (s *Service) ApplyFilter(ctx context.Context, viewID string, f Field, inputs []string) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, l Layout) error {
		col, ok := l.Schema.Lookup(f)
		if !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, f)
		}
		next, err := sess.filters.Set(l.Schema, f, ParseFilterInput(col.Filter, inputs))
		if err != nil {
			return err
		}
		sess.filters = next
		return nil
	})
}

// ToggleOption checks or unchecks one option of a select filter.
func (s *Service) ToggleOption(ctx context.Context, viewID string, f Field, option string, checked bool) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, l Layout) error {
		next, err := sess.filters.ToggleOption(l.Schema, f, option, checked)
		if err != nil {
			return err
		}
		sess.filters = next
		return nil
	})
}

// ClearFilter removes a column's filter.
func (s *Service) ClearFilter(ctx context.Context, viewID string, f Field) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, l Layout) error {
		if _, ok := l.Schema.Lookup(f); !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, f)
		}
		sess.filters = sess.filters.Clear(f)
		return nil
	})
}

// SortBy applies a header click on a sortable column.
func (s *Service) SortBy(ctx context.Context, viewID string, f Field) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, l Layout) error {
		next, err := NextSort(l.Schema, sess.sort, f)
		if err != nil {
			return err
		}
		sess.sort = next
		return nil
	})
}

// ClearSort returns the view to store order.
func (s *Service) ClearSort(ctx context.Context, viewID string) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, _ Layout) error {
		sess.sort = nil
		return nil
	})
}

// ToggleFilter shows or hides the filter control of column index.
// Filter values are untouched.
func (s *Service) ToggleFilter(ctx context.Context, viewID string, index int) (*Snapshot, error) {
	return s.update(ctx, viewID, func(sess *viewSession, l Layout) error {
		if _, ok := l.Schema.At(index); !ok {
			return fmt.Errorf("%w: index %d", ErrColumnNotFound, index)
		}
		sess.visibility = sess.visibility.Toggle(index)
		return nil
	})
}

// update runs fn against a copy of the session under the lock and commits
// it only when fn succeeds. Rendering happens outside the lock.
func (s *Service) update(ctx context.Context, viewID string, fn func(*viewSession, Layout) error) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[viewID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	}
	layout, ok := Get(sess.layoutKey)
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, sess.layoutKey)
	}

	work := *sess
	if err := fn(&work, layout); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	work.lastSeen = s.now()
	*sess = work
	s.mu.Unlock()

	return s.snapshot(work)
}

func (s *Service) snapshot(sess viewSession) (*Snapshot, error) {
	layout, ok := Get(sess.layoutKey)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, sess.layoutKey)
	}

	pageSize := layout.PageSize
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	rows := s.store.Rows()
	snap := &Snapshot{
		ViewID:     sess.id,
		Layout:     layout,
		Result:     Render(rows, layout.Schema, sess.filters, sess.sort, pageSize),
		Filters:    sess.filters,
		Sort:       sess.sort,
		Visibility: sess.visibility,
		Options:    make(map[Field]ColumnOptions),
	}
	for _, col := range layout.Schema.cols {
		if col.Filterable() {
			snap.Options[col.Field] = OptionsFor(rows, layout.Schema, sess.filters, col.Field)
		}
	}
	return snap, nil
}

// SessionCount returns the number of live view sessions.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
