package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_NilStore(t *testing.T) {
	_, err := NewService(nil, 10)
	assert.Error(t, err)
}

func TestOpenView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ViewID)
	assert.Equal(t, gridLayout, snap.Layout.Key)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(snap.Result.Rows))
	assert.Equal(t, DefaultPageSize, snap.Result.PageSize)
	assert.Nil(t, snap.Sort)
	assert.Equal(t, 0, snap.Filters.Len())
	assert.Equal(t, 1, svc.SessionCount())

	// One options entry per filterable column.
	assert.Len(t, snap.Options, 4)
	assert.Equal(t, 5, snap.Options[FieldName].Count)

	again, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)
	assert.NotEqual(t, snap.ViewID, again.ViewID, "each page load is a new view")
}

func TestOpenView_UnknownLayout(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.OpenView(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrLayoutNotFound))
	assert.Equal(t, 0, svc.SessionCount())
}

func TestService_LayoutPageSize(t *testing.T) {
	svc, _ := newTestService(t)

	snap, err := svc.OpenView(context.Background(), textLayout)
	require.NoError(t, err)
	assert.Len(t, snap.Result.Rows, 2)
	assert.Equal(t, "Showing the first 2 results of 5 rows", snap.Result.Summary())
	assert.Len(t, snap.Options, 2)
}

func TestService_FilterThenSort(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)
	id := snap.ViewID

	snap, err = svc.ApplyFilter(ctx, id, FieldID, []string{"3"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{3, 4, 5}, ids(snap.Result.Rows))

	_, err = svc.SortBy(ctx, id, FieldPrice)
	require.NoError(t, err)
	snap, err = svc.SortBy(ctx, id, FieldPrice)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3}, ids(snap.Result.Rows))
	assert.Equal(t, &SortState{Field: FieldPrice, Direction: Desc}, snap.Sort)

	snap, err = svc.ClearSort(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, snap.Sort)
	assert.Equal(t, []int{3, 4, 5}, ids(snap.Result.Rows))

	snap, err = svc.ClearFilter(ctx, id, FieldID)
	require.NoError(t, err)
	assert.Len(t, snap.Result.Rows, 5)
}

func TestService_InvalidInputClearsFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	_, err = svc.ApplyFilter(ctx, snap.ViewID, FieldPrice, []string{"200", "300"})
	require.NoError(t, err)

	snap, err = svc.ApplyFilter(ctx, snap.ViewID, FieldPrice, []string{"", "x"})
	require.NoError(t, err)
	_, active := snap.Filters.Get(FieldPrice)
	assert.False(t, active)
	assert.Len(t, snap.Result.Rows, 5)
}

func TestService_NonFiniteNumberClearsFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)
	id := snap.ViewID

	_, err = svc.ApplyFilter(ctx, id, FieldID, []string{"3"})
	require.NoError(t, err)

	for _, in := range []string{"NaN", "Inf", "-Infinity", "0x3"} {
		snap, err = svc.ApplyFilter(ctx, id, FieldID, []string{in})
		require.NoError(t, err)
		_, active := snap.Filters.Get(FieldID)
		assert.False(t, active, in)
		assert.Len(t, snap.Result.Rows, 5, in)
	}

	snap, err = svc.ApplyFilter(ctx, id, FieldPrice, []string{"NaN", "250"})
	require.NoError(t, err)
	value, active := snap.Filters.Get(FieldPrice)
	require.True(t, active)
	assert.Equal(t, Range{Max: ptr(250)}, value)
	assert.Equal(t, []int{1, 2}, ids(snap.Result.Rows))
}

func TestService_ToggleOption(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	snap, err = svc.ToggleOption(ctx, snap.ViewID, FieldName, "product 4", true)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(snap.Result.Rows))

	// Own filter does not narrow the column's choices.
	assert.Len(t, snap.Options[FieldName].Choices, 5)
	assert.Equal(t, 1, snap.Options[FieldPrice].Count)

	snap, err = svc.ToggleOption(ctx, snap.ViewID, FieldName, "product 4", false)
	require.NoError(t, err)
	assert.Len(t, snap.Result.Rows, 5)
}

func TestService_ToggleFilterKeepsValues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, textLayout)
	require.NoError(t, err)
	id := snap.ViewID

	_, err = svc.ApplyFilter(ctx, id, FieldName, []string{"product 2"})
	require.NoError(t, err)

	snap, err = svc.ToggleFilter(ctx, id, 0)
	require.NoError(t, err)
	assert.True(t, snap.Visibility.Visible(0))

	snap, err = svc.ToggleFilter(ctx, id, 0)
	require.NoError(t, err)
	assert.False(t, snap.Visibility.Visible(0))
	assert.Equal(t, []int{2}, ids(snap.Result.Rows))

	_, err = svc.ToggleFilter(ctx, id, 7)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestService_FailedUpdateLeavesStateUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, textLayout)
	require.NoError(t, err)
	id := snap.ViewID

	_, err = svc.SortBy(ctx, id, FieldName)
	require.NoError(t, err)

	_, err = svc.SortBy(ctx, id, FieldID)
	assert.True(t, errors.Is(err, ErrNotSortable))

	_, err = svc.ApplyFilter(ctx, id, FieldID, []string{"1"})
	assert.True(t, errors.Is(err, ErrNotFilterable))

	_, err = svc.ApplyFilter(ctx, id, FieldDate, []string{"1"})
	assert.True(t, errors.Is(err, ErrColumnNotFound))

	snap, err = svc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &SortState{Field: FieldName, Direction: Asc}, snap.Sort)
	assert.Equal(t, 0, snap.Filters.Len())
}

func TestService_UnknownView(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Snapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrViewNotFound))
}

func TestService_UnknownViewMapsByCause(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Snapshot(context.Background(), "unknown field")
	require.ErrorIs(t, err, ErrViewNotFound)
	assert.Equal(t, "VIEW001", MapError(err).Code)
}

func TestService_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t)

	snap, err := svc.OpenView(context.Background(), gridLayout)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.SortBy(ctx, snap.ViewID, FieldID)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestService_ViewsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)
	b, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	_, err = svc.ApplyFilter(ctx, a.ViewID, FieldID, []string{"5"})
	require.NoError(t, err)

	b, err = svc.Snapshot(ctx, b.ViewID)
	require.NoError(t, err)
	assert.Len(t, b.Result.Rows, 5)
}

func TestService_ConcurrentUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	snap, err := svc.OpenView(ctx, textLayout)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ToggleFilter(ctx, snap.ViewID, 1)
		}()
	}
	wg.Wait()

	// An even number of toggles leaves the control hidden.
	snap, err = svc.Snapshot(ctx, snap.ViewID)
	require.NoError(t, err)
	assert.False(t, snap.Visibility.Visible(1))
}

func TestSweep(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	old, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	*now = now.Add(20 * time.Minute)
	fresh, err := svc.OpenView(ctx, gridLayout)
	require.NoError(t, err)

	*now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, svc.Sweep(30*time.Minute))
	assert.Equal(t, 1, svc.SessionCount())

	_, err = svc.Snapshot(ctx, old.ViewID)
	assert.True(t, errors.Is(err, ErrViewNotFound))
	_, err = svc.Snapshot(ctx, fresh.ViewID)
	assert.NoError(t, err)
}

func TestStartSessionSweeper_StopsOnCancel(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(ctx, SweepConfig{TTL: time.Minute, Interval: time.Millisecond})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
