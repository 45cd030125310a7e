package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ponto/worktime-engine/store"
	"github.com/ponto/worktime-engine/store/sqlite"
	"github.com/ponto/worktime-engine/worktime"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func june2024() worktime.Period {
	return worktime.MonthOf(worktime.Date(2024, time.June, 1))
}

func TestShift_SaveGetDelete(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	sh := worktime.Shift{
		ID: "s-1", UserID: "u-1",
		StartTime:   worktime.DateTime(2024, time.June, 10, 9, 0),
		EndTime:     worktime.DateTime(2024, time.June, 10, 18, 0),
		Description: "regular day",
	}
	require.NoError(t, st.SaveShift(ctx, sh))

	got, err := st.GetShift(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, sh, *got)

	require.NoError(t, st.DeleteShift(ctx, "s-1"))
	_, err = st.GetShift(ctx, "s-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestShift_SaveIsUpsert(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	sh := worktime.Shift{
		ID: "s-1", UserID: "u-1",
		StartTime: worktime.DateTime(2024, time.June, 10, 9, 0),
		EndTime:   worktime.DateTime(2024, time.June, 10, 18, 0),
	}
	require.NoError(t, st.SaveShift(ctx, sh))

	sh.Description = "amended"
	require.NoError(t, st.SaveShift(ctx, sh))

	got, err := st.GetShift(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "amended", got.Description)
}

func TestShift_ListFiltersByUserAndPeriod(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	save := func(id, user string, month time.Month, day int) {
		require.NoError(t, st.SaveShift(ctx, worktime.Shift{
			ID: id, UserID: user,
			StartTime: worktime.DateTime(2024, month, day, 9, 0),
			EndTime:   worktime.DateTime(2024, month, day, 18, 0),
		}))
	}
	save("s-late", "u-1", time.June, 20)
	save("s-early", "u-1", time.June, 3)
	save("s-other-user", "u-2", time.June, 10)
	save("s-other-month", "u-1", time.July, 1)

	shifts, err := st.ListShifts(ctx, "u-1", june2024())
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "s-early", shifts[0].ID, "ordered by start time")
	assert.Equal(t, "s-late", shifts[1].ID)
}

func TestShift_MidnightRolloverRoundtrips(t *testing.T) {
	// A rollover shift stores an end clock value before its start; the store
	// must hand it back untouched for the engine to interpret.
	st := newStore(t)
	ctx := context.Background()

	sh := worktime.Shift{
		ID: "s-night", UserID: "u-1",
		StartTime: worktime.DateTime(2024, time.June, 10, 23, 0),
		EndTime:   worktime.DateTime(2024, time.June, 10, 2, 0),
	}
	require.NoError(t, st.SaveShift(ctx, sh))

	got, err := st.GetShift(ctx, "s-night")
	require.NoError(t, err)
	assert.Equal(t, sh.EndTime, got.EndTime)
}

func TestShift_DeleteUnknownID(t *testing.T) {
	st := newStore(t)
	assert.ErrorIs(t, st.DeleteShift(context.Background(), "nope"), store.ErrNotFound)
}

func TestLeave_SaveGetDelete(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	d := worktime.NonAccountingDay{
		ID: "l-1", UserID: "u-1", Type: worktime.LeaveOther, Reason: "jury duty",
		StartDate: worktime.Date(2024, time.June, 10),
		EndDate:   worktime.Date(2024, time.June, 14),
	}
	require.NoError(t, st.SaveNonAccountingDay(ctx, d))

	got, err := st.GetNonAccountingDay(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, d, *got)

	require.NoError(t, st.DeleteNonAccountingDay(ctx, "l-1"))
	_, err = st.GetNonAccountingDay(ctx, "l-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, st.DeleteNonAccountingDay(ctx, "l-1"), store.ErrNotFound)
}

func TestLeave_ListMatchesOnOverlap(t *testing.T) {
	// A leave straddling the period boundary must still be returned so the
	// engine can clip it.
	st := newStore(t)
	ctx := context.Background()

	save := func(id string, start, end time.Time) {
		require.NoError(t, st.SaveNonAccountingDay(ctx, worktime.NonAccountingDay{
			ID: id, UserID: "u-1", Type: worktime.LeaveVacation,
			StartDate: start, EndDate: end,
		}))
	}
	save("l-inside", worktime.Date(2024, time.June, 10), worktime.Date(2024, time.June, 14))
	save("l-straddle", worktime.Date(2024, time.May, 28), worktime.Date(2024, time.June, 4))
	save("l-before", worktime.Date(2024, time.May, 1), worktime.Date(2024, time.May, 5))
	save("l-after", worktime.Date(2024, time.July, 1), worktime.Date(2024, time.July, 5))

	leaves, err := st.ListNonAccountingDays(ctx, "u-1", june2024())
	require.NoError(t, err)
	require.Len(t, leaves, 2)
	assert.Equal(t, "l-straddle", leaves[0].ID, "ordered by start date")
	assert.Equal(t, "l-inside", leaves[1].ID)
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	shifts, err := st.ListShifts(ctx, "nobody", june2024())
	require.NoError(t, err)
	assert.NotNil(t, shifts)
	assert.Empty(t, shifts)

	leaves, err := st.ListNonAccountingDays(ctx, "nobody", june2024())
	require.NoError(t, err)
	assert.NotNil(t, leaves)
	assert.Empty(t, leaves)
}
