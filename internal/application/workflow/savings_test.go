package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsBuildsStackedSeries(t *testing.T) {
	backend := &fakeBackend{weeklyFn: func(entity.Period) entity.Outcome[entity.WeeklySeries] {
		return entity.Ok(entity.WeeklySeries{
			MonthName: "March",
			Entries: []entity.WeeklyEntry{
				{Week: "Week 1", Amount: decimal.NewFromInt(300), Type: entity.EntrySavings},
				{Week: "Week 1", Amount: decimal.NewFromInt(700), Type: entity.EntryExpense},
			},
		})
	}}
	w := NewSavings(backend, log.Discard())
	require.NoError(t, w.Period().Select("March", "2024"))

	view, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, QueryLoaded, view.Status)
	require.NotNil(t, view.Chart)
	assert.Equal(t, "March", view.Chart.Title)
	require.Len(t, view.Chart.Bars, 2)
	assert.Equal(t, entity.ColorGreen, view.Chart.Bars[0].Color)
	assert.Equal(t, entity.ColorRed, view.Chart.Bars[1].Color)
	assert.Equal(t, entity.Period{Month: "march", Year: 2024}, view.Period)
}

func TestSavingsRequiresPeriod(t *testing.T) {
	backend := &fakeBackend{}
	w := NewSavings(backend, log.Discard())

	view, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, MsgPeriodRequired, view.Message)
	assert.Zero(t, backend.totalCalls())
}

func TestSavingsNotFoundAndErrorShareEmptyState(t *testing.T) {
	for _, outcome := range []entity.Outcome[entity.WeeklySeries]{
		entity.NotFound[entity.WeeklySeries](errors.New("404")),
		entity.Failed[entity.WeeklySeries](errors.New("502")),
	} {
		backend := &fakeBackend{weeklyFn: func(entity.Period) entity.Outcome[entity.WeeklySeries] { return outcome }}
		w := NewSavings(backend, log.Discard())
		require.NoError(t, w.Period().Select("march", "2024"))

		view, err := w.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, QueryEmpty, view.Status)
		assert.Nil(t, view.Chart)
		assert.Equal(t, MsgNoData, view.Message)
	}
}

func TestSavingsValidationKeepsDisplayedData(t *testing.T) {
	w := NewSavings(&fakeBackend{}, log.Discard())
	require.NoError(t, w.Period().Select("march", "2024"))
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, w.Period().SetYear(""))
	view, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, QueryLoaded, view.Status)
	assert.NotNil(t, view.Chart)
	assert.Equal(t, MsgPeriodRequired, view.Message)
}
