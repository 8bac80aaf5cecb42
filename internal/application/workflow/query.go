package workflow

import (
	"context"
	"sync"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
	"github.com/diillson/finsight-dashboard-go/internal/log"
)

// QueryStatus separates "never queried" from "queried, nothing found" and "showing data".
type QueryStatus int

const (
	QueryIdle QueryStatus = iota
	QueryLoaded
	QueryEmpty
)

func (s QueryStatus) String() string {
	switch s {
	case QueryIdle:
		return "idle"
	case QueryLoaded:
		return "loaded"
	case QueryEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// periodQuery is the shared read cycle of the period-scoped chart workflows.
// Any non-OK outcome clears the result and shows the empty-state message.
type periodQuery[T any] struct {
	mu      sync.Mutex
	logger  *log.Logger
	period  *PeriodSelector
	fetch   func(ctx context.Context, period entity.Period) entity.Outcome[T]
	status  QueryStatus
	message string
	result  *T
	shown   entity.Period
	fence   fence
}

func newPeriodQuery[T any](logger *log.Logger, fetch func(context.Context, entity.Period) entity.Outcome[T]) *periodQuery[T] {
	return &periodQuery[T]{
		logger: logger,
		period: NewPeriodSelector(),
		fetch:  fetch,
	}
}

type querySnapshot[T any] struct {
	status  QueryStatus
	message string
	result  *T
	period  entity.Period
}

func (q *periodQuery[T]) submit(ctx context.Context) (querySnapshot[T], error) {
	q.mu.Lock()
	q.message = ""
	period := q.period.Period()
	if !period.IsComplete() {
		q.message = MsgPeriodRequired
		snap := q.snapshotLocked()
		q.mu.Unlock()
		return snap, ErrIncomplete
	}
	seq := q.fence.next()
	q.mu.Unlock()

	outcome := q.fetch(ctx, period)

	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.fence.isLatest(seq) {
		q.logger.Debug("discarding stale response", log.FieldSequence, seq,
			log.FieldMonth, period.Month, log.FieldYear, period.Year)
		return q.snapshotLocked(), nil
	}

	switch outcome.Kind {
	case entity.OutcomeOK:
		payload := outcome.Payload
		q.result = &payload
		q.status = QueryLoaded
		q.message = ""
	case entity.OutcomeNotFound:
		q.result = nil
		q.status = QueryEmpty
		q.message = MsgNoData
		q.logger.Info("no data for period", log.FieldMonth, period.Month, log.FieldYear, period.Year)
	default:
		q.result = nil
		q.status = QueryEmpty
		q.message = MsgNoData
		q.logger.Warn("period query failed",
			log.FieldMonth, period.Month, log.FieldYear, period.Year, log.FieldError, outcome.Err)
	}
	q.shown = period
	return q.snapshotLocked(), nil
}

func (q *periodQuery[T]) snapshot() querySnapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *periodQuery[T]) snapshotLocked() querySnapshot[T] {
	return querySnapshot[T]{
		status:  q.status,
		message: q.message,
		result:  q.result,
		period:  q.shown,
	}
}
