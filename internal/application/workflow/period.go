package workflow

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/diillson/finsight-dashboard-go/internal/domain/entity"
)

// PeriodSelector captures the (month, year) pair a workflow is scoped to.
type PeriodSelector struct {
	mu     sync.RWMutex
	period entity.Period
	now    func() time.Time
}

// NewPeriodSelector returns an empty selector.
func NewPeriodSelector() *PeriodSelector {
	return &PeriodSelector{now: time.Now}
}

// SetMonth selects a month by name in any casing. An empty value clears the month.
func (s *PeriodSelector) SetMonth(value string) error {
	month := ""
	if strings.TrimSpace(value) != "" {
		m, err := entity.NormalizeMonth(value)
		if err != nil {
			return err
		}
		month = m
	}

	s.mu.Lock()
	s.period.Month = month
	s.mu.Unlock()
	return nil
}

// SetYear selects a year from the trailing window. An empty value clears the year.
func (s *PeriodSelector) SetYear(value string) error {
	year := 0
	if strings.TrimSpace(value) != "" {
		y, err := entity.ParseYear(value, s.now())
		if err != nil {
			return err
		}
		year = y
	}

	s.mu.Lock()
	s.period.Year = year
	s.mu.Unlock()
	return nil
}

// Select sets both fields, reporting every invalid one.
func (s *PeriodSelector) Select(month, year string) error {
	return errors.Join(s.SetMonth(month), s.SetYear(year))
}

// IsComplete reports whether both month and year are selected.
func (s *PeriodSelector) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period.IsComplete()
}

// Period returns a copy of the current selection.
func (s *PeriodSelector) Period() entity.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// YearOptions lists the years this selector accepts, newest first.
func (s *PeriodSelector) YearOptions() []int {
	return entity.YearOptions(s.now())
}
