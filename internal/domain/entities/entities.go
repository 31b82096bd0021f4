package entities

import (
	"errors"
	"fmt"

	"github.com/taskmaster/planner/internal/domain/calendar"
)

// Common errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task")
)

// DailyTask is a task scheduled on a single calendar day
type DailyTask struct {
	// Unique task identifier, assigned by the task store
	ID          int               `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Date        calendar.DateInfo `json:"date" yaml:"date"`
	StartHour   int               `json:"startHour" yaml:"start_hour"`
	StartMinute int               `json:"startMinute" yaml:"start_minute"`
	EndHour     int               `json:"endHour" yaml:"end_hour"`
	EndMinute   int               `json:"endMinute" yaml:"end_minute"`
}

// MonthViewTask is the per-day summary shown in a month view
type MonthViewTask struct {
	TaskCount int `json:"taskCount"`
}

// Validate checks the time-of-day fields and the calendar date
func (t *DailyTask) Validate() error {
	if t.StartHour < 0 || t.StartHour > 23 || t.EndHour < 0 || t.EndHour > 23 {
		return fmt.Errorf("%w: hours must be between 0 and 23", ErrInvalidTask)
	}
	if t.StartMinute < 0 || t.StartMinute > 59 || t.EndMinute < 0 || t.EndMinute > 59 {
		return fmt.Errorf("%w: minutes must be between 0 and 59", ErrInvalidTask)
	}
	if _, err := calendar.Normalize(t.Date); err != nil {
		return err
	}
	return nil
}

// TimeRange formats the task's start and end as HH:MM-HH:MM
func (t *DailyTask) TimeRange() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.StartHour, t.StartMinute, t.EndHour, t.EndMinute)
}
