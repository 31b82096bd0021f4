package ports

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// TaskService interface for the calendar task operations
type TaskService interface {
	DailyTasks(ctx context.Context, date DateInput) ([]entities.DailyTask, error)
	MonthlyTasks(ctx context.Context, month, year *int) ([]*entities.MonthViewTask, error)
	AddDailyTask(ctx context.Context, req DailyTaskInput) (*entities.DailyTask, error)
	UpdateDailyTask(ctx context.Context, req DailyTaskInput) (*entities.DailyTask, error)
	DeleteDailyTask(ctx context.Context, req DailyTaskInput) (*entities.DailyTask, error)
}

// Request DTOs

// DateInput mirrors the DateInfoInput wire type
type DateInput struct {
	Date    int `json:"date" mapstructure:"date" validate:"min=1,max=31"`
	Weekday int `json:"weekday" mapstructure:"weekday" validate:"min=1,max=7"`
	Month   int `json:"month" mapstructure:"month" validate:"min=1,max=12"`
	Year    int `json:"year" mapstructure:"year"`
}

// DailyTaskInput mirrors the DailyTaskInput wire type. ID is optional and
// ignored when adding a task.
type DailyTaskInput struct {
	ID          *string   `json:"id" mapstructure:"id"`
	Title       string    `json:"title" mapstructure:"title" validate:"max=500"`
	Description string    `json:"description" mapstructure:"description" validate:"max=5000"`
	Date        DateInput `json:"date" mapstructure:"date"`
	StartHour   int       `json:"startHour" mapstructure:"startHour" validate:"min=0,max=23"`
	StartMinute int       `json:"startMinute" mapstructure:"startMinute" validate:"min=0,max=59"`
	EndHour     int       `json:"endHour" mapstructure:"endHour" validate:"min=0,max=23"`
	EndMinute   int       `json:"endMinute" mapstructure:"endMinute" validate:"min=0,max=59"`
}

// DateInfo converts the input into a calendar date without validating it
func (d DateInput) DateInfo() calendar.DateInfo {
	return calendar.DateInfo{
		Date:    d.Date,
		Weekday: d.Weekday,
		Month:   d.Month,
		Year:    d.Year,
	}
}

// TaskID parses the optional ID field
func (r DailyTaskInput) TaskID() (int, error) {
	if r.ID == nil || strings.TrimSpace(*r.ID) == "" {
		return 0, fmt.Errorf("%w: id is required", entities.ErrInvalidTask)
	}
	id, err := strconv.Atoi(strings.TrimSpace(*r.ID))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: malformed id %q", entities.ErrInvalidTask, *r.ID)
	}
	return id, nil
}

// Task converts the input into an entity. id is used as-is.
func (r DailyTaskInput) Task(id int) *entities.DailyTask {
	return &entities.DailyTask{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date.DateInfo(),
		StartHour:   r.StartHour,
		StartMinute: r.StartMinute,
		EndHour:     r.EndHour,
		EndMinute:   r.EndMinute,
	}
}
