package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// TaskService handles the calendar task operations
type TaskService struct {
	taskRepo  ports.TaskRepository
	clock     calendar.Clock
	validator *validator.Validate
	logger    *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, clock calendar.Clock, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		clock:     clock,
		validator: validator.New(),
		logger:    logger.WithComponent("task_service"),
	}
}

var _ ports.TaskService = (*TaskService)(nil)

// DailyTasks returns the tasks of a single day
func (s *TaskService) DailyTasks(ctx context.Context, date ports.DateInput) ([]entities.DailyTask, error) {
	d, err := s.validateDate(date)
	if err != nil {
		return nil, err
	}

	return s.taskRepo.Get(ctx, d)
}

// MonthlyTasks returns the per-day task counts of a month. A missing month
// or year falls back to the current one.
func (s *TaskService) MonthlyTasks(ctx context.Context, month, year *int) ([]*entities.MonthViewTask, error) {
	current := calendar.ThisMonth(s.clock)

	m, y := current.Month, current.Year
	if month != nil {
		m = *month
	}
	if year != nil {
		y = *year
	}

	return s.taskRepo.MonthView(ctx, m, y)
}

// AddDailyTask stores a new task under a fresh id
func (s *TaskService) AddDailyTask(ctx context.Context, req ports.DailyTaskInput) (*entities.DailyTask, error) {
	task, err := s.validateTask(req, 0)
	if err != nil {
		return nil, err
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		s.logger.LogTaskMutation("add", 0, task.Date.String(), err)
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	s.logger.LogTaskMutation("add", created.ID, created.Date.String(), nil)
	return created, nil
}

// UpdateDailyTask replaces an existing task, moving it when its date changes
func (s *TaskService) UpdateDailyTask(ctx context.Context, req ports.DailyTaskInput) (*entities.DailyTask, error) {
	id, err := req.TaskID()
	if err != nil {
		return nil, err
	}

	task, err := s.validateTask(req, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		s.logger.LogTaskMutation("update", id, task.Date.String(), err)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.LogTaskMutation("update", updated.ID, updated.Date.String(), nil)
	return updated, nil
}

// DeleteDailyTask removes a task and echoes the input back
func (s *TaskService) DeleteDailyTask(ctx context.Context, req ports.DailyTaskInput) (*entities.DailyTask, error) {
	id, err := req.TaskID()
	if err != nil {
		return nil, err
	}

	deleted, err := s.taskRepo.Delete(ctx, req.Task(id))
	if err != nil {
		s.logger.LogTaskMutation("delete", id, req.Date.DateInfo().String(), err)
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.LogTaskMutation("delete", deleted.ID, deleted.Date.String(), nil)
	return deleted, nil
}

func (s *TaskService) validateDate(date ports.DateInput) (calendar.DateInfo, error) {
	if err := s.validator.Struct(date); err != nil {
		return calendar.DateInfo{}, fmt.Errorf("%w: %s", calendar.ErrInvalidDate, err.Error())
	}

	return calendar.Normalize(date.DateInfo())
}

func (s *TaskService) validateTask(req ports.DailyTaskInput, id int) (*entities.DailyTask, error) {
	if err := s.validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && onlyDateFields(validationErrors) {
			return nil, fmt.Errorf("%w: %s", calendar.ErrInvalidDate, err.Error())
		}
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidTask, err.Error())
	}

	date, err := calendar.Normalize(req.Date.DateInfo())
	if err != nil {
		return nil, err
	}

	task := req.Task(id)
	task.Date = date
	return task, nil
}

func onlyDateFields(errs validator.ValidationErrors) bool {
	for _, fe := range errs {
		if fe.StructNamespace() != "DailyTaskInput.Date."+fe.StructField() {
			return false
		}
	}
	return true
}
