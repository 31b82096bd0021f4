package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

func setupTaskService(t *testing.T) (*TaskService, *repository.TaskIndex) {
	t.Helper()

	index := repository.NewTaskIndex()
	return NewTaskService(index, calendar.FixedDay(15, 2, 2024), logger.NewNop()), index
}

func taskInput(day, month, year int) ports.DailyTaskInput {
	return ports.DailyTaskInput{
		Title:       "Lunch",
		Description: "With the team",
		Date:        ports.DateInput{Date: day, Weekday: 1, Month: month, Year: year},
		StartHour:   12,
		StartMinute: 0,
		EndHour:     13,
		EndMinute:   30,
	}
}

func idOf(task *entities.DailyTask) *string {
	id := strconv.Itoa(task.ID)
	return &id
}

func TestTaskService_AddDailyTask(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ports.DailyTaskInput)
		wantErr error
	}{
		{
			name:   "should add task with valid input",
			mutate: func(*ports.DailyTaskInput) {},
		},
		{
			name: "should ignore a supplied id",
			mutate: func(in *ports.DailyTaskInput) {
				id := "77"
				in.ID = &id
			},
		},
		{
			name:    "should reject start hour 24",
			mutate:  func(in *ports.DailyTaskInput) { in.StartHour = 24 },
			wantErr: entities.ErrInvalidTask,
		},
		{
			name:    "should reject minute 60",
			mutate:  func(in *ports.DailyTaskInput) { in.EndMinute = 60 },
			wantErr: entities.ErrInvalidTask,
		},
		{
			name:    "should reject month 13 as invalid date",
			mutate:  func(in *ports.DailyTaskInput) { in.Date.Month = 13 },
			wantErr: calendar.ErrInvalidDate,
		},
		{
			name:    "should reject day outside the month",
			mutate:  func(in *ports.DailyTaskInput) { in.Date.Date = 30 },
			wantErr: calendar.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, index := setupTaskService(t)
			ctx := context.Background()

			in := taskInput(15, 2, 2024)
			tt.mutate(&in)

			task, err := service.AddDailyTask(ctx, in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, index.Count(ctx))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, task.ID)
			assert.Equal(t, 4, task.Date.Weekday, "weekday is recomputed from the date")

			tasks, err := service.DailyTasks(ctx, ports.DateInput{Date: 15, Weekday: 4, Month: 2, Year: 2024})
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, *task, tasks[0])
		})
	}
}

func TestTaskService_DailyTasksValidatesDate(t *testing.T) {
	service, _ := setupTaskService(t)

	_, err := service.DailyTasks(context.Background(), ports.DateInput{Date: 31, Weekday: 1, Month: 4, Year: 2024})
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = service.DailyTasks(context.Background(), ports.DateInput{Date: 1, Weekday: 0, Month: 4, Year: 2024})
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestTaskService_UpdateDailyTask(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	created, err := service.AddDailyTask(ctx, taskInput(15, 2, 2024))
	require.NoError(t, err)

	in := taskInput(1, 3, 2024)
	in.ID = idOf(created)
	in.Title = "Moved lunch"

	updated, err := service.UpdateDailyTask(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Moved lunch", updated.Title)

	old, _ := service.DailyTasks(ctx, ports.DateInput{Date: 15, Weekday: 4, Month: 2, Year: 2024})
	assert.Empty(t, old)

	moved, _ := service.DailyTasks(ctx, ports.DateInput{Date: 1, Weekday: 5, Month: 3, Year: 2024})
	require.Len(t, moved, 1)
	assert.Equal(t, "Moved lunch", moved[0].Title)
}

func TestTaskService_UpdateDailyTaskErrors(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	_, err := service.UpdateDailyTask(ctx, taskInput(15, 2, 2024))
	assert.ErrorIs(t, err, entities.ErrInvalidTask, "missing id")

	in := taskInput(15, 2, 2024)
	bad := "abc"
	in.ID = &bad
	_, err = service.UpdateDailyTask(ctx, in)
	assert.ErrorIs(t, err, entities.ErrInvalidTask, "malformed id")

	unknown := "12345"
	in.ID = &unknown
	_, err = service.UpdateDailyTask(ctx, in)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestTaskService_DeleteDailyTask(t *testing.T) {
	service, index := setupTaskService(t)
	ctx := context.Background()

	created, err := service.AddDailyTask(ctx, taskInput(15, 2, 2024))
	require.NoError(t, err)

	in := taskInput(15, 2, 2024)
	in.ID = idOf(created)

	deleted, err := service.DeleteDailyTask(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, 1, deleted.Date.Weekday, "delete echoes the input as passed")

	_, err = index.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = service.DeleteDailyTask(ctx, in)
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}

func TestTaskService_MonthlyTasks(t *testing.T) {
	service, _ := setupTaskService(t)
	ctx := context.Background()

	_, err := service.AddDailyTask(ctx, taskInput(15, 2, 2024))
	require.NoError(t, err)

	// defaults to the clock's month
	view, err := service.MonthlyTasks(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, view, 29)
	require.NotNil(t, view[14])
	assert.Equal(t, 1, view[14].TaskCount)

	month, year := 5, 2024
	view, err = service.MonthlyTasks(ctx, &month, &year)
	require.NoError(t, err)
	assert.Len(t, view, 31)

	bad := 0
	_, err = service.MonthlyTasks(ctx, &bad, &year)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}
