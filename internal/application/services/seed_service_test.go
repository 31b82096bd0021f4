package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

func setupSeeder(t *testing.T, seed int64) (*Seeder, *repository.TaskIndex) {
	t.Helper()

	index := repository.NewTaskIndex()
	clock := calendar.FixedDay(15, 2, 2024)
	return NewSeeder(index, clock, seed, DefaultMaxTasksPerDay, logger.NewNop()), index
}

func TestSeeder_Window(t *testing.T) {
	seeder, _ := setupSeeder(t, 1)

	window := seeder.Window()
	require.Len(t, window, 3)
	assert.Equal(t, calendar.NewMonth(2, 2024), window[0])
	assert.Equal(t, calendar.NewMonth(3, 2024), window[1])
	assert.Equal(t, calendar.NewMonth(1, 2024), window[2])
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	seeder, index := setupSeeder(t, 7)

	created, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, index.Count(ctx))

	for _, m := range []struct{ month, days int }{{1, 31}, {2, 29}, {3, 31}} {
		view, err := index.MonthView(ctx, m.month, 2024)
		require.NoError(t, err)
		require.Len(t, view, m.days)

		for day, entry := range view {
			require.NotNil(t, entry, "day %d of month %d has no bucket", day+1, m.month)
			assert.GreaterOrEqual(t, entry.TaskCount, 0)
			assert.Less(t, entry.TaskCount, DefaultMaxTasksPerDay)
		}
	}

	for _, month := range []int{5, 12} {
		view, err := index.MonthView(ctx, month, 2024)
		require.NoError(t, err)
		assert.Len(t, view, calendar.DaysInMonth(month, 2024))
		for _, entry := range view {
			assert.Nil(t, entry)
		}
	}
	view, err := index.MonthView(ctx, 12, 2023)
	require.NoError(t, err)
	for _, entry := range view {
		assert.Nil(t, entry)
	}
}

func TestSeeder_TaskShape(t *testing.T) {
	ctx := context.Background()
	seeder, index := setupSeeder(t, 11)

	_, err := seeder.Seed(ctx)
	require.NoError(t, err)

	for _, month := range seeder.Window() {
		for _, day := range month.Dates() {
			date := calendar.DateFromMonth(month, day)
			tasks, err := index.Get(ctx, date)
			require.NoError(t, err)

			for _, task := range tasks {
				assert.Equal(t, date, task.Date)
				assert.GreaterOrEqual(t, task.StartHour, 0)
				assert.Less(t, task.StartHour, 22)
				assert.GreaterOrEqual(t, task.EndHour, task.StartHour)
				assert.LessOrEqual(t, task.EndHour, 23)
				assert.LessOrEqual(t, task.StartMinute, 59)
				assert.LessOrEqual(t, task.EndMinute, 59)
				assert.Contains(t, task.Title, date.String())
				assert.Contains(t, task.Description, "This day: "+date.String())
			}
		}
	}
}

func TestSeeder_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, indexA := setupSeeder(t, 99)
	b, indexB := setupSeeder(t, 99)

	_, err := a.Seed(ctx)
	require.NoError(t, err)
	_, err = b.Seed(ctx)
	require.NoError(t, err)

	viewA, _ := indexA.MonthView(ctx, 2, 2024)
	viewB, _ := indexB.MonthView(ctx, 2, 2024)
	assert.Equal(t, viewA, viewB)
}

func TestSeeder_SingleTaskLimit(t *testing.T) {
	ctx := context.Background()
	index := repository.NewTaskIndex()
	seeder := NewSeeder(index, calendar.FixedDay(15, 2, 2024), 3, 1, logger.NewNop())

	created, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	view, _ := index.MonthView(ctx, 2, 2024)
	for _, entry := range view {
		require.NotNil(t, entry)
		assert.Equal(t, 0, entry.TaskCount)
	}
}

func TestSeeder_LoadFixtures(t *testing.T) {
	ctx := context.Background()
	seeder, index := setupSeeder(t, 1)

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	content := `tasks:
  - id: 500
    title: Dentist
    description: Check-up
    date: {date: 3, weekday: 1, month: 6, year: 2024}
    start_hour: 9
    start_minute: 30
    end_hour: 10
    end_minute: 0
  - title: Review
    description: Quarterly review
    date: {date: 3, month: 6, year: 2024}
    start_hour: 14
    end_hour: 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, err := seeder.LoadFixtures(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)

	tasks, err := index.Get(ctx, calendar.DateInfo{Date: 3, Month: 6, Year: 2024})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Dentist", tasks[0].Title)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, 1, tasks[0].Date.Weekday)
	assert.Equal(t, 30, tasks[0].StartMinute)
	assert.Equal(t, "Review", tasks[1].Title)
	assert.Equal(t, 1, tasks[1].Date.Weekday, "weekday is derived from the date")
}

func TestSeeder_LoadFixturesErrors(t *testing.T) {
	ctx := context.Background()
	seeder, index := setupSeeder(t, 1)
	dir := t.TempDir()

	_, err := seeder.LoadFixtures(ctx, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tasks:\n  - title: Leap\n    date: {date: 30, month: 2, year: 2024}\n"), 0o600))
	_, err = seeder.LoadFixtures(ctx, bad)
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
	assert.Equal(t, 0, index.Count(ctx))
}
