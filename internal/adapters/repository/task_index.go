package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// dayBuckets holds task ids per day of a month, in insertion order
type dayBuckets map[int][]int

// TaskIndex is the in-memory task store.
//
// tasks owns every DailyTask and doubles as the id index. days is the
// year -> month -> day index and only stores ids. Both maps are changed
// together under mu, and callers only ever see copies.
type TaskIndex struct {
	mu     sync.RWMutex
	tasks  map[int]entities.DailyTask
	days   map[int]map[int]dayBuckets
	lastID int
}

// NewTaskIndex creates an empty task index
func NewTaskIndex() *TaskIndex {
	return &TaskIndex{
		tasks: make(map[int]entities.DailyTask),
		days:  make(map[int]map[int]dayBuckets),
	}
}

var _ ports.TaskRepository = (*TaskIndex)(nil)

// Get returns the tasks stored for date, or an empty slice
func (r *TaskIndex) Get(ctx context.Context, date calendar.DateInfo) ([]entities.DailyTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids, _ := r.bucket(date)
	tasks := make([]entities.DailyTask, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, r.tasks[id])
	}

	return tasks, nil
}

// GetByID returns a copy of the task with the given id
func (r *TaskIndex) GetByID(ctx context.Context, id int) (*entities.DailyTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, id)
	}

	return &task, nil
}

// MonthView reports the task count of every day in the month. Days that
// never got a bucket are nil; created but empty buckets count zero.
func (r *TaskIndex) MonthView(ctx context.Context, month, year int) ([]*entities.MonthViewTask, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", calendar.ErrInvalidDate, month)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	days := r.days[year][month]
	view := make([]*entities.MonthViewTask, calendar.DaysInMonth(month, year))
	for i := range view {
		if ids, ok := days[i+1]; ok {
			view[i] = &entities.MonthViewTask{TaskCount: len(ids)}
		}
	}

	return view, nil
}

// EnsureDay creates the (possibly empty) bucket for date
func (r *TaskIndex) EnsureDay(ctx context.Context, date calendar.DateInfo) error {
	if _, err := calendar.Normalize(date); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureBucket(date)
	return nil
}

// Create stores task under a freshly assigned id. Any id on the input is ignored.
func (r *TaskIndex) Create(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	stored := *task
	stored.ID = r.lastID

	r.tasks[stored.ID] = stored
	r.appendToBucket(stored.Date, stored.ID)

	return &stored, nil
}

// Update replaces the stored task with the same id. A changed date moves the
// task to the end of the new day's bucket; otherwise it keeps its position.
func (r *TaskIndex) Update(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	original, ok := r.tasks[task.ID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, task.ID)
	}

	if !calendar.EqualDate(original.Date, task.Date) {
		r.removeFromBucket(original.Date, original.ID)
		r.appendToBucket(task.Date, task.ID)
	}
	r.tasks[task.ID] = *task

	updated := *task
	return &updated, nil
}

// Delete removes the task with the same id from both indexes and returns
// the task as passed in.
func (r *TaskIndex) Delete(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", entities.ErrTaskNotFound, task.ID)
	}

	// the stored date is authoritative, the caller's copy may be stale
	r.removeFromBucket(stored.Date, stored.ID)
	delete(r.tasks, stored.ID)

	deleted := *task
	return &deleted, nil
}

// Count returns the number of stored tasks
func (r *TaskIndex) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tasks)
}

// bucket must be called with mu held
func (r *TaskIndex) bucket(date calendar.DateInfo) ([]int, bool) {
	ids, ok := r.days[date.Year][date.Month][date.Date]
	return ids, ok
}

func (r *TaskIndex) ensureBucket(date calendar.DateInfo) {
	months, ok := r.days[date.Year]
	if !ok {
		months = make(map[int]dayBuckets)
		r.days[date.Year] = months
	}
	days, ok := months[date.Month]
	if !ok {
		days = make(dayBuckets)
		months[date.Month] = days
	}
	if _, ok := days[date.Date]; !ok {
		days[date.Date] = []int{}
	}
}

func (r *TaskIndex) appendToBucket(date calendar.DateInfo, id int) {
	r.ensureBucket(date)
	days := r.days[date.Year][date.Month]
	days[date.Date] = append(days[date.Date], id)
}

func (r *TaskIndex) removeFromBucket(date calendar.DateInfo, id int) {
	ids, ok := r.bucket(date)
	if !ok {
		return
	}
	for i, candidate := range ids {
		if candidate == id {
			r.days[date.Year][date.Month][date.Date] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}
