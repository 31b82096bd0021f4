package ports

import (
	"context"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// TaskRepository defines the interface for date-indexed task storage
type TaskRepository interface {
	Get(ctx context.Context, date calendar.DateInfo) ([]entities.DailyTask, error)
	GetByID(ctx context.Context, id int) (*entities.DailyTask, error)
	MonthView(ctx context.Context, month, year int) ([]*entities.MonthViewTask, error)
	EnsureDay(ctx context.Context, date calendar.DateInfo) error
	Create(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error)
	Update(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error)
	Delete(ctx context.Context, task *entities.DailyTask) (*entities.DailyTask, error)
	Count(ctx context.Context) int
}
