package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// DefaultMaxTasksPerDay bounds the random task count of a seeded day (exclusive)
const DefaultMaxTasksPerDay = 15

// Seeder fills a task repository with mock data
type Seeder struct {
	taskRepo       ports.TaskRepository
	clock          calendar.Clock
	rng            *rand.Rand
	maxTasksPerDay int
	logger         *logger.Logger
}

// SeedFixtures is the layout of a YAML fixtures file
type SeedFixtures struct {
	Tasks []entities.DailyTask `yaml:"tasks"`
}

// NewSeeder creates a seeder. A zero randomSeed seeds from the clock.
func NewSeeder(taskRepo ports.TaskRepository, clock calendar.Clock, randomSeed int64, maxTasksPerDay int, logger *logger.Logger) *Seeder {
	if randomSeed == 0 {
		randomSeed = clock.Now().UnixNano()
	}
	if maxTasksPerDay < 1 {
		maxTasksPerDay = DefaultMaxTasksPerDay
	}

	return &Seeder{
		taskRepo:       taskRepo,
		clock:          clock,
		rng:            rand.New(rand.NewSource(randomSeed)),
		maxTasksPerDay: maxTasksPerDay,
		logger:         logger.WithComponent("seeder"),
	}
}

// Window returns the seeded months: this month, the next and the previous one
func (s *Seeder) Window() []calendar.MonthInfo {
	this := calendar.ThisMonth(s.clock)
	return []calendar.MonthInfo{this, calendar.NextMonth(this), calendar.PreviousMonth(this)}
}

// Seed gives every day of the window a bucket and a random number of tasks.
// It returns the number of tasks created.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	created := 0

	for _, month := range s.Window() {
		for _, day := range month.Dates() {
			date := calendar.DateFromMonth(month, day)
			if err := s.taskRepo.EnsureDay(ctx, date); err != nil {
				return created, fmt.Errorf("failed to create day %s: %w", date, err)
			}

			count := s.rng.Intn(s.maxTasksPerDay)
			for i := 0; i < count; i++ {
				if _, err := s.taskRepo.Create(ctx, s.randomTask(date)); err != nil {
					return created, fmt.Errorf("failed to seed task on %s: %w", date, err)
				}
				created++
			}
		}

		s.logger.Debugw("Seeded month", "month", month.String())
	}

	s.logger.Infow("Seeded task store", "tasks", created)
	return created, nil
}

// LoadFixtures adds the tasks listed in a YAML file. Fixture ids are ignored.
func (s *Seeder) LoadFixtures(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var fixtures SeedFixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}

	for i, task := range fixtures.Tasks {
		date, err := calendar.Normalize(task.Date)
		if err != nil {
			return i, fmt.Errorf("fixture %d (%q): %w", i, task.Title, err)
		}
		task.Date = date

		created, err := s.taskRepo.Create(ctx, &task)
		if err != nil {
			return i, fmt.Errorf("fixture %d (%q): %w", i, task.Title, err)
		}
		s.logger.Debugw("Loaded fixture", "id", created.ID, "date", created.Date.String(), "time", created.TimeRange())
	}

	s.logger.Infow("Loaded task fixtures", "path", path, "tasks", len(fixtures.Tasks))
	return len(fixtures.Tasks), nil
}

func (s *Seeder) randomTask(date calendar.DateInfo) *entities.DailyTask {
	startHour := s.rng.Intn(22)
	startMinute := s.rng.Intn(60)
	endHour := startHour + s.rng.Intn(24-startHour)
	endMinute := s.rng.Intn(60)

	return &entities.DailyTask{
		Title:       fmt.Sprintf("Title(%d): %s", s.randomNumber(1, 100), date),
		Description: fmt.Sprintf("This day: %s. Has this following description for you to enjoy! (%d)", date, s.randomNumber(1, 100)),
		Date:        date,
		StartHour:   startHour,
		StartMinute: startMinute,
		EndHour:     endHour,
		EndMinute:   endMinute,
	}
}

// randomNumber returns a number in [min, max)
func (s *Seeder) randomNumber(min, max int) int {
	return min + s.rng.Intn(max-min)
}
