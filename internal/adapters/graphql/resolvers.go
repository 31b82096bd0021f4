package graphql

import (
	"context"
	"errors"
	"fmt"

	gql "github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// Error codes reported in the "extensions" of a GraphQL error
const (
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidDate  = "INVALID_DATE"
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL"
)

type resolver struct {
	tasks ports.TaskService
}

func (r *resolver) dailyTasks(p gql.ResolveParams) (interface{}, error) {
	var date ports.DateInput
	if err := decodeArg(p.Args, "date", &date); err != nil {
		return nil, err
	}

	tasks, err := r.tasks.DailyTasks(p.Context, date)
	if err != nil {
		return nil, wrapError(err)
	}
	return tasks, nil
}

func (r *resolver) monthlyTasks(p gql.ResolveParams) (interface{}, error) {
	view, err := r.tasks.MonthlyTasks(p.Context, intArg(p.Args, "month"), intArg(p.Args, "year"))
	if err != nil {
		return nil, wrapError(err)
	}
	return view, nil
}

func (r *resolver) addDailyTask(p gql.ResolveParams) (interface{}, error) {
	return r.mutate(p, r.tasks.AddDailyTask)
}

func (r *resolver) updateDailyTask(p gql.ResolveParams) (interface{}, error) {
	return r.mutate(p, r.tasks.UpdateDailyTask)
}

func (r *resolver) deleteDailyTask(p gql.ResolveParams) (interface{}, error) {
	return r.mutate(p, r.tasks.DeleteDailyTask)
}

type mutationFunc func(ctx context.Context, req ports.DailyTaskInput) (*entities.DailyTask, error)

func (r *resolver) mutate(p gql.ResolveParams, fn mutationFunc) (interface{}, error) {
	var req ports.DailyTaskInput
	if err := decodeArg(p.Args, "task", &req); err != nil {
		return nil, err
	}

	task, err := fn(p.Context, req)
	if err != nil {
		return nil, wrapError(err)
	}
	return task, nil
}

func decodeArg(args map[string]interface{}, name string, out interface{}) error {
	raw, ok := args[name]
	if !ok || raw == nil {
		return &codedError{err: fmt.Errorf("argument %q is required", name), code: CodeBadUserInput}
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return &codedError{err: fmt.Errorf("argument %q: %w", name, err), code: CodeBadUserInput}
	}
	return nil
}

func intArg(args map[string]interface{}, name string) *int {
	if v, ok := args[name].(int); ok {
		return &v
	}
	return nil
}

// codedError carries a machine-readable code into the GraphQL error extensions
type codedError struct {
	err  error
	code string
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// Extensions implements gqlerrors.ExtendedError
func (e *codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func wrapError(err error) error {
	code := CodeInternal
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		code = CodeNotFound
	case errors.Is(err, calendar.ErrInvalidDate):
		code = CodeInvalidDate
	case errors.Is(err, entities.ErrInvalidTask):
		code = CodeBadUserInput
	}
	return &codedError{err: err, code: code}
}
