package graphql

import (
	gql "github.com/graphql-go/graphql"

	"github.com/taskmaster/planner/internal/ports"
)

var dateInfoType = gql.NewObject(gql.ObjectConfig{
	Name: "DateInfo",
	Fields: gql.Fields{
		"date": &gql.Field{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The day of the month (1–31)",
		},
		"weekday": &gql.Field{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The day of the week (1–7, monday-sunday)",
		},
		"month": &gql.Field{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The month (1–12)",
		},
		"year": &gql.Field{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The year (4 digits for 4-digit years)",
		},
	},
})

var dateInfoInputType = gql.NewInputObject(gql.InputObjectConfig{
	Name: "DateInfoInput",
	Fields: gql.InputObjectConfigFieldMap{
		"date": &gql.InputObjectFieldConfig{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The day of the month (1–31)",
		},
		"weekday": &gql.InputObjectFieldConfig{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The day of the week (1–7, monday-sunday)",
		},
		"month": &gql.InputObjectFieldConfig{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The month (1–12)",
		},
		"year": &gql.InputObjectFieldConfig{
			Type:        gql.NewNonNull(gql.Int),
			Description: "The year (4 digits for 4-digit years)",
		},
	},
})

var dailyTaskType = gql.NewObject(gql.ObjectConfig{
	Name: "DailyTask",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.NewNonNull(gql.ID)},
		"title":       &gql.Field{Type: gql.NewNonNull(gql.String), Description: "Short title for the task"},
		"description": &gql.Field{Type: gql.NewNonNull(gql.String), Description: "Longer description for the task"},
		"date":        &gql.Field{Type: gql.NewNonNull(dateInfoType), Description: "Information of the task's date"},
		"startHour":   &gql.Field{Type: gql.NewNonNull(gql.Int), Description: "Hour when the task starts"},
		"startMinute": &gql.Field{Type: gql.NewNonNull(gql.Int), Description: "Minute when the task starts"},
		"endHour":     &gql.Field{Type: gql.NewNonNull(gql.Int), Description: "Hour when the task ends"},
		"endMinute":   &gql.Field{Type: gql.NewNonNull(gql.Int), Description: "Minute when the task ends"},
	},
})

var dailyTaskInputType = gql.NewInputObject(gql.InputObjectConfig{
	Name: "DailyTaskInput",
	Fields: gql.InputObjectConfigFieldMap{
		"id":          &gql.InputObjectFieldConfig{Type: gql.ID, Description: "If id is null, new one is generated"},
		"title":       &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String), Description: "Short title for the task"},
		"description": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String), Description: "Longer description for the task"},
		"date":        &gql.InputObjectFieldConfig{Type: gql.NewNonNull(dateInfoInputType), Description: "Information of the task's date"},
		"startHour":   &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int), Description: "Hour when the task starts"},
		"startMinute": &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int), Description: "Minute when the task starts"},
		"endHour":     &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int), Description: "Hour when the task ends"},
		"endMinute":   &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int), Description: "Minute when the task ends"},
	},
})

var monthViewTaskType = gql.NewObject(gql.ObjectConfig{
	Name: "MonthViewTask",
	Fields: gql.Fields{
		"taskCount": &gql.Field{Type: gql.Int},
	},
})

// NewSchema builds the planner schema with resolvers backed by tasks
func NewSchema(tasks ports.TaskService) (gql.Schema, error) {
	r := &resolver{tasks: tasks}

	taskArgs := gql.FieldConfigArgument{
		"task": &gql.ArgumentConfig{Type: gql.NewNonNull(dailyTaskInputType)},
	}

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"dailyTasks": &gql.Field{
				Type:        gql.NewNonNull(gql.NewList(gql.NewNonNull(dailyTaskType))),
				Description: "Tasks on a given date. Returns an empty list if there are no tasks.",
				Args: gql.FieldConfigArgument{
					"date": &gql.ArgumentConfig{Type: gql.NewNonNull(dateInfoInputType)},
				},
				Resolve: r.dailyTasks,
			},
			"monthlyTasks": &gql.Field{
				Type:        gql.NewNonNull(gql.NewList(monthViewTaskType)),
				Description: "Returns a value for each day in the month. If value is null, the day has no tasks.",
				Args: gql.FieldConfigArgument{
					"month": &gql.ArgumentConfig{Type: gql.Int},
					"year":  &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: r.monthlyTasks,
			},
		},
	})

	mutation := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"addDailyTask": &gql.Field{
				Type:    gql.NewNonNull(dailyTaskType),
				Args:    taskArgs,
				Resolve: r.addDailyTask,
			},
			"deleteDailyTask": &gql.Field{
				Type:    gql.NewNonNull(dailyTaskType),
				Args:    taskArgs,
				Resolve: r.deleteDailyTask,
			},
			"updateDailyTask": &gql.Field{
				Type:    gql.NewNonNull(dailyTaskType),
				Args:    taskArgs,
				Resolve: r.updateDailyTask,
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
