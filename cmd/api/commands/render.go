package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taskmaster/planner/internal/domain/calendar"
	"github.com/taskmaster/planner/internal/domain/entities"
)

const cellWidth = 7

var weekdayNames = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// RenderMonth writes a Monday-first grid of month. Days with tasks show their
// count in parentheses and today is marked with '>'.
func RenderMonth(w io.Writer, month calendar.MonthInfo, view []*entities.MonthViewTask, today calendar.DateInfo) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", time.Month(month.Month), month.Year)
	for _, name := range weekdayNames {
		fmt.Fprintf(&b, " %-*s", cellWidth-1, name)
	}
	b.WriteString("\n")

	dates := month.Dates()

	firstWeek := 0
	for _, date := range dates {
		if month.IsInFirstWeek(date) {
			firstWeek++
		}
	}
	b.WriteString(strings.Repeat(" ", (calendar.DaysInWeek-firstWeek)*cellWidth))

	for _, date := range dates {
		marker := " "
		if month.IsToday(date, today) {
			marker = ">"
		}

		count := ""
		if date-1 < len(view) && view[date-1] != nil {
			count = fmt.Sprintf("(%d)", view[date-1].TaskCount)
		}

		cell := fmt.Sprintf("%s%2d%s", marker, date, count)
		if month.IsSunday(date) || date == month.LastDay {
			b.WriteString(strings.TrimRight(cell, " "))
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "%-*s", cellWidth, cell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
