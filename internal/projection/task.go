package projection

import (
	"time"

	"biowearth/internal/model"
)

// TaskFilter is the filter state of the task table.
type TaskFilter struct {
	Priority string `form:"priority"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	Group    string `form:"group"`
}

// Tasks filters by priority ("All" or empty = any), status, group and title
// search, then sorts by any task field (default dueDate ascending).
func Tasks(tasks []model.Task, f TaskFilter, srt Sort) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if f.Priority != "" && f.Priority != "All" && t.Priority != f.Priority {
			continue
		}
		if f.Status != "" && f.Status != "All" && t.Status != f.Status {
			continue
		}
		if f.Group != "" && f.Group != "All" && t.TaskGroup != f.Group {
			continue
		}
		if !Contains(t.Title, f.Search) {
			continue
		}
		out = append(out, t)
	}
	srt = srt.Or("dueDate", Asc)
	SortByKey(out, srt.Dir, func(t model.Task) string { return taskField(t, srt.Key) })
	return out
}

func taskField(t model.Task, key string) string {
	switch key {
	case "title":
		return t.Title
	case "status":
		return t.Status
	case "priority":
		return t.Priority
	case "contextType":
		return t.ContextType
	case "relatedName":
		return t.RelatedName
	case "assignee":
		return t.Assignee
	case "taskGroup":
		return t.TaskGroup
	case "createdAt":
		return epochKey(t.CreatedAt.Epoch())
	default:
		return t.DueDate
	}
}

// ── Calendar ─────────────────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

// CalendarDay is one cell of the calendar. Date is empty for padding cells
// before the first of the month.
type CalendarDay struct {
	Date  string       `json:"date"`
	Tasks []model.Task `json:"tasks"`
}

// TasksDueOn returns the tasks whose due date is exactly day (YYYY-MM-DD).
func TasksDueOn(tasks []model.Task, day string) []model.Task {
	out := []model.Task{}
	for _, t := range tasks {
		if t.DueDate == day {
			out = append(out, t)
		}
	}
	return out
}

// MonthCalendar lays out the month containing ref as a Sunday-first grid:
// blank cells up to the first weekday, then one cell per day.
func MonthCalendar(tasks []model.Task, ref time.Time) []CalendarDay {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, CalendarDay{Tasks: []model.Task{}})
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		day := d.Format(dateLayout)
		days = append(days, CalendarDay{Date: day, Tasks: TasksDueOn(tasks, day)})
	}
	return days
}

// WeekCalendar returns the seven days, Sunday to Saturday, of the week containing ref.
func WeekCalendar(tasks []model.Task, ref time.Time) []CalendarDay {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	days := make([]CalendarDay, 7)
	for i := range days {
		day := start.AddDate(0, 0, i).Format(dateLayout)
		days[i] = CalendarDay{Date: day, Tasks: TasksDueOn(tasks, day)}
	}
	return days
}
