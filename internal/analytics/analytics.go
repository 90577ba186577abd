// Package analytics derives dashboard aggregates from already-loaded task,
// activity and member arrays. Nothing here touches storage.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskflow/internal/models"
)

const (
	ScoreExcellent = "EXCELLENT"
	ScoreGood      = "GOOD"
	ScoreNeedsWork = "NEEDS WORK"

	focusScoreScale   = 850
	upcomingDays      = 3
	manyHighPriority  = 3
	strongCompletion  = 80
	productivityPoint = 5
)

type Summary struct {
	Total             int    `json:"total"`
	Completed         int    `json:"completed"`
	Pending           int    `json:"pending"`
	Overdue           int    `json:"overdue"`
	HighPriority      int    `json:"highPriority"`
	CompletionRate    int    `json:"completionRate"`
	CompletedThisWeek int    `json:"completedThisWeek"`
	FocusSeconds      int64  `json:"focusSeconds"`
	FocusScore        int    `json:"focusScore"`
	ScoreLabel        string `json:"scoreLabel"`
	ProductivityScore int    `json:"productivityScore"`
	Headline          string `json:"headline"`
	Subline           string `json:"subline"`
}

// percent returns round(part/total*100), 0 for an empty total.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func Summarize(tasks []models.Task, activities []models.Activity, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		s.FocusSeconds += t.FocusTime
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Overdue(now) {
			s.Overdue++
		}
		if t.Priority == models.PriorityHigh {
			s.HighPriority++
		}
	}
	s.Pending = s.Total - s.Completed
	s.CompletionRate = percent(s.Completed, s.Total)

	weekAgo := now.Add(-7 * 24 * time.Hour)
	for _, a := range activities {
		if a.Action == models.ActionCompleted && a.Timestamp.After(weekAgo) {
			s.CompletedThisWeek++
		}
	}

	if s.Total > 0 {
		s.FocusScore = int(math.Round(float64(s.Completed) / float64(s.Total) * focusScoreScale))
	}
	switch {
	case s.FocusScore > 700:
		s.ScoreLabel = ScoreExcellent
	case s.FocusScore > 500:
		s.ScoreLabel = ScoreGood
	default:
		s.ScoreLabel = ScoreNeedsWork
	}
	s.ProductivityScore = min(100, s.Completed*productivityPoint)

	s.Headline, s.Subline = headline(s.CompletionRate, s.HighPriority)
	return s
}

func headline(rate, highPriority int) (string, string) {
	switch {
	case rate >= strongCompletion:
		return "Incredible productivity!", "You're crushing your goals this week."
	case highPriority > manyHighPriority:
		return "Action needed on priorities.",
			"You have " + strconv.Itoa(highPriority) + " high-priority tasks requiring your attention."
	}
	return "Great start! Keep the momentum going.", "You're steadily checking off tasks."
}

type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Breakdown struct {
	// Slices holds the non-empty completed / pending-normal / pending-high buckets.
	Slices     []Slice        `json:"slices"`
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	ByCategory map[string]int `json:"byCategory"`
}

func Distribution(tasks []models.Task) Breakdown {
	b := Breakdown{
		Slices:     []Slice{},
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
		ByCategory: map[string]int{},
	}
	var completed, normal, high int
	for _, t := range tasks {
		switch {
		case t.Completed:
			completed++
		case t.Priority == models.PriorityHigh:
			high++
		default:
			normal++
		}
		b.ByStatus[string(t.Status)]++
		b.ByPriority[string(t.Priority)]++
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			cat = models.DefaultCategory
		}
		b.ByCategory[cat]++
	}
	for _, sl := range []Slice{
		{Name: "Completed", Value: completed},
		{Name: "Pending (Normal)", Value: normal},
		{Name: "Pending (High Priority)", Value: high},
	} {
		if sl.Value > 0 {
			b.Slices = append(b.Slices, sl)
		}
	}
	return b
}

type DayCount struct {
	Date      time.Time `json:"date"`
	Label     string    `json:"label"`
	Completed int       `json:"completed"`
}

// CompletionTrend counts "completed" entries per calendar day for the last
// days days, oldest first, in now's location.
func CompletionTrend(activities []models.Activity, days int, now time.Time) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}
	layout := "Jan 2"
	if days <= 7 {
		layout = "Mon"
	}
	today := models.StartOfDay(now)
	out := make([]DayCount, days)
	for i := range out {
		d := today.AddDate(0, 0, -(days - 1 - i))
		out[i] = DayCount{Date: d, Label: d.Format(layout)}
	}
	start := out[0].Date
	for _, a := range activities {
		if a.Action != models.ActionCompleted {
			continue
		}
		day := models.StartOfDay(a.Timestamp.In(now.Location()))
		if day.Before(start) || day.After(today) {
			continue
		}
		idx := daysBetween(start, day)
		if idx >= 0 && idx < days {
			out[idx].Completed++
		}
	}
	return out
}

// daysBetween counts calendar days, tolerant of DST shifts.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// UpcomingDeadlines returns open tasks due from the start of today through
// the start of the third day ahead, soonest first.
func UpcomingDeadlines(tasks []models.Task, now time.Time) []models.Task {
	today := models.StartOfDay(now)
	limit := today.AddDate(0, 0, upcomingDays)
	out := []models.Task{}
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(today) || t.DueDate.After(limit) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	return out
}

// NextFocus picks the open task to work on now: overdue before not overdue,
// then higher priority, then earlier due date. Nil when nothing is open.
func NextFocus(tasks []models.Task, now time.Time) *models.Task {
	today := models.StartOfDay(now)
	var best *models.Task
	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			continue
		}
		if best == nil || focusLess(t, best, today) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	pick := *best
	return &pick
}

func focusLess(a, b *models.Task, today time.Time) bool {
	aOver := a.DueDate != nil && a.DueDate.Before(today)
	bOver := b.DueDate != nil && b.DueDate.Before(today)
	if aOver != bOver {
		return aOver
	}
	if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
		return wa > wb
	}
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	}
	return a.DueDate.Before(*b.DueDate)
}

type TeamStats struct {
	Members        int `json:"members"`
	AssignedTasks  int `json:"assignedTasks"`
	CompletionRate int `json:"completionRate"`
}

// TeamKPI rates the team on assigned tasks only.
func TeamKPI(members []models.User, tasks []models.Task) TeamStats {
	st := TeamStats{Members: len(members)}
	var done int
	for _, t := range tasks {
		if !Assigned(t) {
			continue
		}
		st.AssignedTasks++
		if t.Completed {
			done++
		}
	}
	st.CompletionRate = percent(done, st.AssignedTasks)
	return st
}

// Assigned is true when the task names someone other than the placeholder.
func Assigned(t models.Task) bool {
	if t.Assignee == nil {
		return false
	}
	a := strings.TrimSpace(*t.Assignee)
	return a != "" && a != models.UnassignedMarker
}

// MemberTasks counts tasks and completed tasks assigned to name.
func MemberTasks(name string, tasks []models.Task) (total, done int) {
	for _, t := range tasks {
		if t.Assignee == nil || *t.Assignee != name {
			continue
		}
		total++
		if t.Completed {
			done++
		}
	}
	return total, done
}

// Dashboard is the JSON shape of GET /api/analytics/summary.
type Dashboard struct {
	Summary      Summary       `json:"summary"`
	Distribution Breakdown     `json:"distribution"`
	Trend        []DayCount    `json:"trend"`
	Upcoming     []models.Task `json:"upcoming"`
	Focus        *models.Task  `json:"focus"`
	Team         TeamStats     `json:"team"`
}

// Build runs every widget over one snapshot.
func Build(tasks []models.Task, activities []models.Activity, members []models.User, trendDays int, now time.Time) Dashboard {
	return Dashboard{
		Summary:      Summarize(tasks, activities, now),
		Distribution: Distribution(tasks),
		Trend:        CompletionTrend(activities, trendDays, now),
		Upcoming:     UpcomingDeadlines(tasks, now),
		Focus:        NextFocus(tasks, now),
		Team:         TeamKPI(members, tasks),
	}
}
