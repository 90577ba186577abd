package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskflow/internal/analytics"
	"taskflow/internal/models"
)

// Generator is the report renderer used by the reports endpoint; handy to mock in tests.
type Generator interface {
	GenerateReport(w io.Writer, data ReportData) error
}

// ReportGenerator renders analytics reports. Without FontPath it falls back
// to the built-in Helvetica, which only covers Latin-1.
type ReportGenerator struct {
	FontPath string // e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

type ReportData struct {
	GeneratedAt time.Time
	Summary     analytics.Summary
	Breakdown   analytics.Breakdown
	Trend       []analytics.DayCount
	Upcoming    []models.Task
	Focus       *models.Task
	Team        analytics.TeamStats
	Tasks       []models.Task
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	g := &ReportGenerator{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		g.fontName = "DejaVu"
	}
	return g
}

func (g *ReportGenerator) GenerateReport(w io.Writer, data ReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TaskFlow productivity report", true)
	pdf.SetAuthor("TaskFlow", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	tr := g.translator(pdf)
	pdf.AddPage()

	// ===== Header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("TaskFlow Report"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, tr("Generated "+data.GeneratedAt.Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")
	g.hr(pdf)

	s := data.Summary
	pdf.SetFont(g.fontName, "B", 12)
	pdf.MultiCell(0, 6, tr(s.Headline), "", "L", false)
	pdf.SetFont(g.fontName, "", 11)
	pdf.MultiCell(0, 6, tr(s.Subline), "", "L", false)
	pdf.Ln(2)

	// ===== Summary
	g.sectionTitle(pdf, tr("Summary"))
	g.kvLine(pdf, tr("Total tasks"), fmt.Sprintf("%d", s.Total))
	g.kvLine(pdf, tr("Completed"), fmt.Sprintf("%d (%d%%)", s.Completed, s.CompletionRate))
	g.kvLine(pdf, tr("Pending"), fmt.Sprintf("%d", s.Pending))
	g.kvLine(pdf, tr("Overdue"), fmt.Sprintf("%d", s.Overdue))
	g.kvLine(pdf, tr("High priority"), fmt.Sprintf("%d", s.HighPriority))
	g.kvLine(pdf, tr("Done this week"), fmt.Sprintf("%d", s.CompletedThisWeek))
	g.kvLine(pdf, tr("Focus time"), FormatDuration(s.FocusSeconds))
	g.kvLine(pdf, tr("Focus score"), fmt.Sprintf("%d (%s)", s.FocusScore, s.ScoreLabel))
	pdf.Ln(1)
	g.hr(pdf)

	// ===== Distribution
	g.sectionTitle(pdf, tr("Distribution"))
	for _, sl := range data.Breakdown.Slices {
		g.kvLine(pdf, tr(sl.Name), fmt.Sprintf("%d", sl.Value))
	}
	for _, st := range []models.TaskStatus{models.StatusToDo, models.StatusInProgress, models.StatusInReview, models.StatusCompleted} {
		g.kvLine(pdf, tr(string(st)), fmt.Sprintf("%d", data.Breakdown.ByStatus[string(st)]))
	}
	pdf.Ln(1)
	g.hr(pdf)

	// ===== Trend
	if len(data.Trend) > 0 {
		g.sectionTitle(pdf, tr(fmt.Sprintf("Completions (last %d days)", len(data.Trend))))
		g.trendBars(pdf, tr, data.Trend)
		g.hr(pdf)
	}

	// ===== Team
	g.sectionTitle(pdf, tr("Team"))
	g.kvLine(pdf, tr("Members"), fmt.Sprintf("%d", data.Team.Members))
	g.kvLine(pdf, tr("Assigned tasks"), fmt.Sprintf("%d", data.Team.AssignedTasks))
	g.kvLine(pdf, tr("Team completion"), fmt.Sprintf("%d%%", data.Team.CompletionRate))
	pdf.Ln(1)
	g.hr(pdf)

	// ===== Focus & deadlines
	g.sectionTitle(pdf, tr("Today's focus"))
	if data.Focus != nil {
		g.kvLine(pdf, tr("Task"), tr(data.Focus.Title))
		g.kvLine(pdf, tr("Priority"), tr(string(data.Focus.Priority)))
		if data.Focus.DueDate != nil {
			g.kvLine(pdf, tr("Due"), data.Focus.DueDate.Format("02.01.2006"))
		}
	} else {
		g.addLines(pdf, []string{tr("Nothing open. Enjoy the quiet.")})
	}
	pdf.Ln(1)

	g.sectionTitle(pdf, tr("Upcoming deadlines"))
	if len(data.Upcoming) == 0 {
		g.addLines(pdf, []string{tr("No deadlines in the next 3 days.")})
	}
	for _, t := range data.Upcoming {
		g.kvLine(pdf, t.DueDate.Format("02.01.2006"), tr(t.Title))
	}
	pdf.Ln(1)

	// ===== Task table
	if len(data.Tasks) > 0 {
		pdf.AddPage()
		g.sectionTitle(pdf, tr("All tasks"))
		g.taskTable(pdf, tr, data.Tasks)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// FormatDuration prints seconds as "1h 05m" or "12m".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// === helpers ===
func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) trendBars(pdf *gofpdf.Fpdf, tr func(string) string, trend []analytics.DayCount) {
	maxVal := 1
	for _, d := range trend {
		maxVal = max(maxVal, d.Completed)
	}
	const barMax = 110.0
	pdf.SetFillColor(59, 130, 246)
	pdf.SetFont(g.fontName, "", 9)
	for _, d := range trend {
		pdf.CellFormat(20, 5, tr(d.Label), "", 0, "L", false, 0, "")
		w := barMax * float64(d.Completed) / float64(maxVal)
		if w > 0 {
			pdf.CellFormat(w, 4, "", "", 0, "L", true, 0, "")
		}
		pdf.CellFormat(0, 5, fmt.Sprintf(" %d", d.Completed), "", 1, "L", false, 0, "")
	}
	pdf.SetFont(g.fontName, "", 11)
	pdf.Ln(1)
}

func (g *ReportGenerator) taskTable(pdf *gofpdf.Fpdf, tr func(string) string, tasks []models.Task) {
	widths := []float64{70, 25, 30, 25, 20}
	header := []string{"Title", "Priority", "Status", "Due", "Focus"}

	pdf.SetFont(g.fontName, "B", 10)
	pdf.SetFillColor(240, 242, 245)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(g.fontName, "", 9)
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("02.01.2006")
		}
		title := t.Title
		if t.Completed {
			title = "[x] " + title
		}
		row := []string{truncate(title, 40), string(t.Priority), string(t.Status), due, FormatDuration(t.FocusTime)}
		for i, c := range row {
			pdf.CellFormat(widths[i], 6, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	if g.FontPath == "" {
		return
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

// translator maps UTF-8 onto the core font code page; UTF-8 fonts need no mapping.
func (g *ReportGenerator) translator(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *ReportGenerator) addLines(pdf *gofpdf.Fpdf, lines []string) {
	pdf.SetFont(g.fontName, "", 11)
	for _, line := range lines {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
}
