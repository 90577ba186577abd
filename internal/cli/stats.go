package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/models"
	"taskflow/internal/pdf"
	"taskflow/internal/settings"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show the dashboard numbers",
		Args:    cobra.NoArgs,
		RunE:    runStats,
	}
	cmd.Flags().Int("days", 7, "Completion trend window in days")
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	d, err := s.api.Dashboard(cmd.Context(), days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sum := d.Summary
	fmt.Fprintf(out, "%s\n%s\n\n", sum.Headline, sum.Subline)
	fmt.Fprintf(out, "Tasks:          %d total, %d done, %d pending, %d overdue\n",
		sum.Total, sum.Completed, sum.Pending, sum.Overdue)
	fmt.Fprintf(out, "Completion:     %d%% (%d this week)\n", sum.CompletionRate, sum.CompletedThisWeek)
	fmt.Fprintf(out, "Focus score:    %d %s\n", sum.FocusScore, sum.ScoreLabel)
	fmt.Fprintf(out, "Productivity:   %d\n", sum.ProductivityScore)
	fmt.Fprintf(out, "Focus time:     %s\n", pdf.FormatDuration(sum.FocusSeconds))

	if len(d.Trend) > 0 {
		fmt.Fprintf(out, "\nCompleted per day:\n")
		for _, dc := range d.Trend {
			fmt.Fprintf(out, "  %-6s %s %d\n", dc.Label, strings.Repeat("#", dc.Completed), dc.Completed)
		}
	}
	if d.Focus != nil {
		fmt.Fprintf(out, "\nNext up: %s (%s)\n", d.Focus.Title, d.Focus.Priority)
	}
	if len(d.Upcoming) > 0 {
		fmt.Fprintln(out, "\nDue soon:")
		for _, t := range d.Upcoming {
			fmt.Fprintf(out, "  %s  %s\n", t.DueDate.Format("Mon Jan 2"), t.Title)
		}
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF report",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default taskflow-report-<date>.pdf)")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = "taskflow-report-" + time.Now().Format("2006-01-02") + ".pdf"
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.api.DownloadReport(cmd.Context(), f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
	return nil
}

// Backup is the JSON document written by the export command.
type Backup struct {
	Tasks       []models.Task        `json:"tasks"`
	ActivityLog []models.Activity    `json:"activityLog"`
	Profile     settings.Profile     `json:"profile"`
	Preferences settings.Preferences `json:"preferences"`
	ExportDate  time.Time            `json:"exportDate"`
	Version     string               `json:"version"`
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tasks, activity and settings to a JSON backup",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	cmd.Flags().StringP("output", "o", "-", `Output file, "-" for stdout`)
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	s, _, err := withTasks(cmd)
	if err != nil {
		return err
	}
	cur := s.settings.Get()
	b := Backup{
		Tasks:       s.tasks.Tasks(),
		ActivityLog: s.tasks.Activity(),
		Profile:     cur.Profile,
		Preferences: cur.Preferences,
		ExportDate:  time.Now().UTC(),
		Version:     "1.0",
	}

	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Data exported to %s\n", path)
	}
	return nil
}
