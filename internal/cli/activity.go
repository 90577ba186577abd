package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskflow/internal/models"
)

var activityVerbs = map[string]string{
	models.ActionCreated:      "Created",
	models.ActionUpdated:      "Updated",
	models.ActionCompleted:    "Completed",
	models.ActionUncompleted:  "Reopened",
	models.ActionDeleted:      "Deleted",
	models.ActionCleared:      "Cleared",
	models.ActionFocusSession: "Focused",
}

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"log"},
		Short:   "Show or clear the activity log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE:  runActivityList,
	}
	listCmd.Flags().Int("limit", 20, "Number of entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole activity log",
		Args:  cobra.NoArgs,
		RunE:  runActivityClear,
	}
	clearCmd.Flags().Bool("yes", false, "Do not ask for confirmation")

	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

func runActivityList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	s, _, err := withTasks(cmd)
	if err != nil {
		return err
	}
	acts := s.tasks.Activity()
	out := cmd.OutOrStdout()
	if len(acts) == 0 {
		fmt.Fprintln(out, "No activity yet.")
		return nil
	}
	if limit > 0 && len(acts) > limit {
		acts = acts[:limit]
	}
	for _, a := range acts {
		fmt.Fprintf(out, "%s  %s\n", a.Timestamp.Local().Format("2006-01-02 15:04"), describe(a))
	}
	return nil
}

func describe(a models.Activity) string {
	verb, ok := activityVerbs[a.Action]
	if !ok {
		verb = a.Action
	}
	return verb + ": " + a.TaskTitle
}

func runActivityClear(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("this deletes the whole activity log; rerun with --yes")
	}
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	if err := s.tasks.ClearActivity(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Activity history cleared")
	return nil
}
