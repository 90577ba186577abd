package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/models"
	"taskflow/internal/pdf"
	"taskflow/internal/workspace"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage tasks and subtasks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE:  runTasksList,
	}
	listCmd.Flags().String("status", "", "Only tasks with this status")
	listCmd.Flags().String("category", "", "Only tasks in this category")
	listCmd.Flags().Bool("open", false, "Hide completed tasks")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTasksAdd,
	}
	addCmd.Flags().String("desc", "", "Description")
	addCmd.Flags().String("priority", "", "Low, Medium or High")
	addCmd.Flags().String("status", "", "To Do, In Progress, In Review or Completed")
	addCmd.Flags().String("category", "", "Category")
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().String("assignee", "", "Member name")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Long:  `Only the flags given are changed. Pass "none" to --due or --assignee to clear them.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksUpdate,
	}
	updateCmd.Flags().String("title", "", "Title")
	updateCmd.Flags().String("desc", "", "Description")
	updateCmd.Flags().String("priority", "", "Low, Medium or High")
	updateCmd.Flags().String("status", "", "To Do, In Progress, In Review or Completed")
	updateCmd.Flags().String("category", "", "Category")
	updateCmd.Flags().String("due", "", `Due date (YYYY-MM-DD) or "none"`)
	updateCmd.Flags().String("assignee", "", `Member name or "none"`)

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task with its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksShow,
	}
	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a task",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksDone,
	}
	rmCmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE:    runTasksRemove,
	}
	clearCmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
		RunE:  runTasksClearCompleted,
	}

	cmd.AddCommand(listCmd, addCmd, updateCmd, showCmd, doneCmd, rmCmd, clearCmd, newSubtaskCmd())
	return cmd
}

func newSubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"sub"},
		Short:   "Manage the checklist of a task",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <task-id> <title>",
			Short: "Append a subtask",
			Args:  cobra.MinimumNArgs(2),
			RunE:  runSubtaskAdd,
		},
		&cobra.Command{
			Use:   "toggle <task-id> <subtask-id>",
			Short: "Check or uncheck a subtask",
			Args:  cobra.ExactArgs(2),
			RunE:  runSubtaskToggle,
		},
		&cobra.Command{
			Use:   "rm <task-id> <subtask-id>",
			Short: "Remove a subtask",
			Args:  cobra.ExactArgs(2),
			RunE:  runSubtaskRemove,
		},
	)
	return cmd
}

func runTasksList(cmd *cobra.Command, args []string) error {
	s, _, err := withTasks(cmd)
	if err != nil {
		return err
	}
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	openOnly, _ := cmd.Flags().GetBool("open")

	var shown []models.Task
	for _, t := range s.tasks.Tasks() {
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		if category != "" && !strings.EqualFold(t.Category, category) {
			continue
		}
		if openOnly && t.Completed {
			continue
		}
		shown = append(shown, t)
	}

	out := cmd.OutOrStdout()
	if len(shown) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tPRIORITY\tSTATUS\tDUE\tFOCUS")
	now := time.Now()
	for _, t := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), check(t.Completed), t.Title, t.Priority, t.Status,
			dueLabel(t, now), pdf.FormatDuration(t.FocusTime))
	}
	return w.Flush()
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	in := models.TaskInput{Title: strings.Join(args, " ")}
	in.Description, _ = f.GetString("desc")
	in.Category, _ = f.GetString("category")
	if v, _ := f.GetString("priority"); v != "" {
		in.Priority = models.TaskPriority(v)
	}
	if v, _ := f.GetString("status"); v != "" {
		in.Status = models.TaskStatus(v)
	}
	if v, _ := f.GetString("due"); v != "" {
		due, err := parseDue(v)
		if err != nil {
			return err
		}
		in.DueDate = &due
	}
	if v, _ := f.GetString("assignee"); v != "" {
		in.Assignee = &v
	}

	t, err := s.tasks.AddTask(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task added successfully: %s %s\n", shortID(t.ID), t.Title)
	return nil
}

func runTasksUpdate(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	var patch models.TaskPatch
	if f.Changed("title") {
		v, _ := f.GetString("title")
		patch.Title = &v
	}
	if f.Changed("desc") {
		v, _ := f.GetString("desc")
		patch.Description = &v
	}
	if f.Changed("priority") {
		v, _ := f.GetString("priority")
		p := models.TaskPriority(v)
		patch.Priority = &p
	}
	if f.Changed("status") {
		v, _ := f.GetString("status")
		st := models.TaskStatus(v)
		patch.Status = &st
	}
	if f.Changed("category") {
		v, _ := f.GetString("category")
		patch.Category = &v
	}
	if f.Changed("due") {
		v, _ := f.GetString("due")
		if isNone(v) {
			patch.DueDate = models.Null[models.FlexTime]()
		} else {
			due, err := parseDue(v)
			if err != nil {
				return err
			}
			patch.DueDate = models.Some(due)
		}
	}
	if f.Changed("assignee") {
		v, _ := f.GetString("assignee")
		if isNone(v) {
			patch.Assignee = models.Null[string]()
		} else {
			patch.Assignee = models.Some(v)
		}
	}

	t, err := s.tasks.UpdateTask(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", t.Title)
	return nil
}

func runTasksShow(cmd *cobra.Command, args []string) error {
	s, _, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}
	t, _ := s.tasks.Task(id)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", check(t.Completed), t.Title)
	fmt.Fprintf(out, "  id:        %s\n", t.ID)
	if t.Description != "" {
		fmt.Fprintf(out, "  about:     %s\n", t.Description)
	}
	fmt.Fprintf(out, "  priority:  %s\n", t.Priority)
	fmt.Fprintf(out, "  status:    %s\n", t.Status)
	fmt.Fprintf(out, "  category:  %s\n", t.Category)
	fmt.Fprintf(out, "  due:       %s\n", dueLabel(t, time.Now()))
	if t.Assignee != nil {
		fmt.Fprintf(out, "  assignee:  %s\n", *t.Assignee)
	}
	fmt.Fprintf(out, "  focus:     %s\n", pdf.FormatDuration(t.FocusTime))
	if len(t.Subtasks) > 0 {
		fmt.Fprintln(out, "  subtasks:")
		for _, st := range t.Subtasks {
			fmt.Fprintf(out, "    %s %s  (%s)\n", check(st.Completed), st.Title, shortID(st.ID))
		}
	}
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}
	t, err := s.tasks.ToggleTask(ctx, id)
	if err != nil {
		return err
	}
	if t.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", t.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Reopened: %s\n", t.Title)
	}
	return nil
}

func runTasksRemove(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
	return nil
}

func runTasksClearCompleted(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	n, err := s.tasks.ClearCompleted(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks to clear.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", models.ClearedLabel(n))
	return nil
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}
	t, err := s.tasks.AddSubtask(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d subtasks\n", t.Title, len(t.Subtasks))
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, subID, err := resolveSubtask(s.tasks, args[0], args[1])
	if err != nil {
		return err
	}
	t, err := s.tasks.ToggleSubtask(ctx, id, subID)
	if err != nil {
		return err
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d subtasks done\n", t.Title, done, len(t.Subtasks))
	if t.Completed {
		fmt.Fprintln(cmd.OutOrStdout(), "Task completed")
	}
	return nil
}

func runSubtaskRemove(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, subID, err := resolveSubtask(s.tasks, args[0], args[1])
	if err != nil {
		return err
	}
	if _, err := s.tasks.DeleteSubtask(ctx, id, subID); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Subtask removed")
	return nil
}

// resolveTask accepts a full id or an unambiguous prefix of one.
func resolveTask(store *workspace.TaskStore, ref string) (string, error) {
	var match string
	for _, t := range store.Tasks() {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("task id %q is ambiguous", ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", workspace.ErrTaskNotFound, ref)
	}
	return match, nil
}

func resolveSubtask(store *workspace.TaskStore, taskRef, subRef string) (string, string, error) {
	id, err := resolveTask(store, taskRef)
	if err != nil {
		return "", "", err
	}
	t, _ := store.Task(id)
	var match string
	for _, st := range t.Subtasks {
		if st.ID == subRef {
			return id, st.ID, nil
		}
		if strings.HasPrefix(st.ID, subRef) {
			if match != "" {
				return "", "", fmt.Errorf("subtask id %q is ambiguous", subRef)
			}
			match = st.ID
		}
	}
	if match == "" {
		return "", "", fmt.Errorf("%w: %s", workspace.ErrSubtaskNotFound, subRef)
	}
	return id, match, nil
}

func parseDue(v string) (models.FlexTime, error) {
	ft, err := models.ParseFlexTime(v)
	if err != nil {
		return ft, fmt.Errorf("invalid due date %q: use YYYY-MM-DD", v)
	}
	return ft, nil
}

func isNone(v string) bool {
	return v == "" || strings.EqualFold(v, "none")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func dueLabel(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return "-"
	}
	s := t.DueDate.Format("2006-01-02")
	if t.Overdue(now) {
		s += " (overdue)"
	}
	return s
}
