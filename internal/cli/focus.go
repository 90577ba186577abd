package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/focus"
	"taskflow/internal/pdf"
)

func newFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus <task-id>",
		Short: "Run a Pomodoro countdown on a task",
		Long: `Runs one countdown in the foreground. A finished focus countdown adds
its full length to the task's focus time. Ctrl-C discards the countdown.`,
		Args: cobra.ExactArgs(1),
		RunE: runFocus,
	}
	cmd.Flags().String("mode", string(focus.ModeFocus), "focus, short_break or long_break")
	cmd.Flags().Duration("tick", time.Second, "Display refresh interval")
	cmd.Flags().Bool("quiet", false, "Only print the result")
	return cmd
}

func runFocus(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := focus.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	tick, _ := cmd.Flags().GetDuration("tick")
	quiet, _ := cmd.Flags().GetBool("quiet")

	s, ctx, err := withTasks(cmd)
	if err != nil {
		return err
	}
	id, err := resolveTask(s.tasks, args[0])
	if err != nil {
		return err
	}
	task, _ := s.tasks.Task(id)
	out := cmd.OutOrStdout()

	var logErr error
	timer := focus.NewTimer(focus.OnComplete(func(sess focus.Session) {
		if sess.Mode != focus.ModeFocus {
			fmt.Fprintln(out, "\nBreak over! Back to work.")
			return
		}
		logErr = s.tasks.LogFocusTime(ctx, id, int64(sess.Duration/time.Second))
		fmt.Fprintln(out, "\nFocus session completed!")
	}))
	timer.Switch(mode)

	fmt.Fprintf(out, "%s: %s (%s)\n", mode.Label(), task.Title, focus.Format(timer.Remaining()))
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timer.Start()
	err = timer.Run(runCtx, tick, func(left time.Duration) {
		if !quiet {
			fmt.Fprintf(out, "\r%s ", focus.Format(left))
		}
	})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "\nSession discarded.")
		return nil
	}
	if err != nil {
		return err
	}
	if logErr != nil {
		return logErr
	}
	if t, ok := s.tasks.Task(id); ok && mode == focus.ModeFocus {
		fmt.Fprintf(out, "Total focus on %s: %s\n", t.Title, pdf.FormatDuration(t.FocusTime))
	}
	return nil
}
