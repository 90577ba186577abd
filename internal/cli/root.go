package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskflow/internal/client"
	"taskflow/internal/logger"
	"taskflow/internal/settings"
	"taskflow/internal/workspace"
)

// NewRootCmd builds the taskflow command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - tasks, focus sessions and team from the terminal",
		Long: `taskflow talks to a TaskFlow server.

Tasks, subtasks and the activity log live on the server; the profile and
preferences are kept in a local settings file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("server", "", "TaskFlow server URL (default from settings, then $TASKFLOW_SERVER)")
	root.PersistentFlags().String("settings", "", "Settings file (default "+settings.DefaultPath()+")")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "Request timeout")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	root.AddCommand(newTasksCmd())
	root.AddCommand(newActivityCmd())
	root.AddCommand(newTeamCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newFocusCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newSettingsCmd())
	root.AddCommand(newHealthCmd())
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// session is everything a command needs to reach the server.
type session struct {
	settings *settings.Store
	api      *client.Client
	log      *zap.Logger
	tasks    *workspace.TaskStore
	team     *workspace.TeamStore
}

func openSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("settings")
	if path == "" {
		path = settings.DefaultPath()
	}
	store, err := settings.Open(path)
	if err != nil {
		return nil, err
	}

	server, _ := flags.GetString("server")
	if server == "" {
		server = os.Getenv("TASKFLOW_SERVER")
	}
	if server == "" {
		server = store.Get().Server
	}
	timeout, _ := flags.GetDuration("timeout")

	log := zap.NewNop()
	if verbose, _ := flags.GetBool("verbose"); verbose {
		log = logger.New(logger.Config{Level: "debug", Encoding: "console", Stderr: true})
	}

	api := client.New(server, client.WithTimeout(timeout))
	return &session{
		settings: store,
		api:      api,
		log:      log,
		tasks:    workspace.NewTaskStore(api, log),
		team:     workspace.NewTeamStore(api, log),
	}, nil
}

// withTasks opens a session and loads the task list and activity log.
func withTasks(cmd *cobra.Command) (*session, context.Context, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if err := s.tasks.Load(ctx); err != nil {
		return nil, nil, err
	}
	return s, ctx, nil
}

func withTeam(cmd *cobra.Command) (*session, context.Context, error) {
	s, err := openSession(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if err := s.team.Load(ctx); err != nil {
		return nil, nil, err
	}
	return s, ctx, nil
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.api.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server is running")
			return nil
		},
	}
}
