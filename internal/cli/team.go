package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskflow/internal/analytics"
	"taskflow/internal/models"
	"taskflow/internal/workspace"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "team",
		Aliases: []string{"users"},
		Short:   "Manage team members",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List members with their task counts",
		Args:  cobra.NoArgs,
		RunE:  runTeamList,
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an active member",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTeamAdd,
	}
	memberFlags(addCmd)
	addCmd.Flags().String("avatar", "", "Avatar URL")

	inviteCmd := &cobra.Command{
		Use:   "invite <name>",
		Short: "Invite a member; the server mails the login credentials",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTeamInvite,
	}
	memberFlags(inviteCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a member",
		Args:  cobra.ExactArgs(1),
		RunE:  runTeamUpdate,
	}
	updateCmd.Flags().String("name", "", "Name")
	updateCmd.Flags().String("email", "", "Email")
	updateCmd.Flags().String("login-id", "", "Login ID")
	updateCmd.Flags().String("password", "", "New password")
	updateCmd.Flags().String("role", "", "Role")
	updateCmd.Flags().String("avatar", "", "Avatar URL")
	updateCmd.Flags().String("status", "", "Status")

	rmCmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a member",
		Args:    cobra.ExactArgs(1),
		RunE:    runTeamRemove,
	}

	cmd.AddCommand(listCmd, addCmd, inviteCmd, updateCmd, rmCmd)
	return cmd
}

func memberFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Email (required)")
	cmd.Flags().String("login-id", "", "Login ID (required)")
	cmd.Flags().String("password", "", "Initial password (required)")
	cmd.Flags().String("role", "", "Role (default Member)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("login-id")
	_ = cmd.MarkFlagRequired("password")
}

func runTeamList(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTeam(cmd)
	if err != nil {
		return err
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	members := s.team.Members()

	out := cmd.OutOrStdout()
	if len(members) == 0 {
		fmt.Fprintln(out, "No team members yet.")
		return nil
	}
	kpi := analytics.TeamKPI(members, tasks)
	fmt.Fprintf(out, "%d members, %d tasks assigned, %d%% of them done\n\n", kpi.Members, kpi.AssignedTasks, kpi.CompletionRate)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLOGIN ID\tROLE\tSTATUS\tTASKS")
	for _, m := range members {
		total, done := analytics.MemberTasks(m.Name, tasks)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d/%d\n",
			shortID(m.ID), m.Name, m.Email, m.LoginID, m.Role, m.Status, done, total)
	}
	return w.Flush()
}

func memberInput(cmd *cobra.Command, args []string) models.UserInput {
	f := cmd.Flags()
	in := models.UserInput{Name: strings.Join(args, " ")}
	in.Email, _ = f.GetString("email")
	in.LoginID, _ = f.GetString("login-id")
	in.Password, _ = f.GetString("password")
	in.Role, _ = f.GetString("role")
	return in
}

func runTeamAdd(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTeam(cmd)
	if err != nil {
		return err
	}
	in := memberInput(cmd, args)
	in.Avatar, _ = cmd.Flags().GetString("avatar")
	m, err := s.team.AddMember(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s added to the team\n", m.Name)
	return nil
}

func runTeamInvite(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTeam(cmd)
	if err != nil {
		return err
	}
	in := memberInput(cmd, args)
	m, err := s.team.InviteMember(ctx, workspace.Invite{
		Name:     in.Name,
		Email:    in.Email,
		LoginID:  in.LoginID,
		Password: in.Password,
		Role:     in.Role,
	})
	if errors.Is(err, workspace.ErrAlreadyInTeam) {
		return fmt.Errorf("%s is already in the team", in.Email)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Invitation sent to %s\n", m.Email)
	return nil
}

func runTeamUpdate(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTeam(cmd)
	if err != nil {
		return err
	}
	id, err := resolveMember(s.team, args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	var patch models.UserPatch
	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	patch.Name = str("name")
	patch.Email = str("email")
	patch.LoginID = str("login-id")
	patch.Password = str("password")
	patch.Role = str("role")
	patch.Avatar = str("avatar")
	patch.Status = str("status")

	m, err := s.team.UpdateMember(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Team member updated: %s\n", m.Name)
	return nil
}

func runTeamRemove(cmd *cobra.Command, args []string) error {
	s, ctx, err := withTeam(cmd)
	if err != nil {
		return err
	}
	id, err := resolveMember(s.team, args[0])
	if err != nil {
		return err
	}
	if err := s.team.DeleteMember(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Team member removed")
	return nil
}

// resolveMember accepts an id, an id prefix or a Login ID.
func resolveMember(store *workspace.TeamStore, ref string) (string, error) {
	var match string
	for _, m := range store.Members() {
		if m.ID == ref || m.LoginID == ref {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("member id %q is ambiguous", ref)
			}
			match = m.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", workspace.ErrMemberNotFound, ref)
	}
	return match, nil
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <login-id>",
		Short: "Sign in and remember the member in the settings file",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogin,
	}
	cmd.Flags().StringP("password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	password, _ := cmd.Flags().GetString("password")
	u, err := s.api.Login(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}
	server, _ := cmd.Flags().GetString("server")
	if err := s.settings.SetSession(server, u.LoginID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s (%s)\n", u.Name, u.Role)
	return nil
}
