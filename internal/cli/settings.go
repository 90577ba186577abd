package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskflow/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the local profile and preferences",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings file",
		Args:  cobra.NoArgs,
		RunE:  runSettingsShow,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the profile",
		Args:  cobra.NoArgs,
		RunE:  runSettingsProfile,
	}
	profileCmd.Flags().String("name", "", "Display name")
	profileCmd.Flags().String("email", "", "Email")
	profileCmd.Flags().String("color", "", "Avatar color")

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Update preferences",
		Args:  cobra.NoArgs,
		RunE:  runSettingsPrefs,
	}
	prefsCmd.Flags().Bool("notifications", true, "Desktop notifications")
	prefsCmd.Flags().Bool("email-digest", false, "Weekly email digest")

	cmd.AddCommand(showCmd, profileCmd, prefsCmd)
	return cmd
}

func settingsStore(cmd *cobra.Command) (*settings.Store, error) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		path = settings.DefaultPath()
	}
	return settings.Open(path)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := settingsStore(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(store.Get())
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", store.Path(), data)
	return nil
}

func runSettingsProfile(cmd *cobra.Command, args []string) error {
	store, err := settingsStore(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	var p settings.ProfilePatch
	if f.Changed("name") {
		v, _ := f.GetString("name")
		p.Name = &v
	}
	if f.Changed("email") {
		v, _ := f.GetString("email")
		p.Email = &v
	}
	if f.Changed("color") {
		v, _ := f.GetString("color")
		p.AvatarColor = &v
	}
	profile, err := store.UpdateProfile(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Profile updated successfully: %s <%s> [%s]\n",
		profile.Name, profile.Email, profile.Avatar.Initials)
	return nil
}

func runSettingsPrefs(cmd *cobra.Command, args []string) error {
	store, err := settingsStore(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	var p settings.PreferencesPatch
	if f.Changed("notifications") {
		v, _ := f.GetBool("notifications")
		p.Notifications = &v
	}
	if f.Changed("email-digest") {
		v, _ := f.GetBool("email-digest")
		p.EmailDigest = &v
	}
	prefs, err := store.UpdatePreferences(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preferences saved: notifications=%t email-digest=%t\n",
		prefs.Notifications, prefs.EmailDigest)
	return nil
}
