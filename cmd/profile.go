package cmd

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Kumar-509/voice-ai-frontend/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage profiles for different backends, voice commands and timings.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Fprintln(out, "Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Fprintf(out, "  %s%s\n", name, marker)
			fmt.Fprintf(out, "    Backend: %s\n", profile.BackendURL)
			fmt.Fprintf(out, "    Voice: %s\n", voiceSummary(profile.VoiceCommand))
			fmt.Fprintln(out)
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := cfg.ActiveProfile
		if len(args) > 0 {
			profileName = args[0]
		}
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			console.Fatalf("Profile '%s' does not exist", profileName)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Profile: %s\n", profileName)
		fmt.Fprintf(out, "Backend URL: %s\n", profile.BackendURL)
		fmt.Fprintf(out, "Request Timeout: %s\n", orDefault(profile.RequestTimeout, config.DefaultRequestTimeout.String()))
		fmt.Fprintf(out, "Retry Delay: %s\n", orDefault(profile.RetryDelay, config.DefaultRetryDelay.String()))
		fmt.Fprintf(out, "Status Clear After: %s\n", orDefault(profile.StatusClearAfter, config.DefaultStatusClearAfter.String()))
		fmt.Fprintf(out, "Voice Command: %s\n", voiceSummary(profile.VoiceCommand))
		fmt.Fprintf(out, "Time Layout: %s\n", orDefault(profile.TimeDisplayLayout, config.DefaultTimeDisplayLayout))
		fmt.Fprintf(out, "Log Level: %s\n", orDefault(profile.LogLevel, config.DefaultLogLevel))
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:    "Profile name",
				Validate: notBlank,
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				console.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			console.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.DefaultProfile())
		if err != nil {
			console.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			console.Fatalf("Failed to save config: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' added successfully!\n", profileName)
	},
}

var setProfileCmd = &cobra.Command{
	Use:     "set [profile-name]",
	Aliases: []string{"edit"},
	Short:   "Edit an existing profile",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := selectProfile(cfg, args, "Select profile to edit")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			console.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err := promptProfile(profile)
		if err != nil {
			console.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile
		if err := cfg.Save(); err != nil {
			console.Fatalf("Failed to save config: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' updated successfully!\n", profileName)
	},
}

var removeProfileCmd = &cobra.Command{
	Use:     "remove [profile-name]",
	Aliases: []string{"delete"},
	Short:   "Remove a profile",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := selectProfile(cfg, args, "Select profile to remove")
		if _, exists := cfg.Profiles[profileName]; !exists {
			console.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Remove profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Removal cancelled")
			return
		}

		if err := cfg.RemoveProfile(profileName); err != nil {
			console.Fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			console.Fatalf("Failed to save config: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Profile '%s' removed. Active profile: %s\n", profileName, cfg.ActiveProfile)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := selectProfile(cfg, args, "Select profile to switch to")
		if err := cfg.UseProfile(profileName); err != nil {
			console.Fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			console.Fatalf("Failed to save config: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile '%s'\n", profileName)
	},
}

func init() {
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(setProfileCmd)
	profileCmd.AddCommand(removeProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}

// selectProfile takes the name from args or lets the user pick one.
func selectProfile(cfg *config.Config, args []string, label string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := cfg.ProfileNames()
	if len(names) == 0 {
		console.Fatalf("No profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		console.Fatalf("Selection failed: %v", err)
	}
	return name
}

// promptProfile asks for every profile field, offering the current values as defaults.
func promptProfile(current config.Profile) (config.Profile, error) {
	profile := current
	var err error

	backendPrompt := promptui.Prompt{
		Label:    "Backend URL",
		Default:  current.BackendURL,
		Validate: validURL,
	}
	if profile.BackendURL, err = backendPrompt.Run(); err != nil {
		return current, err
	}

	voicePrompt := promptui.Prompt{
		Label:   "Voice command (empty disables voice input)",
		Default: strings.Join(current.VoiceCommand, " "),
	}
	voice, err := voicePrompt.Run()
	if err != nil {
		return current, err
	}
	profile.VoiceCommand = strings.Fields(voice)

	for _, field := range []struct {
		label string
		value *string
		def   time.Duration
	}{
		{"Request timeout", &profile.RequestTimeout, config.DefaultRequestTimeout},
		{"Retry delay", &profile.RetryDelay, config.DefaultRetryDelay},
		{"Status clear after", &profile.StatusClearAfter, config.DefaultStatusClearAfter},
	} {
		prompt := promptui.Prompt{
			Label:    field.label,
			Default:  orDefault(*field.value, field.def.String()),
			Validate: validDuration,
		}
		if *field.value, err = prompt.Run(); err != nil {
			return current, err
		}
	}

	levels := []string{"debug", "info", "warn", "error"}
	levelPrompt := promptui.Select{
		Label:     "Log level",
		Items:     levels,
		CursorPos: indexOf(levels, orDefault(current.LogLevel, config.DefaultLogLevel)),
	}
	if _, profile.LogLevel, err = levelPrompt.Run(); err != nil {
		return current, err
	}

	return profile, config.ValidateProfile(profile)
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL")
	}
	return nil
}

func validDuration(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fmt.Errorf("enter a duration such as 10s")
	}
	return nil
}

func voiceSummary(argv []string) string {
	if len(argv) == 0 {
		return "disabled"
	}
	return strings.Join(argv, " ")
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func indexOf(items []string, item string) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return 0
}
