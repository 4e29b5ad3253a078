package cmd

import (
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the chat app",
	Long:  `Switch to the specified profile and immediately start the chat application.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if err := cfg.UseProfile(args[0]); err != nil {
			console.Fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			console.Fatalf("Failed to save config: %v", err)
		}
		// Switching profiles resets the run's overrides.
		cfg.ApplyOverrides(overrides)

		runChat(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
