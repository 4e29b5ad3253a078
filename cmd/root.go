package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kumar-509/voice-ai-frontend/internal/app"
	"github.com/Kumar-509/voice-ai-frontend/internal/config"
)

// console reports command failures on stderr; the session log goes to a file.
var console = newConsole()

// overrides carries --backend/--log-level and VOICEAI_* variables onto the active profile.
var overrides = viper.New()

var rootCmd = &cobra.Command{
	Use:   "voiceai",
	Short: "Terminal voice and chat client for the Voice AI backend",
	Long: `voiceai talks to a Voice AI backend from the terminal: chat with the assistant,
run web searches, set reminders and dictate messages through a configured voice command.`,
	Run: func(cmd *cobra.Command, args []string) {
		runChat(loadConfig())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "backend base URL for this run (overrides the profile)")
	rootCmd.PersistentFlags().String("log-level", "", "log level for this run (debug, info, warn, error)")
	_ = overrides.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend"))
	_ = overrides.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(profileCmd)
}

func newConsole() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

// loadConfig reads the profile file and layers flag and environment overrides on top.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		console.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyOverrides(overrides)
	return cfg
}

func loadValidConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runChat(cfg *config.Config) {
	application, err := app.NewApplication(cfg)
	if err != nil {
		console.Fatalf("Failed to create application: %v", err)
	}

	err = application.Start()
	application.Stop()
	if err != nil {
		console.Fatalf("Application error: %v", err)
	}
}
