package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kumar-509/voice-ai-frontend/internal/app"
	"github.com/Kumar-509/voice-ai-frontend/internal/config"
	"github.com/Kumar-509/voice-ai-frontend/internal/core"
	"github.com/Kumar-509/voice-ai-frontend/internal/transport"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the backend once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := backendClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd, cfg)
		defer cancel()

		resp, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("%s unreachable: %w", cfg.GetBackendURL(), err)
		}
		if !resp.OK() {
			return fmt.Errorf("%s reported status %q", cfg.GetBackendURL(), resp.Status)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Connected to %s\n", cfg.GetBackendURL())
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send a single chat message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return fmt.Errorf("message is empty")
		}
		cfg, client, err := backendClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd, cfg)
		defer cancel()

		resp, err := client.Chat(ctx, transport.ChatRequest{Message: message})
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Run a web search through the backend",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query is empty")
		}
		cfg, client, err := backendClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd, cfg)
		defer cancel()

		resp, err := client.Search(ctx, transport.SearchRequest{Query: query})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(resp.Results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), core.NoResultsNotice)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), core.FormatSearchResults(resp.Results))
		return nil
	},
}

var remindAt string

var remindCmd = &cobra.Command{
	Use:   "remind <text...> --at \"2006-01-02 15:04\"",
	Short: "Create a reminder at a local time",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("reminder text is empty")
		}
		at, err := core.ParseReminderTime(remindAt, time.Local)
		if err != nil {
			return err
		}
		cfg, client, err := backendClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd, cfg)
		defer cancel()

		if err := client.CreateReminder(ctx, transport.ReminderRequest{Text: text, Time: core.ISOTimestamp(at)}); err != nil {
			return fmt.Errorf("reminder failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Reminder set: \"%s\" for %s\n", text, at.Format(cfg.GetTimeDisplayLayout()))
		return nil
	},
}

func init() {
	remindCmd.Flags().StringVar(&remindAt, "at", "", "local time of the reminder, e.g. \"2025-03-01 09:30\"")
	_ = remindCmd.MarkFlagRequired("at")

	for _, c := range []*cobra.Command{healthCmd, askCmd, searchCmd, remindCmd} {
		c.SilenceUsage = true
		rootCmd.AddCommand(c)
	}
}

func backendClient() (*config.Config, *transport.Client, error) {
	cfg, err := loadValidConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewBackend(cfg), nil
}

func requestContext(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, cfg.GetRequestTimeout())
}
