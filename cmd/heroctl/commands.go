package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/hero-client/internal/app"
	"github.com/samvad-hq/hero-client/internal/config"
	"github.com/samvad-hq/hero-client/internal/domain"
	"github.com/samvad-hq/hero-client/internal/logger"
	"github.com/spf13/cobra"
)

type cli struct {
	baseURL string
	timeout time.Duration
	console *app.Console
}

// newRootCmd builds the command tree. The caller owns teardown of the
// returned cli once Execute returns.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:               "heroctl",
		Short:             "Manage heroes through the heroes API",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "heroes API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "request timeout (overrides REQUEST_TIMEOUT_SECONDS)")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all heroes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.ListHeroes(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a hero",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.GetHero(cmd.Context(), id))
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Create a hero",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hero := domain.Hero{Name: strings.Join(args, " ")}
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.AddHero(cmd.Context(), hero))
			},
		},
		&cobra.Command{
			Use:   "update <id> <name>",
			Short: "Rename a hero",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				hero := domain.Hero{ID: id, Name: strings.Join(args[1:], " ")}
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.UpdateHero(cmd.Context(), hero))
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a hero",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.DeleteHero(cmd.Context(), domain.RefByID(id)))
			},
		},
		&cobra.Command{
			Use:   "search <term>",
			Short: "Find heroes by name",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				term := strings.Join(args, " ")
				return printJSON(cmd.OutOrStdout(), c.console.Heroes.SearchHeroes(cmd.Context(), term))
			},
		},
		newMessagesCmd(c),
	)
	return root, c
}

func newMessagesCmd(c *cli) *cobra.Command {
	var clearLog bool
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Print the message log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearLog {
				c.console.Messages.Clear()
				return nil
			}
			for _, msg := range c.console.Messages.Messages() {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearLog, "clear", false, "clear the message log")
	return cmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.baseURL != "" {
		cfg.APIBaseURL = strings.TrimRight(c.baseURL, "/")
	}
	if c.timeout > 0 {
		cfg.RequestTimeout = c.timeout
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	console, err := app.NewConsole(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize console", "error", err)
		return err
	}
	c.console = console
	return nil
}

func (c *cli) teardown() error {
	defer logger.Close()
	if c.console == nil {
		return nil
	}
	console := c.console
	c.console = nil
	return console.Close()
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid hero id %q: %w", raw, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
