// ABOUTME: Command-line entry for the CRM terminal client
// ABOUTME: Wires config, logging, session, and the bubbletea program
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"crmterm/api"
	"crmterm/config"
	"crmterm/logging"
	"crmterm/session"
	"crmterm/tui"
)

const version = "0.1.0"

// NewRootCommand builds the single top-level command. There is no entity
// CRUD command surface; the TUI is the whole product.
func NewRootCommand() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:           "crmterm",
		Short:         "Terminal client for the CRM backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(apiURL)
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Backend base URL including the API prefix (overrides CRM_API_URL)")
	return cmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(apiURL string) error {
	if apiURL != "" {
		_ = os.Setenv("CRM_API_URL", apiURL)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Credentials are provisioned out-of-band: environment first, then the
	// saved session file.
	username, token := cfg.Username, cfg.Token
	if token == "" {
		sess, err := session.Load()
		if err != nil {
			return fmt.Errorf("not signed in: set CRM_TOKEN or provision %s", session.Path())
		}
		token = sess.Token
		if username == "" {
			username = sess.Username
		}
	}
	if username == "" {
		username = "user"
	}

	client := api.NewClient(cfg.APIBaseURL, token, cfg.RequestTimeout, logger)
	model := tui.NewModel(client, logger, username, session.Clear)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
