package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/api"
	"github.com/HolmesInc/data-storage/internal/cli/config"
	"github.com/HolmesInc/data-storage/internal/cli/session"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *config.Config
	apiClient *api.Client
	sess      *session.Session
)

var rootCmd = &cobra.Command{
	Use:   "dataroom",
	Short: "Data room CLI, organize documents and share them by link",
	Long: `Manage data rooms, nested folders, and revocable share links from
the terminal.

Get started:
  dataroom login --email you@example.com   Authenticate
  dataroom rooms                           List your rooms
  dataroom use <room-id>                   Select a room
  dataroom ls                              List the current level
  dataroom upload report.pdf               Upload into the open folder`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		sess = session.New(apiClient, cfg.Nav)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// requireAuth returns an error if no token is configured.
func requireAuth() error {
	if cfg == nil || !cfg.HasToken() {
		return fmt.Errorf("not authenticated, run \"dataroom login\" first")
	}
	return nil
}

// saveState persists the session's navigation state back to the config file.
func saveState() error {
	cfg.Nav = sess.State()
	return config.Save(cfg)
}

// confirm prints a [y/N] prompt and reads one line from in. Anything other
// than "y" or "yes" declines.
func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(in)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

// finish persists state and translates an expired session into a cleared
// credential so the next invocation starts fresh.
func finish(err error) error {
	if errors.Is(err, session.ErrSessionExpired) {
		cfg.ClearSession()
		_ = config.Save(cfg)
		return err
	}
	if saveErr := saveState(); saveErr != nil && err == nil {
		return saveErr
	}
	return err
}
