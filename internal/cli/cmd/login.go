package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/api"
	"github.com/HolmesInc/data-storage/internal/cli/config"
	"github.com/HolmesInc/data-storage/internal/cli/session"
	"github.com/spf13/cobra"
)

var (
	flagEmail    string
	flagPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your data-storage server",
	Long: `Authenticate with email and password.

  dataroom login --email you@example.com
  dataroom login --email you@example.com --password secret

When --password is omitted it is read from stdin.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&flagEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(flagEmail)
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	password := flagPassword
	if password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	client := api.NewClient(cfg.ServerURL, "")
	resp, err := client.Login(email, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return fmt.Errorf("invalid credentials")
		}
		return fmt.Errorf("logging in: %w", err)
	}

	cfg.Token = resp.Token
	cfg.Nav = session.NavigationState{}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Logged in as %s %s (%s)\n", resp.User.FirstName, resp.User.LastName, resp.User.Email)
	return nil
}
