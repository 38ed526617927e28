package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/HolmesInc/data-storage/internal/cli/api"
	"github.com/HolmesInc/data-storage/internal/cli/config"
	"github.com/HolmesInc/data-storage/internal/cli/session"
	"github.com/spf13/cobra"
)

var (
	flagRegEmail     string
	flagRegPassword  string
	flagRegFirstName string
	flagRegLastName  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(flagRegEmail)
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		password := flagRegPassword
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		client := api.NewClient(cfg.ServerURL, "")
		resp, err := client.Register(email, password, flagRegFirstName, flagRegLastName)
		if err != nil {
			return fmt.Errorf("registering: %w", err)
		}

		cfg.Token = resp.Token
		cfg.Nav = session.NavigationState{}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Registered and logged in as %s\n", resp.User.Email)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&flagRegEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&flagRegPassword, "password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().StringVar(&flagRegFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&flagRegLastName, "last-name", "", "Last name")
	rootCmd.AddCommand(registerCmd)
}
