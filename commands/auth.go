package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pomotrack/pomotrack/internal/api"
)

var (
	authEmail    string
	authPassword string

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in to the backend",
		RunE:  runLogin,
	}

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE:  runRegister,
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "End the server session",
		RunE:  runLogout,
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE:  runWhoami,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	email, password, err := credentials()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	user, err := client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	email, password, err := credentials()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	user, err := client.Register(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created, signed in as %s\n", user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Logout(context.Background()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Println("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	user, err := client.CurrentUser(context.Background())
	if err != nil {
		if api.IsUnauthorized(err) {
			fmt.Println("Not signed in")
			return nil
		}
		return err
	}

	fmt.Println(user.Email)
	return nil
}

// credentials collects email and password from flags, prompting for
// whatever is missing. The password prompt never echoes.
func credentials() (string, string, error) {
	email := strings.TrimSpace(authEmail)
	if email == "" {
		fmt.Print("Email: ")
		if _, err := fmt.Scanln(&email); err != nil {
			return "", "", fmt.Errorf("failed to read email: %w", err)
		}
		email = strings.TrimSpace(email)
	}
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	password := authPassword
	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}
