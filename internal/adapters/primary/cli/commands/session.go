package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	"github.com/denchenko/dash/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func Login(appInstance *app.App) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in with a DummyJSON username and password. The session is persisted and restored
by later invocations. Missing values are read from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := promptMissing(cmd.InOrStdin(), cmd.OutOrStdout(), &creds); err != nil {
				return err
			}

			err := log.WithSpinner("Logging in...", func() error {
				return appInstance.Session.Login(cmd.Context(), creds)
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			state := appInstance.Session.State()
			fmt.Fprintf(cmd.OutOrStdout(), "%s as %s\n", color.GreenString("[logged in]"), state.Identity.DisplayName())

			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "Password")

	return cmd
}

func promptMissing(in io.Reader, out io.Writer, creds *domain.Credentials) error {
	if creds.Username != "" && creds.Password != "" {
		return nil
	}

	reader := bufio.NewReader(in)

	read := func(label string, dst *string) error {
		if *dst != "" {
			return nil
		}

		fmt.Fprint(out, label+": ")

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		*dst = strings.TrimSpace(line)

		return nil
	}

	if err := read("Username", &creds.Username); err != nil {
		return err
	}

	return read("Password", &creds.Password)
}

func Logout(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := appInstance.Session.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("[logged out]"))

			return nil
		},
	}
}

func Whoami(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formatted, err := formatter.FormatSession(appInstance.Session.State())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}
