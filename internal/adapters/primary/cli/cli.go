package cli

import (
	"github.com/denchenko/dash/internal/adapters/primary/cli/commands"
	"github.com/denchenko/dash/internal/core/app"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "dash",
		Long:         `A terminal admin dashboard for the DummyJSON API.`,
		SilenceUsage: true,
	}

	appInstance := do.MustInvoke[*app.App](i)
	formatter := do.MustInvoke[*ascii.Formatter](i)

	cmd.AddCommand(
		commands.Login(appInstance),
		commands.Logout(appInstance),
		commands.Whoami(appInstance, formatter),
		commands.Dashboard(appInstance, formatter),
		commands.Users(appInstance, formatter),
		commands.Products(appInstance, formatter),
	)

	return cmd, nil
}
