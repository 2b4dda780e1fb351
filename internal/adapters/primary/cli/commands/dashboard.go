package commands

import (
	"fmt"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	"github.com/denchenko/dash/internal/log"
	"github.com/spf13/cobra"
)

func Dashboard(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the welcome overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireSession(appInstance); err != nil {
				return err
			}

			var overview *domain.Overview
			err := log.WithSpinner("Loading overview...", func() error {
				var err error
				overview, err = appInstance.Overview(cmd.Context())

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get overview: %w", err)
			}

			formatted, err := formatter.FormatOverview(overview)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}
