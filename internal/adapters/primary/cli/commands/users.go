package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	"github.com/denchenko/dash/internal/log"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// openURL is replaced in tests.
var openURL = open.Start

func Users(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse users",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(appInstance)
		},
	}

	cmd.AddCommand(
		UsersList(appInstance, formatter),
		UsersShow(appInstance, formatter),
		UsersBrowse(appInstance, formatter),
	)

	return cmd
}

func UsersList(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var (
		page   int
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("invalid page %d: pages start at 1", page)
			}

			users := appInstance.Users
			users.SetSearch(search)
			users.SetPage(page - 1)

			fetchList(cmd.Context(), "users", users.ListStore)

			formatted, err := formatter.FormatUsers(users.State())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search text")

	return cmd
}

func UsersShow(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var openAvatar bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			formatted, user, err := showUser(cmd.Context(), appInstance, formatter, id)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			if openAvatar && user.Image != "" {
				if err := openURL(user.Image); err != nil {
					return fmt.Errorf("failed to open browser: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&openAvatar, "open", false, "Open the avatar in the browser")

	return cmd
}

func showUser(
	ctx context.Context,
	appInstance *app.App,
	formatter *ascii.Formatter,
	id int,
) (string, *domain.User, error) {
	var user *domain.User
	err := log.WithSpinner("Fetching user...", func() error {
		var err error
		user, err = appInstance.Users.Get(ctx, id)

		return err
	})
	if err != nil {
		return "", nil, err
	}

	formatted, err := formatter.FormatUser(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to format output: %w", err)
	}

	return formatted, user, nil
}

func UsersBrowse(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through users interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := &browser[domain.User]{
				what:   "users",
				store:  appInstance.Users.ListStore,
				render: formatter.FormatUsers,
				show: func(ctx context.Context, id int) (string, error) {
					formatted, _, err := showUser(ctx, appInstance, formatter, id)

					return formatted, err
				},
			}

			return b.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func fetchList[T any](ctx context.Context, what string, store *app.ListStore[T]) {
	_ = log.WithSpinner("Fetching "+what+"...", func() error {
		store.Fetch(ctx)

		if msg := store.State().Err; msg != "" {
			return errors.New(msg)
		}

		return nil
	})
}

func requireSession(appInstance *app.App) error {
	if err := appInstance.RequireSession(); err != nil {
		return fmt.Errorf("%w: run `dash login` first", err)
	}

	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}

	return id, nil
}
