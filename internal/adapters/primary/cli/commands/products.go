package commands

import (
	"context"
	"fmt"

	"github.com/denchenko/dash/internal/core/app"
	"github.com/denchenko/dash/internal/core/domain"
	ascii "github.com/denchenko/dash/internal/format/ascii"
	"github.com/denchenko/dash/internal/log"
	"github.com/spf13/cobra"
)

func Products(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse products",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return requireSession(appInstance)
		},
	}

	cmd.AddCommand(
		ProductsList(appInstance, formatter),
		ProductsShow(appInstance, formatter),
		ProductsBrowse(appInstance, formatter),
		ProductsCategories(appInstance, formatter),
	)

	return cmd
}

func ProductsList(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var (
		page     int
		search   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("invalid page %d: pages start at 1", page)
			}

			products := appInstance.Products
			if category != "" {
				products.SetCategory(category)
			} else {
				products.SetSearch(search)
			}
			products.SetPage(page - 1)

			fetchList(cmd.Context(), "products", products.ListStore)

			formatted, err := formatter.FormatProducts(products.State())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category slug")
	cmd.MarkFlagsMutuallyExclusive("search", "category")

	return cmd
}

func ProductsShow(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	var openThumbnail bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			formatted, product, err := showProduct(cmd.Context(), appInstance, formatter, id)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			if openThumbnail && product.Thumbnail != "" {
				if err := openURL(product.Thumbnail); err != nil {
					return fmt.Errorf("failed to open browser: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&openThumbnail, "open", false, "Open the thumbnail in the browser")

	return cmd
}

func showProduct(
	ctx context.Context,
	appInstance *app.App,
	formatter *ascii.Formatter,
	id int,
) (string, *domain.Product, error) {
	var product *domain.Product
	err := log.WithSpinner("Fetching product...", func() error {
		var err error
		product, err = appInstance.Products.Get(ctx, id)

		return err
	})
	if err != nil {
		return "", nil, err
	}

	formatted, err := formatter.FormatProduct(product)
	if err != nil {
		return "", nil, fmt.Errorf("failed to format output: %w", err)
	}

	return formatted, product, nil
}

func ProductsBrowse(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Page through products interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := appInstance.Products
			b := &browser[domain.Product]{
				what:        "products",
				store:       products.ListStore,
				render:      formatter.FormatProducts,
				setCategory: products.SetCategory,
				show: func(ctx context.Context, id int) (string, error) {
					formatted, _, err := showProduct(ctx, appInstance, formatter, id)

					return formatted, err
				},
			}

			return b.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func ProductsCategories(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = log.WithSpinner("Fetching categories...", func() error {
				appInstance.Products.FetchCategories(cmd.Context())

				return nil
			})

			formatted, err := formatter.FormatCategories(appInstance.Products.Categories())
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}
