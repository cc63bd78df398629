package main

import (
	"fmt"
	"text/tabwriter"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase/impl"

	"github.com/spf13/cobra"
)

// storectl cart
func newCartCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart with its total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := catalog.New()
			if err != nil {
				return err
			}
			cart := impl.NewCartService(sess.store, products, metrics.Noop{}, sess.logger)

			summary, err := cart.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if len(summary.Items) == 0 {
				fmt.Fprintln(sess.out, "cart is empty")

				return nil
			}

			w := tabwriter.NewWriter(sess.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE")
			for _, item := range summary.Items {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", item.ProductID, item.Title, item.Quantity, entity.FormatPrice(item.Price))
			}
			fmt.Fprintf(w, "\t%d item(s)\t\t%s\n", summary.ItemCount, summary.FormattedTotal)

			return w.Flush()
		},
	}
}

// storectl orders [--status shipped]
func newOrdersCmd(sess *session) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the order ledger, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := auth.NewJWTService(sess.cfg)
			if err != nil {
				return err
			}
			account := impl.NewAccountService(impl.AccountServiceParams{
				Store:        sess.store,
				TokenService: tokens,
				Logger:       sess.logger,
			})

			var orders []entity.Order
			if status == "" || status == string(entity.OrderStatusAll) {
				orders, err = account.Orders(cmd.Context())
			} else {
				var parsed entity.OrderStatus
				if parsed, err = entity.ParseOrderStatus(status); err != nil {
					return err
				}
				orders, err = account.FilterOrders(cmd.Context(), parsed)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(sess.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.Date, o.Status, len(o.Items), entity.FormatPrice(o.GrandTotal))
			}

			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status: all, pending, processing, shipped or delivered")

	return cmd
}
