package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/scacmatch/pkg/application/services"
)

func newLookupCommand(app *App) *cobra.Command {
	var warehouse string

	cmd := &cobra.Command{
		Use:   "lookup <po-or-item>",
		Short: "List inventory rows for a purchase order or item",
		Long: `Tokens with exactly six digits (WEG002121) are matched against the PO
column, anything else (CHDM-001) against the Item column. Matching is a
case-insensitive substring match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			result, err := services.NewReportService(app.cfg.LotSize).Lookup(ds.Inventory, args[0], warehouse)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&warehouse, "warehouse", "w", "", "Restrict to inventory orgs containing this text")
	return cmd
}

func newExpiringCommand(app *App) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List lots whose expiration date has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var day time.Time
			if today != "" {
				var err error
				if day, err = time.Parse("2006-01-02", today); err != nil {
					return fmt.Errorf("invalid --today %q, expected YYYY-MM-DD: %w", today, err)
				}
			}

			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			report, err := services.NewReportService(app.cfg.LotSize).ExpiringLots(ds.Inventory, day)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Reference date as YYYY-MM-DD (default: current date)")
	return cmd
}

func newCostCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cost <product-manager>",
		Short: "Sum inventory value per item for a product manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			rollup, err := services.NewReportService(app.cfg.LotSize).CostRollup(ds.Inventory, args[0])
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), rollup)
		},
	}
}

func newBookingCommand(app *App) *cobra.Command {
	var lotSize int64

	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Count booked and not booked ISO container lots per product manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lotSize <= 0 {
				lotSize = app.cfg.LotSize
			}

			ds, err := app.annotated(cmd.Context(), nil)
			if err != nil {
				return err
			}
			pivot, err := services.NewReportService(lotSize).BookingPivot(ds.Inventory)
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), pivot)
		},
	}

	cmd.Flags().Int64Var(&lotSize, "lot-size", 0, "Quantity of one ISO container lot (default from config)")
	return cmd
}

func newCarrierCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "carrier <container>",
		Short: "Look up manifest rows by container number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := app.discover()
			if err != nil {
				return err
			}
			pipeline, err := app.pipeline(nil)
			if err != nil {
				return err
			}
			ds, err := pipeline.Load(cmd.Context(), inputs.Inventory, inputs.Manifest)
			if err != nil {
				return err
			}

			lookup, err := services.NewReportService(app.cfg.LotSize).FindCarriers(ds.Carriers, args[0])
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), lookup)
		},
	}
}
