package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/scacmatch/pkg/infrastructure/events"
	"github.com/vsinha/scacmatch/pkg/interfaces/cli/output"
)

func newAnnotateCommand(app *App) *cobra.Command {
	var audit bool

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Match manifest containers to inventory rows and summarise the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := events.NewInMemoryEventStore()
			if err := store.Subscribe(events.AllAnnotationEvents, events.NewLoggingHandler(app.logger)); err != nil {
				return err
			}

			ds, err := app.annotated(cmd.Context(), store)
			if err != nil {
				return err
			}

			if err := app.render(cmd.OutOrStdout(), ds.Annotation); err != nil {
				return err
			}

			if audit {
				trail, err := store.ReadEvents(ds.Annotation.RunID, 0)
				if err != nil {
					return fmt.Errorf("failed to read audit trail: %w", err)
				}
				return output.Events(trail, output.Config{Format: app.opts.Format, Out: cmd.OutOrStdout()})
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&audit, "audit", false, "Print every match event after the summary")
	return cmd
}
