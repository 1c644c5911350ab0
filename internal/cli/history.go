package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Renotrader31/options-calculator/internal/models"
	"github.com/Renotrader31/options-calculator/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analyses",
		Long:  "List, show, and delete analyses saved to the journal with 'analyze --save'.",
	}

	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistoryShowCmd(app))
	cmd.AddCommand(newHistoryDeleteCmd(app))

	return cmd
}

func requireStore(app *App) error {
	if app.Store == nil {
		return fmt.Errorf("store unavailable; enable it in config")
	}
	return nil
}

func newHistoryListCmd(app *App) *cobra.Command {
	var (
		limit int
		label string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			records, err := app.Store.ListAnalyses(context.Background(), store.AnalysisFilter{
				Label: label,
				Limit: limit,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Dim("no saved analyses")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Label", "Stock", "Legs", "Net Premium")
			for _, rec := range records {
				table.AddRow(
					strconv.FormatInt(rec.ID, 10),
					FormatDateTime(rec.CreatedAt),
					TruncateString(rec.Label, 30),
					FormatPrice(rec.Context.UnderlyingPrice),
					store.DescribeLegs(rec.Legs),
					output.FormatPnL(rec.Summary.TotalPremium),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of analyses to list")
	cmd.Flags().StringVar(&label, "label", "", "filter by label substring")

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid analysis ID %q", args[0])
			}

			rec, err := app.Store.GetAnalysis(context.Background(), id)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}

			if rec.Label != "" {
				output.Bold("#%d  %s", rec.ID, rec.Label)
			} else {
				output.Bold("#%d", rec.ID)
			}
			output.Dim("saved %s", FormatDateTime(rec.CreatedAt))
			output.Println()

			result := models.AnalysisResult{
				Context: rec.Context,
				Legs:    rec.Legs,
				Summary: rec.Summary,
			}
			renderAnalysis(output, app, result, true)
			return nil
		},
	}
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid analysis ID %q", args[0])
			}

			if err := app.Store.DeleteAnalysis(context.Background(), id); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": id})
			}
			output.Success("deleted analysis #%d", id)
			return nil
		},
	}
}
