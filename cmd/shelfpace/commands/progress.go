package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/tracker"
)

var logCmd = &cobra.Command{
	Use:   "log <item-id> <cumulative-total>",
	Short: "Record a new cumulative progress total for an item",
	Long: `Record the TOTAL amount read or listened so far, in the item's native
unit (pages, percent, or minutes). Logging a lower total than before is a
valid correction; the analytics clamp the day's delta at zero.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("cumulative total must be a number: %w", err)
		}

		snap := tracker.ProgressSnapshot{
			ItemID:             args[0],
			CreatedAt:          time.Now().UTC(),
			CumulativeProgress: value,
		}
		if err := provider.LogProgress(snap); err != nil {
			return err
		}

		item, _ := provider.Log().Item(args[0])
		fmt.Printf("Logged %g %s for %q\n", value, item.Format.Unit(), item.Title)
		return nil
	},
}

var (
	addFormat   string
	addTotal    float64
	addDeadline string
	addTitle    string
)

var addCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Track a new reading or listening deadline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deadline, err := time.Parse("2006-01-02", addDeadline)
		if err != nil {
			return fmt.Errorf("deadline must be YYYY-MM-DD: %w", err)
		}

		item := tracker.TrackedItem{
			ID:            args[0],
			Title:         addTitle,
			Format:        tracker.Format(addFormat),
			TotalQuantity: addTotal,
			Deadline:      deadline.UTC(),
			Status:        tracker.StatusActive,
		}
		if err := provider.AddItem(item); err != nil {
			return err
		}

		fmt.Printf("Tracking %q: %g %s by %s\n", item.ID, item.TotalQuantity, item.Format.Unit(), addDeadline)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addFormat, "format", "physical", "format: physical, ebook, or audio")
	addCmd.Flags().Float64Var(&addTotal, "total", 0, "target quantity (pages, 100 for ebooks, or minutes)")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "display title")
	_ = addCmd.MarkFlagRequired("total")
	_ = addCmd.MarkFlagRequired("deadline")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(addCmd)
}
