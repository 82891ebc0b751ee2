package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

var (
	targetWeekNumber int
	targetWeekYear   int

	targetMonthNumber int
	targetMonthYear   int
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Compare logged hours against the configured targets",
}

var targetWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Target status for a week",
	Args:  cobra.NoArgs,
	RunE:  runTargetWeek,
}

var targetMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Target status for a month",
	Args:  cobra.NoArgs,
	RunE:  runTargetMonth,
}

func init() {
	targetWeekCmd.Flags().IntVar(&targetWeekNumber, "number", 0, "Week number (required)")
	targetWeekCmd.Flags().IntVar(&targetWeekYear, "year", 0, "Week year (required)")
	_ = targetWeekCmd.MarkFlagRequired("number")
	_ = targetWeekCmd.MarkFlagRequired("year")

	targetMonthCmd.Flags().IntVar(&targetMonthNumber, "number", 0, "Month number (required)")
	targetMonthCmd.Flags().IntVar(&targetMonthYear, "year", 0, "Month year (required)")
	_ = targetMonthCmd.MarkFlagRequired("number")
	_ = targetMonthCmd.MarkFlagRequired("year")

	targetCmd.AddCommand(targetWeekCmd)
	targetCmd.AddCommand(targetMonthCmd)
}

func runTargetWeek(cmd *cobra.Command, args []string) error {
	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	status, err := t.WeekTargetStatus(targetWeekYear, targetWeekNumber)
	if err != nil {
		return err
	}

	fmt.Printf("Target status for week %s:\n", timecalc.WeekLabel(targetWeekYear, targetWeekNumber))
	printTargetTable(status)
	return nil
}

func runTargetMonth(cmd *cobra.Command, args []string) error {
	if targetMonthNumber < 1 || targetMonthNumber > 12 {
		return fmt.Errorf("invalid month number %d: %w", targetMonthNumber, model.ErrInvalidInput)
	}

	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	status := t.MonthTargetStatus(targetMonthYear, time.Month(targetMonthNumber))

	fmt.Printf("Target status for month %d-%02d:\n", targetMonthYear, targetMonthNumber)
	printTargetTable(status)
	return nil
}

func printTargetTable(s model.TargetReport) {
	fmt.Print(renderTable(
		[]string{"target", "logged", "delta", "remaining", "percent", "status", "target set from"},
		[][]string{{
			timecalc.FormatHours(s.TargetHours),
			timecalc.FormatHours(s.LoggedHours),
			fmt.Sprintf("%+.2fh", s.Delta),
			fmt.Sprintf("%.2fh", s.RemainingHours),
			fmt.Sprintf("%d%%", s.Percent),
			string(s.Status),
			string(s.Source),
		}},
	))
}
