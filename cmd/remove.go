package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

var (
	removeProjectName string

	removeEntryProject string
	removeEntryID      string

	removeDayDate string
	removeDayWeek int
	removeDayYear int
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a project, entry or day",
}

var removeProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Remove a project and all its entries",
	Args:  cobra.NoArgs,
	RunE:  runRemoveProject,
}

var removeEntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Remove a specific entry from a project",
	Args:  cobra.NoArgs,
	RunE:  runRemoveEntry,
}

var removeDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Remove a day from its week",
	Args:  cobra.NoArgs,
	RunE:  runRemoveDay,
}

func init() {
	removeProjectCmd.Flags().StringVar(&removeProjectName, "name", "", "Project name (required)")
	_ = removeProjectCmd.MarkFlagRequired("name")

	removeEntryCmd.Flags().StringVar(&removeEntryProject, "project", "", "Project name (required)")
	removeEntryCmd.Flags().StringVar(&removeEntryID, "id", "", "Entry ID (required)")
	_ = removeEntryCmd.MarkFlagRequired("project")
	_ = removeEntryCmd.MarkFlagRequired("id")

	removeDayCmd.Flags().StringVar(&removeDayDate, "date", "", "Day date (YYYY-MM-DD, required)")
	removeDayCmd.Flags().IntVar(&removeDayWeek, "week", 0, "Week number (required)")
	removeDayCmd.Flags().IntVar(&removeDayYear, "year", 0, "Week year (default current year)")
	_ = removeDayCmd.MarkFlagRequired("date")
	_ = removeDayCmd.MarkFlagRequired("week")

	removeCmd.AddCommand(removeProjectCmd)
	removeCmd.AddCommand(removeEntryCmd)
	removeCmd.AddCommand(removeDayCmd)
}

func runRemoveProject(cmd *cobra.Command, args []string) error {
	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	if err := t.RemoveProject(removeProjectName); err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}

	fmt.Printf("Removed project %q and all its entries\n", removeProjectName)
	return nil
}

func runRemoveEntry(cmd *cobra.Command, args []string) error {
	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	if err := t.RemoveEntry(removeEntryProject, removeEntryID); err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}

	fmt.Printf("Removed entry %s from project %q\n", removeEntryID, removeEntryProject)
	return nil
}

func runRemoveDay(cmd *cobra.Command, args []string) error {
	date, err := timecalc.ParseDate(removeDayDate)
	if err != nil {
		return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}
	year := removeDayYear
	if year == 0 {
		year = time.Now().Year()
	}

	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	if err := t.RemoveDay(year, removeDayWeek, date); err != nil {
		return err
	}
	if err := t.SaveWeeks(); err != nil {
		return err
	}

	fmt.Printf("Removed day %s from week %s\n", removeDayDate, timecalc.WeekLabel(year, removeDayWeek))
	return nil
}
